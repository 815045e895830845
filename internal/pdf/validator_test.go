package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	v := NewValidator(1024)

	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"wrong extension", "report.txt", []byte("%PDF-1.4"), ErrNotPDF},
		{"uppercase extension accepted", "BILL.PDF", nil, ErrEmpty},
		{"empty body", "bill.pdf", nil, ErrEmpty},
		{"too large", "bill.pdf", make([]byte, 2048), ErrTooLarge},
		{"garbage body", "bill.pdf", []byte("hello world"), ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpload(tt.filename, tt.data)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestIsValidPDF(t *testing.T) {
	v := NewValidator(1024)
	assert.False(t, v.IsValidPDF("bill.pdf", []byte("junk")))
	assert.False(t, v.IsValidPDF("bill.txt", []byte("%PDF-1.4")))
}

func TestServiceExtractFields_InvalidUpload(t *testing.T) {
	s := NewService(1024)

	_, err := s.ExtractFields(context.Background(), "notes.docx", []byte("x"))
	assert.True(t, errors.Is(err, ErrNotPDF))

	_, err = s.ExtractFields(context.Background(), "bill.pdf", nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestServiceExtractFile_MissingPath(t *testing.T) {
	s := NewService(1024)

	_, err := s.ExtractFile(context.Background(), "/nonexistent/bill.pdf")
	assert.Error(t, err)
}
