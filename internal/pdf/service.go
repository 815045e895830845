package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfduck/pdfduck/internal/extract"
)

// Service is the document-processing facade: validate an upload, decode it,
// and run field extraction. It holds no per-document state and is safe for
// concurrent use.
type Service struct {
	validator *Validator
}

// NewService creates a service with the given per-file size ceiling in bytes.
func NewService(maxFileSize int64) *Service {
	return &Service{validator: NewValidator(maxFileSize)}
}

// Validate checks an upload without extracting anything.
func (s *Service) Validate(filename string, data []byte) error {
	return s.validator.ValidateUpload(filename, data)
}

// ExtractFields validates, decodes, and extracts the field record from one
// document. Decoding runs in its own goroutine so a slow or pathological
// parse is abandoned when the context expires; the goroutine finishes on its
// own and is collected.
func (s *Service) ExtractFields(ctx context.Context, filename string, data []byte) (extract.Record, error) {
	if err := s.validator.ValidateUpload(filename, data); err != nil {
		return nil, err
	}

	type decoded struct {
		doc extract.Document
		err error
	}
	ch := make(chan decoded, 1)
	go func() {
		doc, err := Decode(data)
		ch <- decoded{doc, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("extraction aborted: %w", ctx.Err())
	case d := <-ch:
		if d.err != nil {
			return nil, d.err
		}
		return extract.NewEngine(d.doc).Extract(), nil
	}
}

// ExtractFile reads a document from the local filesystem and extracts its
// field record. Used by the stdio tool mode, where inputs arrive as paths.
func (s *Service) ExtractFile(ctx context.Context, path string) (extract.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return s.ExtractFields(ctx, filepath.Base(path), data)
}
