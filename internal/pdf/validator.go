package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel validation errors. Callers map these to their own error surface.
// ErrNotPDF covers the cheap filename check; ErrMalformed means the content
// failed the structural parse.
var (
	ErrNotPDF    = errors.New("file is not a PDF")
	ErrEmpty     = errors.New("file is empty")
	ErrTooLarge  = errors.New("file too large")
	ErrMalformed = errors.New("malformed PDF")
)

// Validator checks uploads before they reach the parser.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given size ceiling in bytes.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateUpload checks a received file by name and content: extension,
// non-empty body, size ceiling, and a structural parse under relaxed
// validation. Courier portals emit slightly out-of-spec PDFs, so strict mode
// would reject documents that extract fine.
func (v *Validator) ValidateUpload(filename string, data []byte) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return ErrNotPDF
	}
	if len(data) == 0 {
		return ErrEmpty
	}
	if v.maxFileSize > 0 && int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), v.maxFileSize)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// IsValidPDF reports whether the upload passes all validation checks.
func (v *Validator) IsValidPDF(filename string, data []byte) bool {
	return v.ValidateUpload(filename, data) == nil
}
