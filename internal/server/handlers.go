package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/pdfduck/pdfduck/internal/config"
	"github.com/pdfduck/pdfduck/internal/extract"
	"github.com/pdfduck/pdfduck/internal/pdf"
)

// Extractor runs field extraction for one uploaded document.
type Extractor interface {
	ExtractFields(ctx context.Context, filename string, data []byte) (extract.Record, error)
}

type handler struct {
	extractor Extractor
	cfg       *config.Config
}

func newHandler(extractor Extractor, cfg *config.Config) *handler {
	return &handler{extractor: extractor, cfg: cfg}
}

// GET /
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":   "pdfduck API",
		"version":   h.cfg.Version,
		"endpoints": []string{"/extract", "/extract/batch", "/health"},
	})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// POST /extract
// Accepts one multipart file upload under the "file" field and returns the
// extracted record.
func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.DocTimeout)
	defer cancel()

	if err := r.ParseMultipartForm(h.cfg.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form with a 'file' field.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form with a 'file' field.")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "File must be a PDF.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read upload.")
		slog.Error("reading upload", "file", header.Filename, "error", err)
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Empty file.")
		return
	}

	rec, err := h.extractor.ExtractFields(ctx, header.Filename, data)
	if err != nil {
		h.writeExtractionError(w, header.Filename, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"rows":    1,
		"data":    []extract.Record{rec},
	})
}

// writeExtractionError maps service errors to the API error surface.
func (h *handler) writeExtractionError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, pdf.ErrNotPDF):
		writeError(w, http.StatusBadRequest, "File must be a PDF.")
	case errors.Is(err, pdf.ErrEmpty):
		writeError(w, http.StatusBadRequest, "Empty file.")
	case errors.Is(err, pdf.ErrTooLarge):
		writeError(w, http.StatusBadRequest, "File too large.")
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Extraction failed: %v", err))
		slog.Error("extraction failed", "file", filename, "error", err)
	}
}

// POST /extract/batch
// Accepts multiple uploads under the "files" field. Files are processed
// concurrently by a bounded worker pool and results are returned in
// submission order. Per-file failures never fail the batch.
func (h *handler) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form with a 'files' field.")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "Expected multipart form with a 'files' field.")
		return
	}
	if len(headers) > h.cfg.MaxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Max %d files per batch.", h.cfg.MaxBatchSize))
		return
	}

	results := make([]map[string]any, len(headers))
	sem := make(chan struct{}, h.cfg.BatchWorkers)
	var wg sync.WaitGroup

	for i, fh := range headers {
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = h.processBatchFile(r.Context(), fh)
		}(i, fh)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"rows":    len(results),
		"data":    results,
	})
}

// processBatchFile extracts one file of a batch and returns its result entry.
func (h *handler) processBatchFile(ctx context.Context, fh *multipart.FileHeader) map[string]any {
	name := fh.Filename
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return map[string]any{"file": name, "error": "Not a PDF"}
	}

	file, err := fh.Open()
	if err != nil {
		return map[string]any{"file": name, "success": false, "error": err.Error()}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return map[string]any{"file": name, "success": false, "error": err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, h.cfg.DocTimeout)
	defer cancel()

	rec, err := h.extractor.ExtractFields(ctx, name, data)
	if err != nil {
		return map[string]any{"file": name, "success": false, "error": err.Error()}
	}
	return map[string]any{"file": name, "success": true, "data": rec}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
