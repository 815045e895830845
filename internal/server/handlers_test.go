package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfduck/pdfduck/internal/config"
	"github.com/pdfduck/pdfduck/internal/extract"
)

type fakeExtractor struct {
	fn func(filename string, data []byte) (extract.Record, error)
}

func (f *fakeExtractor) ExtractFields(_ context.Context, filename string, data []byte) (extract.Record, error) {
	return f.fn(filename, data)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.MaxBatchSize = 3
	cfg.BatchWorkers = 2
	return cfg
}

func newTestServer(fn func(string, []byte) (extract.Record, error)) http.Handler {
	return New(testConfig(), &fakeExtractor{fn: fn}).Handler()
}

type upload struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, field string, uploads []upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, u := range uploads {
		fw, err := mw.CreateFormFile(field, u.name)
		require.NoError(t, err)
		_, err = fw.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHandleRoot(t *testing.T) {
	h := newTestServer(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "pdfduck API", body["service"])
	assert.Equal(t, "5.0.0", body["version"])
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", decodeBody(t, rr)["status"])
}

func TestHandleExtract_RejectsNonPDF(t *testing.T) {
	h := newTestServer(nil)

	buf, ct := multipartBody(t, "file", []upload{{"notes.txt", []byte("hello")}})
	req := httptest.NewRequest(http.MethodPost, "/extract", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File must be a PDF.", decodeBody(t, rr)["detail"])
}

func TestHandleExtract_RejectsEmptyFile(t *testing.T) {
	h := newTestServer(nil)

	buf, ct := multipartBody(t, "file", []upload{{"bill.pdf", nil}})
	req := httptest.NewRequest(http.MethodPost, "/extract", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Empty file.", decodeBody(t, rr)["detail"])
}

func TestHandleExtract_MissingFileField(t *testing.T) {
	h := newTestServer(nil)

	buf, ct := multipartBody(t, "wrongfield", []upload{{"bill.pdf", []byte("x")}})
	req := httptest.NewRequest(http.MethodPost, "/extract", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleExtract_Success(t *testing.T) {
	h := newTestServer(func(filename string, data []byte) (extract.Record, error) {
		return extract.Record{"invoice_number": "INV-001"}, nil
	})

	buf, ct := multipartBody(t, "file", []upload{{"bill.pdf", []byte("%PDF-1.4")}})
	req := httptest.NewRequest(http.MethodPost, "/extract", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["rows"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	rec := data[0].(map[string]any)
	assert.Equal(t, "INV-001", rec["invoice_number"])
}

func TestHandleExtract_ExtractionFailure(t *testing.T) {
	h := newTestServer(func(filename string, data []byte) (extract.Record, error) {
		return nil, fmt.Errorf("corrupt xref table")
	})

	buf, ct := multipartBody(t, "file", []upload{{"bill.pdf", []byte("%PDF-1.4")}})
	req := httptest.NewRequest(http.MethodPost, "/extract", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Extraction failed: corrupt xref table", decodeBody(t, rr)["detail"])
}

func TestHandleExtractBatch_TooManyFiles(t *testing.T) {
	h := newTestServer(nil)

	uploads := []upload{
		{"a.pdf", []byte("x")},
		{"b.pdf", []byte("x")},
		{"c.pdf", []byte("x")},
		{"d.pdf", []byte("x")},
	}
	buf, ct := multipartBody(t, "files", uploads)
	req := httptest.NewRequest(http.MethodPost, "/extract/batch", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Max 3 files per batch.", decodeBody(t, rr)["detail"])
}

func TestHandleExtractBatch_MixedResultsInOrder(t *testing.T) {
	h := newTestServer(func(filename string, data []byte) (extract.Record, error) {
		if filename == "bad.pdf" {
			return nil, fmt.Errorf("unreadable")
		}
		return extract.Record{"status": "EXPCLOSED"}, nil
	})

	uploads := []upload{
		{"good.pdf", []byte("%PDF-1.4")},
		{"notes.txt", []byte("hello")},
		{"bad.pdf", []byte("%PDF-1.4")},
	}
	buf, ct := multipartBody(t, "files", uploads)
	req := httptest.NewRequest(http.MethodPost, "/extract/batch", buf)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["rows"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 3)

	first := data[0].(map[string]any)
	assert.Equal(t, "good.pdf", first["file"])
	assert.Equal(t, true, first["success"])

	second := data[1].(map[string]any)
	assert.Equal(t, "notes.txt", second["file"])
	assert.Equal(t, "Not a PDF", second["error"])
	_, hasSuccess := second["success"]
	assert.False(t, hasSuccess)

	third := data[2].(map[string]any)
	assert.Equal(t, "bad.pdf", third["file"])
	assert.Equal(t, false, third["success"])
	assert.Equal(t, "unreadable", third["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/extract", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
