package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/engine"
)

func newTestHandlers() *APIHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(config.DefaultAnalysisConfig(), logger)
	return NewAPIHandlers(logger, eng)
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHandleAnalyze_TriangleCycle(t *testing.T) {
	csv := []byte("transaction_id,sender,receiver,amount,timestamp\n" +
		"TX001,A,B,500,2025-01-01 09:00:00\n" +
		"TX002,B,C,480,2025-01-01 10:00:00\n" +
		"TX003,C,A,480,2025-01-01 11:00:00\n")

	body, contentType := multipartUpload(t, "transactions.csv", csv)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandlers().handleAnalyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report domain.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(report.FraudRings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(report.FraudRings))
	}
}

func TestHandleAnalyze_MissingFileField(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	newTestHandlers().handleAnalyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleAnalyze_UnsupportedFileType(t *testing.T) {
	body, contentType := multipartUpload(t, "transactions.pdf", []byte("whatever"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandlers().handleAnalyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := payload["detail"]; !ok {
		t.Fatalf("expected a \"detail\" field in the error body, got %v", payload)
	}
}

func TestHandleAnalyze_WrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()

	newTestHandlers().handleAnalyze(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
