package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vanshika/muletrace/internal/engine"
	"github.com/vanshika/muletrace/internal/parse"
)

// maxUploadBytes bounds the size of an accepted transaction file. Chosen
// generously for batch forensic uploads while still protecting the server
// from unbounded multipart bodies.
const maxUploadBytes = 64 << 20 // 64 MiB

// APIHandlers exposes the HTTP handlers for the analysis API.
type APIHandlers struct {
	logger *slog.Logger
	engine *engine.Engine
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, eng *engine.Engine) *APIHandlers {
	return &APIHandlers{logger: logger, engine: eng}
}

func (h *APIHandlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	correlationID := uuid.NewString()
	logger := h.logger.With("correlation_id", correlationID)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Warn("failed to parse multipart upload", "error", err)
		writeError(w, http.StatusBadRequest, "request body must be a multipart/form-data upload within the size limit")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing required multipart field \"file\"")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("failed to read uploaded file", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	logger.Info("analyze request received", "filename", header.Filename, "size_bytes", len(data))

	report, err := h.engine.Analyze(r.Context(), correlationID, header.Filename, data)
	if err != nil {
		status, detail := classifyError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("analyze failed", "error", err)
		} else {
			logger.Warn("analyze rejected", "error", err)
		}
		writeError(w, status, detail)
		return
	}

	logger.Info("analyze request completed",
		"accounts_flagged", report.Summary.SuspiciousAccountsFlagged,
		"rings_detected", report.Summary.FraudRingsDetected,
		"duration_s", report.Summary.ProcessingTimeSeconds,
	)
	respondJSON(w, http.StatusOK, report)
}

// classifyError maps a pipeline error to an HTTP status and a user-facing
// detail string. Anything not recognized as a typed input-shape error is
// treated as an internal invariant violation.
func classifyError(err error) (int, string) {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return http.StatusBadRequest, perr.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
