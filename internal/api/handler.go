// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aeroclass/backend/internal/content"
	"github.com/aeroclass/backend/internal/service"
	"github.com/aeroclass/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store       *store.SQLiteStore
	submissions *service.SubmissionService
	logger      *slog.Logger
	defaultLang string
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLiteStore, submissions *service.SubmissionService, logger *slog.Logger, defaultLang string) *Handler {
	return &Handler{
		store:       s,
		submissions: submissions,
		logger:      logger,
		defaultLang: defaultLang,
	}
}

// lang resolves the display language for a request: ?lang= wins, then the
// configured default.
func (h *Handler) lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return l
	}
	return h.defaultLang
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the request body into v and validates it.
// Returns false if an error response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, content.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
