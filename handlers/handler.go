// Package handlers is the HTTP request layer. Handlers load records from the
// store, invoke the gap or workflow core, persist mutations and serialize
// JSON; they hold no domain logic of their own.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Selvaprakash-V/SIH2K25/config"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
	"github.com/Selvaprakash-V/SIH2K25/workflow"
)

type Handler struct {
	store  *store.Store
	caches *config.Caches
	log    *zap.SugaredLogger
	cfg    config.Config
}

func New(st *store.Store, caches *config.Caches, log *zap.SugaredLogger, cfg config.Config) *Handler {
	return &Handler{store: st, caches: caches, log: log, cfg: cfg}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorw("encoding response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, message string, code int) {
	h.respondJSON(w, code, map[string]interface{}{
		"error": message,
		"code":  code,
	})
}

// respondStoreError maps the error taxonomy onto status codes: validation
// 400, not found 404, unauthorized 403, invalid transition 409 (also used
// for lost optimistic-concurrency races), anything else 500.
func (h *Handler) respondStoreError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		h.sendErrorResponse(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		h.sendErrorResponse(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicateEmail):
		h.sendErrorResponse(w, "Email already registered", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrUnauthorized):
		h.sendErrorResponse(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, workflow.ErrInvalidTransition):
		h.sendErrorResponse(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrConflict):
		h.sendErrorResponse(w, "Project was modified concurrently, retry", http.StatusConflict)
	default:
		h.log.Errorw("internal error", "error", err)
		h.sendErrorResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &models.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	return nil
}
