package handlers

import "net/http"

type healthResponse struct {
	Status      string   `json:"status"`
	DBStatus    string   `json:"db_status"`
	Collections []string `json:"collections,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{Status: "ok"}

	if err := h.store.Ping(r.Context()); err != nil {
		response.Status = "error"
		response.DBStatus = "connection_error"
		response.Error = err.Error()
		h.respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	response.DBStatus = "connected"

	if names, err := h.store.CollectionNames(r.Context()); err == nil {
		response.Collections = names
	}

	h.respondJSON(w, http.StatusOK, response)
}
