package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Selvaprakash-V/SIH2K25/config"
	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
	"github.com/Selvaprakash-V/SIH2K25/workflow"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.store.ListProjects(r.Context(), store.ProjectFilter{
		VillageID: q.Get("village_id"),
		Status:    models.ProjectStatus(q.Get("status")),
		District:  q.Get("district"),
		Active:    q.Get("active") == "true",
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, project)
}

// CreateProject proposes an intervention. Only district-level actors (and
// admins) originate proposals; every project starts in pending_state.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	if actor.Role != workflow.RoleDistrict && actor.Role != workflow.RoleAdmin {
		h.sendErrorResponse(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	var req models.ProjectCreate
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}

	// The referenced village must exist.
	if req.VillageID != "" {
		if _, err := h.store.GetVillage(r.Context(), req.VillageID); err != nil {
			h.respondStoreError(w, err)
			return
		}
	}

	project, err := workflow.New(req, actor)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	project, err = h.store.InsertProject(r.Context(), project)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.invalidateProjectCaches()
	h.respondJSON(w, http.StatusCreated, project)
}

// invalidateProjectCaches drops every cached stats and dashboard view; a
// project mutation changes the counts behind all of them.
func (h *Handler) invalidateProjectCaches() {
	h.caches.Stats.Flush()
}

// projectUpdateRequest is the wire shape for PUT /projects/{id}: an optional
// status transition plus freely editable metadata.
type projectUpdateRequest struct {
	Status models.ProjectStatus `json:"status,omitempty"`
	workflow.Fields
}

// UpdateProject applies a role-gated workflow transition and merges metadata,
// persisting with a conditional write on the previously read status.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.sendErrorResponse(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req projectUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}

	project, err := h.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	readStatus := project.Status

	if err := workflow.Apply(&project, actor, req.Status, req.Fields); err != nil {
		h.respondStoreError(w, err)
		return
	}

	if err := h.store.ReplaceProject(r.Context(), project, readStatus); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.invalidateProjectCaches()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

func (h *Handler) GetProjectStats(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	key := config.GetCacheKey("project_stats", district)

	if cached, ok := h.caches.Stats.Get(key); ok {
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := h.store.ProjectStats(r.Context(), district)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.caches.Stats.SetDefault(key, stats)
	h.respondJSON(w, http.StatusOK, stats)
}
