package handlers

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/Selvaprakash-V/SIH2K25/config"
	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
)

// StateDashboard summarizes every district: demographics, average severity
// and project counts. Scoped to the officer's state when the token carries
// one.
func (h *Handler) StateDashboard(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
			state = claims.State
		}
	}

	key := config.GetCacheKey("state_dashboard", state)
	if cached, ok := h.caches.Stats.Get(key); ok {
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	districts, err := h.store.DistrictSummaries(r.Context(), state)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	projects, err := h.store.ProjectStats(r.Context(), "")
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	payload := map[string]interface{}{
		"state":     state,
		"districts": districts,
		"projects":  projects,
	}
	h.caches.Stats.SetDefault(key, payload)
	h.respondJSON(w, http.StatusOK, payload)
}

// DistrictDashboard returns one district's villages, their worst gaps and
// open projects.
func (h *Handler) DistrictDashboard(w http.ResponseWriter, r *http.Request) {
	district := mux.Vars(r)["district"]

	villages, err := h.store.ListVillages(r.Context(), store.VillageFilter{District: district, Limit: 1000})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if len(villages) == 0 {
		h.sendErrorResponse(w, "District not found", http.StatusNotFound)
		return
	}

	type villageGap struct {
		models.Village
		SeverityScore float64 `json:"severity_score"`
	}
	worst := make([]villageGap, 0, len(villages))
	for _, v := range villages {
		report, err := h.gapReportFor(r, v.ID.Hex())
		if err != nil {
			// Villages without an amenity profile have no report yet.
			continue
		}
		worst = append(worst, villageGap{Village: v, SeverityScore: report.SeverityScore})
	}
	sort.Slice(worst, func(i, j int) bool { return worst[i].SeverityScore > worst[j].SeverityScore })
	if len(worst) > 10 {
		worst = worst[:10]
	}

	projects, err := h.store.ListProjects(r.Context(), store.ProjectFilter{District: district})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	stats, err := h.store.ProjectStats(r.Context(), district)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"district":       district,
		"village_count":  len(villages),
		"worst_villages": worst,
		"projects":       projects,
		"project_stats":  stats,
	})
}
