package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Selvaprakash-V/SIH2K25/gap"
	"github.com/Selvaprakash-V/SIH2K25/models"
)

// gapReportFor returns a village's gap report, preferring the in-process
// cache, then recomputing from the village and its amenities and persisting
// the result to the gaps collection.
func (h *Handler) gapReportFor(r *http.Request, villageID string) (models.GapReport, error) {
	if cached, ok := h.caches.Gaps.Get(villageID); ok {
		return cached.(models.GapReport), nil
	}

	village, err := h.store.GetVillage(r.Context(), villageID)
	if err != nil {
		return models.GapReport{}, err
	}
	amenities, err := h.store.GetAmenities(r.Context(), villageID)
	if err != nil {
		return models.GapReport{}, err
	}

	report := gap.Analyze(village, amenities)
	if err := h.store.UpsertGapReport(r.Context(), report); err != nil {
		return models.GapReport{}, err
	}

	h.caches.Gaps.SetDefault(villageID, report)
	return report, nil
}

// GetGaps returns the gap report for one village, or every stored report
// when no village_id is given.
func (h *Handler) GetGaps(w http.ResponseWriter, r *http.Request) {
	villageID := r.URL.Query().Get("village_id")
	if villageID == "" {
		reports, err := h.store.ListGapReports(r.Context())
		if err != nil {
			h.respondStoreError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, reports)
		return
	}

	report, err := h.gapReportFor(r, villageID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

func (h *Handler) GetDevelopmentIndex(w http.ResponseWriter, r *http.Request) {
	villageID := mux.Vars(r)["id"]

	report, err := h.gapReportFor(r, villageID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.DevelopmentIndexResponse{
		VillageID:        villageID,
		DevelopmentIndex: gap.DevelopmentIndex(report),
		SeverityScore:    report.SeverityScore,
	})
}

// GetRecommendations ranks villages by stored severity score.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	recs, err := h.store.Recommendations(r.Context(), limit)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, recs)
}
