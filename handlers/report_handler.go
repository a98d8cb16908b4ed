package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
)

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportCreate
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondStoreError(w, err)
		return
	}

	report, err := h.store.InsertReport(r.Context(), reportFromCreate(req, middleware.UserIDFrom(r.Context()), true))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      report.ID.Hex(),
		"message": "Report created successfully",
	})
}

// SyncReports accepts a batch of offline reports and deduplicates on
// client_id, returning a per-item outcome in input order.
func (h *Handler) SyncReports(w http.ResponseWriter, r *http.Request) {
	var batch []models.ReportCreate
	if err := decodeJSON(r, &batch); err != nil {
		h.respondStoreError(w, err)
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	processed := make([]models.SyncResult, 0, len(batch))

	for _, req := range batch {
		if err := req.Validate(); err != nil {
			processed = append(processed, models.SyncResult{ClientID: req.ClientID, Status: "error", Error: err.Error()})
			continue
		}

		if req.ClientID == "" {
			// Older clients never generated ids; assign one so a retry of
			// this same batch still deduplicates.
			req.ClientID = uuid.NewString()
		} else if _, err := h.store.FindReportByClientID(r.Context(), req.ClientID); err == nil {
			processed = append(processed, models.SyncResult{ClientID: req.ClientID, Status: "duplicate"})
			continue
		} else if err != store.ErrNotFound {
			processed = append(processed, models.SyncResult{ClientID: req.ClientID, Status: "error", Error: err.Error()})
			continue
		}

		report, err := h.store.InsertReport(r.Context(), reportFromCreate(req, userID, true))
		if err != nil {
			processed = append(processed, models.SyncResult{ClientID: req.ClientID, Status: "error", Error: err.Error()})
			continue
		}
		processed = append(processed, models.SyncResult{ClientID: req.ClientID, ID: report.ID.Hex(), Status: "success"})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"processed": processed})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.ListReports(r.Context(), r.URL.Query().Get("village_id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reports)
}

func reportFromCreate(req models.ReportCreate, userID string, synced bool) models.Report {
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	return models.Report{
		UserID:      userID,
		VillageID:   req.VillageID,
		Description: req.Description,
		GPS:         models.GPSPoint{Lat: req.GPSLat, Long: req.GPSLong},
		ImageURL:    req.ImageURL,
		ClientID:    req.ClientID,
		Timestamp:   ts,
		Synced:      synced,
	}
}
