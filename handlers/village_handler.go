package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
	"github.com/Selvaprakash-V/SIH2K25/utils"
	"github.com/Selvaprakash-V/SIH2K25/workflow"
)

func (h *Handler) ListVillages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.ParseInt(q.Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	villages, err := h.store.ListVillages(r.Context(), store.VillageFilter{
		State:    q.Get("state"),
		District: q.Get("district"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	result := make([]models.VillageWithAmenities, 0, len(villages))
	for _, v := range villages {
		item := models.VillageWithAmenities{Village: v}
		if a, err := h.store.GetAmenities(r.Context(), v.ID.Hex()); err == nil {
			item.Amenities = &a
		}
		result = append(result, item)
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateVillage(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	if actor.Role != workflow.RoleAdmin && actor.Role != workflow.RoleState {
		h.sendErrorResponse(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	var req models.VillageCreate
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondStoreError(w, err)
		return
	}

	village, err := h.store.CreateVillage(r.Context(), models.Village{
		Name:       req.Name,
		District:   req.District,
		State:      req.State,
		Population: req.Population,
		SCRatio:    req.SCRatio,
		GeoLat:     req.GeoLat,
		GeoLong:    req.GeoLong,
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, village)
}

func (h *Handler) GetVillage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	village, err := h.store.GetVillage(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	item := models.VillageWithAmenities{Village: village}
	if a, err := h.store.GetAmenities(r.Context(), id); err == nil {
		item.Amenities = &a
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	h.respondJSON(w, http.StatusOK, item)
}

// GetNearbyVillages lists villages within a radius (km, default 25) of the
// given village, nearest first.
func (h *Handler) GetNearbyVillages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	origin, err := h.store.GetVillage(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if !origin.HasCoordinates() {
		h.sendErrorResponse(w, "Village has no coordinates", http.StatusBadRequest)
		return
	}

	radius, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	if err != nil || radius <= 0 {
		radius = 25
	}

	candidates, err := h.store.ListVillages(r.Context(), store.VillageFilter{State: origin.State, Limit: 1000})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	var nearby []models.NearbyVillage
	for _, v := range candidates {
		if v.ID == origin.ID || !v.HasCoordinates() {
			continue
		}
		d := utils.CalculateDistance(*origin.GeoLat, *origin.GeoLong, *v.GeoLat, *v.GeoLong)
		if d <= radius {
			nearby = append(nearby, models.NearbyVillage{Village: v, DistanceKm: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"village_id": id,
		"radius_km":  radius,
		"villages":   nearby,
		"count":      len(nearby),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// UpsertAmenities writes a village's amenity profile and drops the cached
// gap report so the next read recomputes.
func (h *Handler) UpsertAmenities(w http.ResponseWriter, r *http.Request) {
	var req models.Amenities
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if req.VillageID == "" {
		h.respondStoreError(w, &models.ValidationError{Field: "village_id", Reason: "required"})
		return
	}

	// Village must exist before attaching a profile.
	if _, err := h.store.GetVillage(r.Context(), req.VillageID); err != nil {
		h.respondStoreError(w, err)
		return
	}

	if err := h.store.UpsertAmenities(r.Context(), req); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.caches.Gaps.Delete(req.VillageID)
	h.caches.Stats.Flush()

	h.respondJSON(w, http.StatusOK, req.Normalized())
}
