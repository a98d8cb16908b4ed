package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Selvaprakash-V/SIH2K25/config"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
	"github.com/Selvaprakash-V/SIH2K25/workflow"
)

func newTestHandler() *Handler {
	return New(nil, config.NewCaches(), zap.NewNop().Sugar(), config.Config{})
}

func TestRespondStoreErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &models.ValidationError{Field: "name", Reason: "required"}, 400},
		{"not found", store.ErrNotFound, 404},
		{"duplicate email", store.ErrDuplicateEmail, 400},
		{"unauthorized transition", &workflow.TransitionError{
			From: models.StatusPendingState,
			To:   models.StatusPendingAdmin,
			Role: workflow.RoleDistrict,
			Kind: workflow.KindUnauthorized,
		}, 403},
		{"invalid transition", &workflow.TransitionError{
			From: models.StatusCompleted,
			To:   models.StatusApproved,
			Role: workflow.RoleAdmin,
			Kind: workflow.KindInvalid,
		}, 409},
		{"concurrent update", store.ErrConflict, 409},
		{"unknown", errors.New("boom"), 500},
	}

	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.respondStoreError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, tt.want, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestInvalidateProjectCachesDropsAllStatsViews(t *testing.T) {
	h := newTestHandler()
	keys := []string{
		config.GetCacheKey("project_stats", ""),
		config.GetCacheKey("project_stats", "Pakyong"),
		config.GetCacheKey("state_dashboard", "Sikkim"),
	}
	for _, key := range keys {
		h.caches.Stats.SetDefault(key, models.ProjectStats{Total: 1})
	}

	h.invalidateProjectCaches()

	for _, key := range keys {
		_, ok := h.caches.Stats.Get(key)
		assert.False(t, ok, "key %q should have been dropped", key)
	}
}
