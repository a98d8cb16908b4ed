package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

var (
	districtOfficer = Actor{Name: "A. Lepcha", Role: RoleDistrict, District: "Pakyong"}
	stateOfficer    = Actor{Name: "T. Bhutia", Role: RoleState}
	adminOfficer    = Actor{Name: "R. Rai", Role: RoleAdmin}
)

func newPending(t *testing.T) models.Project {
	t.Helper()
	p, err := New(models.ProjectCreate{
		VillageID:     "66f1a2b3c4d5e6f708192a3b",
		Name:          "Primary school construction",
		Type:          "education",
		EstimatedCost: 2500000,
	}, districtOfficer)
	require.NoError(t, err)
	return p
}

func TestNewProjectDefaults(t *testing.T) {
	p := newPending(t)

	assert.Equal(t, models.StatusPendingState, p.Status)
	assert.Zero(t, p.ProgressPct)
	assert.Equal(t, "medium", p.Priority)
	assert.Equal(t, 6, p.EstimatedDurationMonths)
	assert.Equal(t, "A. Lepcha", p.CreatedBy)
	assert.Equal(t, "Pakyong", p.CreatedByDistrict)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewProjectValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   models.ProjectCreate
		field string
	}{
		{"missing village", models.ProjectCreate{Name: "x", Type: "water"}, "village_id"},
		{"missing name", models.ProjectCreate{VillageID: "v1", Type: "water"}, "name"},
		{"missing type", models.ProjectCreate{VillageID: "v1", Name: "x"}, "type"},
		{"negative cost", models.ProjectCreate{VillageID: "v1", Name: "x", Type: "water", EstimatedCost: -1}, "estimated_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.req, districtOfficer)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDistrictCannotMoveFromPendingState(t *testing.T) {
	// A district officer proposes projects but never approves; every edge out
	// of pending_state is closed to them.
	for _, target := range []models.ProjectStatus{
		models.StatusPendingAdmin,
		models.StatusRejected,
		models.StatusCancelled,
	} {
		p := newPending(t)
		err := Apply(&p, districtOfficer, target, Fields{RejectionReason: "n/a"})
		assert.ErrorIs(t, err, ErrUnauthorized, "target %s", target)
		assert.Equal(t, models.StatusPendingState, p.Status)
	}
}

func TestStateForwardsToAdmin(t *testing.T) {
	p := newPending(t)

	err := Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingAdmin, p.Status)
	require.NotNil(t, p.SubmittedToAdmin)
	assert.Equal(t, "T. Bhutia", p.StateApprovedBy)

	// Transitions are one-shot: the same edge cannot be re-taken once the
	// project has left pending_state.
	err = Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFullApprovalPath(t *testing.T) {
	p := newPending(t)
	budget := 2000000.0

	require.NoError(t, Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{}))
	require.NoError(t, Apply(&p, adminOfficer, models.StatusApproved, Fields{
		ApprovedBudget: &budget,
		ApprovalNotes:  "budget reduced to sanctioned ceiling",
	}))

	assert.Equal(t, models.StatusApproved, p.Status)
	assert.Equal(t, "R. Rai", p.ApprovedBy)
	require.NotNil(t, p.ApprovedAt)
	require.NotNil(t, p.ApprovedBudget)
	assert.Equal(t, budget, *p.ApprovedBudget)

	require.NoError(t, Apply(&p, districtOfficer, models.StatusInProgress, Fields{}))
	assert.Equal(t, models.StatusInProgress, p.Status)
	require.NotNil(t, p.StartedAt)

	require.NoError(t, Apply(&p, districtOfficer, models.StatusCompleted, Fields{}))
	assert.Equal(t, models.StatusCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
	assert.True(t, p.Status.Terminal())
}

func TestRejectionBranches(t *testing.T) {
	t.Run("state rejects", func(t *testing.T) {
		p := newPending(t)
		err := Apply(&p, stateOfficer, models.StatusRejected, Fields{RejectionReason: "duplicate of sanctioned scheme"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, p.Status)
		assert.Equal(t, "T. Bhutia", p.RejectedBy)
		assert.Equal(t, "duplicate of sanctioned scheme", p.RejectionReason)
		require.NotNil(t, p.RejectedAt)
	})

	t.Run("admin rejects", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{}))
		err := Apply(&p, adminOfficer, models.StatusRejected, Fields{RejectionReason: "no budget head"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, p.Status)
	})

	t.Run("rejection reason required", func(t *testing.T) {
		p := newPending(t)
		err := Apply(&p, stateOfficer, models.StatusRejected, Fields{})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "rejection_reason", verr.Field)
		assert.Equal(t, models.StatusPendingState, p.Status)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, Apply(&p, stateOfficer, models.StatusRejected, Fields{RejectionReason: "x"}))
		err := Apply(&p, adminOfficer, models.StatusApproved, Fields{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAdminCancelsFromAnyNonTerminalState(t *testing.T) {
	build := map[string]func(t *testing.T) models.Project{
		"pending_state": func(t *testing.T) models.Project { return newPending(t) },
		"pending_admin": func(t *testing.T) models.Project {
			p := newPending(t)
			require.NoError(t, Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{}))
			return p
		},
		"approved": func(t *testing.T) models.Project {
			p := newPending(t)
			require.NoError(t, Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{}))
			require.NoError(t, Apply(&p, adminOfficer, models.StatusApproved, Fields{}))
			return p
		},
		"in_progress": func(t *testing.T) models.Project {
			p := newPending(t)
			require.NoError(t, Apply(&p, stateOfficer, models.StatusPendingAdmin, Fields{}))
			require.NoError(t, Apply(&p, adminOfficer, models.StatusApproved, Fields{}))
			require.NoError(t, Apply(&p, districtOfficer, models.StatusInProgress, Fields{}))
			return p
		},
	}

	for name, setup := range build {
		t.Run(name, func(t *testing.T) {
			p := setup(t)
			require.NoError(t, Apply(&p, adminOfficer, models.StatusCancelled, Fields{}))
			assert.Equal(t, models.StatusCancelled, p.Status)
			assert.Equal(t, "R. Rai", p.CancelledBy)
			require.NotNil(t, p.CancelledAt)

			// Only admins cancel.
			q := build[name](t)
			err := Apply(&q, stateOfficer, models.StatusCancelled, Fields{})
			if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidTransition) {
				return
			}
			t.Fatalf("expected refusal for state officer cancel, got %v", err)
		})
	}
}

func TestMetadataMergesRegardlessOfStatus(t *testing.T) {
	p := newPending(t)
	require.NoError(t, Apply(&p, stateOfficer, models.StatusRejected, Fields{RejectionReason: "x"}))

	// Metadata edits remain open on a terminal project; only status is gated.
	pct := 150.0
	desc := "revised scope"
	cost := 100000.0
	err := Apply(&p, districtOfficer, "", Fields{
		ProgressPct:   &pct,
		Description:   &desc,
		EstimatedCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, p.Status)
	assert.Equal(t, 100.0, p.ProgressPct, "progress clamps to 100")
	assert.Equal(t, "revised scope", p.Description)
	assert.Equal(t, cost, p.EstimatedCost)
}

func TestUnknownTargetIsInvalid(t *testing.T) {
	p := newPending(t)
	err := Apply(&p, adminOfficer, models.ProjectStatus("archived"), Fields{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
