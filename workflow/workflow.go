// Package workflow enforces the project approval state machine:
// pending_state -> pending_admin -> approved -> in_progress -> completed,
// with rejected reachable from either pending stage and cancelled reachable
// by an admin from any non-terminal state. Transition logic is pure; the
// caller persists the mutated project.
package workflow

import (
	"time"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCentral  Role = "central"
	RoleState    Role = "state"
	RoleDistrict Role = "district"
	RoleVillage  Role = "village"
)

// Actor identifies who is requesting a workflow operation.
type Actor struct {
	Name     string
	Role     Role
	District string
}

// Fields carries the mutable metadata that may accompany any update. These
// merge regardless of status; only status changes themselves are gated.
// Pointer fields distinguish "leave unchanged" from an explicit zero.
type Fields struct {
	ProgressPct             *float64 `json:"progress_pct,omitempty"`
	Description             *string  `json:"description,omitempty"`
	Notes                   *string  `json:"notes,omitempty"`
	EstimatedCost           *float64 `json:"estimated_cost,omitempty"`
	EstimatedDurationMonths *int     `json:"estimated_duration_months,omitempty"`
	Priority                *string  `json:"priority,omitempty"`
	Contact                 *string  `json:"contact,omitempty"`

	// Edge-specific extras.
	RejectionReason string   `json:"rejection_reason,omitempty"`
	ApprovedBudget  *float64 `json:"approved_budget,omitempty"`
	ApprovalNotes   string   `json:"approval_notes,omitempty"`
}

// anyRole marks edges open to every authenticated operator.
var anyRole = []Role{RoleAdmin, RoleCentral, RoleState, RoleDistrict, RoleVillage}

// transitions maps current status -> reachable target -> roles allowed to
// take that edge.
var transitions = map[models.ProjectStatus]map[models.ProjectStatus][]Role{
	models.StatusPendingState: {
		models.StatusPendingAdmin: {RoleState},
		models.StatusRejected:     {RoleState},
		models.StatusCancelled:    {RoleAdmin},
	},
	models.StatusPendingAdmin: {
		models.StatusApproved:  {RoleAdmin, RoleCentral},
		models.StatusRejected:  {RoleAdmin, RoleCentral},
		models.StatusCancelled: {RoleAdmin},
	},
	models.StatusApproved: {
		models.StatusInProgress: anyRole,
		models.StatusCancelled:  {RoleAdmin},
	},
	models.StatusInProgress: {
		models.StatusCompleted: anyRole,
		models.StatusCancelled: {RoleAdmin},
	},
}

// New builds a project in its initial state. Every project starts in
// pending_state at zero progress regardless of what the caller supplies.
func New(req models.ProjectCreate, actor Actor) (models.Project, error) {
	if err := req.Validate(); err != nil {
		return models.Project{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	duration := req.EstimatedDurationMonths
	if duration <= 0 {
		duration = 6
	}

	now := time.Now().UTC()
	return models.Project{
		VillageID:               req.VillageID,
		Name:                    req.Name,
		Type:                    req.Type,
		Description:             req.Description,
		EstimatedCost:           req.EstimatedCost,
		EstimatedDurationMonths: duration,
		Priority:                priority,
		Contact:                 req.Contact,
		ProgressPct:             0,
		Status:                  models.StatusPendingState,
		CreatedBy:               actor.Name,
		CreatedByDistrict:       actor.District,
		CreatedAt:               now,
		UpdatedAt:               now,
	}, nil
}

// Apply performs a role-gated status transition and merges permitted
// metadata. A target of "" skips the state machine and only merges metadata.
//
// Reachability is checked before authorization: requesting a target no role
// could reach from the current status is an invalid transition; requesting a
// reachable target without the required role is unauthorized.
func Apply(p *models.Project, actor Actor, target models.ProjectStatus, fields Fields) error {
	if target != "" {
		roles := transitions[p.Status][target]
		if roles == nil {
			return &TransitionError{From: p.Status, To: target, Role: actor.Role, Kind: KindInvalid}
		}
		if !roleAllowed(roles, actor.Role) {
			return &TransitionError{From: p.Status, To: target, Role: actor.Role, Kind: KindUnauthorized}
		}
		if target == models.StatusRejected && fields.RejectionReason == "" {
			return &models.ValidationError{Field: "rejection_reason", Reason: "required when rejecting"}
		}
		stamp(p, actor, target, fields)
		p.Status = target
	}

	merge(p, fields)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// stamp records the audit fields for the edge being taken.
func stamp(p *models.Project, actor Actor, target models.ProjectStatus, fields Fields) {
	now := time.Now().UTC()
	switch target {
	case models.StatusPendingAdmin:
		p.SubmittedToAdmin = &now
		p.StateApprovedBy = actor.Name
	case models.StatusApproved:
		p.ApprovedBy = actor.Name
		p.ApprovedAt = &now
		p.ApprovalNotes = fields.ApprovalNotes
		if fields.ApprovedBudget != nil {
			p.ApprovedBudget = fields.ApprovedBudget
		}
	case models.StatusRejected:
		p.RejectedBy = actor.Name
		p.RejectedAt = &now
		p.RejectionReason = fields.RejectionReason
	case models.StatusInProgress:
		p.StartedAt = &now
	case models.StatusCompleted:
		p.CompletedAt = &now
	case models.StatusCancelled:
		p.CancelledBy = actor.Name
		p.CancelledAt = &now
	}
}

func merge(p *models.Project, fields Fields) {
	if fields.ProgressPct != nil {
		pct := *fields.ProgressPct
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		p.ProgressPct = pct
	}
	if fields.Description != nil {
		p.Description = *fields.Description
	}
	if fields.Notes != nil {
		p.Notes = *fields.Notes
	}
	if fields.EstimatedCost != nil {
		p.EstimatedCost = *fields.EstimatedCost
	}
	if fields.EstimatedDurationMonths != nil {
		p.EstimatedDurationMonths = *fields.EstimatedDurationMonths
	}
	if fields.Priority != nil {
		p.Priority = *fields.Priority
	}
	if fields.Contact != nil {
		p.Contact = *fields.Contact
	}
}

func roleAllowed(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
