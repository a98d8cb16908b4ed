package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	StatusPendingState ProjectStatus = "pending_state"
	StatusPendingAdmin ProjectStatus = "pending_admin"
	StatusApproved     ProjectStatus = "approved"
	StatusRejected     ProjectStatus = "rejected"
	StatusInProgress   ProjectStatus = "in_progress"
	StatusCompleted    ProjectStatus = "completed"
	StatusCancelled    ProjectStatus = "cancelled"
)

// Terminal reports whether no further status transition is possible.
func (s ProjectStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project is a proposed or in-progress infrastructure intervention for one
// village. Records are never physically deleted; rejected and cancelled
// projects persist for audit.
type Project struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VillageID               string             `bson:"village_id" json:"village_id"`
	Name                    string             `bson:"name" json:"name"`
	Type                    string             `bson:"type" json:"type"`
	Description             string             `bson:"description,omitempty" json:"description,omitempty"`
	EstimatedCost           float64            `bson:"estimated_cost" json:"estimated_cost"`
	EstimatedDurationMonths int                `bson:"estimated_duration_months" json:"estimated_duration_months"`
	Priority                string             `bson:"priority" json:"priority"`
	ProgressPct             float64            `bson:"progress_pct" json:"progress_pct"`
	Status                  ProjectStatus      `bson:"status" json:"status"`
	Notes                   string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Contact                 string             `bson:"contact,omitempty" json:"contact,omitempty"`

	CreatedBy         string    `bson:"created_by" json:"created_by"`
	CreatedByDistrict string    `bson:"created_by_district,omitempty" json:"created_by_district,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	// Workflow audit trail. Only the fields for edges actually taken are set.
	SubmittedToAdmin *time.Time `bson:"submitted_to_admin,omitempty" json:"submitted_to_admin,omitempty"`
	StateApprovedBy  string     `bson:"state_approved_by,omitempty" json:"state_approved_by,omitempty"`
	ApprovedBy       string     `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	ApprovalNotes    string     `bson:"approval_notes,omitempty" json:"approval_notes,omitempty"`
	ApprovedBudget   *float64   `bson:"approved_budget,omitempty" json:"approved_budget,omitempty"`
	RejectedBy       string     `bson:"rejected_by,omitempty" json:"rejected_by,omitempty"`
	RejectedAt       *time.Time `bson:"rejected_at,omitempty" json:"rejected_at,omitempty"`
	RejectionReason  string     `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	StartedAt        *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CancelledBy      string     `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`
	CancelledAt      *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

type ProjectCreate struct {
	VillageID               string  `json:"village_id"`
	Name                    string  `json:"name"`
	Type                    string  `json:"type"`
	Description             string  `json:"description,omitempty"`
	EstimatedCost           float64 `json:"estimated_cost,omitempty"`
	EstimatedDurationMonths int     `json:"estimated_duration_months,omitempty"`
	Priority                string  `json:"priority,omitempty"`
	Contact                 string  `json:"contact,omitempty"`
}

func (pc ProjectCreate) Validate() error {
	if pc.VillageID == "" {
		return &ValidationError{Field: "village_id", Reason: "required"}
	}
	if pc.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if pc.Type == "" {
		return &ValidationError{Field: "type", Reason: "required"}
	}
	if pc.EstimatedCost < 0 {
		return &ValidationError{Field: "estimated_cost", Reason: "must be non-negative"}
	}
	return nil
}

// ProjectStats summarizes projects by workflow status.
type ProjectStats struct {
	Total        int64 `json:"total"`
	PendingState int64 `json:"pending_state"`
	PendingAdmin int64 `json:"pending_admin"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
	InProgress   int64 `json:"in_progress"`
	Completed    int64 `json:"completed"`
	Cancelled    int64 `json:"cancelled"`
}
