package models

import "time"

type GapCategory string

const (
	GapWater        GapCategory = "water"
	GapElectricity  GapCategory = "electricity"
	GapEducation    GapCategory = "education"
	GapHealthcare   GapCategory = "healthcare"
	GapSanitation   GapCategory = "sanitation"
	GapConnectivity GapCategory = "connectivity"
)

type GapStatus string

const (
	GapCritical GapStatus = "critical"
	GapModerate GapStatus = "moderate"
)

type GapPriority string

const (
	PriorityHigh   GapPriority = "high"
	PriorityMedium GapPriority = "medium"
	PriorityLow    GapPriority = "low"
)

type GapEntry struct {
	Status   GapStatus   `bson:"status" json:"status"`
	Priority GapPriority `bson:"priority" json:"priority"`
	Message  string      `bson:"message" json:"message"`
}

// GapReport is derived from a village and its amenity profile. It is
// recomputable at any time and never authoritative; the stored copy is a
// cache of the last computation.
type GapReport struct {
	VillageID     string                   `bson:"village_id" json:"village_id"`
	Gaps          map[GapCategory]GapEntry `bson:"gaps" json:"gaps"`
	SeverityScore float64                  `bson:"severity_score" json:"severity_score"`
	LastUpdated   time.Time                `bson:"last_updated" json:"last_updated"`
}

// DevelopmentIndexResponse is the convenience inverse of the severity score.
type DevelopmentIndexResponse struct {
	VillageID        string  `json:"village_id"`
	DevelopmentIndex float64 `json:"development_index"`
	SeverityScore    float64 `json:"severity_score"`
}
