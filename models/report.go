package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GPSPoint struct {
	Lat  float64 `bson:"lat" json:"lat"`
	Long float64 `bson:"long" json:"long"`
}

// Report is a geotagged field observation submitted from a village, either
// live or batched from an offline client. ClientID is the client-generated
// identifier used to deduplicate offline syncs.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	VillageID   string             `bson:"village_id" json:"village_id"`
	Description string             `bson:"description" json:"description"`
	GPS         GPSPoint           `bson:"gps" json:"gps"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ClientID    string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Synced      bool               `bson:"synced" json:"synced"`
}

type ReportCreate struct {
	VillageID   string     `json:"village_id"`
	Description string     `json:"description"`
	GPSLat      float64    `json:"gps_lat"`
	GPSLong     float64    `json:"gps_long"`
	ImageURL    string     `json:"image_url,omitempty"`
	ClientID    string     `json:"client_id,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

func (rc ReportCreate) Validate() error {
	if rc.VillageID == "" {
		return &ValidationError{Field: "village_id", Reason: "required"}
	}
	if rc.Description == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	return nil
}

// SyncResult is the per-item outcome of a batched offline report sync.
type SyncResult struct {
	ClientID string `json:"client_id,omitempty"`
	ID       string `json:"id,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}
