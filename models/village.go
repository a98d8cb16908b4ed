package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Village struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	District   string             `bson:"district" json:"district"`
	State      string             `bson:"state" json:"state"`
	Population int                `bson:"population" json:"population"`
	SCRatio    float64            `bson:"sc_ratio" json:"sc_ratio"`
	GeoLat     *float64           `bson:"geo_lat,omitempty" json:"geo_lat,omitempty"`
	GeoLong    *float64           `bson:"geo_long,omitempty" json:"geo_long,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasCoordinates reports whether the village carries a usable geo position.
func (v Village) HasCoordinates() bool {
	return v.GeoLat != nil && v.GeoLong != nil
}

// Amenities is the infrastructure coverage profile for one village.
// Water is binary (0 = no access, 1 = access); Electricity, Toilets and
// Internet are percentage coverage; Schools and HealthCenters are counts.
type Amenities struct {
	VillageID     string  `bson:"village_id" json:"village_id"`
	Water         int     `bson:"water" json:"water"`
	Electricity   float64 `bson:"electricity" json:"electricity"`
	Schools       int     `bson:"schools" json:"schools"`
	HealthCenters int     `bson:"health_centers" json:"health_centers"`
	Toilets       float64 `bson:"toilets" json:"toilets"`
	Internet      float64 `bson:"internet" json:"internet"`
}

// Normalized returns a copy with percentage fields clamped to [0,100] and
// count fields floored at zero.
func (a Amenities) Normalized() Amenities {
	a.Electricity = clampPct(a.Electricity)
	a.Toilets = clampPct(a.Toilets)
	a.Internet = clampPct(a.Internet)
	if a.Water < 0 {
		a.Water = 0
	}
	if a.Schools < 0 {
		a.Schools = 0
	}
	if a.HealthCenters < 0 {
		a.HealthCenters = 0
	}
	return a
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type VillageCreate struct {
	Name       string   `json:"name"`
	District   string   `json:"district"`
	State      string   `json:"state"`
	Population int      `json:"population"`
	SCRatio    float64  `json:"sc_ratio"`
	GeoLat     *float64 `json:"geo_lat,omitempty"`
	GeoLong    *float64 `json:"geo_long,omitempty"`
}

func (vc VillageCreate) Validate() error {
	if vc.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if vc.District == "" {
		return &ValidationError{Field: "district", Reason: "required"}
	}
	if vc.State == "" {
		return &ValidationError{Field: "state", Reason: "required"}
	}
	if vc.Population < 0 {
		return &ValidationError{Field: "population", Reason: "must be non-negative"}
	}
	return nil
}

// VillageWithAmenities is the list/detail response shape; amenities may be
// absent for villages that have not reported a profile yet.
type VillageWithAmenities struct {
	Village
	Amenities *Amenities `json:"amenities,omitempty"`
}

// NearbyVillage is a village annotated with its distance in kilometers from
// a reference point.
type NearbyVillage struct {
	Village
	DistanceKm float64 `json:"distance_km"`
}
