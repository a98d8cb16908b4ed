package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGapReportJSONRoundTrip(t *testing.T) {
	original := GapReport{
		VillageID: primitive.NewObjectID().Hex(),
		Gaps: map[GapCategory]GapEntry{
			GapElectricity: {Status: GapModerate, Priority: PriorityMedium, Message: "Only 62.5% electricity coverage"},
			GapHealthcare:  {Status: GapCritical, Priority: PriorityHigh, Message: "Need 2 more health centers"},
		},
		SeverityScore: 24.375,
		LastUpdated:   time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded GapReport
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
	assert.Equal(t, original.SeverityScore, decoded.SeverityScore, "numeric precision must survive the wire")
}

func TestProjectJSONRoundTrip(t *testing.T) {
	submitted := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
	budget := 1234567.89
	original := Project{
		ID:                      primitive.NewObjectID(),
		VillageID:               primitive.NewObjectID().Hex(),
		Name:                    "Borewell installation",
		Type:                    "water",
		Description:             "Three borewells for the eastern ward",
		EstimatedCost:           1500000.50,
		EstimatedDurationMonths: 8,
		Priority:                "high",
		ProgressPct:             12.5,
		Status:                  StatusPendingAdmin,
		CreatedBy:               "A. Lepcha",
		CreatedByDistrict:       "Gangtok",
		CreatedAt:               time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
		SubmittedToAdmin:        &submitted,
		StateApprovedBy:         "T. Bhutia",
		ApprovedBudget:          &budget,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Project
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
	require.NotNil(t, decoded.ApprovedBudget)
	assert.Equal(t, budget, *decoded.ApprovedBudget)
}

func TestAmenitiesNormalized(t *testing.T) {
	a := Amenities{Water: -1, Electricity: 120, Schools: -3, HealthCenters: 2, Toilets: -5, Internet: 100.5}
	n := a.Normalized()

	assert.Equal(t, 0, n.Water)
	assert.Equal(t, 100.0, n.Electricity)
	assert.Equal(t, 0, n.Schools)
	assert.Equal(t, 2, n.HealthCenters)
	assert.Equal(t, 0.0, n.Toilets)
	assert.Equal(t, 100.0, n.Internet)
}
