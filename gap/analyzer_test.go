package gap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

func fullyCovered(population int) (models.Village, models.Amenities) {
	v := models.Village{Name: "Rangpo", District: "Pakyong", State: "Sikkim", Population: population}
	a := models.Amenities{
		Water:         1,
		Electricity:   100,
		Schools:       population/1000 + 1,
		HealthCenters: population/5000 + 1,
		Toilets:       100,
		Internet:      100,
	}
	return v, a
}

func TestAnalyzeNoGapsWhenFullyCovered(t *testing.T) {
	v, a := fullyCovered(5000)
	report := Analyze(v, a)

	assert.Empty(t, report.Gaps)
	assert.Zero(t, report.SeverityScore)
	assert.Equal(t, 100.0, DevelopmentIndex(report))
}

func TestAnalyzeWaterOnly(t *testing.T) {
	v, a := fullyCovered(5000)
	a.Water = 0

	report := Analyze(v, a)

	require.Len(t, report.Gaps, 1)
	entry, ok := report.Gaps[models.GapWater]
	require.True(t, ok)
	assert.Equal(t, models.GapCritical, entry.Status)
	assert.Equal(t, models.PriorityHigh, entry.Priority)
	assert.Equal(t, "No water access available", entry.Message)
	assert.Equal(t, 25.0, report.SeverityScore)
	assert.Equal(t, 75.0, DevelopmentIndex(report))
}

func TestAnalyzeAllCategoriesDeficient(t *testing.T) {
	v := models.Village{Name: "Lingtam", District: "Pakyong", State: "Sikkim", Population: 5000}
	a := models.Amenities{
		Water:         1,
		Electricity:   30,
		Schools:       0,
		HealthCenters: 0,
		Toilets:       20,
		Internet:      10,
	}

	report := Analyze(v, a)

	require.Len(t, report.Gaps, 5)
	assert.NotContains(t, report.Gaps, models.GapWater)
	assert.Contains(t, report.Gaps, models.GapElectricity)
	assert.Contains(t, report.Gaps, models.GapEducation)
	assert.Contains(t, report.Gaps, models.GapHealthcare)
	assert.Contains(t, report.Gaps, models.GapSanitation)
	assert.Contains(t, report.Gaps, models.GapConnectivity)

	// Expected score derived from the documented formula, not a magic number.
	expected := weightSchools*1.0 + // 5 schools required, 0 present
		weightHealthCenters*1.0 + // 1 health center required, 0 present
		weightElectricity*((80.0-30.0)/80.0) +
		weightToilets*((70.0-20.0)/70.0) +
		weightInternet*((50.0-10.0)/50.0)
	assert.InDelta(t, expected, report.SeverityScore, 1e-9)

	assert.Equal(t, "Need 5 more schools", report.Gaps[models.GapEducation].Message)
	assert.Equal(t, "Need 1 more health centers", report.Gaps[models.GapHealthcare].Message)
	assert.Equal(t, "Only 30% electricity coverage", report.Gaps[models.GapElectricity].Message)
}

func TestAnalyzeSeverityMonotoneInCoverage(t *testing.T) {
	v := models.Village{Population: 3000}
	base := models.Amenities{
		Water:         0,
		Electricity:   10,
		Schools:       0,
		HealthCenters: 0,
		Toilets:       10,
		Internet:      5,
	}

	prev := math.Inf(1)
	for pct := 0.0; pct <= 100; pct += 5 {
		a := base
		a.Electricity = pct
		score := Analyze(v, a).SeverityScore
		assert.LessOrEqual(t, score, prev, "score must not increase as electricity coverage rises (at %v%%)", pct)
		prev = score
	}

	prev = math.Inf(1)
	for pct := 0.0; pct <= 100; pct += 5 {
		a := base
		a.Toilets = pct
		score := Analyze(v, a).SeverityScore
		assert.LessOrEqual(t, score, prev, "score must not increase as toilet coverage rises (at %v%%)", pct)
		prev = score
	}
}

func TestAnalyzeStatusBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		electricity float64
		status      models.GapStatus
		priority    models.GapPriority
	}{
		{"barely deficient is moderate", 79, models.GapModerate, models.PriorityMedium},
		{"half deficiency is critical", 40, models.GapCritical, models.PriorityHigh},
		{"total absence is critical", 0, models.GapCritical, models.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, a := fullyCovered(2000)
			a.Electricity = tt.electricity

			report := Analyze(v, a)
			entry, ok := report.Gaps[models.GapElectricity]
			require.True(t, ok)
			assert.Equal(t, tt.status, entry.Status)
			assert.Equal(t, tt.priority, entry.Priority)
		})
	}
}

func TestAnalyzePopulationFloor(t *testing.T) {
	// A zero or negative population is treated as 1, so per-capita minimums
	// still require one school and one health center.
	for _, population := range []int{0, -10} {
		v := models.Village{Population: population}
		a := models.Amenities{Water: 1, Electricity: 100, Toilets: 100, Internet: 100}

		report := Analyze(v, a)
		assert.Contains(t, report.Gaps, models.GapEducation)
		assert.Contains(t, report.Gaps, models.GapHealthcare)
		assert.Equal(t, weightSchools+weightHealthCenters, report.SeverityScore)
	}
}

func TestAnalyzeClampsOutOfRangeInput(t *testing.T) {
	v, a := fullyCovered(1000)
	a.Electricity = 250
	a.Toilets = -40
	a.Internet = -1

	report := Analyze(v, a)

	assert.NotContains(t, report.Gaps, models.GapElectricity)
	// Negative coverage clamps to 0, giving full weight but never more.
	assert.Equal(t, weightToilets+weightInternet, report.SeverityScore)
}

func TestAnalyzeScoreBoundedToHundred(t *testing.T) {
	v := models.Village{Population: 100000}
	a := models.Amenities{} // everything absent

	report := Analyze(v, a)

	require.Len(t, report.Gaps, 6)
	assert.Equal(t, 100.0, report.SeverityScore)
	assert.Equal(t, 0.0, DevelopmentIndex(report))
}

func TestAnalyzeDeterministic(t *testing.T) {
	v := models.Village{Population: 4200}
	a := models.Amenities{Water: 1, Electricity: 55, Schools: 2, HealthCenters: 1, Toilets: 45, Internet: 20}

	first := Analyze(v, a)
	second := Analyze(v, a)

	assert.Equal(t, first.Gaps, second.Gaps)
	assert.Equal(t, first.SeverityScore, second.SeverityScore)
}
