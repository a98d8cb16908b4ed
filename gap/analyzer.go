// Package gap computes infrastructure gap reports for villages. The analysis
// is a pure function of the village record and its amenity profile: each
// deficient category contributes weight * deficiency fraction to an additive
// severity score on a 0-100 scale.
package gap

import (
	"fmt"
	"time"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

// Coverage thresholds below which a category is reported as a gap.
const (
	electricityThreshold = 80.0 // percent
	toiletsThreshold     = 70.0 // percent
	internetThreshold    = 50.0 // percent

	schoolsPerPopulation       = 1000 // one school required per 1000 people
	healthCentersPerPopulation = 5000 // one health center per 5000 people
)

// Severity weights per category. They sum to 100, so a village missing
// everything scores exactly 100.
const (
	weightWater         = 25.0
	weightElectricity   = 20.0
	weightToilets       = 15.0
	weightHealthCenters = 20.0
	weightSchools       = 15.0
	weightInternet      = 5.0
)

// criticalFraction is the deficiency fraction at or above which a category is
// reported as critical rather than moderate.
const criticalFraction = 0.5

// Analyze computes the gap report for one village. Percentage inputs are
// clamped to [0,100] and counts floored at zero before evaluation; a
// non-positive population is treated as 1 so per-capita minimums stay
// defined. Identical inputs always produce identical gaps and score.
func Analyze(v models.Village, a models.Amenities) models.GapReport {
	a = a.Normalized()

	population := v.Population
	if population <= 0 {
		population = 1
	}

	report := models.GapReport{
		VillageID:   v.ID.Hex(),
		Gaps:        make(map[models.GapCategory]models.GapEntry),
		LastUpdated: time.Now().UTC(),
	}

	if a.Water == 0 {
		report.Gaps[models.GapWater] = models.GapEntry{
			Status:   models.GapCritical,
			Priority: models.PriorityHigh,
			Message:  "No water access available",
		}
		report.SeverityScore += weightWater
	}

	if a.Electricity < electricityThreshold {
		frac := clampFraction((electricityThreshold - a.Electricity) / electricityThreshold)
		report.Gaps[models.GapElectricity] = models.GapEntry{
			Status:   statusFor(frac),
			Priority: electricityPriority(frac),
			Message:  fmt.Sprintf("Only %g%% electricity coverage", a.Electricity),
		}
		report.SeverityScore += weightElectricity * frac
	}

	requiredSchools := minimumFor(population, schoolsPerPopulation)
	if a.Schools < requiredSchools {
		frac := clampFraction(float64(requiredSchools-a.Schools) / float64(requiredSchools))
		report.Gaps[models.GapEducation] = models.GapEntry{
			Status:   statusFor(frac),
			Priority: models.PriorityHigh,
			Message:  fmt.Sprintf("Need %d more schools", requiredSchools-a.Schools),
		}
		report.SeverityScore += weightSchools * frac
	}

	requiredHealth := minimumFor(population, healthCentersPerPopulation)
	if a.HealthCenters < requiredHealth {
		frac := clampFraction(float64(requiredHealth-a.HealthCenters) / float64(requiredHealth))
		report.Gaps[models.GapHealthcare] = models.GapEntry{
			Status:   statusFor(frac),
			Priority: models.PriorityHigh,
			Message:  fmt.Sprintf("Need %d more health centers", requiredHealth-a.HealthCenters),
		}
		report.SeverityScore += weightHealthCenters * frac
	}

	if a.Toilets < toiletsThreshold {
		frac := clampFraction((toiletsThreshold - a.Toilets) / toiletsThreshold)
		report.Gaps[models.GapSanitation] = models.GapEntry{
			Status:   statusFor(frac),
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("Only %g%% toilet coverage", a.Toilets),
		}
		report.SeverityScore += weightToilets * frac
	}

	if a.Internet < internetThreshold {
		frac := clampFraction((internetThreshold - a.Internet) / internetThreshold)
		report.Gaps[models.GapConnectivity] = models.GapEntry{
			Status:   statusFor(frac),
			Priority: models.PriorityLow,
			Message:  fmt.Sprintf("Only %g%% internet coverage", a.Internet),
		}
		report.SeverityScore += weightInternet * frac
	}

	return report
}

// DevelopmentIndex derives the inverse convenience metric from a report:
// 100 minus the severity score, clamped to [0,100].
func DevelopmentIndex(r models.GapReport) float64 {
	idx := 100 - r.SeverityScore
	if idx < 0 {
		return 0
	}
	if idx > 100 {
		return 100
	}
	return idx
}

// minimumFor is the population-scaled minimum facility count, never below 1.
func minimumFor(population, perPopulation int) int {
	required := population / perPopulation
	if required < 1 {
		required = 1
	}
	return required
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func statusFor(frac float64) models.GapStatus {
	if frac >= criticalFraction {
		return models.GapCritical
	}
	return models.GapModerate
}

func electricityPriority(frac float64) models.GapPriority {
	if frac >= criticalFraction {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}
