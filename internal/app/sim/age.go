package sim

import (
	"fmt"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
)

// Decay and aging run lazily: no background process exists, the evaluator
// catches up on elapsed days whenever a pet is next touched.
const (
	decayPerDay = 5 // points removed from every vital per elapsed day

	// careThreshold is the averaged-vital bar for aging; at least
	// careVitalsNeeded of the four must clear it.
	careThreshold    = 45.0
	careVitalsNeeded = 3
)

// AgeResult is the catch-up outcome for one evaluation.
type AgeResult struct {
	ShouldUpdate bool          `json:"should_update"`
	Vitals       domain.Vitals `json:"vitals"`
	AgeMonths    int           `json:"age_months"`
	Days         int           `json:"days"`
	Decayed      bool          `json:"decayed"`
	Aged         bool          `json:"aged"`
	Message      string        `json:"message,omitempty"`
}

// EvaluateAge computes overdue decay and aging for a pet last evaluated at
// lastCheck. Whole elapsed days decay every vital by 5 points each, in one
// jump. Aging eligibility uses the average of each vital's pre-decay and
// post-decay value, not either endpoint alone, and needs 3 of 4 averages
// at or above the care threshold. When eligible, the pet gains one
// in-world month per elapsed real day; otherwise age is unchanged. There
// is no partial credit for a subset of the elapsed days.
func EvaluateAge(vitals domain.Vitals, ageMonths int, lastCheck, now time.Time) AgeResult {
	days := int(now.Sub(lastCheck).Hours() / 24)
	if days <= 0 {
		return AgeResult{Vitals: vitals, AgeMonths: ageMonths}
	}

	decay := decayPerDay * days
	after := ClampVitals(domain.Vitals{
		Fullness:    vitals.Fullness - decay,
		Happiness:   vitals.Happiness - decay,
		Cleanliness: vitals.Cleanliness - decay,
		Energy:      vitals.Energy - decay,
	})

	result := AgeResult{
		ShouldUpdate: true,
		Vitals:       after,
		AgeMonths:    ageMonths,
		Days:         days,
		Decayed:      true,
	}

	healthy := 0
	pairs := [4][2]int{
		{vitals.Fullness, after.Fullness},
		{vitals.Happiness, after.Happiness},
		{vitals.Cleanliness, after.Cleanliness},
		{vitals.Energy, after.Energy},
	}
	for _, p := range pairs {
		if (float64(p[0])+float64(p[1]))/2 >= careThreshold {
			healthy++
		}
	}

	if healthy >= careVitalsNeeded {
		result.Aged = true
		result.AgeMonths = ageMonths + days
		result.Message = fmt.Sprintf("Your pet aged %s!", formatMonths(days))
	} else {
		result.Message = "Your pet did not meet the care threshold to grow."
	}
	return result
}

// formatMonths renders an in-world month count as "N months" or
// "Y years M months".
func formatMonths(months int) string {
	years, rem := months/12, months%12
	switch {
	case years == 0:
		return plural(months, "month")
	case rem == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rem, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
