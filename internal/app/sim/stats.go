// Package sim implements the Pawden pet-state simulation engine:
// stat decay against wall-clock time, XP-driven stage evolution, daily
// streak continuity, social cooldown bonuses, and action-effect
// application. Every function here is pure: callers supply snapshots and
// a clock reading, and commit the results themselves.
package sim

import "github.com/pawden-app/pawden/internal/domain"

// VitalMin and VitalMax bound every vital stat.
const (
	VitalMin = 0
	VitalMax = 100
)

// Clamp bounds v into [lo, hi]. Idempotent: Clamp(Clamp(v)) == Clamp(v).
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVital bounds a vital stat into [0, 100].
func ClampVital(v int) int {
	return Clamp(v, VitalMin, VitalMax)
}

// ClampVitals applies ClampVital to all four stats.
func ClampVitals(v domain.Vitals) domain.Vitals {
	return domain.Vitals{
		Fullness:    ClampVital(v.Fullness),
		Happiness:   ClampVital(v.Happiness),
		Cleanliness: ClampVital(v.Cleanliness),
		Energy:      ClampVital(v.Energy),
	}
}

// Percent returns part/whole as a 0–100 percentage, clamped.
func Percent(part, whole int64) int {
	if whole <= 0 {
		return 100
	}
	pct := int(part * 100 / whole)
	return Clamp(pct, 0, 100)
}
