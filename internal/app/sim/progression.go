package sim

import "github.com/pawden-app/pawden/internal/domain"

// Stage XP boundaries: Baby [0,199], Teen [200,599], Adult [600,∞).
const (
	TeenXP  int64 = 200
	AdultXP int64 = 600
)

// StageFromXP maps accumulated XP to a life stage. Total over xp >= 0.
func StageFromXP(xp int64) domain.Stage {
	switch {
	case xp >= AdultXP:
		return domain.StageAdult
	case xp >= TeenXP:
		return domain.StageTeen
	default:
		return domain.StageBaby
	}
}

// CheckEvolution reports whether newXP pushes the pet past its current
// stage. Evolution is monotonic: the stage can only increase, so a stage
// already at or beyond the XP-derived one never regresses.
func CheckEvolution(current domain.Stage, newXP int64) (domain.Stage, bool) {
	next := StageFromXP(newXP)
	if next > current {
		return next, true
	}
	return current, false
}

// StageProgress describes position within the current stage's XP band.
type StageProgress struct {
	Stage      domain.Stage `json:"stage"`
	Percent    int          `json:"percent"`
	XPToNext   int64        `json:"xp_to_next"`
	AtMaxStage bool         `json:"at_max_stage"`
}

// ProgressToNextStage returns the stage for xp, the clamped percentage
// through its band, and the XP remaining to the next boundary. Pure: two
// calls with the same xp return identical results.
func ProgressToNextStage(xp int64) StageProgress {
	stage := StageFromXP(xp)

	switch stage {
	case domain.StageBaby:
		return StageProgress{
			Stage:    stage,
			Percent:  Percent(xp, TeenXP),
			XPToNext: TeenXP - xp,
		}
	case domain.StageTeen:
		return StageProgress{
			Stage:    stage,
			Percent:  Percent(xp-TeenXP, AdultXP-TeenXP),
			XPToNext: AdultXP - xp,
		}
	default:
		return StageProgress{
			Stage:      stage,
			Percent:    100,
			AtMaxStage: true,
		}
	}
}
