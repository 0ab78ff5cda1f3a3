package sim

import "time"

// BaseCooldownSeconds is the unmodified wait between accepted actions on
// one actor channel.
const BaseCooldownSeconds int64 = 600

// streakBreak is one row of the streak reduction table.
type streakBreak struct {
	minDays   int
	reduction int64
}

// streakBreaks in ascending order of streak length. A 60-day streak alone
// cancels the whole base cooldown.
var streakBreaks = []streakBreak{
	{1, 0},
	{3, 120},
	{7, 240},
	{14, 360},
	{30, 480},
	{60, 600},
}

// StreakReduction returns the cooldown seconds removed by a daily streak.
func StreakReduction(streakDays int) int64 {
	var r int64
	for _, b := range streakBreaks {
		if streakDays >= b.minDays {
			r = b.reduction
		}
	}
	return r
}

// EffectiveCooldown composes the streak and social reductions against the
// base window. The reductions are additive and can jointly reach the base,
// yielding an always-ready pet.
func EffectiveCooldown(streakDays, uniqueInteractors int) int64 {
	c := BaseCooldownSeconds - StreakReduction(streakDays) - SocialBonusFor(uniqueInteractors).ReductionSeconds
	if c < 0 {
		return 0
	}
	return c
}

// CooldownState is the remaining-time answer for one actor channel.
type CooldownState struct {
	EffectiveSeconds int64 `json:"effective_seconds"`
	RemainingSeconds int64 `json:"remaining_seconds"` // rounded up to whole seconds
	OnCooldown       bool  `json:"on_cooldown"`
}

// RemainingCooldown answers whether an actor may act now. lastAction is
// the channel's own anchor: the pet's last accepted action for the owner,
// or this specific visitor's most recent interaction for a shared link.
// A zero lastAction means no prior action, so always immediately actionable.
func RemainingCooldown(lastAction time.Time, now time.Time, streakDays, uniqueInteractors int) CooldownState {
	effective := EffectiveCooldown(streakDays, uniqueInteractors)
	state := CooldownState{EffectiveSeconds: effective}

	if lastAction.IsZero() || effective == 0 {
		return state
	}

	elapsed := now.Sub(lastAction)
	remaining := time.Duration(effective)*time.Second - elapsed
	if remaining <= 0 {
		return state
	}

	// Round up so the displayed wait never under-promises.
	secs := int64(remaining / time.Second)
	if remaining%time.Second != 0 {
		secs++
	}
	state.RemainingSeconds = secs
	state.OnCooldown = true
	return state
}
