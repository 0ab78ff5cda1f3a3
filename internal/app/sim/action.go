package sim

import (
	"fmt"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
)

// ActionRequest is one attempted interaction with a pet.
type ActionRequest struct {
	Channel domain.Channel
	Action  domain.ActionType
	ActorID string
}

// ChannelSnapshot carries the interaction-log readings the engine needs:
// the pet's current audience size (zero while sharing is off) and, on the
// visitor channel, this actor's most recent interaction instant.
type ChannelSnapshot struct {
	UniqueInteractors int
	LastVisitorAction time.Time
}

// Notice is one human-readable event produced by an accepted action.
type Notice struct {
	Type    domain.EventType `json:"type"`
	Message string           `json:"message"`
}

// ActionResult is the fully resolved outcome of an accepted action: the
// next pet state plus ordered notices. The caller commits Pet atomically,
// appends the interaction record, and fans out the notices.
type ActionResult struct {
	Pet         domain.Pet
	Evolved     bool
	Aged        bool
	Decayed     bool
	DecayPoints int
	Milestone   int
	Streak      StreakUpdate
	Notices     []Notice
}

// Perform runs one action request against a pet snapshot. It is a pure
// function of (snapshot, request, log readings, now): no I/O, no hidden
// state. Steps, in order:
//
//  1. validate the action against the channel's table,
//  2. enforce the channel's cooldown scope,
//  3. apply the action's stat deltas (vitals clamped, XP unbounded,
//     coins floored at zero),
//  4. apply any overdue decay/aging on top of the post-action vitals,
//  5. owner channel only: advance the streak and check for evolution.
//
// The cooldown gate runs before any mutation; a blocked action changes
// nothing.
func Perform(pet domain.Pet, req ActionRequest, env ChannelSnapshot, now time.Time) (ActionResult, error) {
	effect, ok := domain.EffectFor(req.Channel, req.Action)
	if !ok {
		return ActionResult{}, fmt.Errorf("%s on %s channel: %w", req.Action, req.Channel, domain.ErrInvalidAction)
	}

	// Owner cooldown anchors on the pet's own last action; each visitor
	// anchors on their own most recent record. The two scopes never
	// share state.
	anchor := pet.LastActionAt
	if req.Channel == domain.ChannelVisitor {
		anchor = env.LastVisitorAction
	}
	cd := RemainingCooldown(anchor, now, pet.CurrentStreak, env.UniqueInteractors)
	if cd.OnCooldown {
		return ActionResult{}, &domain.CooldownError{Remaining: cd.RemainingSeconds}
	}

	next := pet
	next.Vitals = ClampVitals(domain.Vitals{
		Fullness:    pet.Vitals.Fullness + effect.Fullness,
		Happiness:   pet.Vitals.Happiness + effect.Happiness,
		Cleanliness: pet.Vitals.Cleanliness + effect.Cleanliness,
		Energy:      pet.Vitals.Energy + effect.Energy,
	})
	next.XP += effect.XP
	next.Coins += effect.Coins
	if next.Coins < 0 {
		next.Coins = 0
	}
	next.LastActionAt = now

	result := ActionResult{}

	// Decay applies after the action's own stat change, not before.
	age := EvaluateAge(next.Vitals, next.AgeMonths, next.LastAgeCheck, now)
	if age.ShouldUpdate {
		next.Vitals = age.Vitals
		next.AgeMonths = age.AgeMonths
		next.LastAgeCheck = now
		result.Aged = age.Aged
		result.Decayed = age.Decayed
		result.DecayPoints = decayPerDay * age.Days
	}

	if req.Channel == domain.ChannelOwner {
		upd := AdvanceStreak(next.LastInteractionDate, next.CurrentStreak, DateOf(now))
		if upd.Changed {
			if m, hit := CheckStreakMilestone(next.CurrentStreak, upd.Current); hit {
				result.Milestone = m
			}
			next.CurrentStreak = upd.Current
			next.LastInteractionDate = upd.Date
			if next.CurrentStreak > next.LongestStreak {
				next.LongestStreak = next.CurrentStreak
			}
		}
		result.Streak = upd

		if stage, evolved := CheckEvolution(next.Stage, next.XP); evolved {
			next.Stage = stage
			result.Evolved = true
		}
	}

	result.Pet = next
	result.Notices = buildNotices(next, result, age)
	return result, nil
}

// buildNotices assembles the notification strings in their fixed order:
// evolution, aging, decay, streak milestone.
func buildNotices(pet domain.Pet, r ActionResult, age AgeResult) []Notice {
	var notices []Notice
	if r.Evolved {
		notices = append(notices, Notice{
			Type:    domain.EventEvolution,
			Message: fmt.Sprintf("%s evolved into a %s!", pet.Name, pet.Stage),
		})
	}
	if age.ShouldUpdate {
		notices = append(notices, Notice{Type: domain.EventAging, Message: age.Message})
	}
	if r.Decayed {
		notices = append(notices, Notice{
			Type:    domain.EventDecay,
			Message: fmt.Sprintf("%s's stats dropped %d points while unattended.", pet.Name, r.DecayPoints),
		})
	}
	if r.Milestone > 0 {
		notices = append(notices, Notice{
			Type:    domain.EventMilestone,
			Message: fmt.Sprintf("%d-day care streak! Keep it going.", r.Milestone),
		})
	}
	return notices
}
