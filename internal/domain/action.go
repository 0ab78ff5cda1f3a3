package domain

// Channel identifies who is acting on a pet. The owner channel and the
// visitor channel have disjoint action tables and separately scoped
// cooldowns.
type Channel string

const (
	ChannelOwner   Channel = "owner"
	ChannelVisitor Channel = "visitor"
)

// ActionType names a discrete interaction with a pet.
type ActionType string

const (
	ActionFeed     ActionType = "feed"
	ActionPlay     ActionType = "play"
	ActionClean    ActionType = "clean"
	ActionRest     ActionType = "rest"
	ActionExercise ActionType = "exercise"
	ActionTreat    ActionType = "treat"
	ActionWork     ActionType = "work"
	ActionPet      ActionType = "pet"
)

// ActionEffect is the fixed stat delta table entry for one action.
// Vital deltas are clamped into [0,100] on application; XP is applied
// without an upper bound; a negative coin delta floors at zero.
type ActionEffect struct {
	Fullness    int
	Happiness   int
	Cleanliness int
	Energy      int
	Coins       int64
	XP          int64
}

// ownerEffects is the owner-channel action table.
var ownerEffects = map[ActionType]ActionEffect{
	ActionFeed:     {Fullness: 20, XP: 5},
	ActionPlay:     {Happiness: 20, Energy: -15, XP: 10},
	ActionClean:    {Cleanliness: 25, XP: 5},
	ActionRest:     {Energy: 30, XP: 5},
	ActionExercise: {Fullness: -10, Happiness: 10, Energy: -15, XP: 15},
	ActionTreat:    {Fullness: 10, Happiness: 15, Coins: -5, XP: 5},
	ActionWork:     {Happiness: -5, Energy: -20, Coins: 10, XP: 10},
}

// visitorEffects is the smaller table available through a shared link.
var visitorEffects = map[ActionType]ActionEffect{
	ActionPet:   {Happiness: 10, XP: 3},
	ActionTreat: {Fullness: 10, Happiness: 10, XP: 3},
}

// EffectFor resolves an action's effect on the given channel.
// The second return is false when the action is unknown for that channel.
func EffectFor(channel Channel, action ActionType) (ActionEffect, bool) {
	switch channel {
	case ChannelOwner:
		e, ok := ownerEffects[action]
		return e, ok
	case ChannelVisitor:
		e, ok := visitorEffects[action]
		return e, ok
	}
	return ActionEffect{}, false
}

// ActionsFor lists the valid actions on a channel, for display.
func ActionsFor(channel Channel) []ActionType {
	switch channel {
	case ChannelOwner:
		return []ActionType{ActionFeed, ActionPlay, ActionClean, ActionRest,
			ActionExercise, ActionTreat, ActionWork}
	case ChannelVisitor:
		return []ActionType{ActionPet, ActionTreat}
	}
	return nil
}
