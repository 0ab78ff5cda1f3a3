package sim

// SocialTier names a shared pet's audience bracket.
type SocialTier string

const (
	TierPrivate  SocialTier = "private"
	TierShared   SocialTier = "shared"
	TierFriendly SocialTier = "friendly"
	TierSocial   SocialTier = "social"
	TierPopular  SocialTier = "popular"
	TierViral    SocialTier = "viral"
)

// socialBreak is one row of the audience tier table.
type socialBreak struct {
	min       int
	reduction int64 // seconds off the base cooldown
	tier      SocialTier
}

// socialBreaks in ascending order of audience size.
var socialBreaks = []socialBreak{
	{0, 0, TierPrivate},
	{5, 60, TierShared},
	{10, 120, TierFriendly},
	{20, 180, TierSocial},
	{50, 240, TierPopular},
	{100, 300, TierViral},
}

// SocialBonus is the cooldown reduction earned from a pet's audience of
// distinct non-owner interactors.
type SocialBonus struct {
	Tier             SocialTier `json:"tier"`
	ReductionSeconds int64      `json:"reduction_seconds"`
	NextAt           int        `json:"next_at,omitempty"`      // interactors needed for the next tier
	NextReduction    int64      `json:"next_reduction,omitempty"`
	AtTopTier        bool       `json:"at_top_tier"`
}

// SocialBonusFor maps a unique-interactor count to its tier, reduction,
// and the next breakpoint to aim for.
func SocialBonusFor(uniqueInteractors int) SocialBonus {
	idx := 0
	for i, b := range socialBreaks {
		if uniqueInteractors >= b.min {
			idx = i
		}
	}

	bonus := SocialBonus{
		Tier:             socialBreaks[idx].tier,
		ReductionSeconds: socialBreaks[idx].reduction,
	}
	if idx == len(socialBreaks)-1 {
		bonus.AtTopTier = true
		return bonus
	}
	next := socialBreaks[idx+1]
	bonus.NextAt = next.min
	bonus.NextReduction = next.reduction
	return bonus
}
