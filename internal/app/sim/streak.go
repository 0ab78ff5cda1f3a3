package sim

import "time"

// Streak dates are calendar days in a single fixed zone (UTC) so the day
// boundary never shifts with the caller's locale.
const streakDateLayout = "2006-01-02"

// DateOf renders an instant as the UTC calendar date used by the streak
// cursor.
func DateOf(t time.Time) string {
	return t.UTC().Format(streakDateLayout)
}

// StreakUpdate is the outcome of advancing the streak cursor by one owner
// action.
type StreakUpdate struct {
	Current int    `json:"current"`
	Date    string `json:"date"`
	Changed bool   `json:"changed"` // false when the action landed on an already-counted day
	Started bool   `json:"started"` // first action ever
	Broken  bool   `json:"broken"`  // gap > 1 day, streak reset to 1
}

// AdvanceStreak applies one owner action dated today ("YYYY-MM-DD", UTC)
// to the streak state machine:
//
//	no cursor      → streak starts at 1
//	same day       → unchanged
//	next day       → streak + 1
//	gap > 1 day    → streak resets to 1
//
// The reset lands on 1, never 0: the action that broke the streak also
// begins the next one.
func AdvanceStreak(lastDate string, current int, today string) StreakUpdate {
	if lastDate == "" {
		return StreakUpdate{Current: 1, Date: today, Changed: true, Started: true}
	}

	switch delta := dayDelta(lastDate, today); {
	case delta <= 0:
		return StreakUpdate{Current: current, Date: lastDate}
	case delta == 1:
		return StreakUpdate{Current: current + 1, Date: today, Changed: true}
	default:
		return StreakUpdate{Current: 1, Date: today, Changed: true, Broken: true}
	}
}

// streakMilestones are the one-time celebration thresholds.
var streakMilestones = []int{3, 7, 14, 30, 60}

// CheckStreakMilestone returns the first milestone newly crossed between
// oldStreak and newStreak. Normal updates advance by at most 1, but the
// scan stays correct for larger jumps: thresholds are checked in
// ascending order and only the smallest newly-crossed one is reported.
func CheckStreakMilestone(oldStreak, newStreak int) (int, bool) {
	for _, m := range streakMilestones {
		if oldStreak < m && newStreak >= m {
			return m, true
		}
	}
	return 0, false
}

// dayDelta returns whole calendar days from one streak date to another.
// Unparseable cursors count as a break.
func dayDelta(from, to string) int {
	a, err := time.ParseInLocation(streakDateLayout, from, time.UTC)
	if err != nil {
		return 1 << 20
	}
	b, err := time.ParseInLocation(streakDateLayout, to, time.UTC)
	if err != nil {
		return 1 << 20
	}
	return int(b.Sub(a).Hours() / 24)
}
