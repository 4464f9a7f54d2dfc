package habits

import (
	"github.com/habitflow/backend/internal/datekey"
)

// ComputeStreak counts consecutive completed days ending today.
// Zero when today is not completed, even if yesterday was.
func ComputeStreak(completions Completions, today datekey.DateKey) int {
	streak := 0
	for day := today; completions[day]; day = day.Prev() {
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive completed days
// anywhere in the record, independent of today.
func LongestStreak(completions Completions) int {
	days := completions.CompletedDays()
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDays(1) == days[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
