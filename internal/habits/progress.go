package habits

import (
	"github.com/habitflow/backend/internal/datekey"
)

const (
	WeekWindow  = 7
	MonthWindow = 30
)

type DayProgress struct {
	Date       datekey.DateKey `json:"date"`
	DayName    string          `json:"dayName"`
	Completed  int             `json:"completed"`
	Total      int             `json:"total"`
	Percentage int             `json:"percentage"`
}

type Stats struct {
	TotalHabits       int `json:"totalHabits"`
	ActiveStreaks     int `json:"activeStreaks"`
	BestCurrentStreak int `json:"bestCurrentStreak"`
	LongestStreak     int `json:"longestStreak"`
	CompletedToday    int `json:"completedToday"`
	ScheduledToday    int `json:"scheduledToday"`
	OverallCompletion int `json:"overallCompletion"`
}

// Percentage rounds part/total*100 half up, using integers only.
// A zero total yields 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

func WeeklyProgress(habits []*Habit, today datekey.DateKey) []DayProgress {
	return windowProgress(habits, today, WeekWindow)
}

func MonthlyProgress(habits []*Habit, today datekey.DateKey) []DayProgress {
	return windowProgress(habits, today, MonthWindow)
}

// windowProgress counts, for every day of the trailing window, how many
// habits were completed. Every habit counts towards the daily total.
func windowProgress(habits []*Habit, today datekey.DateKey, days int) []DayProgress {
	window := datekey.Window(today, days)
	progress := make([]DayProgress, 0, len(window))
	total := len(habits)
	for _, day := range window {
		completed := 0
		for _, h := range habits {
			if h.Completions[day] {
				completed++
			}
		}
		progress = append(progress, DayProgress{
			Date:       day,
			DayName:    day.DayName(),
			Completed:  completed,
			Total:      total,
			Percentage: Percentage(completed, total),
		})
	}
	return progress
}

// OverallCompletion is completed habit-days over possible habit-days
// across the monthly window, as a single ratio.
func OverallCompletion(habits []*Habit, today datekey.DateKey) int {
	if len(habits) == 0 {
		return 0
	}
	window := datekey.Window(today, MonthWindow)
	completed := 0
	for _, h := range habits {
		for _, day := range window {
			if h.Completions[day] {
				completed++
			}
		}
	}
	return Percentage(completed, len(habits)*len(window))
}

func ComputeStats(habits []*Habit, today datekey.DateKey) Stats {
	stats := Stats{
		TotalHabits:       len(habits),
		OverallCompletion: OverallCompletion(habits, today),
	}
	for _, h := range habits {
		streak := ComputeStreak(h.Completions, today)
		if streak > 0 {
			stats.ActiveStreaks++
		}
		if streak > stats.BestCurrentStreak {
			stats.BestCurrentStreak = streak
		}
		if longest := LongestStreak(h.Completions); longest > stats.LongestStreak {
			stats.LongestStreak = longest
		}
		if h.Completions[today] {
			stats.CompletedToday++
		}
		if h.IsScheduledOn(today) {
			stats.ScheduledToday++
		}
	}
	return stats
}
