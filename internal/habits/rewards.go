package habits

import (
	"fmt"
	"sort"
)

type RewardTier struct {
	Threshold int
	Icon      string
	Title     string
}

// RewardTiers is ordered from the highest threshold down.
var RewardTiers = []RewardTier{
	{365, "🏆", "Year Warrior"},
	{180, "🌟", "Half Year Hero"},
	{100, "💯", "Century Club"},
	{60, "🔥", "Two Month Master"},
	{30, "🎯", "Monthly Champion"},
	{21, "⚡", "Habit Former"},
	{14, "🌱", "Two Week Wonder"},
	{7, "🎊", "Week Warrior"},
	{3, "🚀", "Getting Started"},
}

type Reward struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
	Streak      int    `json:"streak"`
}

// RewardForStreak returns the highest tier reached by streak, if any.
func RewardForStreak(streak int) (RewardTier, bool) {
	for _, tier := range RewardTiers {
		if streak >= tier.Threshold {
			return tier, true
		}
	}
	return RewardTier{}, false
}

// ResolveRewards gives each habit its best badge, one entry per title,
// sorted by streak descending.
func ResolveRewards(habits []*Habit) []Reward {
	byTitle := make(map[string]Reward)
	for _, h := range habits {
		tier, ok := RewardForStreak(h.Streak)
		if !ok {
			continue
		}
		if existing, found := byTitle[tier.Title]; found && existing.Streak >= h.Streak {
			continue
		}
		byTitle[tier.Title] = Reward{
			Title:       tier.Title,
			Icon:        tier.Icon,
			Description: fmt.Sprintf("%d day streak!", tier.Threshold),
			Threshold:   tier.Threshold,
			Streak:      h.Streak,
		}
	}

	rewards := make([]Reward, 0, len(byTitle))
	for _, r := range byTitle {
		rewards = append(rewards, r)
	}
	sort.Slice(rewards, func(i, j int) bool {
		if rewards[i].Streak != rewards[j].Streak {
			return rewards[i].Streak > rewards[j].Streak
		}
		return rewards[i].Threshold > rewards[j].Threshold
	})
	return rewards
}
