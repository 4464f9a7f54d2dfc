package ai

import (
	"fmt"
	"strings"

	"github.com/habitflow/backend/internal/habits"
)

const foodPrompt = "Analyze this food image and provide the following information in JSON format: " +
	`{ "name": "food name", "calories": "estimated calories per serving", "protein": "protein content in grams", ` +
	`"description": "brief description of the food item", "healthTips": "health-related suggestions" }`

func suggestionPrompt(req SuggestionRequest) string {
	var names, categories []string
	seen := make(map[habits.Category]bool)
	for _, h := range req.Habits {
		names = append(names, h.Name)
		if !seen[h.Category] {
			seen[h.Category] = true
			categories = append(categories, string(h.Category))
		}
	}

	habitNames := strings.Join(names, ", ")
	if habitNames == "" {
		habitNames = "None yet"
	}
	categoryNames := strings.Join(categories, ", ")
	if categoryNames == "" {
		categoryNames = "None"
	}
	goals := strings.TrimSpace(req.UserGoals)
	if goals == "" {
		goals = "General wellness improvement"
	}

	allCategories := make([]string, len(habits.Categories))
	for i, c := range habits.Categories {
		allCategories[i] = string(c)
	}

	return fmt.Sprintf(`You are a personal wellness coach AI. Analyze the user's current habits and provide 5 personalized new habit suggestions.

Current User Habits: %s
Current Categories: %s
Overall Completion Rate: %d%%
User Goals: %s

Based on this information, suggest 5 NEW habits that would complement their existing routine. For each suggestion, provide:
1. Habit name (short and clear)
2. Category (%s)
3. Emoji icon (one emoji that represents the habit)
4. Brief reason why this habit would benefit them (1-2 sentences)
5. Suggested time commitment (e.g., "5 minutes", "20 minutes", "30 minutes")

Focus on:
- Balance: If they have many fitness habits, suggest mindfulness or learning
- Achievability: Start with small, manageable habits
- Science-backed benefits: Cite research when relevant
- Personalization: Connect to their existing successful patterns

Format your response as a JSON array with this structure:
[
  {
    "name": "Morning Meditation",
    "category": "Mindfulness",
    "icon": "🧘",
    "reason": "Your regular exercise routine shows discipline. Adding 5 minutes of meditation can reduce stress and improve focus throughout the day.",
    "timeCommitment": "5 minutes",
    "difficulty": "easy"
  }
]

IMPORTANT: Return ONLY the JSON array, no other text.`,
		habitNames, categoryNames, req.CompletionRate, goals, strings.Join(allCategories, ", "))
}
