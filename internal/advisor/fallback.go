package advisor

import "strings"

// Deterministic fallbacks used whenever the API is unavailable. Keyword
// heuristics, nothing clever: the engine re-validates everything anyway.

func fallbackAssessment(description string) Assessment {
	desc := strings.ToLower(description)

	difficulty := 3
	switch {
	case containsAny(desc, "drink", "water", "make bed", "5 min", "quick"):
		difficulty = 2
	case containsAny(desc, "marathon", "master", "expert", "intensive"):
		difficulty = 5
	case containsAny(desc, "workout", "gym", "hour", "run", "study"):
		difficulty = 4
	}

	category := "personal"
	switch {
	case containsAny(desc, "workout", "gym", "run", "exercise", "fitness"):
		category = "fitness"
	case containsAny(desc, "read", "learn", "study", "course"):
		category = "learning"
	case containsAny(desc, "meditate", "journal", "gratitude", "mindful"):
		category = "mindfulness"
	case containsAny(desc, "pray", "devotion", "scripture", "spiritual"):
		category = "spiritual"
	case containsAny(desc, "budget", "save", "invest", "money"):
		category = "finance"
	case containsAny(desc, "sleep", "water", "health", "vitamin"):
		category = "health"
	}

	statByCategory := map[string]string{
		"fitness":      "strength",
		"health":       "vitality",
		"learning":     "intelligence",
		"career":       "intelligence",
		"finance":      "sense",
		"mindfulness":  "willpower",
		"spiritual":    "willpower",
		"productivity": "agility",
	}
	stat, ok := statByCategory[category]
	if !ok {
		stat = "willpower"
	}

	// Midpoint of the tier's XP band.
	xpByDifficulty := map[int]int{1: 37, 2: 75, 3: 150, 4: 300, 5: 500, 6: 800}

	return Assessment{
		Difficulty:   difficulty,
		XPReward:     xpByDifficulty[difficulty],
		Category:     category,
		TargetStat:   stat,
		TimeEstimate: "15-20 minutes",
		Tip:          "Start small and build consistency. You can always increase the challenge later!",
	}
}

func fallbackPlan(description string, targetWeeks int) GoalPlan {
	title := strings.TrimSpace(description)
	if len(title) > 50 {
		title = title[:50]
	}
	return GoalPlan{
		Title:          title,
		Difficulty:     3,
		TotalXP:        2500,
		Category:       "personal",
		TargetStat:     "willpower",
		EstimatedWeeks: targetWeeks,
		Steps: []PlanStep{
			{Title: "Research and plan", Description: "Gather information and create a detailed plan", EstimatedDuration: "1 week", XPReward: 200},
			{Title: "Set up foundation", Description: "Prepare everything you need to get started", EstimatedDuration: "1 week", XPReward: 250},
			{Title: "Begin practice", Description: "Start with basic exercises and activities", EstimatedDuration: "2 weeks", XPReward: 300},
			{Title: "Build consistency", Description: "Establish a regular routine", EstimatedDuration: "2 weeks", XPReward: 350},
			{Title: "Increase challenge", Description: "Push beyond comfort zone", EstimatedDuration: "2 weeks", XPReward: 300},
			{Title: "Refine technique", Description: "Focus on quality and improvement", EstimatedDuration: "2 weeks", XPReward: 350},
			{Title: "Final push", Description: "Complete the goal with excellence", EstimatedDuration: "2 weeks", XPReward: 500},
		},
	}
}

func fallbackChat() string {
	return `I'm currently in offline mode. Here's what you can do:
- Create a new habit to build your streak
- Work on your active goals
- Check your progress with 'gq status'

When AI is available, I'll give you personalized coaching!`
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
