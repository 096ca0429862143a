package engine

import "strings"

// Stat is one of the six fixed character attributes a habit can train.
type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatVitality     Stat = "vitality"
	StatAgility      Stat = "agility"
	StatSense        Stat = "sense"
	StatWillpower    Stat = "willpower"
)

// DefaultStat is used when external input is missing or invalid.
const DefaultStat = StatWillpower

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatVitality, StatAgility, StatSense, StatWillpower:
		return true
	default:
		return false
	}
}

// ParseStat accepts advisory-service or user input. Unrecognized values fall
// back to DefaultStat rather than failing.
func ParseStat(input string) Stat {
	s := Stat(strings.TrimSpace(strings.ToLower(input)))
	if s.IsValid() {
		return s
	}
	return DefaultStat
}

// Difficulty is the six-tier classification driving default XP ranges.
type Difficulty int

const (
	DifficultyTrivial   Difficulty = 1
	DifficultyEasy      Difficulty = 2
	DifficultyMedium    Difficulty = 3
	DifficultyHard      Difficulty = 4
	DifficultyExpert    Difficulty = 5
	DifficultyLegendary Difficulty = 6
)

const DefaultDifficulty = DifficultyMedium

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyLegendary
}

func (d Difficulty) Name() string {
	switch d {
	case DifficultyTrivial:
		return "Trivial"
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	case DifficultyExpert:
		return "Expert"
	case DifficultyLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// XPRange returns the suggested base-XP band for the tier.
func (d Difficulty) XPRange() (min, max int) {
	switch d {
	case DifficultyTrivial:
		return 25, 50
	case DifficultyEasy:
		return 50, 100
	case DifficultyMedium:
		return 100, 200
	case DifficultyHard:
		return 200, 400
	case DifficultyExpert:
		return 400, 600
	case DifficultyLegendary:
		return 600, 1000
	default:
		return 100, 200
	}
}

// ClampDifficulty validates externally suggested difficulty, substituting the
// default when out of range. Never an error.
func ClampDifficulty(d int) Difficulty {
	diff := Difficulty(d)
	if !diff.IsValid() {
		return DefaultDifficulty
	}
	return diff
}

// Category is one of the fixed habit/goal category keys.
type Category string

const DefaultCategory Category = "personal"

var categories = map[Category]bool{
	"fitness": true, "health": true, "learning": true, "career": true,
	"finance": true, "creative": true, "mindfulness": true, "productivity": true,
	"social": true, "personal": true, "spiritual": true, "home": true,
	"environment": true, "relationships": true, "life_goals": true, "skills": true,
}

func (c Category) IsValid() bool {
	return categories[c]
}

func ParseCategory(input string) Category {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	if c.IsValid() {
		return c
	}
	return DefaultCategory
}

// Frequency is how often a habit is meant to recur. Completion idempotency is
// per calendar day regardless.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func ParseFrequency(input string) Frequency {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return f
	default:
		return FrequencyDaily
	}
}

// Tier is the named rank band a level falls into.
type Tier struct {
	Rank     int
	Name     string
	MinLevel int
	MaxLevel int
}

var tiers = []Tier{
	{1, "Novice Adventurer", 1, 10},
	{2, "Skilled Warrior", 11, 25},
	{3, "Elite Champion", 26, 50},
	{4, "Master Guardian", 51, 75},
	{5, "Legendary Hero", 76, 99},
	{6, "Shadow Monarch", 100, 999},
}

func TierForLevel(level int) Tier {
	for _, t := range tiers {
		if level >= t.MinLevel && level <= t.MaxLevel {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Default XP rewards substituted when an externally suggested value is
// non-positive.
const (
	DefaultHabitXP    = 100
	DefaultGoalXP     = 2000
	DefaultGoalStepXP = 200
)

// ClampXPReward validates a suggested reward, substituting def when it is
// not a positive amount.
func ClampXPReward(xp, def int) int {
	if xp <= 0 {
		return def
	}
	return xp
}
