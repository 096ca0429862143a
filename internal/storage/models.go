package storage

import "time"

// User is the singleton progression profile. Level/current XP are stored
// denormalized but must stay consistent with total XP via the leveling curve.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time

	Level     int
	CurrentXP int
	TotalXP   int
	Gold      int
	Gems      int

	Strength     int
	Intelligence int
	Vitality     int
	Agility      int
	Sense        int
	Willpower    int

	CurrentStreak    int
	BestStreak       int
	LastActivityDate *string // calendar day, "2006-01-02"
}

type Habit struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	Category    string
	Difficulty  int
	XPReward    int
	TargetStat  string
	Frequency   string
	Streak      int
	BestStreak  int
	// TotalCompletions counts every completion ever, not just the rows still
	// inside an analytics window.
	TotalCompletions int
	IsPriority       bool
	IsActive         bool
	CreatedAt        time.Time
	AITip            *string
}

// HabitCompletion is immutable once inserted. At most one row may exist per
// (habit, calendar day); the schema enforces it.
type HabitCompletion struct {
	ID             int64
	HabitID        int64
	CompletedAt    time.Time
	CompletionDate string
	XPEarned       int
	StreakBonus    int
}

type Goal struct {
	ID             int64
	UserID         int64
	Title          string
	Description    *string
	Category       string
	Difficulty     int
	XPReward       int
	TargetStat     string
	DueDate        *time.Time
	EstimatedWeeks *int
	IsCompleted    bool
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

type GoalStep struct {
	ID                int64
	GoalID            int64
	StepNumber        int
	Title             string
	Description       *string
	EstimatedDuration *string
	XPReward          int
	IsCompleted       bool
	CompletedAt       *time.Time
}

type ShopItem struct {
	ID            int64
	Name          string
	Description   *string
	ItemType      string
	Rarity        string
	GoldCost      int
	GemCost       int
	LevelRequired int
	Effects       *string // JSON blob, opaque to the engine
	IsAvailable   bool
}

type InventoryItem struct {
	ID          int64
	UserID      int64
	ItemID      int64
	Quantity    int
	PurchasedAt time.Time

	// Joined from shop_items for display.
	Name     string
	ItemType string
	Rarity   string
}

type Quote struct {
	ID        int64
	Text      string
	Author    *string
	Source    *string
	Tradition string
}

type Achievement struct {
	ID               int64
	Key              string
	Title            string
	Description      string
	Category         string
	Tier             string
	XPReward         int
	RequirementType  string
	RequirementValue int
}

type UserAchievement struct {
	ID            int64
	UserID        int64
	AchievementID int64
	UnlockedAt    time.Time
}

// DailyCompletionStat is one analytics bucket: completions and XP for a day.
type DailyCompletionStat struct {
	Date  string
	Count int
	XP    int
}
