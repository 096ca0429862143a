package engine

import (
	"math"

	"goalquest/internal/storage"
)

// XPForLevel returns the XP needed to advance past the given level:
// floor(100 * level^1.5). It is the single source of truth for the curve;
// award logic and progress displays must both call it.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// LevelResult describes the outcome of one XP award.
type LevelResult struct {
	XPGained  int
	NewXP     int // XP banked toward the next level
	NewLevel  int
	LeveledUp bool
	XPToNext  int // full threshold of the resulting level
}

// applyXP adds amount to the user's current and total XP and resolves any
// level-ups, including multi-level jumps from a single large award. The user
// struct is mutated in memory; persisting it is the caller's job so the
// change commits atomically with the triggering transaction.
//
// A non-positive amount is a no-op, never an error: advisory-suggested
// rewards are untrusted.
func applyXP(u *storage.User, amount int) LevelResult {
	if amount <= 0 {
		return LevelResult{
			NewXP:    u.CurrentXP,
			NewLevel: u.Level,
			XPToNext: XPForLevel(u.Level),
		}
	}

	u.CurrentXP += amount
	u.TotalXP += amount

	leveledUp := false
	for u.CurrentXP >= XPForLevel(u.Level) {
		u.CurrentXP -= XPForLevel(u.Level)
		u.Level++
		leveledUp = true
	}

	return LevelResult{
		XPGained:  amount,
		NewXP:     u.CurrentXP,
		NewLevel:  u.Level,
		LeveledUp: leveledUp,
		XPToNext:  XPForLevel(u.Level),
	}
}

// StreakBonus computes the streak bonus for a completion: 10% of the base
// reward per consecutive day, capped at 100% of the base reward.
func StreakBonus(xpReward, streak int) int {
	bonus := xpReward * streak / 10
	if bonus > xpReward {
		return xpReward
	}
	return bonus
}

// GoldReward is the gold earned per habit completion.
func GoldReward(xpReward int) int {
	return xpReward / 10
}
