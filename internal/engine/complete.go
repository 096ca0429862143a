package engine

import (
	"context"
	"database/sql"
	"fmt"

	"goalquest/internal/storage"
)

// CompletionResult is returned by CompleteHabit on success.
type CompletionResult struct {
	HabitID     int64
	XPEarned    int // base reward + streak bonus
	StreakBonus int
	GoldEarned  int
	NewStreak   int
	Level       LevelResult
}

// CompleteHabit records one habit completion for today. The whole sequence —
// completion row, habit streak counters, XP award, gold, user streak, stat
// bump — commits in a single transaction or not at all.
//
// Rejections: ErrAlreadyCompleted when a completion already exists for
// (habit, today), ErrNotFound when the habit or user is absent.
func (s *Service) CompleteHabit(ctx context.Context, habitID, userID int64) (*CompletionResult, error) {
	now := s.now()
	today := s.today()

	var result *CompletionResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		habits := storage.NewHabitRepo(tx)
		completions := storage.NewCompletionRepo(tx)
		users := storage.NewUserRepo(tx)

		done, err := completions.ExistsForDay(ctx, habitID, today)
		if err != nil {
			return err
		}
		if done {
			return fmt.Errorf("habit %d on %s: %w", habitID, today, ErrAlreadyCompleted)
		}

		habit, err := habits.Get(ctx, habitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return fmt.Errorf("habit %d: %w", habitID, ErrNotFound)
		}

		user, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}

		newStreak := habit.Streak + 1
		streakBonus := StreakBonus(habit.XPReward, newStreak)
		totalAward := habit.XPReward + streakBonus

		if _, err := completions.Insert(ctx, habitID, now, today, totalAward, streakBonus); err != nil {
			return err
		}

		bestStreak := habit.BestStreak
		if newStreak > bestStreak {
			bestStreak = newStreak
		}
		if err := habits.UpdateAfterCompletion(ctx, habitID, newStreak, bestStreak, habit.TotalCompletions+1); err != nil {
			return err
		}

		level := applyXP(user, totalAward)

		gold := GoldReward(habit.XPReward)
		user.Gold += gold

		// The global streak bumps on every completion event, independently of
		// per-habit streaks.
		user.CurrentStreak++
		if user.CurrentStreak > user.BestStreak {
			user.BestStreak = user.CurrentStreak
		}
		user.LastActivityDate = &today

		bumpStat(user, Stat(habit.TargetStat))

		if err := users.Update(ctx, user); err != nil {
			return err
		}

		result = &CompletionResult{
			HabitID:     habitID,
			XPEarned:    totalAward,
			StreakBonus: streakBonus,
			GoldEarned:  gold,
			NewStreak:   newStreak,
			Level:       level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("habit_id", habitID).
		Int("xp", result.XPEarned).
		Int("streak", result.NewStreak).
		Bool("level_up", result.Level.LeveledUp).
		Msg("habit completed")
	return result, nil
}

// AwardXP applies a raw XP amount to the user and persists the result.
// Exposed for callers outside the habit/goal flows; non-positive amounts are
// a no-op.
func (s *Service) AwardXP(ctx context.Context, userID int64, amount int) (*LevelResult, error) {
	var level LevelResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		user, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		level = applyXP(user, amount)
		return users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func bumpStat(u *storage.User, stat Stat) {
	switch stat {
	case StatStrength:
		u.Strength++
	case StatIntelligence:
		u.Intelligence++
	case StatVitality:
		u.Vitality++
	case StatAgility:
		u.Agility++
	case StatSense:
		u.Sense++
	case StatWillpower:
		fallthrough
	default:
		u.Willpower++
	}
}
