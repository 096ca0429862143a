package engine

import (
	"context"
	"database/sql"
	"fmt"

	"goalquest/internal/storage"
)

// CreateHabitInput carries caller- or advisor-suggested fields. Numeric and
// enum fields are untrusted and get clamped before persisting.
type CreateHabitInput struct {
	Title       string
	Description string
	Category    string
	Difficulty  int
	XPReward    int
	TargetStat  string
	Frequency   string
	IsPriority  bool
	AITip       string
}

func (s *Service) CreateHabit(ctx context.Context, userID int64, in CreateHabitInput) (*storage.Habit, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	insert := storage.HabitInsert{
		UserID:     userID,
		Title:      title,
		Category:   string(ParseCategory(in.Category)),
		Difficulty: int(ClampDifficulty(in.Difficulty)),
		XPReward:   ClampXPReward(in.XPReward, DefaultHabitXP),
		TargetStat: string(ParseStat(in.TargetStat)),
		Frequency:  string(ParseFrequency(in.Frequency)),
		IsPriority: in.IsPriority,
	}
	if in.Description != "" {
		insert.Description = &in.Description
	}
	if in.AITip != "" {
		insert.AITip = &in.AITip
	}

	id, err := s.habits.Insert(ctx, insert)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("habit_id", id).Str("title", title).Msg("created habit")

	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) ListHabits(ctx context.Context, userID int64, activeOnly bool) ([]storage.Habit, error) {
	return s.habits.ListByUser(ctx, userID, activeOnly)
}

// TodayCompletions returns the IDs of habits the user already completed
// today; the presentation layer polls this after every mutation.
func (s *Service) TodayCompletions(ctx context.Context, userID int64) ([]int64, error) {
	return s.completions.HabitIDsForDay(ctx, userID, s.today())
}

// DeleteHabit removes the habit and its completion records together.
func (s *Service) DeleteHabit(ctx context.Context, habitID int64) error {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %d: %w", habitID, ErrNotFound)
	}

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewCompletionRepo(tx).DeleteByHabit(ctx, habitID); err != nil {
			return err
		}
		return storage.NewHabitRepo(tx).Delete(ctx, habitID)
	})
}

// ArchiveHabit soft-deletes: the habit stops listing as active but its history
// and completion rows stay.
func (s *Service) ArchiveHabit(ctx context.Context, habitID int64) error {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %d: %w", habitID, ErrNotFound)
	}
	return s.habits.SetActive(ctx, habitID, false)
}
