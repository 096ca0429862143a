package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goalquest/internal/storage"
)

type GoalStepInput struct {
	Title             string
	Description       string
	EstimatedDuration string
	XPReward          int
}

type CreateGoalInput struct {
	Title          string
	Description    string
	Category       string
	Difficulty     int
	XPReward       int
	TargetStat     string
	DueDate        *time.Time
	EstimatedWeeks int
	Steps          []GoalStepInput
}

// GoalProgress is always derived from step completion counts so it can never
// drift from step state.
type GoalProgress struct {
	Completed  int
	Total      int
	Percentage int
}

func (p GoalProgress) Done() bool {
	return p.Total > 0 && p.Completed == p.Total
}

type GoalWithProgress struct {
	Goal     storage.Goal
	Steps    []storage.GoalStep
	Progress GoalProgress
}

// StepResult reports a step completion. GoalXP is non-zero only when this
// step finished the goal; the goal bonus is a second, separately tagged
// ledger award.
type StepResult struct {
	StepID        int64
	StepXP        int
	Level         LevelResult
	GoalCompleted bool
	GoalXP        int
	GoalLevel     *LevelResult
}

// CreateGoal persists the goal and its ordered step batch together.
// step_number is assigned 1..N in input order; it is a display order, not an
// execution constraint.
func (s *Service) CreateGoal(ctx context.Context, userID int64, in CreateGoalInput) (*storage.Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	insert := storage.GoalInsert{
		UserID:     userID,
		Title:      title,
		Category:   string(ParseCategory(in.Category)),
		Difficulty: int(ClampDifficulty(in.Difficulty)),
		XPReward:   ClampXPReward(in.XPReward, DefaultGoalXP),
		TargetStat: string(ParseStat(in.TargetStat)),
		DueDate:    in.DueDate,
	}
	if in.Description != "" {
		insert.Description = &in.Description
	}
	if in.EstimatedWeeks > 0 {
		insert.EstimatedWeeks = &in.EstimatedWeeks
	}

	var goalID int64
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		goals := storage.NewGoalRepo(tx)
		goalID, err = goals.Insert(ctx, insert)
		if err != nil {
			return err
		}
		for i, step := range in.Steps {
			stepTitle, err := normalizeTitle(step.Title)
			if err != nil {
				stepTitle = fmt.Sprintf("Step %d", i+1)
			}
			stepInsert := storage.GoalStepInsert{
				StepNumber: i + 1,
				Title:      stepTitle,
				XPReward:   ClampXPReward(step.XPReward, DefaultGoalStepXP),
			}
			if step.Description != "" {
				stepInsert.Description = &step.Description
			}
			if step.EstimatedDuration != "" {
				stepInsert.EstimatedDuration = &step.EstimatedDuration
			}
			if _, err := goals.InsertStep(ctx, goalID, stepInsert); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("goal_id", goalID).Str("title", title).Int("steps", len(in.Steps)).Msg("created goal")
	return s.goals.Get(ctx, goalID)
}

// CompleteStep marks a goal step done and awards its XP. When the last open
// step finishes, the goal itself is completed in the same transaction and its
// bonus XP awarded exactly once.
func (s *Service) CompleteStep(ctx context.Context, stepID, userID int64) (*StepResult, error) {
	now := s.now()

	var result *StepResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		goals := storage.NewGoalRepo(tx)
		users := storage.NewUserRepo(tx)

		step, err := goals.GetStep(ctx, stepID)
		if err != nil {
			return err
		}
		if step == nil {
			return fmt.Errorf("goal step %d: %w", stepID, ErrNotFound)
		}
		if step.IsCompleted {
			return fmt.Errorf("goal step %d: %w", stepID, ErrAlreadyCompleted)
		}

		user, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}

		if err := goals.MarkStepCompleted(ctx, stepID, now); err != nil {
			return err
		}
		level := applyXP(user, step.XPReward)

		result = &StepResult{
			StepID: stepID,
			StepXP: step.XPReward,
			Level:  level,
		}

		completed, total, err := goals.StepCounts(ctx, step.GoalID)
		if err != nil {
			return err
		}
		if total > 0 && completed == total {
			goal, err := goals.Get(ctx, step.GoalID)
			if err != nil {
				return err
			}
			if goal == nil {
				return fmt.Errorf("goal %d: %w", step.GoalID, ErrNotFound)
			}
			// is_completed flips exactly once; a goal already completed must
			// not be re-awarded even if progress is re-derived later.
			if !goal.IsCompleted {
				if err := goals.MarkCompleted(ctx, goal.ID, now); err != nil {
					return err
				}
				goalLevel := applyXP(user, goal.XPReward)
				result.GoalCompleted = true
				result.GoalXP = goal.XPReward
				result.GoalLevel = &goalLevel
			}
		}

		return users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("step_id", stepID).
		Int("xp", result.StepXP).
		Bool("goal_completed", result.GoalCompleted).
		Msg("goal step completed")
	return result, nil
}

// Progress derives a goal's completion ratio from its step counts.
func (s *Service) Progress(ctx context.Context, goalID int64) (GoalProgress, error) {
	completed, total, err := s.goals.StepCounts(ctx, goalID)
	if err != nil {
		return GoalProgress{}, err
	}
	return newProgress(completed, total), nil
}

// ListGoals returns the user's goals with steps and derived progress
// embedded, the shape the presentation layer polls.
func (s *Service) ListGoals(ctx context.Context, userID int64, includeCompleted bool) ([]GoalWithProgress, error) {
	goals, err := s.goals.ListByUser(ctx, userID, includeCompleted)
	if err != nil {
		return nil, err
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		steps, err := s.goals.ListSteps(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		completed := 0
		for _, st := range steps {
			if st.IsCompleted {
				completed++
			}
		}
		out = append(out, GoalWithProgress{
			Goal:     g,
			Steps:    steps,
			Progress: newProgress(completed, len(steps)),
		})
	}
	return out, nil
}

// DeleteGoal removes the goal and its steps together.
func (s *Service) DeleteGoal(ctx context.Context, goalID int64) error {
	g, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("goal %d: %w", goalID, ErrNotFound)
	}
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return storage.NewGoalRepo(tx).Delete(ctx, goalID)
	})
}

func newProgress(completed, total int) GoalProgress {
	p := GoalProgress{Completed: completed, Total: total}
	if total > 0 {
		p.Percentage = completed * 100 / total
	}
	return p
}
