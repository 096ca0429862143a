package engine

import (
	"context"

	"goalquest/internal/storage"
)

// Requirement types an achievement can key on.
const (
	ReqLevel       = "level"
	ReqStreak      = "streak"
	ReqCompletions = "completions"
	ReqHabitCount  = "habit_count"
	ReqGoalCount   = "goal_count"
)

type AchievementStatus struct {
	storage.Achievement
	Unlocked bool
}

// progressCounters is a snapshot of everything achievements can require.
type progressCounters struct {
	level       int
	bestStreak  int
	completions int
	habitCount  int
	goalCount   int
}

func (c progressCounters) satisfies(a storage.Achievement) bool {
	switch a.RequirementType {
	case ReqLevel:
		return c.level >= a.RequirementValue
	case ReqStreak:
		// best_streak is the historical max of current_streak, so streak
		// achievements stay satisfied once earned.
		return c.bestStreak >= a.RequirementValue
	case ReqCompletions:
		return c.completions >= a.RequirementValue
	case ReqHabitCount:
		return c.habitCount >= a.RequirementValue
	case ReqGoalCount:
		return c.goalCount >= a.RequirementValue
	default:
		return false
	}
}

func (s *Service) counters(ctx context.Context, userID int64) (progressCounters, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return progressCounters{}, err
	}
	completions, err := s.completions.CountByUser(ctx, userID)
	if err != nil {
		return progressCounters{}, err
	}
	habitCount, err := s.habits.CountByUser(ctx, userID)
	if err != nil {
		return progressCounters{}, err
	}
	goalCount, err := s.goals.CountByUser(ctx, userID)
	if err != nil {
		return progressCounters{}, err
	}
	return progressCounters{
		level:       user.Level,
		bestStreak:  user.BestStreak,
		completions: completions,
		habitCount:  habitCount,
		goalCount:   goalCount,
	}, nil
}

// Achievements reports every achievement with its unlocked status, evaluated
// against live counters. Pure observer: nothing in the progression flows
// depends on it.
func (s *Service) Achievements(ctx context.Context, userID int64) ([]AchievementStatus, error) {
	counters, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.achievements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]AchievementStatus, 0, len(all))
	for _, a := range all {
		out = append(out, AchievementStatus{
			Achievement: a,
			Unlocked:    unlocked[a.ID] || counters.satisfies(a),
		})
	}
	return out, nil
}

// EvaluateAchievements records any newly crossed thresholds and returns them.
// Unlocking is idempotent: a (user, achievement) pair unlocks at most once.
func (s *Service) EvaluateAchievements(ctx context.Context, userID int64) ([]storage.Achievement, error) {
	counters, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.achievements.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var newly []storage.Achievement
	for _, a := range all {
		if !counters.satisfies(a) {
			continue
		}
		inserted, err := s.achievements.Unlock(ctx, userID, a.ID)
		if err != nil {
			return nil, err
		}
		if inserted {
			if a.XPReward > 0 {
				if _, err := s.AwardXP(ctx, userID, a.XPReward); err != nil {
					return nil, err
				}
			}
			s.log.Info().Str("achievement", a.Key).Msg("achievement unlocked")
			newly = append(newly, a)
		}
	}
	return newly, nil
}
