package engine

import (
	"context"

	"goalquest/internal/storage"
)

// HabitStats aggregates completion activity for progress displays.
type HabitStats struct {
	Daily      []storage.DailyCompletionStat
	ByCategory map[string]int
}

// Stats returns completion aggregates over the last `days` calendar days.
func (s *Service) Stats(ctx context.Context, userID int64, days int) (*HabitStats, error) {
	if days < 1 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days).Format("2006-01-02")

	daily, err := s.completions.DailyStats(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.completions.CategoryStats(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return &HabitStats{Daily: daily, ByCategory: byCategory}, nil
}

// RandomQuote returns a wisdom quote, optionally filtered by traditions.
// Nil when none match.
func (s *Service) RandomQuote(ctx context.Context, traditions []string) (*storage.Quote, error) {
	return s.quotes.Random(ctx, traditions)
}
