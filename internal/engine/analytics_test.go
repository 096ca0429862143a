package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsAggregatesCompletions(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	run, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Run", Category: "fitness", XPReward: 100})
	require.NoError(t, err)
	read, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Read", Category: "learning", XPReward: 100})
	require.NoError(t, err)

	_, err = svc.CompleteHabit(ctx, run.ID, userID)
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, read.ID, userID)
	require.NoError(t, err)

	advanceDay(svc, 1)
	_, err = svc.CompleteHabit(ctx, run.ID, userID)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, userID, 7)
	require.NoError(t, err)
	require.Len(t, stats.Daily, 2)

	total := 0
	for _, d := range stats.Daily {
		total += d.Count
	}
	require.Equal(t, 3, total)

	require.Equal(t, 2, stats.ByCategory["fitness"])
	require.Equal(t, 1, stats.ByCategory["learning"])
}

func TestStatsEmpty(t *testing.T) {
	svc, userID := newTestService(t)

	stats, err := svc.Stats(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Empty(t, stats.Daily)
	require.Empty(t, stats.ByCategory)
}

func TestRandomQuoteFiltersTradition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q, err := svc.RandomQuote(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, q)
	require.NotEmpty(t, q.Text)

	for i := 0; i < 5; i++ {
		q, err := svc.RandomQuote(ctx, []string{"stoic"})
		require.NoError(t, err)
		require.NotNil(t, q)
		require.Equal(t, "stoic", q.Tradition)
	}

	q, err = svc.RandomQuote(ctx, []string{"nonexistent"})
	require.NoError(t, err)
	require.Nil(t, q)
}
