package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateAchievementsFirstCompletion(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Stretch"})
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	before, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)

	newly, err := svc.EvaluateAchievements(ctx, userID)
	require.NoError(t, err)

	keys := make([]string, 0, len(newly))
	for _, a := range newly {
		keys = append(keys, a.Key)
	}
	require.Contains(t, keys, "first_flame")

	// Unlock XP lands on the user.
	after, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	awarded := 0
	for _, a := range newly {
		awarded += a.XPReward
	}
	require.Equal(t, before.TotalXP+awarded, after.TotalXP)
}

func TestEvaluateAchievementsIdempotent(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Stretch"})
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	first, err := svc.EvaluateAchievements(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	again, err := svc.EvaluateAchievements(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, again)
}

func TestAchievementsStatusList(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	statuses, err := svc.Achievements(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, st := range statuses {
		require.False(t, st.Unlocked, st.Key)
	}

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Stretch"})
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	statuses, err = svc.Achievements(ctx, userID)
	require.NoError(t, err)
	byKey := map[string]bool{}
	for _, st := range statuses {
		byKey[st.Key] = st.Unlocked
	}
	require.True(t, byKey["first_flame"])
	require.False(t, byKey["inferno"])
}

func TestStreakAchievementUsesBestStreak(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Walk"})
	require.NoError(t, err)
	for day := 0; day < 7; day++ {
		_, err := svc.CompleteHabit(ctx, h.ID, userID)
		require.NoError(t, err)
		advanceDay(svc, 1)
	}

	newly, err := svc.EvaluateAchievements(ctx, userID)
	require.NoError(t, err)
	keys := make([]string, 0, len(newly))
	for _, a := range newly {
		keys = append(keys, a.Key)
	}
	require.Contains(t, keys, "kindling")
}
