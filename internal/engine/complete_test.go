package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompleteHabitAwardsEverything(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{
		Title:      "Morning run",
		Category:   "fitness",
		Difficulty: 4,
		XPReward:   100,
		TargetStat: "strength",
	})
	require.NoError(t, err)

	before, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)

	res, err := svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)
	require.Equal(t, 1, res.NewStreak)
	require.Equal(t, 10, res.StreakBonus) // 10% per streak day
	require.Equal(t, 110, res.XPEarned)
	require.Equal(t, 10, res.GoldEarned)

	after, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, before.TotalXP+110, after.TotalXP)
	require.Equal(t, before.Gold+10, after.Gold)
	require.Equal(t, before.Strength+1, after.Strength)
	require.Equal(t, 1, after.CurrentStreak)
	require.Equal(t, 1, after.BestStreak)
	require.NotNil(t, after.LastActivityDate)
	require.Equal(t, svc.today(), *after.LastActivityDate)
}

func TestCompleteHabitIdempotentPerDay(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Journal"})
	require.NoError(t, err)

	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	before, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)

	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	// The rejected attempt must not have touched the user.
	after, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, before.TotalXP, after.TotalXP)
	require.Equal(t, before.Gold, after.Gold)
	require.Equal(t, before.CurrentStreak, after.CurrentStreak)
}

func TestCompleteHabitStreakGrowsAcrossDays(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Read", XPReward: 100})
	require.NoError(t, err)

	for day := 0; day < 3; day++ {
		_, err := svc.CompleteHabit(ctx, h.ID, userID)
		require.NoError(t, err)
		advanceDay(svc, 1)
	}

	// Day 4: streak 3 -> 4, bonus 40% of 100.
	res, err := svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)
	require.Equal(t, 4, res.NewStreak)
	require.Equal(t, 40, res.StreakBonus)
	require.Equal(t, 140, res.XPEarned)
	require.Equal(t, 10, res.GoldEarned)

	got, err := svc.HabitRepo().Get(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.Streak)
	require.Equal(t, 4, got.BestStreak)
	require.Equal(t, 4, got.TotalCompletions)
}

func TestCompleteHabitStreakBonusCapped(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Meditate", XPReward: 100})
	require.NoError(t, err)

	// Ride the streak past the cap threshold.
	for day := 0; day < 12; day++ {
		res, err := svc.CompleteHabit(ctx, h.ID, userID)
		require.NoError(t, err)
		if res.NewStreak >= 10 {
			require.Equal(t, 100, res.StreakBonus, "streak %d", res.NewStreak)
			require.Equal(t, 200, res.XPEarned)
		}
		advanceDay(svc, 1)
	}
}

func TestCompleteHabitUnknownHabit(t *testing.T) {
	svc, userID := newTestService(t)

	_, err := svc.CompleteHabit(context.Background(), 4242, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAwardXP(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	res, err := svc.AwardXP(ctx, userID, 250)
	require.NoError(t, err)
	require.True(t, res.LeveledUp)
	require.Equal(t, 2, res.NewLevel)

	u, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, u.Level)
	require.Equal(t, 250, u.TotalXP)

	// Non-positive awards change nothing.
	_, err = svc.AwardXP(ctx, userID, 0)
	require.NoError(t, err)
	again, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, u.TotalXP, again.TotalXP)
}
