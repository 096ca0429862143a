package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateHabitClampsUntrustedFields(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{
		Title:      "  Cold shower  ",
		Category:   "not-a-category",
		Difficulty: 42,
		XPReward:   -5,
		TargetStat: "charisma",
		Frequency:  "hourly",
	})
	require.NoError(t, err)
	require.Equal(t, "Cold shower", h.Title)
	require.Equal(t, "personal", h.Category)
	require.Equal(t, int(DefaultDifficulty), h.Difficulty)
	require.Equal(t, DefaultHabitXP, h.XPReward)
	require.Equal(t, string(DefaultStat), h.TargetStat)
	require.Equal(t, string(FrequencyDaily), h.Frequency)
	require.True(t, h.IsActive)
}

func TestCreateHabitRequiresTitle(t *testing.T) {
	svc, userID := newTestService(t)

	_, err := svc.CreateHabit(context.Background(), userID, CreateHabitInput{Title: "   "})
	require.Error(t, err)
}

func TestListHabitsPriorityFirst(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Ordinary"})
	require.NoError(t, err)
	pinned, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Pinned", IsPriority: true})
	require.NoError(t, err)

	habits, err := svc.ListHabits(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	require.Equal(t, pinned.ID, habits[0].ID)
}

func TestArchiveHabitHidesFromActiveList(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Old habit"})
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveHabit(ctx, h.ID))

	active, err := svc.ListHabits(ctx, userID, true)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.ListHabits(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.False(t, all[0].IsActive)

	// History is preserved.
	ids, err := svc.TodayCompletions(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, []int64{h.ID}, ids)
}

func TestDeleteHabitRemovesCompletions(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, userID, CreateHabitInput{Title: "Doomed"})
	require.NoError(t, err)
	_, err = svc.CompleteHabit(ctx, h.ID, userID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHabit(ctx, h.ID))

	ids, err := svc.TodayCompletions(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, ids)

	err = svc.DeleteHabit(ctx, h.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
