package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func createCascadeGoal(t *testing.T, svc *Service, userID int64) int64 {
	t.Helper()
	g, err := svc.CreateGoal(context.Background(), userID, CreateGoalInput{
		Title:    "Learn to swim",
		Category: "fitness",
		XPReward: 1000,
		Steps: []GoalStepInput{
			{Title: "Get lessons", XPReward: 100},
			{Title: "Practice breathing", XPReward: 150},
			{Title: "Swim a lap", XPReward: 100},
			{Title: "Swim a kilometer", XPReward: 150},
		},
	})
	require.NoError(t, err)
	return g.ID
}

func TestCreateGoalNumbersSteps(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	goalID := createCascadeGoal(t, svc, userID)

	steps, err := svc.GoalRepo().ListSteps(ctx, goalID)
	require.NoError(t, err)
	require.Len(t, steps, 4)
	for i, s := range steps {
		require.Equal(t, i+1, s.StepNumber)
		require.False(t, s.IsCompleted)
	}

	p, err := svc.Progress(ctx, goalID)
	require.NoError(t, err)
	require.Equal(t, GoalProgress{Completed: 0, Total: 4, Percentage: 0}, p)
}

func TestCreateGoalBlankStepGetsPlaceholderTitle(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, userID, CreateGoalInput{
		Title: "Declutter",
		Steps: []GoalStepInput{{Title: "Sort closet"}, {Title: "   "}},
	})
	require.NoError(t, err)

	steps, err := svc.GoalRepo().ListSteps(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, "Step 2", steps[1].Title)
	require.Equal(t, DefaultGoalStepXP, steps[1].XPReward)
}

func TestGoalCascadeAwardsBonusExactlyOnce(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	goalID := createCascadeGoal(t, svc, userID)
	steps, err := svc.GoalRepo().ListSteps(ctx, goalID)
	require.NoError(t, err)

	before, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)

	// Complete out of order; order must not matter.
	order := []int{2, 0, 3, 1}
	for i, idx := range order {
		res, err := svc.CompleteStep(ctx, steps[idx].ID, userID)
		require.NoError(t, err)
		require.Equal(t, steps[idx].XPReward, res.StepXP)

		last := i == len(order)-1
		require.Equal(t, last, res.GoalCompleted)
		if last {
			require.Equal(t, 1000, res.GoalXP)
			require.NotNil(t, res.GoalLevel)
		} else {
			require.Zero(t, res.GoalXP)
			require.Nil(t, res.GoalLevel)
		}
	}

	after, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	// 100+150+100+150 step XP plus the 1000 completion bonus.
	require.Equal(t, before.TotalXP+1500, after.TotalXP)

	g, err := svc.GoalRepo().Get(ctx, goalID)
	require.NoError(t, err)
	require.True(t, g.IsCompleted)
	require.NotNil(t, g.CompletedAt)
}

func TestCompleteStepRejectsRepeats(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	goalID := createCascadeGoal(t, svc, userID)
	steps, err := svc.GoalRepo().ListSteps(ctx, goalID)
	require.NoError(t, err)

	_, err = svc.CompleteStep(ctx, steps[0].ID, userID)
	require.NoError(t, err)

	before, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)

	_, err = svc.CompleteStep(ctx, steps[0].ID, userID)
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	after, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, before.TotalXP, after.TotalXP)
}

func TestCompleteStepUnknown(t *testing.T) {
	svc, userID := newTestService(t)

	_, err := svc.CompleteStep(context.Background(), 777, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListGoalsEmbedsProgress(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	goalID := createCascadeGoal(t, svc, userID)
	steps, err := svc.GoalRepo().ListSteps(ctx, goalID)
	require.NoError(t, err)

	_, err = svc.CompleteStep(ctx, steps[0].ID, userID)
	require.NoError(t, err)

	goals, err := svc.ListGoals(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, GoalProgress{Completed: 1, Total: 4, Percentage: 25}, goals[0].Progress)
	require.Len(t, goals[0].Steps, 4)
}

func TestDeleteGoalRemovesSteps(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	goalID := createCascadeGoal(t, svc, userID)
	require.NoError(t, svc.DeleteGoal(ctx, goalID))

	steps, err := svc.GoalRepo().ListSteps(ctx, goalID)
	require.NoError(t, err)
	require.Empty(t, steps)

	err = svc.DeleteGoal(ctx, goalID)
	require.ErrorIs(t, err, ErrNotFound)
}
