package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	id, err := NewUserRepo(db).Create(context.Background(), "Tester")
	require.NoError(t, err)
	return id
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening re-runs the migration against the existing schema; seed data
	// must not duplicate.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	items, err := NewShopRepo(db).ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 7)

	achievements, err := NewAchievementRepo(db).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, achievements, 8)
}

func TestUserDefaults(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := seedUser(t, db)
	u, err := NewUserRepo(db).Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, u.Level)
	require.Equal(t, 0, u.CurrentXP)
	require.Equal(t, 100, u.Gold)
	require.Equal(t, 10, u.Gems)
	require.Equal(t, 1, u.Strength)
	require.Equal(t, 1, u.Willpower)
	require.Nil(t, u.LastActivityDate)
}

func TestHabitRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db)

	repo := NewHabitRepo(db)
	desc := "twenty minutes, no phone"
	id, err := repo.Insert(ctx, HabitInsert{
		UserID:      userID,
		Title:       "Deep work",
		Description: &desc,
		Category:    "productivity",
		Difficulty:  4,
		XPReward:    250,
		TargetStat:  "intelligence",
		Frequency:   "daily",
		IsPriority:  true,
	})
	require.NoError(t, err)

	h, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Deep work", h.Title)
	require.NotNil(t, h.Description)
	require.Equal(t, desc, *h.Description)
	require.True(t, h.IsPriority)
	require.True(t, h.IsActive)
	require.Nil(t, h.AITip)
	require.Zero(t, h.Streak)

	missing, err := repo.Get(ctx, id+100)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestCompletionUniquePerDay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db)

	habitID, err := NewHabitRepo(db).Insert(ctx, HabitInsert{
		UserID: userID, Title: "Walk", Category: "health",
		Difficulty: 2, XPReward: 50, TargetStat: "vitality", Frequency: "daily",
	})
	require.NoError(t, err)

	repo := NewCompletionRepo(db)
	now := time.Now()

	_, err = repo.Insert(ctx, habitID, now, "2026-09-01", 55, 5)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, habitID, now, "2026-09-01", 55, 5)
	require.Error(t, err)

	// A different day is fine.
	_, err = repo.Insert(ctx, habitID, now, "2026-09-02", 60, 10)
	require.NoError(t, err)

	exists, err := repo.ExistsForDay(ctx, habitID, "2026-09-01")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = repo.ExistsForDay(ctx, habitID, "2026-09-03")
	require.NoError(t, err)
	require.False(t, exists)

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		users := NewUserRepo(tx)
		u, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		u.Gold = 9999
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := NewUserRepo(db).Get(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 100, u.Gold)
}

func TestGoalStepCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db)

	repo := NewGoalRepo(db)
	goalID, err := repo.Insert(ctx, GoalInsert{
		UserID: userID, Title: "Ship it", Category: "career",
		Difficulty: 3, XPReward: 2000, TargetStat: "intelligence",
	})
	require.NoError(t, err)

	var stepIDs []int64
	for i := 1; i <= 3; i++ {
		id, err := repo.InsertStep(ctx, goalID, GoalStepInsert{
			StepNumber: i, Title: "Step", XPReward: 200,
		})
		require.NoError(t, err)
		stepIDs = append(stepIDs, id)
	}

	completed, total, err := repo.StepCounts(ctx, goalID)
	require.NoError(t, err)
	require.Equal(t, 0, completed)
	require.Equal(t, 3, total)

	require.NoError(t, repo.MarkStepCompleted(ctx, stepIDs[1], time.Now()))

	completed, total, err = repo.StepCounts(ctx, goalID)
	require.NoError(t, err)
	require.Equal(t, 1, completed)
	require.Equal(t, 3, total)
}

func TestInventoryStacks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db)

	repo := NewShopRepo(db)
	items, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	require.NoError(t, repo.AddToInventory(ctx, userID, items[0].ID))
	require.NoError(t, repo.AddToInventory(ctx, userID, items[0].ID))

	inv, err := repo.ListInventory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	require.Equal(t, 2, inv[0].Quantity)
}

func TestQuoteRandomFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	repo := NewQuoteRepo(db)
	q, err := repo.Random(ctx, []string{"samurai"})
	require.NoError(t, err)
	require.NotNil(t, q)
	require.Equal(t, "samurai", q.Tradition)

	q, err = repo.Random(ctx, []string{"nope"})
	require.NoError(t, err)
	require.Nil(t, q)
}
