package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"goalquest/internal/storage"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(db, zerolog.Nop())
	u, err := svc.GetOrCreateUser(ctx, "Tester")
	require.NoError(t, err)
	return svc, u.ID
}

// advanceDay shifts the service clock forward so daily idempotency windows
// roll over without sleeping.
func advanceDay(svc *Service, days int) {
	base := svc.now()
	svc.now = func() time.Time { return base.AddDate(0, 0, days) }
}

func TestGetOrCreateUserSingleton(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	again, err := svc.GetOrCreateUser(ctx, "Someone Else")
	require.NoError(t, err)
	require.Equal(t, userID, again.ID)
	require.Equal(t, "Tester", again.Name)

	u, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, u.Level)
	require.Equal(t, 100, u.Gold)
	require.Equal(t, 10, u.Gems)
	require.Equal(t, 1, u.Willpower)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
