package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPurchaseDebitsGoldAndStoresItem(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	items, err := svc.ShopItems(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	// Starting gold covers the cheapest seeded item exactly.
	item := items[0]
	require.Equal(t, "XP Boost (Minor)", item.Name)
	require.Equal(t, 100, item.GoldCost)

	res, err := svc.Purchase(ctx, userID, item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, res.NewGold)
	require.Equal(t, 10, res.NewGems)

	inv, err := svc.Inventory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	require.Equal(t, item.Name, inv[0].Name)
	require.Equal(t, 1, inv[0].Quantity)
}

func TestPurchaseInsufficientGold(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	items, err := svc.ShopItems(ctx)
	require.NoError(t, err)
	item := items[0]

	_, err = svc.Purchase(ctx, userID, item.ID)
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, userID, item.ID)
	var insufficient InsufficientError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, "gold", insufficient.Resource)
	require.Equal(t, 100, insufficient.Need)
	require.Equal(t, 0, insufficient.Have)
}

func TestPurchaseLevelGate(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	items, err := svc.ShopItems(ctx)
	require.NoError(t, err)

	var gated int64
	for _, it := range items {
		if it.LevelRequired > 1 {
			gated = it.ID
			break
		}
	}
	require.NotZero(t, gated)

	_, err = svc.Purchase(ctx, userID, gated)
	var gate LevelGateError
	require.ErrorAs(t, err, &gate)
	require.Equal(t, 1, gate.CurrentLevel)
}

func TestPurchaseStacksQuantity(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	// Fund the wallet so repeated buys clear the balance checks.
	u, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	u.Gold = 1000
	require.NoError(t, svc.UserRepo().Update(ctx, u))

	items, err := svc.ShopItems(ctx)
	require.NoError(t, err)
	item := items[0]

	for i := 0; i < 3; i++ {
		_, err := svc.Purchase(ctx, userID, item.ID)
		require.NoError(t, err)
	}

	inv, err := svc.Inventory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	require.Equal(t, 3, inv[0].Quantity)
}

func TestPurchaseUnknownItem(t *testing.T) {
	svc, userID := newTestService(t)

	_, err := svc.Purchase(context.Background(), userID, 9001)
	require.True(t, errors.Is(err, ErrNotFound))
}
