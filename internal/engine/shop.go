package engine

import (
	"context"
	"database/sql"
	"fmt"

	"goalquest/internal/storage"
)

type PurchaseResult struct {
	Item    storage.ShopItem
	NewGold int
	NewGems int
}

func (s *Service) ShopItems(ctx context.Context) ([]storage.ShopItem, error) {
	return s.shop.ListAvailable(ctx)
}

func (s *Service) Inventory(ctx context.Context, userID int64) ([]storage.InventoryItem, error) {
	return s.shop.ListInventory(ctx, userID)
}

// Purchase debits gold/gems and adds the item to the inventory in one
// transaction. Plain balance-debit CRUD, no progression invariants.
func (s *Service) Purchase(ctx context.Context, userID, itemID int64) (*PurchaseResult, error) {
	var result *PurchaseResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		shop := storage.NewShopRepo(tx)
		users := storage.NewUserRepo(tx)

		item, err := shop.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("shop item %d: %w", itemID, ErrNotFound)
		}

		user, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}

		if user.Level < item.LevelRequired {
			return LevelGateError{RequiredLevel: item.LevelRequired, CurrentLevel: user.Level}
		}
		if item.GoldCost > 0 && user.Gold < item.GoldCost {
			return InsufficientError{Resource: "gold", Need: item.GoldCost, Have: user.Gold}
		}
		if item.GemCost > 0 && user.Gems < item.GemCost {
			return InsufficientError{Resource: "gems", Need: item.GemCost, Have: user.Gems}
		}

		user.Gold -= item.GoldCost
		user.Gems -= item.GemCost
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		if err := shop.AddToInventory(ctx, userID, itemID); err != nil {
			return err
		}

		result = &PurchaseResult{Item: *item, NewGold: user.Gold, NewGems: user.Gems}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item", result.Item.Name).Int("gold", result.NewGold).Msg("item purchased")
	return result, nil
}
