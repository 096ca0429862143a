package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ShopRepo struct {
	db DBTX
}

func NewShopRepo(db DBTX) *ShopRepo {
	return &ShopRepo{db: db}
}

const shopItemColumns = `id, name, description, item_type, rarity, gold_cost, gem_cost,
	level_required, effects, is_available`

func (r *ShopRepo) Get(ctx context.Context, id int64) (*ShopItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shopItemColumns+` FROM shop_items WHERE id = ?`, id)
	return scanShopItem(row)
}

func (r *ShopRepo) ListAvailable(ctx context.Context) ([]ShopItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shopItemColumns+` FROM shop_items
		WHERE is_available = 1
		ORDER BY level_required, gold_cost
	`)
	if err != nil {
		return nil, fmt.Errorf("shop list: %w", err)
	}
	defer rows.Close()

	var out []ShopItem
	for rows.Next() {
		it, err := scanShopItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shop rows: %w", err)
	}
	return out, nil
}

// AddToInventory upserts one unit of the item for the user.
func (r *ShopRepo) AddToInventory(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_inventory (user_id, item_id, quantity) VALUES (?, ?, 1)
		ON CONFLICT(user_id, item_id) DO UPDATE SET quantity = quantity + 1
	`, userID, itemID)
	if err != nil {
		return fmt.Errorf("inventory upsert: %w", err)
	}
	return nil
}

func (r *ShopRepo) ListInventory(ctx context.Context, userID int64) ([]InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ui.id, ui.user_id, ui.item_id, ui.quantity, ui.purchased_at,
			si.name, si.item_type, si.rarity
		FROM user_inventory ui
		JOIN shop_items si ON ui.item_id = si.id
		WHERE ui.user_id = ?
		ORDER BY ui.purchased_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	var out []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ItemID, &it.Quantity, &it.PurchasedAt, &it.Name, &it.ItemType, &it.Rarity); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return out, nil
}

func scanShopItem(row scanner) (*ShopItem, error) {
	var (
		it          ShopItem
		description sql.NullString
		itemType    sql.NullString
		effects     sql.NullString
		isAvailable int
	)
	err := row.Scan(
		&it.ID, &it.Name, &description, &itemType, &it.Rarity, &it.GoldCost, &it.GemCost,
		&it.LevelRequired, &effects, &isAvailable,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("shop item scan: %w", err)
	}
	if description.Valid {
		v := description.String
		it.Description = &v
	}
	it.ItemType = itemType.String
	if effects.Valid {
		v := effects.String
		it.Effects = &v
	}
	it.IsAvailable = isAvailable != 0
	return &it, nil
}
