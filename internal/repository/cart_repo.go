package repository

import (
	"context"
	"time"

	"GearGodAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// CartRepository persists cart lines keyed by user or guest identifier.
type CartRepository struct {
	DB Pool
}

func NewCartRepository(db Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// LockTx serializes writers for one cart key until tx ends.
func (r *CartRepository) LockTx(ctx context.Context, tx pgx.Tx, key string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return errors.Wrap(err, "lock cart")
	}
	return nil
}

// GetItems returns cart lines in insertion order.
func (r *CartRepository) GetItems(ctx context.Context, q DBTX, key string) ([]model.CartItem, error) {
	query := `
		SELECT product_id, name, quantity, unit_price, category, kind, color_id, material_id, product_color_id
		FROM cart_items
		WHERE cart_key=$1
		ORDER BY position, product_id
	`
	rows, err := q.Query(ctx, query, key)
	if err != nil {
		return nil, errors.Wrap(err, "list cart items")
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Category, &it.Kind,
			&it.ColorID, &it.MaterialID, &it.ProductColorID); err != nil {
			return nil, err
		}
		it.Subtotal = model.LineSubtotal(it.UnitPrice, it.Quantity)
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertItemTx appends a new line at the end of the cart.
func (r *CartRepository) InsertItemTx(ctx context.Context, tx pgx.Tx, key string, it *model.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_key, product_id, name, quantity, unit_price, category, kind,
		                        color_id, material_id, product_color_id, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE cart_key=$1), $11)
	`
	_, err := tx.Exec(ctx, query, key, it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Category, it.Kind,
		it.ColorID, it.MaterialID, it.ProductColorID, time.Now())
	return errors.Wrap(err, "insert cart item")
}

// SetQuantity sets exact quantity for a cart line
func (r *CartRepository) SetQuantity(ctx context.Context, q DBTX, key string, productID int64, qty int) error {
	query := `UPDATE cart_items SET quantity=$1, updated_at=$2 WHERE cart_key=$3 AND product_id=$4`
	tag, err := q.Exec(ctx, query, qty, time.Now(), key, productID)
	if err != nil {
		return errors.Wrap(err, "update cart item")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

// RemoveItem removes a specific cart line
func (r *CartRepository) RemoveItem(ctx context.Context, key string, productID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_key=$1 AND product_id=$2`, key, productID)
	if err != nil {
		return errors.Wrap(err, "delete cart item")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

// Clear removes all lines of a cart
func (r *CartRepository) Clear(ctx context.Context, key string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_key=$1`, key)
	return errors.Wrap(err, "clear cart")
}
