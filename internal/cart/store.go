// Package cart keeps shopping carts keyed by user id or guest identifier.
package cart

import (
	"context"

	"GearGodAPI/internal/model"
)

// Store is the cart storage contract. Every mutating call returns the cart
// as it stands after the change.
type Store interface {
	Get(ctx context.Context, key string) ([]model.CartItem, error)
	// Add appends item, or increments the quantity when the product is already in the cart.
	Add(ctx context.Context, key string, item model.CartItem) ([]model.CartItem, error)
	// Update replaces the quantity of a line. Quantities below 1 are ignored.
	Update(ctx context.Context, key string, productID int64, quantity int) ([]model.CartItem, error)
	// Remove drops a line, returning model.ErrCartItemNotFound when it is absent.
	Remove(ctx context.Context, key string, productID int64) ([]model.CartItem, error)
	Clear(ctx context.Context, key string) error
}

func indexOf(items []model.CartItem, productID int64) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
