package cart

import (
	"context"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
)

// PostgresStore keeps carts in the cart_items table so they survive restarts
// and can be shared by several instances. Writes to one key take an advisory
// lock for the duration of their transaction.
type PostgresStore struct {
	Repo *repository.CartRepository
}

func NewPostgresStore(r *repository.CartRepository) *PostgresStore {
	return &PostgresStore{Repo: r}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]model.CartItem, error) {
	return s.Repo.GetItems(ctx, s.Repo.DB, key)
}

func (s *PostgresStore) Add(ctx context.Context, key string, item model.CartItem) ([]model.CartItem, error) {
	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	if err := s.Repo.LockTx(ctx, tx, key); err != nil {
		return nil, err
	}
	items, err := s.Repo.GetItems(ctx, tx, key)
	if err != nil {
		return nil, err
	}

	if i := indexOf(items, item.ProductID); i >= 0 {
		err = s.Repo.SetQuantity(ctx, tx, key, item.ProductID, items[i].Quantity+item.Quantity)
	} else {
		err = s.Repo.InsertItemTx(ctx, tx, key, &item)
	}
	if err != nil {
		return nil, err
	}

	items, err = s.Repo.GetItems(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit tx")
	}
	return items, nil
}

func (s *PostgresStore) Update(ctx context.Context, key string, productID int64, quantity int) ([]model.CartItem, error) {
	if quantity < 1 {
		items, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if indexOf(items, productID) < 0 {
			return nil, model.ErrCartItemNotFound
		}
		return items, nil
	}
	if err := s.Repo.SetQuantity(ctx, s.Repo.DB, key, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, key)
}

func (s *PostgresStore) Remove(ctx context.Context, key string, productID int64) ([]model.CartItem, error) {
	if err := s.Repo.RemoveItem(ctx, key, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, key)
}

func (s *PostgresStore) Clear(ctx context.Context, key string) error {
	return s.Repo.Clear(ctx, key)
}
