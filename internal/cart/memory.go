package cart

import (
	"context"
	"sync"

	"GearGodAPI/internal/model"
)

type memoryCart struct {
	mu    sync.Mutex
	items []model.CartItem
}

// MemoryStore keeps carts in process memory. Writers to the same key are
// serialized; different keys never contend. Carts are lost on restart.
type MemoryStore struct {
	carts sync.Map // string -> *memoryCart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// cart returns the cart for key, creating it only when create is set.
func (s *MemoryStore) cart(key string, create bool) (*memoryCart, bool) {
	if !create {
		v, ok := s.carts.Load(key)
		if !ok {
			return nil, false
		}
		return v.(*memoryCart), true
	}
	v, _ := s.carts.LoadOrStore(key, &memoryCart{})
	return v.(*memoryCart), true
}

func snapshot(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]model.CartItem, error) {
	c, ok := s.cart(key, false)
	if !ok {
		return []model.CartItem{}, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.items), nil
}

func (s *MemoryStore) Add(_ context.Context, key string, item model.CartItem) ([]model.CartItem, error) {
	c, _ := s.cart(key, true)
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.items, item.ProductID); i >= 0 {
		c.items[i].Quantity += item.Quantity
		c.items[i].Subtotal = model.LineSubtotal(c.items[i].UnitPrice, c.items[i].Quantity)
		return snapshot(c.items), nil
	}
	item.Subtotal = model.LineSubtotal(item.UnitPrice, item.Quantity)
	c.items = append(c.items, item)
	return snapshot(c.items), nil
}

func (s *MemoryStore) Update(_ context.Context, key string, productID int64, quantity int) ([]model.CartItem, error) {
	c, ok := s.cart(key, false)
	if !ok {
		return nil, model.ErrCartItemNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, productID)
	if i < 0 {
		return nil, model.ErrCartItemNotFound
	}
	if quantity < 1 {
		return snapshot(c.items), nil
	}
	c.items[i].Quantity = quantity
	c.items[i].Subtotal = model.LineSubtotal(c.items[i].UnitPrice, quantity)
	return snapshot(c.items), nil
}

func (s *MemoryStore) Remove(_ context.Context, key string, productID int64) ([]model.CartItem, error) {
	c, ok := s.cart(key, false)
	if !ok {
		return nil, model.ErrCartItemNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, productID)
	if i < 0 {
		return nil, model.ErrCartItemNotFound
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return snapshot(c.items), nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	c, ok := s.cart(key, false)
	if !ok {
		return nil
	}
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return nil
}
