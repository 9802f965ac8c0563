package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestItemKindFromCategory(t *testing.T) {
	assert.Equal(t, ItemKindCustom, ItemKindFromCategory("Computer-Cases"))
	assert.Equal(t, ItemKindCustom, ItemKindFromCategory(" Computer-Cases "))
	assert.Equal(t, ItemKindCatalog, ItemKindFromCategory("Keyboards"))
	assert.Equal(t, ItemKindCatalog, ItemKindFromCategory(""))
}

func TestCartItemNormalize(t *testing.T) {
	it := CartItem{ProductID: 5, Quantity: 3, UnitPrice: 19.99, Category: "Computer-Cases"}
	it.Normalize()

	assert.Equal(t, ItemKindCustom, it.Kind)
	assert.Equal(t, 59.97, it.Subtotal)

	explicit := CartItem{ProductID: 5, Quantity: 1, Category: "Computer-Cases", Kind: ItemKindCatalog}
	explicit.Normalize()
	assert.Equal(t, ItemKindCatalog, explicit.Kind)
}

func TestCartItemValidate(t *testing.T) {
	t.Run("custom needs color and material", func(t *testing.T) {
		it := CartItem{ProductID: 5, Quantity: 1, Kind: ItemKindCustom, ColorID: ptr(2)}
		err := it.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		it.MaterialID = ptr(1)
		assert.NoError(t, it.Validate())
	})

	t.Run("catalog needs product color", func(t *testing.T) {
		it := CartItem{ProductID: 7, Quantity: 1, Kind: ItemKindCatalog}
		assert.ErrorIs(t, it.Validate(), ErrValidation)

		it.ProductColorID = ptr(12)
		assert.NoError(t, it.Validate())
	})

	t.Run("quantity below one", func(t *testing.T) {
		it := CartItem{ProductID: 7, Quantity: 0, Kind: ItemKindCatalog, ProductColorID: ptr(1)}
		assert.ErrorIs(t, it.Validate(), ErrValidation)
	})

	t.Run("unknown kind", func(t *testing.T) {
		it := CartItem{ProductID: 7, Quantity: 1, Kind: "gift"}
		assert.ErrorIs(t, it.Validate(), ErrValidation)
	})
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 3, UnitPrice: 0.1},
	}
	assert.Equal(t, 200.3, CartTotal(items))
	assert.Equal(t, 0.0, CartTotal(nil))
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderProcessing.Terminal())
}

func TestInvalidMessage(t *testing.T) {
	err := Invalid("quantity must be at least %d", 1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "quantity must be at least 1", err.Error())
}
