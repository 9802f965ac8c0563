package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemKind tags a cart line as a catalog variant or a custom design.
type ItemKind string

const (
	ItemKindCatalog ItemKind = "catalog"
	ItemKindCustom  ItemKind = "custom"
)

// ItemKindFromCategory maps a legacy category tag to an item kind.
func ItemKindFromCategory(category string) ItemKind {
	if strings.TrimSpace(category) == CustomizableCategory {
		return ItemKindCustom
	}
	return ItemKindCatalog
}

// CartItem is one line of a cart or of an order submission.
type CartItem struct {
	ProductID      int64    `json:"product_id"`
	Name           string   `json:"name,omitempty"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Subtotal       float64  `json:"subtotal"`
	Category       string   `json:"category,omitempty"`
	Kind           ItemKind `json:"kind"`
	ColorID        *int64   `json:"color_id,omitempty"`
	MaterialID     *int64   `json:"material_id,omitempty"`
	ProductColorID *int64   `json:"product_color_id,omitempty"`
}

// Normalize fills Kind from Category when the client did not send it and
// recomputes the subtotal.
func (it *CartItem) Normalize() {
	if it.Kind == "" {
		it.Kind = ItemKindFromCategory(it.Category)
	}
	it.Subtotal = LineSubtotal(it.UnitPrice, it.Quantity)
}

// Validate checks the variant fields required by the item kind.
func (it *CartItem) Validate() error {
	if it.ProductID <= 0 {
		return Invalid("product_id is required")
	}
	if it.Quantity < 1 {
		return Invalid("quantity must be at least 1 (product %d)", it.ProductID)
	}
	if it.UnitPrice < 0 {
		return Invalid("unit_price must be >= 0 (product %d)", it.ProductID)
	}
	switch it.Kind {
	case ItemKindCustom:
		if it.ColorID == nil || it.MaterialID == nil {
			return Invalid("custom item for product %d needs color_id and material_id", it.ProductID)
		}
	case ItemKindCatalog:
		if it.ProductColorID == nil {
			return Invalid("catalog item for product %d needs product_color_id", it.ProductID)
		}
	default:
		return Invalid("unknown item kind %q", it.Kind)
	}
	return nil
}

// LineSubtotal returns price*qty rounded to cents.
func LineSubtotal(unitPrice float64, qty int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		InexactFloat64()
}

// CartTotal sums the subtotals of items.
func CartTotal(items []CartItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(LineSubtotal(it.UnitPrice, it.Quantity)))
	}
	return total.Round(2).InexactFloat64()
}

// CartResponse is returned by GET /cart
type CartResponse struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
