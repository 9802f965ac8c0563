package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type Coupon struct {
	CouponID      int64        `json:"coupon_id"`
	CouponCode    string       `json:"coupon_code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     *time.Time   `json:"created_at,omitempty"`
}

// Apply returns amount after the coupon discount, rounded to cents.
// The result never goes below zero.
func (c *Coupon) Apply(amount float64) float64 {
	a := decimal.NewFromFloat(amount)
	v := decimal.NewFromFloat(c.DiscountValue)
	var out decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		if v.GreaterThan(decimal.NewFromInt(100)) {
			v = decimal.NewFromInt(100)
		}
		out = a.Sub(a.Mul(v).Div(decimal.NewFromInt(100)))
	case DiscountFixed:
		out = a.Sub(v)
	default:
		out = a
	}
	if out.IsNegative() {
		out = decimal.Zero
	}
	return out.Round(2).InexactFloat64()
}

// CouponResult is the evaluator's answer for a code.
type CouponResult struct {
	Valid    bool         `json:"valid"`
	Type     DiscountType `json:"type,omitempty"`
	Discount float64      `json:"discount,omitempty"`
	Message  string       `json:"message"`
}
