package model

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order represents an entry in the orders table
type Order struct {
	OrderID         int64       `json:"order_id"`
	UserID          *int64      `json:"user_id,omitempty"`
	TotalAmount     float64     `json:"total_amount"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Phone           string      `json:"phone"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CouponCode      *string     `json:"coupon_code,omitempty"`
	OrderStatus     OrderStatus `json:"order_status"`
	CreatedAt       *time.Time  `json:"created_at,omitempty"`
}

// OrderItem references exactly one of ProductColorID or DesignID.
type OrderItem struct {
	OrderItemID    int64   `json:"order_item_id"`
	OrderID        int64   `json:"order_id"`
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	Subtotal       float64 `json:"subtotal"`
	ProductColorID *int64  `json:"product_color_id,omitempty"`
	DesignID       *int64  `json:"design_id,omitempty"`
}

type CustomDesign struct {
	DesignID   int64  `json:"design_id"`
	UserID     *int64 `json:"user_id,omitempty"`
	ProductID  int64  `json:"product_id"`
	ColorID    int64  `json:"color_id"`
	MaterialID int64  `json:"material_id"`
}

// PlaceOrderInput is the checkout submission.
type PlaceOrderInput struct {
	UserID          *int64     `json:"user_id"`
	TotalAmount     float64    `json:"total_amount"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	ShippingAddress string     `json:"shipping_address"`
	PaymentMethod   string     `json:"payment_method"`
	CouponCode      string     `json:"coupon_code,omitempty"`
	Email           string     `json:"email,omitempty"`
	CartItems       []CartItem `json:"cart_items"`
}

// PlacedOrder is what checkout hands back to the caller.
type PlacedOrder struct {
	OrderID     int64   `json:"orderId"`
	TotalAmount float64 `json:"total_amount"`
	RedirectURL string  `json:"redirect_url,omitempty"`
}

type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
}
