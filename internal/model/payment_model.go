package model

import "time"

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"

	PaymentMethodMidtrans = "midtrans"
)

type Payment struct {
	PaymentID   int64      `json:"payment_id"`
	OrderID     int64      `json:"order_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Provider    string     `json:"provider"`
	ProviderRef string     `json:"provider_ref"`
	Payload     []byte     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}
