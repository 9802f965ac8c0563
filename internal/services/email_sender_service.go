package services

import (
	"context"

	"GearGodAPI/internal/model"
)

// OrderMailer sends the customer's order confirmation.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o *model.OrderDetail) error
}
