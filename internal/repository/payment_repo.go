package repository

import (
	"context"

	"GearGodAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type PaymentRepository struct {
	DB Pool
}

func NewPaymentRepository(db Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePending(
	ctx context.Context,
	orderID int64,
	amount float64,
	provider string,
	providerRef string,
	payload []byte,
) (int64, error) {

	var paymentID int64
	q := `
		INSERT INTO payments
			(order_id, amount, status, provider, provider_ref, payload, created_at)
		VALUES
			($1, $2, 'pending', $3, $4, $5, NOW())
		RETURNING payment_id
	`
	err := r.DB.QueryRow(
		ctx, q,
		orderID, amount, provider, providerRef, payload,
	).Scan(&paymentID)
	if err != nil {
		return 0, errors.Wrap(err, "insert payment")
	}
	return paymentID, nil
}

func (r *PaymentRepository) GetByProviderRef(ctx context.Context, ref string) (*model.Payment, error) {
	var p model.Payment
	q := `
		SELECT payment_id, order_id, amount, status, provider, provider_ref, created_at, paid_at
		FROM payments
		WHERE provider_ref=$1
	`
	err := r.DB.QueryRow(ctx, q, ref).Scan(
		&p.PaymentID,
		&p.OrderID,
		&p.Amount,
		&p.Status,
		&p.Provider,
		&p.ProviderRef,
		&p.CreatedAt,
		&p.PaidAt,
	)
	if err != nil {
		return nil, notFound(err, "payment")
	}
	return &p, nil
}

// SettleTx moves a pending payment to status, storing the provider payload.
// It reports false when the payment was already settled.
func (r *PaymentRepository) SettleTx(
	ctx context.Context,
	tx pgx.Tx,
	providerRef string,
	status string,
	payload []byte,
) (bool, error) {

	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET status=$2,
		    payload=$3,
		    paid_at=CASE WHEN $2 = 'paid' THEN NOW() ELSE paid_at END
		WHERE provider_ref=$1 AND status='pending'
	`, providerRef, status, payload)
	if err != nil {
		return false, errors.Wrap(err, "settle payment")
	}
	return tag.RowsAffected() > 0, nil
}
