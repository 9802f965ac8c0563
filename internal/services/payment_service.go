package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	mt "GearGodAPI/external/midtrans"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SnapClient is the part of the Midtrans Snap client the service uses.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	OrderRepo   *repository.OrderRepository
	Snap        SnapClient
	ServerKey   string
	Log         *zap.Logger
}

func NewPaymentService(
	pr *repository.PaymentRepository,
	or *repository.OrderRepository,
	snap SnapClient,
	serverKey string,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		PaymentRepo: pr,
		OrderRepo:   or,
		Snap:        snap,
		ServerKey:   serverKey,
		Log:         log,
	}
}

// StartPayment creates a Snap transaction for the order and records it as
// a pending payment.
func (s *PaymentService) StartPayment(ctx context.Context, order *model.Order, email string) (string, error) {
	externalRef := fmt.Sprintf("ORDER-%d-%s", order.OrderID, uuid.NewString())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: int64(math.Round(order.TotalAmount)),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.FirstName,
			LName: order.LastName,
			Email: email,
			Phone: order.Phone,
		},
	}

	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", errors.Errorf("midtrans: %s", snapErr.GetMessage())
	}

	payload, _ := json.Marshal(resp)
	if _, err := s.PaymentRepo.CreatePending(
		ctx,
		order.OrderID,
		order.TotalAmount,
		model.PaymentMethodMidtrans,
		externalRef,
		payload,
	); err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}

// RetryPayment opens a new Snap transaction for a pending order.
func (s *PaymentService) RetryPayment(ctx context.Context, orderID int64, userID *int64) (string, error) {
	order, err := s.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if userID != nil && (order.UserID == nil || *order.UserID != *userID) {
		return "", errors.Wrap(model.ErrForbidden, "order belongs to another customer")
	}
	if order.PaymentMethod != model.PaymentMethodMidtrans {
		return "", model.Invalid("order %d is not paid online", orderID)
	}
	if order.OrderStatus != model.OrderPending {
		return "", model.Invalid("order %d cannot be paid", orderID)
	}
	return s.StartPayment(ctx, order, "")
}

// HandleNotification applies a Midtrans status notification. Replays of an
// already settled payment are ignored.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	ref, ok := payload["order_id"].(string)
	if !ok || ref == "" {
		return model.Invalid("missing order_id")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(ref, statusCode, grossAmount, signature, s.ServerKey) {
		return errors.Wrap(model.ErrForbidden, "invalid signature")
	}

	payment, err := s.PaymentRepo.GetByProviderRef(ctx, ref)
	if err != nil {
		return err
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	var (
		paymentStatus string
		orderStatus   model.OrderStatus
	)
	switch transactionStatus {
	case "settlement":
		paymentStatus, orderStatus = model.PaymentPaid, model.OrderProcessing
	case "capture":
		if fraudStatus != "accept" {
			return nil
		}
		paymentStatus, orderStatus = model.PaymentPaid, model.OrderProcessing
	case "expire", "cancel", "deny":
		paymentStatus, orderStatus = model.PaymentFailed, model.OrderCancelled
	default:
		return nil
	}

	data, _ := json.Marshal(payload)

	tx, err := s.PaymentRepo.DB.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	changed, err := s.PaymentRepo.SettleTx(ctx, tx, ref, paymentStatus, data)
	if err != nil {
		return err
	}
	if !changed {
		// already processed → safely ignore
		return nil
	}

	log := s.Log.With(zap.Int64("order_id", payment.OrderID), zap.String("ref", ref))
	if err := s.OrderRepo.UpdateStatus(ctx, tx, payment.OrderID, orderStatus); err != nil {
		if !errors.Is(err, model.ErrValidation) {
			return err
		}
		log.Warn("order already closed, payment recorded only", zap.String("payment_status", paymentStatus))
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit")
	}
	log.Info("payment notification applied", zap.String("payment_status", paymentStatus))
	return nil
}
