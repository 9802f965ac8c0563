package services

import (
	"context"
	"math"
	"strings"
	"time"

	"GearGodAPI/internal/cart"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// totalTolerance is how far a submitted total may drift from the
// server-side computation before checkout is refused.
const totalTolerance = 0.01

// OrderPublisher fans newly placed orders out to live admin clients.
type OrderPublisher interface {
	Publish(o model.OrderDetail)
}

// PaymentStarter opens a hosted payment for an order and returns the
// redirect URL.
type PaymentStarter interface {
	StartPayment(ctx context.Context, o *model.Order, email string) (string, error)
}

type OrderService struct {
	Repo     *repository.OrderRepository
	Coupons  *CouponService
	Carts    cart.Store
	Events   OrderPublisher
	Mailer   OrderMailer
	Payments PaymentStarter
	Log      *zap.Logger
}

func NewOrderService(r *repository.OrderRepository, cs *CouponService, carts cart.Store, log *zap.Logger) *OrderService {
	return &OrderService{Repo: r, Coupons: cs, Carts: carts, Log: log}
}

func validateCheckout(in *model.PlaceOrderInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)

	required := []struct{ name, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"phone", in.Phone},
		{"shipping_address", in.ShippingAddress},
		{"payment_method", in.PaymentMethod},
	}
	for _, f := range required {
		if f.value == "" {
			return model.Invalid("%s is required", f.name)
		}
	}
	if len(in.CartItems) == 0 {
		return model.Invalid("cart_items must not be empty")
	}
	for i := range in.CartItems {
		in.CartItems[i].Normalize()
		if err := in.CartItems[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PlaceOrder validates the submission, recomputes the total and writes the
// order, its custom designs and its lines in one transaction. Side effects
// after commit never fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, cartKey string, in *model.PlaceOrderInput) (*model.PlacedOrder, error) {
	if err := validateCheckout(in); err != nil {
		return nil, err
	}
	if in.PaymentMethod == model.PaymentMethodMidtrans && s.Payments == nil {
		return nil, model.Invalid("payment method %s is not available", in.PaymentMethod)
	}

	total := model.CartTotal(in.CartItems)
	var couponCode *string
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		c, err := s.Coupons.Resolve(ctx, code)
		if err != nil {
			return nil, err
		}
		total = c.Apply(total)
		couponCode = &c.CouponCode
	}
	if math.Abs(in.TotalAmount-total) > totalTolerance {
		return nil, model.Invalid("total_amount %.2f does not match computed total %.2f", in.TotalAmount, total)
	}

	order := model.Order{
		UserID:          in.UserID,
		TotalAmount:     total,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           in.Phone,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		CouponCode:      couponCode,
		OrderStatus:     model.OrderPending,
	}

	items, err := s.insertOrder(ctx, &order, in.CartItems)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.CreatedAt = &now
	detail := &model.OrderDetail{Order: order, Items: items}
	s.afterCommit(ctx, cartKey, in.Email, detail)

	placed := &model.PlacedOrder{OrderID: order.OrderID, TotalAmount: total}
	if in.PaymentMethod == model.PaymentMethodMidtrans && s.Payments != nil {
		url, err := s.Payments.StartPayment(ctx, &order, in.Email)
		if err != nil {
			// the order stays pending; payment can be retried
			s.Log.Error("start payment", zap.Int64("order_id", order.OrderID), zap.Error(err))
		} else {
			placed.RedirectURL = url
		}
	}
	return placed, nil
}

func (s *OrderService) insertOrder(ctx context.Context, order *model.Order, lines []model.CartItem) ([]model.OrderItem, error) {
	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	orderID, err := s.Repo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		return nil, err
	}
	order.OrderID = orderID

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		it := model.OrderItem{
			OrderID:     orderID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		}

		switch line.Kind {
		case model.ItemKindCustom:
			designID, err := s.Repo.CreateCustomDesignTx(ctx, tx, &model.CustomDesign{
				UserID:     order.UserID,
				ProductID:  line.ProductID,
				ColorID:    *line.ColorID,
				MaterialID: *line.MaterialID,
			})
			if err != nil {
				return nil, err
			}
			it.DesignID = &designID
		default:
			it.ProductColorID = line.ProductColorID
		}

		id, err := s.Repo.CreateOrderItemTx(ctx, tx, &it)
		if err != nil {
			return nil, err
		}
		it.OrderItemID = id
		items = append(items, it)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return items, nil
}

func (s *OrderService) afterCommit(ctx context.Context, cartKey, email string, o *model.OrderDetail) {
	log := s.Log.With(zap.Int64("order_id", o.OrderID))
	log.Info("order placed", zap.Float64("total", o.TotalAmount), zap.Int("items", len(o.Items)))

	if cartKey != "" && s.Carts != nil {
		if err := s.Carts.Clear(ctx, cartKey); err != nil {
			log.Warn("clear cart", zap.String("cart_key", cartKey), zap.Error(err))
		}
	}
	if s.Events != nil {
		s.Events.Publish(*o)
	}
	if email != "" && s.Mailer != nil {
		if err := s.Mailer.SendOrderConfirmation(ctx, email, o); err != nil {
			log.Warn("send confirmation email", zap.Error(err))
		}
	}
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.Repo.GetOrdersByUser(ctx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context, status string, limit, offset int) ([]model.Order, error) {
	var st *model.OrderStatus
	if status != "" {
		v := model.OrderStatus(status)
		if !v.Valid() {
			return nil, model.Invalid("unknown order status %q", status)
		}
		st = &v
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListOrders(ctx, st, limit, offset)
}

// GetOrder returns an order with its lines. A non-nil userID restricts the
// lookup to that customer's orders.
func (s *OrderService) GetOrder(ctx context.Context, id int64, userID *int64) (*model.OrderDetail, error) {
	o, err := s.Repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != nil && (o.UserID == nil || *o.UserID != *userID) {
		return nil, errors.Wrap(model.ErrNotFound, "order")
	}
	items, err := s.Repo.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.OrderDetail{Order: *o, Items: items}, nil
}

// UpdateStatus moves an order to status. Completed and cancelled orders
// cannot change.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := model.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return model.Invalid("unknown order status %q", status)
	}
	o, err := s.Repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if o.OrderStatus.Terminal() {
		return model.Invalid("order %d is %s and cannot change", id, o.OrderStatus)
	}
	if err := s.Repo.UpdateStatus(ctx, s.Repo.DB, id, st); err != nil {
		return err
	}
	s.Log.Info("order status updated", zap.Int64("order_id", id), zap.String("status", string(st)))
	return nil
}
