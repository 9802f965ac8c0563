package repository

import (
	"context"
	"time"

	"GearGodAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type OrderRepository struct {
	DB Pool
}

func NewOrderRepository(db Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `order_id, user_id, total_amount, first_name, last_name, phone, shipping_address,
	payment_method, coupon_code, order_status, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.OrderID, &o.UserID, &o.TotalAmount, &o.FirstName, &o.LastName, &o.Phone,
		&o.ShippingAddress, &o.PaymentMethod, &o.CouponCode, &o.OrderStatus, &o.CreatedAt)
}

// CreateOrderTx inserts the order header with status pending and returns its id.
func (r *OrderRepository) CreateOrderTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error) {
	var id int64
	query := `
		INSERT INTO orders (user_id, total_amount, first_name, last_name, phone, shipping_address,
		                    payment_method, coupon_code, order_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING order_id
	`
	err := tx.QueryRow(ctx, query, o.UserID, o.TotalAmount, o.FirstName, o.LastName, o.Phone,
		o.ShippingAddress, o.PaymentMethod, o.CouponCode, model.OrderPending, time.Now()).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert order")
	}
	return id, nil
}

// CreateCustomDesignTx inserts a custom design row and returns its id.
func (r *OrderRepository) CreateCustomDesignTx(ctx context.Context, tx pgx.Tx, d *model.CustomDesign) (int64, error) {
	var id int64
	query := `
		INSERT INTO custom_designs (user_id, product_id, color_id, material_id)
		VALUES ($1, $2, $3, $4)
		RETURNING design_id
	`
	if err := tx.QueryRow(ctx, query, d.UserID, d.ProductID, d.ColorID, d.MaterialID).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert custom design")
	}
	return id, nil
}

// CreateOrderItemTx inserts an order line referencing either a product color or a design.
func (r *OrderRepository) CreateOrderItemTx(ctx context.Context, tx pgx.Tx, it *model.OrderItem) (int64, error) {
	var id int64
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal, product_color_id, design_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_item_id
	`
	err := tx.QueryRow(ctx, query, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		it.ProductColorID, it.DesignID).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert order item")
	}
	return id, nil
}

// GetOrderByID returns the order row for the given id
func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id=$1`
	if err := scanOrder(r.DB.QueryRow(ctx, query, orderID), &o); err != nil {
		return nil, notFound(err, "order")
	}
	return &o, nil
}

// GetOrderItems returns the lines of an order with product names.
func (r *OrderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price,
		       oi.subtotal, oi.product_color_id, oi.design_id
		FROM order_items oi
		JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id=$1
		ORDER BY oi.order_item_id
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "list order items")
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.ProductColorID, &it.DesignID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetOrdersByUser returns a customer's orders, newest first.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY order_id DESC`
	return r.queryOrders(ctx, query, userID)
}

// ListOrders returns orders newest first, optionally filtered by status.
// A limit of 0 returns every row.
func (r *OrderRepository) ListOrders(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1::text IS NULL OR order_status = $1)
		ORDER BY order_id DESC
		LIMIT NULLIF($2, 0) OFFSET $3`
	var st *string
	if status != nil {
		s := string(*status)
		st = &s
	}
	return r.queryOrders(ctx, query, st, limit, offset)
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order to status unless it is already completed or cancelled.
func (r *OrderRepository) UpdateStatus(ctx context.Context, q DBTX, orderID int64, status model.OrderStatus) error {
	query := `UPDATE orders SET order_status=$1
		WHERE order_id=$2 AND order_status NOT IN ('completed', 'cancelled')`
	tag, err := q.Exec(ctx, query, status, orderID)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	if tag.RowsAffected() == 0 {
		return model.Invalid("order %d not found or already closed", orderID)
	}
	return nil
}
