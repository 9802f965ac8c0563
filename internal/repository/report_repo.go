package repository

import (
	"context"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

// ReportRepository runs read-only aggregates for the admin dashboard.
type ReportRepository struct {
	DB Pool
}

func NewReportRepository(db Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// OrderTotals returns the order count and the revenue of processing + completed orders.
func (r *ReportRepository) OrderTotals(ctx context.Context) (count int64, revenue float64, err error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount) FILTER (WHERE order_status IN ('processing', 'completed')), 0)
		FROM orders
	`
	if err := r.DB.QueryRow(ctx, query).Scan(&count, &revenue); err != nil {
		return 0, 0, errors.Wrap(err, "order totals")
	}
	return count, revenue, nil
}

func (r *ReportRepository) OrdersByStatus(ctx context.Context) ([]model.StatusCount, error) {
	rows, err := r.DB.Query(ctx, `SELECT order_status, COUNT(*) FROM orders GROUP BY order_status ORDER BY order_status`)
	if err != nil {
		return nil, errors.Wrap(err, "orders by status")
	}
	defer rows.Close()

	out := []model.StatusCount{}
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// TopProducts ranks products by quantity ordered, excluding cancelled orders.
func (r *ReportRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	query := `
		SELECT p.product_id, p.name, SUM(oi.quantity)::bigint AS qty
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		JOIN products p ON p.product_id = oi.product_id
		WHERE o.order_status <> 'cancelled'
		GROUP BY p.product_id, p.name
		ORDER BY qty DESC, p.product_id
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "top products")
	}
	defer rows.Close()

	out := []model.TopProduct{}
	for rows.Next() {
		var tp model.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Quantity); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}
