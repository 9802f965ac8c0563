package repository

import (
	"context"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

type CouponRepository struct {
	DB Pool
}

func NewCouponRepository(db Pool) *CouponRepository {
	return &CouponRepository{DB: db}
}

const couponColumns = `coupon_id, coupon_code, discount_type, discount_value, is_active, created_at`

// GetActiveByCode returns the active coupon with the given code.
func (r *CouponRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE coupon_code=$1 AND is_active`
	if err := r.DB.QueryRow(ctx, query, code).Scan(&c.CouponID, &c.CouponCode, &c.DiscountType,
		&c.DiscountValue, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, notFound(err, "coupon")
	}
	return &c, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY coupon_id`)
	if err != nil {
		return nil, errors.Wrap(err, "list coupons")
	}
	defer rows.Close()

	out := []model.Coupon{}
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.CouponID, &c.CouponCode, &c.DiscountType, &c.DiscountValue, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CouponRepository) Create(ctx context.Context, c *model.Coupon) (int64, error) {
	var id int64
	query := `INSERT INTO coupons (coupon_code, discount_type, discount_value, is_active)
		VALUES ($1, $2, $3, $4) RETURNING coupon_id`
	if err := r.DB.QueryRow(ctx, query, c.CouponCode, c.DiscountType, c.DiscountValue, c.IsActive).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert coupon")
	}
	return id, nil
}

func (r *CouponRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM coupons WHERE coupon_code=$1)`, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Toggle flips is_active and returns the new value.
func (r *CouponRepository) Toggle(ctx context.Context, id int64) (bool, error) {
	var active bool
	query := `UPDATE coupons SET is_active = NOT is_active WHERE coupon_id=$1 RETURNING is_active`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&active); err != nil {
		return false, notFound(err, "coupon")
	}
	return active, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM coupons WHERE coupon_id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete coupon")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(model.ErrNotFound, "coupon")
	}
	return nil
}

// CountActive is used by the admin dashboard.
func (r *CouponRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE is_active`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count coupons")
	}
	return n, nil
}
