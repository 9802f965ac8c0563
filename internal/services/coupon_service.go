package services

import (
	"context"
	"strings"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
)

const (
	msgCouponApplied = "Coupon applied"
	msgCouponInvalid = "Invalid or inactive coupon code"
)

type CouponService struct {
	Repo *repository.CouponRepository
}

func NewCouponService(r *repository.CouponRepository) *CouponService {
	return &CouponService{Repo: r}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate reports whether code names an active coupon and what it gives.
// Unknown and inactive codes are not errors: they yield Valid=false.
func (s *CouponService) Evaluate(ctx context.Context, code string) (*model.CouponResult, error) {
	code = normalizeCode(code)
	if code == "" {
		return &model.CouponResult{Valid: false, Message: "Coupon code is required"}, nil
	}
	c, err := s.Repo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.CouponResult{Valid: false, Message: msgCouponInvalid}, nil
		}
		return nil, err
	}
	return &model.CouponResult{
		Valid:    true,
		Type:     c.DiscountType,
		Discount: c.DiscountValue,
		Message:  msgCouponApplied,
	}, nil
}

// Resolve returns the active coupon for checkout, or a validation error.
func (s *CouponService) Resolve(ctx context.Context, code string) (*model.Coupon, error) {
	c, err := s.Repo.GetActiveByCode(ctx, normalizeCode(code))
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.Invalid("coupon %q is invalid or inactive", code)
	}
	return c, err
}

func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.Repo.List(ctx)
}

func (s *CouponService) Create(ctx context.Context, c *model.Coupon) (int64, error) {
	c.CouponCode = normalizeCode(c.CouponCode)
	if c.CouponCode == "" {
		return 0, model.Invalid("coupon_code is required")
	}
	if !c.DiscountType.Valid() {
		return 0, model.Invalid("discount_type must be %q or %q", model.DiscountPercentage, model.DiscountFixed)
	}
	if c.DiscountValue <= 0 {
		return 0, model.Invalid("discount_value must be > 0")
	}
	if c.DiscountType == model.DiscountPercentage && c.DiscountValue > 100 {
		return 0, model.Invalid("percentage discount cannot exceed 100")
	}
	exists, err := s.Repo.CodeExists(ctx, c.CouponCode)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, model.Invalid("coupon %s already exists", c.CouponCode)
	}
	return s.Repo.Create(ctx, c)
}

func (s *CouponService) Toggle(ctx context.Context, id int64) (bool, error) {
	return s.Repo.Toggle(ctx, id)
}

func (s *CouponService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
