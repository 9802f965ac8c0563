package repository

import (
	"context"
	"testing"
	"time"

	"GearGodAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCouponGetActiveByCode(t *testing.T) {
	mock := newMock(t)
	repo := NewCouponRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM coupons WHERE coupon_code=\$1 AND is_active`).
		WithArgs("SAVE10").
		WillReturnRows(pgxmock.NewRows([]string{"coupon_id", "coupon_code", "discount_type", "discount_value", "is_active", "created_at"}).
			AddRow(int64(3), "SAVE10", model.DiscountPercentage, 10.0, true, &now))

	c, err := repo.GetActiveByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.CouponID)
	assert.Equal(t, model.DiscountPercentage, c.DiscountType)
	assert.Equal(t, 10.0, c.DiscountValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponGetActiveByCodeMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewCouponRepository(mock)

	mock.ExpectQuery(`FROM coupons WHERE coupon_code=\$1 AND is_active`).
		WithArgs("NOPE").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetActiveByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponDeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewCouponRepository(mock)

	mock.ExpectExec(`DELETE FROM coupons`).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
