package services

import (
	"context"
	"testing"
	"time"

	"GearGodAPI/internal/cart"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(id int64, category string, customizable bool, price float64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"product_id", "category_id", "category", "is_customizable", "name",
		"description", "price", "stock", "image_path", "created_at"}).
		AddRow(id, int64(1), category, customizable, "Product", "desc", price, 10, (*string)(nil), &now)
}

func newCartService(mock pgxmock.PgxPoolIface) *CartService {
	return NewCartService(cart.NewMemoryStore(), repository.NewProductRepository(mock), repository.NewLookupRepository(mock))
}

func TestCartAddCustomizablePricesMaterial(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(5)).
		WillReturnRows(productRows(5, model.CustomizableCategory, true, 2000))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM colors`).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`FROM product_materials pm`).WithArgs(int64(5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"material_id", "name", "price_modifier"}).AddRow(int64(1), "Tempered glass", 150.5))

	resp, err := svc.Add(context.Background(), "user:1", AddToCartInput{ProductID: 5, Quantity: 2, ColorID: ptr(2), MaterialID: ptr(1)})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	it := resp.Items[0]
	assert.Equal(t, model.ItemKindCustom, it.Kind)
	assert.Equal(t, 2150.5, it.UnitPrice)
	assert.Equal(t, 4301.0, it.Subtotal)
	assert.Equal(t, 4301.0, resp.Total)
	assert.Nil(t, it.ProductColorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddCustomizableNeedsMaterial(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(5)).
		WillReturnRows(productRows(5, model.CustomizableCategory, true, 2000))

	_, err := svc.Add(context.Background(), "user:1", AddToCartInput{ProductID: 5, ColorID: ptr(2)})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCartAddCatalogResolvesVariant(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(3)).
		WillReturnRows(productRows(3, "Keyboards", false, 99.99))
	mock.ExpectQuery(`SELECT product_color_id FROM product_colors`).WithArgs(int64(3), int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"product_color_id"}).AddRow(int64(31)))

	resp, err := svc.Add(context.Background(), "guest:x", AddToCartInput{ProductID: 3, ColorID: ptr(4)})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, model.ItemKindCatalog, resp.Items[0].Kind)
	assert.Equal(t, ptr(31), resp.Items[0].ProductColorID)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddCatalogSingleVariantDefault(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(3)).
		WillReturnRows(productRows(3, "Mice", false, 20))
	mock.ExpectQuery(`FROM product_colors pc`).WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"product_color_id", "product_id", "color_id", "name", "hex_code"}).
			AddRow(int64(8), int64(3), int64(1), "Black", "#000000"))

	resp, err := svc.Add(context.Background(), "guest:x", AddToCartInput{ProductID: 3})
	require.NoError(t, err)
	assert.Equal(t, ptr(8), resp.Items[0].ProductColorID)
}

func TestCartAddUnknownColor(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(3)).
		WillReturnRows(productRows(3, "Keyboards", false, 10))
	mock.ExpectQuery(`SELECT product_color_id FROM product_colors`).WithArgs(int64(3), int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Add(context.Background(), "guest:x", AddToCartInput{ProductID: 3, ColorID: ptr(9)})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCartAddUnknownProduct(t *testing.T) {
	mock := newMock(t)
	svc := newCartService(mock)

	mock.ExpectQuery(`FROM products p`).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	_, err := svc.Add(context.Background(), "guest:x", AddToCartInput{ProductID: 404})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCartRemoveMissing(t *testing.T) {
	svc := newCartService(newMock(t))
	_, err := svc.Remove(context.Background(), "guest:x", 1)
	assert.ErrorIs(t, err, model.ErrNotFound)

	resp, err := svc.Get(context.Background(), "guest:x")
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Zero(t, resp.Total)
}
