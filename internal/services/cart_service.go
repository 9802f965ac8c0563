package services

import (
	"context"

	"GearGodAPI/internal/cart"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AddToCartInput is what the storefront sends when a product is added.
// Price, category and variant are resolved from the catalog.
type AddToCartInput struct {
	ProductID  int64  `json:"product_id"`
	Quantity   int    `json:"quantity"`
	ColorID    *int64 `json:"color_id"`
	MaterialID *int64 `json:"material_id"`
}

type CartService struct {
	Store    cart.Store
	Products *repository.ProductRepository
	Lookups  *repository.LookupRepository
}

func NewCartService(store cart.Store, pr *repository.ProductRepository, lr *repository.LookupRepository) *CartService {
	return &CartService{Store: store, Products: pr, Lookups: lr}
}

func response(items []model.CartItem) *model.CartResponse {
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.CartResponse{Items: items, Total: model.CartTotal(items)}
}

func (s *CartService) Get(ctx context.Context, key string) (*model.CartResponse, error) {
	items, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return response(items), nil
}

// Add resolves the line from the catalog and adds it to the cart.
func (s *CartService) Add(ctx context.Context, key string, in AddToCartInput) (*model.CartResponse, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return nil, model.Invalid("quantity must be at least 1")
	}

	item, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	items, err := s.Store.Add(ctx, key, *item)
	if err != nil {
		return nil, err
	}
	return response(items), nil
}

func (s *CartService) resolve(ctx context.Context, in AddToCartInput) (*model.CartItem, error) {
	p, err := s.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Quantity:  in.Quantity,
		UnitPrice: p.Price,
		Category:  p.CategoryName,
	}

	if p.IsCustomizable {
		if in.ColorID == nil || in.MaterialID == nil {
			return nil, model.Invalid("product %d is customizable: color_id and material_id are required", p.ProductID)
		}
		ok, err := s.Lookups.ColorExists(ctx, *in.ColorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.Invalid("color %d not found", *in.ColorID)
		}
		m, err := s.Lookups.GetProductMaterial(ctx, p.ProductID, *in.MaterialID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.Invalid("material %d is not offered for product %d", *in.MaterialID, p.ProductID)
			}
			return nil, err
		}
		item.Kind = model.ItemKindCustom
		item.ColorID = in.ColorID
		item.MaterialID = in.MaterialID
		item.UnitPrice = decimal.NewFromFloat(p.Price).
			Add(decimal.NewFromFloat(m.PriceModifier)).
			Round(2).
			InexactFloat64()
	} else {
		pcID, err := s.catalogVariant(ctx, p.ProductID, in.ColorID)
		if err != nil {
			return nil, err
		}
		item.Kind = model.ItemKindCatalog
		item.ColorID = in.ColorID
		item.ProductColorID = &pcID
	}

	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// catalogVariant finds the product_color row for the chosen color. A
// product with a single variant does not need a color in the request.
func (s *CartService) catalogVariant(ctx context.Context, productID int64, colorID *int64) (int64, error) {
	if colorID != nil {
		id, err := s.Lookups.FindProductColor(ctx, productID, *colorID)
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.Invalid("color %d is not available for product %d", *colorID, productID)
		}
		return id, err
	}
	variants, err := s.Lookups.ListProductColors(ctx, productID)
	if err != nil {
		return 0, err
	}
	if len(variants) != 1 {
		return 0, model.Invalid("color_id is required for product %d", productID)
	}
	return variants[0].ProductColorID, nil
}

func (s *CartService) Update(ctx context.Context, key string, productID int64, qty int) (*model.CartResponse, error) {
	items, err := s.Store.Update(ctx, key, productID, qty)
	if err != nil {
		return nil, err
	}
	return response(items), nil
}

func (s *CartService) Remove(ctx context.Context, key string, productID int64) (*model.CartResponse, error) {
	items, err := s.Store.Remove(ctx, key, productID)
	if err != nil {
		return nil, err
	}
	return response(items), nil
}

func (s *CartService) Clear(ctx context.Context, key string) error {
	return s.Store.Clear(ctx, key)
}
