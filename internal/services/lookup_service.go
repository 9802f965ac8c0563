package services

import (
	"context"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"
)

// LookupService serves the read-only reference data the storefront needs
// to render product pages.
type LookupService struct {
	Repo     *repository.LookupRepository
	Products *repository.ProductRepository
}

func NewLookupService(r *repository.LookupRepository, pr *repository.ProductRepository) *LookupService {
	return &LookupService{Repo: r, Products: pr}
}

func (s *LookupService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *LookupService) Colors(ctx context.Context) ([]model.Color, error) {
	return s.Repo.ListColors(ctx)
}

func (s *LookupService) ProductColors(ctx context.Context, productID int64) ([]model.ProductColor, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListProductColors(ctx, productID)
}

func (s *LookupService) ProductMaterials(ctx context.Context, productID int64) ([]model.Material, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListProductMaterials(ctx, productID)
}
