package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

type ProductService struct {
	Repo      *repository.ProductRepository
	Lookups   *repository.LookupRepository
	UploadDir string
	Log       *zap.Logger
}

func NewProductService(r *repository.ProductRepository, lr *repository.LookupRepository, uploadDir string, log *zap.Logger) *ProductService {
	return &ProductService{Repo: r, Lookups: lr, UploadDir: uploadDir, Log: log}
}

func (s *ProductService) validate(ctx context.Context, in *model.ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Invalid("name is required")
	}
	if in.Price < 0 {
		return model.Invalid("price must be >= 0")
	}
	if in.Stock < 0 {
		return model.Invalid("stock must be >= 0")
	}
	ok, err := s.Lookups.CategoryExists(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return model.Invalid("category %d not found", in.CategoryID)
	}
	return nil
}

func toProduct(in *model.ProductInput) *model.Product {
	return &model.Product{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
}

// CreateProduct inserts the product with its color variants and materials.
func (s *ProductService) CreateProduct(ctx context.Context, in *model.ProductInput) (int64, error) {
	if err := s.validate(ctx, in); err != nil {
		return 0, err
	}

	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	id, err := s.Repo.CreateTx(ctx, tx, toProduct(in))
	if err != nil {
		return 0, err
	}
	if err := s.Repo.ReplaceColorsTx(ctx, tx, id, in.ColorIDs); err != nil {
		return 0, err
	}
	if err := s.Repo.ReplaceMaterialsTx(ctx, tx, id, in.MaterialIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return id, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in *model.ProductInput) error {
	if err := s.validate(ctx, in); err != nil {
		return err
	}

	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	p := toProduct(in)
	p.ProductID = id
	if err := s.Repo.UpdateTx(ctx, tx, p); err != nil {
		return err
	}
	if err := s.Repo.ReplaceColorsTx(ctx, tx, id, in.ColorIDs); err != nil {
		return err
	}
	if err := s.Repo.ReplaceMaterialsTx(ctx, tx, id, in.MaterialIDs); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(ctx), "commit")
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, categoryID *int64, limit, offset int) ([]model.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, categoryID, limit, offset)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

// SaveImage writes the upload under UploadDir and records its public path.
// The file is removed again if the product row cannot be updated.
func (s *ProductService) SaveImage(ctx context.Context, id int64, filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExts[ext] {
		return "", model.Invalid("unsupported image type %q", ext)
	}
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}

	name := "product-" + uuid.NewString() + ext
	full := filepath.Join(s.UploadDir, name)
	dst, err := os.Create(full)
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(full)
		return "", errors.Wrap(err, "write image file")
	}
	if err := dst.Close(); err != nil {
		os.Remove(full)
		return "", errors.Wrap(err, "close image file")
	}

	public := "/uploads/" + name
	if err := s.Repo.SetImagePath(ctx, id, public); err != nil {
		if rmErr := os.Remove(full); rmErr != nil {
			s.Log.Warn("remove orphaned upload", zap.String("path", full), zap.Error(rmErr))
		}
		return "", err
	}
	return public, nil
}
