package repository

import (
	"context"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

// LookupRepository serves categories, colors, materials and product variants.
type LookupRepository struct {
	DB Pool
}

func NewLookupRepository(db Pool) *LookupRepository {
	return &LookupRepository{DB: db}
}

func (r *LookupRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT category_id, name, is_customizable FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.IsCustomizable); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *LookupRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE category_id=$1)`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LookupRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	rows, err := r.DB.Query(ctx, `SELECT color_id, name, hex_code FROM colors ORDER BY color_id`)
	if err != nil {
		return nil, errors.Wrap(err, "list colors")
	}
	defer rows.Close()

	out := []model.Color{}
	for rows.Next() {
		var c model.Color
		if err := rows.Scan(&c.ColorID, &c.Name, &c.HexCode); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListProductColors returns the catalog variants defined for a product.
func (r *LookupRepository) ListProductColors(ctx context.Context, productID int64) ([]model.ProductColor, error) {
	query := `
		SELECT pc.product_color_id, pc.product_id, c.color_id, c.name, c.hex_code
		FROM product_colors pc
		JOIN colors c ON c.color_id = pc.color_id
		WHERE pc.product_id=$1
		ORDER BY c.color_id
	`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list product colors")
	}
	defer rows.Close()

	out := []model.ProductColor{}
	for rows.Next() {
		var pc model.ProductColor
		if err := rows.Scan(&pc.ProductColorID, &pc.ProductID, &pc.ColorID, &pc.ColorName, &pc.HexCode); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// ListProductMaterials returns the materials a customizable product offers.
func (r *LookupRepository) ListProductMaterials(ctx context.Context, productID int64) ([]model.Material, error) {
	query := `
		SELECT m.material_id, m.name, m.price_modifier
		FROM product_materials pm
		JOIN materials m ON m.material_id = pm.material_id
		WHERE pm.product_id=$1
		ORDER BY m.material_id
	`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list product materials")
	}
	defer rows.Close()

	out := []model.Material{}
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.MaterialID, &m.Name, &m.PriceModifier); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindProductColor resolves the catalog variant id for product x color.
func (r *LookupRepository) FindProductColor(ctx context.Context, productID, colorID int64) (int64, error) {
	var id int64
	query := `SELECT product_color_id FROM product_colors WHERE product_id=$1 AND color_id=$2`
	if err := r.DB.QueryRow(ctx, query, productID, colorID).Scan(&id); err != nil {
		return 0, notFound(err, "product color")
	}
	return id, nil
}

// GetProductMaterial returns the material when the product offers it.
func (r *LookupRepository) GetProductMaterial(ctx context.Context, productID, materialID int64) (*model.Material, error) {
	var m model.Material
	query := `
		SELECT m.material_id, m.name, m.price_modifier
		FROM product_materials pm
		JOIN materials m ON m.material_id = pm.material_id
		WHERE pm.product_id=$1 AND pm.material_id=$2
	`
	if err := r.DB.QueryRow(ctx, query, productID, materialID).Scan(&m.MaterialID, &m.Name, &m.PriceModifier); err != nil {
		return nil, notFound(err, "product material")
	}
	return &m, nil
}

func (r *LookupRepository) ColorExists(ctx context.Context, colorID int64) (bool, error) {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM colors WHERE color_id=$1)`, colorID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
