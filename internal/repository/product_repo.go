package repository

import (
	"context"
	"time"

	"GearGodAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type ProductRepository struct {
	DB Pool
}

func NewProductRepository(db Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productSelect = `
	SELECT p.product_id, p.category_id, c.name, c.is_customizable, p.name, p.description,
	       p.price, p.stock, p.image_path, p.created_at
	FROM products p
	JOIN categories c ON c.category_id = p.category_id
`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ProductID, &p.CategoryID, &p.CategoryName, &p.IsCustomizable, &p.Name,
		&p.Description, &p.Price, &p.Stock, &p.ImagePath, &p.CreatedAt)
}

// CreateTx inserts a product and returns its id.
func (r *ProductRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Product) (int64, error) {
	var id int64
	query := `INSERT INTO products (category_id, name, description, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING product_id`
	if err := tx.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, time.Now()).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert product")
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := productSelect + ` WHERE p.product_id=$1 AND p.deleted_at IS NULL`
	if err := scanProduct(r.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

// List returns live products, optionally restricted to one category.
func (r *ProductRepository) List(ctx context.Context, categoryID *int64, limit, offset int) ([]model.Product, error) {
	query := productSelect + `
		WHERE p.deleted_at IS NULL AND ($1::bigint IS NULL OR p.category_id = $1)
		ORDER BY p.product_id LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) UpdateTx(ctx context.Context, tx pgx.Tx, p *model.Product) error {
	query := `UPDATE products SET category_id=$1, name=$2, description=$3, price=$4, stock=$5
		WHERE product_id=$6 AND deleted_at IS NULL`
	tag, err := tx.Exec(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.ProductID)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(model.ErrNotFound, "product")
	}
	return nil
}

// Delete soft-deletes a product; ordered items keep their reference.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE products SET deleted_at=$1 WHERE product_id=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(model.ErrNotFound, "product")
	}
	return nil
}

func (r *ProductRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	query := `UPDATE products SET image_path=$1 WHERE product_id=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, path, id)
	if err != nil {
		return errors.Wrap(err, "set image path")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(model.ErrNotFound, "product")
	}
	return nil
}

// ReplaceColorsTx makes colorIDs the full set of catalog variants for a product.
// A nil slice removes every variant. Variants already referenced by orders are kept.
func (r *ProductRepository) ReplaceColorsTx(ctx context.Context, tx pgx.Tx, productID int64, colorIDs []int64) error {
	if colorIDs == nil {
		// ANY(NULL) never matches, so nothing would be pruned
		colorIDs = []int64{}
	}
	del := `DELETE FROM product_colors pc
		WHERE pc.product_id=$1 AND NOT (pc.color_id = ANY($2::bigint[]))
		AND NOT EXISTS (SELECT 1 FROM order_items oi WHERE oi.product_color_id = pc.product_color_id)`
	if _, err := tx.Exec(ctx, del, productID, colorIDs); err != nil {
		return errors.Wrap(err, "prune product colors")
	}
	if len(colorIDs) == 0 {
		return nil
	}
	ins := `INSERT INTO product_colors (product_id, color_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT (product_id, color_id) DO NOTHING`
	if _, err := tx.Exec(ctx, ins, productID, colorIDs); err != nil {
		return errors.Wrap(err, "insert product colors")
	}
	return nil
}

// ReplaceMaterialsTx makes materialIDs the set of materials offered for a product.
func (r *ProductRepository) ReplaceMaterialsTx(ctx context.Context, tx pgx.Tx, productID int64, materialIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_materials WHERE product_id=$1`, productID); err != nil {
		return errors.Wrap(err, "clear product materials")
	}
	if len(materialIDs) == 0 {
		return nil
	}
	ins := `INSERT INTO product_materials (product_id, material_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(ctx, ins, productID, materialIDs); err != nil {
		return errors.Wrap(err, "insert product materials")
	}
	return nil
}
