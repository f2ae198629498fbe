package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

const productColumns = `id::text, product_name, product_description, product_price, product_category, product_brand, product_image, created_at, updated_at`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	const query = `INSERT INTO products (id, product_name, product_description, product_price, product_category, product_brand, product_image)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Category, product.Brand, product.Image))
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDs skips ids that are not valid uuids; they cannot match a row.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	result := make(map[string]model.Product, len(valid))
	if len(valid) == 0 {
		return result, nil
	}

	const query = `SELECT ` + productColumns + ` FROM products WHERE id::text = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, valid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET product_name=$2, product_description=$3, product_price=$4, product_category=$5,
                       product_brand=$6, product_image=$7, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Category, product.Brand, product.Image))
	if err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		if isNoMatch(err) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	const query = `INSERT INTO categories (id, category_name) VALUES ($1, $2) RETURNING created_at`
	if err := r.storage.pool.QueryRow(ctx, query, category.ID, category.Name).Scan(&category.CreatedAt); err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id::text, category_name, created_at FROM categories ORDER BY category_name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	const query = `SELECT id::text, category_name, created_at FROM categories WHERE category_name=$1`
	var c model.Category
	if err := r.storage.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
