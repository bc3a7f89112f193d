package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/insurance-product-service/internal/domain"
)

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	FindByCodeAndLocation(ctx context.Context, code, location string) (*domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, code string) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) FindByCodeAndLocation(ctx context.Context, code, location string) (*domain.Product, error) {
	const query = `
        SELECT id, product_code, location, price
        FROM products WHERE product_code=$1 AND location=$2`
	return r.fetchSingle(ctx, query, code, location)
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	const query = `
        SELECT id, product_code, location, price
        FROM products WHERE product_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (product_code, location, price)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		product.ProductCode,
		product.Location,
		product.Price,
	).Scan(&product.ID)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET location=$1, price=$2, updated_at=NOW()
        WHERE product_code=$3`
	cmd, err := r.pool.Exec(ctx, query,
		product.Location,
		product.Price,
		product.ProductCode,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, code string) (int64, error) {
	const query = `DELETE FROM products WHERE product_code=$1`
	cmd, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *productRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&product.ID,
		&product.ProductCode,
		&product.Location,
		&product.Price,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
