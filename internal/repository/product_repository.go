package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type productRepository struct {
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price_cents, image_url, created_at
		FROM products
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("id is empty")
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_cents, image_url, created_at
		FROM products
		WHERE id = $1`, id)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("product name is empty")
	}
	if product.PriceCents < 0 {
		return domain.Product{}, fmt.Errorf("product price is negative")
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price_cents, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		product.ID, product.Name, product.Description, product.PriceCents, product.ImageURL,
	).Scan(&product.CreatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("id is empty")
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ReplaceProducts swaps the whole catalog in one transaction, used by
// the seeding path so a failed seed never leaves a half-empty shop.
func (r *productRepository) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	_, err := withTx(ctx, r.pool, func(tx pgx.Tx) (struct{}, error) {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE products"); err != nil {
			return struct{}{}, fmt.Errorf("truncate products: %w", err)
		}

		for _, product := range products {
			if product.ID == uuid.Nil {
				product.ID = uuid.New()
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO products (id, name, description, price_cents, image_url)
				VALUES ($1, $2, $3, $4, $5)`,
				product.ID, product.Name, product.Description, product.PriceCents, product.ImageURL)
			if err != nil {
				return struct{}{}, fmt.Errorf("insert product[%s]: %w", product.Name, err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product   domain.Product
		createdAt time.Time
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.ImageURL,
		&createdAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	product.CreatedAt = createdAt
	return product, nil
}
