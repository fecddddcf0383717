package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront-service/internal/database"
	"storefront-service/internal/models"
)

type catalogRepo struct {
	connect database.Connector
}

func NewCatalogRepository(connect database.Connector) CatalogRepository {
	return &catalogRepo{connect: connect}
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	sql := `
		SELECT
			id::text,
			name,
			slug,
			image
		FROM public.categories
		ORDER BY name ASC
	`

	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return categories, nil
}

func (r *catalogRepo) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	sql, args := BuildProductQuery(filter)

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}

// GetProduct rejects an empty id before opening a connection. HTTP callers
// never pass one; the check holds for any other caller of the repository.
func (r *catalogRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id cannot be empty", ErrInvalidInput)
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	p, err := scanProduct(conn.QueryRow(ctx, productByIDQuery(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return &p, nil
}
