package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type SeedCategory struct {
	Name  string
	Slug  string
	Image *string
}

type SeedProduct struct {
	Name             string
	CategorySlug     string
	Price            float64
	OldPrice         *float64
	DiscountPercent  *int
	FreeShipping     bool
	ShortDescription string
	Description      string
	Images           []string
}

type SeedData struct {
	Categories []SeedCategory
	Products   []SeedProduct
}

const (
	seedCategorySQL = `INSERT INTO public.categories (name, slug, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING
	`

	// a product is identified by name within its category
	seedProductSQL = `INSERT INTO public.products (
			name, price, old_price, discount_percent, free_shipping,
			short_description, description, category_id
		)
		SELECT $1::text, $2::numeric, $3::numeric, $4::int, $5::boolean, $6::text, $7::text, c.id
		FROM public.categories c
		WHERE c.slug = $8
			AND NOT EXISTS (
				SELECT 1 FROM public.products p WHERE p.name = $1::text AND p.category_id = c.id
			)
		RETURNING id::text
	`

	seedImageSQL = `INSERT INTO public.product_images (product_id, url, sort_order)
		VALUES ($1, $2, $3)
	`
)

// Seed inserts the given catalog in one transaction and returns how many
// products were new. Running it twice adds nothing the second time.
func Seed(ctx context.Context, conn Conn, data SeedData) (int, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range data.Categories {
		if _, err := tx.Exec(ctx, seedCategorySQL, c.Name, c.Slug, c.Image); err != nil {
			return 0, fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
		}
	}

	inserted := 0
	for _, p := range data.Products {
		var id string
		err := tx.QueryRow(ctx, seedProductSQL,
			p.Name, p.Price, p.OldPrice, p.DiscountPercent, p.FreeShipping,
			p.ShortDescription, p.Description, p.CategorySlug,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}

		for i, url := range p.Images {
			if _, err := tx.Exec(ctx, seedImageSQL, id, url, i+1); err != nil {
				return 0, fmt.Errorf("failed to seed image for %q: %w", p.Name, err)
			}
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

func ptr[T any](v T) *T { return &v }

// DemoCatalog is a small catalog for local development.
var DemoCatalog = SeedData{
	Categories: []SeedCategory{
		{Name: "Garden", Slug: "garden", Image: ptr("/images/categories/garden.webp")},
		{Name: "Kitchen", Slug: "kitchen", Image: ptr("/images/categories/kitchen.webp")},
		{Name: "Lighting", Slug: "lighting"},
	},
	Products: []SeedProduct{
		{
			Name:             "Cedar planter box",
			CategorySlug:     "garden",
			Price:            49.90,
			OldPrice:         ptr(59.90),
			DiscountPercent:  ptr(17),
			ShortDescription: "Raised planter in untreated cedar",
			Description:      "Raised planter box, 80 x 40 cm, untreated western red cedar.",
			Images:           []string{"/images/products/planter-1.webp", "/images/products/planter-2.webp"},
		},
		{
			Name:             "Hose reel",
			CategorySlug:     "garden",
			Price:            34.00,
			FreeShipping:     true,
			ShortDescription: "Wall-mounted reel for 30 m hoses",
			Description:      "Powder-coated steel hose reel with a 30 m capacity.",
			Images:           []string{"/images/products/hose-reel.webp"},
		},
		{
			Name:             "Cast iron skillet",
			CategorySlug:     "kitchen",
			Price:            27.50,
			ShortDescription: "Pre-seasoned 26 cm skillet",
			Description:      "Pre-seasoned cast iron skillet, 26 cm, oven safe.",
		},
		{
			Name:             "Chef knife",
			CategorySlug:     "kitchen",
			Price:            64.00,
			OldPrice:         ptr(80.00),
			DiscountPercent:  ptr(20),
			FreeShipping:     true,
			ShortDescription: "20 cm stainless chef knife",
			Description:      "Forged stainless steel chef knife with a 20 cm blade.",
			Images:           []string{"/images/products/chef-knife.webp"},
		},
		{
			Name:             "Desk lamp",
			CategorySlug:     "lighting",
			Price:            22.00,
			OldPrice:         ptr(24.00),
			DiscountPercent:  ptr(8),
			ShortDescription: "Adjustable LED desk lamp",
			Description:      "Adjustable arm LED desk lamp with three colour temperatures.",
			Images:           []string{"/images/products/desk-lamp.webp"},
		},
	},
}
