package repository

import (
	"encoding/json"
	"sort"

	"github.com/jackc/pgx/v5"

	"storefront-service/internal/models"
)

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Image)
	return c, err
}

// scanProduct reads one row of productProjection.
func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p          models.Product
		imagesJSON []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.OldPrice,
		&p.DiscountPercent,
		&p.FreeShipping,
		&p.ShortDescription,
		&p.Description,
		&p.Category.Slug,
		&imagesJSON,
	)
	if err != nil {
		return p, err
	}

	p.Images = decodeImages(imagesJSON)
	return p, nil
}

// decodeImages never returns nil: missing or unreadable image data becomes
// an empty list.
func decodeImages(raw []byte) []models.ProductImage {
	if len(raw) == 0 {
		return []models.ProductImage{}
	}

	var images []models.ProductImage
	if err := json.Unmarshal(raw, &images); err != nil || images == nil {
		return []models.ProductImage{}
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].SortOrder < images[j].SortOrder
	})
	return images
}
