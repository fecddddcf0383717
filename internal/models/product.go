package models

type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Image *string `json:"image"`
}

// CategoryRef is how a product points at its category: by slug only.
type CategoryRef struct {
	Slug string `json:"slug"`
}

type ProductImage struct {
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

type Product struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Price            float64        `json:"price"`
	OldPrice         *float64       `json:"old_price"`
	DiscountPercent  *int           `json:"discount_percent"`
	FreeShipping     bool           `json:"free_shipping"`
	ShortDescription *string        `json:"short_description"`
	Description      *string        `json:"description"`
	Images           []ProductImage `json:"images"`
	Category         CategoryRef    `json:"category"`
}
