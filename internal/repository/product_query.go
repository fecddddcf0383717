package repository

import (
	"fmt"
	"strconv"
	"strings"

	"storefront-service/internal/models"
)

const productProjection = `
	SELECT
		p.id::text,
		p.name,
		p.price,
		p.old_price,
		p.discount_percent,
		p.free_shipping,
		p.short_description,
		p.description,
		c.slug AS category_slug,
		COALESCE(
			json_agg(json_build_object('url', pi.url, 'sort_order', pi.sort_order)
				ORDER BY pi.sort_order) FILTER (WHERE pi.id IS NOT NULL),
			'[]'::json
		) AS images_json
	FROM public.products p
	JOIN public.categories c ON c.id = p.category_id
	LEFT JOIN public.product_images pi ON pi.product_id = p.id
`

const productGroupBy = "\tGROUP BY p.id, c.slug\n"

var sortClauses = map[models.Sort]string{
	models.SortPriceAsc:  "p.price ASC",
	models.SortPriceDesc: "p.price DESC",
	models.SortNewest:    "p.created_at DESC",
}

// BuildProductQuery assembles the listing statement for f. Values are only
// ever passed as $n arguments; the SQL text depends on which filters are
// set, never on their values.
func BuildProductQuery(f models.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	param := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Search != "" {
		where = append(where, fmt.Sprintf(
			"(p.name ILIKE %[1]s OR p.short_description ILIKE %[1]s OR p.description ILIKE %[1]s)",
			param("%"+f.Search+"%"),
		))
	}
	if f.Category != "" {
		where = append(where, "c.slug = "+param(f.Category))
	}
	if f.MinPrice != nil {
		where = append(where, "p.price >= "+param(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price <= "+param(*f.MaxPrice))
	}
	switch f.Tag {
	case models.TagOffer:
		where = append(where, "p.discount_percent IS NOT NULL")
	case models.TagRecommended:
		where = append(where, "(p.free_shipping = true OR p.discount_percent >= 10)")
	}

	orderBy, ok := sortClauses[f.Sort]
	if !ok {
		orderBy = sortClauses[models.SortNewest]
	}

	limit := f.Limit
	if limit == 0 {
		limit = models.DefaultLimit
	}
	limit = min(max(limit, models.MinLimit), models.MaxLimit)

	var sb strings.Builder
	sb.WriteString(productProjection)
	if len(where) > 0 {
		sb.WriteString("\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
		sb.WriteString("\n")
	}
	sb.WriteString(productGroupBy)
	sb.WriteString("\tORDER BY " + orderBy + "\n")
	sb.WriteString("\tLIMIT " + param(limit) + "\n")

	return sb.String(), args
}

func productByIDQuery() string {
	return productProjection + "\tWHERE p.id = $1\n" + productGroupBy
}
