package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 24
	MinLimit     = 1
	MaxLimit     = 100
)

type Tag string

const (
	TagNone        Tag = ""
	TagOffer       Tag = "offer"
	TagRecommended Tag = "recommended"
)

// ParseTag is case-insensitive; unknown values mean no tag filter.
func ParseTag(raw string) Tag {
	switch Tag(strings.ToLower(raw)) {
	case TagOffer:
		return TagOffer
	case TagRecommended:
		return TagRecommended
	default:
		return TagNone
	}
}

type Sort string

const (
	SortNewest    Sort = "new"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort is case-insensitive; anything unknown sorts newest first.
func ParseSort(raw string) Sort {
	switch Sort(strings.ToLower(raw)) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// ParseLimit clamps integer input to [MinLimit, MaxLimit]. Anything that is
// not an integer yields DefaultLimit.
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			if strings.HasPrefix(raw, "-") {
				return MinLimit
			}
			return MaxLimit
		}
		return DefaultLimit
	}
	return min(max(n, MinLimit), MaxLimit)
}

type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Tag      Tag
	Sort     Sort
	Limit    int
}

// CacheKey renders the filter as a stable string. Equal filters give equal
// keys; free-text fields are quoted so different filters never collide.
func (f ProductFilter) CacheKey() string {
	return fmt.Sprintf("q=%q|cat=%q|min=%s|max=%s|tag=%s|sort=%s|limit=%d",
		f.Search, f.Category, formatBound(f.MinPrice), formatBound(f.MaxPrice), f.Tag, f.Sort, f.Limit)
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
