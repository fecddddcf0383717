package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

type productList struct {
	Items []models.Product `json:"items"`
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list categories")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("parse product filter")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	products, err := h.repo.ListProducts(r.Context(), filter)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list products")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	writeJSON(w, http.StatusOK, productList{Items: products})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	// the route pattern only lets UUID-shaped ids through; Parse normalises case
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id.String())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "")
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Str("product_id", id.String()).Msg("get product")
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func parseProductFilter(q url.Values) (models.ProductFilter, error) {
	minPrice, err := parsePriceBound(q, "min")
	if err != nil {
		return models.ProductFilter{}, err
	}
	maxPrice, err := parsePriceBound(q, "max")
	if err != nil {
		return models.ProductFilter{}, err
	}

	return models.ProductFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Tag:      models.ParseTag(strings.TrimSpace(q.Get("tag"))),
		Sort:     models.ParseSort(strings.TrimSpace(q.Get("sort"))),
		Limit:    models.ParseLimit(q.Get("limit")),
	}, nil
}

func parsePriceBound(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("malformed %s price %q", key, raw)
	}
	return &v, nil
}
