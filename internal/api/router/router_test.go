package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/config"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type stubCatalog struct {
	lastID string
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (s *stubCatalog) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.lastID = id
	return nil, repository.ErrNotFound
}

type stubOrders struct{}

func (stubOrders) CreateOrder(ctx context.Context, req *models.CheckoutRequest) (*models.Order, error) {
	return &models.Order{OrderCode: "ORD-12345678"}, nil
}

func newTestRouter(cfg *config.Config) (http.Handler, *stubCatalog) {
	catalog := &stubCatalog{}
	return New(cfg, Deps{Catalog: catalog, Orders: stubOrders{}, Log: zerolog.Nop()}), catalog
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h, _ := newTestRouter(&config.Config{})

	cases := []struct {
		method, path string
		body         string
		status       int
		want         string
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK, `{"ok": true}`},
		{http.MethodGet, "/api/categories", "", http.StatusOK, `[]`},
		{http.MethodGet, "/api/products?limit=3", "", http.StatusOK, `{"items": []}`},
		{http.MethodGet, "/api/products/not-a-uuid", "", http.StatusNotFound, `{"error": "not_found"}`},
		{http.MethodGet, "/api/products/0b7c6f3e-8f0e-4c38-9a8c-0d8f2f3b9a1", "", http.StatusNotFound, `{"error": "not_found"}`},
		{http.MethodGet, "/api/products/0b7c6f3e-8f0e-4c38-9a8c-0d8f2f3b9a10", "", http.StatusNotFound, `{"error": "not_found"}`},
		{http.MethodGet, "/nowhere", "", http.StatusNotFound, `{"error": "not_found"}`},
		{http.MethodGet, "/api/nowhere", "", http.StatusNotFound, `{"error": "not_found"}`},
		{http.MethodDelete, "/api/categories", "", http.StatusMethodNotAllowed, `{"error": "method_not_allowed"}`},
		{http.MethodPost, "/api/orders/checkout", `{"items": []}`, http.StatusBadRequest, `{"error": "invalid_payload"}`},
		{http.MethodPost, "/api/orders/checkout",
			`{"customer": {"full_name": "A", "email": "a@b.com"}, "items": [{"product_id": "x"}]}`,
			http.StatusOK, `{"order_id": "ORD-12345678"}`},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := serve(h, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.want, rec.Body.String())
		})
	}
}

func TestProductRouteNormalisesID(t *testing.T) {
	h, catalog := newTestRouter(&config.Config{})

	serve(h, httptest.NewRequest(http.MethodGet, "/api/products/0B7C6F3E-8F0E-4C38-9A8C-0D8F2F3B9A10", nil))

	assert.Equal(t, "0b7c6f3e-8f0e-4c38-9a8c-0d8f2f3b9a10", catalog.lastID)
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	h, _ := newTestRouter(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://shop.example")
	rec := serve(h, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h, _ := newTestRouter(&config.Config{AllowOrigins: []string{"http://shop.example"}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://shop.example")
	rec := serve(h, req)
	assert.Equal(t, "http://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = serve(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(&config.Config{})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders/checkout", nil)
	req.Header.Set("Origin", "http://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORSOnlyUnderAPI(t *testing.T) {
	h, _ := newTestRouter(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Origin", "http://shop.example")
	rec := serve(h, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(&config.Config{})
	serve(h, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/health",status="200"}`)
}
