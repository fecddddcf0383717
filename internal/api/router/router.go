package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storefront-service/internal/api/handlers"
	"storefront-service/internal/api/middleware"
	"storefront-service/internal/config"
	"storefront-service/internal/repository"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

type Deps struct {
	Catalog repository.CatalogRepository
	Orders  repository.OrderRepository
	Log     zerolog.Logger
}

func New(cfg *config.Config, deps Deps) http.Handler {
	catalog := handlers.NewCatalogHandler(deps.Catalog)
	orders := handlers.NewOrderHandler(deps.Orders, cfg.ExposeErrorDetail)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(deps.Log))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(cfg.AllowOrigins)))
		r.NotFound(notFound)
		r.MethodNotAllowed(methodNotAllowed)

		r.Get("/health", handlers.Health)
		r.Get("/categories", catalog.ListCategories)
		r.Get("/products", catalog.ListProducts)
		r.Get("/products/{id:"+uuidPattern+"}", catalog.GetProduct)
		r.Post("/orders/checkout", orders.Checkout)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "not_found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed")
}
