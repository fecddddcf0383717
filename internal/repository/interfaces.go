package repository

import (
	"context"

	"storefront-service/internal/models"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, req *models.CheckoutRequest) (*models.Order, error)
}
