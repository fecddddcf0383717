package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront-service/internal/database"
	"storefront-service/internal/models"
)

type orderRepo struct {
	connect database.Connector
	schema  *database.SchemaBootstrapper
	newCode func() string
}

func NewOrderRepository(connect database.Connector, schema *database.SchemaBootstrapper) OrderRepository {
	return &orderRepo{
		connect: connect,
		schema:  schema,
		newCode: NewOrderCode,
	}
}

// NewOrderCode returns "ORD-" followed by eight upper-case hex characters
// taken from a random UUID. Codes are not checked for uniqueness.
func NewOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateOrder writes the order and all of its items in one transaction.
// On any error nothing is committed.
func (r *orderRepo) CreateOrder(ctx context.Context, req *models.CheckoutRequest) (*models.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: checkout request cannot be nil", ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	customer, err := json.Marshal(req.Customer)
	if err != nil {
		return nil, fmt.Errorf("%w: customer: %v", ErrInvalidInput, err)
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	if err := r.schema.EnsureOrderTables(ctx, conn); err != nil {
		return nil, err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &models.Order{
		OrderCode: r.newCode(),
		Customer:  customer,
	}

	insert := `INSERT INTO public.orders (
		order_code,
		customer
	) VALUES ($1, $2)
	RETURNING id::text, created_at
	`

	err = tx.QueryRow(ctx, insert, order.OrderCode, customer).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	insertItemSQL := `INSERT INTO public.order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
	`

	for _, item := range req.Items {
		price := item.Price.Round(2)
		_, err = tx.Exec(ctx, insertItemSQL, order.ID, item.ProductID, item.Quantity, price.StringFixed(2))
		if err != nil {
			return nil, fmt.Errorf("failed to create order item for product %q: %w", item.ProductID, err)
		}

		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}
