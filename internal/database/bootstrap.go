package database

import (
	"context"
	"fmt"
	"sync/atomic"
)

const orderTablesDDL = `
	CREATE EXTENSION IF NOT EXISTS pgcrypto;

	CREATE TABLE IF NOT EXISTS public.orders (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		order_code text NOT NULL,
		customer jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS public.order_items (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id uuid NOT NULL REFERENCES public.orders(id) ON DELETE CASCADE,
		product_id uuid NOT NULL,
		quantity int NOT NULL,
		price numeric(12,2) NOT NULL
	);
`

// SchemaBootstrapper creates the order tables on first use. The DDL is
// additive, so concurrent first callers only repeat no-op statements.
type SchemaBootstrapper struct {
	ready atomic.Bool
}

func NewSchemaBootstrapper() *SchemaBootstrapper {
	return &SchemaBootstrapper{}
}

func (b *SchemaBootstrapper) EnsureOrderTables(ctx context.Context, conn Conn) error {
	if b.ready.Load() {
		return nil
	}

	// no arguments: pgx sends it over the simple protocol, so several
	// statements are allowed in one call
	if _, err := conn.Exec(ctx, orderTablesDDL); err != nil {
		return fmt.Errorf("failed to create order tables: %w", err)
	}

	b.ready.Store(true)
	return nil
}
