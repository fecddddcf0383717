package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Conn is the part of *pgx.Conn the repositories rely on.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close(ctx context.Context) error
}

// Connector opens a fresh connection. The caller owns it and must Close it.
type Connector func(ctx context.Context) (Conn, error)

func NewConnector(dsn string, timeout time.Duration) Connector {
	return func(ctx context.Context) (Conn, error) {
		conn, err := Connect(ctx, dsn, timeout)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

func Connect(ctx context.Context, dsn string, timeout time.Duration) (*pgx.Conn, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return conn, nil
}
