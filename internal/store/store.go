// Package store provides statically-typed persistence accessors per entity.
//
// Every function takes a Querier, satisfied by both *pgxpool.Pool and
// pgx.Tx: the caller decides the transaction scope and passes the handle
// explicitly. No entity carries live references to another; relationships
// are foreign-key values resolved by lookup.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the minimal query surface shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
