package repository

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so services can run a
// repository inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListQuery carries pagination and filtering options shared by list queries.
type ListQuery struct {
	Page     int
	Limit    int
	Keywords string
	SortBy   int
}

const (
	SortNewest     = 1
	SortOldest     = 2
	SortPriceAsc   = 3
	SortPriceDesc  = 4
	defaultPage    = 1
	defaultLimit   = 10
	maxListLimit   = 100
)

func (q ListQuery) limitOffset() (int, int) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, (page - 1) * limit
}
