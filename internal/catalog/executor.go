package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-gateway/internal/model"
)

// Executor is the transport capability the engine consumes: execute a
// rendered query with its bound parameters and return ordered rows.
// *sql.DB satisfies it. Timeout and cancellation are the executor's
// concern, carried through ctx.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	// ErrTableNotFound is reported once per request, after an explicit
	// existence probe, never once per category.
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidPagination rejects page < 1 or limit < 1 before any
	// query is issued.
	ErrInvalidPagination = errors.New("page and limit must be at least 1")
)

// QueryError wraps an underlying query failure with the category that
// produced it. The whole request fails; no partial page is returned.
type QueryError struct {
	Category model.Category
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query for %s failed: %v", e.Category, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
