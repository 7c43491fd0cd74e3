package catalog

import (
	"context"
	"fmt"

	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
)

// CountResolver obtains per-category item counts for one request. Counts
// are computed fresh every time; a schema change between the count queries
// and the windowed queries is an accepted, uncorrected race.
type CountResolver struct {
	exec Executor
	ts   *dialect.TemplateSet
}

// NewCountResolver builds a resolver bound to one executor and dialect.
func NewCountResolver(exec Executor, ts *dialect.TemplateSet) *CountResolver {
	return &CountResolver{exec: exec, ts: ts}
}

var countKinds = map[model.Category]dialect.QueryKind{
	model.CategoryColumns:    dialect.KindCountColumns,
	model.CategoryOutgoingFK: dialect.KindCountOutgoingFKs,
	model.CategoryIncomingFK: dialect.KindCountIncomingFKs,
}

// Counts issues the count template for each category. The column count is
// always fetched; foreign-key counts only when includeFKs is set. A count
// that fails because the table does not exist resolves to zero here, and
// ErrTableNotFound is surfaced exactly once after the existence probe.
func (cr *CountResolver) Counts(ctx context.Context, p dialect.BindParams, includeFKs bool) (model.CategoryCounts, error) {
	var counts model.CategoryCounts
	var firstErr error

	categories := []model.Category{model.CategoryColumns}
	if includeFKs {
		categories = model.Categories
	}

	for _, cat := range categories {
		n, err := cr.scalar(ctx, countKinds[cat], p)
		if err != nil {
			if firstErr == nil {
				firstErr = &QueryError{Category: cat, Err: err}
			}
			continue
		}
		switch cat {
		case model.CategoryColumns:
			counts.Columns = n
		case model.CategoryOutgoingFK:
			counts.OutgoingFKs = n
		case model.CategoryIncomingFK:
			counts.IncomingFKs = n
		}
	}

	if counts.Total() == 0 || firstErr != nil {
		exists, err := cr.TableExists(ctx, p)
		if err == nil && !exists {
			return model.CategoryCounts{}, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
		}
		if firstErr != nil {
			return model.CategoryCounts{}, firstErr
		}
		// A failed probe must not read as "exists and is empty".
		if err != nil {
			return model.CategoryCounts{}, &QueryError{Category: model.CategoryColumns, Err: fmt.Errorf("existence probe failed: %w", err)}
		}
	}

	return counts, nil
}

// TableExists probes the catalog for the table's existence.
func (cr *CountResolver) TableExists(ctx context.Context, p dialect.BindParams) (bool, error) {
	n, err := cr.scalar(ctx, dialect.KindTableExists, p)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountTables returns the total for a paginated table listing.
func (cr *CountResolver) CountTables(ctx context.Context, p dialect.BindParams) (int, error) {
	return cr.scalar(ctx, dialect.KindCountTables, p)
}

func (cr *CountResolver) scalar(ctx context.Context, kind dialect.QueryKind, p dialect.BindParams) (int, error) {
	rendered, err := dialect.Bind(cr.ts, kind, p)
	if err != nil {
		return 0, err
	}

	rows, err := cr.exec.QueryContext(ctx, rendered.SQL, rendered.Args...)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("count row iteration error: %w", err)
	}

	return n, nil
}
