package catalog

import (
	"context"
	"fmt"

	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
)

// TableFetcher lists tables visible in a data source's catalog, one
// server-side window at a time.
type TableFetcher struct {
	exec Executor
	ts   *dialect.TemplateSet
}

// NewTableFetcher builds a fetcher bound to one executor and dialect.
func NewTableFetcher(exec Executor, ts *dialect.TemplateSet) *TableFetcher {
	return &TableFetcher{exec: exec, ts: ts}
}

// FetchTables returns the tables within the (offset, limit) window of the
// ordered listing.
func (tf *TableFetcher) FetchTables(ctx context.Context, p dialect.BindParams, offset, limit int) ([]model.TableInfo, error) {
	rendered, err := dialect.BindWindow(tf.ts, dialect.KindListTables, p, offset, limit)
	if err != nil {
		return nil, err
	}

	rows, err := tf.exec.QueryContext(ctx, rendered.SQL, rendered.Args...)
	if err != nil {
		return nil, fmt.Errorf("table listing query failed: %w", err)
	}
	defer rows.Close()

	tmpl, err := tf.ts.Template(dialect.KindListTables)
	if err != nil {
		return nil, err
	}

	tables := make([]model.TableInfo, 0)
	for rows.Next() {
		t, err := tmpl.MapTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
