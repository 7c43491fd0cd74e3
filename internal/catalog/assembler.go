package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
)

var listKinds = map[model.Category]dialect.QueryKind{
	model.CategoryColumns:    dialect.KindListColumns,
	model.CategoryOutgoingFK: dialect.KindListOutgoingFKs,
	model.CategoryIncomingFK: dialect.KindListIncomingFKs,
}

// Assembler executes the non-empty windows of a page plan and stitches the
// results back together in fixed category order. Windows have no data
// dependency on each other, so they run concurrently, bounded to at most
// maxInFlight queries per request; the final order never depends on
// completion order. If any window fails or is cancelled, the whole page
// fails and partially fetched windows are discarded.
type Assembler struct {
	exec        Executor
	ts          *dialect.TemplateSet
	maxInFlight int
}

// NewAssembler builds an assembler bound to one executor and dialect.
func NewAssembler(exec Executor, ts *dialect.TemplateSet) *Assembler {
	return &Assembler{exec: exec, ts: ts, maxInFlight: len(model.Categories)}
}

// Assemble runs the plan and returns the page items in category order.
func (a *Assembler) Assemble(ctx context.Context, p dialect.BindParams, windows []model.PageWindow) ([]model.CatalogItem, error) {
	results := make([][]model.CatalogItem, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxInFlight)

	for i, window := range windows {
		g.Go(func() error {
			items, err := a.fetchWindow(gctx, p, window)
			if err != nil {
				return &QueryError{Category: window.Category, Err: err}
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]model.CatalogItem, 0)
	for i, window := range windows {
		items = append(items, completeForeignKeys(results[i], window.Category, p)...)
	}
	return items, nil
}

func (a *Assembler) fetchWindow(ctx context.Context, p dialect.BindParams, window model.PageWindow) ([]model.CatalogItem, error) {
	rendered, err := dialect.BindWindow(a.ts, listKinds[window.Category], p, window.Offset, window.Limit)
	if err != nil {
		return nil, err
	}

	rows, err := a.exec.QueryContext(ctx, rendered.SQL, rendered.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tmpl, err := a.ts.Template(listKinds[window.Category])
	if err != nil {
		return nil, err
	}

	var items []model.CatalogItem
	for rows.Next() {
		item, err := tmpl.MapItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sources without server-side windows return everything; apply the
	// window after fetch.
	if rendered.Window != nil {
		items = sliceWindow(items, rendered.Window.Offset, rendered.Window.Limit)
	}

	return items, nil
}

func sliceWindow(items []model.CatalogItem, offset, limit int) []model.CatalogItem {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// completeForeignKeys fills in the table identity that pragma-shaped rows
// cannot carry: outgoing keys originate from the described table, incoming
// keys point at it.
func completeForeignKeys(items []model.CatalogItem, cat model.Category, p dialect.BindParams) []model.CatalogItem {
	for i := range items {
		fk := items[i].ForeignKeyInfo
		if fk == nil {
			continue
		}
		switch cat {
		case model.CategoryOutgoingFK:
			if fk.SourceTable == "" {
				fk.SourceTable = p.Table
			}
		case model.CategoryIncomingFK:
			if fk.DestTable == "" {
				fk.DestTable = p.Table
			}
		}
	}
	return items
}
