package dialect

import (
	"catalog-gateway/internal/model"
)

// QueryKind names one template within a dialect's template set.
type QueryKind string

const (
	KindListTables       QueryKind = "list_tables"
	KindCountTables      QueryKind = "count_tables"
	KindListColumns      QueryKind = "list_columns"
	KindCountColumns     QueryKind = "count_columns"
	KindListOutgoingFKs  QueryKind = "list_foreign_keys_outgoing"
	KindListIncomingFKs  QueryKind = "list_foreign_keys_incoming"
	KindCountOutgoingFKs QueryKind = "count_foreign_keys_outgoing"
	KindCountIncomingFKs QueryKind = "count_foreign_keys_incoming"
	KindTableExists      QueryKind = "table_exists"
)

// Param declares one bound-parameter slot of a template, in the order the
// placeholders occur in the SQL text. Optional params may be absent, which
// compiles to NULL and disables the corresponding filter predicate.
type Param struct {
	Name     string
	Optional bool
}

// RowScan is the subset of *sql.Rows the row mappers need.
type RowScan interface {
	Scan(dest ...any) error
}

// Template is a structured, parameterized catalog query. The SQL text uses
// the dialect's native placeholder style and is never concatenated with
// caller input; the only exception is InlineTable, where the allow-list
// validated table name is substituted into a pragma that rejects binding.
type Template struct {
	Kind   QueryKind
	SQL    string
	Params []Param

	// InlineTable substitutes the validated table name into the single %s
	// of the SQL text (SQLite PRAGMA sources only).
	InlineTable bool

	// InMemory marks a source that cannot take a pagination clause; the
	// full result is fetched and the window applied after fetch.
	InMemory bool

	// MapItem decodes one row of a list template into a catalog item.
	MapItem func(row RowScan) (model.CatalogItem, error)

	// MapTable decodes one row of the list-tables template.
	MapTable func(row RowScan) (model.TableInfo, error)
}

// TemplateSet is the immutable per-dialect template collection plus the
// dialect's pagination metadata. Built once at process start and shared
// read-only across requests.
type TemplateSet struct {
	Dialect  model.DatabaseType
	Strategy PaginationStrategy

	// SupportsSchemaFilter is false where the dialect's catalog source
	// ignores schema qualifiers entirely (SQLite); binders then treat a
	// supplied schema as a no-op instead of call sites special-casing it.
	SupportsSchemaFilter bool

	// Placeholder renders the dialect's bound-parameter token for the
	// 1-based position i ($1, ?, @p1).
	Placeholder func(i int) string

	templates map[QueryKind]*Template
}

// Template returns the template for the given kind.
func (ts *TemplateSet) Template(kind QueryKind) (*Template, error) {
	t, ok := ts.templates[kind]
	if !ok {
		return nil, ErrUnknownTemplate
	}
	return t, nil
}

// RenderedQuery is an executable query plus its bound parameters. For
// in-memory windowed sources, Window carries the slice to apply after fetch.
type RenderedQuery struct {
	SQL  string
	Args []any

	// Window is non-nil when the window must be applied client-side.
	Window *model.PageWindow
}
