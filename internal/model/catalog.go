package model

// Category identifies one of the logical sub-resources merged into the
// paginated describe-table view. The order Columns, OutgoingFK, IncomingFK
// is fixed: it is what makes page offsets across categories well-defined.
type Category int

const (
	CategoryColumns Category = iota
	CategoryOutgoingFK
	CategoryIncomingFK
)

// Categories lists all categories in their fixed pagination order.
var Categories = []Category{CategoryColumns, CategoryOutgoingFK, CategoryIncomingFK}

func (c Category) String() string {
	switch c {
	case CategoryColumns:
		return "columns"
	case CategoryOutgoingFK:
		return "outgoing_foreign_keys"
	case CategoryIncomingFK:
		return "incoming_foreign_keys"
	}
	return "unknown"
}

// CatalogRequest is a paginated catalog introspection request.
type CatalogRequest struct {
	Database string `json:"database" validate:"required"`
	Table    string `json:"table" validate:"required"`
	Schema   string `json:"schema,omitempty"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1"`
}

// ApplyDefaults fills page/limit defaults for an unset request.
func (r *CatalogRequest) ApplyDefaults() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = 50
	}
}

// CategoryCounts holds per-category item counts for one request. Counts are
// never cached across requests; the schema may change between calls.
type CategoryCounts struct {
	Columns     int `json:"columns"`
	OutgoingFKs int `json:"outgoing_fks"`
	IncomingFKs int `json:"incoming_fks"`
}

// Total is the size of the conceptual concatenation of all three categories.
func (c CategoryCounts) Total() int {
	return c.Columns + c.OutgoingFKs + c.IncomingFKs
}

// Count returns the count for a single category.
func (c CategoryCounts) Count(cat Category) int {
	switch cat {
	case CategoryColumns:
		return c.Columns
	case CategoryOutgoingFK:
		return c.OutgoingFKs
	case CategoryIncomingFK:
		return c.IncomingFKs
	}
	return 0
}

// PageWindow is the slice of one category contributing to the current page.
type PageWindow struct {
	Category Category `json:"category"`
	Offset   int      `json:"offset"`
	Limit    int      `json:"limit"`
}

// ColumnInfo describes a single table column.
type ColumnInfo struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	IsNullable bool   `json:"is_nullable"`
	Default    string `json:"default,omitempty"`
}

// ForeignKeyInfo describes one foreign key column pair. For outgoing keys the
// source is the described table; for incoming keys the destination is.
type ForeignKeyInfo struct {
	ConstraintName string `json:"constraint_name,omitempty"`
	SourceSchema   string `json:"source_schema,omitempty"`
	SourceTable    string `json:"source_table"`
	SourceColumn   string `json:"source_column,omitempty"`
	DestSchema     string `json:"dest_schema,omitempty"`
	DestTable      string `json:"dest_table"`
	DestColumn     string `json:"dest_column,omitempty"`
}

// CatalogItemType discriminates CatalogItem payloads.
type CatalogItemType string

const (
	ItemTypeColumn     CatalogItemType = "column"
	ItemTypeForeignKey CatalogItemType = "foreign_key"
)

// CatalogItem is a discriminated union of column and foreign-key entries.
// Exactly one of the embedded payloads is non-nil.
type CatalogItem struct {
	Type CatalogItemType `json:"type"`
	*ColumnInfo
	*ForeignKeyInfo
}

// NewColumnItem wraps a ColumnInfo as a CatalogItem.
func NewColumnItem(col ColumnInfo) CatalogItem {
	return CatalogItem{Type: ItemTypeColumn, ColumnInfo: &col}
}

// NewForeignKeyItem wraps a ForeignKeyInfo as a CatalogItem.
func NewForeignKeyItem(fk ForeignKeyInfo) CatalogItem {
	return CatalogItem{Type: ItemTypeForeignKey, ForeignKeyInfo: &fk}
}

// PaginatedResult is one page of the describe-table stream plus metadata.
// Metadata is always present, even when Items is empty.
type PaginatedResult struct {
	Items       []CatalogItem `json:"items"`
	TotalCount  int           `json:"total_count"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	Limit       int           `json:"limit"`
}

// TableInfo is a single entry in a table listing.
type TableInfo struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
}

// TableListing is a paginated list-tables response.
type TableListing struct {
	Database    string      `json:"database"`
	Tables      []TableInfo `json:"tables"`
	TotalCount  int         `json:"total_count"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	Limit       int         `json:"limit"`
}

// SampleResult holds sampled rows from a table.
type SampleResult struct {
	Table    string           `json:"table"`
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// QueryResult holds the outcome of an ad-hoc read-only query.
type QueryResult struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated"`
}

// DatabaseSummary describes one configured data source for listings.
type DatabaseSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ConnectionTestResult reports the outcome of a connection probe.
type ConnectionTestResult struct {
	Database string `json:"database"`
	Message  string `json:"message"`
}
