package dialect

import (
	"catalog-gateway/internal/model"
)

// SQLite's catalog lives in PRAGMA sources that neither accept bound
// parameters for the table name nor a pagination clause; the column and
// outgoing-key templates inline the validated identifier and mark the
// window for client-side application. Schema filters are a no-op for this
// dialect. Count templates use the pragma table-valued functions, which do
// accept bound parameters.
func sqliteTemplateSet() *TemplateSet {
	table := Param{Name: "table"}

	return &TemplateSet{
		Dialect:              model.DatabaseTypeSQLite,
		Strategy:             TrailingLimitOffset,
		SupportsSchemaFilter: false,
		Placeholder:          func(int) string { return "?" },
		templates: map[QueryKind]*Template{
			KindListTables: {
				Kind: KindListTables,
				SQL: `SELECT NULL, name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`,
				MapTable: mapSchemaTable,
			},
			KindCountTables: {
				Kind: KindCountTables,
				SQL: `SELECT COUNT(*)
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
			},
			KindListColumns: {
				Kind:        KindListColumns,
				SQL:         `PRAGMA table_info(%s)`,
				InlineTable: true,
				InMemory:    true,
				MapItem:     mapPragmaColumn,
			},
			KindCountColumns: {
				Kind:   KindCountColumns,
				SQL:    `SELECT COUNT(*) FROM pragma_table_info(?)`,
				Params: []Param{table},
			},
			KindListOutgoingFKs: {
				Kind:        KindListOutgoingFKs,
				SQL:         `PRAGMA foreign_key_list(%s)`,
				InlineTable: true,
				InMemory:    true,
				MapItem:     mapPragmaForeignKey,
			},
			KindCountOutgoingFKs: {
				Kind:   KindCountOutgoingFKs,
				SQL:    `SELECT COUNT(*) FROM pragma_foreign_key_list(?)`,
				Params: []Param{table},
			},
			KindListIncomingFKs: {
				Kind: KindListIncomingFKs,
				SQL: `SELECT m.name, fk."from", fk."to"
FROM sqlite_master m, pragma_foreign_key_list(m.name) fk
WHERE m.type = 'table' AND fk."table" = ?
ORDER BY m.name, fk.id, fk.seq`,
				Params:   []Param{table},
				InMemory: true,
				MapItem:  mapSQLiteIncomingForeignKey,
			},
			KindCountIncomingFKs: {
				Kind: KindCountIncomingFKs,
				SQL: `SELECT COUNT(*)
FROM sqlite_master m, pragma_foreign_key_list(m.name) fk
WHERE m.type = 'table' AND fk."table" = ?`,
				Params: []Param{table},
			},
			KindTableExists: {
				Kind: KindTableExists,
				SQL: `SELECT COUNT(*)
FROM sqlite_master
WHERE type = 'table' AND name = ?`,
				Params: []Param{table},
			},
		},
	}
}
