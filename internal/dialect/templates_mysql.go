package dialect

import (
	"catalog-gateway/internal/model"
)

func mysqlTemplateSet() *TemplateSet {
	schemaOpt := Param{Name: "schema", Optional: true}
	table := Param{Name: "table"}

	return &TemplateSet{
		Dialect:              model.DatabaseTypeMySQL,
		Strategy:             TrailingLimitOffset,
		SupportsSchemaFilter: true,
		Placeholder:          func(int) string { return "?" },
		templates: map[QueryKind]*Template{
			KindListTables: {
				Kind: KindListTables,
				SQL: `SELECT TABLE_SCHEMA, TABLE_NAME
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE'
  AND TABLE_SCHEMA NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
  AND (? IS NULL OR TABLE_SCHEMA = ?)
ORDER BY TABLE_SCHEMA, TABLE_NAME`,
				Params:   []Param{schemaOpt, schemaOpt},
				MapTable: mapSchemaTable,
			},
			KindCountTables: {
				Kind: KindCountTables,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE'
  AND TABLE_SCHEMA NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
  AND (? IS NULL OR TABLE_SCHEMA = ?)`,
				Params: []Param{schemaOpt, schemaOpt},
			},
			KindListColumns: {
				Kind: KindListColumns,
				SQL: `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapInfoSchemaColumn,
			},
			KindCountColumns: {
				Kind: KindCountColumns,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND TABLE_NAME = ?`,
				Params: []Param{schemaOpt, table},
			},
			KindListOutgoingFKs: {
				Kind: KindListOutgoingFKs,
				SQL: `SELECT
  kcu.CONSTRAINT_NAME          AS constraint_name,
  kcu.TABLE_SCHEMA             AS source_schema,
  kcu.TABLE_NAME               AS source_table,
  kcu.COLUMN_NAME              AS source_column,
  kcu.REFERENCED_TABLE_SCHEMA  AS dest_schema,
  kcu.REFERENCED_TABLE_NAME    AS dest_table,
  kcu.REFERENCED_COLUMN_NAME   AS dest_column
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
WHERE kcu.TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND kcu.TABLE_NAME = ?
  AND kcu.REFERENCED_TABLE_NAME IS NOT NULL
ORDER BY kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountOutgoingFKs: {
				Kind: KindCountOutgoingFKs,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
WHERE kcu.TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND kcu.TABLE_NAME = ?
  AND kcu.REFERENCED_TABLE_NAME IS NOT NULL`,
				Params: []Param{schemaOpt, table},
			},
			KindListIncomingFKs: {
				Kind: KindListIncomingFKs,
				SQL: `SELECT
  kcu.CONSTRAINT_NAME          AS constraint_name,
  kcu.TABLE_SCHEMA             AS source_schema,
  kcu.TABLE_NAME               AS source_table,
  kcu.COLUMN_NAME              AS source_column,
  kcu.REFERENCED_TABLE_SCHEMA  AS dest_schema,
  kcu.REFERENCED_TABLE_NAME    AS dest_table,
  kcu.REFERENCED_COLUMN_NAME   AS dest_column
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
WHERE kcu.REFERENCED_TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND kcu.REFERENCED_TABLE_NAME = ?
ORDER BY kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountIncomingFKs: {
				Kind: KindCountIncomingFKs,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
WHERE kcu.REFERENCED_TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND kcu.REFERENCED_TABLE_NAME = ?`,
				Params: []Param{schemaOpt, table},
			},
			KindTableExists: {
				Kind: KindTableExists,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = COALESCE(?, DATABASE())
  AND TABLE_NAME = ?`,
				Params: []Param{schemaOpt, table},
			},
		},
	}
}
