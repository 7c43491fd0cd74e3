package dialect

import (
	"fmt"

	"catalog-gateway/internal/model"
)

func postgresTemplateSet() *TemplateSet {
	schemaOpt := Param{Name: "schema", Optional: true}
	table := Param{Name: "table"}

	return &TemplateSet{
		Dialect:              model.DatabaseTypePostgreSQL,
		Strategy:             TrailingLimitOffset,
		SupportsSchemaFilter: true,
		Placeholder:          func(i int) string { return fmt.Sprintf("$%d", i) },
		templates: map[QueryKind]*Template{
			KindListTables: {
				Kind: KindListTables,
				SQL: `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema NOT IN ('pg_catalog', 'information_schema')
  AND ($1::text IS NULL OR table_schema = $1)
ORDER BY table_schema, table_name`,
				Params:   []Param{schemaOpt},
				MapTable: mapSchemaTable,
			},
			KindCountTables: {
				Kind: KindCountTables,
				SQL: `SELECT COUNT(*)
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema NOT IN ('pg_catalog', 'information_schema')
  AND ($1::text IS NULL OR table_schema = $1)`,
				Params: []Param{schemaOpt},
			},
			KindListColumns: {
				Kind: KindListColumns,
				SQL: `SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE ($1::text IS NULL OR table_schema = $1)
  AND table_name = $2
ORDER BY ordinal_position`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapInfoSchemaColumn,
			},
			KindCountColumns: {
				Kind: KindCountColumns,
				SQL: `SELECT COUNT(*)
FROM information_schema.columns
WHERE ($1::text IS NULL OR table_schema = $1)
  AND table_name = $2`,
				Params: []Param{schemaOpt, table},
			},
			// The referenced column is resolved positionally through
			// referential_constraints: one row per constrained column, even
			// for composite keys. constraint_column_usage joined on the
			// constraint name alone would go cartesian there, and the count
			// must see the same rows the list sees.
			KindListOutgoingFKs: {
				Kind: KindListOutgoingFKs,
				SQL: `SELECT
  tc.constraint_name,
  tc.table_schema  AS source_schema,
  tc.table_name    AS source_table,
  kcu.column_name  AS source_column,
  dcu.table_schema AS dest_schema,
  dcu.table_name   AS dest_table,
  dcu.column_name  AS dest_column
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name
 AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.table_schema
JOIN information_schema.key_column_usage dcu
  ON dcu.constraint_name = rc.unique_constraint_name
 AND dcu.constraint_schema = rc.unique_constraint_schema
 AND dcu.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND ($1::text IS NULL OR tc.table_schema = $1)
  AND tc.table_name = $2
ORDER BY tc.constraint_name, kcu.ordinal_position`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountOutgoingFKs: {
				Kind: KindCountOutgoingFKs,
				SQL: `SELECT COUNT(*)
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name
 AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.table_schema
JOIN information_schema.key_column_usage dcu
  ON dcu.constraint_name = rc.unique_constraint_name
 AND dcu.constraint_schema = rc.unique_constraint_schema
 AND dcu.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND ($1::text IS NULL OR tc.table_schema = $1)
  AND tc.table_name = $2`,
				Params: []Param{schemaOpt, table},
			},
			KindListIncomingFKs: {
				Kind: KindListIncomingFKs,
				SQL: `SELECT
  tc.constraint_name,
  tc.table_schema  AS source_schema,
  tc.table_name    AS source_table,
  kcu.column_name  AS source_column,
  dcu.table_schema AS dest_schema,
  dcu.table_name   AS dest_table,
  dcu.column_name  AS dest_column
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name
 AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.table_schema
JOIN information_schema.key_column_usage dcu
  ON dcu.constraint_name = rc.unique_constraint_name
 AND dcu.constraint_schema = rc.unique_constraint_schema
 AND dcu.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND ($1::text IS NULL OR dcu.table_schema = $1)
  AND dcu.table_name = $2
ORDER BY tc.constraint_name, kcu.ordinal_position`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountIncomingFKs: {
				Kind: KindCountIncomingFKs,
				SQL: `SELECT COUNT(*)
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name
 AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.table_schema
JOIN information_schema.key_column_usage dcu
  ON dcu.constraint_name = rc.unique_constraint_name
 AND dcu.constraint_schema = rc.unique_constraint_schema
 AND dcu.ordinal_position = kcu.position_in_unique_constraint
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND ($1::text IS NULL OR dcu.table_schema = $1)
  AND dcu.table_name = $2`,
				Params: []Param{schemaOpt, table},
			},
			KindTableExists: {
				Kind: KindTableExists,
				SQL: `SELECT COUNT(*)
FROM information_schema.tables
WHERE ($1::text IS NULL OR table_schema = $1)
  AND table_name = $2`,
				Params: []Param{schemaOpt, table},
			},
		},
	}
}
