package dialect

import (
	"catalog-gateway/internal/model"
)

// Snowflake's INFORMATION_SCHEMA does not populate KEY_COLUMN_USAGE, so the
// foreign-key templates resolve constraint and table pairs through
// REFERENTIAL_CONSTRAINTS; column names come back NULL and render empty.
func snowflakeTemplateSet() *TemplateSet {
	schemaOpt := Param{Name: "schema", Optional: true}
	table := Param{Name: "table"}

	return &TemplateSet{
		Dialect:              model.DatabaseTypeSnowflake,
		Strategy:             TrailingLimitOffset,
		SupportsSchemaFilter: true,
		Placeholder:          func(int) string { return "?" },
		templates: map[QueryKind]*Template{
			KindListTables: {
				Kind: KindListTables,
				SQL: `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema != 'INFORMATION_SCHEMA'
  AND (? IS NULL OR table_schema = ?)
ORDER BY table_schema, table_name`,
				Params:   []Param{schemaOpt, schemaOpt},
				MapTable: mapSchemaTable,
			},
			KindCountTables: {
				Kind: KindCountTables,
				SQL: `SELECT COUNT(*)
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema != 'INFORMATION_SCHEMA'
  AND (? IS NULL OR table_schema = ?)`,
				Params: []Param{schemaOpt, schemaOpt},
			},
			KindListColumns: {
				Kind: KindListColumns,
				SQL: `SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND table_name = ?
ORDER BY ordinal_position`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapInfoSchemaColumn,
			},
			KindCountColumns: {
				Kind: KindCountColumns,
				SQL: `SELECT COUNT(*)
FROM information_schema.columns
WHERE table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND table_name = ?`,
				Params: []Param{schemaOpt, table},
			},
			KindListOutgoingFKs: {
				Kind: KindListOutgoingFKs,
				SQL: `SELECT
  rc.constraint_name,
  tc.table_schema AS source_schema,
  tc.table_name   AS source_table,
  NULL            AS source_column,
  ut.table_schema AS dest_schema,
  ut.table_name   AS dest_table,
  NULL            AS dest_column
FROM information_schema.referential_constraints rc
JOIN information_schema.table_constraints tc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.constraint_schema
JOIN information_schema.table_constraints ut
  ON rc.unique_constraint_name = ut.constraint_name
 AND rc.unique_constraint_schema = ut.constraint_schema
WHERE tc.table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND tc.table_name = ?
ORDER BY rc.constraint_name`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountOutgoingFKs: {
				Kind: KindCountOutgoingFKs,
				SQL: `SELECT COUNT(*)
FROM information_schema.referential_constraints rc
JOIN information_schema.table_constraints tc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.constraint_schema
WHERE tc.table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND tc.table_name = ?`,
				Params: []Param{schemaOpt, table},
			},
			KindListIncomingFKs: {
				Kind: KindListIncomingFKs,
				SQL: `SELECT
  rc.constraint_name,
  tc.table_schema AS source_schema,
  tc.table_name   AS source_table,
  NULL            AS source_column,
  ut.table_schema AS dest_schema,
  ut.table_name   AS dest_table,
  NULL            AS dest_column
FROM information_schema.referential_constraints rc
JOIN information_schema.table_constraints tc
  ON rc.constraint_name = tc.constraint_name
 AND rc.constraint_schema = tc.constraint_schema
JOIN information_schema.table_constraints ut
  ON rc.unique_constraint_name = ut.constraint_name
 AND rc.unique_constraint_schema = ut.constraint_schema
WHERE ut.table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND ut.table_name = ?
ORDER BY rc.constraint_name`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountIncomingFKs: {
				Kind: KindCountIncomingFKs,
				SQL: `SELECT COUNT(*)
FROM information_schema.referential_constraints rc
JOIN information_schema.table_constraints ut
  ON rc.unique_constraint_name = ut.constraint_name
 AND rc.unique_constraint_schema = ut.constraint_schema
WHERE ut.table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND ut.table_name = ?`,
				Params: []Param{schemaOpt, table},
			},
			KindTableExists: {
				Kind: KindTableExists,
				SQL: `SELECT COUNT(*)
FROM information_schema.tables
WHERE table_schema = COALESCE(?, CURRENT_SCHEMA())
  AND table_name = ?`,
				Params: []Param{schemaOpt, table},
			},
		},
	}
}
