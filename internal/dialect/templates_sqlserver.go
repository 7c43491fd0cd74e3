package dialect

import (
	"fmt"

	"catalog-gateway/internal/model"
)

func sqlserverTemplateSet() *TemplateSet {
	schemaOpt := Param{Name: "schema", Optional: true}
	table := Param{Name: "table"}

	return &TemplateSet{
		Dialect:              model.DatabaseTypeSQLServer,
		Strategy:             OffsetFetchNext,
		SupportsSchemaFilter: true,
		Placeholder:          func(i int) string { return fmt.Sprintf("@p%d", i) },
		templates: map[QueryKind]*Template{
			KindListTables: {
				Kind: KindListTables,
				SQL: `SELECT TABLE_SCHEMA, TABLE_NAME
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE'
  AND (@p1 IS NULL OR TABLE_SCHEMA = @p1)
ORDER BY TABLE_SCHEMA, TABLE_NAME`,
				Params:   []Param{schemaOpt},
				MapTable: mapSchemaTable,
			},
			KindCountTables: {
				Kind: KindCountTables,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE'
  AND (@p1 IS NULL OR TABLE_SCHEMA = @p1)`,
				Params: []Param{schemaOpt},
			},
			KindListColumns: {
				Kind: KindListColumns,
				SQL: `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT
FROM INFORMATION_SCHEMA.COLUMNS
WHERE (@p1 IS NULL OR TABLE_SCHEMA = @p1)
  AND TABLE_NAME = @p2
ORDER BY ORDINAL_POSITION`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapInfoSchemaColumn,
			},
			KindCountColumns: {
				Kind: KindCountColumns,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.COLUMNS
WHERE (@p1 IS NULL OR TABLE_SCHEMA = @p1)
  AND TABLE_NAME = @p2`,
				Params: []Param{schemaOpt, table},
			},
			KindListOutgoingFKs: {
				Kind: KindListOutgoingFKs,
				SQL: `SELECT
  fk.name                                                 AS constraint_name,
  SCHEMA_NAME(t.schema_id)                                AS source_schema,
  t.name                                                  AS source_table,
  COL_NAME(fkc.parent_object_id, fkc.parent_column_id)    AS source_column,
  SCHEMA_NAME(rt.schema_id)                               AS dest_schema,
  rt.name                                                 AS dest_table,
  COL_NAME(fkc.referenced_object_id, fkc.referenced_column_id) AS dest_column
FROM sys.foreign_keys fk
INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
INNER JOIN sys.tables t ON fk.parent_object_id = t.object_id
INNER JOIN sys.tables rt ON fk.referenced_object_id = rt.object_id
WHERE (@p1 IS NULL OR SCHEMA_NAME(t.schema_id) = @p1)
  AND t.name = @p2
ORDER BY fk.name, fkc.constraint_column_id`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountOutgoingFKs: {
				Kind: KindCountOutgoingFKs,
				SQL: `SELECT COUNT(*)
FROM sys.foreign_keys fk
INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
INNER JOIN sys.tables t ON fk.parent_object_id = t.object_id
WHERE (@p1 IS NULL OR SCHEMA_NAME(t.schema_id) = @p1)
  AND t.name = @p2`,
				Params: []Param{schemaOpt, table},
			},
			KindListIncomingFKs: {
				Kind: KindListIncomingFKs,
				SQL: `SELECT
  fk.name                                                 AS constraint_name,
  SCHEMA_NAME(t.schema_id)                                AS source_schema,
  t.name                                                  AS source_table,
  COL_NAME(fkc.parent_object_id, fkc.parent_column_id)    AS source_column,
  SCHEMA_NAME(rt.schema_id)                               AS dest_schema,
  rt.name                                                 AS dest_table,
  COL_NAME(fkc.referenced_object_id, fkc.referenced_column_id) AS dest_column
FROM sys.foreign_keys fk
INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
INNER JOIN sys.tables t ON fk.parent_object_id = t.object_id
INNER JOIN sys.tables rt ON fk.referenced_object_id = rt.object_id
WHERE (@p1 IS NULL OR SCHEMA_NAME(rt.schema_id) = @p1)
  AND rt.name = @p2
ORDER BY fk.name, fkc.constraint_column_id`,
				Params:  []Param{schemaOpt, table},
				MapItem: mapNormalizedForeignKey,
			},
			KindCountIncomingFKs: {
				Kind: KindCountIncomingFKs,
				SQL: `SELECT COUNT(*)
FROM sys.foreign_keys fk
INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
INNER JOIN sys.tables rt ON fk.referenced_object_id = rt.object_id
WHERE (@p1 IS NULL OR SCHEMA_NAME(rt.schema_id) = @p1)
  AND rt.name = @p2`,
				Params: []Param{schemaOpt, table},
			},
			KindTableExists: {
				Kind: KindTableExists,
				SQL: `SELECT COUNT(*)
FROM INFORMATION_SCHEMA.TABLES
WHERE (@p1 IS NULL OR TABLE_SCHEMA = @p1)
  AND TABLE_NAME = @p2`,
				Params: []Param{schemaOpt, table},
			},
		},
	}
}
