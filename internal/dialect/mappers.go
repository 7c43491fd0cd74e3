package dialect

import (
	"database/sql"
	"strings"

	"catalog-gateway/internal/model"
)

// mapInfoSchemaColumn decodes the normalized information_schema column shape
// (column_name, data_type, is_nullable, column_default) shared by the
// PostgreSQL, MySQL, SQL Server and Snowflake templates.
func mapInfoSchemaColumn(row RowScan) (model.CatalogItem, error) {
	var (
		name, dataType, nullable string
		def                      sql.NullString
	)
	if err := row.Scan(&name, &dataType, &nullable, &def); err != nil {
		return model.CatalogItem{}, err
	}
	return model.NewColumnItem(model.ColumnInfo{
		Name:       name,
		DataType:   dataType,
		IsNullable: strings.EqualFold(nullable, "YES"),
		Default:    def.String,
	}), nil
}

// mapNormalizedForeignKey decodes the 7-column shape every foreign-key list
// template aliases to: (constraint_name, source_schema, source_table,
// source_column, dest_schema, dest_table, dest_column). Column names may be
// NULL where the dialect's catalog does not expose them (Snowflake).
func mapNormalizedForeignKey(row RowScan) (model.CatalogItem, error) {
	var (
		constraint, srcSchema, srcColumn, destSchema, destColumn sql.NullString
		srcTable, destTable                                      string
	)
	if err := row.Scan(&constraint, &srcSchema, &srcTable, &srcColumn, &destSchema, &destTable, &destColumn); err != nil {
		return model.CatalogItem{}, err
	}
	return model.NewForeignKeyItem(model.ForeignKeyInfo{
		ConstraintName: constraint.String,
		SourceSchema:   srcSchema.String,
		SourceTable:    srcTable,
		SourceColumn:   srcColumn.String,
		DestSchema:     destSchema.String,
		DestTable:      destTable,
		DestColumn:     destColumn.String,
	}), nil
}

// mapSchemaTable decodes (table_schema, table_name); the schema column may
// be NULL for dialects without schemas.
func mapSchemaTable(row RowScan) (model.TableInfo, error) {
	var (
		schema sql.NullString
		name   string
	)
	if err := row.Scan(&schema, &name); err != nil {
		return model.TableInfo{}, err
	}
	return model.TableInfo{Schema: schema.String, Name: name}, nil
}

// mapPragmaColumn decodes a PRAGMA table_info row:
// (cid, name, type, notnull, dflt_value, pk).
func mapPragmaColumn(row RowScan) (model.CatalogItem, error) {
	var (
		cid, notNull, pk int
		name, dataType   string
		def              sql.NullString
	)
	if err := row.Scan(&cid, &name, &dataType, &notNull, &def, &pk); err != nil {
		return model.CatalogItem{}, err
	}
	return model.NewColumnItem(model.ColumnInfo{
		Name:       name,
		DataType:   dataType,
		IsNullable: notNull == 0,
		Default:    def.String,
	}), nil
}

// mapPragmaForeignKey decodes a PRAGMA foreign_key_list row:
// (id, seq, table, from, to, on_update, on_delete, match). The source table
// is the described table itself and is filled in by the assembler.
func mapPragmaForeignKey(row RowScan) (model.CatalogItem, error) {
	var (
		id, seq                               int
		destTable, from                       string
		to, onUpdate, onDelete, matchStrategy sql.NullString
	)
	if err := row.Scan(&id, &seq, &destTable, &from, &to, &onUpdate, &onDelete, &matchStrategy); err != nil {
		return model.CatalogItem{}, err
	}
	return model.NewForeignKeyItem(model.ForeignKeyInfo{
		SourceColumn: from,
		DestTable:    destTable,
		DestColumn:   to.String,
	}), nil
}

// mapSQLiteIncomingForeignKey decodes the sqlite_master/foreign_key_list
// join shape: (source_table, source_column, dest_column). The destination
// table is the described table itself and is filled in by the assembler.
func mapSQLiteIncomingForeignKey(row RowScan) (model.CatalogItem, error) {
	var (
		srcTable, srcColumn string
		destColumn          sql.NullString
	)
	if err := row.Scan(&srcTable, &srcColumn, &destColumn); err != nil {
		return model.CatalogItem{}, err
	}
	return model.NewForeignKeyItem(model.ForeignKeyInfo{
		SourceTable:  srcTable,
		SourceColumn: srcColumn,
		DestColumn:   destColumn.String,
	}), nil
}
