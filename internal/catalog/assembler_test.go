package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
)

func sqliteSet(t *testing.T) *dialect.TemplateSet {
	t.Helper()
	ts, err := dialect.NewRegistry().Resolve(model.DatabaseTypeSQLite)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestAssembleKeepsCategoryOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	// Windows run concurrently; completion order must not matter.
	mock.MatchExpectationsInOrder(false)

	colRows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("id", "integer", "NO", nil).
		AddRow("email", "text", "YES", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("public", "users", 2, 3).
		WillReturnRows(colRows)

	fkRows := sqlmock.NewRows([]string{
		"constraint_name", "source_schema", "source_table", "source_column",
		"dest_schema", "dest_table", "dest_column",
	}).AddRow("fk_users_org", "public", "users", "org_id", "public", "orgs", "id")
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WithArgs("public", "users", 1, 0).
		WillReturnRows(fkRows)

	assembler := NewAssembler(db, postgresSet(t))
	items, err := assembler.Assemble(context.Background(),
		dialect.BindParams{Schema: "public", Table: "users"},
		[]model.PageWindow{
			{Category: model.CategoryColumns, Offset: 3, Limit: 2},
			{Category: model.CategoryOutgoingFK, Offset: 0, Limit: 1},
		})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Type != model.ItemTypeColumn || items[0].ColumnInfo.Name != "id" {
		t.Errorf("item 0 = %+v, want column id", items[0])
	}
	if items[1].Type != model.ItemTypeColumn || items[1].ColumnInfo.Name != "email" {
		t.Errorf("item 1 = %+v, want column email", items[1])
	}
	if items[2].Type != model.ItemTypeForeignKey || items[2].ForeignKeyInfo.ConstraintName != "fk_users_org" {
		t.Errorf("item 2 = %+v, want foreign key", items[2])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAssembleAppliesInMemoryWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// PRAGMA sources return everything; the window is applied after fetch.
	pragmaRows := sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
		AddRow(0, "id", "INTEGER", 1, nil, 1).
		AddRow(1, "name", "TEXT", 0, nil, 0).
		AddRow(2, "created_at", "TEXT", 1, nil, 0).
		AddRow(3, "notes", "TEXT", 0, nil, 0)
	mock.ExpectQuery(regexp.QuoteMeta("PRAGMA table_info(users)")).
		WillReturnRows(pragmaRows)

	assembler := NewAssembler(db, sqliteSet(t))
	items, err := assembler.Assemble(context.Background(),
		dialect.BindParams{Table: "users"},
		[]model.PageWindow{{Category: model.CategoryColumns, Offset: 1, Limit: 2}})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ColumnInfo.Name != "name" || items[1].ColumnInfo.Name != "created_at" {
		t.Errorf("window slice wrong: %+v", items)
	}
}

func TestAssembleFillsPragmaTableIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	outRows := sqlmock.NewRows([]string{"id", "seq", "table", "from", "to", "on_update", "on_delete", "match"}).
		AddRow(0, 0, "orgs", "org_id", "id", "NO ACTION", "NO ACTION", "NONE")
	mock.ExpectQuery(regexp.QuoteMeta("PRAGMA foreign_key_list(users)")).
		WillReturnRows(outRows)

	inRows := sqlmock.NewRows([]string{"name", "from", "to"}).
		AddRow("sessions", "user_id", "id")
	mock.ExpectQuery(regexp.QuoteMeta("pragma_foreign_key_list(m.name)")).
		WithArgs("users").
		WillReturnRows(inRows)

	assembler := NewAssembler(db, sqliteSet(t))
	items, err := assembler.Assemble(context.Background(),
		dialect.BindParams{Table: "users"},
		[]model.PageWindow{
			{Category: model.CategoryOutgoingFK, Offset: 0, Limit: 1},
			{Category: model.CategoryIncomingFK, Offset: 0, Limit: 1},
		})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	out := items[0].ForeignKeyInfo
	if out.SourceTable != "users" || out.DestTable != "orgs" {
		t.Errorf("outgoing = %+v, want users -> orgs", out)
	}
	in := items[1].ForeignKeyInfo
	if in.SourceTable != "sessions" || in.DestTable != "users" {
		t.Errorf("incoming = %+v, want sessions -> users", in)
	}
}

func TestAssembleFailsWholePage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	boom := errors.New("network down")
	colRows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("id", "integer", "NO", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnRows(colRows)
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WillReturnError(boom)

	assembler := NewAssembler(db, postgresSet(t))
	_, err = assembler.Assemble(context.Background(),
		dialect.BindParams{Schema: "public", Table: "users"},
		[]model.PageWindow{
			{Category: model.CategoryColumns, Offset: 0, Limit: 1},
			{Category: model.CategoryOutgoingFK, Offset: 0, Limit: 1},
		})

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QueryError", err)
	}
	if qerr.Category != model.CategoryOutgoingFK {
		t.Errorf("category = %s, want outgoing", qerr.Category)
	}
}
