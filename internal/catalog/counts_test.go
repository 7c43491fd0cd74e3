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

func postgresSet(t *testing.T) *dialect.TemplateSet {
	t.Helper()
	ts, err := dialect.NewRegistry().Resolve(model.DatabaseTypePostgreSQL)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestCountsAllCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("public", "users").
		WillReturnRows(countRows(4))
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WithArgs("public", "users").
		WillReturnRows(countRows(2))
	mock.ExpectQuery(regexp.QuoteMeta("dcu.table_name = $2")).
		WithArgs("public", "users").
		WillReturnRows(countRows(1))

	resolver := NewCountResolver(db, postgresSet(t))
	counts, err := resolver.Counts(context.Background(), dialect.BindParams{Schema: "public", Table: "users"}, true)
	if err != nil {
		t.Fatal(err)
	}

	want := model.CategoryCounts{Columns: 4, OutgoingFKs: 2, IncomingFKs: 1}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCountsColumnsOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs(nil, "users").
		WillReturnRows(countRows(6))

	resolver := NewCountResolver(db, postgresSet(t))
	counts, err := resolver.Counts(context.Background(), dialect.BindParams{Table: "users"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Columns != 6 || counts.OutgoingFKs != 0 || counts.IncomingFKs != 0 {
		t.Errorf("counts = %+v, want columns only", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCountsMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// All three counts come back zero, then the existence probe decides.
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("dcu.table_name = $2")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(countRows(0))

	resolver := NewCountResolver(db, postgresSet(t))
	_, err = resolver.Counts(context.Background(), dialect.BindParams{Table: "ghost"}, true)
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCountsEmptyButExistingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// A zero-column result still probes existence; an existing table with
	// no catalog entries is a valid zero outcome.
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("dcu.table_name = $2")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(countRows(1))

	resolver := NewCountResolver(db, postgresSet(t))
	counts, err := resolver.Counts(context.Background(), dialect.BindParams{Table: "empty_table"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Total() != 0 {
		t.Errorf("counts = %+v, want all zero", counts)
	}
}

func TestCountsExistenceCheckFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// Every count is zero and the existence check itself dies. That must
	// surface as an error, never as a healthy empty table.
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("dcu.table_name = $2")).
		WillReturnRows(countRows(0))
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnError(boom)

	resolver := NewCountResolver(db, postgresSet(t))
	_, err = resolver.Counts(context.Background(), dialect.BindParams{Table: "users"}, true)

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QueryError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err chain should contain the cause, got %v", err)
	}
	if errors.Is(err, ErrTableNotFound) {
		t.Errorf("a failed existence check must not report the table as missing, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCountsQueryFailureCarriesCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnError(boom)
	mock.ExpectQuery(regexp.QuoteMeta("tc.table_name = $2")).
		WillReturnRows(countRows(2))
	mock.ExpectQuery(regexp.QuoteMeta("dcu.table_name = $2")).
		WillReturnRows(countRows(0))
	// Table exists, so the original failure is surfaced.
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(countRows(1))

	resolver := NewCountResolver(db, postgresSet(t))
	_, err = resolver.Counts(context.Background(), dialect.BindParams{Table: "users"}, true)

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QueryError", err)
	}
	if qerr.Category != model.CategoryColumns {
		t.Errorf("category = %s, want columns", qerr.Category)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err chain should contain the cause, got %v", err)
	}
}

func TestCountTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("public").
		WillReturnRows(countRows(12))

	resolver := NewCountResolver(db, postgresSet(t))
	total, err := resolver.CountTables(context.Background(), dialect.BindParams{Schema: "public"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}
}
