package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-gateway/internal/catalog"
	"catalog-gateway/internal/config"
	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/repository"
	"catalog-gateway/internal/utils"
)

func testCatalogService() CatalogService {
	repo := repository.NewDataSourceRepository(map[string]*model.DataSource{
		"orders": {
			Label:  "orders",
			Type:   model.DatabaseTypeMySQL,
			Status: model.DataSourceStatusActive,
		},
	})
	cfg := &config.CatalogConfig{
		MaxRowsTableList:    500,
		MaxRowsDescribe:     250,
		MaxRowsQuery:        1000,
		DefaultSampleSize:   10,
		QueryTimeoutSeconds: 30,
	}
	return NewCatalogService(repo, nil, dialect.NewRegistry(), cfg)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want *utils.AppError", err)
	}
	if appErr.Code != code {
		t.Errorf("code = %s, want %s", appErr.Code, code)
	}
}

func TestListDatabases(t *testing.T) {
	svc := testCatalogService()
	dbs, err := svc.ListDatabases(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dbs) != 1 || dbs[0].Name != "orders" || dbs[0].Type != "mysql" {
		t.Errorf("databases = %+v", dbs)
	}
}

func TestListTablesRejectsInvalidPagination(t *testing.T) {
	svc := testCatalogService()
	cases := []struct{ page, limit int }{{0, 10}, {1, 0}, {-1, 10}, {1, -5}}
	for _, c := range cases {
		_, err := svc.ListTables(context.Background(), &model.CatalogRequest{
			Database: "orders", Page: c.page, Limit: c.limit,
		})
		assertAppErrorCode(t, err, utils.ErrCodeInvalidPagination)
	}
}

func TestDescribeTableRejectsHostileIdentifier(t *testing.T) {
	svc := testCatalogService()
	_, err := svc.DescribeTable(context.Background(), &model.CatalogRequest{
		Database: "orders",
		Table:    "users; DROP TABLE users",
		Page:     1,
		Limit:    50,
	})
	assertAppErrorCode(t, err, utils.ErrCodeInvalidIdentifier)
}

func TestSampleTableRejectsHostileIdentifier(t *testing.T) {
	svc := testCatalogService()
	_, err := svc.SampleTable(context.Background(), "orders", "users'; --", "", 10)
	assertAppErrorCode(t, err, utils.ErrCodeInvalidIdentifier)
}

func TestUnknownDatabaseLabel(t *testing.T) {
	svc := testCatalogService()
	_, err := svc.ListTables(context.Background(), &model.CatalogRequest{
		Database: "missing", Page: 1, Limit: 50,
	})
	assertAppErrorCode(t, err, utils.ErrCodeDataSourceNotFound)
}

func TestMapQueryError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{catalog.ErrTableNotFound, utils.ErrCodeTableNotFound},
		{&catalog.QueryError{Category: model.CategoryColumns, Err: catalog.ErrTableNotFound}, utils.ErrCodeTableNotFound},
		{dialect.ErrInvalidIdentifier, utils.ErrCodeInvalidIdentifier},
		{context.DeadlineExceeded, utils.ErrCodeQueryTimeout},
		{errors.New("connection reset"), utils.ErrCodeQueryFailed},
	}
	for _, c := range cases {
		assertAppErrorCode(t, mapQueryError(c.err), c.code)
	}
}

func TestQueryContextHonorsConfiguredTimeout(t *testing.T) {
	svc := testCatalogService().(*catalogService)
	ctx, cancel := svc.queryContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	remaining := time.Until(deadline)
	if remaining <= 0 || remaining > 30*time.Second {
		t.Errorf("deadline %v out of range", remaining)
	}
}
