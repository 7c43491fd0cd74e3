package service

import (
	"context"
	"errors"
	"testing"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/repository"
	"catalog-gateway/internal/utils"
)

func testQueryService() QueryService {
	repo := repository.NewDataSourceRepository(map[string]*model.DataSource{})
	cfg := &config.CatalogConfig{MaxRowsQuery: 1000, QueryTimeoutSeconds: 30}
	return NewQueryService(repo, nil, dialect.NewRegistry(), cfg)
}

func TestValidateQueryMapsValidatorErrors(t *testing.T) {
	svc := testQueryService()

	cases := []struct {
		query string
		code  string
	}{
		{"DELETE FROM users", utils.ErrCodeInvalidRequest},
		{"SELECT load_file('/etc/passwd')", utils.ErrCodeInvalidRequest},
		{"SELECT * FROM users -- x", utils.ErrCodeSQLInjection},
		{"SELECT * FROM users WHERE 'a'='b' OR 1=1", utils.ErrCodeSQLInjection},
		{"not a query at all", utils.ErrCodeSQLSyntaxError},
		{"", utils.ErrCodeSQLSyntaxError},
	}
	for _, c := range cases {
		err := svc.ValidateQuery(c.query)
		if err == nil {
			t.Errorf("ValidateQuery(%q) = nil, want %s", c.query, c.code)
			continue
		}
		var appErr *utils.AppError
		if !errors.As(err, &appErr) {
			t.Errorf("ValidateQuery(%q) = %v, want *utils.AppError", c.query, err)
			continue
		}
		if appErr.Code != c.code {
			t.Errorf("ValidateQuery(%q) code = %s, want %s", c.query, appErr.Code, c.code)
		}
	}
}

func TestValidateQueryAcceptsSelect(t *testing.T) {
	svc := testQueryService()
	if err := svc.ValidateQuery("SELECT id, name FROM users WHERE id = 7"); err != nil {
		t.Errorf("ValidateQuery = %v, want nil", err)
	}
}

func TestExecuteQueryRecordsFailures(t *testing.T) {
	svc := testQueryService()

	// Rejected before any connection is attempted.
	if _, err := svc.ExecuteQuery(context.Background(), "orders", "DROP TABLE users"); err == nil {
		t.Fatal("expected validation failure")
	}
	if _, err := svc.ExecuteQuery(context.Background(), "orders", "SELECT 1 FROM t"); err == nil {
		t.Fatal("expected unknown database failure")
	}

	stats := svc.Stats()
	if stats.TotalQueries != 2 || stats.FailedQueries != 2 || stats.SuccessfulQueries != 0 {
		t.Errorf("stats = %+v, want 2 total, 2 failed", stats)
	}
}
