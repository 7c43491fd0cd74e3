package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/database"
	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/repository"
	"catalog-gateway/internal/security"
	"catalog-gateway/internal/utils"
)

// QueryService runs ad-hoc read-only queries against configured data
// sources. Every statement passes the SQL validator before it reaches a
// driver; results are truncated at the configured row cap.
type QueryService interface {
	ExecuteQuery(ctx context.Context, database, query string) (*model.QueryResult, error)
	ValidateQuery(query string) error
	Stats() QueryStats
}

// QueryStats is a snapshot of query counters since process start.
type QueryStats struct {
	TotalQueries      int64   `json:"total_queries"`
	SuccessfulQueries int64   `json:"successful_queries"`
	FailedQueries     int64   `json:"failed_queries"`
	AvgExecutionSecs  float64 `json:"avg_execution_seconds"`
}

type queryService struct {
	envResolver
	cfg       *config.CatalogConfig
	validator *security.SQLValidator

	mutex         sync.Mutex
	total         int64
	succeeded     int64
	failed        int64
	totalDuration time.Duration
}

// NewQueryService creates a new QueryService.
func NewQueryService(repo repository.DataSourceRepository, connPool *database.ConnectionPool, dialects *dialect.Registry, cfg *config.CatalogConfig) QueryService {
	return &queryService{
		envResolver: envResolver{repo: repo, connPool: connPool, dialects: dialects},
		cfg:         cfg,
		validator:   security.NewSQLValidator(0),
	}
}

func (qs *queryService) ExecuteQuery(ctx context.Context, dbLabel, query string) (*model.QueryResult, error) {
	start := time.Now()

	if err := qs.ValidateQuery(query); err != nil {
		qs.record(false, time.Since(start))
		return nil, err
	}

	env, err := qs.resolve(ctx, dbLabel)
	if err != nil {
		qs.record(false, time.Since(start))
		return nil, err
	}

	timeout := time.Duration(qs.cfg.QueryTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxRows := qs.cfg.MaxRowsQuery
	if maxRows <= 0 {
		maxRows = 1000
	}

	columns, rowData, truncated, err := scanRows(qctx, env.db, query, maxRows)
	if err != nil {
		qs.record(false, time.Since(start))
		return nil, mapQueryError(err)
	}

	qs.record(true, time.Since(start))
	return &model.QueryResult{
		Columns:   columns,
		Rows:      rowData,
		RowCount:  len(rowData),
		Truncated: truncated,
	}, nil
}

func (qs *queryService) ValidateQuery(query string) error {
	if err := qs.validator.ValidateStatement(query); err != nil {
		code := utils.ErrCodeSQLSyntaxError
		switch {
		case errors.Is(err, security.ErrNotSelectQuery),
			errors.Is(err, security.ErrDangerousKeyword):
			code = utils.ErrCodeInvalidRequest
		case errors.Is(err, security.ErrSQLInjection):
			code = utils.ErrCodeSQLInjection
		}
		return utils.NewErrorBuilder(code).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	}
	return nil
}

func (qs *queryService) Stats() QueryStats {
	qs.mutex.Lock()
	defer qs.mutex.Unlock()

	avg := 0.0
	if qs.total > 0 {
		avg = qs.totalDuration.Seconds() / float64(qs.total)
	}
	return QueryStats{
		TotalQueries:      qs.total,
		SuccessfulQueries: qs.succeeded,
		FailedQueries:     qs.failed,
		AvgExecutionSecs:  avg,
	}
}

func (qs *queryService) record(ok bool, elapsed time.Duration) {
	qs.mutex.Lock()
	defer qs.mutex.Unlock()

	qs.total++
	if ok {
		qs.succeeded++
	} else {
		qs.failed++
	}
	qs.totalDuration += elapsed
}

// scanRows executes a query and scans up to maxRows rows into generic maps.
// The boolean result reports whether the result set was cut off.
func scanRows(ctx context.Context, db catalogDB, query string, maxRows int) ([]string, []map[string]any, bool, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, false, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, false, err
	}

	result := make([]map[string]any, 0)
	truncated := false
	for rows.Next() {
		if maxRows > 0 && len(result) >= maxRows {
			truncated = true
			break
		}

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, false, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, false, err
	}

	return columns, result, truncated, nil
}

// normalizeValue converts driver-specific scan results into JSON-friendly
// values.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case sql.RawBytes:
		return string(val)
	default:
		return v
	}
}
