package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-gateway/internal/catalog"
	"catalog-gateway/internal/config"
	"catalog-gateway/internal/database"
	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/middleware"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/repository"
	"catalog-gateway/internal/utils"
)

// CatalogService exposes read-only catalog introspection over every
// configured data source.
type CatalogService interface {
	// ListDatabases returns the configured data sources.
	ListDatabases(ctx context.Context) ([]model.DatabaseSummary, error)

	// ListTables returns one page of the ordered table listing.
	ListTables(ctx context.Context, req *model.CatalogRequest) (*model.TableListing, error)

	// DescribeTable returns one page of the merged columns, outgoing
	// foreign keys and incoming foreign keys stream.
	DescribeTable(ctx context.Context, req *model.CatalogRequest) (*model.PaginatedResult, error)

	// SampleTable returns up to limit rows from the table.
	SampleTable(ctx context.Context, database, table, schema string, limit int) (*model.SampleResult, error)

	// TestConnection probes connectivity to the data source.
	TestConnection(ctx context.Context, database string) (*model.ConnectionTestResult, error)
}

type catalogService struct {
	envResolver
	cfg *config.CatalogConfig
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repository.DataSourceRepository, connPool *database.ConnectionPool, dialects *dialect.Registry, cfg *config.CatalogConfig) CatalogService {
	return &catalogService{
		envResolver: envResolver{repo: repo, connPool: connPool, dialects: dialects},
		cfg:         cfg,
	}
}

func (s *catalogService) ListDatabases(ctx context.Context) ([]model.DatabaseSummary, error) {
	sources, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err, "failed to list data sources")
	}

	summaries := make([]model.DatabaseSummary, 0, len(sources))
	for _, ds := range sources {
		summaries = append(summaries, model.DatabaseSummary{
			Name:        ds.Label,
			Type:        string(ds.Type),
			Description: ds.Description,
		})
	}
	return summaries, nil
}

func (s *catalogService) ListTables(ctx context.Context, req *model.CatalogRequest) (*model.TableListing, error) {
	if err := validatePagination(req.Page, req.Limit); err != nil {
		return nil, err
	}
	limit := catalog.ClampLimit(req.Limit, s.cfg.MaxRowsTableList)

	env, err := s.resolve(ctx, req.Database)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	p := dialect.BindParams{Schema: req.Schema}

	start := time.Now()

	counter := catalog.NewCountResolver(env.db, env.ts)
	total, err := counter.CountTables(qctx, p)
	if err != nil {
		middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "list_tables", "error", time.Since(start), 0)
		return nil, mapQueryError(err)
	}

	fetcher := catalog.NewTableFetcher(env.db, env.ts)
	tables, err := fetcher.FetchTables(qctx, p, (req.Page-1)*limit, limit)
	if err != nil {
		middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "list_tables", "error", time.Since(start), 0)
		return nil, mapQueryError(err)
	}
	middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "list_tables", "success", time.Since(start), len(tables))

	return &model.TableListing{
		Database:    env.source.Label,
		Tables:      tables,
		TotalCount:  total,
		CurrentPage: req.Page,
		TotalPages:  catalog.TotalPages(total, limit),
		Limit:       limit,
	}, nil
}

func (s *catalogService) DescribeTable(ctx context.Context, req *model.CatalogRequest) (*model.PaginatedResult, error) {
	if err := validatePagination(req.Page, req.Limit); err != nil {
		return nil, err
	}
	if err := dialect.ValidateIdentifier(req.Table); err != nil {
		return nil, utils.NewErrorBuilder(utils.ErrCodeInvalidIdentifier).
			WithDetails(fmt.Sprintf("table %q", req.Table)).
			WithCause(err).
			Build()
	}
	limit := catalog.ClampLimit(req.Limit, s.cfg.MaxRowsDescribe)

	env, err := s.resolve(ctx, req.Database)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	p := dialect.BindParams{Schema: req.Schema, Table: req.Table}

	start := time.Now()

	counter := catalog.NewCountResolver(env.db, env.ts)
	counts, err := counter.Counts(qctx, p, true)
	if err != nil {
		middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "describe_table", "error", time.Since(start), 0)
		return nil, mapQueryError(err)
	}

	windows := catalog.PlanWindows(req.Page, limit, counts)
	middleware.RecordWindowsPlanned(env.source.Label, string(env.source.Type), len(windows))

	items := make([]model.CatalogItem, 0)
	if len(windows) > 0 {
		assembler := catalog.NewAssembler(env.db, env.ts)
		items, err = assembler.Assemble(qctx, p, windows)
		if err != nil {
			middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "describe_table", "error", time.Since(start), 0)
			return nil, mapQueryError(err)
		}
	}
	middleware.RecordCatalogQuery(env.source.Label, string(env.source.Type), "describe_table", "success", time.Since(start), len(items))

	return &model.PaginatedResult{
		Items:       items,
		TotalCount:  counts.Total(),
		CurrentPage: req.Page,
		TotalPages:  catalog.TotalPages(counts.Total(), limit),
		Limit:       limit,
	}, nil
}

func (s *catalogService) SampleTable(ctx context.Context, dbLabel, table, schema string, limit int) (*model.SampleResult, error) {
	if err := dialect.ValidateIdentifier(table); err != nil {
		return nil, utils.NewErrorBuilder(utils.ErrCodeInvalidIdentifier).
			WithDetails(fmt.Sprintf("table %q", table)).
			WithCause(err).
			Build()
	}
	if limit <= 0 {
		limit = s.cfg.DefaultSampleSize
	}
	limit = catalog.ClampLimit(limit, s.cfg.MaxRowsQuery)

	env, err := s.resolve(ctx, dbLabel)
	if err != nil {
		return nil, err
	}

	target := table
	if schema != "" && env.ts.SupportsSchemaFilter {
		if err := dialect.ValidateIdentifier(schema); err != nil {
			return nil, utils.NewErrorBuilder(utils.ErrCodeInvalidIdentifier).
				WithDetails(fmt.Sprintf("schema %q", schema)).
				WithCause(err).
				Build()
		}
		target = schema + "." + table
	}

	// Both identifiers pass the allow-list, so inlining them is safe.
	var query string
	switch env.ts.Strategy {
	case dialect.OffsetFetchNext:
		query = fmt.Sprintf("SELECT TOP %d * FROM %s", limit, target)
	default:
		query = fmt.Sprintf("SELECT * FROM %s LIMIT %d", target, limit)
	}

	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	columns, rowData, _, err := scanRows(qctx, env.db, query, limit)
	if err != nil {
		return nil, mapQueryError(err)
	}

	return &model.SampleResult{
		Table:    table,
		Columns:  columns,
		Rows:     rowData,
		RowCount: len(rowData),
	}, nil
}

func (s *catalogService) TestConnection(ctx context.Context, dbLabel string) (*model.ConnectionTestResult, error) {
	env, err := s.resolve(ctx, dbLabel)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	if err := env.db.PingContext(qctx); err != nil {
		s.repo.SetStatus(ctx, env.source.Label, model.DataSourceStatusError)
		return nil, utils.NewErrorBuilder(utils.ErrCodeConnectionFailed).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	}

	s.repo.SetStatus(ctx, env.source.Label, model.DataSourceStatusActive)
	return &model.ConnectionTestResult{
		Database: env.source.Label,
		Message:  fmt.Sprintf("connection to %s (%s) succeeded", env.source.Label, env.source.Type),
	}, nil
}

// queryEnv bundles everything one catalog operation needs against a single
// data source.
type queryEnv struct {
	source *model.DataSource
	ts     *dialect.TemplateSet
	db     catalogDB
}

// catalogDB is the slice of *sql.DB the service needs.
type catalogDB interface {
	catalog.Executor
	PingContext(ctx context.Context) error
}

// envResolver maps a database label to its data source, dialect templates
// and pooled connection. Shared by the catalog and query services.
type envResolver struct {
	repo     repository.DataSourceRepository
	connPool *database.ConnectionPool
	dialects *dialect.Registry
}

func (s *envResolver) resolve(ctx context.Context, dbLabel string) (*queryEnv, error) {
	source, err := s.repo.GetByLabel(ctx, dbLabel)
	if err != nil {
		return nil, utils.NewErrorBuilder(utils.ErrCodeDataSourceNotFound).
			WithDetails(fmt.Sprintf("database %q", dbLabel)).
			WithCause(err).
			Build()
	}

	ts, err := s.dialects.Resolve(source.Type)
	if err != nil {
		return nil, utils.NewErrorBuilder(utils.ErrCodeUnsupportedDialect).
			WithDetails(string(source.Type)).
			WithCause(err).
			Build()
	}

	db, err := s.connPool.GetConnection(ctx, source)
	if err != nil {
		s.repo.SetStatus(ctx, source.Label, model.DataSourceStatusError)
		return nil, utils.NewErrorBuilder(utils.ErrCodeConnectionFailed).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	}

	return &queryEnv{source: source, ts: ts, db: db}, nil
}

func (s *catalogService) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.QueryTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func mapQueryError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrTableNotFound):
		return utils.NewErrorBuilder(utils.ErrCodeTableNotFound).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	case errors.Is(err, dialect.ErrInvalidIdentifier):
		return utils.NewErrorBuilder(utils.ErrCodeInvalidIdentifier).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	case errors.Is(err, context.DeadlineExceeded):
		return utils.NewErrorBuilder(utils.ErrCodeQueryTimeout).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	default:
		return utils.NewErrorBuilder(utils.ErrCodeQueryFailed).
			WithDetails(err.Error()).
			WithCause(err).
			Build()
	}
}

func validatePagination(page, limit int) error {
	if page < 1 || limit < 1 {
		return utils.NewErrorBuilder(utils.ErrCodeInvalidPagination).
			WithDetails(fmt.Sprintf("page=%d limit=%d", page, limit)).
			Build()
	}
	return nil
}
