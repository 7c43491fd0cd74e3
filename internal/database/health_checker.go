package database

import (
	"context"
	"fmt"
	"time"

	"catalog-gateway/internal/model"
)

// HealthChecker probes configured data sources for connectivity.
type HealthChecker struct {
	connPool *ConnectionPool
	registry *DriverRegistry
}

// NewHealthChecker creates a checker bound to the shared pool.
func NewHealthChecker(connPool *ConnectionPool) *HealthChecker {
	return &HealthChecker{
		connPool: connPool,
		registry: GetDriverRegistry(),
	}
}

// HealthCheckResult is the outcome of one probe.
type HealthCheckResult struct {
	Label        string        `json:"label"`
	DatabaseType string        `json:"database_type"`
	Status       string        `json:"status"`
	Message      string        `json:"message,omitempty"`
	Latency      time.Duration `json:"latency_ns"`
	CheckedAt    time.Time     `json:"checked_at"`
}

// HealthSummary aggregates probes over every configured source.
type HealthSummary struct {
	Total     int                 `json:"total"`
	Healthy   int                 `json:"healthy"`
	Unhealthy int                 `json:"unhealthy"`
	Results   []HealthCheckResult `json:"results"`
	CheckedAt time.Time           `json:"checked_at"`
}

// CheckDataSource probes one data source through the pool.
func (hc *HealthChecker) CheckDataSource(ctx context.Context, dataSource *model.DataSource) *HealthCheckResult {
	start := time.Now()
	result := &HealthCheckResult{
		Label:        dataSource.Label,
		DatabaseType: string(dataSource.Type),
		CheckedAt:    start,
	}

	driver, err := hc.registry.GetDriver(dataSource.Type)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("driver not available: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	db, err := hc.connPool.GetConnection(ctx, dataSource)
	if err != nil {
		result.Status = "unhealthy"
		result.Message = fmt.Sprintf("failed to get connection: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	err = driver.TestConnection(ctx, db)
	result.Latency = time.Since(start)
	if err != nil {
		result.Status = "unhealthy"
		result.Message = fmt.Sprintf("connection test failed: %v", err)
	} else {
		result.Status = "healthy"
	}
	return result
}

// CheckAll probes every given data source sequentially; one slow source
// should not be hidden by the others, so latency is reported per source.
func (hc *HealthChecker) CheckAll(ctx context.Context, sources []*model.DataSource) *HealthSummary {
	summary := &HealthSummary{
		Total:     len(sources),
		Results:   make([]HealthCheckResult, 0, len(sources)),
		CheckedAt: time.Now(),
	}

	for _, ds := range sources {
		result := hc.CheckDataSource(ctx, ds)
		if result.Status == "healthy" {
			summary.Healthy++
		} else {
			summary.Unhealthy++
		}
		summary.Results = append(summary.Results, *result)
	}
	return summary
}
