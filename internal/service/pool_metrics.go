package service

import (
	"context"
	"time"

	"catalog-gateway/internal/database"
	"catalog-gateway/internal/middleware"
	"catalog-gateway/internal/repository"
)

// PoolMetricsPublisher periodically snapshots connection pool statistics
// into the Prometheus gauges.
type PoolMetricsPublisher struct {
	connPool *database.ConnectionPool
	repo     repository.DataSourceRepository
	interval time.Duration
}

// NewPoolMetricsPublisher creates a publisher; interval <= 0 selects 15s.
func NewPoolMetricsPublisher(connPool *database.ConnectionPool, repo repository.DataSourceRepository, interval time.Duration) *PoolMetricsPublisher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &PoolMetricsPublisher{
		connPool: connPool,
		repo:     repo,
		interval: interval,
	}
}

// Start publishes until ctx is cancelled.
func (p *PoolMetricsPublisher) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publish(ctx)
		}
	}
}

func (p *PoolMetricsPublisher) publish(ctx context.Context) {
	stats := p.connPool.GetStats()
	for label, s := range stats {
		dbType := ""
		if ds, err := p.repo.GetByLabel(ctx, label); err == nil {
			dbType = string(ds.Type)
		}
		middleware.UpdateConnectionPoolMetrics(label, dbType, s.InUse, s.Idle)
	}
}
