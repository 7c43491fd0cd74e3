package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"catalog-gateway/internal/model"
)

// ConnectionPool caches one *sql.DB handle per data source label. Handles
// are opened lazily on first use and re-opened when a cached handle stops
// answering pings.
type ConnectionPool struct {
	pools map[string]*sql.DB
	mutex sync.RWMutex
}

// ConnectionStats describes one pooled handle.
type ConnectionStats struct {
	Label      string `json:"label"`
	OpenConns  int    `json:"open_connections"`
	InUse      int    `json:"in_use"`
	Idle       int    `json:"idle"`
	MaxOpen    int    `json:"max_open_connections"`
	WaitCount  int64  `json:"wait_count"`
	WaitTimeMS int64  `json:"wait_time_ms"`
}

// NewConnectionPool creates an empty pool.
func NewConnectionPool() *ConnectionPool {
	return &ConnectionPool{
		pools: make(map[string]*sql.DB),
	}
}

// GetConnection returns the pooled handle for the data source, creating it
// if absent or replacing it if dead.
func (cp *ConnectionPool) GetConnection(ctx context.Context, dataSource *model.DataSource) (*sql.DB, error) {
	cp.mutex.RLock()
	db, exists := cp.pools[dataSource.Label]
	cp.mutex.RUnlock()

	if exists {
		if err := db.PingContext(ctx); err == nil {
			return db, nil
		}
		cp.removeConnection(dataSource.Label)
	}

	return cp.createConnection(ctx, dataSource)
}

func (cp *ConnectionPool) createConnection(ctx context.Context, dataSource *model.DataSource) (*sql.DB, error) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	// Another request may have raced us here.
	if db, exists := cp.pools[dataSource.Label]; exists {
		if err := db.PingContext(ctx); err == nil {
			return db, nil
		}
		db.Close()
		delete(cp.pools, dataSource.Label)
	}

	driver, err := GetDriverRegistry().GetDriver(dataSource.Type)
	if err != nil {
		return nil, err
	}

	dsn := driver.BuildDSN(&dataSource.Config)
	if err := driver.ValidateDSN(dsn); err != nil {
		return nil, fmt.Errorf("invalid connection configuration for %q: %w", dataSource.Label, err)
	}

	db, err := driver.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection for %q: %w", dataSource.Label, err)
	}

	configurePool(db, &dataSource.Config)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %q: %w", dataSource.Label, err)
	}

	cp.pools[dataSource.Label] = db
	return db, nil
}

func configurePool(db *sql.DB, config *model.DataSourceConfig) {
	maxOpen := config.MaxPoolSize
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)

	maxIdle := maxOpen / 2
	if maxIdle < 2 {
		maxIdle = 2
	}
	db.SetMaxIdleConns(maxIdle)

	maxLifetime := time.Duration(config.MaxLifetime) * time.Second
	if maxLifetime <= 0 {
		maxLifetime = 30 * time.Minute
	}
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(5 * time.Minute)
}

func (cp *ConnectionPool) removeConnection(label string) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	if db, exists := cp.pools[label]; exists {
		db.Close()
		delete(cp.pools, label)
	}
}

// CloseConnection closes and evicts one handle.
func (cp *ConnectionPool) CloseConnection(label string) error {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	db, exists := cp.pools[label]
	if !exists {
		return nil
	}
	err := db.Close()
	delete(cp.pools, label)
	return err
}

// CloseAll closes every pooled handle. Used on shutdown.
func (cp *ConnectionPool) CloseAll() {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	for label, db := range cp.pools {
		db.Close()
		delete(cp.pools, label)
	}
}

// GetStats snapshots pool statistics for every open handle.
func (cp *ConnectionPool) GetStats() map[string]ConnectionStats {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	stats := make(map[string]ConnectionStats, len(cp.pools))
	for label, db := range cp.pools {
		s := db.Stats()
		stats[label] = ConnectionStats{
			Label:      label,
			OpenConns:  s.OpenConnections,
			InUse:      s.InUse,
			Idle:       s.Idle,
			MaxOpen:    s.MaxOpenConnections,
			WaitCount:  s.WaitCount,
			WaitTimeMS: s.WaitDuration.Milliseconds(),
		}
	}
	return stats
}
