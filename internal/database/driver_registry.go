package database

import (
	"errors"
	"fmt"
	"sync"

	"catalog-gateway/internal/model"
)

// ErrUnsupportedDriver is returned when no driver is registered for a
// database type.
var ErrUnsupportedDriver = errors.New("no driver registered for database type")

// DriverRegistry maps database types to driver factories.
type DriverRegistry struct {
	drivers map[model.DatabaseType]func() Driver
	mutex   sync.RWMutex
}

// NewDriverRegistry creates a registry with every supported engine
// registered.
func NewDriverRegistry() *DriverRegistry {
	registry := &DriverRegistry{
		drivers: make(map[model.DatabaseType]func() Driver),
	}
	registry.registerDrivers()
	return registry
}

func (dr *DriverRegistry) registerDrivers() {
	dr.mutex.Lock()
	defer dr.mutex.Unlock()

	dr.drivers[model.DatabaseTypePostgreSQL] = func() Driver { return NewPostgreSQLDriver() }
	dr.drivers[model.DatabaseTypeMySQL] = func() Driver { return NewMySQLDriver() }
	dr.drivers[model.DatabaseTypeSQLite] = func() Driver { return NewSQLiteDriver() }
	dr.drivers[model.DatabaseTypeSQLServer] = func() Driver { return NewSQLServerDriver() }
	dr.drivers[model.DatabaseTypeSnowflake] = func() Driver { return NewSnowflakeDriver() }
}

// GetDriver returns a driver instance for the database type.
func (dr *DriverRegistry) GetDriver(dbType model.DatabaseType) (Driver, error) {
	dr.mutex.RLock()
	factory, exists := dr.drivers[dbType]
	dr.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, dbType)
	}
	return factory(), nil
}

// IsSupported reports whether a driver exists for the database type.
func (dr *DriverRegistry) IsSupported(dbType model.DatabaseType) bool {
	dr.mutex.RLock()
	defer dr.mutex.RUnlock()
	_, exists := dr.drivers[dbType]
	return exists
}

// SupportedTypes lists registered database types in canonical order.
func (dr *DriverRegistry) SupportedTypes() []model.DatabaseType {
	dr.mutex.RLock()
	defer dr.mutex.RUnlock()

	types := make([]model.DatabaseType, 0, len(dr.drivers))
	for _, t := range model.SupportedTypes {
		if _, ok := dr.drivers[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

var (
	defaultRegistry     *DriverRegistry
	defaultRegistryOnce sync.Once
)

// GetDriverRegistry returns the process-wide registry.
func GetDriverRegistry() *DriverRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDriverRegistry()
	})
	return defaultRegistry
}
