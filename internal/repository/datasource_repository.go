package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"catalog-gateway/internal/model"
)

// DataSourceRepository resolves configured data sources. Sources are defined
// in the configuration file; only their status changes at runtime.
type DataSourceRepository interface {
	// GetByLabel retrieves a data source by its label, case-insensitively.
	GetByLabel(ctx context.Context, label string) (*model.DataSource, error)

	// GetAll retrieves all data sources ordered by label.
	GetAll(ctx context.Context) ([]*model.DataSource, error)

	// SetStatus records the last observed status of a data source.
	SetStatus(ctx context.Context, label string, status model.DataSourceStatus) error

	// Count returns the number of configured data sources.
	Count(ctx context.Context) int
}

type configDataSourceRepository struct {
	sources map[string]*model.DataSource
	mutex   sync.RWMutex
}

// NewDataSourceRepository builds a repository over config-defined sources,
// keyed by lowercase label.
func NewDataSourceRepository(sources map[string]*model.DataSource) DataSourceRepository {
	return &configDataSourceRepository{sources: sources}
}

func (r *configDataSourceRepository) GetByLabel(ctx context.Context, label string) (*model.DataSource, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ds, ok := r.sources[strings.ToLower(label)]
	if !ok {
		return nil, ErrDataSourceNotFound
	}
	return ds, nil
}

func (r *configDataSourceRepository) GetAll(ctx context.Context) ([]*model.DataSource, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]*model.DataSource, 0, len(r.sources))
	for _, ds := range r.sources {
		all = append(all, ds)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Label < all[j].Label })
	return all, nil
}

func (r *configDataSourceRepository) SetStatus(ctx context.Context, label string, status model.DataSourceStatus) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ds, ok := r.sources[strings.ToLower(label)]
	if !ok {
		return ErrDataSourceNotFound
	}
	ds.Status = status
	return nil
}

func (r *configDataSourceRepository) Count(ctx context.Context) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sources)
}
