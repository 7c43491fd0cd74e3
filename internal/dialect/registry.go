package dialect

import (
	"fmt"

	"catalog-gateway/internal/model"
)

// Registry maps dialect identifiers to their immutable template sets. It is
// built once at process start and is safe for concurrent readers without
// locking; nothing mutates it afterwards.
type Registry struct {
	sets map[model.DatabaseType]*TemplateSet
}

// NewRegistry builds the registry with every supported dialect.
func NewRegistry() *Registry {
	return &Registry{
		sets: map[model.DatabaseType]*TemplateSet{
			model.DatabaseTypePostgreSQL: postgresTemplateSet(),
			model.DatabaseTypeMySQL:      mysqlTemplateSet(),
			model.DatabaseTypeSQLite:     sqliteTemplateSet(),
			model.DatabaseTypeSQLServer:  sqlserverTemplateSet(),
			model.DatabaseTypeSnowflake:  snowflakeTemplateSet(),
		},
	}
}

// Resolve returns the template set for a dialect.
func (r *Registry) Resolve(dbType model.DatabaseType) (*TemplateSet, error) {
	ts, ok := r.sets[dbType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dbType)
	}
	return ts, nil
}

// SupportedDialects lists every registered dialect.
func (r *Registry) SupportedDialects() []model.DatabaseType {
	types := make([]model.DatabaseType, 0, len(r.sets))
	for _, t := range model.SupportedTypes {
		if _, ok := r.sets[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// IsSupported checks whether a dialect is registered.
func (r *Registry) IsSupported(dbType model.DatabaseType) bool {
	_, ok := r.sets[dbType]
	return ok
}
