package model

import (
	"fmt"
	"net/url"
	"strings"
)

type DatabaseType string

const (
	DatabaseTypePostgreSQL DatabaseType = "postgresql"
	DatabaseTypeMySQL      DatabaseType = "mysql"
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypeSQLServer  DatabaseType = "sqlserver"
	DatabaseTypeSnowflake  DatabaseType = "snowflake"
)

// SupportedTypes lists every database type the gateway can serve.
var SupportedTypes = []DatabaseType{
	DatabaseTypePostgreSQL,
	DatabaseTypeMySQL,
	DatabaseTypeSQLite,
	DatabaseTypeSQLServer,
	DatabaseTypeSnowflake,
}

// IsSupported reports whether dbType is one of the supported dialects.
func IsSupported(dbType DatabaseType) bool {
	for _, t := range SupportedTypes {
		if t == dbType {
			return true
		}
	}
	return false
}

type DataSourceStatus string

const (
	DataSourceStatusActive DataSourceStatus = "active"
	DataSourceStatusError  DataSourceStatus = "error"
)

// DataSource is a configured, labeled database the gateway can introspect.
// Labels come from the configuration file and are unique (case-insensitive).
type DataSource struct {
	Label       string           `json:"label"`
	Type        DatabaseType     `json:"type"`
	Description string           `json:"description,omitempty"`
	Config      DataSourceConfig `json:"config"`
	Status      DataSourceStatus `json:"status"`
}

// DataSourceConfig holds the connection configuration for a data source.
// Either ConnectionString is set, or the individual fields are.
type DataSourceConfig struct {
	ConnectionString string `json:"connectionString,omitempty" mapstructure:"connection_string"`

	Host     string `json:"host,omitempty" mapstructure:"host"`
	Port     int    `json:"port,omitempty" mapstructure:"port"`
	Database string `json:"database,omitempty" mapstructure:"database"`
	Username string `json:"username,omitempty" mapstructure:"username"`
	Password string `json:"-" mapstructure:"password"`
	// Account is the Snowflake account identifier.
	Account string `json:"account,omitempty" mapstructure:"account"`
	SSL     bool   `json:"ssl" mapstructure:"ssl"`

	Timeout     int `json:"timeout,omitempty" mapstructure:"timeout"`           // connection timeout, seconds
	MaxPoolSize int `json:"maxPoolSize,omitempty" mapstructure:"max_pool_size"` // default 10
	MaxLifetime int `json:"maxLifetime,omitempty" mapstructure:"max_lifetime"`  // seconds, default 1800

	ExtraParams map[string]string `json:"extraParams,omitempty" mapstructure:"extra_params"`
}

// Validate checks that the configuration is complete for the given type.
func (c *DataSourceConfig) Validate(dbType DatabaseType) error {
	if !IsSupported(dbType) {
		return fmt.Errorf("unsupported database type: %s", dbType)
	}
	if c.ConnectionString != "" {
		return nil
	}
	if c.Database == "" {
		return fmt.Errorf("database field is required")
	}
	// SQLite needs only a file path (or :memory:) in Database.
	if dbType == DatabaseTypeSQLite {
		return nil
	}
	if dbType == DatabaseTypeSnowflake {
		if c.Account == "" || c.Username == "" {
			return fmt.Errorf("snowflake requires account and username")
		}
		return nil
	}
	if c.Host == "" || c.Username == "" {
		return fmt.Errorf("either connection_string or host/database/username must be provided")
	}
	return nil
}

// extraQuery renders ExtraParams as a URL query suffix.
func (c *DataSourceConfig) extraQuery(initial url.Values) string {
	if initial == nil {
		initial = url.Values{}
	}
	for k, v := range c.ExtraParams {
		initial.Set(k, v)
	}
	if len(initial) == 0 {
		return ""
	}
	return "?" + initial.Encode()
}

// ConnectionURL builds the driver DSN for the data source.
func (c *DataSourceConfig) ConnectionURL(dbType DatabaseType) string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}

	switch dbType {
	case DatabaseTypePostgreSQL:
		sslMode := "disable"
		if c.SSL {
			sslMode = "require"
		}
		v := url.Values{}
		v.Set("sslmode", sslMode)
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s%s",
			url.QueryEscape(c.Username), url.QueryEscape(c.Password),
			c.Host, c.portOr(5432), c.Database, c.extraQuery(v))

	case DatabaseTypeMySQL:
		params := []string{"parseTime=true"}
		if c.SSL {
			params = append(params, "tls=true")
		}
		for k, v := range c.ExtraParams {
			params = append(params, k+"="+v)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			c.Username, c.Password, c.Host, c.portOr(3306), c.Database,
			strings.Join(params, "&"))

	case DatabaseTypeSQLite:
		if c.Database == ":memory:" {
			return ":memory:"
		}
		return c.Database

	case DatabaseTypeSQLServer:
		encrypt := "disable"
		if c.SSL {
			encrypt = "true"
		}
		v := url.Values{}
		v.Set("database", c.Database)
		v.Set("encrypt", encrypt)
		return fmt.Sprintf("sqlserver://%s:%s@%s:%d%s",
			url.QueryEscape(c.Username), url.QueryEscape(c.Password),
			c.Host, c.portOr(1433), c.extraQuery(v))

	case DatabaseTypeSnowflake:
		// gosnowflake DSN: user:password@account/database/schema?params
		return fmt.Sprintf("%s:%s@%s/%s%s",
			c.Username, url.QueryEscape(c.Password), c.Account, c.Database,
			c.extraQuery(nil))
	}

	return ""
}

func (c *DataSourceConfig) portOr(def int) int {
	if c.Port > 0 {
		return c.Port
	}
	return def
}
