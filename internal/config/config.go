package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"catalog-gateway/internal/model"
)

type Config struct {
	Server      ServerConfig                `mapstructure:"server"`
	Catalog     CatalogConfig               `mapstructure:"catalog"`
	Security    SecurityConfig              `mapstructure:"security"`
	Logging     LoggingConfig               `mapstructure:"logging"`
	DataSources map[string]DataSourceConfig `mapstructure:"datasources"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	Host string `mapstructure:"host"`
}

// CatalogConfig bounds result sizes and timeouts for catalog operations.
type CatalogConfig struct {
	// MaxRowsTableList caps the limit on paginated table listings.
	MaxRowsTableList int `mapstructure:"max_rows_table_list"`
	// MaxRowsDescribe caps the limit on paginated table descriptions.
	MaxRowsDescribe int `mapstructure:"max_rows_describe"`
	// MaxRowsQuery caps rows returned by ad-hoc queries and samples.
	MaxRowsQuery int `mapstructure:"max_rows_query"`
	// DefaultSampleSize is the row count for sample_table when unspecified.
	DefaultSampleSize int `mapstructure:"default_sample_size"`
	// QueryTimeoutSeconds bounds every catalog query.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds"`
}

type SecurityConfig struct {
	RateLimitPerMinute int  `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int  `mapstructure:"rate_limit_burst"`
	EnableRateLimit    bool `mapstructure:"enable_rate_limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataSourceConfig is one datasources entry in the config file. The map key
// is the data source label.
type DataSourceConfig struct {
	Type        string                 `mapstructure:"type"`
	Description string                 `mapstructure:"description"`
	Config      model.DataSourceConfig `mapstructure:"config"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	for label, ds := range c.DataSources {
		dbType := model.DatabaseType(ds.Type)
		if !model.IsSupported(dbType) {
			return fmt.Errorf("datasource %q: unsupported type %q", label, ds.Type)
		}
		cfg := ds.Config
		if err := cfg.Validate(dbType); err != nil {
			return fmt.Errorf("datasource %q: %w", label, err)
		}
	}
	return nil
}

// BuildDataSources converts the config entries to model data sources keyed
// by lowercase label.
func (c *Config) BuildDataSources() map[string]*model.DataSource {
	sources := make(map[string]*model.DataSource, len(c.DataSources))
	for label, ds := range c.DataSources {
		sources[strings.ToLower(label)] = &model.DataSource{
			Label:       label,
			Type:        model.DatabaseType(ds.Type),
			Description: ds.Description,
			Config:      ds.Config,
			Status:      model.DataSourceStatusActive,
		}
	}
	return sources
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("catalog.max_rows_table_list", 500)
	viper.SetDefault("catalog.max_rows_describe", 250)
	viper.SetDefault("catalog.max_rows_query", 1000)
	viper.SetDefault("catalog.default_sample_size", 10)
	viper.SetDefault("catalog.query_timeout_seconds", 30)

	viper.SetDefault("security.rate_limit_per_minute", 60)
	viper.SetDefault("security.rate_limit_burst", 10)
	viper.SetDefault("security.enable_rate_limit", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
