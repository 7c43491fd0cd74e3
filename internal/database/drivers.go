package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/snowflakedb/gosnowflake"

	"catalog-gateway/internal/model"
)

// Driver adapts one SQL engine: it knows its registered database/sql driver
// name, builds and validates DSNs, and opens connections. Catalog semantics
// live in the dialect package; drivers only deal with transport.
type Driver interface {
	// Open opens a database handle for the given DSN.
	Open(dsn string) (*sql.DB, error)

	// ValidateDSN rejects obviously malformed connection strings before
	// any dial attempt.
	ValidateDSN(dsn string) error

	// BuildDSN renders the connection string from structured configuration.
	BuildDSN(config *model.DataSourceConfig) string

	// DefaultPort returns the engine's conventional port, zero when the
	// engine is not network addressed.
	DefaultPort() int

	// DriverName returns the database/sql driver registration name.
	DriverName() string

	// TestConnection verifies the handle can reach the server.
	TestConnection(ctx context.Context, db *sql.DB) error
}

type baseDriver struct {
	dbType     model.DatabaseType
	driverName string
	port       int
}

func (d *baseDriver) Open(dsn string) (*sql.DB, error) {
	return sql.Open(d.driverName, dsn)
}

func (d *baseDriver) ValidateDSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("DSN cannot be empty")
	}
	return nil
}

func (d *baseDriver) BuildDSN(config *model.DataSourceConfig) string {
	return config.ConnectionURL(d.dbType)
}

func (d *baseDriver) DefaultPort() int {
	return d.port
}

func (d *baseDriver) DriverName() string {
	return d.driverName
}

func (d *baseDriver) TestConnection(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// PostgreSQLDriver connects through lib/pq.
type PostgreSQLDriver struct{ baseDriver }

func NewPostgreSQLDriver() *PostgreSQLDriver {
	return &PostgreSQLDriver{baseDriver{model.DatabaseTypePostgreSQL, "postgres", 5432}}
}

func (d *PostgreSQLDriver) ValidateDSN(dsn string) error {
	if err := d.baseDriver.ValidateDSN(dsn); err != nil {
		return err
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") && !strings.Contains(dsn, "=") {
		return fmt.Errorf("not a postgres DSN")
	}
	return nil
}

// MySQLDriver connects through go-sql-driver/mysql.
type MySQLDriver struct{ baseDriver }

func NewMySQLDriver() *MySQLDriver {
	return &MySQLDriver{baseDriver{model.DatabaseTypeMySQL, "mysql", 3306}}
}

// SQLiteDriver connects through mattn/go-sqlite3. The DSN is a file path
// or ":memory:".
type SQLiteDriver struct{ baseDriver }

func NewSQLiteDriver() *SQLiteDriver {
	return &SQLiteDriver{baseDriver{model.DatabaseTypeSQLite, "sqlite3", 0}}
}

// SQLServerDriver connects through microsoft/go-mssqldb.
type SQLServerDriver struct{ baseDriver }

func NewSQLServerDriver() *SQLServerDriver {
	return &SQLServerDriver{baseDriver{model.DatabaseTypeSQLServer, "sqlserver", 1433}}
}

func (d *SQLServerDriver) ValidateDSN(dsn string) error {
	if err := d.baseDriver.ValidateDSN(dsn); err != nil {
		return err
	}
	if !strings.HasPrefix(dsn, "sqlserver://") && !strings.Contains(dsn, ";") {
		return fmt.Errorf("not a sqlserver DSN")
	}
	return nil
}

// SnowflakeDriver connects through snowflakedb/gosnowflake.
type SnowflakeDriver struct{ baseDriver }

func NewSnowflakeDriver() *SnowflakeDriver {
	return &SnowflakeDriver{baseDriver{model.DatabaseTypeSnowflake, "snowflake", 443}}
}
