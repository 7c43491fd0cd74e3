package database

import (
	"errors"
	"strings"
	"testing"

	"catalog-gateway/internal/model"
)

func TestDriverRegistryCoversSupportedTypes(t *testing.T) {
	reg := GetDriverRegistry()
	for _, dbType := range model.SupportedTypes {
		if !reg.IsSupported(dbType) {
			t.Errorf("IsSupported(%s) = false", dbType)
			continue
		}
		driver, err := reg.GetDriver(dbType)
		if err != nil {
			t.Errorf("GetDriver(%s) = %v", dbType, err)
			continue
		}
		if driver.DriverName() == "" {
			t.Errorf("%s: empty driver name", dbType)
		}
	}
	if len(reg.SupportedTypes()) != len(model.SupportedTypes) {
		t.Errorf("SupportedTypes() = %v", reg.SupportedTypes())
	}
}

func TestDriverRegistryRejectsUnknownType(t *testing.T) {
	reg := GetDriverRegistry()
	if _, err := reg.GetDriver(model.DatabaseType("oracle")); !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("GetDriver(oracle) = %v, want ErrUnsupportedDriver", err)
	}
}

func TestDriverDefaults(t *testing.T) {
	cases := []struct {
		dbType model.DatabaseType
		name   string
		port   int
	}{
		{model.DatabaseTypePostgreSQL, "postgres", 5432},
		{model.DatabaseTypeMySQL, "mysql", 3306},
		{model.DatabaseTypeSQLite, "sqlite3", 0},
		{model.DatabaseTypeSQLServer, "sqlserver", 1433},
		{model.DatabaseTypeSnowflake, "snowflake", 443},
	}
	reg := GetDriverRegistry()
	for _, c := range cases {
		driver, err := reg.GetDriver(c.dbType)
		if err != nil {
			t.Fatalf("%s: %v", c.dbType, err)
		}
		if driver.DriverName() != c.name {
			t.Errorf("%s: driver name = %s, want %s", c.dbType, driver.DriverName(), c.name)
		}
		if driver.DefaultPort() != c.port {
			t.Errorf("%s: port = %d, want %d", c.dbType, driver.DefaultPort(), c.port)
		}
	}
}

func TestBuildDSN(t *testing.T) {
	driver := NewPostgreSQLDriver()
	cfg := &model.DataSourceConfig{Host: "db", Database: "app", Username: "u", Password: "p"}
	dsn := driver.BuildDSN(cfg)
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("unexpected DSN: %s", dsn)
	}
	if err := driver.ValidateDSN(dsn); err != nil {
		t.Errorf("ValidateDSN(%s) = %v", dsn, err)
	}
}

func TestValidateDSNRejectsMalformed(t *testing.T) {
	pg := NewPostgreSQLDriver()
	if err := pg.ValidateDSN(""); err == nil {
		t.Error("empty DSN accepted")
	}
	if err := pg.ValidateDSN("mysql://nope"); err == nil {
		t.Error("foreign DSN accepted")
	}

	ms := NewSQLServerDriver()
	if err := ms.ValidateDSN("just-a-host"); err == nil {
		t.Error("malformed sqlserver DSN accepted")
	}
	if err := ms.ValidateDSN("sqlserver://u:p@db:1433?database=app"); err != nil {
		t.Errorf("valid sqlserver DSN rejected: %v", err)
	}
}
