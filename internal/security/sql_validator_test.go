package security

import (
	"errors"
	"testing"
)

func TestValidateStatementAcceptsReadOnlyQueries(t *testing.T) {
	sv := NewSQLValidator(0)
	queries := []string{
		"SELECT * FROM users",
		"SELECT id, name FROM users WHERE id = 42",
		"select count(*) from orders group by status",
		"SELECT id FROM a UNION SELECT id FROM b",
		"SELECT * FROM users ORDER BY name LIMIT 10;",
	}
	for _, q := range queries {
		if err := sv.ValidateStatement(q); err != nil {
			t.Errorf("ValidateStatement(%q) = %v, want nil", q, err)
		}
	}
}

func TestValidateStatementRejectsEmptyQuery(t *testing.T) {
	sv := NewSQLValidator(0)
	for _, q := range []string{"", "   ", " ; "} {
		if err := sv.ValidateStatement(q); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("ValidateStatement(%q) = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestValidateStatementRejectsOverlongQuery(t *testing.T) {
	sv := NewSQLValidator(20)
	err := sv.ValidateStatement("SELECT name FROM a_rather_long_table_name")
	if !errors.Is(err, ErrQueryTooLong) {
		t.Errorf("err = %v, want ErrQueryTooLong", err)
	}
}

func TestValidateStatementRejectsMutations(t *testing.T) {
	sv := NewSQLValidator(0)
	queries := []string{
		"DELETE FROM users",
		"UPDATE users SET name = 'x'",
		"INSERT INTO users (id) VALUES (1)",
		"DROP TABLE users",
	}
	for _, q := range queries {
		if err := sv.ValidateStatement(q); !errors.Is(err, ErrNotSelectQuery) {
			t.Errorf("ValidateStatement(%q) = %v, want ErrNotSelectQuery", q, err)
		}
	}
}

func TestValidateStatementRejectsDangerousFunctions(t *testing.T) {
	sv := NewSQLValidator(0)
	err := sv.ValidateStatement("SELECT load_file('/etc/passwd')")
	if !errors.Is(err, ErrDangerousKeyword) {
		t.Errorf("err = %v, want ErrDangerousKeyword", err)
	}
}

func TestValidateStatementRejectsComments(t *testing.T) {
	sv := NewSQLValidator(0)
	queries := []string{
		"SELECT * FROM users -- WHERE active",
		"SELECT /* hidden */ * FROM users",
	}
	for _, q := range queries {
		if err := sv.ValidateStatement(q); !errors.Is(err, ErrSQLInjection) {
			t.Errorf("ValidateStatement(%q) = %v, want ErrSQLInjection", q, err)
		}
	}
}

func TestValidateStatementRejectsTautologies(t *testing.T) {
	sv := NewSQLValidator(0)
	err := sv.ValidateStatement("SELECT * FROM users WHERE name = 'a' OR 1=1")
	if !errors.Is(err, ErrSQLInjection) {
		t.Errorf("err = %v, want ErrSQLInjection", err)
	}
}

func TestValidateStatementRejectsGibberish(t *testing.T) {
	sv := NewSQLValidator(0)
	err := sv.ValidateStatement("this is not a query")
	if !errors.Is(err, ErrSQLSyntaxError) {
		t.Errorf("err = %v, want ErrSQLSyntaxError", err)
	}
}

func TestIsReadOnly(t *testing.T) {
	sv := NewSQLValidator(0)

	ro, err := sv.IsReadOnly("SELECT 1 FROM dual")
	if err != nil || !ro {
		t.Errorf("IsReadOnly(select) = %v, %v, want true", ro, err)
	}
	ro, err = sv.IsReadOnly("DELETE FROM users")
	if err != nil || ro {
		t.Errorf("IsReadOnly(delete) = %v, %v, want false", ro, err)
	}
}
