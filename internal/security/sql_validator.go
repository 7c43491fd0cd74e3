package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"vitess.io/vitess/go/vt/sqlparser"
)

var (
	ErrEmptyQuery       = errors.New("query cannot be empty")
	ErrQueryTooLong     = errors.New("query exceeds maximum length")
	ErrSQLSyntaxError   = errors.New("SQL syntax error")
	ErrNotSelectQuery   = errors.New("only SELECT queries are allowed")
	ErrDangerousKeyword = errors.New("dangerous SQL keyword detected")
	ErrSQLInjection     = errors.New("potential SQL injection detected")
)

// dangerousKeywords never belong in a read-only statement, regardless of
// what the parser accepted.
var dangerousKeywords = []string{
	"DROP", "DELETE", "UPDATE", "INSERT", "CREATE", "ALTER",
	"TRUNCATE", "REPLACE", "MERGE", "GRANT", "REVOKE",
	"COMMIT", "ROLLBACK", "SAVEPOINT", "RELEASE",
	"LOAD_FILE", "INTO OUTFILE", "INTO DUMPFILE",
	"EXEC", "EXECUTE", "CALL",
}

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`;\s*\S`),                // second statement after a semicolon
	regexp.MustCompile(`\bor\s+1\s*=\s*1\b`),    // tautology
	regexp.MustCompile(`\band\s+1\s*=\s*1\b`),   // tautology
	regexp.MustCompile(`\bor\s+true\b`),
	regexp.MustCompile(`waitfor\s+delay`),
	regexp.MustCompile(`\bexec\s*\(`),
	regexp.MustCompile(`\bexecute\s*\(`),
}

// SQLValidator gates ad-hoc statements before they reach any driver. A
// statement must parse, must be a SELECT or UNION, and must not carry
// mutation keywords or injection-shaped noise.
type SQLValidator struct {
	maxQueryLength int
}

// NewSQLValidator creates a validator; maxQueryLength <= 0 selects the
// default of 10000 bytes.
func NewSQLValidator(maxQueryLength int) *SQLValidator {
	if maxQueryLength <= 0 {
		maxQueryLength = 10000
	}
	return &SQLValidator{maxQueryLength: maxQueryLength}
}

// ValidateStatement checks that sql is a safe read-only statement.
func (sv *SQLValidator) ValidateStatement(sql string) error {
	normalized := normalizeSQL(sql)

	if normalized == "" {
		return ErrEmptyQuery
	}
	if len(normalized) > sv.maxQueryLength {
		return ErrQueryTooLong
	}
	// Comments can hide a second statement from the keyword scan.
	if strings.Contains(normalized, "--") || strings.Contains(normalized, "/*") {
		return ErrSQLInjection
	}

	stmt, err := parseSQL(normalized)
	if err != nil {
		return ErrSQLSyntaxError
	}
	if !isSelect(stmt) {
		return ErrNotSelectQuery
	}

	if err := checkKeywords(normalized); err != nil {
		return err
	}
	return checkInjection(normalized)
}

// IsReadOnly reports whether sql parses as a SELECT or UNION.
func (sv *SQLValidator) IsReadOnly(sql string) (bool, error) {
	stmt, err := parseSQL(normalizeSQL(sql))
	if err != nil {
		return false, ErrSQLSyntaxError
	}
	return isSelect(stmt), nil
}

func parseSQL(sql string) (sqlparser.Statement, error) {
	parser := sqlparser.NewTestParser()
	return parser.Parse(sql)
}

func isSelect(stmt sqlparser.Statement) bool {
	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union:
		return true
	default:
		return false
	}
}

func checkKeywords(sql string) error {
	upper := strings.ToUpper(sql)
	for _, keyword := range dangerousKeywords {
		matched, _ := regexp.MatchString(`\b`+keyword+`\b`, upper)
		if matched {
			return ErrDangerousKeyword
		}
	}
	return nil
}

func checkInjection(sql string) error {
	lower := strings.ToLower(sql)
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(lower) {
			return ErrSQLInjection
		}
	}

	nonPrintable := 0
	for _, r := range sql {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
			if nonPrintable > 5 {
				return ErrSQLInjection
			}
		}
	}
	return nil
}

func normalizeSQL(sql string) string {
	sql = strings.TrimSpace(sql)
	sql = strings.TrimSuffix(sql, ";")
	return strings.TrimSpace(sql)
}
