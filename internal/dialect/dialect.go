package dialect

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrUnsupportedDialect = errors.New("unsupported dialect")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrInvalidPagination  = errors.New("pagination bounds must be non-negative")
	ErrUnknownTemplate    = errors.New("unknown query template")
)

// PaginationStrategy describes how a dialect expresses row windows.
type PaginationStrategy int

const (
	// TrailingLimitOffset appends "LIMIT n OFFSET m".
	TrailingLimitOffset PaginationStrategy = iota
	// OffsetFetchNext appends "OFFSET m ROWS FETCH NEXT n ROWS ONLY"
	// (requires the template to carry an ORDER BY).
	OffsetFetchNext
)

// identifierPattern is the sole SQL-injection defense for caller-supplied
// table and schema names. Everything outside it is rejected before any
// rendering happens: quotes, semicolons, whitespace, dashes, dots. The $ is
// admitted mid-identifier for Snowflake names like V$SESSION_METRICS.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]{0,127}$`)

// ValidateIdentifier checks a table or schema name against the allow-list.
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}
