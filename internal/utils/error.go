package utils

import (
	"fmt"
	"net/http"
)

// Error codes with HTTP status mapping
const (
	// General errors
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"

	// Catalog errors
	ErrCodeInvalidPagination  = "INVALID_PAGINATION"
	ErrCodeInvalidIdentifier  = "INVALID_IDENTIFIER"
	ErrCodeUnsupportedDialect = "UNSUPPORTED_DIALECT"
	ErrCodeTableNotFound      = "TABLE_NOT_FOUND"

	// Database errors
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeQueryFailed      = "QUERY_FAILED"
	ErrCodeSQLSyntaxError   = "SQL_SYNTAX_ERROR"
	ErrCodeSQLInjection     = "SQL_INJECTION_DETECTED"
	ErrCodeQueryTimeout     = "QUERY_TIMEOUT"

	// Data source errors
	ErrCodeDataSourceNotFound = "DATASOURCE_NOT_FOUND"
	ErrCodeInvalidDataSource  = "INVALID_DATASOURCE"
)

// HTTPStatus maps error codes to HTTP status codes
var HTTPStatus = map[string]int{
	ErrCodeInvalidRequest:     http.StatusBadRequest,
	ErrCodeValidationFailed:   http.StatusUnprocessableEntity,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeRateLimitExceeded:  http.StatusTooManyRequests,

	ErrCodeInvalidPagination:  http.StatusBadRequest,
	ErrCodeInvalidIdentifier:  http.StatusBadRequest,
	ErrCodeUnsupportedDialect: http.StatusBadRequest,
	ErrCodeTableNotFound:      http.StatusNotFound,

	ErrCodeDatabaseError:    http.StatusInternalServerError,
	ErrCodeConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeQueryFailed:      http.StatusInternalServerError,
	ErrCodeSQLSyntaxError:   http.StatusBadRequest,
	ErrCodeSQLInjection:     http.StatusForbidden,
	ErrCodeQueryTimeout:     http.StatusRequestTimeout,

	ErrCodeDataSourceNotFound: http.StatusNotFound,
	ErrCodeInvalidDataSource:  http.StatusBadRequest,
}

// AppError represents an application error with additional context
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for creating errors
type ErrorBuilder struct {
	code    string
	message string
	details string
	cause   error
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder(code string) *ErrorBuilder {
	return &ErrorBuilder{code: code}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithDetails sets the error details
func (eb *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	eb.details = details
	return eb
}

// WithCause sets the underlying error cause
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Build constructs the final AppError
func (eb *ErrorBuilder) Build() *AppError {
	if eb.message == "" {
		eb.message = getDefaultMessage(eb.code)
	}

	return &AppError{
		Code:    eb.code,
		Message: eb.message,
		Details: eb.details,
		Cause:   eb.cause,
	}
}

// getDefaultMessage returns a default message for error codes
func getDefaultMessage(code string) string {
	messages := map[string]string{
		ErrCodeInvalidRequest:     "The request is invalid",
		ErrCodeValidationFailed:   "Validation failed",
		ErrCodeNotFound:           "Resource not found",
		ErrCodeInternalError:      "Internal server error",
		ErrCodeServiceUnavailable: "Service temporarily unavailable",
		ErrCodeRateLimitExceeded:  "Rate limit exceeded",

		ErrCodeInvalidPagination:  "Page and limit must be positive",
		ErrCodeInvalidIdentifier:  "Identifier contains disallowed characters",
		ErrCodeUnsupportedDialect: "Database dialect is not supported",
		ErrCodeTableNotFound:      "Table not found",

		ErrCodeDatabaseError:    "Database error",
		ErrCodeConnectionFailed: "Database connection failed",
		ErrCodeQueryFailed:      "Query execution failed",
		ErrCodeSQLSyntaxError:   "SQL syntax error",
		ErrCodeSQLInjection:     "Potential SQL injection detected",
		ErrCodeQueryTimeout:     "Query timeout",

		ErrCodeDataSourceNotFound: "Data source not found",
		ErrCodeInvalidDataSource:  "Invalid data source configuration",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// NewDatabaseError wraps a driver-level failure
func NewDatabaseError(cause error, details string) *AppError {
	return NewErrorBuilder(ErrCodeDatabaseError).
		WithCause(cause).
		WithDetails(details).
		Build()
}

// NewValidationError reports a request validation failure
func NewValidationError(message string, details string) *AppError {
	return NewErrorBuilder(ErrCodeValidationFailed).
		WithMessage(message).
		WithDetails(details).
		Build()
}

// IsErrorType checks if an error matches a specific error code
func IsErrorType(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	if appErr, ok := err.(*AppError); ok {
		if status, exists := HTTPStatus[appErr.Code]; exists {
			return status
		}
	}
	return http.StatusInternalServerError
}
