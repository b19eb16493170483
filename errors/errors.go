package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	STAGE_BEFORE_REQUEST = "before-request"
	STAGE_REQUEST        = "request"
	STAGE_AFTER_REQUEST  = "after-request"

	TYPE_UNKNOWN      = "unknown"
	TYPE_JSON_PARSE   = "json"
	TYPE_REQUEST_PREP = "request-prep"
	TYPE_IO           = "io"
	TYPE_HTTP_STATUS  = "not-ok-http-status"
	TYPE_RATE_LIMIT   = "rate-limit"
)

var (
	// ErrInvalidInput matches every *ValidationError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownOperation is returned when an operation name is
	// not part of the catalog.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ApiError describes a failed call to the Drip API.
// Message holds the human-readable text assembled from the response body
// (see parsers.ErrorMessageFromBody); it is what Error() returns for
// non-2xx responses.
type ApiError struct {
	Stage          string
	Type           string
	SourceErr      error
	Body           []byte
	HttpStatusCode int
	Message        string
}

var _ error = &ApiError{}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.SourceErr != nil {
		return fmt.Sprintf(
			"Drip API request failed during '%s' stage (%s): %v",
			e.Stage, e.Type, e.SourceErr,
		)
	}
	return fmt.Sprintf(
		"Drip API request failed during '%s' stage (%s), httpStatus: %d",
		e.Stage, e.Type, e.HttpStatusCode,
	)
}

func (e *ApiError) Unwrap() error {
	return e.SourceErr
}

// Is method is required by errors.Is() to properly distinguish between
// different types -vs- same pointer to the same type.
// Without it, errors.Is(err, &ApiError{}) returns false for any
// non-identical pointer.
func (e *ApiError) Is(other error) bool {
	var err *ApiError
	return errors.As(other, &err) && err != nil
}

// Retriable reports whether repeating the same request may succeed:
// transport IO failures, 429 and 5xx responses.
func (e *ApiError) Retriable() bool {
	switch e.Type {
	case TYPE_IO:
		return e.Stage == STAGE_REQUEST
	case TYPE_HTTP_STATUS:
		return e.HttpStatusCode == http.StatusTooManyRequests ||
			e.HttpStatusCode >= http.StatusInternalServerError
	}
	return false
}

// ValidationError is a caller-side input rejection. It never reaches the
// network: every operation validates before sending.
type ValidationError struct {
	Field   string
	Message string
}

var _ error = &ValidationError{}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(other error) bool {
	return other == ErrInvalidInput
}

// Invalid builds a *ValidationError for the given field.
func Invalid(field string, format string, args ...any) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ConfigError is returned when the client cannot be constructed,
// e.g. a required credential is missing.
type ConfigError struct {
	Setting string
}

var _ error = &ConfigError{}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s is required", e.Setting)
}

// UnknownOperation wraps ErrUnknownOperation with the offending name.
func UnknownOperation(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}
