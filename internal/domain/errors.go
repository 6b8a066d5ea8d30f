package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCacheDisabled    = errors.New("snapshot cache is disabled")
	ErrRevisionRequired = errors.New("revision is required")
	ErrSnapshotNotFound = errors.New("coverage snapshot not found")
)

// Lookup error kinds
const (
	LookupDecodeError  = "DecodeError"
	LookupHTTPError    = "HTTPError"
	LookupNetworkError = "NetworkError"
	LookupQueryError   = "QueryError"
)

// LookupError is returned when the coverage service cannot answer a query
type LookupError struct {
	Err     error
	Message string
	Name    string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError builds a LookupError of the given kind
func NewLookupError(name string, err error, format string, args ...any) *LookupError {
	return &LookupError{
		Err:     err,
		Message: fmt.Sprintf(format, args...),
		Name:    name,
	}
}

// DescribeError renders an error as "<kind>: <message>" for display.
// Errors that are not LookupErrors use the kind "Error".
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Error()
	}
	if errors.Is(err, ErrRevisionRequired) {
		return err.Error()
	}
	message := err.Error()
	if message == "" {
		message = "unknown error"
	}
	return "Error: " + message
}
