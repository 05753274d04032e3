package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches any APIError carrying a 404.
	ErrNotFound = errors.New("not found")

	// ErrBulkDelete is wrapped by the error BulkDeleteEmployees returns when
	// at least one delete failed.
	ErrBulkDelete = errors.New("bulk delete failed")
)

// APIError is a non-2xx response decoded from the API error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ValidationError is returned by ValidateEmployee before anything is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Message returns the server or validation message carried by err, or
// fallback when there is none.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Message != "" {
		return vErr.Message
	}
	return fallback
}
