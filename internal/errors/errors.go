package errors

import (
	"net/http"
)

// APIError is the error shape every handler pushes through gin's error list.
// Message and Fields are what the client sees; Internal stays in the logs.
type APIError struct {
	Status   int               `json:"-"`
	Message  string            `json:"error,omitempty"`
	Fields   map[string]string `json:"errors,omitempty"`
	Internal error             `json:"-"`
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *APIError) Unwrap() error {
	return e.Internal
}

func New(status int, message string, internal error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Internal: internal,
	}
}

func BadRequest(message string, internal error) *APIError {
	return New(http.StatusBadRequest, message, internal)
}

// Validation carries a field -> message map, serialized as {"errors": {...}}
func Validation(fields map[string]string, internal error) *APIError {
	return &APIError{
		Status:   http.StatusBadRequest,
		Fields:   fields,
		Internal: internal,
	}
}

func Unauthorized(message string, internal error) *APIError {
	return New(http.StatusUnauthorized, message, internal)
}

func AccessDenied(internal error) *APIError {
	return New(http.StatusForbidden, "Access denied", internal)
}

func NotFound(message string, internal error) *APIError {
	return New(http.StatusNotFound, message, internal)
}

func Internal(err error) *APIError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}
