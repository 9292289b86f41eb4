package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRedirectLoop     = errors.New("too many redirects")
	ErrSessionChanged   = errors.New("session changed while request was in flight")
)

// ValidationError reports malformed input, either rejected locally or by the
// API with a 400/422.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	if e.Message == "" {
		return "validation failed: " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.Message, strings.Join(parts, "; "))
}

// AuthError is a 401/403 from the API or rejected credentials.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication failed: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("authentication failed: HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps transport failures, including timeouts.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(e.Err, &timeout) && timeout.Timeout()
}

// ServerError covers any other non-2xx status and undecodable bodies.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d: %s", e.StatusCode, e.Message)
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func IsNetworkError(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

func IsServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}
