// Package errors defines the error kinds returned throughout the Reddit feed client.
//
// Every fallible operation returns one of these types (possibly wrapped), so
// callers can branch with errors.As:
//
//	var authErr *errors.AuthError
//	if stderrors.As(err, &authErr) {
//		// credentials need attention
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotLoggedIn is returned when a user-only endpoint is called while the
// active authenticator does not act on behalf of an account.
var ErrNotLoggedIn = &StateError{
	Operation: "me",
	Message:   "this action requires a user authenticator, not anonymous application authentication",
}

// ErrNoReadableContent is returned by content collaborators when a linked URL
// carries nothing the library knows how to read.
var ErrNoReadableContent = errors.New("no readable content found")

// ConfigError indicates a problem with client configuration or a caller-supplied parameter.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AuthError indicates that a credential exchange failed, or that a request was
// still rejected after a fresh token was obtained.
type AuthError struct {
	// StatusCode is the HTTP status code (if from an HTTP response)
	StatusCode int
	// Message is the human-readable reason, including any upstream error string
	Message string
	// Body contains the raw response body (if available)
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthError) Error() string {
	parts := make([]string, 0, 4)

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status code %d", e.StatusCode))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Body != "" {
		parts = append(parts, fmt.Sprintf("body: %q", e.Body))
	}
	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("err: %v", e.Err))
	}

	if len(parts) == 0 {
		return "auth error"
	}
	return "auth error: " + strings.Join(parts, ", ")
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StateError indicates an operation was attempted when the client is not in a
// state that permits it.
type StateError struct {
	// Operation is the name of the operation that was attempted
	Operation string
	// Message contains the detailed error message
	Message string
}

func (e *StateError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("state error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("state error: %s", e.Message)
}

// TransportError indicates the request never produced an HTTP response:
// DNS, TLS, connection reset, timeouts, or an unreadable body.
type TransportError struct {
	// Op describes what the transport was doing, e.g. "GET" or "read body"
	Op string
	// URL is the URL that was being accessed
	URL string
	// Err is the underlying network error
	Err error
}

func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("transport error during %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnexpectedStatusError is returned when the server answers with a status the
// request state machine does not handle (anything but 200, 401 and 403).
type UnexpectedStatusError struct {
	StatusCode int
	URL        string
	// Body holds the start of the response body for diagnostics.
	Body string
}

func (e *UnexpectedStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("reddit returned an unexpected status %d for %s: %q", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("reddit returned an unexpected status %d for %s", e.StatusCode, e.URL)
}

// ParseError indicates the response body did not match the expected JSON shape.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvariantError reports an internal defect, such as a login that succeeded
// without leaving a token behind. It should never be seen in practice.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant broken: " + e.Message + " (please report this as a bug)"
}
