package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ConflictError means the entity already exists (or the request was rejected
// in a way the tracker uses for duplicates: 400 and 409).
type ConflictError struct {
	StatusCode int
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict (%d): %s", e.StatusCode, e.Message)
}

// NotFoundError means the requested entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Message
}

// AuthError means the credentials were rejected or lack permission.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized (%d): %s", e.StatusCode, e.Message)
}

// TransportError covers network failures and unexpected responses.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("tracker returned %d: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// alreadyExists is the message marker the tracker uses for duplicates.
const alreadyExists = "already exists"

// IsConflict reports whether err means "the entity already exists".
// Errors that did not come from the REST client are matched on the
// "already exists" marker.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), alreadyExists)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// isRetryable reports whether a read may be attempted again.
func isRetryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	return te.StatusCode == 0 || te.StatusCode == http.StatusTooManyRequests || te.StatusCode >= 500
}

// classifyResponse maps a non-2xx response onto the error taxonomy.
func classifyResponse(statusCode int, body []byte) error {
	msg := errorMessage(body)
	switch {
	case statusCode == http.StatusConflict || statusCode == http.StatusBadRequest:
		return &ConflictError{StatusCode: statusCode, Message: msg}
	case strings.Contains(strings.ToLower(msg), alreadyExists):
		return &ConflictError{StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{Message: msg}
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{StatusCode: statusCode, Message: msg}
	default:
		return &TransportError{StatusCode: statusCode, Message: msg}
	}
}

// errorMessage flattens the tracker's {"errorMessages": [], "errors": {}}
// error body. Anything else is returned verbatim.
func errorMessage(body []byte) string {
	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
		Message       string            `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	parts := append([]string{}, payload.ErrorMessages...)
	keys := make([]string, 0, len(payload.Errors))
	for k := range payload.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+payload.Errors[k])
	}
	if payload.Message != "" {
		parts = append(parts, payload.Message)
	}
	if len(parts) == 0 {
		return strings.TrimSpace(string(body))
	}
	return strings.Join(parts, "; ")
}
