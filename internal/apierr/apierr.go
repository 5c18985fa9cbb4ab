// Package apierr carries the typed errors exchanged between the pipeline and
// its callers. Every failure surfaced by an external backend is wrapped into an
// *Error with service attribution, a classification kind and an HTTP-like
// status code; raw upstream error text never crosses the boundary unwrapped.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure and decides whether a caller may retry.
type Kind string

const (
	// KindValidation marks malformed or oversized caller input.
	KindValidation Kind = "validation"

	// KindExhaustedRetries marks a transient upstream failure that persisted
	// through every allowed attempt.
	KindExhaustedRetries Kind = "exhausted_retries"

	// KindTimeout and KindConnection mark transport failures on the final
	// attempt of a retried call.
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"

	// KindServerError marks an upstream 5xx observed on an individual
	// attempt; once retries are exhausted it surfaces as KindExhaustedRetries.
	KindServerError Kind = "server_error"

	// Fatal upstream responses, never retried.
	KindAuthentication     Kind = "authentication"
	KindBadRequest         Kind = "bad_request"
	KindUnexpectedStatus   Kind = "unexpected_status"
	KindIncompleteResponse Kind = "incomplete_response"
	KindEmptyResponse      Kind = "empty_response"

	// KindInternal covers failures of this service itself.
	KindInternal Kind = "internal"
)

// Error is the typed failure returned across package boundaries.
type Error struct {
	Service    string
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s, status %d)", e.Service, e.Message, e.Kind, e.StatusCode)
}

// New builds an Error attributed to the given backend service.
func New(service string, kind Kind, statusCode int, format string, args ...interface{}) *Error {
	return &Error{
		Service:    service,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
	}
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}
