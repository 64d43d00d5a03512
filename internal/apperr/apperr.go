// Package apperr defines the domain error taxonomy. Every failure a
// service or repo can raise carries one Kind; the HTTP layer maps kinds
// to status codes through a single lookup table.
package apperr

import (
	"errors"
	"net/http"
)

// Kind discriminates domain failures.
type Kind int

const (
	// KindInternal is the zero value: any unclassified failure.
	KindInternal Kind = iota
	KindValidationFailed
	KindDuplicateEmail
	KindMissingCredentials
	KindInvalidCredentials
	KindAuthenticationFailed
	KindBadRequest
	KindNotFound
)

// statusByKind is the only place domain failures meet HTTP status codes.
// ValidationFailed and DuplicateEmail deliberately map to 500: the register
// and job-write paths have always surfaced store-level validation as an
// internal failure, and clients pin that behavior.
var statusByKind = map[Kind]int{
	KindInternal:             http.StatusInternalServerError,
	KindValidationFailed:     http.StatusInternalServerError,
	KindDuplicateEmail:       http.StatusInternalServerError,
	KindMissingCredentials:   http.StatusBadRequest,
	KindInvalidCredentials:   http.StatusUnauthorized,
	KindAuthenticationFailed: http.StatusUnauthorized,
	KindBadRequest:           http.StatusBadRequest,
	KindNotFound:             http.StatusNotFound,
}

// Error is a domain failure: a kind plus a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New returns a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from err, or KindInternal if err is not a
// domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
