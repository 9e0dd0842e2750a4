// Package serrors defines the closed set of error kinds every request can end in
// and their HTTP status mapping.
package serrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnprocessableEntity
	KindMalformedRequest
	KindValidationFailed
	KindStoreFailure
	KindInternalFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindMalformedRequest:
		return "malformed_request"
	case KindValidationFailed:
		return "validation_failed"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "internal_failure"
	}
}

// Status is total over Kind; unknown kinds are treated as internal failures.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case KindMalformedRequest, KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const (
	notFoundMessage   = "Not Found."
	badRequestPrefix  = "Bad Request."
	internalErrPrefix = "Internal Server Error."
)

type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type Violations []Violation

func (v Violations) String() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, violation.String())
	}
	return strings.Join(parts, ", ")
}

// Err returns a ValidationFailed error for a non-empty list, otherwise nil.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return Validation(v)
}

// PublicCauser is implemented by errors that know how to describe themselves
// without leaking storage internals.
type PublicCauser interface {
	PublicCause() string
}

type Error struct {
	kind       Kind
	detail     string
	violations Violations
	cause      error
}

func (e *Error) Kind() Kind             { return e.kind }
func (e *Error) Status() int            { return e.kind.Status() }
func (e *Error) Violations() Violations { return e.violations }
func (e *Error) Unwrap() error          { return e.cause }

// Is matches any *Error of the same kind, so the Err* sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

func (e *Error) Error() string {
	switch {
	case e.kind == KindValidationFailed:
		return fmt.Sprintf("%s: %s", e.kind, e.violations)
	case e.cause != nil && e.detail != "":
		return fmt.Sprintf("%s: %s: %v", e.kind, e.detail, e.cause)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.kind, e.cause)
	case e.detail != "":
		return fmt.Sprintf("%s: %s", e.kind, e.detail)
	default:
		return e.kind.String()
	}
}

// Message is the client-facing text of the error.
func (e *Error) Message() string {
	switch e.kind {
	case KindNotFound:
		return notFoundMessage
	case KindUnprocessableEntity:
		return e.detail
	case KindMalformedRequest:
		return fmt.Sprintf("%s [%s]", badRequestPrefix, e.detail)
	case KindValidationFailed:
		return fmt.Sprintf("%s [%s]", badRequestPrefix, e.violations)
	default:
		return fmt.Sprintf("%s [%s]", internalErrPrefix, e.detail)
	}
}

// Sentinels usable with errors.Is against any error of the same kind.
var (
	ErrNotFound            = &Error{kind: KindNotFound}
	ErrUnprocessableEntity = &Error{kind: KindUnprocessableEntity}
	ErrMalformedRequest    = &Error{kind: KindMalformedRequest}
	ErrValidationFailed    = &Error{kind: KindValidationFailed}
	ErrStoreFailure        = &Error{kind: KindStoreFailure}
	ErrInternalFailure     = &Error{kind: KindInternalFailure}
)

func NotFound() *Error {
	return &Error{kind: KindNotFound}
}

func Unprocessable(detail string) *Error {
	return &Error{kind: KindUnprocessableEntity, detail: detail}
}

func Unprocessablef(format string, args ...any) *Error {
	return Unprocessable(fmt.Sprintf(format, args...))
}

func Malformed(cause error) *Error {
	return &Error{kind: KindMalformedRequest, detail: describe(cause), cause: cause}
}

func Validation(violations Violations) *Error {
	return &Error{kind: KindValidationFailed, violations: violations}
}

// Store wraps a storage failure. op names the storage call that failed.
func Store(op string, cause error) *Error {
	if existing, ok := asError(cause); ok {
		return existing
	}
	return &Error{kind: KindStoreFailure, detail: fmt.Sprintf("%s: %s", op, describe(cause)), cause: cause}
}

func Internal(cause error) *Error {
	if existing, ok := asError(cause); ok {
		return existing
	}
	return &Error{kind: KindInternalFailure, detail: describe(cause), cause: cause}
}

// From classifies any error into the taxonomy. Errors that do not carry a
// kind become internal failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := asError(err); ok {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Store("call", err)
	}
	return Internal(err)
}

func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	return From(err).Kind()
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	var pc PublicCauser
	if errors.As(err, &pc) {
		return pc.PublicCause()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return err.Error()
}
