// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// Kind classifies service-layer errors so handlers can map them to a status
// code without string matching.
type Kind int

const (
	KindInternal     Kind = iota // unexpected — generic message, detail logged only
	KindValidation                // bad input that survived DTO validation
	KindUnauthorized              // missing or invalid credential
	KindForbidden                 // valid credential, insufficient role
	KindNotFound                  // entity does not exist
	KindConflict                  // duplicate (unique violation, double attach)
	KindInvalidState              // operation illegal in current lifecycle state
)

// Error is the service-layer error type. Msg is safe to show to clients;
// Err carries the internal cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func NotFound(msg string) *Error     { return E(KindNotFound, msg) }
func Conflict(msg string) *Error     { return E(KindConflict, msg) }
func InvalidState(msg string) *Error { return E(KindInvalidState, msg) }
func Unauthorized(msg string) *Error { return E(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return E(KindForbidden, msg) }
func Invalid(msg string) *Error      { return E(KindValidation, msg) }
func Internal(err error) *Error      { return Wrap(KindInternal, "Internal server error", err) }

// Status maps a Kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
