package mail

import (
	"errors"
	"net/http"
)

// Kind classifies a mail service failure.
type Kind int

const (
	// KindValidation is a bad request from the caller.
	KindValidation Kind = iota + 1
	// KindModelLoad means the model could not be loaded; fatal at startup.
	KindModelLoad
	// KindGeneration is any failure while producing text.
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindModelLoad:
		return "model_load"
	case KindGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this package. Msg is safe to show to clients;
// Err carries the underlying cause for logs.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + e.Msg
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Validation messages returned verbatim to clients.
const (
	MsgMissingContent = "missing content"
	MsgTooShort       = "input too short"
	MsgTooLong        = "input exceeds limit"
)

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Op: "validate", Msg: msg}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a caller error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// PublicMessage returns the client facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}

// ModelLoadError wraps a startup failure to load the model.
func ModelLoadError(err error) error {
	return &Error{Kind: KindModelLoad, Op: "load model", Msg: "model load failed", Err: err}
}
