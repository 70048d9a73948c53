package manager

import (
	"errors"
	"net/http"
)

// tooBusyError signals that the model slot could not be acquired within max wait.
type tooBusyError struct{ modelID string }

func (e tooBusyError) Error() string   { return "too busy: " + e.modelID }
func (e tooBusyError) StatusCode() int { return http.StatusServiceUnavailable }

// IsTooBusy reports whether err indicates backpressure.
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// notReadyError is returned when Generate is called before a successful Load.
type notReadyError struct{ state State }

func (e notReadyError) Error() string   { return "model not ready: " + string(e.state) }
func (e notReadyError) StatusCode() int { return http.StatusServiceUnavailable }

// IsNotReady reports whether err indicates the model has not been loaded.
func IsNotReady(err error) bool {
	var e notReadyError
	return errors.As(err, &e)
}

// loadError wraps any failure while resolving or starting the model.
type loadError struct {
	modelID string
	err     error
}

func (e loadError) Error() string { return "load model " + e.modelID + ": " + e.err.Error() }
func (e loadError) Unwrap() error { return e.err }

// IsLoadError reports whether err came from Load.
func IsLoadError(err error) bool {
	var e loadError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string   { return e.msg }
func (e dependencyUnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}
