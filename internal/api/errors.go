package api

import (
	"errors"
	"net/http"

	"github.com/vk/taskorder/internal/scheduler"
)

// Request shape errors.
var (
	// ErrMissingTasks is returned when the body is absent, not a JSON object
	// or has no "tasks" key.
	ErrMissingTasks = errors.New("missing tasks in request")

	// ErrTasksNotList is returned when "tasks" is present but not an array.
	ErrTasksNotList = errors.New("tasks must be a list")

	// ErrMissingProject is returned when no project identifier was supplied.
	ErrMissingProject = errors.New("missing projectId in request")

	// ErrBodyTooLarge is returned when the body exceeds maxRequestBodySize.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ErrorCode represents an API error code.
type ErrorCode string

// Error codes for API responses.
const (
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeUnknownDependency ErrorCode = "unknown_dependency"
	CodeCycleDetected     ErrorCode = "cycle_detected"
	CodeInternalError     ErrorCode = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Code       ErrorCode
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Response returns the wire form of the error.
func (e *HTTPError) Response() ErrorResponse {
	return ErrorResponse{Error: e.Error(), Code: string(e.Code)}
}

// MapError maps a domain error to an HTTPError. Every rejection caused by
// the submitted data is a 400; anything else is a 500.
func MapError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return &HTTPError{http.StatusRequestEntityTooLarge, CodeInvalidInput, err}

	case errors.Is(err, ErrMissingTasks),
		errors.Is(err, ErrTasksNotList),
		errors.Is(err, ErrMissingProject),
		errors.Is(err, scheduler.ErrInvalidInput):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}

	case errors.Is(err, scheduler.ErrUnknownDependency):
		return &HTTPError{http.StatusBadRequest, CodeUnknownDependency, err}

	case errors.Is(err, scheduler.ErrCycleDetected):
		return &HTTPError{http.StatusBadRequest, CodeCycleDetected, err}

	default:
		return &HTTPError{http.StatusInternalServerError, CodeInternalError, err}
	}
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, err error) {
	httpErr := MapError(err)
	if httpErr == nil {
		return
	}
	writeJSON(w, httpErr.StatusCode, httpErr.Response())
}
