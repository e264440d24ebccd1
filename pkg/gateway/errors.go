package gateway

import (
	"errors"
	"net/http"
)

var (
	// ErrPlanNotFound matches API errors for a plan the backend does not know.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrExecutionNotFound matches API errors for an unknown execution.
	ErrExecutionNotFound = errors.New("execution not found")
)

// APIError is a non-success response from the backend. Message is the server provided error,
// or a "<fallback>: <status>" text when the body carried none.
type APIError struct {
	Op      string // Operation being performed (e.g. "GetFullPlan")
	Status  int
	Message string
	Err     error // Transport or decoding failure, if any
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	if e.Status != http.StatusNotFound {
		return false
	}

	switch e.Op {
	case opGetFullPlan:
		return target == ErrPlanNotFound
	case opGetExecution, opAdvanceExecution:
		return target == ErrExecutionNotFound
	default:
		return false
	}
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
