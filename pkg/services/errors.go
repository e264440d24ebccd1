// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/planeditor/pkg/dnd"
	"github.com/dukex/planeditor/pkg/execution"
	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/params"
	"github.com/dukex/planeditor/pkg/workflow"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrInvalidAutosaveSpec = errors.New("invalid autosave schedule")
	ErrNoCommand           = errors.New("step has no command")

	// Not Found Errors (404 Not Found).
	ErrPlanNotFound      = gateway.ErrPlanNotFound
	ErrExecutionNotFound = gateway.ErrExecutionNotFound

	// Business Logic Conflicts (409 Conflict).
	ErrNoPlanLoaded      = workflow.ErrNoPlanLoaded
	ErrNoActiveExecution = errors.New("no active execution")
	ErrExecutionFinished = errors.New("execution already finished")
	ErrAutosaveRunning   = errors.New("autosave already running")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidPlan) ||
		errors.Is(err, ErrInvalidAutosaveSpec) ||
		errors.Is(err, ErrNoCommand) ||
		errors.Is(err, models.ErrUnknownStepType) ||
		errors.Is(err, models.ErrUnknownTransitionType) ||
		errors.Is(err, models.ErrUnknownEdgePathType) ||
		errors.Is(err, params.ErrInvalidParameters) ||
		errors.Is(err, params.ErrNoSchema) ||
		errors.Is(err, dnd.ErrEmptyDrop) ||
		errors.Is(err, execution.ErrEmptyExpression)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrExecutionNotFound) ||
		errors.Is(err, workflow.ErrNodeNotFound) ||
		errors.Is(err, workflow.ErrEdgeNotFound)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrNoPlanLoaded) ||
		errors.Is(err, ErrNoActiveExecution) ||
		errors.Is(err, ErrExecutionFinished) ||
		errors.Is(err, ErrAutosaveRunning) ||
		errors.Is(err, workflow.ErrSaveInProgress)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewServiceError wraps err with the failing operation.
func NewServiceError(op, code string, err error) *ServiceError {
	return &ServiceError{
		Op:   op,
		Code: code,
		Err:  err,
	}
}
