package models

import "errors"

var (
	// ErrUnknownStepType is returned when a step type is outside the closed step type set.
	ErrUnknownStepType = errors.New("unknown step type")

	// ErrUnknownTransitionType is returned when a transition type is outside the closed transition type set.
	ErrUnknownTransitionType = errors.New("unknown transition type")

	// ErrUnknownEdgePathType is returned for edge path styles other than bezier and smoothstep.
	ErrUnknownEdgePathType = errors.New("unknown edge path type")
)
