package workflow

import "errors"

var (
	// ErrNodeNotFound indicates no node has the given id.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound indicates no edge has the given id.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrNoPlanLoaded indicates an operation needs a loaded plan.
	ErrNoPlanLoaded = errors.New("No plan loaded")

	// ErrSaveInProgress indicates a save was requested while another one is in flight.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrNoSaver indicates the container was built without a plan saver.
	ErrNoSaver = errors.New("no plan saver configured")
)
