package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukex/planeditor/pkg/eventbus"
	"github.com/dukex/planeditor/pkg/execution"
	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/metrics"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/persistence"
	"github.com/dukex/planeditor/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// PlanGateway is the backend API used by the editor. *gateway.Client implements it.
type PlanGateway interface {
	GetFullPlan(ctx context.Context, nameOrID string) (*gateway.FullPlanResponse, error)
	CreateExecution(ctx context.Context, planID string, initialContext map[string]any) (*gateway.ExecutionResponse, error)
	GetExecution(ctx context.Context, executionID string) (*gateway.ExecutionResponse, error)
	AdvanceExecution(ctx context.Context, executionID string) (*gateway.AdvanceResponse, error)
	SavePositions(ctx context.Context, planID string, steps []models.StepPosition) error
}

// Editor is one editing session: the graph container, the execution mirror, the backend
// gateway and the store that keeps the session state between runs.
type Editor struct {
	container *workflow.Container
	store     *execution.Store
	gateway   PlanGateway

	persistence persistence.Persistence
	stateKey    string

	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	containerOpts []workflow.Option

	mu            sync.Mutex
	streaming     bool
	cron          *cron.Cron
	savedRevision uint64
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithPersistence keeps the session state in p under the default state key.
func WithPersistence(p persistence.Persistence) EditorOption {
	return func(e *Editor) {
		e.persistence = p
	}
}

// WithStateKey overrides models.EditorStateKey, so several sessions can share one store.
func WithStateKey(key string) EditorOption {
	return func(e *Editor) {
		e.stateKey = key
	}
}

func WithLogger(logger *slog.Logger) EditorOption {
	return func(e *Editor) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) EditorOption {
	return func(e *Editor) {
		e.metrics = m
	}
}

func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) {
		e.now = now
	}
}

// WithContainerOptions passes extra options to the graph container.
func WithContainerOptions(opts ...workflow.Option) EditorOption {
	return func(e *Editor) {
		e.containerOpts = append(e.containerOpts, opts...)
	}
}

// NewEditor creates a session backed by gw. The gateway also saves plan positions.
func NewEditor(gw PlanGateway, opts ...EditorOption) *Editor {
	e := &Editor{
		gateway:  gw,
		stateKey: models.EditorStateKey,
		validate: validator.New(),
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	containerOpts := append([]workflow.Option{
		workflow.WithSaver(gw),
		workflow.WithLogger(e.logger.With("component", "workflow")),
		workflow.WithMetrics(e.metrics),
		workflow.WithClock(e.now),
	}, e.containerOpts...)

	e.container = workflow.NewContainer(containerOpts...)
	e.store = execution.NewStore(
		execution.WithLogger(e.logger.With("component", "execution")),
		execution.WithMetrics(e.metrics),
		execution.WithClock(e.now),
	)

	return e
}

// Container returns the graph container of the session.
func (e *Editor) Container() *workflow.Container {
	return e.container
}

// Execution returns the execution mirror of the session.
func (e *Editor) Execution() *execution.Store {
	return e.store
}

// Restore loads the persisted session state. It reports false when nothing was stored.
func (e *Editor) Restore(ctx context.Context) (bool, error) {
	if e.persistence == nil {
		return false, nil
	}

	state, err := e.persistence.LoadState(ctx, e.stateKey)
	if err != nil {
		if persistence.IsStateNotFound(err) {
			return false, nil
		}

		return false, NewServiceError("Restore", "restore_failed", err)
	}

	e.container.Restore(state)
	e.markSaved()

	e.logger.InfoContext(ctx, "Editor state restored", "key", e.stateKey, "nodes", len(state.Nodes))

	return true, nil
}

// LoadPlan fetches a plan by name or id, installs its catalog and graph, resets the execution
// mirror and persists the new session state.
func (e *Editor) LoadPlan(ctx context.Context, nameOrID string) (*models.Plan, error) {
	if nameOrID == "" {
		return nil, NewValidationError("LoadPlan", "invalid_request", "plan name or id is required", ErrInvalidRequest)
	}

	full, err := e.gateway.GetFullPlan(ctx, nameOrID)
	if err != nil {
		return nil, NewServiceError("LoadPlan", "fetch_failed", err)
	}

	plan := gateway.ConvertToPlan(full)

	if err := e.validate.Struct(plan); err != nil {
		return nil, NewValidationError("LoadPlan", "invalid_plan", err.Error(), fmt.Errorf("%w: %w", ErrInvalidPlan, err))
	}

	e.container.SetCommandTypes(gateway.ConvertCommandTypes(full))
	e.container.LoadPlan(plan)
	e.store.Reset()
	e.markSaved()

	if err := e.Persist(ctx); err != nil {
		e.logger.WarnContext(ctx, "Failed to persist editor state", "error", err)
	}

	return e.container.Plan(), nil
}

// Persist writes the session state. It is a no-op without a store.
func (e *Editor) Persist(ctx context.Context) error {
	if e.persistence == nil {
		return nil
	}

	if err := e.persistence.SaveState(ctx, e.stateKey, e.container.State()); err != nil {
		return NewServiceError("Persist", "persist_failed", err)
	}

	return nil
}

// Save sends the plan positions to the backend and, on success, persists the session state.
func (e *Editor) Save(ctx context.Context) workflow.SaveResult {
	revision := e.container.Revision()
	result := e.container.SavePlan(ctx)

	if !result.Success {
		return result
	}

	e.mu.Lock()
	e.savedRevision = revision
	e.mu.Unlock()

	if err := e.Persist(ctx); err != nil {
		e.logger.WarnContext(ctx, "Failed to persist editor state", "error", err)
	}

	return result
}

// Dirty reports whether the graph changed since it was loaded or last saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.container.Revision() != e.savedRevision
}

// HealthCheck checks the state store.
func (e *Editor) HealthCheck(ctx context.Context) (string, bool) {
	if e.persistence == nil {
		return "Persistence layer not configured", true
	}

	err := e.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// BindEvents applies execution events from bus to the execution mirror. Once bound, REST
// execution responses no longer drive token state.
func (e *Editor) BindEvents(bus eventbus.EventSubscriber) error {
	if err := execution.Bind(bus, e.store); err != nil {
		return NewServiceError("BindEvents", "bind_failed", err)
	}

	e.mu.Lock()
	e.streaming = true
	e.mu.Unlock()

	return nil
}

// Close stops the autosave schedule and persists the final state.
func (e *Editor) Close(ctx context.Context) error {
	e.StopAutosave()

	var errs []error

	if err := e.Persist(ctx); err != nil {
		errs = append(errs, err)
	}

	if e.persistence != nil {
		if err := e.persistence.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (e *Editor) markSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.savedRevision = e.container.Revision()
}
