// Package workflow holds the editable graph of one loaded plan.
//
// Every structural mutation goes through a Container method that snapshots the graph first,
// so undo restores the pre-mutation state. Layout feedback, selection and execution
// annotations never enter history.
package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukex/planeditor/pkg/history"
	"github.com/dukex/planeditor/pkg/metrics"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/projection"
	"github.com/google/uuid"
)

// PlanSaver persists the position-only save payload of a plan.
type PlanSaver interface {
	SavePositions(ctx context.Context, planID string, steps []models.StepPosition) error
}

type snapshot struct {
	nodes []*models.Node
	edges []*models.Edge
}

// Container is the single source of truth for the editable graph. It is safe for concurrent use.
type Container struct {
	mu sync.Mutex

	plan                *models.Plan
	nodes               []*models.Node
	edges               []*models.Edge
	selectedNodeID      string
	selectedEdgeID      string
	commandTypes        []*models.CommandType
	defaultEdgePathType models.EdgePathType
	paletteCollapsed    bool

	history  *history.History[snapshot]
	revision uint64

	saver    PlanSaver
	saving   bool
	saveErr  string
	savedAt  time.Time
	failedAt time.Time

	newID   func() string
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Container.
type Option func(*Container)

// WithSaver sets the backend used by SavePlan.
func WithSaver(saver PlanSaver) Option {
	return func(c *Container) {
		c.saver = saver
	}
}

// WithIDGenerator replaces the uuid based id allocator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Container) {
		c.newID = newID
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithMetrics records mutations, history moves and saves.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Container) {
		c.metrics = m
	}
}

// WithHistoryCapacity overrides the number of undo snapshots kept.
func WithHistoryCapacity(capacity int) Option {
	return func(c *Container) {
		c.history = history.New[snapshot](capacity)
	}
}

// NewContainer creates an empty container.
func NewContainer(opts ...Option) *Container {
	c := &Container{
		nodes:               []*models.Node{},
		edges:               []*models.Edge{},
		commandTypes:        []*models.CommandType{},
		defaultEdgePathType: models.EdgePathTypeBezier,
		history:             history.New[snapshot](history.DefaultCapacity),
		newID:               func() string { return uuid.New().String() },
		now:                 time.Now,
		logger:              slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadPlan replaces the graph with the projection of plan and clears selection and history.
func (c *Container) LoadPlan(plan *models.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plan = plan.Clone()
	c.nodes, c.edges = projection.ToGraph(c.plan, c.commandTypes)
	c.selectedNodeID = ""
	c.selectedEdgeID = ""
	c.history.Reset()
	c.revision++

	if c.plan != nil {
		c.logger.Info("Plan loaded", "plan_id", c.plan.ID, "nodes", len(c.nodes), "edges", len(c.edges))
	}
}

// Plan returns a copy of the last loaded plan, or nil.
func (c *Container) Plan() *models.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.plan.Clone()
}

// ToPlan rebuilds the plan from the current graph. It returns nil when no plan is loaded.
func (c *Container) ToPlan() *models.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.plan == nil {
		return nil
	}

	return projection.ToPlan(c.nodes, c.edges, c.plan)
}

// Nodes returns a copy of the nodes.
func (c *Container) Nodes() []*models.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.CloneNodes(c.nodes)
}

// Edges returns a copy of the edges.
func (c *Container) Edges() []*models.Edge {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.CloneEdges(c.edges)
}

// Node returns a copy of the node with the given id.
func (c *Container) Node(id string) (*models.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.nodeIndex(id)
	if index < 0 {
		return nil, ErrNodeNotFound
	}

	return c.nodes[index].Clone(), nil
}

// Edge returns a copy of the edge with the given id.
func (c *Container) Edge(id string) (*models.Edge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.edgeIndex(id)
	if index < 0 {
		return nil, ErrEdgeNotFound
	}

	return c.edges[index].Clone(), nil
}

// SetCommandTypes replaces the command type catalog. Existing nodes keep their embedded copies.
func (c *Container) SetCommandTypes(catalog []*models.CommandType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.commandTypes = make([]*models.CommandType, 0, len(catalog))
	for _, commandType := range catalog {
		if commandType != nil {
			c.commandTypes = append(c.commandTypes, commandType.Clone())
		}
	}
}

// CommandTypes returns a copy of the catalog.
func (c *Container) CommandTypes() []*models.CommandType {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*models.CommandType, 0, len(c.commandTypes))
	for _, commandType := range c.commandTypes {
		out = append(out, commandType.Clone())
	}

	return out
}

// CommandType returns a copy of the catalog entry with the given id, or nil.
func (c *Container) CommandType(id string) *models.CommandType {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.findCommandType(id).Clone()
}

// SetDefaultEdgePathType sets the path style stamped on edges created by Connect.
func (c *Container) SetDefaultEdgePathType(pathType models.EdgePathType) error {
	if _, err := models.ParseEdgePathType(string(pathType)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.defaultEdgePathType = pathType

	return nil
}

// DefaultEdgePathType returns the current edge path preference.
func (c *Container) DefaultEdgePathType() models.EdgePathType {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.defaultEdgePathType
}

// SetPaletteCollapsed stores the palette visibility preference.
func (c *Container) SetPaletteCollapsed(collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paletteCollapsed = collapsed
}

// PaletteCollapsed returns the palette visibility preference.
func (c *Container) PaletteCollapsed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paletteCollapsed
}

// State returns the client-local snapshot persisted between sessions.
func (c *Container) State() *models.EditorState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &models.EditorState{
		Plan:                c.plan.Clone(),
		Nodes:               models.CloneNodes(c.nodes),
		Edges:               models.CloneEdges(c.edges),
		DefaultEdgePathType: c.defaultEdgePathType,
	}
}

// Restore replaces the container contents with a persisted snapshot. History and selection are cleared.
func (c *Container) Restore(state *models.EditorState) {
	if state == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.plan = state.Plan.Clone()
	c.nodes = models.CloneNodes(state.Nodes)
	c.edges = models.CloneEdges(state.Edges)
	c.selectedNodeID = ""
	c.selectedEdgeID = ""
	c.history.Reset()
	c.revision++

	if _, err := models.ParseEdgePathType(string(state.DefaultEdgePathType)); err == nil {
		c.defaultEdgePathType = state.DefaultEdgePathType
	}
}

// Undo restores the graph as it was before the latest mutation.
func (c *Container) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous, ok := c.history.Undo(c.snapshot())
	if !ok {
		return false
	}

	c.restore(previous)
	c.metrics.HistoryMove("undo")

	return true
}

// Redo reapplies the latest undone mutation.
func (c *Container) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := c.history.Redo()
	if !ok {
		return false
	}

	c.restore(next)
	c.metrics.HistoryMove("redo")

	return true
}

// CanUndo reports whether Undo would change the graph.
func (c *Container) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.CanUndo()
}

// CanRedo reports whether Redo would change the graph.
func (c *Container) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.CanRedo()
}

// HistoryLen returns the number of stored snapshots.
func (c *Container) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.Len()
}

// Revision increases on every change to the graph content, layout included. Callers compare
// revisions to detect unsaved edits.
func (c *Container) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.revision
}

// pushHistory must be called with the lock held, before the mutation is applied.
func (c *Container) pushHistory(operation string) {
	c.history.Push(c.snapshot())
	c.revision++
	c.metrics.Mutation(operation)
}

func (c *Container) snapshot() snapshot {
	return snapshot{
		nodes: models.CloneNodes(c.nodes),
		edges: models.CloneEdges(c.edges),
	}
}

// restore installs copies so a snapshot stays intact for a later redo.
func (c *Container) restore(s snapshot) {
	c.nodes = models.CloneNodes(s.nodes)
	c.edges = models.CloneEdges(s.edges)
	c.revision++
}

func (c *Container) nodeIndex(id string) int {
	for i, node := range c.nodes {
		if node.ID == id {
			return i
		}
	}

	return -1
}

func (c *Container) edgeIndex(id string) int {
	for i, edge := range c.edges {
		if edge.ID == id {
			return i
		}
	}

	return -1
}

func (c *Container) findCommandType(id string) *models.CommandType {
	if id == "" {
		return nil
	}

	for _, commandType := range c.commandTypes {
		if commandType.ID == id {
			return commandType
		}
	}

	return nil
}

func (c *Container) planID() string {
	if c.plan == nil {
		return ""
	}

	return c.plan.ID
}
