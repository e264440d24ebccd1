package models

// Default rendered node dimensions used when the canvas has not measured a node yet.
const (
	DefaultNodeWidth  = 180
	DefaultNodeHeight = 56
)

// EdgePathType selects how the canvas draws an edge.
type EdgePathType string

const (
	EdgePathTypeBezier     EdgePathType = "bezier"
	EdgePathTypeSmoothStep EdgePathType = "smoothstep"
)

// ParseEdgePathType validates a raw edge path type string.
func ParseEdgePathType(raw string) (EdgePathType, error) {
	switch EdgePathType(raw) {
	case EdgePathTypeBezier, EdgePathTypeSmoothStep:
		return EdgePathType(raw), nil
	default:
		return "", ErrUnknownEdgePathType
	}
}

// NodeData is the data bag attached to a visual node.
type NodeData struct {
	Step           *Step          `json:"step"`
	Command        *Command       `json:"command,omitempty"`
	CommandType    *CommandType   `json:"commandType,omitempty"`
	ExecutionState ExecutionState `json:"executionState,omitempty"`
	Tokens         []*Token       `json:"tokens,omitempty"`
	Result         *StepResult    `json:"result,omitempty"`
}

// Node is the visual projection of exactly one step.
type Node struct {
	ID       string   `json:"id"`
	Type     StepType `json:"type"`
	Position Position `json:"position"`
	Width    *float64 `json:"width,omitempty"`  // Measured by the canvas
	Height   *float64 `json:"height,omitempty"` // Measured by the canvas
	Selected bool     `json:"selected,omitempty"`
	Data     NodeData `json:"data"`
}

// EdgeData is the data bag attached to a visual edge.
type EdgeData struct {
	Transition *Transition  `json:"transition,omitempty"`
	Condition  *Condition   `json:"condition,omitempty"`
	Label      string       `json:"label,omitempty"`
	PathType   EdgePathType `json:"pathType,omitempty"`
}

// Edge is the visual projection of exactly one transition.
type Edge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Type   EdgeType  `json:"type"`
	Data   *EdgeData `json:"data,omitempty"`
}

// RenderedWidth returns the measured width or the default.
func (n *Node) RenderedWidth() float64 {
	if n.Width != nil {
		return *n.Width
	}

	return DefaultNodeWidth
}

// RenderedHeight returns the measured height or the default.
func (n *Node) RenderedHeight() float64 {
	if n.Height != nil {
		return *n.Height
	}

	return DefaultNodeHeight
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := *n
	clone.Width = cloneFloatPtr(n.Width)
	clone.Height = cloneFloatPtr(n.Height)
	clone.Data = n.Data.Clone()

	return &clone
}

// Clone returns a deep copy of the node data bag.
func (d NodeData) Clone() NodeData {
	clone := NodeData{
		Step:           d.Step.Clone(),
		Command:        d.Command.Clone(),
		CommandType:    d.CommandType.Clone(),
		ExecutionState: d.ExecutionState,
		Result:         d.Result.Clone(),
	}

	if d.Tokens != nil {
		clone.Tokens = make([]*Token, 0, len(d.Tokens))
		for _, token := range d.Tokens {
			clone.Tokens = append(clone.Tokens, token.Clone())
		}
	}

	return clone
}

// Clone returns a deep copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}

	clone := *e
	clone.Data = e.Data.Clone()

	return &clone
}

// Clone returns a deep copy of the edge data bag.
func (d *EdgeData) Clone() *EdgeData {
	if d == nil {
		return nil
	}

	clone := *d
	clone.Transition = d.Transition.Clone()
	clone.Condition = d.Condition.Clone()

	return &clone
}

// CloneNodes deep copies a node slice.
func CloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Clone())
	}

	return out
}

// CloneEdges deep copies an edge slice.
func CloneEdges(edges []*Edge) []*Edge {
	out := make([]*Edge, 0, len(edges))
	for _, edge := range edges {
		out = append(out, edge.Clone())
	}

	return out
}

func cloneFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}

	out := *v

	return &out
}
