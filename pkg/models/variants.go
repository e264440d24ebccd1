package models

// EdgeType is the visual variant of an edge: the three transition types plus conditional.
type EdgeType string

const (
	EdgeTypeStandard     EdgeType = "standard"
	EdgeTypeParallelFork EdgeType = "parallel_fork"
	EdgeTypeDefault      EdgeType = "default"
	EdgeTypeConditional  EdgeType = "conditional"
)

// StepVariant describes how a step type is drawn and connected.
type StepVariant struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Inputs  int    `json:"inputs"`
	Outputs int    `json:"outputs"` // -1 means any number of outgoing transitions
}

// EdgeVariant describes how an edge type is drawn.
type EdgeVariant struct {
	Label    string `json:"label"`
	Dashed   bool   `json:"dashed"`
	Animated bool   `json:"animated"`
}

// StepVariants is the closed set of step types.
var StepVariants = map[StepType]StepVariant{
	StepTypeAction:     {Label: "Action", Color: "#3b82f6", Inputs: 1, Outputs: 1},
	StepTypeDecision:   {Label: "Decision", Color: "#f59e0b", Inputs: 1, Outputs: -1},
	StepTypeWait:       {Label: "Wait", Color: "#8b5cf6", Inputs: 1, Outputs: 1},
	StepTypeSubprocess: {Label: "Subprocess", Color: "#06b6d4", Inputs: 1, Outputs: 1},
	StepTypeJoin:       {Label: "Join", Color: "#64748b", Inputs: -1, Outputs: 1},
	StepTypeTerminal:   {Label: "Terminal", Color: "#ef4444", Inputs: 1, Outputs: 0},
}

// EdgeVariants is the closed set of edge types.
var EdgeVariants = map[EdgeType]EdgeVariant{
	EdgeTypeStandard:     {Label: "Standard"},
	EdgeTypeParallelFork: {Label: "Parallel fork", Animated: true},
	EdgeTypeDefault:      {Label: "Default", Dashed: true},
	EdgeTypeConditional:  {Label: "Conditional", Dashed: true},
}

// EdgeTypeFor maps a transition type to its plain edge type.
func EdgeTypeFor(transitionType TransitionType) EdgeType {
	switch transitionType {
	case TransitionTypeParallelFork:
		return EdgeTypeParallelFork
	case TransitionTypeDefault:
		return EdgeTypeDefault
	default:
		return EdgeTypeStandard
	}
}

// EdgeVariantFor picks the edge type a canvas should draw. A guarded transition renders as
// conditional; the transition keeps its own type in the data bag.
func EdgeVariantFor(edge *Edge) EdgeType {
	if edge.Data != nil && edge.Data.Condition != nil {
		return EdgeTypeConditional
	}

	if edge.Data != nil && edge.Data.Transition != nil {
		return EdgeTypeFor(edge.Data.Transition.TransitionType)
	}

	return edge.Type
}
