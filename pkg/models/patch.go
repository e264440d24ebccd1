package models

// NodePatch is a partial update of a node data bag. Every non-nil part replaces the current one
// as a whole, so fields left empty in a supplied part are cleared.
type NodePatch struct {
	Step    *Step
	Command *Command
}

// IsEmpty reports whether the patch changes nothing.
func (p NodePatch) IsEmpty() bool {
	return p.Step == nil && p.Command == nil
}

// Apply replaces the supplied parts of data with copies of the patch values.
func (p NodePatch) Apply(data *NodeData) {
	if p.Step != nil {
		data.Step = p.Step.Clone()
	}

	if p.Command != nil {
		data.Command = p.Command.Clone()
	}
}

// EdgePatch is a partial update of an edge data bag. Non-nil fields replace the current values;
// a pointer to an empty label clears it. ClearCondition detaches the condition.
type EdgePatch struct {
	Transition     *Transition
	Condition      *Condition
	ClearCondition bool
	Label          *string
	PathType       *EdgePathType
}

// IsEmpty reports whether the patch changes nothing.
func (p EdgePatch) IsEmpty() bool {
	return p.Transition == nil && p.Condition == nil && !p.ClearCondition && p.Label == nil && p.PathType == nil
}

// Apply replaces the supplied fields of data. A transition left in data keeps its condition id
// in step with the attached condition.
func (p EdgePatch) Apply(data *EdgeData) {
	if p.Transition != nil {
		data.Transition = p.Transition.Clone()
	}

	switch {
	case p.ClearCondition:
		data.Condition = nil
		if data.Transition != nil {
			data.Transition.ConditionID = ""
		}
	case p.Condition != nil:
		data.Condition = p.Condition.Clone()
		if data.Transition != nil {
			data.Transition.ConditionID = data.Condition.ID
		}
	}

	if p.Label != nil {
		data.Label = *p.Label
	}

	if p.PathType != nil {
		data.PathType = *p.PathType
	}
}
