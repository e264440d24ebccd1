// Package projection converts between the backend plan shape and the visual node/edge graph.
//
// Both directions are best-effort: dangling command, condition or step references resolve
// to nil fields and never fail the conversion.
package projection

import "github.com/dukex/planeditor/pkg/models"

// ToGraph builds one node per step and one edge per transition. Commands, command types and
// conditions are resolved by id and embedded as copies, so the graph owns its data by value.
func ToGraph(plan *models.Plan, catalog []*models.CommandType) ([]*models.Node, []*models.Edge) {
	if plan == nil {
		return []*models.Node{}, []*models.Edge{}
	}

	commandTypes := make(map[string]*models.CommandType, len(catalog))
	for _, commandType := range catalog {
		if commandType != nil {
			commandTypes[commandType.ID] = commandType
		}
	}

	nodes := make([]*models.Node, 0, len(plan.Steps))

	for _, step := range plan.Steps {
		if step == nil {
			continue
		}

		command := plan.FindCommand(step.CommandID)

		var commandType *models.CommandType
		if command != nil {
			commandType = commandTypes[command.CommandTypeID]
		}

		nodes = append(nodes, &models.Node{
			ID:       step.ID,
			Type:     step.StepType,
			Position: step.Position,
			Data: models.NodeData{
				Step:        step.Clone(),
				Command:     command.Clone(),
				CommandType: commandType.Clone(),
			},
		})
	}

	edges := make([]*models.Edge, 0, len(plan.Transitions))

	for _, transition := range plan.Transitions {
		if transition == nil {
			continue
		}

		edges = append(edges, &models.Edge{
			ID:     transition.ID,
			Source: transition.FromStepID,
			Target: transition.ToStepID,
			Type:   models.EdgeTypeFor(transition.TransitionType),
			Data: &models.EdgeData{
				Transition: transition.Clone(),
				Condition:  plan.FindCondition(transition.ConditionID).Clone(),
			},
		})
	}

	return nodes, edges
}

// ToPlan rebuilds a plan from the graph. Step positions are taken from the nodes so layout
// edits are captured; edges without transition data are dropped. Commands and conditions
// shared by several steps or transitions are emitted once, first occurrence wins. Plan-level
// metadata comes from meta unchanged.
func ToPlan(nodes []*models.Node, edges []*models.Edge, meta *models.Plan) *models.Plan {
	plan := meta.Metadata()
	if plan == nil {
		plan = &models.Plan{}
	}

	plan.Steps = make([]*models.Step, 0, len(nodes))
	plan.Commands = make([]*models.Command, 0)
	plan.Transitions = make([]*models.Transition, 0, len(edges))
	plan.Conditions = make([]*models.Condition, 0)

	commands := make(map[string]struct{})
	conditions := make(map[string]struct{})

	for _, node := range nodes {
		if node == nil || node.Data.Step == nil {
			continue
		}

		step := node.Data.Step.Clone()
		step.Position = node.Position
		plan.Steps = append(plan.Steps, step)

		if command := node.Data.Command; command != nil && firstSeen(commands, command.ID) {
			plan.Commands = append(plan.Commands, command.Clone())
		}
	}

	for _, edge := range edges {
		if edge == nil || edge.Data == nil || edge.Data.Transition == nil {
			continue
		}

		plan.Transitions = append(plan.Transitions, edge.Data.Transition.Clone())

		if condition := edge.Data.Condition; condition != nil && firstSeen(conditions, condition.ID) {
			plan.Conditions = append(plan.Conditions, condition.Clone())
		}
	}

	return plan
}

func firstSeen(seen map[string]struct{}, id string) bool {
	if _, ok := seen[id]; ok {
		return false
	}

	seen[id] = struct{}{}

	return true
}
