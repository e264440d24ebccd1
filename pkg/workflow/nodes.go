package workflow

import (
	"fmt"

	"github.com/dukex/planeditor/pkg/models"
)

// AddNode appends a node for a new step. The step is named after the command type when
// commandTypeID resolves in the catalog, else "New <stepType>". Action steps with a resolved
// command type also get a Command with empty parameters.
func (c *Container) AddNode(stepType models.StepType, position models.Position, commandTypeID string) (*models.Node, error) {
	if _, err := models.ParseStepType(string(stepType)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := "step-" + c.newID()
	commandType := c.findCommandType(commandTypeID)

	step := &models.Step{
		ID:       id,
		PlanID:   c.planID(),
		StepType: stepType,
		Name:     fmt.Sprintf("New %s", stepType),
		Position: position,
	}

	if commandType != nil {
		step.Name = commandType.Name
	}

	var command *models.Command

	if commandType != nil && stepType == models.StepTypeAction {
		command = &models.Command{
			ID:            "cmd-" + id,
			CommandTypeID: commandType.ID,
			Parameters:    map[string]any{},
		}
		step.CommandID = command.ID
	}

	node := &models.Node{
		ID:       id,
		Type:     stepType,
		Position: position,
		Data: models.NodeData{
			Step:        step,
			Command:     command,
			CommandType: commandType.Clone(),
		},
	}

	c.pushHistory("add_node")
	c.nodes = append(c.nodes, node)

	c.logger.Debug("Node added", "node_id", id, "step_type", stepType)

	return node.Clone(), nil
}

// UpdateNode shallow-merges patch into the node's data bag: a supplied step or command replaces
// the current one whole. The step id and plan id stay pinned to the node, and the step type must
// be one AddNode would accept. An empty patch changes nothing and records no history.
func (c *Container) UpdateNode(id string, patch models.NodePatch) (*models.Node, error) {
	if patch.Step != nil {
		if _, err := models.ParseStepType(string(patch.Step.StepType)); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.nodeIndex(id)
	if index < 0 {
		return nil, ErrNodeNotFound
	}

	if patch.IsEmpty() {
		return c.nodes[index].Clone(), nil
	}

	updated := c.nodes[index].Clone()
	planID := c.planID()

	if current := updated.Data.Step; current != nil && current.PlanID != "" {
		planID = current.PlanID
	}

	patch.Apply(&updated.Data)

	if step := updated.Data.Step; patch.Step != nil {
		step.ID = id
		step.PlanID = planID
		updated.Type = step.StepType
	}

	c.pushHistory("update_node")
	c.nodes[index] = updated

	return updated.Clone(), nil
}

// DeleteNode removes the node and every edge touching it.
func (c *Container) DeleteNode(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deleteNodeLocked(id)
}

func (c *Container) deleteNodeLocked(id string) error {
	index := c.nodeIndex(id)
	if index < 0 {
		return ErrNodeNotFound
	}

	c.pushHistory("delete_node")

	c.nodes = append(c.nodes[:index:index], c.nodes[index+1:]...)

	edges := make([]*models.Edge, 0, len(c.edges))
	for _, edge := range c.edges {
		if edge.Source != id && edge.Target != id {
			edges = append(edges, edge)
		}
	}

	removed := len(c.edges) - len(edges)
	c.edges = edges

	if c.selectedNodeID == id {
		c.selectedNodeID = ""
	}

	if c.selectedEdgeID != "" && c.edgeIndex(c.selectedEdgeID) < 0 {
		c.selectedEdgeID = ""
	}

	c.logger.Debug("Node deleted", "node_id", id, "edges_removed", removed)

	return nil
}

// MoveNodes applies canvas drag feedback. Unknown ids are ignored. It does not record history.
func (c *Container) MoveNodes(positions map[string]models.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, node := range c.nodes {
		if position, ok := positions[node.ID]; ok && position != node.Position {
			node.Position = position
			c.revision++
		}
	}
}

// SetNodeDimensions stores the size measured by the canvas. It does not record history.
func (c *Container) SetNodeDimensions(id string, width, height float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.nodeIndex(id)
	if index < 0 {
		return ErrNodeNotFound
	}

	c.nodes[index].Width = &width
	c.nodes[index].Height = &height

	return nil
}
