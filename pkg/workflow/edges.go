package workflow

import "github.com/dukex/planeditor/pkg/models"

// Connect adds a standard edge carrying a new standard transition from source to target.
// Self-loops and parallel edges are allowed.
func (c *Container) Connect(sourceID, targetID string) *models.Edge {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := "transition-" + c.newID()

	edge := &models.Edge{
		ID:     id,
		Source: sourceID,
		Target: targetID,
		Type:   models.EdgeTypeStandard,
		Data: &models.EdgeData{
			Transition: &models.Transition{
				ID:             id,
				PlanID:         c.planID(),
				FromStepID:     sourceID,
				ToStepID:       targetID,
				TransitionType: models.TransitionTypeStandard,
			},
			PathType: c.defaultEdgePathType,
		},
	}

	c.pushHistory("connect")
	c.edges = append(c.edges, edge)

	c.logger.Debug("Edge connected", "edge_id", id, "source", sourceID, "target", targetID)

	return edge.Clone()
}

// UpdateEdge shallow-merges patch into the edge's data bag the way UpdateNode does. A supplied
// transition stays pinned to the edge id and endpoints, and the visual type follows its type.
func (c *Container) UpdateEdge(id string, patch models.EdgePatch) (*models.Edge, error) {
	if patch.PathType != nil {
		if _, err := models.ParseEdgePathType(string(*patch.PathType)); err != nil {
			return nil, err
		}
	}

	if patch.Transition != nil {
		if _, err := models.ParseTransitionType(string(patch.Transition.TransitionType)); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.edgeIndex(id)
	if index < 0 {
		return nil, ErrEdgeNotFound
	}

	if patch.IsEmpty() {
		return c.edges[index].Clone(), nil
	}

	updated := c.edges[index].Clone()
	if updated.Data == nil {
		updated.Data = &models.EdgeData{}
	}

	patch.Apply(updated.Data)

	if transition := updated.Data.Transition; transition != nil {
		if patch.Transition != nil {
			transition.ID = id
		}

		transition.FromStepID = updated.Source
		transition.ToStepID = updated.Target
		updated.Type = models.EdgeTypeFor(transition.TransitionType)
	}

	c.pushHistory("update_edge")
	c.edges[index] = updated

	return updated.Clone(), nil
}

// DeleteEdge removes one edge.
func (c *Container) DeleteEdge(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deleteEdgeLocked(id)
}

func (c *Container) deleteEdgeLocked(id string) error {
	index := c.edgeIndex(id)
	if index < 0 {
		return ErrEdgeNotFound
	}

	c.pushHistory("delete_edge")
	c.edges = append(c.edges[:index:index], c.edges[index+1:]...)

	if c.selectedEdgeID == id {
		c.selectedEdgeID = ""
	}

	return nil
}
