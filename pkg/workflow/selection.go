package workflow

import "github.com/dukex/planeditor/pkg/models"

// SelectNode selects one node and clears the edge selection. An empty id clears the node selection.
func (c *Container) SelectNode(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedNodeID = id
	c.selectedEdgeID = ""

	for _, node := range c.nodes {
		node.Selected = id != "" && node.ID == id
	}
}

// SelectEdge selects one edge and clears the node selection. An empty id clears the edge selection.
func (c *Container) SelectEdge(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedEdgeID = id
	c.selectedNodeID = ""

	for _, node := range c.nodes {
		node.Selected = false
	}
}

// SetNodeSelection sets the multi-select flags from the canvas selection box.
func (c *Container) SetNodeSelection(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	for _, node := range c.nodes {
		_, node.Selected = selected[node.ID]
	}

	if len(ids) > 0 {
		c.selectedEdgeID = ""
	}
}

// SelectedNodeID returns the selected node id, or "".
func (c *Container) SelectedNodeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectedNodeID
}

// SelectedEdgeID returns the selected edge id, or "".
func (c *Container) SelectedEdgeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectedEdgeID
}

// SelectedNode returns a copy of the selected node, or nil.
func (c *Container) SelectedNode() *models.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.nodeIndex(c.selectedNodeID)
	if index < 0 {
		return nil
	}

	return c.nodes[index].Clone()
}

// SelectedEdge returns a copy of the selected edge, or nil.
func (c *Container) SelectedEdge() *models.Edge {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.edgeIndex(c.selectedEdgeID)
	if index < 0 {
		return nil
	}

	return c.edges[index].Clone()
}

// AlignNodesVertical stacks the selected nodes on the horizontal center of their bounding box.
// It reports false and records nothing with fewer than two selected nodes.
func (c *Container) AlignNodesVertical() bool {
	return c.align("align_vertical", func(n *models.Node) (float64, float64) {
		return n.Position.X, n.RenderedWidth()
	}, func(n *models.Node, v float64) {
		n.Position.X = v
	})
}

// AlignNodesHorizontal lines the selected nodes up on the vertical center of their bounding box.
func (c *Container) AlignNodesHorizontal() bool {
	return c.align("align_horizontal", func(n *models.Node) (float64, float64) {
		return n.Position.Y, n.RenderedHeight()
	}, func(n *models.Node, v float64) {
		n.Position.Y = v
	})
}

func (c *Container) align(operation string, extent func(*models.Node) (float64, float64), set func(*models.Node, float64)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := make([]*models.Node, 0)

	for _, node := range c.nodes {
		if node.Selected {
			selected = append(selected, node)
		}
	}

	if len(selected) < 2 {
		return false
	}

	start, size := extent(selected[0])
	low, high := start, start+size

	for _, node := range selected[1:] {
		start, size = extent(node)
		low = min(low, start)
		high = max(high, start+size)
	}

	center := (low + high) / 2

	c.pushHistory(operation)

	for _, node := range selected {
		_, size = extent(node)
		set(node, center-size/2)
	}

	return true
}

// DeleteSelected deletes the selected node, or the selected edge when no node is selected.
// It reports false when nothing is selected.
func (c *Container) DeleteSelected() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.selectedNodeID != "":
		return true, c.deleteNodeLocked(c.selectedNodeID)
	case c.selectedEdgeID != "":
		return true, c.deleteEdgeLocked(c.selectedEdgeID)
	default:
		return false, nil
	}
}
