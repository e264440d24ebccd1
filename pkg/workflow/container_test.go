package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dukex/planeditor/pkg/history"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/testutil"
	"github.com/dukex/planeditor/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saverFunc func(ctx context.Context, planID string, steps []models.StepPosition) error

func (f saverFunc) SavePositions(ctx context.Context, planID string, steps []models.StepPosition) error {
	return f(ctx, planID, steps)
}

func sequentialIDs() workflow.Option {
	var counter atomic.Int64

	return workflow.WithIDGenerator(func() string {
		return fmt.Sprintf("%d", counter.Add(1))
	})
}

func loadedContainer(t *testing.T, opts ...workflow.Option) *workflow.Container {
	t.Helper()

	c := workflow.NewContainer(append([]workflow.Option{sequentialIDs()}, opts...)...)
	c.SetCommandTypes(testutil.CreateTestCatalog())
	c.LoadPlan(testutil.CreateTestPlan())

	return c
}

func TestContainer_AddThenUndo(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())

	node, err := c.AddNode(models.StepTypeDecision, models.Position{X: 100, Y: 100}, "")
	require.NoError(t, err)

	nodes := c.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, models.StepTypeDecision, nodes[0].Type)
	assert.Equal(t, "New decision", nodes[0].Data.Step.Name)
	assert.Equal(t, node.ID, nodes[0].ID)
	assert.Nil(t, nodes[0].Data.Command)

	require.True(t, c.Undo())
	assert.Empty(t, c.Nodes())

	require.True(t, c.Redo())
	assert.Len(t, c.Nodes(), 1)
}

func TestContainer_AddNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		stepType      models.StepType
		commandTypeID string
		expectedName  string
		hasCommand    bool
	}{
		{name: "action with catalog entry", stepType: models.StepTypeAction, commandTypeID: "send_sms", expectedName: "Send SMS", hasCommand: true},
		{name: "action with unknown command type", stepType: models.StepTypeAction, commandTypeID: "missing", expectedName: "New action"},
		{name: "action without command type", stepType: models.StepTypeAction, expectedName: "New action"},
		{name: "wait with command type", stepType: models.StepTypeWait, commandTypeID: "wait_timer", expectedName: "Wait Timer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := loadedContainer(t)

			node, err := c.AddNode(tt.stepType, models.Position{X: 5, Y: 6}, tt.commandTypeID)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedName, node.Data.Step.Name)
			assert.Equal(t, "plan-reminder", node.Data.Step.PlanID)
			assert.Equal(t, models.Position{X: 5, Y: 6}, node.Data.Step.Position)
			assert.Contains(t, node.ID, "step-")

			if tt.hasCommand {
				require.NotNil(t, node.Data.Command)
				assert.Equal(t, "cmd-"+node.ID, node.Data.Command.ID)
				assert.Equal(t, node.Data.Command.ID, node.Data.Step.CommandID)
				assert.Equal(t, tt.commandTypeID, node.Data.Command.CommandTypeID)
				assert.Empty(t, node.Data.Command.Parameters)
				require.NotNil(t, node.Data.CommandType)
			} else {
				assert.Nil(t, node.Data.Command)
				assert.Empty(t, node.Data.Step.CommandID)
			}
		})
	}
}

func TestContainer_AddNode_UnknownStepType(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer()

	_, err := c.AddNode("loop", models.Position{}, "")
	require.ErrorIs(t, err, models.ErrUnknownStepType)
	assert.Equal(t, 0, c.HistoryLen())
	assert.Empty(t, c.Nodes())
}

func TestContainer_ConnectCreatesStandardEdge(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())
	a, err := c.AddNode(models.StepTypeAction, models.Position{}, "")
	require.NoError(t, err)
	b, err := c.AddNode(models.StepTypeTerminal, models.Position{Y: 200}, "")
	require.NoError(t, err)

	edge := c.Connect(a.ID, b.ID)

	edges := c.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, edge.ID, edges[0].ID)
	assert.Equal(t, a.ID, edges[0].Source)
	assert.Equal(t, b.ID, edges[0].Target)
	assert.Equal(t, models.EdgeTypeStandard, edges[0].Type)
	require.NotNil(t, edges[0].Data.Transition)
	assert.Equal(t, models.TransitionTypeStandard, edges[0].Data.Transition.TransitionType)
	assert.Equal(t, edge.ID, edges[0].Data.Transition.ID)
	assert.Equal(t, models.EdgePathTypeBezier, edges[0].Data.PathType)
}

func TestContainer_ConnectAllowsLoopsAndDuplicates(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	require.NoError(t, c.SetDefaultEdgePathType(models.EdgePathTypeSmoothStep))

	loop := c.Connect("step-send", "step-send")
	first := c.Connect("step-send", "step-done")
	second := c.Connect("step-send", "step-done")

	assert.Equal(t, loop.Source, loop.Target)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.EdgePathTypeSmoothStep, second.Data.PathType)
	assert.Len(t, c.Edges(), 6)
}

func TestContainer_SetDefaultEdgePathType_Invalid(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer()
	require.ErrorIs(t, c.SetDefaultEdgePathType("zigzag"), models.ErrUnknownEdgePathType)
	assert.Equal(t, models.EdgePathTypeBezier, c.DefaultEdgePathType())
}

func TestContainer_DeleteNodeCascades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		nodeID   string
		attached int
	}{
		{nodeID: "step-send", attached: 2},
		{nodeID: "step-decide", attached: 3},
		{nodeID: "step-done", attached: 1},
	}

	for _, tt := range tests {
		t.Run(tt.nodeID, func(t *testing.T) {
			t.Parallel()

			c := loadedContainer(t)
			nodesBefore, edgesBefore := len(c.Nodes()), len(c.Edges())

			c.SelectNode(tt.nodeID)
			require.NoError(t, c.DeleteNode(tt.nodeID))

			assert.Len(t, c.Nodes(), nodesBefore-1)
			assert.Len(t, c.Edges(), edgesBefore-tt.attached)

			for _, edge := range c.Edges() {
				assert.NotEqual(t, tt.nodeID, edge.Source)
				assert.NotEqual(t, tt.nodeID, edge.Target)
			}

			assert.Empty(t, c.SelectedNodeID())
		})
	}
}

func TestContainer_DeleteMissing(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	require.ErrorIs(t, c.DeleteNode("ghost"), workflow.ErrNodeNotFound)
	require.ErrorIs(t, c.DeleteEdge("ghost"), workflow.ErrEdgeNotFound)
	assert.Equal(t, 0, c.HistoryLen())
}

func TestContainer_DeleteEdge(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	c.SelectEdge("t-send-decide")

	require.NoError(t, c.DeleteEdge("t-send-decide"))
	assert.Len(t, c.Edges(), 2)
	assert.Len(t, c.Nodes(), 3)
	assert.Empty(t, c.SelectedEdgeID())
}

func TestContainer_SelectionExclusivity(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	c.SelectEdge("t-send-decide")
	c.SelectNode("step-send")
	assert.Equal(t, "step-send", c.SelectedNodeID())
	assert.Empty(t, c.SelectedEdgeID())
	require.NotNil(t, c.SelectedNode())

	c.SelectEdge("t-send-decide")
	assert.Empty(t, c.SelectedNodeID())
	assert.Equal(t, "t-send-decide", c.SelectedEdgeID())
	require.NotNil(t, c.SelectedEdge())

	c.SelectNode("")
	c.SelectEdge("")
	assert.Empty(t, c.SelectedNodeID())
	assert.Empty(t, c.SelectedEdgeID())
	assert.Nil(t, c.SelectedNode())
	assert.Nil(t, c.SelectedEdge())
	assert.Equal(t, 0, c.HistoryLen())
}

func TestContainer_AlignBelowThresholdIsNoop(t *testing.T) {
	t.Parallel()

	for _, selection := range [][]string{nil, {"step-send"}} {
		c := loadedContainer(t)
		c.SetNodeSelection(selection)
		before := c.Nodes()

		assert.False(t, c.AlignNodesVertical())
		assert.False(t, c.AlignNodesHorizontal())

		assert.Equal(t, 0, c.HistoryLen())

		for i, node := range c.Nodes() {
			assert.Equal(t, before[i].Position, node.Position)
		}
	}
}

func TestContainer_AlignNodesVertical(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())
	a, _ := c.AddNode(models.StepTypeAction, models.Position{X: 0, Y: 10}, "")
	b, _ := c.AddNode(models.StepTypeWait, models.Position{X: 400, Y: 300}, "")
	other, _ := c.AddNode(models.StepTypeJoin, models.Position{X: 900, Y: 900}, "")
	require.NoError(t, c.SetNodeDimensions(b.ID, 100, 40))

	c.SetNodeSelection([]string{a.ID, b.ID})
	historyBefore := c.HistoryLen()

	require.True(t, c.AlignNodesVertical())
	assert.Equal(t, historyBefore+1, c.HistoryLen())

	gotA, err := c.Node(a.ID)
	require.NoError(t, err)
	gotB, err := c.Node(b.ID)
	require.NoError(t, err)
	gotOther, err := c.Node(other.ID)
	require.NoError(t, err)

	// bounds 0..500, center 250
	assert.InDelta(t, 160, gotA.Position.X, 1e-9)
	assert.InDelta(t, 200, gotB.Position.X, 1e-9)
	assert.InDelta(t, 10, gotA.Position.Y, 1e-9)
	assert.InDelta(t, 300, gotB.Position.Y, 1e-9)
	assert.Equal(t, models.Position{X: 900, Y: 900}, gotOther.Position)
}

func TestContainer_AlignNodesHorizontal(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())
	a, _ := c.AddNode(models.StepTypeAction, models.Position{X: 0, Y: 0}, "")
	b, _ := c.AddNode(models.StepTypeWait, models.Position{X: 300, Y: 200}, "")

	c.SetNodeSelection([]string{a.ID, b.ID})
	require.True(t, c.AlignNodesHorizontal())

	for _, node := range c.Nodes() {
		// bounds 0..256, center 128
		assert.InDelta(t, 100, node.Position.Y, 1e-9)
	}

	require.True(t, c.Undo())

	gotB, err := c.Node(b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 200, gotB.Position.Y, 1e-9)
}

func TestContainer_UndoRedoInverse(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	node, err := c.AddNode(models.StepTypeWait, models.Position{X: 1, Y: 2}, "")
	require.NoError(t, err)
	c.Connect("step-done", node.ID)
	_, err = c.UpdateNode("step-send", models.NodePatch{Step: &models.Step{StepType: models.StepTypeAction, Name: "Renamed"}})
	require.NoError(t, err)
	require.NoError(t, c.DeleteNode("step-decide"))

	for range 3 {
		nodes, edges := c.Nodes(), c.Edges()

		require.True(t, c.Undo())
		require.True(t, c.Redo())

		assert.Equal(t, nodes, c.Nodes())
		assert.Equal(t, edges, c.Edges())

		require.True(t, c.Undo())
	}

	require.True(t, c.Undo())
	assert.False(t, c.Undo())
	assert.Len(t, c.Nodes(), 3)
	assert.Len(t, c.Edges(), 3)
	assert.True(t, c.CanRedo())
}

func TestContainer_MutationAfterUndoDropsRedo(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())
	_, _ = c.AddNode(models.StepTypeAction, models.Position{}, "")
	_, _ = c.AddNode(models.StepTypeAction, models.Position{}, "")

	require.True(t, c.Undo())
	_, _ = c.AddNode(models.StepTypeTerminal, models.Position{}, "")

	assert.False(t, c.CanRedo())
	assert.False(t, c.Redo())
	assert.Len(t, c.Nodes(), 2)
}

func TestContainer_HistoryBound(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer(sequentialIDs())

	for i := range 60 {
		_, err := c.AddNode(models.StepTypeWait, models.Position{X: float64(i)}, "")
		require.NoError(t, err)
		assert.LessOrEqual(t, c.HistoryLen(), history.DefaultCapacity)
	}

	for range history.DefaultCapacity {
		require.True(t, c.Undo())
		assert.LessOrEqual(t, c.HistoryLen(), history.DefaultCapacity)
	}

	assert.Len(t, c.Nodes(), 10)
	assert.False(t, c.Undo())
	assert.Len(t, c.Nodes(), 10)
}

func TestContainer_UpdateNodeReplacesSuppliedParts(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	updated, err := c.UpdateNode("step-send", models.NodePatch{
		Step: &models.Step{ID: "hijack", StepType: models.StepTypeAction, Name: "Send confirmation", CommandID: "cmd-send"},
		Command: &models.Command{
			ID:            "cmd-send",
			CommandTypeID: "send_sms",
			Parameters:    map[string]any{"message": "Reply YES"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "step-send", updated.Data.Step.ID)
	assert.Equal(t, "plan-reminder", updated.Data.Step.PlanID)
	assert.Equal(t, "Send confirmation", updated.Data.Step.Name)
	assert.Equal(t, models.StepTypeAction, updated.Type)
	assert.Equal(t, map[string]any{"message": "Reply YES"}, updated.Data.Command.Parameters)
	require.NotNil(t, updated.Data.CommandType, "parts not supplied are kept")
	assert.Equal(t, 1, c.HistoryLen())

	require.True(t, c.Undo())

	node, err := c.Node("step-send")
	require.NoError(t, err)
	assert.Equal(t, "Send reminder", node.Data.Step.Name)
	assert.Equal(t, "{{patient.phone}}", node.Data.Command.Parameters["to"])
}

func TestContainer_UpdateNodeClearsFields(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	node, err := c.Node("step-decide")
	require.NoError(t, err)

	step := *node.Data.Step
	step.Description = "first"
	_, err = c.UpdateNode("step-decide", models.NodePatch{Step: &step})
	require.NoError(t, err)

	step.Description = ""
	step.Config = nil
	updated, err := c.UpdateNode("step-decide", models.NodePatch{Step: &step})
	require.NoError(t, err)

	assert.Empty(t, updated.Data.Step.Description)
	assert.Empty(t, updated.Data.Step.Config)
	assert.Equal(t, "Confirmed?", updated.Data.Step.Name)
	assert.Equal(t, 2, c.HistoryLen())
}

func TestContainer_UpdateNodeStepType(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	for _, stepType := range []models.StepType{"loop", ""} {
		_, err := c.UpdateNode("step-done", models.NodePatch{Step: &models.Step{StepType: stepType, Name: "x"}})
		require.ErrorIs(t, err, models.ErrUnknownStepType)
	}

	assert.Equal(t, 0, c.HistoryLen())

	updated, err := c.UpdateNode("step-done", models.NodePatch{Step: &models.Step{StepType: models.StepTypeWait, Name: "Hold"}})
	require.NoError(t, err)
	assert.Equal(t, models.StepTypeWait, updated.Type)
}

func TestContainer_UpdateNodeMissing(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	_, err := c.UpdateNode("ghost", models.NodePatch{Step: &models.Step{StepType: models.StepTypeWait, Name: "x"}})
	require.ErrorIs(t, err, workflow.ErrNodeNotFound)

	unchanged, err := c.UpdateNode("step-send", models.NodePatch{})
	require.NoError(t, err)
	assert.Equal(t, "Send reminder", unchanged.Data.Step.Name)
	assert.Equal(t, 0, c.HistoryLen())
}

func TestContainer_UpdateEdge(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	priority := 2
	label := "retry"
	smoothStep := models.EdgePathTypeSmoothStep

	updated, err := c.UpdateEdge("t-send-decide", models.EdgePatch{
		Transition: &models.Transition{ID: "moved", TransitionType: models.TransitionTypeParallelFork, FromStepID: "elsewhere"},
		Condition:  &models.Condition{ID: "cond-new", Expression: "attempts < 3", Priority: &priority},
		Label:      &label,
		PathType:   &smoothStep,
	})
	require.NoError(t, err)

	assert.Equal(t, models.EdgeTypeParallelFork, updated.Type)
	assert.Equal(t, "step-send", updated.Data.Transition.FromStepID)
	assert.Equal(t, "t-send-decide", updated.Data.Transition.ID)
	assert.Equal(t, "cond-new", updated.Data.Condition.ID)
	assert.Equal(t, "cond-new", updated.Data.Transition.ConditionID)
	assert.Equal(t, "retry", updated.Data.Label)
	assert.Equal(t, models.EdgePathTypeSmoothStep, updated.Data.PathType)
	assert.Equal(t, models.EdgeTypeConditional, models.EdgeVariantFor(updated))

	zigzag := models.EdgePathType("zigzag")
	_, err = c.UpdateEdge("t-send-decide", models.EdgePatch{PathType: &zigzag})
	require.ErrorIs(t, err, models.ErrUnknownEdgePathType)

	_, err = c.UpdateEdge("t-send-decide", models.EdgePatch{Transition: &models.Transition{TransitionType: "conditional"}})
	require.ErrorIs(t, err, models.ErrUnknownTransitionType)

	_, err = c.UpdateEdge("ghost", models.EdgePatch{Label: &label})
	require.ErrorIs(t, err, workflow.ErrEdgeNotFound)
	assert.Equal(t, 1, c.HistoryLen())
}

func TestContainer_UpdateEdgeClearsFields(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	yes, empty := "yes", ""

	_, err := c.UpdateEdge("t-decide-done", models.EdgePatch{Label: &yes})
	require.NoError(t, err)

	updated, err := c.UpdateEdge("t-decide-done", models.EdgePatch{Label: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Data.Label)
	require.NotNil(t, updated.Data.Condition, "fields not supplied are kept")

	updated, err = c.UpdateEdge("t-decide-done", models.EdgePatch{ClearCondition: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Data.Condition)
	assert.Empty(t, updated.Data.Transition.ConditionID)
	assert.Equal(t, models.EdgeTypeStandard, models.EdgeVariantFor(updated))

	plan := c.ToPlan()
	assert.Empty(t, plan.Conditions)
	assert.Equal(t, 3, c.HistoryLen())
}

func TestContainer_LayoutFeedbackSkipsHistory(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	c.MoveNodes(map[string]models.Position{"step-send": {X: 42, Y: 24}, "ghost": {X: 1}})
	require.NoError(t, c.SetNodeDimensions("step-send", 200, 60))
	require.ErrorIs(t, c.SetNodeDimensions("ghost", 1, 1), workflow.ErrNodeNotFound)

	assert.Equal(t, 0, c.HistoryLen())

	plan := c.ToPlan()
	require.NotNil(t, plan)
	assert.Equal(t, models.Position{X: 42, Y: 24}, plan.Steps[0].Position)

	node, err := c.Node("step-send")
	require.NoError(t, err)
	assert.InDelta(t, 200, node.RenderedWidth(), 0)
}

func TestContainer_LoadPlanResetsHistoryAndSelection(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	_, _ = c.AddNode(models.StepTypeWait, models.Position{}, "")
	c.SelectNode("step-send")

	c.LoadPlan(testutil.CreateTestPlan())

	assert.Equal(t, 0, c.HistoryLen())
	assert.False(t, c.CanUndo())
	assert.Empty(t, c.SelectedNodeID())
	assert.Len(t, c.Nodes(), 3)
}

func TestContainer_ToPlanWithoutPlan(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer()
	assert.Nil(t, c.ToPlan())
	assert.Nil(t, c.Plan())
}

func TestContainer_StateRoundTrip(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	require.NoError(t, c.SetDefaultEdgePathType(models.EdgePathTypeSmoothStep))
	c.MoveNodes(map[string]models.Position{"step-done": {X: 7, Y: 8}})

	state := c.State()
	assert.Equal(t, models.EdgePathTypeSmoothStep, state.DefaultEdgePathType)

	restored := workflow.NewContainer()
	restored.Restore(state)

	assert.Equal(t, c.Nodes(), restored.Nodes())
	assert.Equal(t, c.Edges(), restored.Edges())
	assert.Equal(t, c.Plan(), restored.Plan())
	assert.Equal(t, models.EdgePathTypeSmoothStep, restored.DefaultEdgePathType())
}

func TestContainer_SavePlan(t *testing.T) {
	t.Parallel()

	var received []models.StepPosition

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := loadedContainer(t,
		workflow.WithClock(func() time.Time { return now }),
		workflow.WithSaver(saverFunc(func(_ context.Context, planID string, steps []models.StepPosition) error {
			assert.Equal(t, "plan-reminder", planID)
			received = steps

			return nil
		})),
	)
	c.MoveNodes(map[string]models.Position{"step-send": {X: 11, Y: 12}})

	result := c.SavePlan(t.Context())

	assert.Equal(t, workflow.SaveResult{Success: true}, result)
	require.Len(t, received, 3)
	assert.Equal(t, models.StepPosition{ID: "step-send", Position: models.Position{X: 11, Y: 12}}, received[0])
	assert.False(t, c.IsSaving())
	assert.Equal(t, now, c.LastSaved())
	assert.Equal(t, workflow.SaveStatusSaved, c.SaveStatus(now.Add(time.Second)))
	assert.Equal(t, workflow.SaveStatusIdle, c.SaveStatus(now.Add(workflow.SaveStatusReset)))
}

func TestContainer_SavePlanFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := loadedContainer(t,
		workflow.WithClock(func() time.Time { return now }),
		workflow.WithSaver(saverFunc(func(context.Context, string, []models.StepPosition) error {
			return errors.New("Save failed: 500")
		})),
	)

	result := c.SavePlan(t.Context())

	assert.False(t, result.Success)
	assert.Equal(t, "Save failed: 500", result.Error)
	assert.False(t, c.IsSaving())
	assert.Equal(t, "Save failed: 500", c.SaveError())
	assert.Equal(t, workflow.SaveStatusError, c.SaveStatus(now))
	assert.Equal(t, workflow.SaveStatusIdle, c.SaveStatus(now.Add(5*time.Second)))
	assert.Len(t, c.Nodes(), 3)
}

func TestContainer_SavePlanWithoutPlan(t *testing.T) {
	t.Parallel()

	c := workflow.NewContainer()

	result := c.SavePlan(t.Context())
	assert.Equal(t, workflow.SaveResult{Error: "No plan loaded"}, result)
}

func TestContainer_SavePlanWithoutSaver(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	result := c.SavePlan(t.Context())
	assert.False(t, result.Success)
	assert.Equal(t, workflow.ErrNoSaver.Error(), result.Error)
}

func TestContainer_SavePlanRejectsOverlap(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	c := loadedContainer(t, workflow.WithSaver(saverFunc(func(context.Context, string, []models.StepPosition) error {
		close(started)
		<-release

		return nil
	})))

	done := make(chan workflow.SaveResult)

	go func() {
		done <- c.SavePlan(context.Background())
	}()

	<-started
	assert.True(t, c.IsSaving())
	assert.Equal(t, workflow.SaveStatusSaving, c.SaveStatus(time.Now()))

	overlapping := c.SavePlan(t.Context())
	assert.False(t, overlapping.Success)
	assert.Equal(t, workflow.ErrSaveInProgress.Error(), overlapping.Error)

	close(release)
	assert.True(t, (<-done).Success)
	assert.False(t, c.IsSaving())
}

func TestContainer_Revision(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	start := c.Revision()

	c.SelectNode("step-send")
	assert.Equal(t, start, c.Revision(), "selection is not an edit")

	c.MoveNodes(map[string]models.Position{"step-send": {X: 1, Y: 1}})
	afterMove := c.Revision()
	assert.Greater(t, afterMove, start)

	c.MoveNodes(map[string]models.Position{"step-send": {X: 1, Y: 1}})
	assert.Equal(t, afterMove, c.Revision(), "same position is not an edit")

	c.Connect("step-send", "step-done")
	afterConnect := c.Revision()
	assert.Greater(t, afterConnect, afterMove)

	require.True(t, c.Undo())
	assert.Greater(t, c.Revision(), afterConnect)
}

func TestContainer_DeleteSelected(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)

	deleted, err := c.DeleteSelected()
	require.NoError(t, err)
	assert.False(t, deleted)

	c.SelectEdge("t-send-decide")
	deleted, err = c.DeleteSelected()
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, c.Edges(), 2)

	c.SelectNode("step-done")
	deleted, err = c.DeleteSelected()
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, c.Nodes(), 2)
	assert.Empty(t, c.SelectedNodeID())
}

func TestContainer_DeleteSelectedConcurrent(t *testing.T) {
	t.Parallel()

	c := loadedContainer(t)
	c.SelectNode("step-decide")

	const workers = 8

	var (
		wg      sync.WaitGroup
		deleted atomic.Int32
		errs    = make(chan error, workers)
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ok, err := c.DeleteSelected()
			if err != nil {
				errs <- err
			}

			if ok {
				deleted.Add(1)
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Equal(t, int32(1), deleted.Load())
	assert.Len(t, c.Nodes(), 2)
	assert.Equal(t, 1, c.HistoryLen())
}
