package projection_test

import (
	"testing"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/projection"
	"github.com/dukex/planeditor/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGraph_ResolvesReferences(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan()
	catalog := testutil.CreateTestCatalog()

	nodes, edges := projection.ToGraph(plan, catalog)

	require.Len(t, nodes, len(plan.Steps))
	require.Len(t, edges, len(plan.Transitions))

	action := nodes[0]
	assert.Equal(t, "step-send", action.ID)
	assert.Equal(t, models.StepTypeAction, action.Type)
	assert.Equal(t, plan.Steps[0].Position, action.Position)
	require.NotNil(t, action.Data.Command)
	assert.Equal(t, "cmd-send", action.Data.Command.ID)
	require.NotNil(t, action.Data.CommandType)
	assert.Equal(t, "send_sms", action.Data.CommandType.ID)

	guarded := edges[1]
	assert.Equal(t, "step-decide", guarded.Source)
	assert.Equal(t, "step-done", guarded.Target)
	assert.Equal(t, models.EdgeTypeStandard, guarded.Type)
	require.NotNil(t, guarded.Data.Condition)
	assert.Equal(t, "cond-confirmed", guarded.Data.Condition.ID)
	assert.Equal(t, models.EdgeTypeConditional, models.EdgeVariantFor(guarded))
}

func TestToGraph_DanglingReferencesResolveToNil(t *testing.T) {
	t.Parallel()

	plan := &models.Plan{
		ID:   "plan-1",
		Name: "dangling",
		Steps: []*models.Step{
			{ID: "a", StepType: models.StepTypeAction, CommandID: "missing-command"},
			{ID: "b", StepType: models.StepTypeAction, CommandID: "cmd-orphan"},
		},
		Commands: []*models.Command{{ID: "cmd-orphan", CommandTypeID: "missing-type"}},
		Transitions: []*models.Transition{
			{ID: "t1", FromStepID: "a", ToStepID: "ghost", TransitionType: models.TransitionTypeStandard, ConditionID: "missing"},
		},
	}

	nodes, edges := projection.ToGraph(plan, nil)

	require.Len(t, nodes, 2)
	assert.Nil(t, nodes[0].Data.Command)
	assert.Nil(t, nodes[0].Data.CommandType)
	assert.NotNil(t, nodes[1].Data.Command)
	assert.Nil(t, nodes[1].Data.CommandType)

	require.Len(t, edges, 1)
	assert.Equal(t, "ghost", edges[0].Target)
	assert.Nil(t, edges[0].Data.Condition)
}

func TestToGraph_OwnsDataByValue(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan()
	nodes, edges := projection.ToGraph(plan, testutil.CreateTestCatalog())

	nodes[0].Data.Step.Name = "renamed"
	nodes[0].Data.Command.Parameters["to"] = "changed"
	edges[0].Data.Transition.TransitionType = models.TransitionTypeDefault

	assert.Equal(t, "Send reminder", plan.Steps[0].Name)
	assert.Equal(t, "{{patient.phone}}", plan.Commands[0].Parameters["to"])
	assert.Equal(t, models.TransitionTypeStandard, plan.Transitions[0].TransitionType)
}

func TestToGraph_NilPlan(t *testing.T) {
	t.Parallel()

	nodes, edges := projection.ToGraph(nil, nil)
	assert.Empty(t, nodes)
	assert.Empty(t, edges)
}

func TestToPlan_RoundTrip(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan()
	nodes, edges := projection.ToGraph(plan, testutil.CreateTestCatalog())

	result := projection.ToPlan(nodes, edges, plan)

	assert.Equal(t, plan.ID, result.ID)
	assert.Equal(t, plan.Name, result.Name)
	assert.Equal(t, plan.Description, result.Description)
	assert.Equal(t, plan.StartStepID, result.StartStepID)
	assert.Equal(t, plan.Version, result.Version)
	assert.ElementsMatch(t, plan.Steps, result.Steps)
	assert.ElementsMatch(t, plan.Transitions, result.Transitions)
	assert.ElementsMatch(t, plan.Commands, result.Commands)
	assert.ElementsMatch(t, plan.Conditions, result.Conditions)
}

func TestToPlan_RoundTripSharedReferences(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan(func(p *models.Plan) {
		p.Transitions[0].ConditionID = "cond-confirmed"
		p.Steps[1].CommandID = "cmd-send"
	})
	nodes, edges := projection.ToGraph(plan, testutil.CreateTestCatalog())

	result := projection.ToPlan(nodes, edges, plan)

	assert.Equal(t, plan.Conditions, result.Conditions)
	assert.Equal(t, plan.Commands, result.Commands)
	assert.ElementsMatch(t, plan.Steps, result.Steps)
	assert.ElementsMatch(t, plan.Transitions, result.Transitions)
}

func TestToPlan_CapturesNodePositions(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan()
	nodes, edges := projection.ToGraph(plan, nil)

	nodes[0].Position = models.Position{X: 999, Y: -42}

	result := projection.ToPlan(nodes, edges, plan)

	for i, step := range result.Steps {
		assert.Equal(t, nodes[i].Position, step.Position)
	}

	assert.Equal(t, models.Position{X: 999, Y: -42}, result.Steps[0].Position)
}

func TestToPlan_DropsVisualOnlyEdges(t *testing.T) {
	t.Parallel()

	plan := testutil.CreateTestPlan()
	nodes, edges := projection.ToGraph(plan, nil)

	edges = append(edges,
		&models.Edge{ID: "visual-1", Source: "step-send", Target: "step-done", Type: models.EdgeTypeStandard},
		&models.Edge{ID: "visual-2", Source: "step-send", Target: "step-done", Data: &models.EdgeData{Label: "note"}},
	)

	result := projection.ToPlan(nodes, edges, plan)
	assert.Len(t, result.Transitions, len(plan.Transitions))
}

func TestToPlan_NilMetadata(t *testing.T) {
	t.Parallel()

	result := projection.ToPlan(nil, nil, nil)
	require.NotNil(t, result)
	assert.Empty(t, result.ID)
	assert.Empty(t, result.Steps)
	assert.Empty(t, result.Transitions)
}
