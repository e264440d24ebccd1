package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodePatch_ReplacesWholeParts(t *testing.T) {
	data := NodeData{
		Step:    &Step{ID: "s1", StepType: StepTypeAction, Description: "old", Config: map[string]any{"a": 1}},
		Command: &Command{ID: "c1", Parameters: map[string]any{"p": 1}},
	}

	step := &Step{ID: "s1", StepType: StepTypeAction}
	NodePatch{Step: step}.Apply(&data)

	assert.Empty(t, data.Step.Description)
	assert.Nil(t, data.Step.Config)
	assert.Equal(t, map[string]any{"p": 1}, data.Command.Parameters)

	step.Name = "mutated after apply"
	assert.Empty(t, data.Step.Name)
}

func TestNodePatch_IsEmpty(t *testing.T) {
	assert.True(t, NodePatch{}.IsEmpty())
	assert.False(t, NodePatch{Command: &Command{}}.IsEmpty())
}

func TestEdgePatch_Apply(t *testing.T) {
	label := ""
	pathType := EdgePathTypeSmoothStep

	data := EdgeData{
		Transition: &Transition{ID: "t1", ConditionID: "k1"},
		Condition:  &Condition{ID: "k1"},
		Label:      "yes",
	}

	EdgePatch{Label: &label, PathType: &pathType}.Apply(&data)
	assert.Empty(t, data.Label)
	assert.Equal(t, EdgePathTypeSmoothStep, data.PathType)
	require.NotNil(t, data.Condition)

	EdgePatch{Condition: &Condition{ID: "k2"}}.Apply(&data)
	assert.Equal(t, "k2", data.Transition.ConditionID)

	EdgePatch{ClearCondition: true}.Apply(&data)
	assert.Nil(t, data.Condition)
	assert.Empty(t, data.Transition.ConditionID)
}

func TestEdgePatch_IsEmpty(t *testing.T) {
	label := ""

	assert.True(t, EdgePatch{}.IsEmpty())
	assert.False(t, EdgePatch{Label: &label}.IsEmpty())
	assert.False(t, EdgePatch{ClearCondition: true}.IsEmpty())
}
