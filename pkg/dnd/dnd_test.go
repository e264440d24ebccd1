package dnd_test

import (
	"testing"

	"github.com/dukex/planeditor/pkg/dnd"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/testutil"
	"github.com/dukex/planeditor/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		transfer map[string]string
		want     dnd.Drop
		err      error
	}{
		{
			name:     "step type only",
			transfer: map[string]string{dnd.TypeKey: "wait"},
			want:     dnd.Drop{StepType: models.StepTypeWait},
		},
		{
			name:     "with command type",
			transfer: dnd.Encode(models.StepTypeAction, "send_sms"),
			want:     dnd.Drop{StepType: models.StepTypeAction, CommandTypeID: "send_sms"},
		},
		{
			name:     "missing step type",
			transfer: map[string]string{dnd.CommandTypeIDKey: "send_sms"},
			err:      dnd.ErrEmptyDrop,
		},
		{
			name:     "unknown step type",
			transfer: map[string]string{dnd.TypeKey: "loop"},
			err:      models.ErrUnknownStepType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			drop, err := dnd.Decode(tt.transfer)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, drop)
		})
	}
}

func TestEncode_OmitsEmptyCommandType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{dnd.TypeKey: "join"}, dnd.Encode(models.StepTypeJoin, ""))
}

func TestDrop_Apply(t *testing.T) {
	t.Parallel()

	container := workflow.NewContainer()
	container.LoadPlan(testutil.CreateTestPlan())
	container.SetCommandTypes(testutil.CreateTestCatalog())

	drop, err := dnd.Decode(dnd.Encode(models.StepTypeAction, "send_sms"))
	require.NoError(t, err)

	node, err := drop.Apply(container, models.Position{X: 40, Y: 80})
	require.NoError(t, err)

	assert.Equal(t, models.Position{X: 40, Y: 80}, node.Position)
	assert.Equal(t, "Send SMS", node.Data.Step.Name)
	require.NotNil(t, node.Data.Command)
	assert.Equal(t, "send_sms", node.Data.Command.CommandTypeID)
	assert.True(t, container.CanUndo())
}

func TestBuildPalette(t *testing.T) {
	t.Parallel()

	catalog := append(testutil.CreateTestCatalog(),
		&models.CommandType{ID: "hidden", Name: "Hidden", Status: models.CommandTypeStatusActive},
		&models.CommandType{
			ID: "old", Name: "Old SMS", Status: models.CommandTypeStatusDeprecated,
			UIMetadata: models.CommandTypeUIMetadata{PaletteVisible: true},
		},
		&models.CommandType{
			ID: "misc", Name: "Misc", Status: models.CommandTypeStatusActive,
			UIMetadata: models.CommandTypeUIMetadata{PaletteVisible: true},
		},
	)

	palette := dnd.BuildPalette(catalog, "")
	assert.Len(t, palette.StepTypes, 6)
	assert.Equal(t, "Action", palette.StepTypes[0].Label)
	require.Contains(t, palette.Categories, dnd.OtherCategory)
	assert.Equal(t, "misc", palette.Categories[dnd.OtherCategory][0].Transfer[dnd.CommandTypeIDKey])

	for _, items := range palette.Categories {
		for _, item := range items {
			assert.NotEqual(t, "Hidden", item.Label)
			assert.NotEqual(t, "Old SMS", item.Label)
		}
	}

	filtered := dnd.BuildPalette(catalog, "PARALLEL")
	require.Len(t, filtered.StepTypes, 1)
	assert.Equal(t, "Join", filtered.StepTypes[0].Label)
	assert.Empty(t, filtered.Categories)
}
