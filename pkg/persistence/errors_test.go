package persistence_test

import (
	"errors"
	"testing"

	"github.com/dukex/planeditor/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

func TestStandardizedErrors(t *testing.T) {
	t.Parallel()

	t.Run("error checking functions work correctly", func(t *testing.T) {
		t.Parallel()

		err := persistence.NewStateError("LoadState", "workflow-editor-storage", persistence.ErrStateNotFound)

		assert.True(t, persistence.IsStateNotFound(err))
		assert.True(t, errors.Is(err, persistence.ErrStateNotFound))
		assert.False(t, errors.Is(err, persistence.ErrInvalidKey))
		assert.False(t, persistence.IsStateNotFound(errors.New("boom")))
	})

	t.Run("state error contains context", func(t *testing.T) {
		t.Parallel()

		err := persistence.NewStateError("SaveState", "session-1", persistence.ErrInvalidKey)

		assert.Contains(t, err.Error(), "SaveState")
		assert.Contains(t, err.Error(), "session-1")
		assert.Contains(t, err.Error(), "invalid state key")
	})
}
