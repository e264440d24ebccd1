package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_EvictsOldest(t *testing.T) {
	t.Parallel()

	ring := NewRing[int](3)

	for i := 1; i <= 3; i++ {
		assert.False(t, ring.Push(i))
	}

	assert.True(t, ring.Push(4))
	require.Equal(t, 3, ring.Len())
	assert.Equal(t, 2, ring.At(0))
	assert.Equal(t, 4, ring.At(2))
}

func TestRing_TruncateAndClear(t *testing.T) {
	t.Parallel()

	ring := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		ring.Push(i)
	}

	ring.Truncate(1)
	require.Equal(t, 1, ring.Len())
	assert.Equal(t, 3, ring.At(0))

	ring.Push(9)
	assert.Equal(t, 9, ring.At(1))

	ring.Clear()
	assert.Equal(t, 0, ring.Len())
	assert.Panics(t, func() { ring.At(0) })
}

func TestRing_MinimumCapacity(t *testing.T) {
	t.Parallel()

	ring := NewRing[string](0)
	assert.Equal(t, 1, ring.Cap())
}

func TestHistory_UndoOnEmptyIsNoop(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)

	_, ok := h.Undo(7)
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())

	_, ok = h.Redo()
	assert.False(t, ok)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistory_UndoRestoresPreMutationState(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)

	// live state goes 0 -> 1 -> 2, snapshots are taken before each mutation
	h.Push(0)
	h.Push(1)
	live := 2

	state, ok := h.Undo(live)
	require.True(t, ok)
	assert.Equal(t, 1, state)

	state, ok = h.Undo(state)
	require.True(t, ok)
	assert.Equal(t, 0, state)

	_, ok = h.Undo(state)
	assert.False(t, ok)
}

func TestHistory_RedoInvertsUndo(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)
	h.Push(0)
	h.Push(1)

	state, ok := h.Undo(2)
	require.True(t, ok)
	require.Equal(t, 1, state)
	assert.True(t, h.CanRedo())

	state, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, state)

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistory_PushDiscardsRedoBranch(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)
	h.Push(0)
	h.Push(1)

	state, _ := h.Undo(2)
	state, _ = h.Undo(state)
	require.Equal(t, 0, state)

	h.Push(state)
	assert.False(t, h.CanRedo())
	assert.Equal(t, 1, h.Len())

	state, ok := h.Undo(10)
	require.True(t, ok)
	assert.Equal(t, 0, state)

	state, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, 10, state)
}

func TestHistory_BoundedCapacity(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)

	for i := 0; i < 60; i++ {
		h.Push(i)
		assert.LessOrEqual(t, h.Len(), DefaultCapacity)
	}

	live := 60
	undos := 0

	for {
		state, ok := h.Undo(live)
		if !ok {
			break
		}

		live = state
		undos++
		assert.LessOrEqual(t, h.Len(), DefaultCapacity)
	}

	assert.Equal(t, DefaultCapacity, undos)
	assert.Equal(t, 10, live)
}

func TestHistory_Reset(t *testing.T) {
	t.Parallel()

	h := New[int](DefaultCapacity)
	h.Push(1)
	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Index())
	assert.False(t, h.CanUndo())
}
