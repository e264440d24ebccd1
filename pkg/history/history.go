package history

// DefaultCapacity is the number of snapshots kept before the oldest is evicted.
const DefaultCapacity = 50

// History is a linear undo/redo list over snapshots of type T.
//
// Snapshots are pushed before each mutation, so they hold pre-mutation states. The cursor
// equals Len() while the live state is newer than every snapshot. The first Undo from there
// keeps the live state aside as the redo tip. A Push discards everything after the cursor.
type History[T any] struct {
	ring   *Ring[T]
	cursor int
	tip    T
}

// New creates a history with the given capacity.
func New[T any](capacity int) *History[T] {
	return &History[T]{ring: NewRing[T](capacity)}
}

// Push records the state that is about to be replaced.
func (h *History[T]) Push(snapshot T) {
	h.ring.Truncate(h.cursor)
	h.dropTip()
	h.ring.Push(snapshot)
	h.cursor = h.ring.Len()
}

// Undo steps back one snapshot. live is the current state; it is kept so Redo can return
// to it. The second result is false when there is nothing to undo.
func (h *History[T]) Undo(live T) (T, bool) {
	if h.cursor == 0 {
		var zero T

		return zero, false
	}

	if h.cursor == h.ring.Len() {
		h.tip = live
	}

	h.cursor--

	return h.ring.At(h.cursor), true
}

// Redo steps forward one snapshot. The second result is false when nothing was undone.
func (h *History[T]) Redo() (T, bool) {
	var zero T

	if !h.CanRedo() {
		return zero, false
	}

	h.cursor++

	if h.cursor == h.ring.Len() {
		tip := h.tip
		h.dropTip()

		return tip, true
	}

	return h.ring.At(h.cursor), true
}

// CanUndo reports whether Undo would change state.
func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would change state.
func (h *History[T]) CanRedo() bool {
	return h.cursor < h.ring.Len()
}

// Len returns the number of stored snapshots.
func (h *History[T]) Len() int {
	return h.ring.Len()
}

// Index returns the cursor position.
func (h *History[T]) Index() int {
	return h.cursor
}

// Reset drops every snapshot.
func (h *History[T]) Reset() {
	h.ring.Clear()
	h.dropTip()
	h.cursor = 0
}

func (h *History[T]) dropTip() {
	var zero T

	h.tip = zero
}
