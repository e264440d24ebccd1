// Package history implements the bounded linear undo/redo history of the editor graph.
package history

// Ring is a fixed-capacity FIFO arena. Pushing onto a full ring evicts the oldest entry.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing allocates a ring with the given capacity. Capacities below one are raised to one.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring[T]{items: make([]T, capacity)}
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Push appends v and reports whether the oldest entry was evicted to make room.
func (r *Ring[T]) Push(v T) bool {
	if r.size < len(r.items) {
		r.items[r.slot(r.size)] = v
		r.size++

		return false
	}

	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)

	return true
}

// At returns the i-th entry counted from the oldest. It panics when i is out of range.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("history: ring index out of range")
	}

	return r.items[r.slot(i)]
}

// Truncate keeps the n oldest entries and drops the rest.
func (r *Ring[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}

	var zero T

	for i := n; i < r.size; i++ {
		r.items[r.slot(i)] = zero
	}

	if n < r.size {
		r.size = n
	}
}

// Clear drops every entry.
func (r *Ring[T]) Clear() {
	r.Truncate(0)
	r.head = 0
}

func (r *Ring[T]) slot(i int) int {
	return (r.head + i) % len(r.items)
}
