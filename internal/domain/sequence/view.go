// Package sequence provides an ordered collection with a visible window.
//
// The full list is what adjacency and boundary lookups resolve against; the
// visible window is the contiguous slice that gets drawn after a zoom or pan.
package sequence

// Predicate filters items during lookups.
type Predicate[T any] func(T) bool

// View is an ordered list plus an inclusive visible index range.
// It holds no UI policy: callers validate the window before setting it.
type View[T any] struct {
	list         []T
	firstVisible int
	lastVisible  int
}

// New returns a View over list with the whole list visible.
func New[T any](list []T) *View[T] {
	return &View[T]{
		list:         list,
		firstVisible: 0,
		lastVisible:  len(list) - 1,
	}
}

// Reset empties the list and the window.
func (v *View[T]) Reset() {
	v.list = nil
	v.firstVisible = 0
	v.lastVisible = 0
}

// Len returns the size of the full list.
func (v *View[T]) Len() int { return len(v.list) }

// All returns the full list. Callers must not modify it.
func (v *View[T]) All() []T { return v.list }

// At returns the item at index i of the full list.
func (v *View[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(v.list) {
		return zero, false
	}
	return v.list[i], true
}

// First returns the first item of the full list.
func (v *View[T]) First() (T, bool) { return v.At(0) }

// Last returns the last item of the full list.
func (v *View[T]) Last() (T, bool) { return v.At(len(v.list) - 1) }

// FirstVisible returns the first item of the visible window.
func (v *View[T]) FirstVisible() (T, bool) { return v.At(v.firstVisible) }

// LastVisible returns the last item of the visible window.
func (v *View[T]) LastVisible() (T, bool) { return v.At(v.lastVisible) }

// VisibleRange returns the inclusive bounds of the visible window.
func (v *View[T]) VisibleRange() (first, last int) {
	return v.firstVisible, v.lastVisible
}

// SetVisibleRange replaces the visible window.
func (v *View[T]) SetVisibleRange(first, last int) {
	v.firstVisible = first
	v.lastVisible = last
}

// ForEachVisible calls fn for each visible item in ascending order.
func (v *View[T]) ForEachVisible(fn func(T)) {
	for i := v.firstVisible; i <= v.lastVisible && i < len(v.list); i++ {
		if i < 0 {
			continue
		}
		fn(v.list[i])
	}
}

// FindFirst returns the first item of the full list matching pred.
func (v *View[T]) FindFirst(pred Predicate[T]) (T, bool) {
	for _, item := range v.list {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FindLast returns the last item of the full list matching pred.
func (v *View[T]) FindLast(pred Predicate[T]) (T, bool) {
	for i := len(v.list) - 1; i >= 0; i-- {
		if pred(v.list[i]) {
			return v.list[i], true
		}
	}
	var zero T
	return zero, false
}

// AdjacentVisible steps from index by direction (+1 or -1) without leaving
// the visible window and returns the first item matching pred. An index
// outside the window steps in from the window edge it faces.
// A nil pred matches everything.
func (v *View[T]) AdjacentVisible(index, direction int, pred Predicate[T]) (T, bool) {
	var zero T
	if direction == 0 {
		return zero, false
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}
	if direction < 0 && index > v.lastVisible {
		index = v.lastVisible + 1
	}
	if direction > 0 && index < v.firstVisible {
		index = v.firstVisible - 1
	}

	for {
		if direction > 0 && index >= v.lastVisible {
			return zero, false
		}
		if direction < 0 && index <= v.firstVisible {
			return zero, false
		}
		index += direction
		item, ok := v.At(index)
		if !ok {
			continue
		}
		if pred == nil || pred(item) {
			return item, true
		}
	}
}
