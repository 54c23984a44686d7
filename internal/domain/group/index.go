// Package group indexes drawn points by a derived key (genre, artist name).
package group

// KeyFunc derives the grouping key of an item. The zero key means the item
// is not groupable.
type KeyFunc[K comparable, V any] func(V) K

// Index maps a key to the items sharing it, in insertion order.
// It is rebuilt on every redraw and never patched partially.
type Index[K comparable, V any] struct {
	items map[K][]V
}

// New returns an empty Index.
func New[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{items: make(map[K][]V)}
}

// Reset drops every group.
func (idx *Index[K, V]) Reset() {
	idx.items = make(map[K][]V)
}

// Put appends item to the group keyFn(item). Items with a zero key are skipped.
func (idx *Index[K, V]) Put(item V, keyFn KeyFunc[K, V]) {
	var zero K
	key := keyFn(item)
	if key == zero {
		return
	}
	idx.items[key] = append(idx.items[key], item)
}

// Get returns the items of key in insertion order. A missing key yields an
// empty, non-nil slice.
func (idx *Index[K, V]) Get(key K) []V {
	if list, ok := idx.items[key]; ok {
		return list
	}
	return []V{}
}

// Len returns the number of groups.
func (idx *Index[K, V]) Len() int { return len(idx.items) }
