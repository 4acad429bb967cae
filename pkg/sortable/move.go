package sortable

import (
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/signal"
)

// NoIndex marks the missing side of a drag that ended in another container.
const NoIndex = -1

// Move returns a copy of items with the element at from moved to index to.
// Out of range indices are logged and items is returned unchanged.
func Move[T any](items []T, from, to int) []T {
	if err := errors.Join(errors.ValidateIndex(from, len(items)), errors.ValidateIndex(to, len(items))); err != nil {
		logger.Error("move ignored", "from", from, "to", to, "len", len(items), "err", err)
		return items
	}
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	return insertAt(out, to, items[from])
}

// Insert returns a copy of items with item inserted at idx, which may equal
// len(items).
func Insert[T any](items []T, idx int, item T) []T {
	if err := errors.ValidateInsertIndex(idx, len(items)); err != nil {
		logger.Error("insert ignored", "index", idx, "len", len(items), "err", err)
		return items
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return insertAt(out, idx, item)
}

// Remove returns a copy of items without the element at idx.
func Remove[T any](items []T, idx int) []T {
	if err := errors.ValidateIndex(idx, len(items)); err != nil {
		logger.Error("remove ignored", "index", idx, "len", len(items), "err", err)
		return items
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

func insertAt[T any](s []T, idx int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

// SliceHandlers returns callbacks applying moves, inserts and removals to
// state. Assign the result to Options.Callbacks and add OnDragStart,
// OnDragEnd or OnClick as needed.
func SliceHandlers[T comparable](state *signal.State[[]T]) Callbacks[T] {
	return Callbacks[T]{
		OnMove: func(_ T, from, to int) {
			state.Update(func(s []T) []T { return Move(s, from, to) })
		},
		OnInsert: func(item T, idx int) {
			state.Update(func(s []T) []T { return Insert(s, idx, item) })
		},
		OnRemove: func(_ T, idx int) {
			state.Update(func(s []T) []T { return Remove(s, idx) })
		},
	}
}
