package sortable

import (
	"slices"

	"github.com/matzehuels/dragsort/pkg/signal"
)

// dragging is the item currently pressed, if any.
type dragging[T comparable] struct {
	item T
	ok   bool
}

// dragContext is shared by the containers that can exchange items: every
// member of a group, or a single ungrouped container.
type dragContext[T comparable] struct {
	state   *signal.State[dragging[T]]
	session *session[T]
}

func newDragContext[T comparable]() *dragContext[T] {
	return &dragContext[T]{state: signal.NewComparable(dragging[T]{})}
}

// Group links containers so items can be dragged between them. Settings on
// the group are inherited by members that leave a field zero.
type Group[T comparable] struct {
	settings Settings
	render   RenderFunc[T]
	members  []*Container[T]
	drag     *dragContext[T]
	cache    map[T]*itemState
}

// NewGroup creates a group. A non-nil render function is shared by members
// without their own, and rendered elements are cached per item so an item
// keeps its element when it changes containers.
func NewGroup[T comparable](settings Settings, render RenderFunc[T]) *Group[T] {
	return &Group[T]{
		settings: settings,
		render:   render,
		drag:     newDragContext[T](),
		cache:    make(map[T]*itemState),
	}
}

// Members returns the mounted containers in registration order.
func (g *Group[T]) Members() []*Container[T] {
	return slices.Clone(g.members)
}

// Dragging returns the item being dragged in any member.
func (g *Group[T]) Dragging() (T, bool) {
	d := g.drag.state.Get()
	return d.item, d.ok
}

// Cached reports whether the shared render cache holds item.
func (g *Group[T]) Cached(item T) bool {
	_, ok := g.cache[item]
	return ok
}

// Dispose drops item's shared element. Disposing an unknown item is a no-op.
func (g *Group[T]) Dispose(item T) {
	st, ok := g.cache[item]
	if !ok {
		return
	}
	delete(g.cache, item)
	st.dispose()
}

func (g *Group[T]) join(c *Container[T]) {
	if !slices.Contains(g.members, c) {
		g.members = append(g.members, c)
	}
}

func (g *Group[T]) leave(c *Container[T]) {
	if i := slices.Index(g.members, c); i >= 0 {
		g.members = slices.Delete(g.members, i, i+1)
	}
}

// shared returns the cached element state for item, rendering it on first
// use.
func (g *Group[T]) shared(item T, idx int, mouseDown bool) (*itemState, error) {
	if st, ok := g.cache[item]; ok {
		return st, nil
	}
	st, err := renderItem(g.render, item, idx, mouseDown)
	if err != nil {
		return nil, err
	}
	g.cache[item] = st
	return st, nil
}

// held reports whether any member tracks item.
func (g *Group[T]) held(item T) bool {
	for _, m := range g.members {
		if _, ok := m.entries[item]; ok {
			return true
		}
	}
	return false
}
