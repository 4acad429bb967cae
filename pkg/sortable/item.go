package sortable

import (
	"slices"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/signal"
)

// itemState is one rendered item: the element and the reactive values its
// render function reads. With a group render function the same itemState
// travels between containers.
type itemState struct {
	el        dom.Element
	index     *signal.State[int]
	mouseDown *signal.State[bool]
	handles   *signal.State[[]dom.Element]
	scope     *signal.Scope
	disposed  bool
}

func renderItem[T comparable](render RenderFunc[T], item T, idx int, mouseDown bool) (*itemState, error) {
	st := &itemState{
		index:     signal.NewComparable(idx),
		mouseDown: signal.NewComparable(mouseDown),
		handles:   signal.New[[]dom.Element](nil),
		scope:     signal.NewScope(),
	}
	els := render(ItemProps[T]{
		Item:        item,
		Index:       st.index,
		IsMouseDown: st.mouseDown,
		Handle:      st.addHandle,
		Scope:       st.scope,
	})
	els = slices.DeleteFunc(els, func(el dom.Element) bool { return el == nil })
	if len(els) == 0 {
		st.scope.Dispose()
		return nil, errors.New(errors.ErrCodeNoElement, "render for item %v returned no element", item)
	}
	if len(els) > 1 {
		logger.Warn("render returned more than one element, tracking the first", "item", item, "count", len(els))
	}
	st.el = els[0]
	return st, nil
}

// addHandle registers el as a drag handle.
func (st *itemState) addHandle(el dom.Element) func() {
	if el == nil || st.disposed {
		return func() {}
	}
	st.handles.Update(func(hs []dom.Element) []dom.Element {
		return append(slices.Clone(hs), el)
	})
	done := false
	return func() {
		if done {
			return
		}
		done = true
		st.handles.Update(func(hs []dom.Element) []dom.Element {
			i := slices.Index(hs, el)
			if i < 0 {
				return hs
			}
			return slices.Delete(slices.Clone(hs), i, i+1)
		})
	}
}

// listenTargets are the elements that start drags: the handles if any, else
// the item element.
func (st *itemState) listenTargets() []dom.Element {
	if hs := st.handles.Get(); len(hs) > 0 {
		return hs
	}
	return []dom.Element{st.el}
}

// dispose releases the render scope and detaches the element. It is safe to
// call more than once.
func (st *itemState) dispose() {
	if st.disposed {
		return
	}
	st.disposed = true
	st.scope.Dispose()
	detach(st.el)
}

func detach(el dom.Element) {
	if p := el.Parent(); p != nil {
		p.RemoveChild(el)
	}
}
