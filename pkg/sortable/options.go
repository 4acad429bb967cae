// Package sortable turns a parent element's children into a drag-to-reorder
// list.
//
// A Container tracks one caller-owned sequence of items. It renders an
// element per item, keeps the elements in sequence order after a sentinel
// element, and turns pointer gestures into callbacks: OnMove while the item
// is dragged over a new index, OnRemove/OnInsert when it crosses into another
// container of the same Group, and OnDragStart/OnDragEnd/OnClick around the
// gesture. The container never reorders the sequence itself; callers apply
// the callbacks (see SliceHandlers) and hand the new sequence to Update.
//
// Everything runs on the host's event loop. No type in this package is safe
// for concurrent use.
package sortable

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/anim"
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/signal"
)

var logger = log.Default().WithPrefix("sortable")

// SetLogger replaces the package logger used by containers without their own
// Options.Logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// RenderFunc builds the element for one item. It is called once per item
// entry; reactive parts read props.Index and props.IsMouseDown and register
// effects on props.Scope. It must return exactly one element; extra elements
// are ignored.
type RenderFunc[T comparable] func(props ItemProps[T]) []dom.Element

// ItemProps is what a RenderFunc gets for its item.
type ItemProps[T comparable] struct {
	Item T
	// Index is the item's current position in its container.
	Index signal.Readable[int]
	// IsMouseDown is true from pointer down to the end of the gesture.
	IsMouseDown signal.Readable[bool]
	// Handle restricts drag starts to el (and any other registered handle).
	Handle func(el dom.Element) (unregister func())
	// Scope lives as long as the rendered element.
	Scope *signal.Scope
}

// Callbacks are the gesture notifications. Any of them may be nil.
type Callbacks[T comparable] struct {
	OnMove      func(item T, from, to int)
	OnInsert    func(item T, idx int)
	OnRemove    func(item T, idx int)
	OnDragStart func(item T, idx int)
	// OnDragEnd gets NoIndex for start on the destination and for end on the
	// origin when the item changed containers.
	OnDragEnd func(item T, start, end int)
	OnClick   func(item T, idx int, ev dom.Event)
}

// Options configure a Container.
type Options[T comparable] struct {
	Settings
	Callbacks[T]

	// Name identifies the container in logs and hooks.
	Name string
	// Render builds item elements. It may be nil when Group has a render
	// function, in which case elements are shared across the group.
	Render RenderFunc[T]

	// Layout positions items explicitly. Without it items keep the host's
	// flow and indices are resolved with IndexCheck.
	Layout     layout.Layouter
	IndexCheck layout.IndexCheck
	// Scheduler drives item animations; anim.Default() when nil.
	Scheduler *anim.Scheduler

	// Autoscroll is scrolled while the pointer is near its edges during a
	// drag. AutoscrollSelf uses the container's parent instead.
	Autoscroll     dom.Element
	AutoscrollSelf bool

	Group *Group[T]
	// ShouldInsert lets a grouped container reject foreign items.
	ShouldInsert func(item T) bool

	Logger *log.Logger
}
