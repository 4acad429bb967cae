// Package dom defines the host capabilities the drag engine needs: an element
// tree with measurable boxes and settable transforms, a window delivering
// mouse and scroll events, animation frames, timers and a cursor.
//
// The engine never assumes a particular host. Two hosts ship with this
// module: memdom, an in-memory tree with a manual clock, and termhost, which
// maps the same tree onto a bubbletea terminal program.
//
// # Coordinates
//
// ClientRect returns the element's box in client (viewport) space and
// includes the element's own transform and those of its ancestors, the way a
// browser's getBoundingClientRect does. Use ParentRelativeRect to get the box
// relative to the parent's box.
//
// # Optional capabilities
//
// Hosts may implement Scroller, ResizeObservable, Sizable, Positioner and
// Classed on their elements. The engine type-asserts for them and degrades
// gracefully when they are missing.
package dom

import (
	"time"

	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// EventType identifies a kind of event.
type EventType int

const (
	MouseDown EventType = iota
	MouseMove
	MouseUp
	Scroll
)

func (t EventType) String() string {
	switch t {
	case MouseDown:
		return "mousedown"
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case Scroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Button is a mouse button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
	ButtonNone
)

// Event is a mouse or scroll event.
type Event struct {
	Type   EventType
	Button Button
	// Client is the pointer position in client space. Scroll events carry the
	// last known pointer position.
	Client geom.Position
	// Target is the element the event was dispatched to, if any.
	Target Element
	Time   time.Time
}

// Listener handles an event.
type Listener func(Event)

// EventTarget accepts listeners.
type EventTarget interface {
	// AddListener registers l for events of type t and returns a function
	// removing it. Removing twice is a no-op.
	AddListener(t EventType, l Listener) (remove func())
}

// Element is a node in the host tree.
type Element interface {
	EventTarget

	// Parent returns nil for detached nodes and the root.
	Parent() Element
	Children() []Element
	// InsertChild places child at index i among the children, detaching it
	// from its previous parent first. i is clamped to [0, len(children)].
	InsertChild(i int, child Element)
	RemoveChild(child Element)

	// ClientRect is the current box in client space, transforms included.
	ClientRect() geom.Rect
	// SetTransform offsets the rendered box without affecting layout.
	SetTransform(offset geom.Position)
	ClearTransform()
	Transform() geom.Position

	SetZIndex(z int)
	ZIndex() int

	// Attached reports whether the element is part of a document.
	Attached() bool
}

// FrameRequester schedules a callback for the next animation frame.
type FrameRequester interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// Window is the top-level host: the global event target plus scheduling.
type Window interface {
	EventTarget
	FrameRequester

	// ScrollOffset is the document scroll position.
	ScrollOffset() geom.Position
	// Viewport is the visible client area.
	Viewport() geom.Rect
	Now() time.Time

	SetTimeout(d time.Duration, fn func()) (cancel func())
	SetInterval(d time.Duration, fn func()) (cancel func())

	// SetCursor overrides the global cursor and returns a function restoring
	// the previous one.
	SetCursor(cursor string) (restore func())
}

// Scroller is implemented by scrollable elements (and windows).
type Scroller interface {
	ScrollBy(delta geom.Position)
}

// ResizeObservable reports size changes of an element.
type ResizeObservable interface {
	ObserveResize(fn func(geom.Size)) (stop func())
}

// Sizable elements accept a minimum size, used by layouts to reserve room
// for absolutely positioned children.
type Sizable interface {
	SetMinSize(s geom.Size)
}

// Positioner elements can be taken out of flow and placed at an explicit
// parent-relative position.
type Positioner interface {
	SetPosition(p geom.Position)
	ClearPosition()
}

// Classed elements carry style classes.
type Classed interface {
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
}

// ParentRelativeRect returns el's box relative to its parent's box.
func ParentRelativeRect(el Element) (geom.Rect, error) {
	if el == nil {
		return geom.Rect{}, errors.New(errors.ErrCodeNoElement, "nil element")
	}
	if !el.Attached() {
		return geom.Rect{}, errors.New(errors.ErrCodeDetached, "element is not attached")
	}
	parent := el.Parent()
	if parent == nil {
		return geom.Rect{}, errors.New(errors.ErrCodeNoParent, "element has no parent")
	}
	return geom.ClientRectToRelative(el.ClientRect(), parent.ClientRect()), nil
}

// IndexOf returns the position of child among parent's children, or -1.
func IndexOf(parent, child Element) int {
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether el is root or a descendant of it.
func Contains(root, el Element) bool {
	for n := el; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}
