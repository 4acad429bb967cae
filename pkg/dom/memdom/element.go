package memdom

import (
	"sort"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// Flow controls how an element places children that have no explicit
// position.
type Flow int

const (
	// FlowNone stacks every in-flow child at the origin.
	FlowNone Flow = iota
	// FlowVertical places children top to bottom.
	FlowVertical
	// FlowHorizontal places children left to right.
	FlowHorizontal
	// FlowWrap places children left to right and wraps at the element width.
	FlowWrap
)

// Element is an in-memory node. It implements dom.Element and every optional
// capability of package dom.
type Element struct {
	doc    *Document
	label  string
	parent *Element

	children []*Element

	size      geom.Size
	minSize   geom.Size
	pos       *geom.Position
	transform geom.Position
	scroll    geom.Position
	z         int
	flow      Flow

	classes   map[string]bool
	listeners listenerSet
	observers []*resizeObserver

	// Data is free for hosts to attach payloads (termhost stores styles).
	Data any
}

type resizeObserver struct {
	fn      func(geom.Size)
	stopped bool
}

var (
	_ dom.Element          = (*Element)(nil)
	_ dom.Scroller         = (*Element)(nil)
	_ dom.ResizeObservable = (*Element)(nil)
	_ dom.Sizable          = (*Element)(nil)
	_ dom.Positioner       = (*Element)(nil)
	_ dom.Classed          = (*Element)(nil)
)

// Label returns the debug label given at creation.
func (e *Element) Label() string { return e.label }

// String implements fmt.Stringer.
func (e *Element) String() string { return e.label }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// =============================================================================
// Tree
// =============================================================================

// Parent implements dom.Element.
func (e *Element) Parent() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children implements dom.Element.
func (e *Element) Children() []dom.Element {
	out := make([]dom.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Elements returns the children with their concrete type.
func (e *Element) Elements() []*Element {
	return append([]*Element(nil), e.children...)
}

// InsertChild implements dom.Element. Elements from other hosts are ignored.
func (e *Element) InsertChild(i int, child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil || c == e {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	i = geom.ClampInt(i, 0, len(e.children))
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = c
	c.parent = e
}

// AppendChild adds child as the last child.
func (e *Element) AppendChild(child *Element) {
	e.InsertChild(len(e.children), child)
}

// RemoveChild implements dom.Element.
func (e *Element) RemoveChild(child dom.Element) {
	if c, ok := child.(*Element); ok && c.parent == e {
		e.removeChild(c)
	}
}

func (e *Element) removeChild(c *Element) {
	for i, x := range e.children {
		if x == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
	}
}

// Attached implements dom.Element.
func (e *Element) Attached() bool {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n == e.doc.root
}

// =============================================================================
// Geometry
// =============================================================================

// Size returns the effective size: the set size grown to the minimum size.
func (e *Element) Size() geom.Size {
	return geom.Size{
		Width:  max(e.size.Width, e.minSize.Width),
		Height: max(e.size.Height, e.minSize.Height),
	}
}

// SetSize changes the element's own size.
func (e *Element) SetSize(s geom.Size) {
	before := e.Size()
	e.size = s
	e.notifyResize(before)
}

// SetMinSize implements dom.Sizable.
func (e *Element) SetMinSize(s geom.Size) {
	before := e.Size()
	e.minSize = s
	e.notifyResize(before)
}

// MinSize returns the last minimum size set.
func (e *Element) MinSize() geom.Size { return e.minSize }

func (e *Element) notifyResize(before geom.Size) {
	after := e.Size()
	if after == before {
		return
	}
	for _, o := range append([]*resizeObserver(nil), e.observers...) {
		if !o.stopped {
			o.fn(after)
		}
	}
}

// ObserveResize implements dom.ResizeObservable. fn is called synchronously
// whenever the effective size changes.
func (e *Element) ObserveResize(fn func(geom.Size)) func() {
	o := &resizeObserver{fn: fn}
	e.observers = append(e.observers, o)
	return func() {
		if o.stopped {
			return
		}
		o.stopped = true
		for i, x := range e.observers {
			if x == o {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				break
			}
		}
	}
}

// SetFlow sets how children without explicit positions are placed.
func (e *Element) SetFlow(f Flow) { e.flow = f }

// SetPosition implements dom.Positioner.
func (e *Element) SetPosition(p geom.Position) {
	e.pos = &p
}

// ClearPosition implements dom.Positioner.
func (e *Element) ClearPosition() {
	e.pos = nil
}

// SetTransform implements dom.Element.
func (e *Element) SetTransform(offset geom.Position) {
	e.transform = offset
	e.doc.trace(OpTransform, e)
}

// ClearTransform implements dom.Element.
func (e *Element) ClearTransform() {
	e.transform = geom.Position{}
	e.doc.trace(OpClearTransform, e)
}

// Transform implements dom.Element.
func (e *Element) Transform() geom.Position { return e.transform }

// SetZIndex implements dom.Element.
func (e *Element) SetZIndex(z int) { e.z = z }

// ZIndex implements dom.Element.
func (e *Element) ZIndex() int { return e.z }

// ScrollOffset returns how far the element's content is scrolled.
func (e *Element) ScrollOffset() geom.Position { return e.scroll }

// ScrollBy implements dom.Scroller. The offset is clamped to the content
// extent and a Scroll event is dispatched when it changes.
func (e *Element) ScrollBy(delta geom.Position) {
	limit := e.contentSize()
	size := e.Size()
	next := geom.Position{
		X: geom.Clamp(e.scroll.X+delta.X, 0, max(0, limit.Width-size.Width)),
		Y: geom.Clamp(e.scroll.Y+delta.Y, 0, max(0, limit.Height-size.Height)),
	}
	if next == e.scroll {
		return
	}
	e.scroll = next
	e.doc.dispatchScroll(e)
}

// contentSize is the extent covered by the element's children, untransformed.
func (e *Element) contentSize() geom.Size {
	var s geom.Size
	for _, c := range e.children {
		p := c.layoutPos()
		cs := c.Size()
		s.Width = max(s.Width, p.X+cs.Width)
		s.Height = max(s.Height, p.Y+cs.Height)
	}
	return s
}

// layoutPos is the untransformed position relative to the parent's box.
func (e *Element) layoutPos() geom.Position {
	if e.pos != nil {
		return *e.pos
	}
	p := e.parent
	if p == nil {
		return geom.Position{}
	}
	var cur geom.Position
	rowHeight := 0.0
	width := p.Size().Width
	for _, sib := range p.children {
		if sib.pos != nil {
			continue
		}
		s := sib.Size()
		if p.flow == FlowWrap && cur.X > 0 && cur.X+s.Width > width {
			cur.X = 0
			cur.Y += rowHeight
			rowHeight = 0
		}
		if sib == e {
			return cur
		}
		switch p.flow {
		case FlowVertical:
			cur.Y += s.Height
		case FlowHorizontal:
			cur.X += s.Width
		case FlowWrap:
			cur.X += s.Width
			rowHeight = max(rowHeight, s.Height)
		}
	}
	return cur
}

// LayoutRect is the untransformed box relative to the parent.
func (e *Element) LayoutRect() geom.Rect {
	return geom.NewRect(e.layoutPos(), e.Size())
}

func (e *Element) clientPos() geom.Position {
	if e.parent == nil {
		if e == e.doc.root {
			return e.doc.scroll.Scale(-1)
		}
		return e.transform
	}
	base := e.parent.clientPos().Sub(e.parent.scroll)
	return base.Add(e.layoutPos()).Add(e.transform)
}

// ClientRect implements dom.Element.
func (e *Element) ClientRect() geom.Rect {
	e.doc.trace(OpMeasure, e)
	return geom.NewRect(e.clientPos(), e.Size())
}

// =============================================================================
// Classes and listeners
// =============================================================================

// AddClass implements dom.Classed.
func (e *Element) AddClass(name string) {
	if e.classes == nil {
		e.classes = make(map[string]bool)
	}
	e.classes[name] = true
}

// RemoveClass implements dom.Classed.
func (e *Element) RemoveClass(name string) {
	delete(e.classes, name)
}

// HasClass implements dom.Classed.
func (e *Element) HasClass(name string) bool {
	return e.classes[name]
}

// AddListener implements dom.EventTarget.
func (e *Element) AddListener(t dom.EventType, l dom.Listener) func() {
	return e.listeners.add(t, l)
}

// ListenerCount returns the number of live listeners for t.
func (e *Element) ListenerCount(t dom.EventType) int {
	return e.listeners.count(t)
}

// paintOrder returns the children sorted by z-index, stable in tree order.
func (e *Element) paintOrder() []*Element {
	out := append([]*Element(nil), e.children...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].z < out[j].z })
	return out
}

// Walk visits e and its descendants in paint order.
func (e *Element) Walk(fn func(el *Element, depth int)) {
	e.walk(fn, 0)
}

func (e *Element) walk(fn func(*Element, int), depth int) {
	fn(e, depth)
	for _, c := range e.paintOrder() {
		c.walk(fn, depth+1)
	}
}

func (e *Element) hitTest(p geom.Position) *Element {
	kids := e.paintOrder()
	for i := len(kids) - 1; i >= 0; i-- {
		if hit := kids[i].hitTest(p); hit != nil {
			return hit
		}
	}
	if geom.NewRect(e.clientPos(), e.Size()).Contains(p) {
		return e
	}
	return nil
}
