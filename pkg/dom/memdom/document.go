// Package memdom is a deterministic in-memory host for the drag engine.
//
// A Document owns an element tree, a window-level event target, a manual
// clock driving timers, and a queue of animation-frame callbacks. Nothing
// happens on its own: tests and hosts call Dispatch, Advance and Frame.
//
//	doc := memdom.NewDocument(geom.Size{Width: 800, Height: 600})
//	list := doc.NewElement("list", geom.Size{Width: 200, Height: 400})
//	doc.Body().AppendChild(list)
//	doc.MouseDown(geom.Position{X: 10, Y: 10})
//	doc.Advance(100 * time.Millisecond)
//	doc.Frame()
package memdom

import (
	"time"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// Op identifies a traced element operation.
type Op int

const (
	OpMeasure Op = iota
	OpTransform
	OpClearTransform
)

func (o Op) String() string {
	switch o {
	case OpMeasure:
		return "measure"
	case OpTransform:
		return "transform"
	case OpClearTransform:
		return "clear"
	default:
		return "unknown"
	}
}

// Epoch is the clock value of a fresh document.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Document is an in-memory window plus its element tree.
type Document struct {
	root      *Element
	viewport  geom.Size
	scroll    geom.Position
	now       time.Time
	pointer   geom.Position
	cursor    string
	listeners listenerSet

	frames  []*frameRequest
	timers  []*timer
	timerID uint64

	tracer func(Op, *Element)
}

var (
	_ dom.Window   = (*Document)(nil)
	_ dom.Scroller = (*Document)(nil)
)

type frameRequest struct {
	fn       func(time.Time)
	canceled bool
}

type timer struct {
	id       uint64
	due      time.Time
	interval time.Duration
	fn       func()
	canceled bool
}

// NewDocument creates a document whose body fills the viewport.
func NewDocument(viewport geom.Size) *Document {
	d := &Document{viewport: viewport, now: Epoch, cursor: "default"}
	d.root = &Element{doc: d, label: "body", size: viewport}
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element { return d.root }

// NewElement creates a detached element.
func (d *Document) NewElement(label string, size geom.Size) *Element {
	return &Element{doc: d, label: label, size: size}
}

// SetTracer installs fn to observe measurements and transform writes.
// Pass nil to stop tracing.
func (d *Document) SetTracer(fn func(Op, *Element)) { d.tracer = fn }

func (d *Document) trace(op Op, e *Element) {
	if d.tracer != nil {
		d.tracer(op, e)
	}
}

// SetViewport resizes the viewport and the body.
func (d *Document) SetViewport(s geom.Size) {
	d.viewport = s
	d.root.SetSize(s)
}

// Viewport implements dom.Window.
func (d *Document) Viewport() geom.Rect {
	return geom.NewRect(geom.Position{}, d.viewport)
}

// ScrollOffset implements dom.Window.
func (d *Document) ScrollOffset() geom.Position { return d.scroll }

// ScrollBy implements dom.Scroller for the document.
func (d *Document) ScrollBy(delta geom.Position) {
	content := d.root.contentSize()
	next := geom.Position{
		X: geom.Clamp(d.scroll.X+delta.X, 0, max(0, content.Width-d.viewport.Width)),
		Y: geom.Clamp(d.scroll.Y+delta.Y, 0, max(0, content.Height-d.viewport.Height)),
	}
	if next == d.scroll {
		return
	}
	d.scroll = next
	d.dispatchScroll(nil)
}

// Cursor returns the current global cursor.
func (d *Document) Cursor() string { return d.cursor }

// SetCursor implements dom.Window.
func (d *Document) SetCursor(c string) func() {
	prev := d.cursor
	d.cursor = c
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		d.cursor = prev
	}
}

// Pointer returns the last dispatched pointer position.
func (d *Document) Pointer() geom.Position { return d.pointer }

// AddListener implements dom.EventTarget for window-level listeners.
func (d *Document) AddListener(t dom.EventType, l dom.Listener) func() {
	return d.listeners.add(t, l)
}

// =============================================================================
// Events
// =============================================================================

// ElementAt returns the topmost element under p, or nil.
func (d *Document) ElementAt(p geom.Position) *Element {
	return d.root.hitTest(p)
}

// Dispatch delivers ev. Window listeners run first, then listeners on the
// hit element and its ancestors, innermost first.
func (d *Document) Dispatch(ev dom.Event) {
	if ev.Time.IsZero() {
		ev.Time = d.now
	}
	if ev.Type != dom.Scroll {
		d.pointer = ev.Client
	}
	var path []*Element
	if ev.Target == nil && ev.Type != dom.Scroll {
		if hit := d.ElementAt(ev.Client); hit != nil {
			ev.Target = hit
		}
	}
	if t, ok := ev.Target.(*Element); ok {
		for n := t; n != nil; n = n.parent {
			path = append(path, n)
		}
	}

	d.listeners.fire(ev)
	for _, n := range path {
		n.listeners.fire(ev)
	}
}

func (d *Document) dispatchScroll(src *Element) {
	ev := dom.Event{Type: dom.Scroll, Button: dom.ButtonNone, Client: d.pointer, Time: d.now}
	if src != nil {
		ev.Target = src
	}
	d.Dispatch(ev)
}

// MouseDown dispatches a primary-button press at p.
func (d *Document) MouseDown(p geom.Position) {
	d.Dispatch(dom.Event{Type: dom.MouseDown, Button: dom.ButtonPrimary, Client: p})
}

// MouseMove dispatches a pointer move to p.
func (d *Document) MouseMove(p geom.Position) {
	d.Dispatch(dom.Event{Type: dom.MouseMove, Button: dom.ButtonPrimary, Client: p})
}

// MouseUp dispatches a primary-button release at p.
func (d *Document) MouseUp(p geom.Position) {
	d.Dispatch(dom.Event{Type: dom.MouseUp, Button: dom.ButtonPrimary, Client: p})
}

// =============================================================================
// Clock, timers and frames
// =============================================================================

// Now implements dom.Window.
func (d *Document) Now() time.Time { return d.now }

// SetTimeout implements dom.Window.
func (d *Document) SetTimeout(delay time.Duration, fn func()) func() {
	return d.addTimer(delay, 0, fn)
}

// SetInterval implements dom.Window. Intervals shorter than a millisecond are
// rounded up to one.
func (d *Document) SetInterval(every time.Duration, fn func()) func() {
	if every < time.Millisecond {
		every = time.Millisecond
	}
	return d.addTimer(every, every, fn)
}

func (d *Document) addTimer(delay, interval time.Duration, fn func()) func() {
	if delay < 0 {
		delay = 0
	}
	d.timerID++
	t := &timer{id: d.timerID, due: d.now.Add(delay), interval: interval, fn: fn}
	d.timers = append(d.timers, t)
	return func() { t.canceled = true }
}

// PendingTimers returns the number of live timers.
func (d *Document) PendingTimers() int {
	n := 0
	for _, t := range d.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt, firing due timers in order.
func (d *Document) Advance(dt time.Duration) {
	target := d.now.Add(dt)
	for {
		t := d.nextTimer(target)
		if t == nil {
			break
		}
		d.now = t.due
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
		} else {
			t.canceled = true
		}
		t.fn()
	}
	d.now = target
	d.compactTimers()
}

func (d *Document) nextTimer(limit time.Time) *timer {
	var best *timer
	for _, t := range d.timers {
		if t.canceled || t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (d *Document) compactTimers() {
	live := d.timers[:0]
	for _, t := range d.timers {
		if !t.canceled {
			live = append(live, t)
		}
	}
	d.timers = live
}

// RequestFrame implements dom.FrameRequester.
func (d *Document) RequestFrame(fn func(time.Time)) func() {
	r := &frameRequest{fn: fn}
	d.frames = append(d.frames, r)
	return func() { r.canceled = true }
}

// PendingFrames returns the number of queued frame callbacks.
func (d *Document) PendingFrames() int {
	n := 0
	for _, r := range d.frames {
		if !r.canceled {
			n++
		}
	}
	return n
}

// Frame runs the callbacks queued before the call. Callbacks requested while
// running wait for the next Frame.
func (d *Document) Frame() {
	queued := d.frames
	d.frames = nil
	for _, r := range queued {
		if !r.canceled {
			r.fn(d.now)
		}
	}
}

// Step advances the clock by dt and then runs one frame.
func (d *Document) Step(dt time.Duration) {
	d.Advance(dt)
	d.Frame()
}
