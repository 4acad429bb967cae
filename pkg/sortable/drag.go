package sortable

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/observability"
)

// session is one pointer gesture, from pointer down to pointer up.
type session[T comparable] struct {
	id     string
	win    dom.Window
	ctx    *dragContext[T]
	item   T
	origin *Container[T]
	// current is the container holding the item; it changes on transfers.
	current *Container[T]

	startIdx  int
	startTime time.Time
	// grip is the pointer position inside the item as a fraction of its size.
	grip geom.Position
	// client is the last pointer position; rel is the same point relative to
	// the current container's parent.
	client geom.Position
	rel    geom.Position
	travel float64

	dragging bool
	// dragPos is the item's parent-relative drag position.
	dragPos geom.Position
	// lastTarget is the item displaced by the last OnMove; it stops the same
	// move from firing again while the overlap lasts.
	lastTarget    T
	hasLastTarget bool

	// transferring is set while the source container gives the item up.
	transferring bool

	cleanups   []func()
	stopTimer  func()
	autoscroll *autoscroller
	ended      bool
}

func (c *Container[T]) pointerDown(item T, ev dom.Event) {
	if ev.Button != dom.ButtonPrimary || c.scope == nil {
		return
	}
	if c.drag.session != nil || c.drag.state.Get().ok {
		return
	}
	e, ok := c.entries[item]
	if !ok {
		return
	}
	idx, _ := c.Index(item)
	el := e.state.el

	s := &session[T]{
		id:        uuid.NewString(),
		win:       c.win,
		ctx:       c.drag,
		item:      item,
		origin:    c,
		current:   c,
		startIdx:  idx,
		startTime: c.win.Now(),
		client:    ev.Client,
	}
	rect := el.ClientRect()
	if rect.Width > 0 {
		s.grip.X = (ev.Client.X - rect.X) / rect.Width
	}
	if rect.Height > 0 {
		s.grip.Y = (ev.Client.Y - rect.Y) / rect.Height
	}
	s.rel = geom.ClientToRelative(ev.Client, c.parent.ClientRect())
	if natural, err := dom.ParentRelativeRect(el); err == nil {
		s.dragPos = natural.Position()
	}

	c.drag.session = s
	c.drag.state.Set(dragging[T]{item: item, ok: true})
	el.SetZIndex(1)

	s.cleanups = append(s.cleanups,
		c.win.AddListener(dom.MouseMove, s.onMove),
		c.win.AddListener(dom.Scroll, s.onScroll),
		c.win.AddListener(dom.MouseUp, s.onUp),
	)
	s.stopTimer = c.win.SetTimeout(c.settings.ClickDuration, s.onHold)
	if target := c.autoscrollTarget(); target != nil {
		s.autoscroll = newAutoscroller(c.win, target, c.settings)
	}

	c.logger.Debug("pointer down", "session", s.id, "item", item, "index", idx)
	observability.Drag().OnGestureStart(s.id, c.opts.Name, idx)
}

func (c *Container[T]) autoscrollTarget() dom.Element {
	if c.opts.Autoscroll != nil {
		return c.opts.Autoscroll
	}
	if c.opts.AutoscrollSelf {
		return c.parent
	}
	return nil
}

// entry returns the current container's entry for the dragged item. A
// missing entry means the item was removed by the caller; the gesture is
// over then.
func (s *session[T]) entry() (*entry, bool) {
	e, ok := s.current.entries[s.item]
	if !ok {
		s.abort("dragged item is no longer tracked")
	}
	return e, ok
}

// movePointer records a new pointer position. Travel is measured in client
// space, so scrolling the container does not count as pointer movement.
func (s *session[T]) movePointer(client geom.Position) {
	s.travel += geom.Dist(s.client, client)
	s.client = client
	s.rel = geom.ClientToRelative(client, s.current.parent.ClientRect())
}

// resolve turns the press into a drag once the pointer travelled far enough
// or the button was held long enough.
func (s *session[T]) resolve() bool {
	if s.dragging {
		return true
	}
	settings := s.origin.settings
	if s.travel <= settings.ClickDistance && s.win.Now().Sub(s.startTime) < settings.ClickDuration {
		return false
	}
	s.dragging = true
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	s.cleanups = append(s.cleanups, s.win.SetCursor("grabbing"))
	s.origin.logger.Debug("drag start", "session", s.id, "item", s.item, "index", s.startIdx)
	observability.Drag().OnDragStart(s.id, s.origin.opts.Name, s.startIdx)
	if fn := s.origin.opts.OnDragStart; fn != nil {
		fn(s.item, s.startIdx)
	}
	return !s.ended
}

func (s *session[T]) onHold() {
	s.stopTimer = nil
	if s.ended {
		return
	}
	if s.resolve() {
		s.update()
	}
}

func (s *session[T]) onMove(ev dom.Event) {
	if s.ended {
		return
	}
	s.movePointer(ev.Client)
	if s.resolve() {
		s.update()
	}
}

func (s *session[T]) onScroll(dom.Event) {
	if s.ended {
		return
	}
	s.movePointer(s.client)
	if s.resolve() {
		s.update()
	}
}

// placeItem positions the dragged element under the pointer, keeping the
// grip point fixed.
func (s *session[T]) placeItem() bool {
	e, ok := s.entry()
	if !ok {
		return false
	}
	el := e.state.el
	el.ClearTransform()
	natural, err := dom.ParentRelativeRect(el)
	if err != nil {
		s.abort("dragged element cannot be measured")
		return false
	}
	size := natural.Size()
	s.dragPos = s.rel.Sub(geom.Position{X: s.grip.X * size.Width, Y: s.grip.Y * size.Height})
	el.SetTransform(s.dragPos.Sub(natural.Position()))
	el.SetZIndex(1)
	return true
}

// update runs on every pointer or scroll change while dragging.
func (s *session[T]) update() {
	if !s.placeItem() {
		return
	}
	if s.autoscroll != nil {
		s.autoscroll.update(s.client)
	}
	c := s.current
	itemRect := c.entries[s.item].state.el.ClientRect()
	if visibleFraction(itemRect, c.parent.ClientRect()) >= c.settings.MoveThreshold {
		s.checkMove()
		return
	}
	if g := c.opts.Group; g != nil && len(g.members) > 1 {
		s.transfer(itemRect)
	}
}

// checkMove fires OnMove when the dragged box displaces another item of the
// current container.
func (s *session[T]) checkMove() {
	c := s.current
	from, ok := c.Index(s.item)
	if !ok {
		s.abort("dragged item is no longer tracked")
		return
	}
	dragged := geom.NewRect(s.dragPos, c.entries[s.item].state.el.ClientRect().Size())
	to, ok := c.resolveIndex(dragged, from)
	if ok {
		to = min(to, len(c.items)-1)
	}
	if !ok || to == from || to < 0 {
		s.hasLastTarget = false
		return
	}
	target := c.items[to]
	if s.hasLastTarget && s.lastTarget == target {
		return
	}
	s.lastTarget, s.hasLastTarget = target, true

	c.logger.Debug("move", "session", s.id, "item", s.item, "from", from, "to", to)
	observability.Drag().OnMove(s.id, c.opts.Name, from, to)
	if fn := c.opts.OnMove; fn != nil {
		fn(s.item, from, to)
	}
	if !s.ended {
		s.placeItem()
	}
}

func (s *session[T]) onUp(ev dom.Event) {
	if s.ended {
		return
	}
	s.client = ev.Client
	if !s.dragging && s.win.Now().Sub(s.startTime) >= s.origin.settings.ClickDuration {
		s.resolve()
		if s.ended {
			return
		}
	}

	if _, ok := s.entry(); !ok {
		return
	}
	origin, current := s.origin, s.current
	end := NoIndex
	if i, ok := current.Index(s.item); ok {
		end = i
	}
	clicked := !s.dragging
	s.finish()

	switch {
	case clicked:
		if fn := origin.opts.OnClick; fn != nil {
			fn(s.item, s.startIdx, ev)
		}
	case origin == current:
		if fn := origin.opts.OnDragEnd; fn != nil {
			fn(s.item, s.startIdx, end)
		}
	default:
		if fn := origin.opts.OnDragEnd; fn != nil {
			fn(s.item, s.startIdx, NoIndex)
		}
		if fn := current.opts.OnDragEnd; fn != nil {
			fn(s.item, NoIndex, end)
		}
	}
}

// finish settles the element back into place and tears the gesture down.
func (s *session[T]) finish() {
	if e, ok := s.current.entries[s.item]; ok {
		el := e.state.el
		if e.ctrl != nil && e.ctrl.Registered() {
			start := s.dragPos
			e.ctrl.Enable(&start, func() { el.SetZIndex(0) })
		} else {
			el.ClearTransform()
			el.SetZIndex(0)
		}
	}
	s.teardown()
}

// abort ends the gesture without callbacks and without touching the
// element.
func (s *session[T]) abort(reason string) {
	if s.ended {
		return
	}
	s.current.logger.Debug("gesture aborted", "session", s.id, "item", s.item, "reason", reason)
	s.teardown()
	if g := s.current.opts.Group; g != nil && !g.held(s.item) {
		g.Dispose(s.item)
	}
}

func (s *session[T]) teardown() {
	if s.ended {
		return
	}
	s.ended = true
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	if s.autoscroll != nil {
		s.autoscroll.stop()
	}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	if s.ctx.session == s {
		s.ctx.session = nil
	}
	s.ctx.state.Set(dragging[T]{})
	observability.Drag().OnGestureEnd(s.id, !s.dragging, s.win.Now().Sub(s.startTime))
}

// visibleFraction is the share of r's area that lies inside bounds.
func visibleFraction(r, bounds geom.Rect) float64 {
	area := geom.Area(r)
	if area <= 0 {
		return 0
	}
	return geom.OverlapArea(r, bounds) / area
}
