package sortable

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/anim"
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/signal"
)

// Container keeps the elements of one item sequence in order inside a parent
// element and reports drag gestures on them.
type Container[T comparable] struct {
	win      dom.Window
	opts     Options[T]
	settings Settings
	logger   *log.Logger
	check    layout.IndexCheck
	drag     *dragContext[T]

	sentinel dom.Element
	parent   dom.Element
	// scope lives from Mount to Unmount; nil while unmounted.
	scope *signal.Scope

	items   []T
	entries map[T]*entry

	current       layout.Layout
	layoutChanged *signal.Signal

	warned map[string]bool
}

// entry is an item's per-container wiring around its rendered state.
type entry struct {
	state  *itemState
	shared bool
	scope  *signal.Scope
	ctrl   *anim.Controller
	// target is the layout position for the item's index.
	target *signal.Derived[geom.Position]
}

// New creates an unmounted container. Invalid settings are logged and
// replaced by their defaults.
func New[T comparable](win dom.Window, opts Options[T]) *Container[T] {
	c := &Container[T]{
		win:           win,
		opts:          opts,
		entries:       make(map[T]*entry),
		layoutChanged: signal.NewSignal(),
		warned:        make(map[string]bool),
	}
	c.logger = opts.Logger
	if c.logger == nil {
		c.logger = logger
	}
	if opts.Name != "" {
		c.logger = c.logger.With("container", opts.Name)
	}

	base := DefaultSettings()
	if g := opts.Group; g != nil {
		base = g.settings.inherit(base)
		c.drag = g.drag
	} else {
		c.drag = newDragContext[T]()
	}
	settings, err := opts.Settings.inherit(base).sanitize()
	if err != nil {
		c.logger.Warn("invalid settings replaced by defaults", "err", err)
	}
	c.settings = settings

	c.check = opts.IndexCheck
	if c.check == nil {
		c.check = layout.OverlapPercent(settings.MoveThreshold)
	}
	return c
}

// Name returns the configured name.
func (c *Container[T]) Name() string { return c.opts.Name }

// Settings returns the effective settings.
func (c *Container[T]) Settings() Settings { return c.settings }

// Parent returns the element holding the items, or nil while unmounted.
func (c *Container[T]) Parent() dom.Element { return c.parent }

// Mounted reports whether Mount succeeded and Unmount has not run since.
func (c *Container[T]) Mounted() bool { return c.scope != nil }

// Items returns the tracked sequence.
func (c *Container[T]) Items() []T { return slices.Clone(c.items) }

// Index returns item's position in the tracked sequence.
func (c *Container[T]) Index(item T) (int, bool) {
	i := slices.Index(c.items, item)
	return i, i >= 0
}

// Element returns item's rendered element.
func (c *Container[T]) Element(item T) (dom.Element, bool) {
	e, ok := c.entries[item]
	if !ok {
		return nil, false
	}
	return e.state.el, true
}

// Layout returns the last computed layout, or nil without a layouter.
func (c *Container[T]) Layout() layout.Layout { return c.current }

// Dragging returns the item pressed in this container's drag context.
func (c *Container[T]) Dragging() (T, bool) {
	d := c.drag.state.Get()
	return d.item, d.ok
}

// ItemRect returns item's current box in client space.
func (c *Container[T]) ItemRect(item T) (geom.Rect, bool) {
	e, ok := c.entries[item]
	if !ok {
		return geom.Rect{}, false
	}
	return e.state.el.ClientRect(), true
}

// Mount places the items after sentinel inside sentinel's parent.
func (c *Container[T]) Mount(sentinel dom.Element) error {
	if sentinel == nil {
		err := errors.New(errors.ErrCodeNoElement, "nil sentinel")
		c.logger.Error("mount skipped", "err", err)
		return err
	}
	parent := sentinel.Parent()
	if parent == nil {
		err := errors.New(errors.ErrCodeNoParent, "sentinel has no parent element")
		c.logger.Error("mount skipped", "err", err)
		return err
	}
	c.Unmount()

	c.sentinel, c.parent = sentinel, parent
	c.scope = signal.NewScope()
	if l := c.opts.Layout; l != nil {
		l.Mount(parent, c.relayout)
		c.scope.OnCleanup(l.Unmount)
	}
	if g := c.opts.Group; g != nil {
		g.join(c)
		c.scope.OnCleanup(func() { g.leave(c) })
	}
	c.scope.OnCleanup(c.drag.state.Bind(c.syncMouseDown))
	c.logger.Debug("mounted", "items", len(c.items))
	return c.Update(c.items)
}

// Unmount ends a gesture running in this container, removes every item
// element and leaves the group. The tracked sequence is kept for a later
// Mount.
func (c *Container[T]) Unmount() {
	if c.scope == nil {
		return
	}
	if s := c.drag.session; s != nil && s.current == c {
		s.abort("container unmounted")
	}
	for item, e := range c.entries {
		c.release(item, e)
	}
	clear(c.entries)
	c.current = nil
	c.scope.Dispose()
	c.scope = nil
	c.sentinel, c.parent = nil, nil
}

// Bind updates the container with every value of state, starting with the
// current one.
func (c *Container[T]) Bind(state *signal.State[[]T]) signal.Unbind {
	update := func(items []T) {
		if err := c.Update(items); err != nil {
			c.logger.Error("update failed", "err", err)
		}
	}
	update(state.Get())
	return state.Bind(update)
}

// Update reconciles the container with each: new items are rendered, items
// that disappeared are released, and the elements are reordered after the
// sentinel. Duplicate items and items whose render produced no element are
// skipped and reported in the returned error.
func (c *Container[T]) Update(each []T) error {
	var errs []error
	items := make([]T, 0, len(each))
	seen := make(map[T]bool, len(each))
	for _, item := range each {
		if seen[item] {
			errs = append(errs, errors.New(errors.ErrCodeDuplicateItem, "item %v appears more than once", item))
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	if c.scope == nil {
		c.items = items
		return errors.Join(errs...)
	}

	var lost *session[T]
	for item, e := range c.entries {
		if !seen[item] {
			delete(c.entries, item)
			c.release(item, e)
			if s := c.drag.session; s != nil && s.current == c && s.item == item && !s.transferring {
				lost = s
			}
		}
	}
	if lost != nil {
		lost.abort("dragged item was removed")
	}

	var added []T
	tracked := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := c.entries[item]; !ok {
			e, err := c.render(item, len(tracked))
			if err != nil {
				c.logger.Error("item skipped", "item", item, "err", err)
				errs = append(errs, err)
				continue
			}
			c.entries[item] = e
			added = append(added, item)
		}
		tracked = append(tracked, item)
	}
	c.items = tracked

	c.project()
	c.computeLayout()
	for i, item := range c.items {
		c.entries[item].state.index.Set(i)
	}
	for _, item := range added {
		c.attach(item, c.entries[item])
	}
	c.layoutChanged.Fire()
	return errors.Join(errs...)
}

// RegisterHandle makes el a drag handle of item. While an item has handles,
// only they start drags.
func (c *Container[T]) RegisterHandle(item T, el dom.Element) (unregister func()) {
	e, ok := c.entries[item]
	if !ok {
		c.logger.Warn("handle for unknown item ignored", "item", item)
		return func() {}
	}
	return e.state.addHandle(el)
}

func (c *Container[T]) render(item T, idx int) (*entry, error) {
	d := c.drag.state.Get()
	down := d.ok && d.item == item
	switch g := c.opts.Group; {
	case c.opts.Render != nil:
		st, err := renderItem(c.opts.Render, item, idx, down)
		if err != nil {
			return nil, err
		}
		return &entry{state: st}, nil
	case g != nil && g.render != nil:
		st, err := g.shared(item, idx, down)
		if err != nil {
			return nil, err
		}
		st.mouseDown.Set(down)
		return &entry{state: st, shared: true}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "no render function for item %v", item)
	}
}

// attach runs the per-item effects for a freshly tracked entry.
func (c *Container[T]) attach(item T, e *entry) {
	e.scope = c.scope.Child()
	st := e.state
	el := st.el

	signal.Effect(e.scope, func(run *signal.Scope) {
		for _, target := range st.listenTargets() {
			run.OnCleanup(target.AddListener(dom.MouseDown, func(ev dom.Event) {
				c.pointerDown(item, ev)
			}))
		}
	}, st.handles)

	if c.settings.Animated {
		if sched := c.scheduler(); sched != nil {
			ctrl := sched.NewController(el, anim.ControllerOptions{
				Timing:   c.settings.Timing,
				Duration: c.settings.AnimationDuration,
			})
			e.ctrl = ctrl
			e.scope.OnCleanup(ctrl.Cleanup)
			signal.Effect(e.scope, func(*signal.Scope) {
				if st.mouseDown.Get() {
					ctrl.Disable()
				}
			}, st.mouseDown)
		}
	}

	if cls := c.settings.MouseDownClass; cls != "" {
		if classed, ok := el.(dom.Classed); ok {
			signal.Effect(e.scope, func(run *signal.Scope) {
				if st.mouseDown.Get() {
					classed.AddClass(cls)
					run.OnCleanup(func() { classed.RemoveClass(cls) })
				}
			}, st.mouseDown)
		} else {
			c.warnOnce("classes", "item elements do not support classes")
		}
	}

	if c.opts.Layout != nil {
		if p, ok := el.(dom.Positioner); ok {
			e.target = signal.Derive(e.scope, func() geom.Position {
				if c.current == nil {
					return geom.Position{}
				}
				return c.current.Pos(st.index.Get())
			}, func(a, b geom.Position) bool { return a == b }, st.index, c.layoutChanged)
			signal.Effect(e.scope, func(*signal.Scope) {
				if c.current != nil {
					p.SetPosition(e.target.Get())
				}
			}, e.target)
			e.scope.OnCleanup(p.ClearPosition)
		} else {
			c.warnOnce("position", "item elements cannot be positioned, layout ignored")
		}
	}
}

// release undoes attach and drops the element. A shared element that is
// being dragged stays in the group cache for the container it moves to.
func (c *Container[T]) release(item T, e *entry) {
	if e.scope != nil {
		e.scope.Dispose()
	}
	if !e.shared {
		e.state.dispose()
		return
	}
	if e.state.mouseDown.Get() {
		detach(e.state.el)
		return
	}
	c.opts.Group.Dispose(item)
}

// project moves the item elements into sequence order after the sentinel.
func (c *Container[T]) project() {
	base := dom.IndexOf(c.parent, c.sentinel) + 1
	if base == 0 {
		c.warnOnce("sentinel", "sentinel left its parent, placing items first")
	}
	for i, item := range c.items {
		el := c.entries[item].state.el
		kids := c.parent.Children()
		if base+i < len(kids) && kids[base+i] == el {
			continue
		}
		c.parent.InsertChild(base+i, el)
	}
}

func (c *Container[T]) computeLayout() {
	if c.opts.Layout == nil {
		return
	}
	sizes := make([]geom.Size, len(c.items))
	for i, item := range c.items {
		sizes[i] = c.entries[item].state.el.ClientRect().Size()
	}
	c.current = c.opts.Layout.Layout(sizes)
}

// relayout is the layouter's change callback.
func (c *Container[T]) relayout() {
	if c.scope == nil {
		return
	}
	c.computeLayout()
	c.layoutChanged.Fire()
}

func (c *Container[T]) syncMouseDown(d dragging[T]) {
	for item, e := range c.entries {
		e.state.mouseDown.Set(d.ok && d.item == item)
	}
}

// resolveIndex maps a parent-relative box to an index. current is the
// dragged item's index here, or -1 when it comes from another container.
func (c *Container[T]) resolveIndex(dragged geom.Rect, current int) (int, bool) {
	if c.current != nil {
		return c.current.CheckIndex(dragged)
	}
	rects := make([]geom.Rect, len(c.items))
	for i, item := range c.items {
		e := c.entries[item]
		if e.ctrl != nil {
			if r, ok := e.ctrl.LayoutRect(); ok {
				rects[i] = r
				continue
			}
		}
		if r, err := dom.ParentRelativeRect(e.state.el); err == nil {
			rects[i] = r
		}
	}
	return c.check(rects, dragged, current)
}

func (c *Container[T]) accepts(item T) bool {
	return c.opts.ShouldInsert == nil || c.opts.ShouldInsert(item)
}

func (c *Container[T]) scheduler() *anim.Scheduler {
	if c.opts.Scheduler != nil {
		return c.opts.Scheduler
	}
	if s := anim.Default(); s != nil {
		return s
	}
	c.warnOnce("scheduler", "animation requested but no scheduler is running")
	return nil
}

func (c *Container[T]) warnOnce(key, msg string) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.logger.Warn(msg)
}
