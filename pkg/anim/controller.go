package anim

import (
	"time"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/ease"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// ControllerOptions configures a Controller. Zero values select the defaults.
type ControllerOptions struct {
	Timing   ease.Func
	Duration time.Duration
}

// Controller animates one element. It is created enabled.
type Controller struct {
	sched    *Scheduler
	el       dom.Element
	timing   ease.Func
	duration time.Duration

	registered bool
	enabled    bool
	detached   bool

	// last measured parent-relative box
	last     geom.Rect
	measured bool

	// set by the measure pass, consumed by the animate pass
	moved  bool
	visual geom.Position

	override *geom.Position

	settling bool
	start    time.Time
	from     geom.Position
	offset   geom.Position

	done     chan struct{}
	onFinish func()
}

// NewController registers a controller for el.
func (s *Scheduler) NewController(el dom.Element, opts ControllerOptions) *Controller {
	c := &Controller{
		sched:    s,
		el:       el,
		timing:   opts.Timing,
		duration: opts.Duration,
		enabled:  true,
	}
	if c.timing == nil {
		c.timing = DefaultTiming
	}
	if c.duration == 0 {
		c.duration = DefaultDuration
	}
	s.register(c)
	return c
}

// Element returns the animated element.
func (c *Controller) Element() dom.Element { return c.el }

// Enabled reports whether the controller takes part in frames.
func (c *Controller) Enabled() bool { return c.enabled }

// Registered reports whether Cleanup has not run yet.
func (c *Controller) Registered() bool { return c.registered }

// Settling reports whether an interpolation is in flight.
func (c *Controller) Settling() bool { return c.settling }

// LayoutRect returns the last measured parent-relative box. The rectangle
// stays available while the controller is disabled.
func (c *Controller) LayoutRect() (geom.Rect, bool) {
	return c.last, c.measured
}

// SetTiming changes the curve used by future interpolations.
func (c *Controller) SetTiming(f ease.Func, d time.Duration) {
	if f != nil {
		c.timing = f
	}
	if d > 0 {
		c.duration = d
	}
}

// Enable resumes animation. When start is non-nil the element is animated
// from that parent-relative position to its natural one, even if the natural
// position did not change.
//
// The returned channel is closed once the element has settled, or earlier
// when the enable is superseded by another Enable, a Disable, Cleanup or the
// scheduler's Shutdown. onFinish runs only when the element actually
// settled.
func (c *Controller) Enable(start *geom.Position, onFinish func()) <-chan struct{} {
	c.resolve(false)
	if !c.registered {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	c.enabled = true
	if start != nil {
		p := *start
		c.override = &p
	}
	c.done = make(chan struct{})
	c.onFinish = onFinish
	c.sched.requestFrame()
	return c.done
}

// Disable stops animating the element and drops any in-flight interpolation
// without running the completion callback. The element's transform is left
// to the caller.
func (c *Controller) Disable() {
	c.enabled = false
	c.stop()
	c.resolve(false)
}

// Cleanup unregisters the controller. It must run before the element leaves
// the tree. Calling it twice is a no-op.
func (c *Controller) Cleanup() {
	if !c.registered {
		return
	}
	c.sched.unregister(c)
	if c.settling && c.el.Attached() {
		c.el.ClearTransform()
	}
	c.stop()
	c.resolve(false)
}

func (c *Controller) active() bool {
	return c.registered && c.enabled
}

func (c *Controller) stop() {
	c.settling = false
	c.moved = false
	c.override = nil
	c.offset = geom.Position{}
}

func (c *Controller) resolve(finished bool) {
	if c.done == nil {
		return
	}
	close(c.done)
	c.done = nil
	fn := c.onFinish
	c.onFinish = nil
	if finished && fn != nil {
		fn()
	}
}

func (c *Controller) clear() {
	c.el.ClearTransform()
}

func (c *Controller) measure() {
	rect, err := dom.ParentRelativeRect(c.el)
	if err != nil {
		if !c.detached {
			c.sched.logger.Warn("skipping element that cannot be measured", "err", err)
		}
		c.detached = true
		return
	}
	c.detached = false

	visual := c.last.Position().Add(c.offset)
	switch {
	case c.override != nil:
		visual = *c.override
		c.override = nil
		c.moved = true
	case c.measured && rect.Position() != c.last.Position():
		c.moved = true
	}
	c.visual = visual
	c.last = rect
	c.measured = true
}

// animate writes this frame's transform and reports whether the element is
// still settling afterwards.
func (c *Controller) animate(now time.Time) bool {
	if c.detached {
		return false
	}
	if c.moved {
		c.moved = false
		c.from = c.visual.Sub(c.last.Position())
		c.settling = !c.from.IsZero()
		c.start = now
		c.offset = c.from
	}
	if !c.settling {
		c.offset = geom.Position{}
		c.resolve(true)
		return false
	}

	frac := 2.0
	if c.duration > 0 {
		frac = float64(now.Sub(c.start)) / float64(c.duration)
	}
	if frac > 1 {
		c.el.ClearTransform()
		c.settling = false
		c.offset = geom.Position{}
		c.resolve(true)
		return false
	}
	c.offset = c.from.Scale(1 - c.timing(frac))
	c.el.SetTransform(c.offset)
	return true
}
