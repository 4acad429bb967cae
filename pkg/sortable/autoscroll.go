package sortable

import (
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// autoscroller scrolls a target element while the pointer is in one of its
// edge bands.
type autoscroller struct {
	win      dom.Window
	target   dom.Element
	scroller dom.Scroller
	settings Settings

	velocity geom.Position
	cancel   func()
}

func newAutoscroller(win dom.Window, target dom.Element, settings Settings) *autoscroller {
	sc, ok := target.(dom.Scroller)
	if !ok {
		logger.Warn("autoscroll target cannot scroll", "target", target)
		return nil
	}
	return &autoscroller{win: win, target: target, scroller: sc, settings: settings}
}

// update recomputes the velocity for the pointer and starts or stops the
// scroll timer.
func (a *autoscroller) update(pointer geom.Position) {
	area, ok := geom.Intersection(a.target.ClientRect(), a.win.Viewport())
	if !ok {
		a.stop()
		return
	}
	a.velocity = scrollVelocity(area, pointer, a.settings.AutoscrollBand, a.settings.AutoscrollCurve)
	if a.velocity.IsZero() {
		a.stop()
		return
	}
	if a.cancel == nil {
		a.cancel = a.win.SetInterval(a.settings.AutoscrollInterval, a.tick)
	}
}

func (a *autoscroller) tick() {
	if a.velocity.IsZero() {
		a.stop()
		return
	}
	a.scroller.ScrollBy(a.velocity)
}

func (a *autoscroller) stop() {
	a.velocity = geom.Position{}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// scrollVelocity is the per-tick scroll delta for a pointer inside area.
// Within band*extent of an edge the speed grows from zero toward that edge,
// capped at the extent.
func scrollVelocity(area geom.Rect, p geom.Position, band, curve float64) geom.Position {
	if !area.Contains(p) {
		return geom.Position{}
	}
	return geom.Position{
		X: axisVelocity(p.X, area.X, area.Width, band, curve),
		Y: axisVelocity(p.Y, area.Y, area.Height, band, curve),
	}
}

func axisVelocity(p, start, extent, band, curve float64) float64 {
	w := extent * band
	if w <= 0 {
		return 0
	}
	switch {
	case p < start+w:
		return -min(extent, geom.MapZeroOneToZeroInf((start+w-p)/w, curve))
	case p > start+extent-w:
		return min(extent, geom.MapZeroOneToZeroInf((p-(start+extent-w))/w, curve))
	}
	return 0
}
