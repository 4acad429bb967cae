package layout

import (
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

type axis struct {
	name      string
	primary   func(geom.Size) float64
	secondary func(geom.Size) float64
	pos       func(sum float64) geom.Position
	bounds    func(primary, secondary float64) geom.Size
}

var (
	horizontal = axis{
		name:      "horizontal",
		primary:   func(s geom.Size) float64 { return s.Width },
		secondary: func(s geom.Size) float64 { return s.Height },
		pos:       func(sum float64) geom.Position { return geom.Position{X: sum} },
		bounds:    func(p, s float64) geom.Size { return geom.Size{Width: p, Height: s} },
	}
	vertical = axis{
		name:      "vertical",
		primary:   func(s geom.Size) float64 { return s.Height },
		secondary: func(s geom.Size) float64 { return s.Width },
		pos:       func(sum float64) geom.Position { return geom.Position{Y: sum} },
		bounds:    func(p, s float64) geom.Size { return geom.Size{Width: s, Height: p} },
	}
)

// Horizontal places items end to end from left to right.
func Horizontal() Layouter { return &linear{axis: horizontal} }

// Vertical places items end to end from top to bottom.
func Vertical() Layouter { return &linear{axis: vertical} }

type linear struct {
	axis      axis
	container dom.Element
}

func (l *linear) Mount(container dom.Element, _ func()) { l.container = container }

func (l *linear) Unmount() { l.container = nil }

func (l *linear) Layout(sizes []geom.Size) Layout {
	out := &linearLayout{axis: l.axis.name, rects: make([]geom.Rect, len(sizes))}
	var sum, secondary float64
	for i, s := range sizes {
		out.rects[i] = geom.NewRect(l.axis.pos(sum), s)
		sum += l.axis.primary(s)
		secondary = max(secondary, l.axis.secondary(s))
	}
	out.bounds = l.axis.bounds(sum, secondary)
	if s, ok := l.container.(dom.Sizable); ok {
		s.SetMinSize(out.bounds)
	}
	return out
}

type linearLayout struct {
	axis   string
	rects  []geom.Rect
	bounds geom.Size
}

func (l *linearLayout) Pos(i int) geom.Position {
	if i < 0 || i >= len(l.rects) {
		logger.Error("no position for index", "layout", l.axis, "index", i, "len", len(l.rects))
		return geom.Position{}
	}
	return l.rects[i].Position()
}

func (l *linearLayout) Bounds() geom.Size { return l.bounds }

// CheckIndex returns the first item that the box covers by at least half of
// either box's area.
func (l *linearLayout) CheckIndex(r geom.Rect) (int, bool) {
	if len(l.rects) == 0 {
		return 0, true
	}
	area := geom.Area(r)
	for i, item := range l.rects {
		inter := geom.OverlapArea(r, item)
		if inter <= 0 {
			continue
		}
		if inter >= geom.Area(item)/2 || inter >= area/2 {
			return i, true
		}
	}
	return 0, false
}
