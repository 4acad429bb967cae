package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// Align controls where the leftover row width goes in a flow grid.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseAlign parses "left", "center" or "right".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignCenter, errors.New(errors.ErrCodeInvalidLayout, "unknown alignment %q", s)
	}
}

// FlowGridOptions configures FlowGrid.
type FlowGridOptions struct {
	Align Align
	// Width is used until the container reports its own width, and always
	// when the layout is used unmounted.
	Width float64
}

// FlowGrid lays items out left to right in uniform cells the size of the
// largest item, wrapping at the container width.
func FlowGrid(opts FlowGridOptions) Layouter {
	return &flowGrid{opts: opts, width: opts.Width}
}

type flowGrid struct {
	opts      FlowGridOptions
	container dom.Element
	width     float64
	stop      func()
}

func (g *flowGrid) Mount(container dom.Element, onChange func()) {
	g.Unmount()
	g.container = container
	if w := container.ClientRect().Width; w > 0 {
		g.width = w
	}
	if ro, ok := container.(dom.ResizeObservable); ok {
		g.stop = ro.ObserveResize(func(s geom.Size) {
			if s.Width == g.width {
				return
			}
			g.width = s.Width
			if onChange != nil {
				onChange()
			}
		})
	}
}

func (g *flowGrid) Unmount() {
	if g.stop != nil {
		g.stop()
		g.stop = nil
	}
	g.container = nil
}

func (g *flowGrid) Layout(sizes []geom.Size) Layout {
	var cell geom.Size
	for _, s := range sizes {
		cell.Width = max(cell.Width, s.Width)
		cell.Height = max(cell.Height, s.Height)
	}
	l := &gridLayout{
		n:         len(sizes),
		cell:      cell,
		width:     g.width,
		container: g.container,
		perRow:    1,
	}
	if cell.Width > 0 {
		l.perRow = max(1, int(math.Floor(g.width/cell.Width)))
		switch g.opts.Align {
		case AlignLeft:
		case AlignRight:
			l.margin = math.Floor(geom.Mod(g.width, cell.Width))
		default:
			l.margin = math.Floor(geom.Mod(g.width, cell.Width) / 2)
		}
	}
	if l.n > 0 {
		l.minHeight = math.Ceil(float64(l.n)/float64(l.perRow)) * cell.Height
	}
	if s, ok := g.container.(dom.Sizable); ok {
		s.SetMinSize(geom.Size{Height: l.minHeight})
	}
	return l
}

type gridLayout struct {
	n         int
	cell      geom.Size
	width     float64
	perRow    int
	margin    float64
	minHeight float64
	container dom.Element
}

func (l *gridLayout) Pos(i int) geom.Position {
	return geom.Position{
		X: l.margin + l.cell.Width*float64(i%l.perRow),
		Y: l.cell.Height * float64(i/l.perRow),
	}
}

func (l *gridLayout) Bounds() geom.Size {
	return geom.Size{Width: l.width, Height: l.minHeight}
}

func (l *gridLayout) CheckIndex(r geom.Rect) (int, bool) {
	if l.n == 0 {
		return 0, true
	}
	if l.cell.Width <= 0 || l.cell.Height <= 0 {
		return 0, false
	}
	height := l.minHeight
	if l.container != nil {
		height = max(height, l.container.ClientRect().Height)
	}
	cols := l.perRow
	rows := max(1, int(math.Floor(height/l.cell.Height)))

	if r.X+l.cell.Width < l.margin || r.X > l.width-l.margin {
		return 0, false
	}
	if r.Y+l.cell.Height < 0 || r.Y > height {
		return 0, false
	}
	col := int(math.Floor(((r.X+r.X+l.cell.Width)/2 - l.margin) / l.cell.Width))
	row := int(math.Floor((r.Y + r.Y + l.cell.Height) / 2 / l.cell.Height))
	col = geom.ClampInt(col, 0, cols-1)
	row = geom.ClampInt(row, 0, rows-1)
	return geom.ClampInt(col+row*cols, 0, l.n), true
}
