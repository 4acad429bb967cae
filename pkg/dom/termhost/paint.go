package termhost

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// PressedClass is the class Paint checks to pick Box.Pressed.
const PressedClass = "pressed"

// Box is the paint payload stored in memdom.Element.Data. Elements without a
// Box are not drawn, but their children are.
type Box struct {
	Label   string
	Style   lipgloss.Style
	Pressed lipgloss.Style
	Border  bool
}

type cell struct {
	r     rune
	style int
}

// canvas is a grid of runes, each tagged with an index into styles.
type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0), styles: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: style}
}

// cells converts a client rectangle to whole terminal cells.
func cells(r geom.Rect) (x0, y0, x1, y1 int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.Right())), int(math.Round(r.Bottom()))
}

func (c *canvas) box(r geom.Rect, b *Box, style lipgloss.Style) {
	s := len(c.styles)
	c.styles = append(c.styles, style)
	x0, y0, x1, y1 := cells(r)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, ' ', s)
		}
	}

	inner := x1 - x0
	if b.Border && x1-x0 >= 2 && y1-y0 >= 2 {
		for x := x0 + 1; x < x1-1; x++ {
			c.set(x, y0, '─', s)
			c.set(x, y1-1, '─', s)
		}
		for y := y0 + 1; y < y1-1; y++ {
			c.set(x0, y, '│', s)
			c.set(x1-1, y, '│', s)
		}
		c.set(x0, y0, '╭', s)
		c.set(x1-1, y0, '╮', s)
		c.set(x0, y1-1, '╰', s)
		c.set(x1-1, y1-1, '╯', s)
		inner -= 2
	}
	if b.Label == "" || inner <= 0 {
		return
	}

	label := b.Label
	if xansi.StringWidth(label) > inner {
		label = xansi.Cut(label, 0, max(inner-1, 0)) + "…"
	}
	width := xansi.StringWidth(label)
	x := x0 + (x1-x0-width)/2
	y := y0 + (y1-y0)/2
	for _, r := range label {
		c.set(x, y, r, s)
		x++
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start
			var run strings.Builder
			for end < len(row) && row[end].style == row[start].style {
				run.WriteRune(row[end].r)
				end++
			}
			if row[start].style == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[row[start].style].Render(run.String()))
			}
			start = end
		}
	}
	return b.String()
}

// Paint draws the document's boxes in paint order into a string the size of
// the viewport.
func Paint(doc *memdom.Document) string {
	vp := doc.Viewport()
	c := newCanvas(int(vp.Width), int(vp.Height))
	doc.Body().Walk(func(el *memdom.Element, _ int) {
		b, ok := el.Data.(*Box)
		if !ok {
			return
		}
		style := b.Style
		if el.HasClass(PressedClass) {
			style = b.Pressed
		}
		c.box(el.ClientRect(), b, style)
	})
	return c.String()
}
