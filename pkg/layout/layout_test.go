package layout

import (
	"testing"

	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

func squares(n int, side float64) []geom.Size {
	out := make([]geom.Size, n)
	for i := range out {
		out[i] = geom.Size{Width: side, Height: side}
	}
	return out
}

func TestFlowGridPositions(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		width float64
		want  []geom.Position
	}{
		{
			name:  "two per row",
			align: AlignLeft,
			width: 200,
			want:  []geom.Position{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}},
		},
		{
			name:  "centered remainder",
			align: AlignCenter,
			width: 250,
			want:  []geom.Position{{X: 25, Y: 0}, {X: 125, Y: 0}, {X: 25, Y: 100}, {X: 125, Y: 100}},
		},
		{
			name:  "right aligned remainder",
			align: AlignRight,
			width: 350,
			want:  []geom.Position{{X: 50, Y: 0}, {X: 150, Y: 0}, {X: 250, Y: 0}, {X: 50, Y: 100}},
		},
		{
			name:  "narrower than a cell",
			align: AlignLeft,
			width: 50,
			want:  []geom.Position{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 0, Y: 200}, {X: 0, Y: 300}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := FlowGrid(FlowGridOptions{Align: tt.align, Width: tt.width}).Layout(squares(4, 100))
			for i, want := range tt.want {
				if got := l.Pos(i); got != want {
					t.Errorf("Pos(%d) = %+v, want %+v", i, got, want)
				}
			}
		})
	}
}

func TestFlowGridUsesLargestCell(t *testing.T) {
	sizes := []geom.Size{{Width: 50, Height: 20}, {Width: 100, Height: 40}, {Width: 10, Height: 10}}
	l := FlowGrid(FlowGridOptions{Align: AlignLeft, Width: 200}).Layout(sizes)
	if got := l.Pos(2); got != (geom.Position{X: 0, Y: 40}) {
		t.Errorf("Pos(2) = %+v, want {0 40}", got)
	}
	if got := l.Bounds(); got != (geom.Size{Width: 200, Height: 80}) {
		t.Errorf("Bounds() = %+v", got)
	}
}

func TestFlowGridCheckIndex(t *testing.T) {
	l := FlowGrid(FlowGridOptions{Align: AlignLeft, Width: 200}).Layout(squares(4, 100))

	tests := []struct {
		name   string
		rect   geom.Rect
		want   int
		wantOK bool
	}{
		{"own cell", geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}, 0, true},
		{"just under half into next row", geom.Rect{X: 0, Y: 49, Width: 100, Height: 100}, 0, true},
		{"half into next row", geom.Rect{X: 0, Y: 50, Width: 100, Height: 100}, 2, true},
		{"over last cell", geom.Rect{X: 110, Y: 95, Width: 100, Height: 100}, 3, true},
		{"below the grid clamps to last row", geom.Rect{X: 0, Y: 190, Width: 100, Height: 100}, 2, true},
		{"far left", geom.Rect{X: -150, Y: 0, Width: 100, Height: 100}, 0, false},
		{"far right", geom.Rect{X: 250, Y: 0, Width: 100, Height: 100}, 0, false},
		{"far below", geom.Rect{X: 0, Y: 250, Width: 100, Height: 100}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CheckIndex(tt.rect)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("CheckIndex(%+v) = %d, %v; want %d, %v", tt.rect, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	empty := FlowGrid(FlowGridOptions{Width: 200}).Layout(nil)
	if got, ok := empty.CheckIndex(geom.Rect{X: 999, Y: 999, Width: 1, Height: 1}); !ok || got != 0 {
		t.Errorf("empty CheckIndex() = %d, %v; want 0, true", got, ok)
	}
}

func TestFlowGridMountTracksWidth(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 800, Height: 600})
	box := doc.NewElement("grid", geom.Size{Width: 200, Height: 0})
	doc.Body().AppendChild(box)

	changes := 0
	g := FlowGrid(FlowGridOptions{Align: AlignLeft})
	g.Mount(box, func() { changes++ })

	l := g.Layout(squares(4, 100))
	if got := l.Pos(2); got != (geom.Position{X: 0, Y: 100}) {
		t.Errorf("Pos(2) = %+v at width 200", got)
	}
	if box.MinSize().Height != 200 {
		t.Errorf("min height = %v, want 200", box.MinSize().Height)
	}
	if changes != 0 {
		t.Errorf("setting the min height reported %d width changes", changes)
	}

	box.SetSize(geom.Size{Width: 400})
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
	l = g.Layout(squares(4, 100))
	if got := l.Pos(2); got != (geom.Position{X: 200, Y: 0}) {
		t.Errorf("Pos(2) = %+v at width 400", got)
	}

	g.Unmount()
	box.SetSize(geom.Size{Width: 100})
	if changes != 1 {
		t.Errorf("unmounted layout still observed resizes")
	}
}

func TestLinearLayouts(t *testing.T) {
	sizes := []geom.Size{{Width: 10, Height: 30}, {Width: 20, Height: 10}, {Width: 30, Height: 20}}

	tests := []struct {
		name   string
		l      Layouter
		pos    []geom.Position
		bounds geom.Size
	}{
		{
			name:   "horizontal",
			l:      Horizontal(),
			pos:    []geom.Position{{X: 0}, {X: 10}, {X: 30}},
			bounds: geom.Size{Width: 60, Height: 30},
		},
		{
			name:   "vertical",
			l:      Vertical(),
			pos:    []geom.Position{{Y: 0}, {Y: 30}, {Y: 40}},
			bounds: geom.Size{Width: 30, Height: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := memdom.NewDocument(geom.Size{Width: 100, Height: 100})
			box := doc.NewElement("box", geom.Size{})
			tt.l.Mount(box, nil)
			out := tt.l.Layout(sizes)
			for i, want := range tt.pos {
				if got := out.Pos(i); got != want {
					t.Errorf("Pos(%d) = %+v, want %+v", i, got, want)
				}
			}
			if out.Bounds() != tt.bounds {
				t.Errorf("Bounds() = %+v, want %+v", out.Bounds(), tt.bounds)
			}
			if box.MinSize() != tt.bounds {
				t.Errorf("container min size = %+v, want %+v", box.MinSize(), tt.bounds)
			}
			if got := out.Pos(7); got != (geom.Position{}) {
				t.Errorf("Pos(out of range) = %+v, want origin", got)
			}
		})
	}
}

func TestLinearCheckIndex(t *testing.T) {
	l := Vertical().Layout(squares(3, 10))

	tests := []struct {
		name   string
		rect   geom.Rect
		want   int
		wantOK bool
	}{
		{"first slot", geom.Rect{X: 0, Y: 2, Width: 10, Height: 10}, 0, true},
		{"half over second", geom.Rect{X: 0, Y: 5, Width: 10, Height: 10}, 0, true},
		{"mostly over second", geom.Rect{X: 0, Y: 14, Width: 10, Height: 10}, 1, true},
		{"small box inside third", geom.Rect{X: 2, Y: 22, Width: 4, Height: 4}, 2, true},
		{"outside", geom.Rect{X: 50, Y: 0, Width: 10, Height: 10}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CheckIndex(tt.rect)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("CheckIndex() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOverlapPercent(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	rects := []geom.Rect{
		{X: 20, Y: 0, Width: 10, Height: 10}, // 0%
		{X: 6, Y: 0, Width: 10, Height: 10},  // 40%
		{X: 4, Y: 0, Width: 10, Height: 10},  // 60%
	}

	tests := []struct {
		name      string
		threshold float64
		want      int
		wantOK    bool
	}{
		{"picks the 60% candidate", 0.5, 2, true},
		{"below every candidate", 0.7, -1, false},
		{"max wins over first found", 0.3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OverlapPercent(tt.threshold)(rects, dragged, -1)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("OverlapPercent(%v) = %d, %v; want %d, %v", tt.threshold, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOverlapPercentTiesAndSkips(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	same := geom.Rect{X: 10, Y: 10, Width: 10, Height: 10}
	rects := []geom.Rect{same, {}, same, same}

	got, ok := OverlapPercent(0.5)(rects, dragged, 0)
	if !ok || got != 2 {
		t.Errorf("OverlapPercent() = %d, %v; want the lowest non-current index 2", got, ok)
	}
}

func TestOutwardSearchOrder(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	cell := geom.Rect{X: 10, Y: 10, Width: 10, Height: 10}
	rects := []geom.Rect{cell, cell, cell, cell, cell}

	if got, ok := Outward(0.5)(rects, dragged, 2); !ok || got != 1 {
		t.Errorf("Outward() from 2 = %d, %v; want 1", got, ok)
	}
	if got, ok := Outward(0.5)(rects, dragged, 0); !ok || got != 1 {
		t.Errorf("Outward() from 0 = %d, %v; want 1", got, ok)
	}

	// Only index 4 overlaps: reached after back/forward steps.
	rects = []geom.Rect{
		{X: 500, Width: 10, Height: 10},
		{X: 500, Width: 10, Height: 10},
		{X: 500, Width: 10, Height: 10},
		{X: 500, Width: 10, Height: 10},
		cell,
	}
	if got, ok := Outward(0.5)(rects, dragged, 1); !ok || got != 4 {
		t.Errorf("Outward() = %d, %v; want 4", got, ok)
	}
	if _, ok := Outward(0.5)(rects[:4], dragged, 1); ok {
		t.Error("Outward() matched without any overlap")
	}
}

func TestParseAlign(t *testing.T) {
	for _, s := range []string{"left", "Center", " right ", ""} {
		if _, err := ParseAlign(s); err != nil {
			t.Errorf("ParseAlign(%q) error: %v", s, err)
		}
	}
	if _, err := ParseAlign("justify"); err == nil {
		t.Error("ParseAlign(justify) should fail")
	}
}
