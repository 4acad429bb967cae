package cli

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/dom/termhost"
	"github.com/matzehuels/dragsort/pkg/geom"
)

func testBoard(t *testing.T, edit func(*boardConfig)) *board {
	t.Helper()
	cfg := defaultBoard()
	if edit != nil {
		edit(&cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate() error: %v", err)
	}
	b, err := newBoard(cfg, geom.Size{Width: 80, Height: 24}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newBoard() error: %v", err)
	}
	t.Cleanup(b.close)
	return b
}

func label(t *testing.T, b *board, list int, item string) string {
	t.Helper()
	el, ok := b.lists[list].container.Element(item)
	if !ok {
		t.Fatalf("%s has no element for %q", b.lists[list].name, item)
	}
	return el.(*memdom.Element).Data.(*termhost.Box).Label
}

func TestBoardLayout(t *testing.T) {
	b := testBoard(t, nil)

	if len(b.lists) != 3 {
		t.Fatalf("lists = %d, want 3", len(b.lists))
	}
	wantX := []float64{0, 18, 36}
	for i, l := range b.lists {
		if r := l.panel.ClientRect(); r.X != wantX[i] || r.Y != 1 {
			t.Errorf("%s panel at %+v, want x=%v y=1", l.name, r.Position(), wantX[i])
		}
	}
	el, _ := b.lists[0].container.Element("build")
	if r := el.ClientRect(); r != (geom.Rect{X: 0, Y: 4, Width: 16, Height: 3}) {
		t.Errorf("build at %+v", r)
	}
	if got := label(t, b, 0, "test"); got != "3. test" {
		t.Errorf("label = %q, want %q", got, "3. test")
	}
}

func TestBoardDragBetweenLists(t *testing.T) {
	b := testBoard(t, nil)

	b.doc.MouseDown(geom.Position{X: 8, Y: 2})
	b.doc.MouseMove(geom.Position{X: 26, Y: 2})
	b.doc.MouseUp(geom.Position{X: 26, Y: 2})

	items := b.items()
	if want := []string{"build", "test", "review"}; !slices.Equal(items["todo"], want) {
		t.Errorf("todo = %v, want %v", items["todo"], want)
	}
	if want := []string{"design", "docs"}; !slices.Equal(items["doing"], want) {
		t.Errorf("doing = %v, want %v", items["doing"], want)
	}
	if got := label(t, b, 1, "design"); got != "1. design" {
		t.Errorf("label = %q after the transfer", got)
	}
	if got := label(t, b, 0, "build"); got != "1. build" {
		t.Errorf("label = %q after the removal", got)
	}
	if b.status != "design → doing #1" {
		t.Errorf("status = %q", b.status)
	}

	b.reset()
	items = b.items()
	if !slices.Equal(items["todo"], defaultBoard().Lists[0].Items) || !slices.Equal(items["doing"], []string{"docs"}) {
		t.Errorf("after reset: %v", items)
	}
	if _, ok := b.lists[0].container.Element("design"); !ok {
		t.Error("reset did not render design back into todo")
	}
}

func TestBoardClosedList(t *testing.T) {
	b := testBoard(t, func(c *boardConfig) { c.Lists[1].Closed = true })

	b.doc.MouseDown(geom.Position{X: 8, Y: 2})
	b.doc.MouseMove(geom.Position{X: 26, Y: 2})
	b.doc.MouseUp(geom.Position{X: 26, Y: 2})

	items := b.items()
	if !slices.Equal(items["doing"], []string{"docs"}) {
		t.Errorf("closed list accepted an item: %v", items["doing"])
	}
	if len(items["todo"]) != 4 {
		t.Errorf("todo = %v", items["todo"])
	}
}

func TestBoardClick(t *testing.T) {
	b := testBoard(t, nil)

	b.doc.MouseDown(geom.Position{X: 40, Y: 5})
	b.doc.MouseUp(geom.Position{X: 40, Y: 5})

	if b.status != "clicked ci (done #2)" {
		t.Errorf("status = %q", b.status)
	}
	if got := b.items()["done"]; !slices.Equal(got, []string{"setup", "ci"}) {
		t.Errorf("click reordered the list: %v", got)
	}
}

func TestBoardFlowAndGrid(t *testing.T) {
	tests := []struct {
		kind string
		want geom.Rect
	}{
		{kindFlow, geom.Rect{X: 0, Y: 4, Width: 16, Height: 3}},
		{kindGrid, geom.Rect{X: 16, Y: 1, Width: 16, Height: 3}},
		{kindHorizontal, geom.Rect{X: 16, Y: 1, Width: 16, Height: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			b := testBoard(t, func(c *boardConfig) { c.Layout = tt.kind; c.Align = "left" })
			el, ok := b.lists[0].container.Element("build")
			if !ok {
				t.Fatal("build has no element")
			}
			if r := el.ClientRect(); r != tt.want {
				t.Errorf("build at %+v, want %+v", r, tt.want)
			}
		})
	}
}
