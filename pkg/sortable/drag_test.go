package sortable

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/dragsort/pkg/anim"
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/signal"
)

func pt(x, y float64) geom.Position { return geom.Position{X: x, Y: y} }

// column mounts an ungrouped vertical list of 100x100 items.
func column(t *testing.T, doc *memdom.Document, items []string, opts Options[string]) (*Container[string], *signal.State[[]string], *recorder) {
	t.Helper()
	_, sentinel := newList(doc, "list", geom.Position{}, geom.Size{Width: 100, Height: 500}, memdom.FlowVertical)
	state := signal.New(items)
	rec := &recorder{}
	if opts.Render == nil {
		opts.Render = boxes[string](doc, cell)
	}
	opts.Callbacks = SliceHandlers(state)
	move := opts.Callbacks.OnMove
	opts.OnMove = func(item string, from, to int) {
		rec.add("move %s %d %d", item, from, to)
		move(item, from, to)
	}
	opts.OnDragStart = func(item string, idx int) { rec.add("start %s %d", item, idx) }
	opts.OnDragEnd = func(item string, start, end int) { rec.add("end %s %d %d", item, start, end) }
	opts.OnClick = func(item string, idx int, _ dom.Event) { rec.add("click %s %d", item, idx) }
	c := New(doc, opts)
	c.Bind(state)
	mustMount(t, c, sentinel)
	return c, state, rec
}

func TestGridDragFiresSingleMove(t *testing.T) {
	for _, apply := range []bool{true, false} {
		name := "caller applies moves"
		if !apply {
			name = "caller ignores moves"
		}
		t.Run(name, func(t *testing.T) {
			doc := newDoc()
			_, sentinel := newList(doc, "grid", geom.Position{}, geom.Size{Width: 200}, memdom.FlowNone)
			state := signal.New([]string{"A", "B", "C", "D"})
			rec := &recorder{}
			handlers := SliceHandlers(state)
			c := New(doc, Options[string]{
				Render: boxes[string](doc, cell),
				Layout: layout.FlowGrid(layout.FlowGridOptions{Align: layout.AlignLeft}),
				Callbacks: Callbacks[string]{
					OnMove: func(item string, from, to int) {
						rec.add("move %s %d %d", item, from, to)
						if apply {
							handlers.OnMove(item, from, to)
						}
					},
					OnDragEnd: func(item string, start, end int) { rec.add("end %s %d %d", item, start, end) },
				},
			})
			c.Bind(state)
			mustMount(t, c, sentinel)

			doc.MouseDown(pt(50, 50))
			doc.MouseMove(pt(50, 150))
			doc.MouseMove(pt(52, 152))
			doc.MouseMove(pt(55, 155))

			if got := rec.count("move"); got != 1 {
				t.Fatalf("moves = %v, want exactly one", rec.calls)
			}
			if rec.calls[0] != "move A 0 2" {
				t.Errorf("first call = %q, want move A 0 2", rec.calls[0])
			}

			doc.MouseUp(pt(55, 155))
			if !apply {
				return
			}
			if got := state.Get(); !slices.Equal(got, []string{"B", "C", "A", "D"}) {
				t.Errorf("items = %v", got)
			}
			if last := rec.calls[len(rec.calls)-1]; last != "end A 0 2" {
				t.Errorf("last call = %q, want end A 0 2", last)
			}
			a := elementOf(t, c, "A")
			if a.Transform() != (geom.Position{}) || a.ZIndex() != 0 {
				t.Errorf("A not settled: transform %+v z %d", a.Transform(), a.ZIndex())
			}
		})
	}
}

func TestDragTransformFollowsPointer(t *testing.T) {
	doc := newDoc()
	c, _, _ := column(t, doc, []string{"a", "b", "c"}, Options[string]{})
	a := elementOf(t, c, "a")

	doc.MouseDown(pt(20, 30))
	if a.ZIndex() != 1 {
		t.Errorf("pressed item z = %d, want 1", a.ZIndex())
	}
	doc.MouseMove(pt(40, 60))
	if got := a.Transform(); got != (geom.Position{X: 20, Y: 30}) {
		t.Errorf("transform = %+v, want {20 30}", got)
	}
	if doc.Cursor() != "grabbing" {
		t.Errorf("cursor = %q during drag", doc.Cursor())
	}
	doc.MouseUp(pt(40, 60))
	if doc.Cursor() != "default" {
		t.Errorf("cursor = %q after drop", doc.Cursor())
	}
}

func TestClickVersusDrag(t *testing.T) {
	tests := []struct {
		name    string
		gesture func(doc *memdom.Document)
		want    []string
	}{
		{
			name: "quick press is a click",
			gesture: func(doc *memdom.Document) {
				doc.MouseDown(pt(50, 150))
				doc.MouseUp(pt(50, 150))
			},
			want: []string{"click b 1"},
		},
		{
			name: "small wobble is still a click",
			gesture: func(doc *memdom.Document) {
				doc.MouseDown(pt(50, 150))
				doc.Advance(50 * time.Millisecond)
				doc.MouseMove(pt(54, 153))
				doc.MouseUp(pt(54, 153))
			},
			want: []string{"click b 1"},
		},
		{
			name: "hold without moving drags",
			gesture: func(doc *memdom.Document) {
				doc.MouseDown(pt(50, 150))
				doc.Advance(100 * time.Millisecond)
				doc.MouseUp(pt(50, 150))
			},
			want: []string{"start b 1", "end b 1 1"},
		},
		{
			name: "travel drags",
			gesture: func(doc *memdom.Document) {
				doc.MouseDown(pt(50, 150))
				doc.MouseMove(pt(50, 160))
				doc.MouseUp(pt(50, 160))
			},
			want: []string{"start b 1", "end b 1 1"},
		},
		{
			name: "secondary button is ignored",
			gesture: func(doc *memdom.Document) {
				doc.Dispatch(dom.Event{Type: dom.MouseDown, Button: dom.ButtonSecondary, Client: pt(50, 150)})
				doc.MouseUp(pt(50, 150))
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc()
			_, _, rec := column(t, doc, []string{"a", "b", "c"}, Options[string]{})
			tt.gesture(doc)
			if !slices.Equal(rec.calls, tt.want) {
				t.Errorf("calls = %v, want %v", rec.calls, tt.want)
			}
			if doc.PendingTimers() != 0 {
				t.Errorf("%d timers left after the gesture", doc.PendingTimers())
			}
		})
	}
}

func TestVerticalDragMovesDown(t *testing.T) {
	doc := newDoc()
	_, state, rec := column(t, doc, []string{"a", "b", "c"}, Options[string]{})

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(50, 90))
	if rec.count("move") != 0 {
		t.Fatalf("moved below the threshold: %v", rec.calls)
	}
	doc.MouseMove(pt(50, 160))
	doc.MouseUp(pt(50, 160))

	if got := state.Get(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("items = %v", got)
	}
	want := []string{"start a 0", "move a 0 1", "end a 0 1"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestHandleOnlyDragging(t *testing.T) {
	doc := newDoc()
	var unregister func()
	render := func(p ItemProps[string]) []dom.Element {
		el := doc.NewElement(p.Item, cell)
		handle := doc.NewElement(p.Item+"-handle", geom.Size{Width: 20, Height: 20})
		el.AppendChild(handle)
		u := p.Handle(handle)
		if p.Item == "a" {
			unregister = u
		}
		return []dom.Element{el}
	}
	c, _, _ := column(t, doc, []string{"a", "b"}, Options[string]{Render: render})

	doc.MouseDown(pt(50, 50))
	if _, ok := c.Dragging(); ok {
		t.Fatal("press on the item body started a gesture")
	}
	doc.MouseUp(pt(50, 50))

	doc.MouseDown(pt(10, 10))
	if item, ok := c.Dragging(); !ok || item != "a" {
		t.Fatalf("press on the handle: Dragging() = %q, %v", item, ok)
	}
	doc.MouseUp(pt(10, 10))

	unregister()
	doc.MouseDown(pt(50, 50))
	if _, ok := c.Dragging(); !ok {
		t.Error("without handles the item body should start a gesture")
	}
	doc.MouseUp(pt(50, 50))
}

func TestItemRemovedMidDrag(t *testing.T) {
	doc := newDoc()
	c, state, rec := column(t, doc, []string{"a", "b", "c"}, Options[string]{})

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(60, 60))
	state.Set([]string{"b", "c"})
	doc.MouseMove(pt(70, 90))

	if _, ok := c.Dragging(); ok {
		t.Error("gesture survived the removal of its item")
	}
	doc.MouseUp(pt(70, 90))
	if want := []string{"start a 0"}; !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	doc.MouseDown(pt(50, 50))
	if item, ok := c.Dragging(); !ok || item != "b" {
		t.Errorf("next gesture: Dragging() = %q, %v", item, ok)
	}
	doc.MouseUp(pt(50, 50))
}

func TestItemRemovedBeforeRelease(t *testing.T) {
	doc := newDoc()
	c, state, rec := column(t, doc, []string{"a", "b", "c"}, Options[string]{})

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(60, 60))
	state.Set([]string{"b", "c"})

	if _, ok := c.Dragging(); ok {
		t.Error("Dragging() still reports the removed item")
	}
	if doc.Cursor() != "default" {
		t.Errorf("cursor = %q after the gesture ended", doc.Cursor())
	}
	doc.MouseUp(pt(60, 60))
	if want := []string{"start a 0"}; !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	doc.MouseDown(pt(50, 50))
	doc.MouseUp(pt(50, 50))
	if last := rec.calls[len(rec.calls)-1]; last != "click b 0" {
		t.Errorf("next gesture = %q, want click b 0", last)
	}
}

func TestSharedItemRemovedMidDrag(t *testing.T) {
	p := newPair(t, true)

	p.doc.MouseDown(pt(50, 50))
	p.doc.MouseMove(pt(50, 70))
	p.xs.Set([]int{2, 3})

	if _, ok := p.group.Dragging(); ok {
		t.Error("group still drags the removed item")
	}
	if p.group.Cached(1) {
		t.Error("removed item kept its shared element")
	}
	p.doc.MouseUp(pt(50, 70))
	if got := p.rec.count("x end"); got != 0 {
		t.Errorf("drag end fired after removal: %v", p.rec.calls)
	}
}

func TestMouseDownClass(t *testing.T) {
	doc := newDoc()
	c, _, _ := column(t, doc, []string{"a"}, Options[string]{Settings: Settings{MouseDownClass: "pressed"}})
	a := elementOf(t, c, "a")

	doc.MouseDown(pt(50, 50))
	if !a.HasClass("pressed") {
		t.Error("class missing while pressed")
	}
	doc.MouseUp(pt(50, 50))
	if a.HasClass("pressed") {
		t.Error("class left after release")
	}
}

func TestAnimatedDrop(t *testing.T) {
	doc := newDoc()
	sched := anim.NewScheduler(doc)
	sched.Start()
	defer sched.Shutdown()

	c, _, _ := column(t, doc, []string{"a", "b", "c"}, Options[string]{
		Settings:  Settings{Animated: true, AnimationDuration: 200 * time.Millisecond},
		Scheduler: sched,
	})
	a := elementOf(t, c, "a")
	doc.Frame()

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(50, 80))
	doc.Frame()
	if got := a.Transform(); got != (geom.Position{Y: 30}) {
		t.Fatalf("frame during drag changed the transform to %+v", got)
	}

	doc.MouseUp(pt(50, 80))
	doc.Frame()
	if got := a.Transform(); got != (geom.Position{Y: 30}) {
		t.Errorf("drop should start from the drag position, got %+v", got)
	}
	if a.ZIndex() != 1 {
		t.Errorf("z restored before settling")
	}
	doc.Step(100 * time.Millisecond)
	if got := a.Transform(); got != (geom.Position{Y: 15}) {
		t.Errorf("halfway transform = %+v, want {0 15}", got)
	}
	doc.Step(101 * time.Millisecond)
	if a.Transform() != (geom.Position{}) || a.ZIndex() != 0 {
		t.Errorf("after settling: transform %+v z %d", a.Transform(), a.ZIndex())
	}
}

func TestScrollVelocity(t *testing.T) {
	area := geom.Rect{Width: 100, Height: 100}

	tests := []struct {
		name string
		p    geom.Position
		want geom.Position
	}{
		{"center", pt(50, 50), geom.Position{}},
		{"half into top band", pt(50, 12.5), pt(0, -1)},
		{"half into bottom band", pt(50, 87.5), pt(0, 1)},
		{"half into left band", pt(12.5, 50), pt(-1, 0)},
		{"edge is capped at the extent", pt(50, 0), pt(0, -100)},
		{"outside", pt(50, 150), geom.Position{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scrollVelocity(area, tt.p, DefaultAutoscrollBand, DefaultAutoscrollCurve)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("scrollVelocity(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestAutoscrollSelf(t *testing.T) {
	doc := newDoc()
	parent, sentinel := newList(doc, "list", geom.Position{}, geom.Size{Width: 100, Height: 200}, memdom.FlowVertical)
	c := New(doc, Options[string]{Render: boxes[string](doc, cell), AutoscrollSelf: true})
	if err := c.Update([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	mustMount(t, c, sentinel)

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(50, 195))
	doc.Advance(3 * time.Millisecond)
	if parent.ScrollOffset().Y <= 0 {
		t.Fatalf("list did not scroll: %+v", parent.ScrollOffset())
	}

	doc.MouseMove(pt(50, 100))
	scrolled := parent.ScrollOffset()
	doc.Advance(3 * time.Millisecond)
	if parent.ScrollOffset() != scrolled {
		t.Error("scrolling continued outside the edge band")
	}
	doc.MouseUp(pt(50, 100))
	if doc.PendingTimers() != 0 {
		t.Errorf("%d timers left after the gesture", doc.PendingTimers())
	}
}

// scrollingList mounts a 100x200 list of five 100x100 items, so it scrolls.
func scrollingList(t *testing.T, doc *memdom.Document, rec *recorder) (*Container[string], *memdom.Element) {
	t.Helper()
	parent, sentinel := newList(doc, "list", geom.Position{}, geom.Size{Width: 100, Height: 200}, memdom.FlowVertical)
	c := New(doc, Options[string]{
		Render: boxes[string](doc, cell),
		Callbacks: Callbacks[string]{
			OnDragStart: func(item string, idx int) { rec.add("start %s %d", item, idx) },
			OnClick:     func(item string, idx int, _ dom.Event) { rec.add("click %s %d", item, idx) },
		},
	})
	if err := c.Update([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	mustMount(t, c, sentinel)
	return c, parent
}

func TestScrollDoesNotCountAsTravel(t *testing.T) {
	tests := []struct {
		name   string
		scroll func(doc *memdom.Document, list *memdom.Element)
	}{
		{"list scroll", func(_ *memdom.Document, list *memdom.Element) { list.ScrollBy(geom.Position{Y: 50}) }},
		{"page scroll", func(doc *memdom.Document, _ *memdom.Element) { doc.ScrollBy(geom.Position{Y: 50}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc()
			rec := &recorder{}
			_, list := scrollingList(t, doc, rec)
			doc.Body().InsertChild(0, doc.NewElement("spacer", geom.Size{Width: 800, Height: 2000}))

			doc.MouseDown(pt(50, 50))
			tt.scroll(doc, list)
			doc.MouseUp(pt(50, 50))

			if want := []string{"click a 0"}; !slices.Equal(rec.calls, want) {
				t.Errorf("calls = %v, want %v", rec.calls, want)
			}
		})
	}
}

func TestDraggedItemStaysUnderPointerOnScroll(t *testing.T) {
	doc := newDoc()
	rec := &recorder{}
	c, parent := scrollingList(t, doc, rec)
	a := elementOf(t, c, "a")

	doc.MouseDown(pt(50, 50))
	doc.MouseMove(pt(50, 70))
	before := a.ClientRect()
	if before.Y != 20 {
		t.Fatalf("dragged item at y=%v, want 20", before.Y)
	}

	parent.ScrollBy(geom.Position{Y: 40})
	if got := a.ClientRect(); got != before {
		t.Errorf("after scroll ClientRect() = %+v, want %+v", got, before)
	}
	doc.MouseUp(pt(50, 70))
}
