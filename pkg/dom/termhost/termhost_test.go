package termhost

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

func plain(s string) []string {
	return strings.Split(xansi.Strip(s), "\n")
}

func TestPaintBox(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 10, Height: 4})
	el := doc.NewElement("a", geom.Size{Width: 8, Height: 3})
	el.SetPosition(geom.Position{X: 1})
	el.Data = &Box{Label: "hi", Border: true, Style: lipgloss.NewStyle()}
	doc.Body().AppendChild(el)

	got := plain(Paint(doc))
	want := []string{
		" ╭──────╮ ",
		" │  hi  │ ",
		" ╰──────╯ ",
		"          ",
	}
	if len(got) != len(want) {
		t.Fatalf("Paint() has %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPaintTruncatesLabel(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 6, Height: 1})
	el := doc.NewElement("a", geom.Size{Width: 6, Height: 1})
	el.Data = &Box{Label: "a long label"}
	doc.Body().AppendChild(el)

	if got := plain(Paint(doc))[0]; got != "a lon…" {
		t.Errorf("row = %q, want %q", got, "a lon…")
	}
}

func TestPaintOrderFollowsZIndex(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 3, Height: 1})
	below := doc.NewElement("below", geom.Size{Width: 3, Height: 1})
	below.Data = &Box{Label: "bbb"}
	above := doc.NewElement("above", geom.Size{Width: 3, Height: 1})
	above.Data = &Box{Label: "aaa"}
	doc.Body().AppendChild(above)
	doc.Body().AppendChild(below)

	if got := plain(Paint(doc))[0]; got != "bbb" {
		t.Fatalf("row = %q, want later sibling on top", got)
	}
	above.SetZIndex(1)
	if got := plain(Paint(doc))[0]; got != "aaa" {
		t.Errorf("row = %q, want raised element on top", got)
	}
}

func TestHostMouse(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 20, Height: 10})
	h := New(doc)
	h.Top = 2

	var events []dom.Event
	doc.AddListener(dom.MouseDown, func(ev dom.Event) { events = append(events, ev) })
	doc.AddListener(dom.MouseMove, func(ev dom.Event) { events = append(events, ev) })
	doc.AddListener(dom.MouseUp, func(ev dom.Event) { events = append(events, ev) })

	h.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	h.Update(tea.MouseMsg{X: 4, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

	want := []struct {
		typ dom.EventType
		p   geom.Position
	}{
		{dom.MouseDown, geom.Position{X: 3, Y: 3}},
		{dom.MouseMove, geom.Position{X: 4, Y: 3}},
		{dom.MouseUp, geom.Position{X: 4, Y: 4}},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i].Type != w.typ || events[i].Client != w.p {
			t.Errorf("event %d = %v at %+v, want %v at %+v", i, events[i].Type, events[i].Client, w.typ, w.p)
		}
	}
	if events[0].Button != dom.ButtonPrimary {
		t.Errorf("press button = %v", events[0].Button)
	}
}

func TestHostClockAndResize(t *testing.T) {
	doc := memdom.NewDocument(geom.Size{Width: 20, Height: 10})
	h := New(doc)
	h.Top = 1
	if h.Init() == nil {
		t.Fatal("Init() returned no tick")
	}

	fired := false
	doc.SetTimeout(50*time.Millisecond, func() { fired = true })
	start := h.last
	if cmd := h.Update(tickMsg(start.Add(60 * time.Millisecond))); cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if !fired {
		t.Error("tick did not advance the document clock")
	}

	h.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	if got := doc.Viewport(); got.Width != 40 || got.Height != 11 {
		t.Errorf("viewport = %+v, want 40x11", got)
	}
}
