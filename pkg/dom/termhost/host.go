// Package termhost runs a memdom document inside a bubbletea program.
//
// Terminal cells map one to one onto document units. Mouse messages become
// document events, a ticker advances the document clock (timers and
// animation frames) in real time, and Paint draws every element that carries
// a *Box in its Data field.
package termhost

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

// DefaultInterval is the clock tick, about 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

type tickMsg time.Time

// Host forwards bubbletea messages to a document. Embed it in a tea.Model
// and call its Init, Update and View.
type Host struct {
	doc *memdom.Document
	// Top is the number of terminal rows above the document.
	Top      int
	Interval time.Duration
	Logger   *log.Logger

	last time.Time
}

// New creates a host for doc.
func New(doc *memdom.Document) *Host {
	return &Host{doc: doc, Interval: DefaultInterval, Logger: log.Default().WithPrefix("termhost")}
}

// Document returns the hosted document.
func (h *Host) Document() *memdom.Document { return h.doc }

// Init starts the clock.
func (h *Host) Init() tea.Cmd {
	h.last = time.Now()
	return h.tick()
}

func (h *Host) tick() tea.Cmd {
	return tea.Tick(h.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles the messages the host understands and ignores the rest.
func (h *Host) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if dt := now.Sub(h.last); dt > 0 {
			h.doc.Step(dt)
		}
		h.last = now
		return h.tick()
	case tea.WindowSizeMsg:
		h.doc.SetViewport(geom.Size{Width: float64(msg.Width), Height: float64(max(msg.Height-h.Top, 0))})
	case tea.MouseMsg:
		h.mouse(msg)
	}
	return nil
}

// View paints the document.
func (h *Host) View() string {
	return Paint(h.doc)
}

func (h *Host) mouse(msg tea.MouseMsg) {
	p := geom.Position{X: float64(msg.X), Y: float64(msg.Y - h.Top)}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		h.wheel(p, geom.Position{Y: -1})
	case msg.Button == tea.MouseButtonWheelDown:
		h.wheel(p, geom.Position{Y: 1})
	case msg.Action == tea.MouseActionPress:
		h.doc.Dispatch(dom.Event{Type: dom.MouseDown, Button: button(msg.Button), Client: p})
	case msg.Action == tea.MouseActionMotion:
		h.doc.Dispatch(dom.Event{Type: dom.MouseMove, Button: button(msg.Button), Client: p})
	case msg.Action == tea.MouseActionRelease:
		h.doc.Dispatch(dom.Event{Type: dom.MouseUp, Button: dom.ButtonPrimary, Client: p})
	}
}

// wheel scrolls the innermost element under p that can still move.
func (h *Host) wheel(p, delta geom.Position) {
	for el := h.doc.ElementAt(p); el != nil; {
		before := el.ScrollOffset()
		el.ScrollBy(delta)
		if el.ScrollOffset() != before {
			return
		}
		parent, ok := el.Parent().(*memdom.Element)
		if !ok {
			break
		}
		el = parent
	}
	h.doc.ScrollBy(delta)
}

func button(b tea.MouseButton) dom.Button {
	switch b {
	case tea.MouseButtonLeft:
		return dom.ButtonPrimary
	case tea.MouseButtonMiddle:
		return dom.ButtonMiddle
	case tea.MouseButtonRight:
		return dom.ButtonSecondary
	default:
		return dom.ButtonNone
	}
}
