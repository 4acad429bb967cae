package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/anim"
	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/dom/termhost"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/signal"
	"github.com/matzehuels/dragsort/pkg/sortable"
)

// Board styles
var (
	styleTitleBox = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePanel    = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	styleItem     = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236"))
	styleItemDown = lipgloss.NewStyle().Bold(true).Foreground(colorYellow).Background(lipgloss.Color("238"))
)

// listGap is the number of columns between two lists.
const listGap = 2

// board is the play document: one titled panel per list, all in one group.
type board struct {
	cfg    boardConfig
	doc    *memdom.Document
	sched  *anim.Scheduler
	group  *sortable.Group[string]
	lists  []*boardList
	logger *log.Logger

	// status is the last gesture summary shown in the header.
	status string
}

type boardList struct {
	name      string
	initial   []string
	state     *signal.State[[]string]
	container *sortable.Container[string]
	panel     *memdom.Element
	unbind    signal.Unbind
}

func newBoard(cfg boardConfig, viewport geom.Size, logger *log.Logger) (*board, error) {
	align, err := layout.ParseAlign(cfg.Align)
	if err != nil {
		return nil, err
	}
	b := &board{
		cfg:    cfg,
		doc:    memdom.NewDocument(viewport),
		logger: logger,
	}
	b.sched = anim.NewScheduler(b.doc, anim.WithLogger(logger.WithPrefix("anim")))
	b.sched.Start()
	b.group = sortable.NewGroup(cfg.settings(), b.renderItem)

	total := 0
	for _, l := range cfg.Lists {
		total += len(l.Items)
	}

	var at geom.Position
	for _, lc := range cfg.Lists {
		size := b.panelSize(lc, total)
		l, err := b.addList(lc, at, size, align)
		if err != nil {
			b.close()
			return nil, err
		}
		b.lists = append(b.lists, l)
		if cfg.Layout == kindHorizontal {
			at.Y += size.Height + 2
		} else {
			at.X += size.Width + listGap
		}
	}
	return b, nil
}

// panelSize leaves room for every item of the board in each list.
func (b *board) panelSize(lc listConfig, total int) geom.Size {
	w, h := float64(b.cfg.ItemWidth), float64(b.cfg.ItemHeight)
	size := geom.Size{Width: w, Height: h * float64(max(total, 1))}
	switch b.cfg.Layout {
	case kindHorizontal:
		size = geom.Size{Width: w * float64(max(total, 1)), Height: h}
	case kindGrid:
		size = geom.Size{Width: 2 * w, Height: h * float64(max((total+1)/2, 1))}
	}
	if lc.Width > 0 {
		size.Width = float64(lc.Width)
	}
	if lc.Height > 0 {
		size.Height = float64(lc.Height)
	}
	return size
}

func (b *board) addList(lc listConfig, at geom.Position, size geom.Size, align layout.Align) (*boardList, error) {
	title := b.doc.NewElement(lc.Name+"-title", geom.Size{Width: size.Width, Height: 1})
	title.SetPosition(at)
	title.Data = &termhost.Box{Label: lc.Name, Style: styleTitleBox, Pressed: styleTitleBox}
	b.doc.Body().AppendChild(title)

	panel := b.doc.NewElement(lc.Name, size)
	panel.SetPosition(geom.Position{X: at.X, Y: at.Y + 1})
	panel.Data = &termhost.Box{Style: stylePanel, Pressed: stylePanel}
	b.doc.Body().AppendChild(panel)
	sentinel := b.doc.NewElement(lc.Name+"-sentinel", geom.Size{})
	panel.AppendChild(sentinel)

	lay, err := newLayouter(b.cfg.Layout, align, size.Width)
	if err != nil {
		return nil, err
	}
	if lay == nil {
		panel.SetFlow(memdom.FlowVertical)
	}

	l := &boardList{
		name:    lc.Name,
		initial: slices.Clone(lc.Items),
		state:   signal.New(slices.Clone(lc.Items)),
		panel:   panel,
	}
	opts := sortable.Options[string]{
		Settings:       sortable.Settings{MouseDownClass: termhost.PressedClass},
		Callbacks:      sortable.SliceHandlers(l.state),
		Name:           lc.Name,
		Layout:         lay,
		Scheduler:      b.sched,
		Group:          b.group,
		AutoscrollSelf: b.cfg.Autoscroll,
		Logger:         b.logger.WithPrefix("sortable"),
	}
	opts.OnClick = func(item string, idx int, _ dom.Event) {
		b.status = fmt.Sprintf("clicked %s (%s #%d)", item, lc.Name, idx+1)
	}
	opts.OnDragEnd = func(item string, start, end int) {
		switch {
		case start == sortable.NoIndex:
			b.status = fmt.Sprintf("%s → %s #%d", item, lc.Name, end+1)
		case end != sortable.NoIndex && start != end:
			b.status = fmt.Sprintf("%s: %s #%d → #%d", item, lc.Name, start+1, end+1)
		}
	}
	if lc.Closed {
		opts.ShouldInsert = func(string) bool { return false }
	}

	l.container = sortable.New(b.doc, opts)
	if err := l.container.Mount(sentinel); err != nil {
		return nil, err
	}
	l.unbind = l.container.Bind(l.state)
	return l, nil
}

// renderItem is the group's shared render function. The label follows the
// item's index.
func (b *board) renderItem(p sortable.ItemProps[string]) []dom.Element {
	el := b.doc.NewElement(p.Item, geom.Size{Width: float64(b.cfg.ItemWidth), Height: float64(b.cfg.ItemHeight)})
	box := &termhost.Box{Label: p.Item, Border: b.cfg.ItemHeight >= 3, Style: styleItem, Pressed: styleItemDown}
	el.Data = box
	signal.Effect(p.Scope, func(*signal.Scope) {
		box.Label = fmt.Sprintf("%d. %s", p.Index.Get()+1, p.Item)
	}, p.Index)
	return []dom.Element{el}
}

// reset restores every list to its configured items. All lists are emptied
// first so no shared element is rendered into two lists at once.
func (b *board) reset() {
	signal.Batch(func() {
		for _, l := range b.lists {
			l.state.Set(nil)
		}
	})
	for _, l := range b.lists {
		l.state.Set(slices.Clone(l.initial))
	}
	b.status = "reset"
}

// items returns the current sequence of every list, by name.
func (b *board) items() map[string][]string {
	out := make(map[string][]string, len(b.lists))
	for _, l := range b.lists {
		out[l.name] = l.state.Get()
	}
	return out
}

func (b *board) close() {
	for _, l := range b.lists {
		if l.unbind != nil {
			l.unbind()
		}
		l.container.Unmount()
	}
	b.sched.Shutdown()
}

// statusHooks logs drag events and keeps the board status current.
type statusHooks struct {
	board  *board
	logger *log.Logger
	starts map[string]time.Time
}

func newStatusHooks(b *board, logger *log.Logger) *statusHooks {
	return &statusHooks{board: b, logger: logger, starts: make(map[string]time.Time)}
}

func (h *statusHooks) OnGestureStart(session, container string, index int) {
	h.logger.Debug("gesture start", "session", session, "list", container, "index", index)
}

func (h *statusHooks) OnDragStart(session, container string, index int) {
	h.board.status = fmt.Sprintf("dragging from %s #%d", container, index+1)
	h.logger.Debug("drag start", "session", session, "list", container, "index", index)
}

func (h *statusHooks) OnMove(session, container string, from, to int) {
	h.logger.Debug("move", "session", session, "list", container, "from", from, "to", to)
}

func (h *statusHooks) OnTransfer(session, from, to string, index int) {
	h.board.status = fmt.Sprintf("%s → %s #%d", from, to, index+1)
	h.logger.Debug("transfer", "session", session, "from", from, "to", to, "index", index)
}

func (h *statusHooks) OnGestureEnd(session string, clicked bool, d time.Duration) {
	h.logger.Debug("gesture end", "session", session, "clicked", clicked, "duration", d)
}
