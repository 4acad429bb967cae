package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dragsort/pkg/dom/termhost"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/observability"
)

// playCommand creates the play command, an interactive board in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var (
		config  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Drag items between lists in the terminal",
		Long: `Open an interactive board of sortable lists.

Drag items with the mouse to reorder them or move them to another list. The
board comes from a TOML file (--config) or a built-in three-list example.

Example board:

  layout = "vertical"        # vertical, horizontal, grid or flow
  easing = "ease-out"
  animation_duration = "200ms"

  [[lists]]
  name = "todo"
  items = ["design", "build"]

  [[lists]]
  name = "done"
  items = ["setup"]
  closed = true              # never accepts items from other lists`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), config, logFile)
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "board file (TOML)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the board is open")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, config, logFile string) error {
	cfg, err := loadBoard(config)
	if err != nil {
		return err
	}

	// The board owns the terminal, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, c.Logger.GetLevel())
	setLibraryLoggers(logger)
	defer setLibraryLoggers(c.Logger)

	b, err := newBoard(cfg, geom.Size{Width: 80, Height: 24}, logger)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}
	defer b.close()

	observability.SetDragHooks(newStatusHooks(b, logger))
	defer observability.Reset()

	p := tea.NewProgram(newPlayModel(b), tea.WithAltScreen(), tea.WithMouseAllMotion())

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			p.Quit()
		case <-done:
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run board")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, l := range b.lists {
		printKeyValue(l.name, strings.Join(l.state.Get(), ", "))
	}
	return nil
}

// playKeys are the board's key bindings.
type playKeys struct {
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k playKeys) ShortHelp() []key.Binding { return []key.Binding{k.Reset, k.Help, k.Quit} }

func (k playKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultPlayKeys() playKeys {
	return playKeys{
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// playModel draws a header, the hosted board and a help footer.
type playModel struct {
	board    *board
	host     *termhost.Host
	keys     playKeys
	help     help.Model
	showHelp bool
}

// Rows taken by the header and the footer.
const (
	headerRows = 1
	footerRows = 1
)

func newPlayModel(b *board) *playModel {
	h := termhost.New(b.doc)
	h.Top = headerRows
	h.Logger = b.logger.WithPrefix("termhost")
	return &playModel{board: b, host: h, keys: defaultPlayKeys(), help: help.New()}
}

func (m *playModel) Init() tea.Cmd {
	return m.host.Init()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Reset):
			m.board.reset()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		msg.Height -= footerRows
		return m, m.host.Update(msg)
	}
	return m, m.host.Update(msg)
}

func (m *playModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("dragsort"))
	if m.board.status != "" {
		b.WriteString(" " + StyleDim.Render(m.board.status))
	}
	b.WriteString("\n")
	b.WriteString(m.host.View())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(StyleDim.Render("drag items with the mouse · ? help"))
	}
	return b.String()
}

var _ tea.Model = (*playModel)(nil)
