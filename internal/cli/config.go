package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dragsort/pkg/ease"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/sortable"
)

// Layout kinds accepted by board files and the layout command.
const (
	kindGrid       = "grid"
	kindHorizontal = "horizontal"
	kindVertical   = "vertical"
	kindFlow       = "flow"
)

var layoutKinds = []string{kindGrid, kindHorizontal, kindVertical, kindFlow}

// boardConfig is the TOML board file read by play.
//
//	layout = "vertical"
//	easing = "ease-out"
//	animation_duration = "200ms"
//
//	[[lists]]
//	name = "todo"
//	items = ["write", "review", "ship"]
type boardConfig struct {
	Layout            string        `toml:"layout"`
	Align             string        `toml:"align"`
	Animated          *bool         `toml:"animated"`
	Easing            string        `toml:"easing"`
	AnimationDuration time.Duration `toml:"animation_duration"`
	MoveThreshold     float64       `toml:"move_threshold"`
	ClickDuration     time.Duration `toml:"click_duration"`
	ClickDistance     float64       `toml:"click_distance"`
	Autoscroll        bool          `toml:"autoscroll"`
	ItemWidth         int           `toml:"item_width"`
	ItemHeight        int           `toml:"item_height"`

	Lists []listConfig `toml:"lists"`
}

type listConfig struct {
	Name   string   `toml:"name"`
	Items  []string `toml:"items"`
	Width  int      `toml:"width"`
	Height int      `toml:"height"`
	// Closed lists never accept items from other lists.
	Closed bool `toml:"closed"`
}

// Terminal cells are about twice as tall as wide, so distances are smaller
// than the pixel defaults.
const (
	defaultItemWidth     = 16
	defaultItemHeight    = 3
	defaultClickDistance = 1
)

func defaultBoard() boardConfig {
	return boardConfig{
		Layout:        kindVertical,
		Align:         "center",
		Easing:        "ease-out",
		ClickDistance: defaultClickDistance,
		ItemWidth:     defaultItemWidth,
		ItemHeight:    defaultItemHeight,
		Lists: []listConfig{
			{Name: "todo", Items: []string{"design", "build", "test", "review"}},
			{Name: "doing", Items: []string{"docs"}},
			{Name: "done", Items: []string{"setup", "ci"}},
		},
	}
}

// loadBoard reads a board file, filling unset fields from the defaults. An
// empty path returns the default board.
func loadBoard(path string) (boardConfig, error) {
	cfg := defaultBoard()
	if path == "" {
		return cfg, cfg.validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read board %s: %w", path, err)
	}
	return parseBoard(data)
}

func parseBoard(data []byte) (boardConfig, error) {
	def := defaultBoard()
	cfg := def
	cfg.Lists = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse board")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown board keys: %s", strings.Join(keys, ", "))
	}
	if len(cfg.Lists) == 0 {
		cfg.Lists = def.Lists
	}
	return cfg, cfg.validate()
}

func (b boardConfig) validate() error {
	var errs []error
	if _, err := parseKind(b.Layout); err != nil {
		errs = append(errs, err)
	}
	if _, err := layout.ParseAlign(b.Align); err != nil {
		errs = append(errs, err)
	}
	if _, err := ease.Lookup(b.Easing); err != nil {
		errs = append(errs, err)
	}
	if b.ItemWidth < 3 || b.ItemHeight < 1 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "item size %dx%d is too small", b.ItemWidth, b.ItemHeight))
	}
	seen := make(map[string]bool)
	for i, l := range b.Lists {
		switch {
		case strings.TrimSpace(l.Name) == "":
			errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "list %d has no name", i))
		case seen[l.Name]:
			errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "duplicate list %q", l.Name))
		}
		seen[l.Name] = true
	}
	items := make(map[string]string)
	for _, l := range b.Lists {
		for _, it := range l.Items {
			if other, ok := items[it]; ok {
				errs = append(errs, errors.New(errors.ErrCodeDuplicateItem, "item %q is in %q and %q", it, other, l.Name))
			}
			items[it] = l.Name
		}
	}
	if err := b.settings().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// settings converts the board to group settings. Zero values inherit the
// library defaults.
func (b boardConfig) settings() sortable.Settings {
	s := sortable.DefaultSettings()
	s.Animated = b.Animated == nil || *b.Animated
	if f, err := ease.Lookup(b.Easing); err == nil {
		s.Timing = f
	}
	if b.AnimationDuration != 0 {
		s.AnimationDuration = b.AnimationDuration
	}
	if b.MoveThreshold != 0 {
		s.MoveThreshold = b.MoveThreshold
	}
	if b.ClickDuration != 0 {
		s.ClickDuration = b.ClickDuration
	}
	if b.ClickDistance != 0 {
		s.ClickDistance = b.ClickDistance
	}
	return s
}

func parseKind(s string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for _, known := range layoutKinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (want one of %s)", s, strings.Join(layoutKinds, ", "))
}

// newLayouter builds the layouter for kind. The flow kind returns nil, which
// leaves placement to the host and resolves indices by overlap.
func newLayouter(kind string, align layout.Align, width float64) (layout.Layouter, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case kindGrid:
		return layout.FlowGrid(layout.FlowGridOptions{Align: align, Width: width}), nil
	case kindHorizontal:
		return layout.Horizontal(), nil
	case kindVertical:
		return layout.Vertical(), nil
	default:
		return nil, nil
	}
}
