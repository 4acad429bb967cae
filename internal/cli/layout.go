package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/render"
)

type layoutOptions struct {
	kind     string
	width    float64
	align    string
	sizes    string
	labels   string
	probe    string
	output   string
	detailed bool
}

// layoutCommand creates the layout command for inspecting layout strategies.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOptions{kind: kindGrid, width: 400, align: "center"}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute item positions with a layout strategy",
		Long: `Compute where a layout strategy places items of the given sizes.

Sizes are a comma-separated list of WxH boxes; N*WxH repeats a box N times.
A probe rectangle (x,y,w,h, relative to the container) is resolved to the
index a dragged item at that position would move to.

The snapshot can be written as SVG, PDF or PNG (by file extension). PDF and
PNG need rsvg-convert from librsvg.`,
		Example: `  dragsort layout --kind grid --width 250 --sizes 5*100x100
  dragsort layout --kind vertical --sizes 100x30,100x10 --probe 0,14,100,30 -o list.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "layout: grid, horizontal, vertical")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width (grid)")
	cmd.Flags().StringVar(&opts.align, "align", opts.align, "row alignment: left, center, right (grid)")
	cmd.Flags().StringVarP(&opts.sizes, "sizes", "s", "", "item sizes, e.g. 100x50,3*80x40 (required)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "comma-separated item labels")
	cmd.Flags().StringVarP(&opts.probe, "probe", "p", "", "dragged box x,y,w,h to resolve to an index")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write a snapshot (.svg, .pdf or .png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show index and box in snapshot labels")
	_ = cmd.MarkFlagRequired("sizes")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{kindGrid, kindHorizontal, kindVertical}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts layoutOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	sizes, err := parseSizes(opts.sizes)
	if err != nil {
		return err
	}
	align, err := layout.ParseAlign(opts.align)
	if err != nil {
		return err
	}
	lay, err := newLayouter(opts.kind, align, opts.width)
	if err != nil {
		return err
	}
	if lay == nil {
		return errors.New(errors.ErrCodeInvalidLayout, "the %s layout leaves placement to the host and has no fixed positions", opts.kind)
	}

	l := lay.Layout(sizes)
	var labels []string
	if opts.labels != "" {
		labels = strings.Split(opts.labels, ",")
	}
	snap := render.NewSnapshot(l, sizes, labels)
	if opts.probe != "" {
		r, err := parseRect(opts.probe)
		if err != nil {
			return err
		}
		snap = snap.WithProbe(l, r)
	}
	prog.done(fmt.Sprintf("Computed %d positions", len(sizes)))

	fmt.Println(layoutTable(snap))
	printKeyValue("bounds", fmt.Sprintf("%gx%g", snap.Bounds.Width, snap.Bounds.Height))
	if snap.Probe != nil {
		if snap.ProbeIndex >= 0 {
			printKeyValue("probe", StyleNumber.Render(strconv.Itoa(snap.ProbeIndex)))
		} else {
			printKeyValue("probe", StyleDim.Render("no index"))
		}
	}

	if opts.output == "" {
		return nil
	}
	return writeSnapshot(ctx, snap, opts)
}

func writeSnapshot(ctx context.Context, snap render.Snapshot, opts layoutOptions) error {
	svg, err := render.RenderSVG(ctx, render.ToDOT(snap, render.Options{Detailed: opts.detailed}))
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	data, err := render.Convert(ctx, svg, render.FormatFor(opts.output))
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Snapshot written")
	printFile(opts.output)
	return nil
}

// layoutTable renders one row per item; the row the probe resolved to is
// highlighted.
func layoutTable(s render.Snapshot) string {
	rows := make([][]string, len(s.Items))
	for i, it := range s.Items {
		rows[i] = []string{
			strconv.Itoa(i),
			it.Label,
			num(it.Rect.X), num(it.Rect.Y),
			num(it.Rect.Width), num(it.Rect.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == s.ProbeIndex:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseSizes parses "100x50,3*80x40".
func parseSizes(s string) ([]geom.Size, error) {
	var out []geom.Size
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count := 1
		if n, rest, ok := strings.Cut(part, "*"); ok {
			c, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil || c < 1 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "bad repeat count in %q", part)
			}
			count, part = c, strings.TrimSpace(rest)
		}
		w, h, ok := strings.Cut(strings.ToLower(part), "x")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "size %q is not WxH", part)
		}
		width, errW := strconv.ParseFloat(w, 64)
		height, errH := strconv.ParseFloat(h, 64)
		if errW != nil || errH != nil || width <= 0 || height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "size %q needs two positive numbers", part)
		}
		for range count {
			out = append(out, geom.Size{Width: width, Height: height})
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sizes given")
	}
	return out, nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %q is not x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "rectangle %q", s)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %q has no area", s)
	}
	return geom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
