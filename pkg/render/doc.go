// Package render draws snapshots of computed layouts.
//
// # Overview
//
// A [Snapshot] captures where a layout puts each item, plus an optional probe
// rectangle and the index the layout resolved for it. [ToDOT] turns a
// snapshot into a Graphviz graph with every node pinned at its layout
// position, and [RenderSVG] renders that graph with the embedded Graphviz
// engine:
//
//	snap := render.NewSnapshot(l, sizes, labels)
//	svg, err := render.RenderSVG(ctx, render.ToDOT(snap, render.Options{}))
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
