// Package layout positions a container's items and maps a dragged box back
// to the index it should occupy.
//
// A Layouter is mounted on a container element and produces a Layout for
// every list of item sizes. Positions and rectangles are relative to the
// container's box.
//
// When no layout is configured the engine resolves indices with an
// IndexCheck over the items' current boxes instead; see OverlapPercent and
// Outward.
package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

var logger = log.Default().WithPrefix("layout")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Layouter builds layouts for one container.
type Layouter interface {
	// Mount attaches the layouter to the container element. onChange is
	// called whenever something other than the item sizes (such as the
	// container width) invalidates the last layout.
	Mount(container dom.Element, onChange func())
	Unmount()
	// Layout computes positions for items of the given sizes, in order.
	Layout(sizes []geom.Size) Layout
}

// Layout is the result of one layout computation.
type Layout interface {
	// Pos is the target position of the item at index i.
	Pos(i int) geom.Position
	// CheckIndex returns the index a box at r should occupy, or false when r
	// does not displace anything. The result lies in [0, n], where n is the
	// number of items laid out; n means "after the last item".
	CheckIndex(r geom.Rect) (int, bool)
	// Bounds is the extent reserved on the container.
	Bounds() geom.Size
}

// IndexCheck resolves an index from the items' current rectangles. rects[i]
// is the box of the item at index i; zero-area entries are unknown and
// skipped. current is the dragged item's index, or -1 when it is not part of
// rects.
type IndexCheck func(rects []geom.Rect, dragged geom.Rect, current int) (int, bool)

// cover is the overlap area as a fraction of the smaller box.
func cover(a, b geom.Rect) float64 {
	inter, ok := geom.Intersection(a, b)
	if !ok {
		return 0
	}
	smaller := min(geom.Area(a), geom.Area(b))
	if smaller <= 0 {
		return 0
	}
	return geom.Area(inter) / smaller
}

// OverlapPercent returns the index whose box is covered by more than
// threshold of the smaller of the two boxes, choosing the largest cover.
// Equal covers resolve to the lowest index.
func OverlapPercent(threshold float64) IndexCheck {
	return func(rects []geom.Rect, dragged geom.Rect, current int) (int, bool) {
		best, bestIdx := 0.0, -1
		for i, r := range rects {
			if i == current || geom.Area(r) <= 0 {
				continue
			}
			if c := cover(r, dragged); c > threshold && c > best {
				best, bestIdx = c, i
			}
		}
		return bestIdx, bestIdx >= 0
	}
}

// Outward tests indices in the order current-1, current+1, current-2, ...
// and returns the first whose cover exceeds threshold. Small drags resolve
// after one or two comparisons.
func Outward(threshold float64) IndexCheck {
	return func(rects []geom.Rect, dragged geom.Rect, current int) (int, bool) {
		check := func(i int) bool {
			r := rects[i]
			return geom.Area(r) > 0 && cover(r, dragged) > threshold
		}
		if current < 0 || current >= len(rects) {
			return OverlapPercent(threshold)(rects, dragged, -1)
		}
		for back, fwd := current-1, current+1; back >= 0 || fwd < len(rects); back, fwd = back-1, fwd+1 {
			if back >= 0 && check(back) {
				return back, true
			}
			if fwd < len(rects) && check(fwd) {
				return fwd, true
			}
		}
		return -1, false
	}
}
