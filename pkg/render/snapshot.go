package render

import (
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/layout"
)

// Item is one laid-out item.
type Item struct {
	Label string
	Rect  geom.Rect
}

// Snapshot is a layout frozen at one set of item sizes. Rectangles are
// relative to the container.
type Snapshot struct {
	Bounds geom.Size
	Items  []Item

	// Probe is an optional dragged box. ProbeIndex is the index the layout
	// resolved for it, or -1 when it displaces nothing.
	Probe      *geom.Rect
	ProbeIndex int
}

// NewSnapshot places items of the given sizes with l. Missing labels are
// left empty.
func NewSnapshot(l layout.Layout, sizes []geom.Size, labels []string) Snapshot {
	s := Snapshot{Bounds: l.Bounds(), Items: make([]Item, len(sizes)), ProbeIndex: -1}
	for i, size := range sizes {
		s.Items[i].Rect = geom.NewRect(l.Pos(i), size)
		if i < len(labels) {
			s.Items[i].Label = labels[i]
		}
		s.Bounds.Width = max(s.Bounds.Width, s.Items[i].Rect.Right())
		s.Bounds.Height = max(s.Bounds.Height, s.Items[i].Rect.Bottom())
	}
	return s
}

// WithProbe records r and the index l resolves for it.
func (s Snapshot) WithProbe(l layout.Layout, r geom.Rect) Snapshot {
	s.Probe = &r
	s.ProbeIndex = -1
	if idx, ok := l.CheckIndex(r); ok {
		s.ProbeIndex = idx
	}
	return s
}
