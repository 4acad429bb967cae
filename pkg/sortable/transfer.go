package sortable

import (
	"github.com/matzehuels/dragsort/pkg/geom"
	"github.com/matzehuels/dragsort/pkg/observability"
)

// transfer moves the dragged item to the group member it overlaps most, once
// it has mostly left its current container.
func (s *session[T]) transfer(itemRect geom.Rect) {
	src := s.current
	g := src.opts.Group

	var (
		dst      *Container[T]
		dstArea  float64
		itemArea = geom.Area(itemRect)
	)
	for _, m := range g.members {
		if m == src || m.scope == nil || !m.accepts(s.item) {
			continue
		}
		if a := geom.OverlapArea(itemRect, m.parent.ClientRect()); a > dstArea {
			dst, dstArea = m, a
		}
	}
	if dst == nil || itemArea <= 0 {
		return
	}

	parentRect := dst.parent.ClientRect()
	idx, ok := dst.resolveIndex(geom.ClientRectToRelative(itemRect, parentRect), -1)
	switch {
	case ok:
		idx = geom.ClampInt(idx, 0, len(dst.items))
	case dstArea/itemArea > dst.settings.MoveThreshold:
		idx, ok = len(dst.items), true
	}
	if !ok {
		return
	}

	from, _ := src.Index(s.item)
	if fn := src.opts.OnRemove; fn != nil {
		s.transferring = true
		fn(s.item, from)
		s.transferring = false
	}
	if s.ended {
		return
	}
	if _, still := src.entries[s.item]; still {
		src.logger.Debug("transfer declined by source", "session", s.id, "item", s.item)
		return
	}

	if fn := dst.opts.OnInsert; fn != nil {
		fn(s.item, idx)
	}
	if s.ended {
		return
	}
	if _, ok := dst.entries[s.item]; !ok {
		dst.logger.Debug("transfer declined by destination", "session", s.id, "item", s.item)
		s.teardown()
		g.Dispose(s.item)
		return
	}

	s.current = dst
	s.rel = geom.ClientToRelative(s.client, parentRect)
	dst.logger.Debug("transfer", "session", s.id, "item", s.item, "from", src.opts.Name, "index", idx)
	observability.Drag().OnTransfer(s.id, src.opts.Name, dst.opts.Name, idx)
	s.placeItem()
}
