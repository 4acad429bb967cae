package memdom

import "github.com/matzehuels/dragsort/pkg/dom"

type listenerEntry struct {
	fn      dom.Listener
	removed bool
}

type listenerSet struct {
	byType map[dom.EventType][]*listenerEntry
}

func (s *listenerSet) add(t dom.EventType, fn dom.Listener) func() {
	if s.byType == nil {
		s.byType = make(map[dom.EventType][]*listenerEntry)
	}
	e := &listenerEntry{fn: fn}
	s.byType[t] = append(s.byType[t], e)
	return func() {
		if e.removed {
			return
		}
		e.removed = true
		list := s.byType[t]
		for i, x := range list {
			if x == e {
				s.byType[t] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// fire calls the listeners registered when dispatch began, skipping any
// removed along the way.
func (s *listenerSet) fire(ev dom.Event) {
	list := append([]*listenerEntry(nil), s.byType[ev.Type]...)
	for _, e := range list {
		if !e.removed {
			e.fn(ev)
		}
	}
}

func (s *listenerSet) count(t dom.EventType) int {
	return len(s.byType[t])
}
