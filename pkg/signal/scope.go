package signal

// Scope owns cleanups and child scopes. Disposing a scope disposes its
// children first, then runs its own cleanups in reverse registration order.
// The zero value is not usable; create scopes with NewScope or Child.
type Scope struct {
	parent   *Scope
	children []*Scope
	cleanups []func()
	disposed bool
}

// NewScope creates a root scope.
func NewScope() *Scope {
	return &Scope{}
}

// Child creates a scope that is disposed together with s.
// A child of a disposed scope starts out disposed.
func (s *Scope) Child() *Scope {
	c := &Scope{parent: s}
	if s.disposed {
		c.disposed = true
		return c
	}
	s.children = append(s.children, c)
	return c
}

// OnCleanup registers fn to run when the scope is disposed. On an already
// disposed scope fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Disposed reports whether Dispose has run.
func (s *Scope) Disposed() bool {
	return s.disposed
}

// Dispose tears the scope down. It is idempotent.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if s.parent != nil {
		s.parent.forget(s)
	}
}

func (s *Scope) forget(child *Scope) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
