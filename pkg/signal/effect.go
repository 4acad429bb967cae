package signal

// Effect runs fn in a fresh child scope of parent, then again every time one
// of sources changes. Before each re-run the previous run's scope is
// disposed, so listeners and timers registered through it never leak.
// A change that arrives while fn is running schedules exactly one more run.
//
// The effect stops when parent is disposed or when the returned function is
// called.
func Effect(parent *Scope, fn func(*Scope), sources ...Source) (stop func()) {
	owner := parent.Child()
	var (
		run     *Scope
		running bool
		dirty   bool
	)

	exec := func() {
		if owner.Disposed() {
			return
		}
		if running {
			dirty = true
			return
		}
		running = true
		defer func() { running = false }()
		for {
			dirty = false
			if run != nil {
				run.Dispose()
			}
			run = owner.Child()
			fn(run)
			if !dirty || owner.Disposed() {
				return
			}
		}
	}

	for _, src := range sources {
		owner.OnCleanup(src.Watch(exec))
	}
	exec()
	return owner.Dispose
}

// Derived is a read-only value recomputed whenever one of its sources
// changes.
type Derived[T any] struct {
	state *State[T]
}

// Derive evaluates compute now and after every change of sources, for as long
// as scope lives. Bindings on the result fire only when the computed value
// differs under eq; a nil eq notifies on every recomputation.
func Derive[T any](scope *Scope, compute func() T, eq func(a, b T) bool, sources ...Source) *Derived[T] {
	st := New(compute())
	if eq != nil {
		st.WithEqual(eq)
	}
	d := &Derived[T]{state: st}
	first := true
	Effect(scope, func(*Scope) {
		if first {
			first = false
			return
		}
		st.Set(compute())
	}, sources...)
	return d
}

// Get returns the last computed value.
func (d *Derived[T]) Get() T {
	return d.state.Get()
}

// Bind registers fn for every change of the computed value.
func (d *Derived[T]) Bind(fn func(T)) Unbind {
	return d.state.Bind(fn)
}

// Watch implements Source.
func (d *Derived[T]) Watch(fn func()) Unbind {
	return d.state.Watch(fn)
}

// Signal is a value-less Source fired explicitly, useful for "something
// outside the reactive graph changed" notifications such as a resize.
type Signal struct {
	s *State[uint64]
}

// NewSignal creates a trigger.
func NewSignal() *Signal {
	return &Signal{s: New[uint64](0)}
}

// Fire notifies every watcher.
func (t *Signal) Fire() {
	t.s.Update(func(v uint64) uint64 { return v + 1 })
}

// Watch implements Source.
func (t *Signal) Watch(fn func()) Unbind {
	return t.s.Watch(fn)
}
