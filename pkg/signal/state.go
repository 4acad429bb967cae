// Package signal provides the small reactive core the drag engine builds on.
//
// State[T] wraps a value and notifies bindings when it changes. Effects run a
// function once and again whenever one of their sources changes, disposing
// the cleanups registered by the previous run first. Scopes collect cleanups
// and child scopes so a whole subtree of effects can be torn down at once.
//
// Example usage:
//
//	items := signal.New([]string{"a", "b"})
//	scope := signal.NewScope()
//	signal.Effect(scope, func(s *signal.Scope) {
//	    remove := el.AddListener(dom.MouseDown, onDown)
//	    s.OnCleanup(remove)
//	}, items)
//	items.Set([]string{"b", "a"}) // cleanup runs, then the effect runs again
//	scope.Dispose()
//
// Everything in this package is meant to be driven from a single event loop.
// The mutexes only keep the bookkeeping consistent if a host misbehaves.
//
// Batching:
//
// Use Batch() to coalesce multiple Set() calls and avoid redundant binding
// execution:
//
//	signal.Batch(func() {
//	    first.Set("Bob")
//	    last.Set("Smith")
//	})  // Bindings fire once here, not twice
package signal

import (
	"sync"
	"sync/atomic"
)

// Source is anything an effect can depend on.
type Source interface {
	// Watch registers fn to be called after every change.
	Watch(fn func()) Unbind
}

// Readable is a read-only view of a reactive value.
type Readable[T any] interface {
	Source
	Get() T
}

// Unbind is a handle to remove a binding. Call it to prevent
// future callback invocations for the associated binding.
type Unbind func()

// batchContext tracks batch state for deferring binding execution.
type batchContext struct {
	mu           sync.Mutex
	depth        int               // nesting depth (0 = not batching)
	pending      map[uint64]func() // pending binding callbacks keyed by binding ID
	pendingOrder []uint64          // order in which bindings were first triggered
}

var (
	batch           = batchContext{pending: make(map[uint64]func())}
	globalBindingID atomic.Uint64
)

// State wraps a value and notifies bindings when it changes.
type State[T any] struct {
	mu       sync.RWMutex
	value    T
	equal    func(a, b T) bool
	bindings []*binding[T]
}

type binding[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// New creates a state holding initial. Every Set notifies bindings.
func New[T any](initial T) *State[T] {
	return &State[T]{value: initial}
}

// NewComparable creates a state that skips notification when the new value
// equals the current one.
func NewComparable[T comparable](initial T) *State[T] {
	return &State[T]{value: initial, equal: func(a, b T) bool { return a == b }}
}

// WithEqual installs an equality check used to drop no-op writes.
func (s *State[T]) WithEqual(eq func(a, b T) bool) *State[T] {
	s.mu.Lock()
	s.equal = eq
	s.mu.Unlock()
	return s
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all bindings. Inside Batch the
// notification is deferred until the outermost batch returns.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	active := make([]*binding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	s.bindings = active
	s.mu.Unlock()

	batch.mu.Lock()
	batching := batch.depth > 0
	if batching {
		for _, b := range active {
			b := b
			if _, exists := batch.pending[b.id]; !exists {
				batch.pendingOrder = append(batch.pendingOrder, b.id)
			}
			batch.pending[b.id] = func() {
				if b.active {
					b.fn(s.Get())
				}
			}
		}
	}
	batch.mu.Unlock()

	if batching {
		return
	}
	for _, b := range active {
		// A binding that ran earlier in this loop may have unbound a later one.
		if b.active {
			b.fn(v)
		}
	}
}

// Update applies a function to the current value and sets the result.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Bind registers fn to be called with the new value after every change.
// Bindings are executed in registration order.
func (s *State[T]) Bind(fn func(T)) Unbind {
	id := globalBindingID.Add(1)

	s.mu.Lock()
	b := &binding[T]{id: id, fn: fn, active: true}
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}

// Watch implements Source.
func (s *State[T]) Watch(fn func()) Unbind {
	return s.Bind(func(T) { fn() })
}

// Batch executes fn and defers all binding callbacks until fn returns.
//
// When the same binding is triggered multiple times during a batch,
// it only executes once with the final value. Bindings are executed in the
// order they were first triggered. Nested Batch calls are supported.
func Batch(fn func()) {
	batch.mu.Lock()
	batch.depth++
	batch.mu.Unlock()

	defer func() {
		batch.mu.Lock()
		batch.depth--
		var callbacks []func()
		if batch.depth == 0 && len(batch.pending) > 0 {
			callbacks = make([]func(), 0, len(batch.pendingOrder))
			for _, id := range batch.pendingOrder {
				if cb, ok := batch.pending[id]; ok {
					callbacks = append(callbacks, cb)
				}
			}
			batch.pending = make(map[uint64]func())
			batch.pendingOrder = nil
		}
		batch.mu.Unlock()

		for _, cb := range callbacks {
			cb()
		}
	}()

	fn()
}
