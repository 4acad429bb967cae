// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about drag gestures and animation frames.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are called synchronously from the host's event loop, so
// implementations must return quickly and must not call back into the engine.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDragHooks(&myDragHooks{})
//	    observability.SetFrameHooks(&myFrameHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Drag().OnMove(sessionID, "todo", 0, 2)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from the drag engine. Every event of one gesture
// carries the same session id.
type DragHooks interface {
	// OnGestureStart records a primary-button press on a draggable item.
	OnGestureStart(session, container string, index int)

	// OnDragStart records the moment a gesture is resolved to a drag.
	OnDragStart(session, container string, index int)

	// OnMove records a reorder inside one container.
	OnMove(session, container string, from, to int)

	// OnTransfer records an item moving from one container to another.
	OnTransfer(session, from, to string, index int)

	// OnGestureEnd records the pointer release. clicked is true when the
	// gesture never became a drag.
	OnGestureEnd(session string, clicked bool, duration time.Duration)
}

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from the animation scheduler.
type FrameHooks interface {
	// OnFrame records one clear/measure/animate cycle over handles registered
	// controllers, of which animating still had an interpolation in flight.
	OnFrame(handles, animating int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnGestureStart(string, string, int)       {}
func (NoopDragHooks) OnDragStart(string, string, int)          {}
func (NoopDragHooks) OnMove(string, string, int, int)          {}
func (NoopDragHooks) OnTransfer(string, string, string, int)   {}
func (NoopDragHooks) OnGestureEnd(string, bool, time.Duration) {}

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(int, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dragHooks  DragHooks  = NoopDragHooks{}
	frameHooks FrameHooks = NoopFrameHooks{}
	hooksMu    sync.RWMutex
)

// SetDragHooks registers custom drag hooks.
// This should be called once at application startup before any container mounts.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetFrameHooks registers custom frame hooks.
// This should be called once at application startup before the scheduler starts.
func SetFrameHooks(h FrameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		frameHooks = h
	}
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// Frames returns the registered frame hooks.
func Frames() FrameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return frameHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dragHooks = NoopDragHooks{}
	frameHooks = NoopFrameHooks{}
}
