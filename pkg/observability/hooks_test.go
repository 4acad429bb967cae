package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Drag hooks
	d := NoopDragHooks{}
	d.OnGestureStart("s1", "todo", 0)
	d.OnDragStart("s1", "todo", 0)
	d.OnMove("s1", "todo", 0, 2)
	d.OnTransfer("s1", "todo", "done", 1)
	d.OnGestureEnd("s1", false, time.Second)

	// Frame hooks
	f := NoopFrameHooks{}
	f.OnFrame(4, 2, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Drag().(NoopDragHooks); !ok {
		t.Error("Drag() should return NoopDragHooks by default")
	}
	if _, ok := Frames().(NoopFrameHooks); !ok {
		t.Error("Frames() should return NoopFrameHooks by default")
	}

	// Set custom hooks
	customDrag := &testDragHooks{}
	SetDragHooks(customDrag)
	if Drag() != customDrag {
		t.Error("SetDragHooks should set custom hooks")
	}

	customFrames := &testFrameHooks{}
	SetFrameHooks(customFrames)
	if Frames() != customFrames {
		t.Error("SetFrameHooks should set custom hooks")
	}

	Drag().OnMove("s1", "todo", 1, 3)
	if customDrag.moves != 1 {
		t.Errorf("custom OnMove called %d times, want 1", customDrag.moves)
	}

	// Reset and verify
	Reset()
	if _, ok := Drag().(NoopDragHooks); !ok {
		t.Error("Reset() should restore NoopDragHooks")
	}
	if _, ok := Frames().(NoopFrameHooks); !ok {
		t.Error("Reset() should restore NoopFrameHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDragHooks{}
	SetDragHooks(custom)

	// Setting nil should be ignored
	SetDragHooks(nil)

	if Drag() != custom {
		t.Error("SetDragHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDragHooks struct {
	NoopDragHooks
	moves int
}

func (h *testDragHooks) OnMove(string, string, int, int) { h.moves++ }

type testFrameHooks struct{ NoopFrameHooks }
