// Package anim animates elements toward their natural layout position.
//
// A Scheduler owns every registered Controller and, while at least one is
// registered, drives a single animation-frame loop. Each frame runs three
// passes over all controllers, strictly in order:
//
//  1. clear: remove every controller's transform so the element sits at its
//     natural position;
//  2. measure: read every element's parent-relative box and note the ones
//     whose position moved;
//  3. animate: for every moved or still-settling element, write a transform
//     that starts at the element's previous visual position and eases to
//     zero.
//
// No element is written to between two reads of the same frame, so a host
// only has to lay out once per frame regardless of how many items move.
//
// Controllers are not safe for concurrent use. Call everything from the
// host's event loop.
package anim

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/ease"
	"github.com/matzehuels/dragsort/pkg/observability"
)

// Defaults for new controllers.
const (
	DefaultDuration = 250 * time.Millisecond
)

// DefaultTiming is the curve used when a controller is created without one.
var DefaultTiming ease.Func = ease.Linear

// Scheduler drives the shared frame loop.
type Scheduler struct {
	frames  dom.FrameRequester
	logger  *log.Logger
	handles []*Controller

	started     bool
	cancelFrame func()
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler creates a stopped scheduler. Controllers may register before
// Start; frames are only requested once the scheduler is started.
func NewScheduler(frames dom.FrameRequester, opts ...Option) *Scheduler {
	s := &Scheduler{
		frames: frames,
		logger: log.Default().WithPrefix("anim"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start enables the frame loop.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true
	s.requestFrame()
}

// Shutdown stops the frame loop, unregisters every controller and resolves
// their outstanding completions. Controllers created afterwards register
// normally; the scheduler may be started again.
func (s *Scheduler) Shutdown() {
	s.started = false
	if s.cancelFrame != nil {
		s.cancelFrame()
		s.cancelFrame = nil
	}
	handles := s.handles
	s.handles = nil
	for _, c := range handles {
		c.registered = false
		c.stop()
		c.resolve(false)
	}
}

// Started reports whether the frame loop is enabled.
func (s *Scheduler) Started() bool { return s.started }

// Len returns the number of registered controllers.
func (s *Scheduler) Len() int { return len(s.handles) }

func (s *Scheduler) register(c *Controller) {
	s.handles = append(s.handles, c)
	c.registered = true
	s.requestFrame()
}

func (s *Scheduler) unregister(c *Controller) {
	for i, h := range s.handles {
		if h == c {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
	c.registered = false
	if len(s.handles) == 0 && s.cancelFrame != nil {
		s.cancelFrame()
		s.cancelFrame = nil
	}
}

func (s *Scheduler) requestFrame() {
	if !s.started || s.cancelFrame != nil || len(s.handles) == 0 || s.frames == nil {
		return
	}
	s.cancelFrame = s.frames.RequestFrame(s.frame)
}

func (s *Scheduler) frame(now time.Time) {
	s.cancelFrame = nil
	began := time.Now()

	// Snapshot so callbacks that register or clean up controllers only take
	// effect next frame.
	handles := append([]*Controller(nil), s.handles...)

	for _, c := range handles {
		if c.active() {
			c.clear()
		}
	}
	for _, c := range handles {
		if c.active() {
			c.measure()
		}
	}
	animating := 0
	for _, c := range handles {
		if c.active() && c.animate(now) {
			animating++
		}
	}

	observability.Frames().OnFrame(len(handles), animating, time.Since(began))
	s.requestFrame()
}

// =============================================================================
// Process-wide default
// =============================================================================

var defaultScheduler *Scheduler

// Start installs and starts the process-wide scheduler on frames, shutting
// down any previous one.
func Start(frames dom.FrameRequester, opts ...Option) *Scheduler {
	Shutdown()
	defaultScheduler = NewScheduler(frames, opts...)
	defaultScheduler.Start()
	return defaultScheduler
}

// Shutdown stops and removes the process-wide scheduler.
func Shutdown() {
	if defaultScheduler != nil {
		defaultScheduler.Shutdown()
		defaultScheduler = nil
	}
}

// Default returns the process-wide scheduler, or nil before Start.
func Default() *Scheduler { return defaultScheduler }
