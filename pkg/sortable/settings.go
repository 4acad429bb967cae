package sortable

import (
	"time"

	"github.com/matzehuels/dragsort/pkg/ease"
	"github.com/matzehuels/dragsort/pkg/errors"
)

// Default setting values.
const (
	DefaultAnimationDuration  = 250 * time.Millisecond
	DefaultMoveThreshold      = 0.5
	DefaultClickDuration      = 100 * time.Millisecond
	DefaultClickDistance      = 8.0
	DefaultAutoscrollBand     = 0.25
	DefaultAutoscrollCurve    = 1.0
	DefaultAutoscrollInterval = time.Millisecond
)

// Settings tune a container's behaviour. They can be given on a Group and on
// each container; a zero field inherits the group's value, then the default.
type Settings struct {
	// Animated attaches a layout animation controller to every item. It is
	// on when either the group or the container turns it on.
	Animated          bool
	Timing            ease.Func
	AnimationDuration time.Duration

	// MoveThreshold is the fraction of overlap needed to displace another
	// item, and the fraction of the dragged item that has to stay inside its
	// container before a transfer to another container is considered.
	MoveThreshold float64

	// A gesture becomes a drag once the pointer travelled more than
	// ClickDistance or the button was held for ClickDuration.
	ClickDuration time.Duration
	ClickDistance float64

	// MouseDownClass is added to an item while it is pressed.
	MouseDownClass string

	// AutoscrollBand is the fraction of the scroll target's extent, at each
	// edge, in which dragging scrolls. AutoscrollCurve flattens the speed
	// curve; AutoscrollInterval is the scroll tick.
	AutoscrollBand     float64
	AutoscrollCurve    float64
	AutoscrollInterval time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Timing:             ease.Linear,
		AnimationDuration:  DefaultAnimationDuration,
		MoveThreshold:      DefaultMoveThreshold,
		ClickDuration:      DefaultClickDuration,
		ClickDistance:      DefaultClickDistance,
		AutoscrollBand:     DefaultAutoscrollBand,
		AutoscrollCurve:    DefaultAutoscrollCurve,
		AutoscrollInterval: DefaultAutoscrollInterval,
	}
}

// Validate reports every out of range field.
func (s Settings) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	add(errors.ValidateDuration("animation duration", s.AnimationDuration))
	add(errors.ValidateThreshold("move threshold", s.MoveThreshold))
	add(errors.ValidateDuration("click duration", s.ClickDuration))
	add(errors.ValidateDistance("click distance", s.ClickDistance))
	add(errors.ValidateThreshold("autoscroll band", s.AutoscrollBand))
	add(errors.ValidateDistance("autoscroll curve", s.AutoscrollCurve))
	add(errors.ValidateDuration("autoscroll interval", s.AutoscrollInterval))
	return errors.Join(errs...)
}

// inherit fills s's zero fields from parent.
func (s Settings) inherit(parent Settings) Settings {
	s.Animated = s.Animated || parent.Animated
	if s.Timing == nil {
		s.Timing = parent.Timing
	}
	if s.AnimationDuration == 0 {
		s.AnimationDuration = parent.AnimationDuration
	}
	if s.MoveThreshold == 0 {
		s.MoveThreshold = parent.MoveThreshold
	}
	if s.ClickDuration == 0 {
		s.ClickDuration = parent.ClickDuration
	}
	if s.ClickDistance == 0 {
		s.ClickDistance = parent.ClickDistance
	}
	if s.MouseDownClass == "" {
		s.MouseDownClass = parent.MouseDownClass
	}
	if s.AutoscrollBand == 0 {
		s.AutoscrollBand = parent.AutoscrollBand
	}
	if s.AutoscrollCurve == 0 {
		s.AutoscrollCurve = parent.AutoscrollCurve
	}
	if s.AutoscrollInterval == 0 {
		s.AutoscrollInterval = parent.AutoscrollInterval
	}
	return s
}

// sanitize replaces invalid fields with their defaults, reporting what was
// replaced.
func (s Settings) sanitize() (Settings, error) {
	err := s.Validate()
	if err == nil {
		return s, nil
	}
	def := DefaultSettings()
	if errors.ValidateDuration("", s.AnimationDuration) != nil {
		s.AnimationDuration = def.AnimationDuration
	}
	if errors.ValidateThreshold("", s.MoveThreshold) != nil {
		s.MoveThreshold = def.MoveThreshold
	}
	if errors.ValidateDuration("", s.ClickDuration) != nil {
		s.ClickDuration = def.ClickDuration
	}
	if errors.ValidateDistance("", s.ClickDistance) != nil {
		s.ClickDistance = def.ClickDistance
	}
	if errors.ValidateThreshold("", s.AutoscrollBand) != nil {
		s.AutoscrollBand = def.AutoscrollBand
	}
	if errors.ValidateDistance("", s.AutoscrollCurve) != nil {
		s.AutoscrollCurve = def.AutoscrollCurve
	}
	if errors.ValidateDuration("", s.AutoscrollInterval) != nil || s.AutoscrollInterval == 0 {
		s.AutoscrollInterval = def.AutoscrollInterval
	}
	return s, err
}
