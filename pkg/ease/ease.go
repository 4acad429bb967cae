// Package ease provides timing curves for animated settling.
//
// A curve maps an elapsed fraction in [0, 1] to an eased fraction with
// f(0) = 0 and f(1) ≈ 1. Curves are only used to interpolate settling
// animations; drag-following is always 1:1 with the pointer.
package ease

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/dragsort/pkg/errors"
)

// Func is a timing curve.
type Func func(float64) float64

// Linear returns x unchanged.
func Linear(x float64) float64 { return x }

// InSine starts slow and accelerates.
func InSine(x float64) float64 { return 1 - math.Cos(x*math.Pi/2) }

// OutSine starts fast and decelerates.
func OutSine(x float64) float64 { return math.Sin(x * math.Pi / 2) }

// InOutSine accelerates then decelerates.
func InOutSine(x float64) float64 { return -(math.Cos(math.Pi*x) - 1) / 2 }

var byName = map[string]Func{
	"linear":      Linear,
	"ease-in":     InSine,
	"ease-out":    OutSine,
	"ease-in-out": InOutSine,
}

// Lookup returns the curve registered under name (case-insensitive).
func Lookup(name string) (Func, error) {
	if f, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidEasing, "unknown easing %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
