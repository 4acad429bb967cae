// Package geom provides the rectangle, position and size math used by the
// drag engine, the layouts and the animation scheduler.
//
// # Coordinate Spaces
//
// Three spaces are in play:
//   - client: relative to the viewport (what a host reports for an element box)
//   - page: relative to the document, i.e. client plus the scroll offset
//   - relative: relative to a reference element's client box, usually a parent
//
// Conversions are pure functions of the scroll offset and the reference
// rectangle. Callers must read both fresh for every conversion because
// scrolling and layout can change between two calls.
//
// All functions are stateless and safe for concurrent use.
package geom

import "math"

// Position is a point in one of the coordinate spaces.
type Position struct {
	X, Y float64
}

// Add returns p offset by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p minus o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both coordinates by f.
func (p Position) Scale(f float64) Position {
	return Position{X: p.X * f, Y: p.Y * f}
}

// IsZero reports whether p is the origin.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Area returns Width*Height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Rect is an axis-aligned rectangle. Width and Height are never negative.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect builds a Rect from a position and a size.
func NewRect(p Position, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Position returns the top-left corner.
func (r Rect) Position() Position { return Position{X: r.X, Y: r.Y} }

// Size returns the extent of r.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of r.
func (r Rect) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Position) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersection returns the overlap of a and b. The second result is false
// when the rectangles are disjoint or only share an edge.
func Intersection(a, b Rect) (Rect, bool) {
	x1 := math.Max(a.X, b.X)
	y1 := math.Max(a.Y, b.Y)
	x2 := math.Min(a.Right(), b.Right())
	y2 := math.Min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Intersects reports whether a and b overlap with a positive area.
func Intersects(a, b Rect) bool {
	_, ok := Intersection(a, b)
	return ok
}

// Area returns the area of r.
func Area(r Rect) float64 {
	return r.Width * r.Height
}

// OverlapArea returns the area of the intersection of a and b, or 0.
func OverlapArea(a, b Rect) float64 {
	i, ok := Intersection(a, b)
	if !ok {
		return 0
	}
	return Area(i)
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Position) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}
