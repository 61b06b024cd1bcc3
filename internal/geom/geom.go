// Package geom provides the small set of planar primitives the interaction
// engine needs: points, line segments, and a segment crossing test. All
// functions are pure; coordinates are screen-space pixels unless a caller
// says otherwise.
package geom

import "math"

// Point is a 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp interpolates component-wise from a toward b by t in [0,1].
// t=0 returns a, t=1 returns b.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Normal returns the unit vector perpendicular to the direction a->b,
// rotated 90 degrees counterclockwise. Returns the zero vector when a
// and b coincide.
func Normal(a, b Point) Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return Point{}
	}
	return Point{X: -dy / length, Y: dx / length}
}

// Segment is a line segment between two points.
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Midpoint returns the segment's midpoint.
func (s Segment) Midpoint() Point {
	return Point{X: (s.P1.X + s.P2.X) / 2, Y: (s.P1.Y + s.P2.Y) / 2}
}

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return Dist(s.P1, s.P2)
}

// ccw reports whether the triple (a, b, c) winds counterclockwise.
// Collinear triples report false.
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether two segments properly cross. Touching
// endpoints, grazing, and collinear overlap all report false: a fingertip
// sliding along a string is not a pluck, only a motion through it is.
func SegmentsIntersect(a, b Segment) bool {
	return ccw(a.P1, b.P1, b.P2) != ccw(a.P2, b.P1, b.P2) &&
		ccw(a.P1, a.P2, b.P1) != ccw(a.P1, a.P2, b.P2)
}
