// Package curve models the optional curve attached to each edge of a closed
// room shape: nothing, a free-form quadratic bezier, or a perfect semicircle.
//
// Edge i runs from vertex i to vertex (i+1) mod N, and a closed shape carries
// exactly one Control per vertex. All coordinates are in meters.
package curve

import (
	"layout-maker/pkg/geometry"
)

// Kind discriminates the curve variants.
type Kind int

const (
	// KindNone draws the edge as a straight line.
	KindNone Kind = iota
	// KindBezier draws a quadratic bezier through a stored control point.
	KindBezier
	// KindArc draws a semicircle whose radius is half the chord length.
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindBezier:
		return "bezier"
	case KindArc:
		return "arc"
	default:
		return "none"
	}
}

// Direction selects which side of the edge an arc bulges toward, relative to
// the edge's direction vector.
type Direction int

const (
	DirectionLeft  Direction = 1
	DirectionRight Direction = -1
)

// Control is the tagged curve descriptor for one edge.
// The zero value is the straight-line variant.
type Control struct {
	Kind      Kind
	Point     geometry.Point2D // bezier control point; valid for KindBezier
	Direction Direction        // arc side; valid for KindArc
}

// None returns the straight-line descriptor.
func None() Control {
	return Control{Kind: KindNone}
}

// Bezier returns a free-form curve descriptor with the given control point.
func Bezier(p geometry.Point2D) Control {
	return Control{Kind: KindBezier, Point: p}
}

// Arc returns a semicircle descriptor bulging toward the given side.
func Arc(dir Direction) Control {
	if dir != DirectionRight {
		dir = DirectionLeft
	}
	return Control{Kind: KindArc, Direction: dir}
}

// IsNone reports whether the edge is a straight line.
func (c Control) IsNone() bool {
	return c.Kind == KindNone
}

// Cycle advances the descriptor through the fixed three-state sequence
// none -> arc(left) -> arc(right) -> none. A bezier edge re-enters the cycle
// at arc(left), discarding its control point.
func (c Control) Cycle() Control {
	switch c.Kind {
	case KindNone, KindBezier:
		return Arc(DirectionLeft)
	case KindArc:
		if c.Direction == DirectionLeft {
			return Arc(DirectionRight)
		}
		return None()
	default:
		return None()
	}
}

// EdgeEndpoints returns the start and end vertex of edge i, wrapping the last
// edge back to vertex 0.
func EdgeEndpoints(vertices []geometry.Point2D, i int) (geometry.Point2D, geometry.Point2D) {
	n := len(vertices)
	if n == 0 || i < 0 || i >= n {
		return geometry.Point2D{}, geometry.Point2D{}
	}
	return vertices[i], vertices[(i+1)%n]
}

// ArcRadius returns the radius of an arc edge between two vertices: always
// exactly half the straight-line distance, so the curve is a true half-circle.
func ArcRadius(start, end geometry.Point2D) float64 {
	return start.Distance(end) / 2
}

// ArcApex returns the point of maximum bulge of an arc edge: the edge
// midpoint displaced by the radius along the edge perpendicular, on the side
// given by dir.
func ArcApex(start, end geometry.Point2D, dir Direction) geometry.Point2D {
	mid := start.Midpoint(end)
	normal := end.Sub(start).Perp().Normalize()
	if dir == DirectionRight {
		normal = normal.Scale(-1)
	}
	return mid.Add(normal.Scale(ArcRadius(start, end)))
}

// Midpoint returns the visual handle position for an edge: the curve apex for
// curved edges, the arithmetic midpoint for straight ones. For a bezier this
// is the quadratic evaluated at t=0.5.
func (c Control) Midpoint(start, end geometry.Point2D) geometry.Point2D {
	switch c.Kind {
	case KindBezier:
		// B(0.5) = 0.25*P0 + 0.5*C + 0.25*P1
		return start.Scale(0.25).Add(c.Point.Scale(0.5)).Add(end.Scale(0.25))
	case KindArc:
		return ArcApex(start, end, c.Direction)
	default:
		return start.Midpoint(end)
	}
}

// ControlFromMidpoint inverts the bezier midpoint formula: given where the
// user wants the curve apex, it returns the control point that puts B(0.5)
// there. Used while dragging an edge handle.
func ControlFromMidpoint(mid, start, end geometry.Point2D) geometry.Point2D {
	// C = 2*M - (P0+P1)/2
	return mid.Scale(2).Sub(start.Midpoint(end))
}

// HandleRadius is the visual radius of an edge handle in meters, used
// together with a tolerance for hit-testing.
const HandleRadius = 0.15

// HitHandle reports whether p is within the handle of edge i: inside
// HandleRadius plus tolerance of the edge's current midpoint or apex.
func HitHandle(p geometry.Point2D, vertices []geometry.Point2D, curves []Control, i int, tolerance float64) bool {
	if i < 0 || i >= len(vertices) || i >= len(curves) {
		return false
	}
	start, end := EdgeEndpoints(vertices, i)
	return p.Distance(curves[i].Midpoint(start, end)) <= HandleRadius+tolerance
}

// NearestHandle returns the index of the edge whose handle is closest to p
// within HandleRadius plus tolerance, or -1 when no handle is hit. Vertex
// hit-testing is separate and takes precedence in the caller.
func NearestHandle(p geometry.Point2D, vertices []geometry.Point2D, curves []Control, tolerance float64) int {
	best := -1
	bestDist := HandleRadius + tolerance
	for i := 0; i < len(vertices) && i < len(curves); i++ {
		start, end := EdgeEndpoints(vertices, i)
		d := p.Distance(curves[i].Midpoint(start, end))
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// AllNone reports whether every edge is a straight line, in which case the
// curve array is omitted from the saved record.
func AllNone(curves []Control) bool {
	for _, c := range curves {
		if !c.IsNone() {
			return false
		}
	}
	return true
}
