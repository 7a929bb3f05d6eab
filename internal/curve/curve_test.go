package curve

import (
	"testing"

	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestCycleIsAThreeCycle(t *testing.T) {
	c := None()

	c = c.Cycle()
	assert.Equal(t, KindArc, c.Kind)
	assert.Equal(t, DirectionLeft, c.Direction)

	c = c.Cycle()
	assert.Equal(t, KindArc, c.Kind)
	assert.Equal(t, DirectionRight, c.Direction)

	c = c.Cycle()
	assert.True(t, c.IsNone())
}

func TestCycleFromBezierEntersAtArcLeft(t *testing.T) {
	c := Bezier(pt(1, 2)).Cycle()
	assert.Equal(t, KindArc, c.Kind)
	assert.Equal(t, DirectionLeft, c.Direction)
}

func TestArcRadiusIsHalfChord(t *testing.T) {
	assert.Equal(t, 1.0, ArcRadius(pt(0, 0), pt(2, 0)))
	assert.InDelta(t, 2.5, ArcRadius(pt(0, 0), pt(3, 4)), 1e-12)
}

func TestArcApex(t *testing.T) {
	// Horizontal edge: left bulges up, right bulges down
	apex := ArcApex(pt(0, 0), pt(2, 0), DirectionLeft)
	assert.InDelta(t, 1.0, apex.X, 1e-12)
	assert.InDelta(t, 1.0, apex.Y, 1e-12)

	apex = ArcApex(pt(0, 0), pt(2, 0), DirectionRight)
	assert.InDelta(t, 1.0, apex.X, 1e-12)
	assert.InDelta(t, -1.0, apex.Y, 1e-12)
}

func TestArcApexLiesRadiusFromMidpoint(t *testing.T) {
	start, end := pt(1, 2), pt(5, -3)
	apex := ArcApex(start, end, DirectionLeft)
	mid := start.Midpoint(end)

	assert.InDelta(t, ArcRadius(start, end), mid.Distance(apex), 1e-12)

	// Perpendicular to the edge
	edge := end.Sub(start)
	assert.InDelta(t, 0, edge.Dot(apex.Sub(mid)), 1e-9)
}

func TestMidpointVariants(t *testing.T) {
	start, end := pt(0, 0), pt(4, 0)

	assert.Equal(t, pt(2, 0), None().Midpoint(start, end))

	// Quadratic at t=0.5: 0.25*P0 + 0.5*C + 0.25*P1
	b := Bezier(pt(2, 4))
	assert.Equal(t, pt(2, 2), b.Midpoint(start, end))

	a := Arc(DirectionLeft)
	assert.Equal(t, pt(2, 2), a.Midpoint(start, end))
}

func TestControlFromMidpointInvertsMidpoint(t *testing.T) {
	start, end := pt(1, 1), pt(7, 3)
	want := pt(4, 9)

	mid := Bezier(want).Midpoint(start, end)
	got := ControlFromMidpoint(mid, start, end)

	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.InDelta(t, want.Y, got.Y, 1e-12)
}

func TestEdgeEndpointsWrap(t *testing.T) {
	verts := []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3)}

	s, e := EdgeEndpoints(verts, 2)
	assert.Equal(t, pt(4, 3), s)
	assert.Equal(t, pt(0, 0), e)

	s, e = EdgeEndpoints(verts, 5)
	assert.Equal(t, geometry.Point2D{}, s)
	assert.Equal(t, geometry.Point2D{}, e)
}

func TestHitHandle(t *testing.T) {
	verts := []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}
	curves := make([]Control, 4)

	assert.True(t, HitHandle(pt(2, 0.1), verts, curves, 0, 0.1))
	assert.False(t, HitHandle(pt(2, 1.5), verts, curves, 0, 0.1))
	assert.False(t, HitHandle(pt(2, 0), verts, curves, 9, 0.1))
}

func TestNearestHandle(t *testing.T) {
	verts := []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}
	curves := make([]Control, 4)

	assert.Equal(t, 0, NearestHandle(pt(2, 0.05), verts, curves, 0.1))
	assert.Equal(t, 2, NearestHandle(pt(2, 2.95), verts, curves, 0.1))
	assert.Equal(t, -1, NearestHandle(pt(2, 1.5), verts, curves, 0.1))
}

func TestAllNone(t *testing.T) {
	curves := make([]Control, 3)
	assert.True(t, AllNone(curves))

	curves[1] = Arc(DirectionLeft)
	assert.False(t, AllNone(curves))
}
