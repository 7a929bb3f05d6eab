package draw

import (
	"math"
	"testing"

	"layout-maker/internal/curve"
	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func drawTriangle(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	require.True(t, m.CommitPoint(pt(0, 0), false))
	require.True(t, m.CommitPoint(pt(4, 0), false))
	require.True(t, m.CommitPoint(pt(2, 3), false))
	require.True(t, m.CommitPoint(pt(0, 0), true))
	require.Equal(t, PhaseClosed, m.Phase())
	return m
}

func TestLifecycle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, PhaseEmpty, m.Phase())

	m.CommitPoint(pt(1, 1), false)
	assert.Equal(t, PhaseDrawing, m.Phase())
	assert.Equal(t, 1, m.VertexCount())

	m.Clear()
	assert.Equal(t, PhaseEmpty, m.Phase())
	assert.Equal(t, 0, m.VertexCount())
}

func TestCloseRequiresThreeVertices(t *testing.T) {
	m := NewMachine()
	m.CommitPoint(pt(0, 0), false)
	m.CommitPoint(pt(4, 0), false)

	// Near-start with only two vertices must not close; the click appends
	assert.False(t, m.CanClose())
	m.CommitPoint(pt(0, 0), true)
	assert.Equal(t, PhaseDrawing, m.Phase())
	assert.Equal(t, 3, m.VertexCount())
}

func TestCloseInitializesCurves(t *testing.T) {
	m := drawTriangle(t)

	curves := m.Curves()
	require.Len(t, curves, 3)
	assert.True(t, curve.AllNone(curves))
	assert.Equal(t, 3, m.VertexCount(), "closing does not append the start point again")
}

func TestCommitRejectedWhileClosed(t *testing.T) {
	m := drawTriangle(t)

	assert.False(t, m.CommitPoint(pt(9, 9), false))
	assert.Equal(t, 3, m.VertexCount())
}

func TestCommitRejectsNonFinite(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.CommitPoint(pt(math.NaN(), 0), false))
	assert.Equal(t, PhaseEmpty, m.Phase())
}

func TestUndoWhileDrawing(t *testing.T) {
	m := NewMachine()
	m.CommitPoint(pt(0, 0), false)
	m.CommitPoint(pt(1, 0), false)

	m.Undo()
	assert.Equal(t, 1, m.VertexCount())
	assert.Equal(t, PhaseDrawing, m.Phase())

	m.Undo()
	assert.Equal(t, PhaseEmpty, m.Phase())

	// Undo on empty is a no-op
	m.Undo()
	assert.Equal(t, PhaseEmpty, m.Phase())
}

func TestUndoIsCurveAwareOnceClosed(t *testing.T) {
	m := drawTriangle(t)

	_, ok := m.CycleCurve(1)
	require.True(t, ok)
	require.Equal(t, curve.KindArc, m.Curves()[1].Kind)

	// First undo reverts the curve edit, shape stays closed
	m.Undo()
	assert.Equal(t, PhaseClosed, m.Phase())
	assert.True(t, m.Curves()[1].IsNone())

	// Next undo reopens the shape and drops the curve array
	m.Undo()
	assert.Equal(t, PhaseDrawing, m.Phase())
	assert.Empty(t, m.Curves())
	assert.Equal(t, 3, m.VertexCount())
}

func TestDragGestureUndoesInOneStep(t *testing.T) {
	m := drawTriangle(t)

	// A drag delivers many intermediate positions for the same edge
	for _, y := range []float64{-0.5, -1.0, -1.5} {
		require.True(t, m.DragCurve(0, pt(2, y)))
	}
	require.Equal(t, curve.KindBezier, m.Curves()[0].Kind)

	m.Undo()
	assert.True(t, m.Curves()[0].IsNone())
	assert.Equal(t, PhaseClosed, m.Phase())
}

func TestDragAlwaysStoresBezier(t *testing.T) {
	m := drawTriangle(t)

	m.CycleCurve(0) // edge 0 becomes an arc
	require.Equal(t, curve.KindArc, m.Curves()[0].Kind)

	require.True(t, m.DragCurve(0, pt(2, -1)))
	got := m.Curves()[0]
	assert.Equal(t, curve.KindBezier, got.Kind)

	// Apex round-trips through the stored control point
	start, end := curve.EdgeEndpoints(m.Vertices(), 0)
	apex := got.Midpoint(start, end)
	assert.InDelta(t, 2.0, apex.X, 1e-12)
	assert.InDelta(t, -1.0, apex.Y, 1e-12)
}

func TestCycleSequence(t *testing.T) {
	m := drawTriangle(t)

	c, _ := m.CycleCurve(2)
	assert.Equal(t, curve.Arc(curve.DirectionLeft), c)
	c, _ = m.CycleCurve(2)
	assert.Equal(t, curve.Arc(curve.DirectionRight), c)
	c, _ = m.CycleCurve(2)
	assert.True(t, c.IsNone())
}

func TestCurveEditsRejectedWhileOpen(t *testing.T) {
	m := NewMachine()
	m.CommitPoint(pt(0, 0), false)
	m.CommitPoint(pt(1, 0), false)

	_, ok := m.CycleCurve(0)
	assert.False(t, ok)
	assert.False(t, m.DragCurve(0, pt(0.5, 1)))
	assert.False(t, m.SetCurve(0, curve.Arc(curve.DirectionLeft)))
}

func TestSavePredicates(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.CanSavePolyline())
	assert.False(t, m.CanSaveShape())

	m.CommitPoint(pt(0, 0), false)
	assert.False(t, m.CanSavePolyline())

	m.CommitPoint(pt(1, 0), false)
	assert.True(t, m.CanSavePolyline())
	assert.False(t, m.CanSaveShape())

	m.CommitPoint(pt(1, 1), false)
	m.CommitPoint(pt(0, 0), true)
	assert.True(t, m.CanSaveShape())
	assert.False(t, m.CanSavePolyline())
}

func TestLoadExistingShape(t *testing.T) {
	verts := []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}
	curves := []curve.Control{curve.Arc(curve.DirectionLeft)}

	m := NewMachine()
	m.Load(verts, curves, true)

	assert.Equal(t, PhaseClosed, m.Phase())
	require.Len(t, m.Curves(), 4)
	assert.Equal(t, curve.Arc(curve.DirectionLeft), m.Curves()[0])
	assert.True(t, m.Curves()[3].IsNone())

	// Open polyline load
	m.Load(verts[:2], nil, false)
	assert.Equal(t, PhaseDrawing, m.Phase())
	assert.True(t, m.CanSavePolyline())
}
