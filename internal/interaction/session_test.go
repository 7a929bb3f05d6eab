package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-maker/internal/curve"
	"layout-maker/internal/draw"
	"layout-maker/internal/snap"
	"layout-maker/pkg/geometry"
)

func newClosedSquare(t *testing.T) (*Session, *draw.Machine) {
	t.Helper()
	m := draw.NewMachine()
	s := NewSession(m, snap.NewEngine(snap.Config{CloseRadius: 0.4, MagneticRadius: 0.3}))

	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}} {
		_, ok := s.Tap(p)
		require.True(t, ok)
	}
	res, ok := s.Tap(geometry.Point2D{X: 0.1, Y: 0.1})
	require.True(t, ok)
	require.True(t, res.NearStart)
	require.True(t, m.Closed())
	return s, m
}

func TestTapCommitsAndCloses(t *testing.T) {
	_, m := newClosedSquare(t)
	assert.Equal(t, 4, m.VertexCount())
}

func TestTapIgnoredWhileClosed(t *testing.T) {
	s, m := newClosedSquare(t)
	_, ok := s.Tap(geometry.Point2D{X: 10, Y: 10})
	assert.False(t, ok)
	assert.Equal(t, 4, m.VertexCount())
}

func TestDragCapturesEdgeUntilRelease(t *testing.T) {
	s, m := newClosedSquare(t)

	// Press on the handle of edge 0 (midpoint 2,0).
	s.PointerDown(geometry.Point2D{X: 2, Y: 0})
	require.Equal(t, 0, s.ActiveEdge())

	// Moving over edge 1's handle keeps editing edge 0.
	s.PointerMove(geometry.Point2D{X: 4, Y: 2})
	assert.Equal(t, 0, s.ActiveEdge())
	assert.Equal(t, curve.KindBezier, m.Curves()[0].Kind)
	assert.True(t, m.Curves()[1].IsNone())

	s.PointerUp()
	assert.False(t, s.Dragging())
}

func TestTapBlockedDuringDrag(t *testing.T) {
	s, m := newClosedSquare(t)
	s.PointerDown(geometry.Point2D{X: 2, Y: 0})
	require.True(t, s.Dragging())

	_, ok := s.Tap(geometry.Point2D{X: 2, Y: -1})
	assert.False(t, ok)
	assert.Equal(t, 4, m.VertexCount())
}

func TestDoubleTapCyclesHandle(t *testing.T) {
	s, m := newClosedSquare(t)

	c, ok := s.DoubleTap(geometry.Point2D{X: 2, Y: 0})
	require.True(t, ok)
	assert.Equal(t, curve.KindArc, c.Kind)
	assert.Equal(t, curve.DirectionLeft, c.Direction)

	c, ok = s.DoubleTap(geometry.Point2D{X: 2, Y: 2}) // handle sits at the arc apex now
	require.True(t, ok)
	assert.Equal(t, curve.DirectionRight, c.Direction)

	_ = m
}

func TestDoubleTapMissesFarFromHandle(t *testing.T) {
	s, _ := newClosedSquare(t)
	_, ok := s.DoubleTap(geometry.Point2D{X: 2, Y: 2})
	assert.False(t, ok)
}

func TestDoubleTapIgnoredWhileDrawing(t *testing.T) {
	m := draw.NewMachine()
	s := NewSession(m, snap.NewEngine(snap.DefaultConfig()))
	s.Tap(geometry.Point2D{X: 0, Y: 0})
	s.Tap(geometry.Point2D{X: 3, Y: 0})

	_, ok := s.DoubleTap(geometry.Point2D{X: 1.5, Y: 0})
	assert.False(t, ok)
}

func TestPointerMoveUpdatesPreview(t *testing.T) {
	m := draw.NewMachine()
	s := NewSession(m, snap.NewEngine(snap.Config{GridSize: 0.5}))
	res := s.PointerMove(geometry.Point2D{X: 1.23, Y: 0.74})
	assert.Equal(t, snap.RuleGrid, res.Rule)
	assert.Equal(t, res, s.Preview())
}
