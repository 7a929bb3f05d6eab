// Package interaction owns the per-gesture state of the drawing tool: which
// edge handle is being dragged, and how pointer events route between the
// drawing machine and the curve model. The geometry packages stay pure; all
// mutable gesture state lives here, passed in by the UI layer.
package interaction

import (
	"layout-maker/internal/curve"
	"layout-maker/internal/draw"
	"layout-maker/internal/snap"
	"layout-maker/pkg/geometry"
)

// HandleTolerance widens edge-handle hit-testing beyond the visual radius,
// in meters.
const HandleTolerance = 0.1

// Session routes pointer events for one drawing surface. Coordinates are in
// meters; the canvas converts from pixels before calling in. Not safe for
// concurrent use; the UI drives it from its event thread.
type Session struct {
	machine *draw.Machine
	snapper *snap.Engine
	mode    snap.Mode

	// dragEdge is the edge captured by the active curve drag, -1 when idle.
	// It is captured on pointer-down and held until release, so a drag that
	// wanders over another handle keeps editing the edge it started on.
	dragEdge int

	// preview is the latest snap result, for rendering the pending vertex.
	preview snap.Result
}

// NewSession creates a session over the given machine and snap engine.
func NewSession(machine *draw.Machine, snapper *snap.Engine) *Session {
	return &Session{
		machine:  machine,
		snapper:  snapper,
		dragEdge: -1,
	}
}

// SetMode switches between free and straight-line drawing.
func (s *Session) SetMode(mode snap.Mode) {
	s.mode = mode
}

// Mode returns the active drawing mode.
func (s *Session) Mode() snap.Mode {
	return s.mode
}

// Dragging reports whether a curve drag gesture is in progress.
func (s *Session) Dragging() bool {
	return s.dragEdge >= 0
}

// ActiveEdge returns the edge captured by the current drag, or -1.
func (s *Session) ActiveEdge() int {
	return s.dragEdge
}

// Preview returns the last snap result, for drawing the pending point.
func (s *Session) Preview() snap.Result {
	return s.preview
}

// PointerMove handles cursor movement. Snapping is resolved before any
// mutation, so the preview always reflects the latest committed state plus
// at most one pending point. During a curve drag the move updates the
// captured edge instead.
func (s *Session) PointerMove(p geometry.Point2D) snap.Result {
	res := s.snapper.Snap(p, s.machine.Vertices(), s.mode, s.machine.Closed())
	s.preview = res

	if s.dragEdge >= 0 {
		s.machine.DragCurve(s.dragEdge, p)
	}
	return res
}

// PointerDown starts a gesture. On a closed shape, pressing an edge handle
// captures that edge for dragging; the capture holds until PointerUp.
func (s *Session) PointerDown(p geometry.Point2D) {
	if !s.machine.Closed() || s.dragEdge >= 0 {
		return
	}
	s.dragEdge = curve.NearestHandle(p, s.machine.Vertices(), s.machine.Curves(), HandleTolerance)
}

// PointerUp ends the active gesture and releases any captured edge.
func (s *Session) PointerUp() {
	s.dragEdge = -1
}

// Tap handles a click. While drawing it snaps and commits a vertex (or
// closes the loop); while closed, clicks do not commit points. A tap is
// ignored while a drag gesture is in progress.
func (s *Session) Tap(p geometry.Point2D) (snap.Result, bool) {
	if s.dragEdge >= 0 {
		return snap.Result{VertexIndex: -1}, false
	}

	res := s.snapper.Snap(p, s.machine.Vertices(), s.mode, s.machine.Closed())
	s.preview = res

	if s.machine.Closed() {
		return res, false
	}
	return res, s.machine.CommitPoint(res.Point, res.NearStart)
}

// DoubleTap handles the cycle gesture: on a closed shape, double-clicking an
// edge handle steps it through none -> arc(left) -> arc(right) -> none. The
// cycle never fires mid-drag; drag and cycle are distinct affordances.
func (s *Session) DoubleTap(p geometry.Point2D) (curve.Control, bool) {
	if !s.machine.Closed() || s.dragEdge >= 0 {
		return curve.None(), false
	}
	edge := curve.NearestHandle(p, s.machine.Vertices(), s.machine.Curves(), HandleTolerance)
	if edge < 0 {
		return curve.None(), false
	}
	return s.machine.CycleCurve(edge)
}
