// Package draw owns the vertex list of the shape being drawn and the
// open/closed lifecycle: Empty -> Drawing -> Closed. Once the shape is
// closed, clicks stop committing vertices and the curve descriptors become
// editable; undo then reverts curve edits before reopening the shape.
package draw

import (
	"layout-maker/internal/curve"
	"layout-maker/pkg/geometry"
)

// Phase is the drawing lifecycle state.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseDrawing
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseDrawing:
		return "drawing"
	case PhaseClosed:
		return "closed"
	default:
		return "empty"
	}
}

// MinCloseVertices is the minimum vertex count to close a shape.
const MinCloseVertices = 3

// MinPolylineVertices is the minimum vertex count to save an open polyline
// (walls, dividers).
const MinPolylineVertices = 2

// Machine is the polygon drawing state machine. All coordinates are meters.
// It is not safe for concurrent use; the canvas drives it from the UI thread.
type Machine struct {
	vertices []geometry.Point2D
	curves   []curve.Control
	phase    Phase

	// curveEdits is the undo stack of edited edge indices. Consecutive edits
	// to the same edge collapse to one entry, so one drag gesture undoes in
	// one step.
	curveEdits []int
}

// NewMachine creates an empty drawing machine.
func NewMachine() *Machine {
	return &Machine{}
}

// Phase returns the current lifecycle state.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Closed reports whether the shape has been closed into a polygon.
func (m *Machine) Closed() bool {
	return m.phase == PhaseClosed
}

// VertexCount returns the number of committed vertices.
func (m *Machine) VertexCount() int {
	return len(m.vertices)
}

// Vertices returns a copy of the committed vertices in drawing order.
func (m *Machine) Vertices() []geometry.Point2D {
	out := make([]geometry.Point2D, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Curves returns a copy of the per-edge curve descriptors. Empty until the
// shape closes.
func (m *Machine) Curves() []curve.Control {
	out := make([]curve.Control, len(m.curves))
	copy(out, m.curves)
	return out
}

// CanClose reports whether a near-start click would close the shape.
func (m *Machine) CanClose() bool {
	return m.phase == PhaseDrawing && len(m.vertices) >= MinCloseVertices
}

// CanSaveShape reports whether the shape is ready to persist as a closed room.
func (m *Machine) CanSaveShape() bool {
	return m.phase == PhaseClosed && len(m.vertices) >= MinCloseVertices
}

// CanSavePolyline reports whether the open vertex list is ready to persist as
// a polyline.
func (m *Machine) CanSavePolyline() bool {
	return m.phase == PhaseDrawing && len(m.vertices) >= MinPolylineVertices
}

// CommitPoint appends a snapped point, or closes the shape when nearStart is
// set and enough vertices exist. Returns false when the point was ignored:
// commits are not defined while Closed (those clicks belong to curve
// editing), and a near-start click with fewer than three vertices stays open.
func (m *Machine) CommitPoint(p geometry.Point2D, nearStart bool) bool {
	if m.phase == PhaseClosed || !p.IsFinite() {
		return false
	}

	if nearStart && m.CanClose() {
		m.phase = PhaseClosed
		m.curves = make([]curve.Control, len(m.vertices))
		return true
	}

	m.vertices = append(m.vertices, p)
	m.phase = PhaseDrawing
	return true
}

// SetCurve replaces the descriptor of edge i. Only valid once the shape is
// closed; the edit is recorded for undo.
func (m *Machine) SetCurve(i int, c curve.Control) bool {
	if m.phase != PhaseClosed || i < 0 || i >= len(m.curves) {
		return false
	}
	m.curves[i] = c
	m.recordEdit(i)
	return true
}

// CycleCurve advances edge i through none -> arc(left) -> arc(right) -> none
// and returns the new descriptor.
func (m *Machine) CycleCurve(i int) (curve.Control, bool) {
	if m.phase != PhaseClosed || i < 0 || i >= len(m.curves) {
		return curve.None(), false
	}
	next := m.curves[i].Cycle()
	m.curves[i] = next
	m.recordEdit(i)
	return next, true
}

// DragCurve stores a free-form bezier on edge i whose apex tracks the given
// drag position. Dragging always yields a bezier, even over an arc edge.
func (m *Machine) DragCurve(i int, apex geometry.Point2D) bool {
	if m.phase != PhaseClosed || i < 0 || i >= len(m.curves) || !apex.IsFinite() {
		return false
	}
	start, end := curve.EdgeEndpoints(m.vertices, i)
	m.curves[i] = curve.Bezier(curve.ControlFromMidpoint(apex, start, end))
	m.recordEdit(i)
	return true
}

// Undo steps backwards and reports whether anything changed. While drawing
// it removes the last vertex, possibly back to Empty. Once closed it first
// clears the most recently edited curve; with no curve edits left it reopens
// the shape.
func (m *Machine) Undo() bool {
	switch m.phase {
	case PhaseDrawing:
		if len(m.vertices) == 0 {
			return false
		}
		m.vertices = m.vertices[:len(m.vertices)-1]
		if len(m.vertices) == 0 {
			m.phase = PhaseEmpty
		}
		return true
	case PhaseClosed:
		if n := len(m.curveEdits); n > 0 {
			idx := m.curveEdits[n-1]
			m.curveEdits = m.curveEdits[:n-1]
			if idx >= 0 && idx < len(m.curves) {
				m.curves[idx] = curve.None()
			}
			return true
		}
		m.phase = PhaseDrawing
		m.curves = nil
		return true
	}
	return false
}

// Clear resets to Empty from any state.
func (m *Machine) Clear() {
	m.vertices = nil
	m.curves = nil
	m.curveEdits = nil
	m.phase = PhaseEmpty
}

// Load replaces the machine contents with a previously saved shape so the
// user can continue editing it. The curve list is normalized to one entry per
// vertex; an open load with too few vertices for its kind still loads, the
// save predicates simply stay false.
func (m *Machine) Load(vertices []geometry.Point2D, curves []curve.Control, closed bool) {
	m.Clear()
	m.vertices = append(m.vertices, vertices...)

	switch {
	case closed && len(m.vertices) >= MinCloseVertices:
		m.phase = PhaseClosed
		m.curves = curve.NormalizeList(curves, len(m.vertices))
	case len(m.vertices) > 0:
		m.phase = PhaseDrawing
	}
}

func (m *Machine) recordEdit(i int) {
	if n := len(m.curveEdits); n > 0 && m.curveEdits[n-1] == i {
		return
	}
	m.curveEdits = append(m.curveEdits, i)
}
