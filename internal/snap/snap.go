// Package snap corrects raw cursor positions against the in-progress room
// shape: magnetic vertex snapping, loop-closing detection, angle-increment
// snapping in straight-line mode, and grid snapping as the fallback.
package snap

import (
	"math"

	"layout-maker/pkg/geometry"
)

// Mode selects the drawing behavior the engine is assisting.
type Mode int

const (
	// ModeFree places vertices wherever the cursor lands (after grid/vertex snap).
	ModeFree Mode = iota
	// ModeStraight additionally pulls new segments onto angle increments.
	ModeStraight
)

// Rule identifies which snap rule produced a result.
type Rule int

const (
	RuleNone Rule = iota
	RuleGrid
	RuleAngle
	RuleVertex
	RuleCloseStart
)

func (r Rule) String() string {
	switch r {
	case RuleGrid:
		return "grid"
	case RuleAngle:
		return "angle"
	case RuleVertex:
		return "vertex"
	case RuleCloseStart:
		return "close-start"
	default:
		return "none"
	}
}

// Config holds the snap tolerances. All lengths are in meters.
type Config struct {
	GridSize       float64 // grid cell size; <=0 disables grid snap
	AngleIncrement float64 // degrees between snapped directions
	MagneticRadius float64 // pull distance for vertex and angle snap
	CloseRadius    float64 // pull distance for the loop-closing hint
}

// DefaultConfig returns the tolerances used by the drawing tool.
func DefaultConfig() Config {
	return Config{
		GridSize:       0.5,
		AngleIncrement: 15,
		MagneticRadius: 0.3,
		CloseRadius:    0.4,
	}
}

// Result is a snapped cursor position plus which rule fired.
type Result struct {
	Point geometry.Point2D
	Rule  Rule

	// VertexIndex is the snapped vertex for RuleVertex/RuleCloseStart, else -1.
	VertexIndex int

	// NearStart is set when the cursor is close enough to the first vertex to
	// close the shape. Only meaningful while drawing an open shape with at
	// least three committed vertices.
	NearStart bool
}

// Engine resolves raw pointer positions against the current vertex list.
// It holds no per-gesture state; every call is a pure function of its inputs.
type Engine struct {
	cfg Config
}

// NewEngine creates a snap engine with the given tolerances.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's tolerances.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the engine's tolerances.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
}

// Snap resolves a raw cursor point in meters against the committed vertices.
// The rule priority is fixed: vertex > close-start > angle > grid. Vertex snap
// must win over grid snap at the start point or loop closing breaks.
func (e *Engine) Snap(raw geometry.Point2D, vertices []geometry.Point2D, mode Mode, closed bool) Result {
	if !raw.IsFinite() {
		return Result{Point: geometry.Point2D{}, Rule: RuleNone, VertexIndex: -1}
	}

	// Magnetic vertex snap, highest priority.
	if idx, dist := geometry.NearestVertex(raw, vertices); idx >= 0 && dist <= e.cfg.MagneticRadius {
		res := Result{Point: vertices[idx], Rule: RuleVertex, VertexIndex: idx}
		if idx == 0 && !closed && len(vertices) >= 3 {
			res.Rule = RuleCloseStart
			res.NearStart = true
		}
		return res
	}

	// The closing hint has a slightly wider radius than generic vertex snap.
	if !closed && len(vertices) >= 3 && raw.Distance(vertices[0]) <= e.cfg.CloseRadius {
		return Result{Point: vertices[0], Rule: RuleCloseStart, VertexIndex: 0, NearStart: true}
	}

	if mode == ModeStraight && len(vertices) > 0 {
		if p, ok := e.snapAngle(raw, vertices[len(vertices)-1]); ok {
			return Result{Point: p, Rule: RuleAngle, VertexIndex: -1}
		}
	}

	if p, ok := e.snapGrid(raw); ok {
		return Result{Point: p, Rule: RuleGrid, VertexIndex: -1}
	}

	return Result{Point: raw, Rule: RuleNone, VertexIndex: -1}
}

// snapAngle projects raw onto the nearest angle-increment ray from prev.
// The projection is only accepted within the magnetic tolerance of the raw
// point, so long segments do not get yanked sideways.
func (e *Engine) snapAngle(raw, prev geometry.Point2D) (geometry.Point2D, bool) {
	if e.cfg.AngleIncrement <= 0 {
		return geometry.Point2D{}, false
	}

	delta := raw.Sub(prev)
	dist := delta.Length()
	if dist == 0 {
		return geometry.Point2D{}, false
	}

	increment := e.cfg.AngleIncrement * math.Pi / 180
	angle := math.Atan2(delta.Y, delta.X)
	snapped := math.Round(angle/increment) * increment

	p := geometry.Point2D{
		X: prev.X + dist*math.Cos(snapped),
		Y: prev.Y + dist*math.Sin(snapped),
	}
	if p.Distance(raw) > e.cfg.MagneticRadius {
		return geometry.Point2D{}, false
	}
	return p, true
}

// snapGrid rounds each axis independently to the nearest grid multiple.
func (e *Engine) snapGrid(raw geometry.Point2D) (geometry.Point2D, bool) {
	g := e.cfg.GridSize
	if g <= 0 || math.IsNaN(g) || math.IsInf(g, 0) {
		return geometry.Point2D{}, false
	}
	return geometry.Point2D{
		X: math.Round(raw.X/g) * g,
		Y: math.Round(raw.Y/g) * g,
	}, true
}
