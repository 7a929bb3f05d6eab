package curve

import (
	"encoding/json"

	"layout-maker/pkg/geometry"
)

// controlJSON is the wire form of a Control. Early layouts stored a bezier
// edge as a bare control point with no tag, so the legacy x/y fields are
// still accepted on load and normalized into the tagged form.
type controlJSON struct {
	Type      string            `json:"type,omitempty"`
	Point     *geometry.Point2D `json:"point,omitempty"`
	Direction int               `json:"direction,omitempty"`

	// Legacy bare-point form.
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// MarshalJSON encodes the tagged variant. Only the current tagged form is
// ever written; the legacy form is read-only.
func (c Control) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindBezier:
		p := c.Point
		return json.Marshal(controlJSON{Type: "bezier", Point: &p})
	case KindArc:
		return json.Marshal(controlJSON{Type: "arc", Direction: int(c.Direction)})
	default:
		return json.Marshal(controlJSON{Type: "none"})
	}
}

// UnmarshalJSON decodes either the tagged variant or the legacy bare-point
// form. Anything unrecognized normalizes to the straight-line variant rather
// than failing the load.
func (c *Control) UnmarshalJSON(data []byte) error {
	var raw controlJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		// Tolerate null and malformed entries from older files.
		*c = None()
		return nil
	}

	switch raw.Type {
	case "bezier":
		if raw.Point != nil {
			*c = Bezier(*raw.Point)
		} else {
			*c = None()
		}
	case "arc":
		if raw.Direction == int(DirectionRight) {
			*c = Arc(DirectionRight)
		} else {
			*c = Arc(DirectionLeft)
		}
	case "none":
		*c = None()
	default:
		// Untagged: a bare point is a legacy bezier control point.
		if raw.X != nil && raw.Y != nil {
			*c = Bezier(geometry.Point2D{X: *raw.X, Y: *raw.Y})
		} else {
			*c = None()
		}
	}
	return nil
}

// NormalizeList pads or trims a loaded curve list to exactly one entry per
// vertex. Missing entries become straight edges.
func NormalizeList(curves []Control, vertexCount int) []Control {
	if vertexCount <= 0 {
		return nil
	}
	out := make([]Control, vertexCount)
	for i := 0; i < vertexCount && i < len(curves); i++ {
		out[i] = curves[i]
	}
	return out
}
