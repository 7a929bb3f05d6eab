package curve

import (
	"strconv"
	"strings"

	"layout-maker/pkg/geometry"
)

// Path builds the SVG path string for a shape, edge by edge: L for straight
// edges, Q through the stored control point for beziers, A with the computed
// radius for arcs. The sweep flag is 0 for DirectionLeft and 1 for
// DirectionRight. The path is the single source of truth for both the live
// preview and the persisted record; it is regenerated on every load, never
// hand-edited.
func Path(vertices []geometry.Point2D, curves []Control, closed bool) string {
	if len(vertices) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, vertices[0])

	edges := len(vertices) - 1
	if closed {
		edges = len(vertices)
	}

	for i := 0; i < edges; i++ {
		start, end := EdgeEndpoints(vertices, i)
		c := None()
		if i < len(curves) {
			c = curves[i]
		}

		switch c.Kind {
		case KindBezier:
			b.WriteString(" Q ")
			writePoint(&b, c.Point)
			b.WriteString(" ")
			writePoint(&b, end)
		case KindArc:
			r := ArcRadius(start, end)
			sweep := "0"
			if c.Direction == DirectionRight {
				sweep = "1"
			}
			b.WriteString(" A ")
			b.WriteString(formatCoord(r))
			b.WriteString(" ")
			b.WriteString(formatCoord(r))
			b.WriteString(" 0 0 ")
			b.WriteString(sweep)
			b.WriteString(" ")
			writePoint(&b, end)
		default:
			b.WriteString(" L ")
			writePoint(&b, end)
		}
	}

	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func writePoint(b *strings.Builder, p geometry.Point2D) {
	b.WriteString(formatCoord(p.X))
	b.WriteString(" ")
	b.WriteString(formatCoord(p.Y))
}

// formatCoord renders a coordinate with at most four decimal places and no
// trailing zeros, keeping stored paths compact and stable.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
