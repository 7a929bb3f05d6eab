// Package dimension derives the measurements shown in the info panel and the
// geometry handed to the renderer: bounding boxes, perimeters, resolved
// element sizes, and anchor-relative canvas placement.
package dimension

import (
	"layout-maker/internal/element"
	"layout-maker/internal/units"
	"layout-maker/internal/viewport"
	"layout-maker/pkg/geometry"
)

// BoundingBox returns the axis-aligned bounds of the vertex list in meters.
// An empty list yields a zero-size box at the origin.
func BoundingBox(vertices []geometry.Point2D) geometry.Rect {
	return geometry.BoundingBox(vertices)
}

// Perimeter sums the straight-line edge lengths, including the closing edge
// when closed is set. Curved edges are measured along their chord, not the
// rendered curve: downstream material and cost estimates rely on the
// straight-edge figure, so this is deliberate.
func Perimeter(vertices []geometry.Point2D, closed bool) float64 {
	if len(vertices) < 2 {
		return 0
	}
	total := geometry.PathLength(vertices)
	if closed && len(vertices) >= 3 {
		total += vertices[len(vertices)-1].Distance(vertices[0])
	}
	return total
}

// RealDimensions resolves a dimension descriptor into concrete width and
// height in meters. Missing fixed fields resolve to 0; configurable counts
// are used as given, without clamping to the catalog bounds.
func RealDimensions(d element.Dimensions) geometry.Size {
	switch d.Kind {
	case element.DimDiameter:
		return geometry.NewSize(d.Diameter, d.Diameter)
	case element.DimConfigurable:
		return geometry.NewSize(
			d.UnitSize*float64(d.UnitsWide),
			d.UnitSize*float64(d.UnitsDeep),
		)
	default:
		return geometry.NewSize(d.Width, d.Height)
	}
}

// RenderData is the canvas-pixel geometry for drawing one placed element.
type RenderData struct {
	X       float64 // top-left corner
	Y       float64
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
	// Rotation in degrees, applied by the renderer around the center.
	Rotation float64
}

// ElementRenderData resolves a placed element against the current view: real
// dimensions to pixels, anchor-relative top-left from the stored position,
// and the rotation center. The anchor is an exact linear interpolation over
// the footprint, with no special cases: (0,0) puts the position at the
// top-left, (1,1) at the bottom-right, (0.5,0.5) centers it.
func ElementRenderData(p element.Placed, view viewport.View) RenderData {
	size := RealDimensions(p.Dims)
	w := units.MetersToPixels(size.Width, view.Scale)
	h := units.MetersToPixels(size.Height, view.Scale)

	pos := view.RealToCanvas(p.Position)
	x := pos.X - p.Anchor.X*w
	y := pos.Y - p.Anchor.Y*h

	return RenderData{
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
		CenterX:  x + w/2,
		CenterY:  y + h/2,
		Rotation: p.Rotation,
	}
}
