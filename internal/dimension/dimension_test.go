package dimension

import (
	"testing"

	"layout-maker/internal/element"
	"layout-maker/internal/viewport"
	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

var rectangle = []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, geometry.NewRect(0, 0, 4, 3), BoundingBox(rectangle))
	assert.Equal(t, geometry.Rect{}, BoundingBox(nil))
}

func TestPerimeter(t *testing.T) {
	assert.InDelta(t, 14.0, Perimeter(rectangle, true), 1e-12)
	assert.InDelta(t, 11.0, Perimeter(rectangle, false), 1e-12)

	assert.Equal(t, 0.0, Perimeter(rectangle[:1], true))
	assert.Equal(t, 0.0, Perimeter(nil, true))

	// Two points: no closing edge even when asked
	assert.InDelta(t, 4.0, Perimeter(rectangle[:2], true), 1e-12)
}

func TestRealDimensionsFixed(t *testing.T) {
	size := RealDimensions(element.Fixed(2.4, 0.76))
	assert.Equal(t, geometry.NewSize(2.4, 0.76), size)

	// Missing fields resolve to zero, not an error
	size = RealDimensions(element.Dimensions{Kind: element.DimFixed, Width: 3})
	assert.Equal(t, geometry.NewSize(3, 0), size)
}

func TestRealDimensionsDiameter(t *testing.T) {
	size := RealDimensions(element.Diameter(1.8))
	assert.Equal(t, geometry.NewSize(1.8, 1.8), size)
}

func TestRealDimensionsConfigurable(t *testing.T) {
	d := element.Configurable(1.0, 6, 4, 2, 16)
	assert.Equal(t, geometry.NewSize(6, 4), RealDimensions(d))

	// Counts outside min/max are computed as given; clamping is the caller's
	d.UnitsWide = 40
	assert.Equal(t, geometry.NewSize(40, 4), RealDimensions(d))
}

func TestElementRenderDataCenteredAnchor(t *testing.T) {
	view := viewport.View{Scale: 100, Offset: pt(0, 0)}
	p := element.Placed{
		Position: pt(5, 5),
		Anchor:   element.CenterAnchor,
		Dims:     element.Fixed(2, 1),
		Rotation: 45,
	}

	rd := ElementRenderData(p, view)
	assert.Equal(t, 400.0, rd.X)
	assert.Equal(t, 450.0, rd.Y)
	assert.Equal(t, 200.0, rd.Width)
	assert.Equal(t, 100.0, rd.Height)
	assert.Equal(t, 500.0, rd.CenterX)
	assert.Equal(t, 500.0, rd.CenterY)
	assert.Equal(t, 45.0, rd.Rotation)
}

func TestElementRenderDataCornerAnchors(t *testing.T) {
	view := viewport.View{Scale: 100, Offset: pt(10, 20)}
	p := element.Placed{
		Position: pt(1, 1),
		Anchor:   pt(0, 0),
		Dims:     element.Fixed(2, 2),
	}

	rd := ElementRenderData(p, view)
	assert.Equal(t, 110.0, rd.X, "anchor (0,0): position is the top-left")
	assert.Equal(t, 120.0, rd.Y)

	p.Anchor = pt(1, 1)
	rd = ElementRenderData(p, view)
	assert.Equal(t, -90.0, rd.X, "anchor (1,1): position is the bottom-right")
	assert.Equal(t, -80.0, rd.Y)
}

func TestElementRenderDataInvalidScale(t *testing.T) {
	view := viewport.View{Scale: 0}
	p := element.Placed{Position: pt(3, 3), Anchor: element.CenterAnchor, Dims: element.Diameter(2)}

	rd := ElementRenderData(p, view)
	assert.Equal(t, 0.0, rd.Width)
	assert.Equal(t, 0.0, rd.Height)
	assert.Equal(t, 0.0, rd.X)
	assert.Equal(t, 0.0, rd.Y)
}
