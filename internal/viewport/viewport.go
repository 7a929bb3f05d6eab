// Package viewport maps between room coordinates in meters and canvas
// coordinates in pixels under a scale factor and pan offset.
package viewport

import (
	"math"

	"layout-maker/internal/units"
	"layout-maker/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the user-controlled zoom multiplier.
	MinZoom = 0.5
	MaxZoom = 5.0

	// FitPadding leaves a margin around a room fitted to the canvas.
	FitPadding = 0.9

	// FallbackScale is returned by FitScale when the room or canvas has a
	// degenerate dimension.
	FallbackScale = units.DefaultScale
)

// View combines the scale factor and pan offset describing how the room is
// projected onto the canvas. Offset is in canvas pixels, applied after scaling.
type View struct {
	Scale  float64
	Offset geometry.Point2D
}

// RealToCanvas converts a room point in meters to a canvas point in pixels.
// An invalid scale yields the bare offset, keeping the result finite.
func (v View) RealToCanvas(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: units.MetersToPixels(p.X, v.Scale) + v.Offset.X,
		Y: units.MetersToPixels(p.Y, v.Scale) + v.Offset.Y,
	}
}

// CanvasToReal converts a canvas point in pixels back to room meters.
// Exact inverse of RealToCanvas for a valid scale.
func (v View) CanvasToReal(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: units.PixelsToMeters(p.X-v.Offset.X, v.Scale),
		Y: units.PixelsToMeters(p.Y-v.Offset.Y, v.Scale),
	}
}

// FitScale returns the largest pixels-per-meter scale at which a room of
// spaceWidth x spaceHeight meters fits within padding x the canvas on both
// axes. Degenerate dimensions fall back to FallbackScale, never zero or NaN.
func FitScale(spaceWidth, spaceHeight, canvasWidth, canvasHeight, padding float64) float64 {
	if !isPositive(spaceWidth) || !isPositive(spaceHeight) ||
		!isPositive(canvasWidth) || !isPositive(canvasHeight) {
		return FallbackScale
	}
	if !isPositive(padding) {
		padding = FitPadding
	}

	scaleX := canvasWidth * padding / spaceWidth
	scaleY := canvasHeight * padding / spaceHeight
	return math.Min(scaleX, scaleY)
}

// CenterOffset returns the pan offset that centers a room scaled by scale
// within the canvas.
func CenterOffset(spaceWidth, spaceHeight, canvasWidth, canvasHeight, scale float64) geometry.Point2D {
	if !units.Valid(scale) {
		return geometry.Point2D{}
	}
	return geometry.Point2D{
		X: (canvasWidth - spaceWidth*scale) / 2,
		Y: (canvasHeight - spaceHeight*scale) / 2,
	}
}

// Fit derives a centered View for the given room and canvas dimensions.
func Fit(spaceWidth, spaceHeight, canvasWidth, canvasHeight float64) View {
	scale := FitScale(spaceWidth, spaceHeight, canvasWidth, canvasHeight, FitPadding)
	return View{
		Scale:  scale,
		Offset: CenterOffset(spaceWidth, spaceHeight, canvasWidth, canvasHeight, scale),
	}
}

// ClampZoom saturates a zoom multiplier to [MinZoom, MaxZoom]. Non-finite
// input clamps to MinZoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
