// Package units converts between real-world lengths in meters and on-screen
// lengths in pixels.
//
// The scale factor is pixels-per-meter. Every function treats a non-finite or
// non-positive scale, or a non-finite length, as unconvertible and returns 0
// rather than propagating NaN into downstream geometry.
package units

import "math"

// DefaultScale is the pixels-per-meter factor used before a room has been
// fitted to the canvas.
const DefaultScale = 100.0

// Valid reports whether scale is a usable pixels-per-meter factor.
func Valid(scale float64) bool {
	return !math.IsNaN(scale) && !math.IsInf(scale, 0) && scale > 0
}

// MetersToPixels converts a length in meters to pixels.
func MetersToPixels(m, scale float64) float64 {
	if !Valid(scale) || math.IsNaN(m) || math.IsInf(m, 0) {
		return 0
	}
	return m * scale
}

// PixelsToMeters converts a length in pixels to meters.
func PixelsToMeters(px, scale float64) float64 {
	if !Valid(scale) || math.IsNaN(px) || math.IsInf(px, 0) {
		return 0
	}
	return px / scale
}
