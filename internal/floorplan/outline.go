package floorplan

import (
	"fmt"
	"image"

	"layout-maker/internal/units"
	"layout-maker/pkg/geometry"

	"gocv.io/x/gocv"
)

// OutlineOptions configures room outline detection on a scanned plan.
type OutlineOptions struct {
	BlurKernel      int     // Gaussian blur kernel size (odd), 0 disables
	ApproxEpsilonPx float64 // polygon approximation tolerance in pixels
	SimplifyEpsilon float64 // Douglas-Peucker pass after approximation
	MinAreaFraction float64 // reject contours smaller than this share of the image
}

// DefaultOutlineOptions returns detection settings that work for typical
// black-line architectural scans.
func DefaultOutlineOptions() OutlineOptions {
	return OutlineOptions{
		BlurKernel:      5,
		ApproxEpsilonPx: 4.0,
		SimplifyEpsilon: 2.0,
		MinAreaFraction: 0.05,
	}
}

// DetectOutline finds the dominant room outline in a scanned plan and returns
// its vertices in image pixel coordinates, ready to feed into the drawing
// machine after conversion to meters.
func DetectOutline(img image.Image, opts OutlineOptions) ([]geometry.Point2D, error) {
	if img == nil {
		return nil, fmt.Errorf("no plan image")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert plan image: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	if opts.BlurKernel > 1 {
		k := opts.BlurKernel | 1 // kernel must be odd
		gocv.GaussianBlur(gray, &gray, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)
	}

	// Plans are dark lines on light paper; Otsu picks the split.
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv+gocv.ThresholdOtsu)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bounds := img.Bounds()
	minArea := opts.MinAreaFraction * float64(bounds.Dx()*bounds.Dy())

	bestIdx := -1
	bestArea := minArea
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, fmt.Errorf("no room outline found (largest contour below %.0f px^2)", minArea)
	}

	approx := gocv.ApproxPolyDP(contours.At(bestIdx), opts.ApproxEpsilonPx, true)
	defer approx.Close()

	pts := make([]geometry.Point2D, 0, approx.Size())
	for _, p := range approx.ToPoints() {
		pts = append(pts, geometry.Point2D{X: float64(p.X), Y: float64(p.Y)})
	}

	if opts.SimplifyEpsilon > 0 {
		pts = geometry.SimplifyPath(pts, opts.SimplifyEpsilon)
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("outline degenerated to %d points", len(pts))
	}
	return pts, nil
}

// OutlineToMeters converts a detected pixel outline into room coordinates:
// scaled by the calibration and translated so the bounding box starts at the
// origin. An invalid scale yields nil.
func OutlineToMeters(outline []geometry.Point2D, pixelsPerMeter float64) []geometry.Point2D {
	if len(outline) == 0 || !units.Valid(pixelsPerMeter) {
		return nil
	}

	box := geometry.BoundingBox(outline)
	out := make([]geometry.Point2D, len(outline))
	for i, p := range outline {
		out[i] = geometry.Point2D{
			X: units.PixelsToMeters(p.X-box.X, pixelsPerMeter),
			Y: units.PixelsToMeters(p.Y-box.Y, pixelsPerMeter),
		}
	}
	return out
}
