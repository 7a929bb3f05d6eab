package floorplan

import (
	"fmt"

	"layout-maker/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// ReferencePair links a point picked on the scanned plan (pixels) with its
// known position in the venue (meters).
type ReferencePair struct {
	Pixel geometry.Point2D
	Real  geometry.Point2D
}

// CalibrationResult is a fitted pixels-per-meter scale plus its quality.
type CalibrationResult struct {
	PixelsPerMeter float64
	// ResidualMeters is the mean distance between each reference point and
	// its fitted position, in meters.
	ResidualMeters float64
}

// TwoPointScale derives pixels-per-meter from two picked points a known real
// distance apart. This is the common calibration path: the user clicks both
// ends of a printed dimension line and types its length.
func TwoPointScale(a, b geometry.Point2D, realMeters float64) (float64, error) {
	if realMeters <= 0 {
		return 0, fmt.Errorf("real distance must be positive, got %g", realMeters)
	}
	px := a.Distance(b)
	if px == 0 {
		return 0, fmt.Errorf("reference points coincide")
	}
	return px / realMeters, nil
}

// FitCalibration fits pixel = s*real + t over the reference pairs by linear
// least squares, solving for the shared scale s and the translation t. At
// least two pairs are required; extra pairs tighten the fit and feed the
// residual estimate.
func FitCalibration(pairs []ReferencePair) (CalibrationResult, error) {
	if len(pairs) < 2 {
		return CalibrationResult{}, fmt.Errorf("need at least 2 reference pairs, got %d", len(pairs))
	}

	// Two equations per pair over unknowns [s, tx, ty]:
	//   s*rx + tx = px
	//   s*ry + ty = py
	rows := 2 * len(pairs)
	a := mat.NewDense(rows, 3, nil)
	b := mat.NewVecDense(rows, nil)
	for i, pair := range pairs {
		a.SetRow(2*i, []float64{pair.Real.X, 1, 0})
		a.SetRow(2*i+1, []float64{pair.Real.Y, 0, 1})
		b.SetVec(2*i, pair.Pixel.X)
		b.SetVec(2*i+1, pair.Pixel.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return CalibrationResult{}, fmt.Errorf("calibration fit failed: %w", err)
	}

	s, tx, ty := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	if s <= 0 {
		return CalibrationResult{}, fmt.Errorf("degenerate calibration scale %g", s)
	}

	var residualPx float64
	for _, pair := range pairs {
		fitted := geometry.Point2D{X: s*pair.Real.X + tx, Y: s*pair.Real.Y + ty}
		residualPx += fitted.Distance(pair.Pixel)
	}
	residualPx /= float64(len(pairs))

	return CalibrationResult{
		PixelsPerMeter: s,
		ResidualMeters: residualPx / s,
	}, nil
}
