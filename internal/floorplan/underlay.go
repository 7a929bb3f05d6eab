// Package floorplan imports scanned venue plans: loading the image as a
// canvas underlay, detecting the room outline, calibrating pixels-per-meter,
// and reading printed dimension annotations.
package floorplan

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Underlay is a scanned plan image drawn beneath the layout.
type Underlay struct {
	Path    string
	Image   image.Image
	Visible bool
	Opacity float64

	// PixelsPerMeter is 0 until the underlay has been calibrated.
	PixelsPerMeter float64
}

// LoadUnderlay loads a plan image from disk. PNG, JPEG and TIFF scans are
// accepted.
func LoadUnderlay(path string) (*Underlay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan image %s: %w", path, err)
	}

	return &Underlay{
		Path:    path,
		Image:   img,
		Visible: true,
		Opacity: 0.5,
	}, nil
}

// Scaled returns the underlay resampled so its longest side is at most
// maxDim pixels. Large venue scans are decimated before display and OCR.
func (u *Underlay) Scaled(maxDim int) image.Image {
	if u.Image == nil || maxDim <= 0 {
		return u.Image
	}

	b := u.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return u.Image
	}

	scale := float64(maxDim) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), u.Image, b, xdraw.Over, nil)
	return dst
}
