package floorplan

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DimensionLabel is one printed measurement recognized on a scanned plan.
type DimensionLabel struct {
	Text   string  // the raw matched text, e.g. "12.5 m"
	Meters float64 // the value converted to meters
}

// dimensionPattern matches the measurement annotations found on
// architectural plans: a number followed by a metric unit.
var dimensionPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(mm|cm|m)\b`)

// ParseDimensionText extracts dimension annotations from OCR output.
// Comma decimal separators are accepted; unparseable matches are skipped.
func ParseDimensionText(text string) []DimensionLabel {
	var labels []DimensionLabel
	for _, m := range dimensionPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "mm":
			value /= 1000
		case "cm":
			value /= 100
		}
		if value <= 0 {
			continue
		}
		labels = append(labels, DimensionLabel{Text: strings.TrimSpace(m[0]), Meters: value})
	}
	return labels
}

// SuggestScale proposes a pixels-per-meter calibration from a recognized
// label and the pixel length of the dimension line it annotates.
func SuggestScale(label DimensionLabel, pixelSpan float64) (float64, error) {
	if label.Meters <= 0 {
		return 0, fmt.Errorf("label %q has no usable value", label.Text)
	}
	if pixelSpan <= 0 {
		return 0, fmt.Errorf("pixel span must be positive, got %g", pixelSpan)
	}
	return pixelSpan / label.Meters, nil
}

// LabelReader recognizes printed dimension annotations using Tesseract.
type LabelReader struct {
	client *gosseract.Client
}

// NewLabelReader creates an OCR reader tuned for dimension text.
func NewLabelReader() (*LabelReader, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Dimension strings are digits and units, not prose; disable dictionary
	// correction so "12.5m" is not rewritten into a word.
	_ = client.SetWhitelist("0123456789.,xX mMcC")
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &LabelReader{client: client}, nil
}

// Close releases OCR resources.
func (r *LabelReader) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ReadDimensions runs OCR over a plan image (or a crop around a dimension
// line) and returns every annotation recognized in it.
func (r *LabelReader) ReadDimensions(img image.Image) ([]DimensionLabel, error) {
	if img == nil {
		return nil, fmt.Errorf("no image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}

	text, err := r.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	return ParseDimensionText(text), nil
}
