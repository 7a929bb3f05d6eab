// Command outlinetrace runs room outline detection on a scanned floor plan
// and prints the result, optionally with label OCR for scale suggestions.
package main

import (
	"flag"
	"fmt"
	"os"

	"layout-maker/internal/dimension"
	"layout-maker/internal/floorplan"
	"layout-maker/internal/units"
)

func main() {
	imagePath := flag.String("image", "", "Path to scanned plan (TIFF, PNG, or JPEG)")
	scale := flag.Float64("scale", units.DefaultScale, "Calibration in pixels per meter")
	epsilon := flag.Float64("epsilon", 0, "Simplification tolerance in pixels (0 = default)")
	ocr := flag.Bool("ocr", false, "Read dimension labels from the scan")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: outlinetrace -image <path> [-scale 100] [-epsilon 4] [-ocr]")
		os.Exit(1)
	}

	underlay, err := floorplan.LoadUnderlay(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	bounds := underlay.Image.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())
	fmt.Printf("Scale: %.1f px/m\n", *scale)

	opts := floorplan.DefaultOutlineOptions()
	if *epsilon > 0 {
		opts.ApproxEpsilonPx = *epsilon
	}

	fmt.Printf("\nDetecting outline (blur=%d epsilon=%.1fpx minArea=%.0f%%)...\n",
		opts.BlurKernel, opts.ApproxEpsilonPx, opts.MinAreaFraction*100)

	outline, err := floorplan.DetectOutline(underlay.Image, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	room := floorplan.OutlineToMeters(outline, *scale)
	fmt.Printf("\nOutline: %d vertices\n", len(room))
	fmt.Printf("%-6s %10s %10s\n", "Index", "X (m)", "Y (m)")
	for i, p := range room {
		fmt.Printf("%-6d %10.2f %10.2f\n", i, p.X, p.Y)
	}

	bbox := dimension.BoundingBox(room)
	fmt.Printf("\nRoom size: %.2f x %.2f m, perimeter %.2f m\n",
		bbox.Width, bbox.Height, dimension.Perimeter(room, true))

	if *ocr {
		readLabels(underlay)
	}
}

// readLabels runs OCR over the scan and prints any dimension annotations.
func readLabels(underlay *floorplan.Underlay) {
	reader, err := floorplan.NewLabelReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR unavailable: %v\n", err)
		return
	}
	defer reader.Close()

	labels, err := reader.ReadDimensions(underlay.Image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR failed: %v\n", err)
		return
	}

	fmt.Printf("\nDimension labels found: %d\n", len(labels))
	for _, l := range labels {
		fmt.Printf("  %-12q -> %.2f m\n", l.Text, l.Meters)
	}
}
