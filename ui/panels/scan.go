package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"layout-maker/internal/app"
	"layout-maker/internal/floorplan"
	"layout-maker/pkg/geometry"
)

// ScanPanel controls the scanned floor plan: visibility, opacity,
// calibration, and automatic room outline tracing.
type ScanPanel struct {
	state *app.State
	box   fyne.CanvasObject

	statusLabel   *widget.Label
	opacitySlider *widget.Slider
	visibleCheck  *widget.Check

	// Two-point calibration inputs: pixel distance on the scan and the real
	// distance it represents.
	pixelSpanEntry *widget.Entry
	realSpanEntry  *widget.Entry

	onRefresh func()
}

// NewScanPanel creates the scanned plan panel. onRefresh is called when a
// control changes something the canvas must redraw.
func NewScanPanel(state *app.State, onRefresh func()) *ScanPanel {
	sp := &ScanPanel{
		state:       state,
		statusLabel: widget.NewLabel("No plan loaded"),
		onRefresh:   onRefresh,
	}

	sp.visibleCheck = widget.NewCheck("Show plan", func(on bool) {
		if u := state.Underlay; u != nil {
			u.Visible = on
			sp.refresh()
		}
	})
	sp.visibleCheck.SetChecked(true)

	sp.opacitySlider = widget.NewSlider(0, 1)
	sp.opacitySlider.Step = 0.05
	sp.opacitySlider.Value = 0.5
	sp.opacitySlider.OnChanged = func(v float64) {
		if u := state.Underlay; u != nil {
			u.Opacity = v
			sp.refresh()
		}
	}

	sp.pixelSpanEntry = widget.NewEntry()
	sp.pixelSpanEntry.SetPlaceHolder("pixels")
	sp.realSpanEntry = widget.NewEntry()
	sp.realSpanEntry.SetPlaceHolder("meters")

	calibrateBtn := widget.NewButton("Calibrate", sp.applyCalibration)
	traceBtn := widget.NewButton("Trace room outline", sp.traceOutline)

	sp.box = container.NewVBox(
		widget.NewCard("Scanned Plan", "", container.NewVBox(
			sp.statusLabel,
			sp.visibleCheck,
			widget.NewLabel("Opacity"),
			sp.opacitySlider,
		)),
		widget.NewCard("Calibration", "", container.NewVBox(
			widget.NewLabel("Known distance on scan:"),
			container.NewGridWithColumns(2, sp.pixelSpanEntry, sp.realSpanEntry),
			calibrateBtn,
			traceBtn,
		)),
	)

	state.On(app.EventUnderlayLoaded, func(interface{}) { sp.Update() })
	state.On(app.EventCalibrationChanged, func(interface{}) { sp.Update() })
	state.On(app.EventLayoutLoaded, func(interface{}) { sp.Update() })

	sp.Update()
	return sp
}

// Container returns the panel for embedding in layouts.
func (sp *ScanPanel) Container() fyne.CanvasObject {
	return sp.box
}

// Update refreshes the status line from the state.
func (sp *ScanPanel) Update() {
	u := sp.state.Underlay
	if u == nil || u.Image == nil {
		sp.statusLabel.SetText("No plan loaded")
		return
	}

	b := u.Image.Bounds()
	if u.PixelsPerMeter > 0 {
		sp.statusLabel.SetText(fmt.Sprintf("%dx%d px, %.1f px/m", b.Dx(), b.Dy(), u.PixelsPerMeter))
	} else {
		sp.statusLabel.SetText(fmt.Sprintf("%dx%d px, uncalibrated", b.Dx(), b.Dy()))
	}
	sp.visibleCheck.SetChecked(u.Visible)
	sp.opacitySlider.SetValue(u.Opacity)
}

func (sp *ScanPanel) refresh() {
	if sp.onRefresh != nil {
		sp.onRefresh()
	}
}

// applyCalibration derives pixels-per-meter from the entered pixel and real
// spans.
func (sp *ScanPanel) applyCalibration() {
	pixels, err1 := strconv.ParseFloat(sp.pixelSpanEntry.Text, 64)
	meters, err2 := strconv.ParseFloat(sp.realSpanEntry.Text, 64)
	if err1 != nil || err2 != nil {
		sp.statusLabel.SetText("Enter pixel and meter distances")
		return
	}

	scale, err := floorplan.TwoPointScale(geometry.Point2D{}, geometry.Point2D{X: pixels}, meters)
	if err != nil {
		sp.statusLabel.SetText(err.Error())
		return
	}
	sp.state.SetCalibration(floorplan.CalibrationResult{PixelsPerMeter: scale})
	sp.refresh()
}

// traceOutline runs contour detection over the underlay and loads the result
// into the drawing machine for review.
func (sp *ScanPanel) traceOutline() {
	if err := sp.state.RoomOutlineFromScan(floorplan.DefaultOutlineOptions()); err != nil {
		sp.statusLabel.SetText(err.Error())
		return
	}
	sp.refresh()
}
