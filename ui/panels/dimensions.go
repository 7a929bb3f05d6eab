// Package panels provides the side panels of the main window.
package panels

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"layout-maker/internal/app"
	"layout-maker/internal/dimension"
	"layout-maker/internal/draw"
	"layout-maker/pkg/geometry"
)

// DimensionsPanel shows the measurements of the room being drawn or saved.
type DimensionsPanel struct {
	state *app.State
	box   fyne.CanvasObject

	statusLabel    *widget.Label
	sizeLabel      *widget.Label
	perimeterLabel *widget.Label
	areaLabel      *widget.Label
	wallsLabel     *widget.Label
	elementsLabel  *widget.Label
}

// NewDimensionsPanel creates the dimensions panel and subscribes it to
// state changes.
func NewDimensionsPanel(state *app.State) *DimensionsPanel {
	dp := &DimensionsPanel{
		state:          state,
		statusLabel:    widget.NewLabel(""),
		sizeLabel:      widget.NewLabel(""),
		perimeterLabel: widget.NewLabel(""),
		areaLabel:      widget.NewLabel(""),
		wallsLabel:     widget.NewLabel(""),
		elementsLabel:  widget.NewLabel(""),
	}

	dp.box = container.NewVBox(
		widget.NewCard("Dimensions", "", container.NewVBox(
			dp.statusLabel,
			dp.sizeLabel,
			dp.perimeterLabel,
			dp.areaLabel,
			dp.wallsLabel,
			dp.elementsLabel,
		)),
	)

	for _, ev := range []app.EventType{
		app.EventLayoutLoaded,
		app.EventRoomChanged,
		app.EventWallsChanged,
		app.EventElementsChanged,
	} {
		state.On(ev, func(interface{}) { dp.Update() })
	}

	dp.Update()
	return dp
}

// Container returns the panel for embedding in layouts.
func (dp *DimensionsPanel) Container() fyne.CanvasObject {
	return dp.box
}

// Update recomputes the displayed measurements. Call it after canvas edits;
// state events trigger it automatically.
func (dp *DimensionsPanel) Update() {
	verts, closed := dp.activeOutline()

	switch {
	case len(verts) == 0:
		dp.statusLabel.SetText("No room drawn")
	case !closed:
		dp.statusLabel.SetText(fmt.Sprintf("Drawing: %d points", len(verts)))
	default:
		dp.statusLabel.SetText("Room outline")
	}

	if len(verts) < 2 {
		dp.sizeLabel.SetText("Size: -")
		dp.perimeterLabel.SetText("Perimeter: -")
		dp.areaLabel.SetText("Area: -")
	} else {
		bbox := dimension.BoundingBox(verts)
		dp.sizeLabel.SetText(fmt.Sprintf("Size: %.2f x %.2f m", bbox.Width, bbox.Height))
		dp.perimeterLabel.SetText(fmt.Sprintf("Perimeter: %.2f m", dimension.Perimeter(verts, closed)))
		if closed {
			area := math.Abs(geometry.SignedArea(verts))
			dp.areaLabel.SetText(fmt.Sprintf("Area: %.2f m2", area))
		} else {
			dp.areaLabel.SetText("Area: -")
		}
	}

	dp.wallsLabel.SetText(fmt.Sprintf("Walls: %d", len(dp.state.Walls())))
	dp.elementsLabel.SetText(fmt.Sprintf("Elements: %d", len(dp.state.Elements())))
}

// activeOutline prefers the in-progress drawing over the saved room.
func (dp *DimensionsPanel) activeOutline() ([]geometry.Point2D, bool) {
	m := dp.state.Machine
	if m.Phase() != draw.PhaseEmpty {
		return m.Vertices(), m.Closed()
	}
	if room := dp.state.Room(); room != nil {
		return room.Verts, room.Closed
	}
	return nil, false
}
