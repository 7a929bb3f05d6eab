package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"layout-maker/internal/app"
	"layout-maker/internal/dimension"
	"layout-maker/internal/element"
	"layout-maker/pkg/geometry"
)

// LibraryPanel lists the element catalog and the elements placed in the
// layout. New elements are dropped at the room center.
type LibraryPanel struct {
	state *app.State
	box   fyne.CanvasObject

	catalog    []element.Definition
	placedList *widget.List
	placed     []element.Placed
}

// NewLibraryPanel creates the element library panel.
func NewLibraryPanel(state *app.State) *LibraryPanel {
	lp := &LibraryPanel{
		state:   state,
		catalog: element.Catalog(),
	}

	addButtons := container.NewVBox()
	for _, def := range lp.catalog {
		def := def
		size := dimension.RealDimensions(def.Dims)
		label := fmt.Sprintf("%s (%.1f x %.1f m)", def.Name, size.Width, size.Height)
		addButtons.Add(widget.NewButton(label, func() {
			lp.addElement(def.ID)
		}))
	}

	lp.placed = state.Elements()
	lp.placedList = widget.NewList(
		func() int { return len(lp.placed) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButton("X", nil),
				widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(lp.placed) {
				return
			}
			el := lp.placed[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%s @ %.1f, %.1f", el.Label, el.Position.X, el.Position.Y))
			btn := row.Objects[1].(*widget.Button)
			btn.OnTapped = func() {
				lp.state.RemoveElement(el.ID)
			}
		},
	)

	lp.box = container.NewVBox(
		widget.NewCard("Element Library", "", addButtons),
		widget.NewCard("Placed", "", container.NewGridWrap(fyne.NewSize(220, 180), lp.placedList)),
	)

	for _, ev := range []app.EventType{app.EventElementsChanged, app.EventLayoutLoaded} {
		state.On(ev, func(interface{}) { lp.Update() })
	}

	return lp
}

// Container returns the panel for embedding in layouts.
func (lp *LibraryPanel) Container() fyne.CanvasObject {
	return lp.box
}

// Update reloads the placed element list from the state.
func (lp *LibraryPanel) Update() {
	lp.placed = lp.state.Elements()
	lp.placedList.Refresh()
}

// addElement places a catalog element at the room center, or near the
// origin when no room exists yet.
func (lp *LibraryPanel) addElement(typeID string) {
	pos := geometry.Point2D{X: 2, Y: 2}
	if room := lp.state.Room(); room != nil && len(room.Verts) > 0 {
		pos = dimension.BoundingBox(room.Verts).Center()
	}
	if _, err := lp.state.AddElement(typeID, pos); err != nil {
		fyne.LogError("add element", err)
	}
}
