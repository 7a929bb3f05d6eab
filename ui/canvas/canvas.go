// Package canvas provides the layout drawing surface with pan, zoom, and
// pointer-driven shape editing.
package canvas

import (
	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"layout-maker/internal/app"
	"layout-maker/internal/interaction"
	"layout-maker/internal/snap"
	"layout-maker/internal/units"
	"layout-maker/internal/viewport"
	"layout-maker/pkg/geometry"
)

const (
	zoomStep = 1.25

	// Default visible area in meters before a room exists.
	defaultSpaceWidth  = 20.0
	defaultSpaceHeight = 15.0

	// Margin around the room, in meters.
	spaceMargin = 1.0
)

// LayoutCanvas renders the floor plan and routes pointer input to the
// drawing session. Real-space coordinates are meters; the raster is pixels.
type LayoutCanvas struct {
	widget.BaseWidget

	state   *app.State
	session *interaction.Session

	raster *fynecanvas.Raster
	view   viewport.View
	zoom   float64

	showGrid     bool
	showUnderlay bool

	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Callbacks
	onZoomChange  func(zoom float64)
	onPointerMove func(p geometry.Point2D, res snap.Result)
	onChange      func()
}

// NewLayoutCanvas creates a canvas over the given application state.
func NewLayoutCanvas(state *app.State) *LayoutCanvas {
	lc := &LayoutCanvas{
		state:        state,
		session:      interaction.NewSession(state.Machine, state.Snap),
		zoom:         1.0,
		showGrid:     true,
		showUnderlay: true,
		imgSize:      fyne.NewSize(400, 300),
	}

	lc.raster = fynecanvas.NewRaster(lc.render)
	lc.raster.ScaleMode = fynecanvas.ImageScalePixels
	lc.raster.SetMinSize(lc.imgSize)

	lc.content = newDraggableContent(lc, lc.raster)
	lc.scroll = newZoomScroll(lc.content, lc)

	lc.ExtendBaseWidget(lc)
	lc.updateContentSize()
	return lc
}

// Session returns the interaction session, for mode switching.
func (lc *LayoutCanvas) Session() *interaction.Session {
	return lc.session
}

// Container returns the canvas container for embedding in layouts.
func (lc *LayoutCanvas) Container() fyne.CanvasObject {
	return lc.scroll
}

// SetZoom sets the zoom level, clamped to the allowed range.
func (lc *LayoutCanvas) SetZoom(zoom float64) {
	lc.zoom = viewport.ClampZoom(zoom)
	lc.updateContentSize()

	if lc.onZoomChange != nil {
		lc.onZoomChange(lc.zoom)
	}
}

// Zoom returns the current zoom level.
func (lc *LayoutCanvas) Zoom() float64 {
	return lc.zoom
}

// ZoomIn increases the zoom level.
func (lc *LayoutCanvas) ZoomIn() {
	lc.SetZoom(lc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (lc *LayoutCanvas) ZoomOut() {
	lc.SetZoom(lc.zoom / zoomStep)
}

// FitToWindow chooses the zoom that shows the whole space inside the visible
// scroll area and resets the pan to the origin.
func (lc *LayoutCanvas) FitToWindow() {
	size := lc.scroll.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	spaceW, spaceH := lc.spaceSize()
	fit := viewport.Fit(spaceW, spaceH, float64(size.Width), float64(size.Height))
	lc.SetZoom(fit.Scale / units.DefaultScale)
	lc.scroll.scroll.Offset = fyne.NewPos(0, 0)
	lc.scroll.Refresh()
}

// SetShowGrid toggles grid rendering.
func (lc *LayoutCanvas) SetShowGrid(show bool) {
	lc.showGrid = show
	lc.Refresh()
}

// SetShowUnderlay toggles rendering of the scanned floor plan.
func (lc *LayoutCanvas) SetShowUnderlay(show bool) {
	lc.showUnderlay = show
	lc.Refresh()
}

// OnZoomChange sets a callback for zoom changes.
func (lc *LayoutCanvas) OnZoomChange(callback func(zoom float64)) {
	lc.onZoomChange = callback
}

// OnPointerMove sets a callback fired with the cursor position in meters and
// the snap result, for the status bar.
func (lc *LayoutCanvas) OnPointerMove(callback func(p geometry.Point2D, res snap.Result)) {
	lc.onPointerMove = callback
}

// OnChange sets a callback fired after any edit made through the canvas.
func (lc *LayoutCanvas) OnChange(callback func()) {
	lc.onChange = callback
}

// Refresh redraws the canvas.
func (lc *LayoutCanvas) Refresh() {
	lc.raster.Refresh()
}

// View returns the viewport used for the current frame.
func (lc *LayoutCanvas) View() viewport.View {
	return lc.view
}

// spaceSize returns the real-space extent to render, in meters.
func (lc *LayoutCanvas) spaceSize() (float64, float64) {
	w, h := defaultSpaceWidth, defaultSpaceHeight

	if room := lc.state.Room(); room != nil {
		if room.Width+2*spaceMargin > w {
			w = room.Width + 2*spaceMargin
		}
		if room.Height+2*spaceMargin > h {
			h = room.Height + 2*spaceMargin
		}
	}
	if u := lc.state.Underlay; u != nil && u.Image != nil && units.Valid(u.PixelsPerMeter) {
		b := u.Image.Bounds()
		uw := float64(b.Dx()) / u.PixelsPerMeter
		uh := float64(b.Dy()) / u.PixelsPerMeter
		if uw+2*spaceMargin > w {
			w = uw + 2*spaceMargin
		}
		if uh+2*spaceMargin > h {
			h = uh + 2*spaceMargin
		}
	}
	return w, h
}

// updateContentSize recomputes the viewport and raster size from the room
// extent and zoom level.
func (lc *LayoutCanvas) updateContentSize() {
	spaceW, spaceH := lc.spaceSize()
	scale := units.DefaultScale * lc.zoom
	margin := spaceMargin * scale

	lc.view = viewport.View{
		Scale:  scale,
		Offset: geometry.Point2D{X: margin, Y: margin},
	}
	lc.imgSize = fyne.NewSize(float32(spaceW*scale), float32(spaceH*scale))

	lc.raster.SetMinSize(lc.imgSize)
	lc.raster.Resize(lc.imgSize)
	if lc.content != nil {
		lc.content.Resize(lc.imgSize)
		lc.content.Refresh()
	}
	lc.raster.Refresh()
	if lc.scroll != nil {
		lc.scroll.Refresh()
	}
}

// canvasToReal converts a content position to meters.
func (lc *LayoutCanvas) canvasToReal(pos fyne.Position) geometry.Point2D {
	return lc.view.CanvasToReal(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
}

func (lc *LayoutCanvas) notifyChanged() {
	lc.Refresh()
	if lc.onChange != nil {
		lc.onChange()
	}
}

// CreateRenderer implements fyne.Widget.
func (lc *LayoutCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &layoutCanvasRenderer{canvas: lc}
}

type layoutCanvasRenderer struct {
	canvas *LayoutCanvas
}

func (r *layoutCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *layoutCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *layoutCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *layoutCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *layoutCanvasRenderer) Destroy() {}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *LayoutCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *LayoutCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas   *LayoutCanvas
	raster   *fynecanvas.Raster
	dragging bool
}

func newDraggableContent(lc *LayoutCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: lc,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// inBounds rejects events outside the widget, which Fyne occasionally
// delivers after focus changes.
func (dc *draggableContent) inBounds(pos fyne.Position) bool {
	size := dc.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

// Tapped commits a drawing point or closes the shape.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if !dc.inBounds(ev.Position) {
		return
	}
	p := dc.canvas.canvasToReal(ev.Position)
	if _, ok := dc.canvas.session.Tap(p); ok {
		dc.canvas.notifyChanged()
	}
}

// TappedSecondary undoes the last drawing step.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if dc.canvas.state.Machine.Undo() {
		dc.canvas.notifyChanged()
	}
}

// DoubleTapped cycles the curve type of the edge handle under the cursor.
func (dc *draggableContent) DoubleTapped(ev *fyne.PointEvent) {
	if !dc.inBounds(ev.Position) {
		return
	}
	p := dc.canvas.canvasToReal(ev.Position)
	if _, ok := dc.canvas.session.DoubleTap(p); ok {
		dc.canvas.notifyChanged()
	}
}

// Dragged bends an edge when the drag starts on one of its handles.
func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	if !dc.dragging {
		dc.dragging = true
		start := fyne.Position{X: ev.Position.X - ev.Dragged.DX, Y: ev.Position.Y - ev.Dragged.DY}
		dc.canvas.session.PointerDown(dc.canvas.canvasToReal(start))
	}
	if dc.canvas.session.Dragging() {
		dc.canvas.session.PointerMove(dc.canvas.canvasToReal(ev.Position))
		dc.canvas.Refresh()
	}
}

func (dc *draggableContent) DragEnd() {
	wasEditing := dc.canvas.session.Dragging()
	dc.dragging = false
	dc.canvas.session.PointerUp()
	if wasEditing {
		dc.canvas.notifyChanged()
	}
}

// MouseMoved tracks the cursor for the snap preview and the status bar.
func (dc *draggableContent) MouseMoved(ev *desktop.MouseEvent) {
	if dc.dragging {
		return
	}
	p := dc.canvas.canvasToReal(ev.Position)
	res := dc.canvas.session.PointerMove(p)
	if dc.canvas.onPointerMove != nil {
		dc.canvas.onPointerMove(p, res)
	}
	if !dc.canvas.state.Machine.Closed() {
		dc.canvas.Refresh()
	}
}

func (dc *draggableContent) MouseIn(ev *desktop.MouseEvent) {}

func (dc *draggableContent) MouseOut() {}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}
