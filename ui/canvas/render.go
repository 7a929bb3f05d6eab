// Raster rendering for the layout canvas: grid, underlay, shapes, elements.
package canvas

import (
	"image"
	"image/color"
	"math"

	"layout-maker/internal/curve"
	"layout-maker/internal/dimension"
	"layout-maker/internal/draw"
	"layout-maker/internal/element"
	"layout-maker/internal/units"
	"layout-maker/pkg/geometry"
)

// Edge curves are flattened into this many segments for display.
const curveSegments = 24

var (
	colorBackground = color.RGBA{R: 250, G: 250, B: 248, A: 255}
	colorGrid       = color.RGBA{R: 225, G: 225, B: 225, A: 255}
	colorRoom       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorWall       = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorDrawing    = color.RGBA{R: 30, G: 100, B: 200, A: 255}
	colorPreview    = color.RGBA{R: 140, G: 180, B: 230, A: 255}
	colorVertex     = color.RGBA{R: 30, G: 100, B: 200, A: 255}
	colorCloseHint  = color.RGBA{R: 40, G: 170, B: 80, A: 255}
	colorHandle     = color.RGBA{R: 230, G: 140, B: 30, A: 255}
	colorElement    = color.RGBA{R: 90, G: 60, B: 140, A: 255}
	colorLabel      = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// render is the raster drawing function.
func (lc *LayoutCanvas) render(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(out, colorBackground)

	if lc.showUnderlay {
		lc.renderUnderlay(out)
	}
	if lc.showGrid {
		lc.renderGrid(out, w, h)
	}
	lc.renderWalls(out)
	lc.renderRoom(out)
	lc.renderMachine(out)
	lc.renderElements(out)

	return out
}

func fill(out *image.RGBA, col color.RGBA) {
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = col.R
		out.Pix[i+1] = col.G
		out.Pix[i+2] = col.B
		out.Pix[i+3] = col.A
	}
}

// renderUnderlay composites the scanned floor plan, aligned so its pixel
// origin sits at real (0,0) and scaled by its calibration.
func (lc *LayoutCanvas) renderUnderlay(out *image.RGBA) {
	u := lc.state.Underlay
	if u == nil || u.Image == nil || !u.Visible || !units.Valid(u.PixelsPerMeter) {
		return
	}

	src := u.Image
	srcBounds := src.Bounds()
	bounds := out.Bounds()
	opacity := u.Opacity
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	// Canvas pixels per underlay pixel.
	ratio := u.PixelsPerMeter / lc.view.Scale

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			srcX := srcBounds.Min.X + int((float64(x)-lc.view.Offset.X)*ratio)
			srcY := srcBounds.Min.Y + int((float64(y)-lc.view.Offset.Y)*ratio)
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X ||
				srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
				continue
			}

			sr, sg, sb, sa := src.At(srcX, srcY).RGBA()
			alpha := float64(sa) / 0xffff * opacity
			if alpha <= 0.001 {
				continue
			}

			dst := out.RGBAAt(x, y)
			inv := 1 - alpha
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(sr>>8)*alpha + float64(dst.R)*inv),
				G: uint8(float64(sg>>8)*alpha + float64(dst.G)*inv),
				B: uint8(float64(sb>>8)*alpha + float64(dst.B)*inv),
				A: 255,
			})
		}
	}
}

// renderGrid draws grid lines at the configured spacing.
func (lc *LayoutCanvas) renderGrid(out *image.RGBA, w, h int) {
	grid := lc.state.Layout.Settings.GridSize
	if !units.Valid(grid) {
		return
	}
	step := grid * lc.view.Scale
	if step < 4 {
		// Too dense to be useful at this zoom.
		return
	}

	for x := math.Mod(lc.view.Offset.X, step); x < float64(w); x += step {
		drawLine(out, int(x), 0, int(x), h-1, colorGrid, 1)
	}
	for y := math.Mod(lc.view.Offset.Y, step); y < float64(h); y += step {
		drawLine(out, 0, int(y), w-1, int(y), colorGrid, 1)
	}
}

func (lc *LayoutCanvas) renderWalls(out *image.RGBA) {
	for _, wall := range lc.state.Walls() {
		curves := curve.NormalizeList(wall.Curves, len(wall.Verts))
		pts := flattenShape(wall.Verts, curves, wall.Closed)
		lc.drawPolyline(out, pts, colorWall, 4)
	}
}

// renderRoom draws the saved room outline unless the machine is editing it.
func (lc *LayoutCanvas) renderRoom(out *image.RGBA) {
	if lc.state.Machine.Phase() != draw.PhaseEmpty {
		return
	}
	room := lc.state.Room()
	if room == nil || len(room.Verts) == 0 {
		return
	}
	pts := flattenShape(room.Verts, lc.state.RoomCurves(), room.Closed)
	lc.drawPolyline(out, pts, colorRoom, 3)
}

// renderMachine draws the in-progress shape, the snap preview, and the edge
// handles of a closed shape.
func (lc *LayoutCanvas) renderMachine(out *image.RGBA) {
	m := lc.state.Machine
	if m.Phase() == draw.PhaseEmpty {
		return
	}
	verts := m.Vertices()
	curves := m.Curves()
	closed := m.Closed()

	pts := flattenShape(verts, curves, closed)
	lc.drawPolyline(out, pts, colorDrawing, 3)

	// Rubber line from the last vertex to the snapped cursor.
	if !closed && len(verts) > 0 {
		res := lc.session.Preview()
		last := lc.view.RealToCanvas(verts[len(verts)-1])
		target := lc.view.RealToCanvas(res.Point)
		drawLine(out, int(last.X), int(last.Y), int(target.X), int(target.Y), colorPreview, 2)
		if res.NearStart {
			start := lc.view.RealToCanvas(verts[0])
			drawCircle(out, int(start.X), int(start.Y), 8, colorCloseHint, false)
		}
	}

	for _, v := range verts {
		p := lc.view.RealToCanvas(v)
		drawCircle(out, int(p.X), int(p.Y), 4, colorVertex, true)
	}

	if closed {
		r := int(curve.HandleRadius * lc.view.Scale)
		if r < 3 {
			r = 3
		}
		for i := range verts {
			p0, p1 := curve.EdgeEndpoints(verts, i)
			mid := lc.view.RealToCanvas(curves[i].Midpoint(p0, p1))
			drawCircle(out, int(mid.X), int(mid.Y), r, colorHandle, curves[i].IsNone())
		}
	}
}

func (lc *LayoutCanvas) renderElements(out *image.RGBA) {
	for _, el := range lc.state.Elements() {
		rd := dimension.ElementRenderData(el, lc.view)
		if rd.Width <= 0 || rd.Height <= 0 {
			continue
		}

		if el.Dims.Kind == element.DimDiameter {
			drawCircle(out, int(rd.CenterX), int(rd.CenterY), int(rd.Width/2), colorElement, false)
		} else {
			lc.drawElementRect(out, rd)
		}

		label := el.Label
		if label == "" {
			label = el.Type
		}
		drawText(out, label, int(rd.CenterX), int(rd.CenterY), colorLabel, labelScale(lc.zoom))
	}
}

// drawElementRect draws a rectangle rotated about its center.
func (lc *LayoutCanvas) drawElementRect(out *image.RGBA, rd dimension.RenderData) {
	cx, cy := rd.CenterX, rd.CenterY
	hw, hh := rd.Width/2, rd.Height/2
	rad := rd.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var px [4]int
	var py [4]int
	for i, c := range corners {
		px[i] = int(cx + c[0]*cos - c[1]*sin)
		py[i] = int(cy + c[0]*sin + c[1]*cos)
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		drawLine(out, px[i], py[i], px[j], py[j], colorElement, 2)
	}
}

// drawPolyline draws a real-space point chain converted to canvas pixels.
func (lc *LayoutCanvas) drawPolyline(out *image.RGBA, pts []geometry.Point2D, col color.RGBA, thickness int) {
	if len(pts) < 2 {
		return
	}
	prev := lc.view.RealToCanvas(pts[0])
	for _, p := range pts[1:] {
		cur := lc.view.RealToCanvas(p)
		drawLine(out, int(prev.X), int(prev.Y), int(cur.X), int(cur.Y), col, thickness)
		prev = cur
	}
}

// flattenShape expands curved edges into line segments, in real coordinates.
// The closing edge of a closed shape is included, so the returned chain ends
// back at the first vertex without needing to be closed again.
func flattenShape(verts []geometry.Point2D, curves []curve.Control, closed bool) []geometry.Point2D {
	if len(verts) < 2 {
		return verts
	}
	curves = curve.NormalizeList(curves, len(verts))

	edgeCount := len(verts) - 1
	if closed {
		edgeCount = len(verts)
	}

	out := make([]geometry.Point2D, 0, len(verts)*4)
	out = append(out, verts[0])
	for i := 0; i < edgeCount; i++ {
		p0, p1 := curve.EdgeEndpoints(verts, i)
		out = append(out, flattenEdge(p0, p1, curves[i])...)
	}
	return out
}

// flattenEdge samples one edge, excluding its start point.
func flattenEdge(p0, p1 geometry.Point2D, c curve.Control) []geometry.Point2D {
	switch c.Kind {
	case curve.KindBezier:
		pts := make([]geometry.Point2D, 0, curveSegments)
		for s := 1; s <= curveSegments; s++ {
			t := float64(s) / curveSegments
			u := 1 - t
			pts = append(pts, geometry.Point2D{
				X: u*u*p0.X + 2*u*t*c.Point.X + t*t*p1.X,
				Y: u*u*p0.Y + 2*u*t*c.Point.Y + t*t*p1.Y,
			})
		}
		return pts

	case curve.KindArc:
		center := p0.Midpoint(p1)
		r := curve.ArcRadius(p0, p1)
		theta0 := math.Atan2(p0.Y-center.Y, p0.X-center.X)
		// Sweep direction chosen so the halfway sample lands on ArcApex.
		sweep := -math.Pi
		if c.Direction == curve.DirectionRight {
			sweep = math.Pi
		}
		pts := make([]geometry.Point2D, 0, curveSegments)
		for s := 1; s <= curveSegments; s++ {
			a := theta0 + sweep*float64(s)/curveSegments
			pts = append(pts, geometry.Point2D{
				X: center.X + r*math.Cos(a),
				Y: center.Y + r*math.Sin(a),
			})
		}
		return pts

	default:
		return []geometry.Point2D{p1}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := out.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					out.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawCircle draws a filled or outlined circle.
func drawCircle(out *image.RGBA, cx, cy, r int, col color.RGBA, filled bool) {
	if r <= 0 {
		return
	}
	bounds := out.Bounds()
	r2 := r * r
	innerR2 := (r - 2) * (r - 2)

	for y := cy - r - 1; y <= cy+r+1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - r - 1; x <= cx+r+1; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := x - cx
			dy := y - cy
			dist2 := dx*dx + dy*dy
			if filled {
				if dist2 <= r2 {
					out.SetRGBA(x, y, col)
				}
			} else if dist2 <= r2 && dist2 >= innerR2 {
				out.SetRGBA(x, y, col)
			}
		}
	}
}

func labelScale(zoom float64) int {
	scale := int(zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	return scale
}

// glyphs contains 3x5 pixel patterns for digits, letters, and a few symbols.
// Each glyph is 5 rows of 3 bits.
var glyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

func glyphFor(ch rune) [5]uint8 {
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if g, ok := glyphs[ch]; ok {
		return g
	}
	return [5]uint8{}
}

// drawText draws a short label centered at the given canvas position.
func drawText(out *image.RGBA, text string, centerX, centerY int, col color.RGBA, scale int) {
	if text == "" {
		return
	}
	runes := []rune(text)
	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	textWidth := len(runes)*charWidth + (len(runes)-1)*spacing

	startX := centerX - textWidth/2
	startY := centerY - charHeight/2
	bounds := out.Bounds()

	for i, ch := range runes {
		pattern := glyphFor(ch)
		charX := startX + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := startY + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							out.SetRGBA(px, py, col)
						}
					}
				}
			}
		}
	}
}
