package canvas

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"layout-maker/internal/app"
)

func TestFitToWindow(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	lc := NewLayoutCanvas(app.NewState())
	lc.scroll.Resize(fyne.NewSize(3000, 2250))

	lc.FitToWindow()

	// Default space is 20x15 m; 3000x2250 px with 0.9 padding fits at
	// 135 px/m, which is a zoom of 1.35 over the base scale.
	assert.InDelta(t, 1.35, lc.Zoom(), 1e-9)
	assert.Equal(t, float32(0), lc.scroll.Offset().X)
	assert.Equal(t, float32(0), lc.scroll.Offset().Y)
}

func TestFitToWindowIgnoresZeroSize(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	lc := NewLayoutCanvas(app.NewState())
	lc.SetZoom(2.0)

	lc.FitToWindow()

	assert.Equal(t, 2.0, lc.Zoom())
}
