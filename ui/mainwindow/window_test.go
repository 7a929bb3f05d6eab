package mainwindow

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"layout-maker/internal/app"
	"layout-maker/internal/snap"
	"layout-maker/ui/prefs"
)

func TestToggleStraightUpdatesMenu(t *testing.T) {
	fyneApp := test.NewApp()
	defer test.NewApp()

	mw := New(fyneApp, app.NewState(), prefs.Load())

	mw.onToggleStraight()
	assert.Equal(t, snap.ModeStraight, mw.canvas.Session().Mode())
	assert.Equal(t, "✓ Straight Lines", mw.straightItem.Label)

	mw.onToggleStraight()
	assert.Equal(t, snap.ModeFree, mw.canvas.Session().Mode())
	assert.Equal(t, "  Straight Lines", mw.straightItem.Label)
}
