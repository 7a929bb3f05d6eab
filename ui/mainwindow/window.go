// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"layout-maker/internal/app"
	"layout-maker/internal/snap"
	"layout-maker/internal/version"
	"layout-maker/pkg/geometry"
	"layout-maker/ui/canvas"
	"layout-maker/ui/panels"
	"layout-maker/ui/prefs"
)

const layoutExt = ".layout"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.LayoutCanvas
	dimPanel  *panels.DimensionsPanel
	libPanel  *panels.LibraryPanel
	scanPanel *panels.ScanPanel
	statusBar *widget.Label

	straightItem *fyne.MenuItem
	mainMenu     *fyne.MainMenu
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, preferences *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Layout Maker")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  preferences,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastLayout()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewLayoutCanvas(mw.state)
	mw.dimPanel = panels.NewDimensionsPanel(mw.state)
	mw.libPanel = panels.NewLibraryPanel(mw.state)
	mw.scanPanel = panels.NewScanPanel(mw.state, mw.canvas.Refresh)

	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnChange(func() {
		mw.dimPanel.Update()
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.prefs.SetFloat(prefs.KeyZoom, zoom)
	})
	mw.canvas.OnPointerMove(func(p geometry.Point2D, res snap.Result) {
		text := fmt.Sprintf("%.2f, %.2f m", res.Point.X, res.Point.Y)
		if res.Rule != snap.RuleNone {
			text += "  [" + res.Rule.String() + "]"
		}
		mw.statusBar.SetText(text)
	})

	sidePanel := container.NewVScroll(container.NewVBox(
		mw.dimPanel.Container(),
		mw.libPanel.Container(),
		mw.scanPanel.Container(),
	))

	toolbar := mw.createToolbar()
	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas.Container())

	split := container.NewHSplit(sidePanel, canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)

	width := mw.prefs.Float(prefs.KeyWindowWidth, 1200)
	height := mw.prefs.Float(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(width), float32(height)))

	if zoom := mw.prefs.Float(prefs.KeyZoom, 1.0); zoom > 0 {
		mw.canvas.SetZoom(zoom)
	}
}

// createToolbar creates the toolbar with zoom and drawing controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	actualBtn := widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) })
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)

	saveRoomBtn := widget.NewButton("Save Room", mw.onSaveRoom)
	saveWallBtn := widget.NewButton("Save Wall", mw.onSaveWall)
	clearBtn := widget.NewButton("Clear", mw.onClearShape)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		actualBtn,
		fitBtn,
		widget.NewSeparator(),
		saveRoomBtn,
		saveWallBtn,
		clearBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", mw.onNewLayout),
		fyne.NewMenuItem("Open Layout...", mw.onOpenLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Scanned Plan...", mw.onImportScan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Layout", mw.onSaveLayout),
		fyne.NewMenuItem("Save Layout As...", mw.onSaveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Point", mw.onUndo),
		fyne.NewMenuItem("Clear Shape", mw.onClearShape),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Edit Room Outline", mw.onEditRoom),
	)

	mw.straightItem = fyne.NewMenuItem("  Straight Lines", mw.onToggleStraight)

	drawMenu := fyne.NewMenu("Draw",
		mw.straightItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save as Room", mw.onSaveRoom),
		fyne.NewMenuItem("Save as Wall", mw.onSaveWall),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, drawMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventLayoutLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Layout Maker - " + filepath.Base(path))
			mw.updateStatus("Layout loaded: " + path)
		}
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventLayoutSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Layout Maker - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	for _, ev := range []app.EventType{
		app.EventRoomChanged,
		app.EventWallsChanged,
		app.EventElementsChanged,
		app.EventUnderlayLoaded,
		app.EventCalibrationChanged,
	} {
		mw.state.On(ev, func(interface{}) {
			mw.canvas.Refresh()
		})
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastLayout)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(filepath.Dir(path))
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// restoreLastLayout reopens the layout from the previous session.
func (mw *MainWindow) restoreLastLayout() {
	path := mw.prefs.String(prefs.KeyLastLayout)
	if path == "" {
		return
	}
	if err := mw.state.LoadLayout(path); err != nil {
		mw.updateStatus("Could not reopen " + path)
		return
	}
	mw.state.SetModified(false)
}

// Menu action handlers

func (mw *MainWindow) onNewLayout() {
	mw.state.Reset()
	mw.SetTitle("Layout Maker - New Layout")
	mw.canvas.Refresh()
	mw.dimPanel.Update()
}

func (mw *MainWindow) onOpenLayout() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.state.LoadLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastLayout, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{layoutExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onImportScan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.state.LoadUnderlayFile(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveLayout() {
	if mw.state.LayoutPath == "" {
		mw.onSaveLayoutAs()
		return
	}
	if err := mw.state.SaveLayout(mw.state.LayoutPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveLayoutAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != layoutExt {
			path += layoutExt
		}
		if err := mw.state.SaveLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastLayout, path)
	}, mw.Window)
	fd.SetFileName("venue" + layoutExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if mw.state.Machine.Undo() {
		mw.canvas.Refresh()
		mw.dimPanel.Update()
	}
}

func (mw *MainWindow) onClearShape() {
	mw.state.Machine.Clear()
	mw.canvas.Refresh()
	mw.dimPanel.Update()
}

func (mw *MainWindow) onEditRoom() {
	if err := mw.state.EditRoom(); err != nil {
		mw.updateStatus(err.Error())
		return
	}
	mw.canvas.Refresh()
	mw.dimPanel.Update()
}

func (mw *MainWindow) onToggleStraight() {
	session := mw.canvas.Session()
	if session.Mode() == snap.ModeStraight {
		session.SetMode(snap.ModeFree)
		mw.straightItem.Label = "  Straight Lines"
	} else {
		session.SetMode(snap.ModeStraight)
		mw.straightItem.Label = "✓ Straight Lines"
	}
	mw.mainMenu.Refresh()
}

func (mw *MainWindow) onSaveRoom() {
	if err := mw.state.CommitRoom("Room"); err != nil {
		mw.updateStatus(err.Error())
		return
	}
	mw.canvas.Refresh()
	mw.dimPanel.Update()
}

func (mw *MainWindow) onSaveWall() {
	if err := mw.state.CommitWall("Wall"); err != nil {
		mw.updateStatus(err.Error())
		return
	}
	mw.canvas.Refresh()
	mw.dimPanel.Update()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Layout Maker",
		fmt.Sprintf("Layout Maker v%s\n\n"+
			"A floor plan and seating layout designer for events.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
