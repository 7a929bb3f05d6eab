// Package main provides the entry point for the Layout Maker application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"layout-maker/internal/app"
	"layout-maker/internal/version"
	"layout-maker/ui/mainwindow"
	"layout-maker/ui/prefs"
)

const appTitle = "Layout Maker"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.String())

	fyneApp := fyneapp.NewWithID("layout-maker")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a layout given on the command line, overriding the restored one.
	if len(os.Args) > 1 {
		layoutPath := os.Args[1]
		if err := appState.LoadLayout(layoutPath); err != nil {
			log.Printf("Failed to load layout %s: %v", layoutPath, err)
		}
	}

	setupHotReload(win, appPrefs)

	win.Show()
	fyneApp.Run()

	if err := appPrefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow, appPrefs *prefs.Prefs) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				if err := appPrefs.Save(); err != nil {
					log.Printf("Failed to save preferences: %v", err)
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
	})

	reloader.Start()
}
