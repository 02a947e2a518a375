// Package main provides the entry point for the NineGrid application.
package main

import (
	"log/slog"
	"os"
	"time"

	"ninegrid/internal/acquire"
	"ninegrid/internal/grid"
	"ninegrid/internal/version"
	"ninegrid/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"gitlab.com/greyxor/slogor"
)

const appTitle = "NineGrid"

func main() {
	slog.SetDefault(slog.New(
		slogor.NewHandler(os.Stderr,
			slogor.SetLevel(slog.LevelDebug),
			slogor.SetTimeFormat(time.DateTime))),
	)
	slog.Info("starting", "app", appTitle, "version", version.Version)

	fyneApp := fyneapp.New()
	session := grid.NewSession()
	loader := acquire.NewLoader(session)

	win := mainwindow.New(fyneApp, session, loader)
	win.SetTitle(appTitle)
	win.ShowAndRun()
}
