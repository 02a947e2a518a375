// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ninegrid/internal/acquire"
	"ninegrid/internal/compose"
	"ninegrid/internal/grid"
	"ninegrid/internal/version"
	"ninegrid/pkg/geometry"
	"ninegrid/ui/gridcanvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tiff", ".tif"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	session  *grid.Session
	loader   *acquire.Loader
	renderer *compose.Renderer

	canvas    *gridcanvas.GridCanvas
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, session *grid.Session, loader *acquire.Loader) *MainWindow {
	win := fyneApp.NewWindow("NineGrid")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		session:  session,
		loader:   loader,
		renderer: compose.NewRenderer(),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupDropHandler()

	win.Resize(fyne.NewSize(grid.SurfaceWidth/2+40, grid.SurfaceHeight/2+120))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = gridcanvas.New(mw.session)
	mw.canvas.OnCellTapped(mw.onCellTapped)

	mw.statusBar = widget.NewLabel("Click a cell or drop images to fill the grid")

	toolbar := container.NewHBox(
		widget.NewButton("Export PNG", mw.onExport),
		widget.NewButton("Clear Grid", mw.onClear),
	)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Paste Image Link", mw.onPasteLink),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Grid", mw.onClear),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(grid.EventCellChanged, func(data interface{}) {
		if index, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Cell %d updated", index+1))
		}
	})

	mw.session.On(grid.EventGridCleared, func(interface{}) {
		mw.updateStatus("Grid cleared")
	})

	mw.session.On(grid.EventExported, func(data interface{}) {
		if name, ok := data.(string); ok {
			mw.updateStatus("Exported " + name)
		}
	})
}

// setupDropHandler wires window drops: file URIs load as local files, web
// URIs go through the fallback chain. The cell under the drop position
// receives the image; drops outside the grid land in the first free cell.
func (mw *MainWindow) setupDropHandler() {
	mw.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			index := mw.dropTarget(pos)
			if index < 0 {
				mw.updateStatus("Grid is full")
				return
			}

			switch uri.Scheme() {
			case "file":
				path := uri.Path()
				go func(index int, path string) {
					if err := mw.loader.LoadFile(index, path); err != nil {
						mw.updateStatus("Could not load dropped file")
					}
				}(index, path)
			case "http", "https", "data":
				go func(index int, raw string) {
					if err := mw.loader.LoadURL(context.Background(), index, raw); err != nil {
						mw.updateStatus("Could not load dropped image")
					}
				}(index, uri.String())
			default:
				// Textual drops without a loadable URI go through payload
				// extraction.
				src, ok := acquire.ExtractSource(acquire.Payload{Text: uri.String()})
				if !ok {
					continue
				}
				go func(index int, src string) {
					if err := mw.loader.LoadURL(context.Background(), index, src); err != nil {
						mw.updateStatus("Could not load dropped image")
					}
				}(index, src)
			}
		}
	})
}

// dropTarget resolves the cell index for a drop at a window position.
func (mw *MainWindow) dropTarget(pos fyne.Position) int {
	canvasPos := mw.canvas.Position()
	size := mw.canvas.Size()
	area := geometry.NewRect(float64(canvasPos.X), float64(canvasPos.Y),
		float64(size.Width), float64(size.Height))

	if area.Contains(geometry.NewPoint2D(float64(pos.X), float64(pos.Y))) {
		local := fyne.NewPos(pos.X-canvasPos.X, pos.Y-canvasPos.Y)
		cell := mw.canvas.CellForPosition(local)
		if cell.Valid() {
			return cell.Index
		}
	}
	return mw.session.FirstFree()
}

// onCellTapped records the pending selection and opens the file picker for
// the tapped cell.
func (mw *MainWindow) onCellTapped(cell grid.Cell) {
	mw.session.SetPending(cell.Index)
	mw.showFilePicker()
}

// onOpenImage opens the file picker for the first free cell.
func (mw *MainWindow) onOpenImage() {
	index := mw.session.FirstFree()
	if index < 0 {
		mw.updateStatus("Grid is full")
		return
	}
	mw.session.SetPending(index)
	mw.showFilePicker()
}

// showFilePicker opens a file-open dialog; the completion callback consumes
// the pending selection exactly once, whether the pick succeeds, fails, or
// is cancelled.
func (mw *MainWindow) showFilePicker() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		index, ok := mw.session.TakePending()
		if !ok {
			return
		}
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if rc == nil {
			return // cancelled
		}

		go func() {
			defer rc.Close()
			if err := mw.loader.LoadReader(index, rc); err != nil {
				mw.updateStatus("Could not load the selected image")
			}
		}()
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

// onPasteLink reads the clipboard and loads the extracted source into the
// first free cell.
func (mw *MainWindow) onPasteLink() {
	text := mw.Clipboard().Content()
	src, ok := acquire.ExtractSource(acquire.Payload{Text: text})
	if !ok {
		mw.updateStatus("Clipboard does not contain an image link")
		return
	}

	index := mw.session.FirstFree()
	if index < 0 {
		mw.updateStatus("Grid is full")
		return
	}

	go func() {
		if err := mw.loader.LoadURL(context.Background(), index, src); err != nil {
			mw.updateStatus("Could not load the pasted link")
		}
	}()
}

// onExport serializes the surface and triggers a save dialog. Export is
// refused while tainted cells are present.
func (mw *MainWindow) onExport() {
	data, err := mw.renderer.Export(mw.session.Snapshot())
	if errors.Is(err, compose.ErrTaintedExport) {
		dialog.ShowInformation("Export Blocked",
			"Some cells hold images that were loaded without cross-origin permission.\n"+
				"Save those images to your computer and re-add them as local files.",
			mw.Window)
		return
	}
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if wc == nil {
			return // cancelled
		}
		defer wc.Close()

		if _, err := wc.Write(data); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		slog.Info("grid exported", "target", wc.URI().String(), "bytes", len(data))
		mw.session.Emit(grid.EventExported, wc.URI().Name())
	}, mw.Window)

	fd.SetFileName(compose.ExportFileName)
	fd.Show()
}

// onClear empties the grid after confirmation.
func (mw *MainWindow) onClear() {
	if mw.session.Empty() {
		return
	}
	dialog.ShowConfirm("Clear Grid", "Remove all images from the grid?", func(ok bool) {
		if ok {
			mw.session.Clear()
		}
	}, mw.Window)
}

// onAbout shows the about dialog.
func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About NineGrid",
		fmt.Sprintf("NineGrid %s\n\nCompose a 3x3 image grid and export it as a single PNG.\n\nBuild: %s (%s)",
			version.Version, version.GitCommit, version.BuildTime),
		mw.Window)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}
