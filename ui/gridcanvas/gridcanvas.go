// Package gridcanvas provides the interactive 3x3 grid widget.
package gridcanvas

import (
	"image"

	"ninegrid/internal/compose"
	"ninegrid/internal/grid"
	"ninegrid/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

// GridCanvas displays the composed surface and maps pointer events to cells.
type GridCanvas struct {
	widget.BaseWidget

	session  *grid.Session
	renderer *compose.Renderer
	raster   *fynecanvas.Raster

	onCellTapped func(cell grid.Cell)
}

// New creates a grid canvas bound to a session. The widget refreshes itself
// on cell changes and grid clears.
func New(session *grid.Session) *GridCanvas {
	gc := &GridCanvas{
		session:  session,
		renderer: compose.NewRenderer(),
	}

	gc.raster = fynecanvas.NewRaster(gc.draw)
	gc.raster.SetMinSize(fyne.NewSize(grid.SurfaceWidth/2, grid.SurfaceHeight/2))
	gc.ExtendBaseWidget(gc)

	session.On(grid.EventCellChanged, func(interface{}) { gc.Refresh() })
	session.On(grid.EventGridCleared, func(interface{}) { gc.Refresh() })

	return gc
}

// OnCellTapped sets the callback invoked when a cell is tapped.
func (gc *GridCanvas) OnCellTapped(callback func(cell grid.Cell)) {
	gc.onCellTapped = callback
}

// SurfacePoint converts a display coordinate into surface-pixel space,
// scaling against the surface's pixel buffer versus the widget's displayed
// size. The widget is usually shown smaller than the 900x1200 buffer.
func (gc *GridCanvas) SurfacePoint(pos fyne.Position) geometry.Point2D {
	size := gc.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
	}

	return geometry.Point2D{
		X: float64(pos.X) * grid.SurfaceWidth / float64(size.Width),
		Y: float64(pos.Y) * grid.SurfaceHeight / float64(size.Height),
	}
}

// CellForPosition maps a display coordinate to the cell under it.
func (gc *GridCanvas) CellForPosition(pos fyne.Position) grid.Cell {
	p := gc.SurfacePoint(pos)
	return grid.Locate(p.X, p.Y)
}

// Tapped handles left-click events and forwards the tapped cell.
func (gc *GridCanvas) Tapped(ev *fyne.PointEvent) {
	if gc.onCellTapped == nil {
		return
	}

	cell := gc.CellForPosition(ev.Position)
	if !cell.Valid() {
		return
	}
	gc.onCellTapped(cell)
}

// Refresh redraws the surface.
func (gc *GridCanvas) Refresh() {
	gc.raster.Refresh()
	gc.BaseWidget.Refresh()
}

// draw is the raster drawing function: a full repaint of the surface,
// scaled into the widget's pixel size.
func (gc *GridCanvas) draw(w, h int) image.Image {
	surface := gc.renderer.Render(gc.session.Snapshot())
	if w <= 0 || h <= 0 || (w == grid.SurfaceWidth && h == grid.SurfaceHeight) {
		return surface
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(output, output.Bounds(), surface, surface.Bounds(), draw.Src, nil)
	return output
}

// CreateRenderer implements fyne.Widget.
func (gc *GridCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &gridCanvasRenderer{canvas: gc}
}

type gridCanvasRenderer struct {
	canvas *GridCanvas
}

func (r *gridCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *gridCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *gridCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *gridCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *gridCanvasRenderer) Destroy() {}
