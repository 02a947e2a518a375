// Package compose renders the 3x3 grid surface and serializes exports.
package compose

import (
	"image"
	"image/color"

	"ninegrid/internal/grid"
	"ninegrid/pkg/colorutil"

	"golang.org/x/image/draw"
)

const (
	gridLineThickness = 2

	badgeSize   = 36
	badgeMargin = 12

	placeholderText  = "CLICK OR DROP"
	placeholderScale = 4
)

// Renderer draws session snapshots onto the fixed 900x1200 surface.
type Renderer struct {
	background  color.RGBA
	line        color.RGBA
	placeholder color.RGBA
	badgeFill   color.RGBA
	badgeGlyph  color.RGBA
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		background:  colorutil.Background,
		line:        colorutil.GridLine,
		placeholder: colorutil.Placeholder,
		badgeFill:   colorutil.BadgeFill,
		badgeGlyph:  colorutil.BadgeGlyph,
	}
}

// Render repaints the entire surface: background, cover-fit cell images,
// warning badges on tainted cells, then the separator lines on top. When
// every cell is empty the placeholder prompt is drawn in each cell instead
// of badges. Always a full repaint; there is no dirty-rectangle pass.
func (r *Renderer) Render(snap grid.Snapshot) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, grid.SurfaceWidth, grid.SurfaceHeight))
	draw.Draw(output, output.Bounds(), &image.Uniform{C: r.background}, image.Point{}, draw.Src)

	empty := true
	for i, img := range snap.Slots {
		if img == nil {
			continue
		}
		empty = false

		cellRect := grid.CellAt(i).Rect().ToImageRect()
		r.drawCellImage(output, cellRect, img)

		if snap.Tainted[i] {
			r.drawBadge(output, cellRect)
		}
	}

	if empty {
		for i := 0; i < grid.CellCount; i++ {
			center := grid.CellAt(i).Rect().Center()
			drawGlyphText(output, placeholderText, int(center.X), int(center.Y), placeholderScale, r.placeholder)
		}
	}

	r.drawGridLines(output)
	return output
}

// drawCellImage draws a bitmap into a cell with the cover-fit crop.
func (r *Renderer) drawCellImage(output *image.RGBA, cellRect image.Rectangle, img image.Image) {
	b := img.Bounds()
	crop := CoverFit(b.Dx(), b.Dy(), cellRect.Dx(), cellRect.Dy())
	crop = crop.Add(b.Min)
	draw.CatmullRom.Scale(output, cellRect, img, crop, draw.Src, nil)
}

// drawBadge draws the square warning badge with an exclamation glyph in the
// top-right corner of a cell.
func (r *Renderer) drawBadge(output *image.RGBA, cellRect image.Rectangle) {
	x1 := cellRect.Max.X - badgeMargin - badgeSize
	y1 := cellRect.Min.Y + badgeMargin
	x2 := x1 + badgeSize
	y2 := y1 + badgeSize

	bounds := output.Bounds()
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				output.Set(x, y, r.badgeFill)
			}
		}
	}

	drawGlyphText(output, "!", (x1+x2)/2, (y1+y2)/2, badgeSize/8, r.badgeGlyph)
}

// drawGridLines draws the 3x3 separator lines over the cell contents.
func (r *Renderer) drawGridLines(output *image.RGBA) {
	bounds := output.Bounds()

	// Vertical separators
	for col := 1; col < grid.Columns; col++ {
		x := col*grid.CellWidth - gridLineThickness/2
		for t := 0; t < gridLineThickness; t++ {
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				output.Set(x+t, y, r.line)
			}
		}
	}

	// Horizontal separators
	for row := 1; row < grid.Rows; row++ {
		y := row*grid.CellHeight - gridLineThickness/2
		for t := 0; t < gridLineThickness; t++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				output.Set(x, y+t, r.line)
			}
		}
	}
}
