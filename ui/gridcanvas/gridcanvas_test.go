package gridcanvas_test

import (
	"testing"

	"ninegrid/internal/grid"
	"ninegrid/ui/gridcanvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfacePointScaling(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	gc := gridcanvas.New(grid.NewSession())

	t.Run("half-size display doubles coordinates", func(t *testing.T) {
		gc.Resize(fyne.NewSize(grid.SurfaceWidth/2, grid.SurfaceHeight/2))

		p := gc.SurfacePoint(fyne.NewPos(225, 300))
		assert.InDelta(t, 450, p.X, 0.001)
		assert.InDelta(t, 600, p.Y, 0.001)
	})

	t.Run("full-size display passes through", func(t *testing.T) {
		gc.Resize(fyne.NewSize(grid.SurfaceWidth, grid.SurfaceHeight))

		p := gc.SurfacePoint(fyne.NewPos(123, 456))
		assert.InDelta(t, 123, p.X, 0.001)
		assert.InDelta(t, 456, p.Y, 0.001)
	})
}

func TestTappedResolvesCell(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	gc := gridcanvas.New(grid.NewSession())
	gc.Resize(fyne.NewSize(grid.SurfaceWidth/2, grid.SurfaceHeight/2))

	var tapped []grid.Cell
	gc.OnCellTapped(func(cell grid.Cell) { tapped = append(tapped, cell) })

	// Display point (300, 500) maps to surface (600, 1000): column 2, row 2.
	gc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(300, 500)})
	require.Len(t, tapped, 1)
	assert.Equal(t, 8, tapped[0].Index)

	// Taps outside the grid are discarded.
	gc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(-5, 10)})
	assert.Len(t, tapped, 1)
}
