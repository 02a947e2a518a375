// Package grid holds the per-session state of the 3x3 layout: cell slots,
// taint marks, and the pending file-pick selection.
package grid

import (
	"math"

	"ninegrid/pkg/geometry"
)

// Fixed surface geometry. Index = row*3 + col, row-major.
const (
	SurfaceWidth  = 900
	SurfaceHeight = 1200
	CellWidth     = 300
	CellHeight    = 400
	Columns       = 3
	Rows          = 3
	CellCount     = Columns * Rows
)

// Cell identifies one slot of the 3x3 layout.
type Cell struct {
	Col   int
	Row   int
	Index int
}

// Locate maps a surface-pixel coordinate to a cell. Coordinates outside the
// surface yield a cell that fails Valid; callers discard those rather than
// treating them as errors.
func Locate(x, y float64) Cell {
	col := int(math.Floor(x / CellWidth))
	row := int(math.Floor(y / CellHeight))
	return Cell{Col: col, Row: row, Index: row*Columns + col}
}

// CellAt returns the cell for an index. The index is not range-checked.
func CellAt(index int) Cell {
	return Cell{Col: index % Columns, Row: index / Columns, Index: index}
}

// Valid reports whether the cell lies inside the 3x3 layout.
func (c Cell) Valid() bool {
	return c.Col >= 0 && c.Col < Columns && c.Row >= 0 && c.Row < Rows
}

// Rect returns the cell's pixel bounds on the surface.
func (c Cell) Rect() geometry.RectInt {
	return geometry.RectInt{
		X:      c.Col * CellWidth,
		Y:      c.Row * CellHeight,
		Width:  CellWidth,
		Height: CellHeight,
	}
}
