package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"ninegrid/internal/grid"
)

// ExportFileName is the default name for the exported image.
const ExportFileName = "3x3-grid.png"

// ErrTaintedExport blocks export while any cell holds an image loaded
// without a cross-origin grant.
var ErrTaintedExport = errors.New("some cells hold images loaded without cross-origin permission; save those images locally and re-add them as files")

// ErrEncodeFailed reports that serializing the surface itself failed.
var ErrEncodeFailed = errors.New("the grid image could not be exported")

// Export renders the snapshot and serializes it to PNG. It refuses to
// produce bytes while any cell is tainted.
func (r *Renderer) Export(snap grid.Snapshot) ([]byte, error) {
	for _, tainted := range snap.Tainted {
		if tainted {
			return nil, ErrTaintedExport
		}
	}

	output := r.Render(snap)

	var buf bytes.Buffer
	if err := png.Encode(&buf, output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}
