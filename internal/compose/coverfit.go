package compose

import (
	"image"
	"math"
)

// CoverFit computes the source crop rectangle for drawing an imgW x imgH
// bitmap into a cellW x cellH cell so the bitmap fills the cell entirely,
// center-cropping the overflow.
//
// After the uniform min-ratio scale only an undershooting width triggers a
// second scale-up pass; there is no symmetric height pass. When the clamp
// then truncates the crop height the drawn image stretches vertically.
// Kept as-is for compatibility with the historical output.
func CoverFit(imgW, imgH, cellW, cellH int) image.Rectangle {
	if imgW <= 0 || imgH <= 0 {
		return image.Rectangle{}
	}

	r := math.Min(float64(cellW)/float64(imgW), float64(cellH)/float64(imgH))
	nw := float64(imgW) * r
	nh := float64(imgH) * r

	// Width-only correction pass.
	if nw < float64(cellW) {
		ar := float64(cellW) / nw
		nw *= ar
		nh *= ar
	}

	// Invert the final scale against the original dimensions.
	cropW := float64(imgW) / (nw / float64(cellW))
	cropH := float64(imgH) / (nh / float64(cellH))
	cropX := (float64(imgW) - cropW) * 0.5
	cropY := (float64(imgH) - cropH) * 0.5

	// Clamp to the original bitmap bounds.
	if cropX < 0 {
		cropX = 0
	}
	if cropY < 0 {
		cropY = 0
	}
	if cropX+cropW > float64(imgW) {
		cropW = float64(imgW) - cropX
	}
	if cropY+cropH > float64(imgH) {
		cropH = float64(imgH) - cropY
	}

	return image.Rect(
		int(math.Round(cropX)),
		int(math.Round(cropY)),
		int(math.Round(cropX+cropW)),
		int(math.Round(cropY+cropH)),
	)
}
