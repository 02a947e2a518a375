package compose

import (
	"image"
	"image/color"
)

// glyphPatterns contains 3x5 pixel patterns for the characters the surface
// draws itself: placeholder prompts and the warning badge glyph.
// Each glyph is 5 rows of 3 bits.
var glyphPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'!': {0b010, 0b010, 0b010, 0b000, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getGlyphPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getGlyphPattern(ch rune) [5]uint8 {
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := glyphPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// drawGlyphText draws text centered at the given coordinates using the
// scaled 3x5 glyph patterns.
func drawGlyphText(output *image.RGBA, text string, centerX, centerY, scale int, col color.Color) {
	if scale < 1 {
		scale = 1
	}

	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	runes := []rune(text)
	textWidth := len(runes)*charWidth + (len(runes)-1)*spacing

	startX := centerX - textWidth/2
	startY := centerY - charHeight/2

	bounds := output.Bounds()

	for i, ch := range runes {
		pattern := getGlyphPattern(ch)
		charX := startX + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				// Draw a scaled pixel block
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := startY + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}
