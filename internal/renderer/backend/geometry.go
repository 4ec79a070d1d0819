package backend

import (
	"math"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

// Grid geometry. These are fixed rather than derived from font metrics;
// changing them changes the column/row count reported for a surface.
const (
	CellWidth  = 16.0
	LineHeight = 18.0
	FontSize   = 16.0

	// Descent is the padding below the glyph box, half of the spare line
	// height.
	Descent = (LineHeight - FontSize) / 2

	// TopOffset shifts every row down from the surface edge.
	TopOffset = 5.0

	FontFamily = "monospace"
)

// Default colors used when a cell carries the reset color.
var (
	Backdrop          = core.ColorFromRGB(0x26, 0x32, 0x38)
	DefaultForeground = core.ColorFromRGB(0xff, 0xff, 0xff)
)

// CellOrigin maps a grid position to the top-left pixel of its cell.
func CellOrigin(col, row int) (x, y float64) {
	return float64(col) * CellWidth, float64(row)*LineHeight + TopOffset
}

// Baseline returns the text baseline for a cell whose origin is at y.
func Baseline(y float64) float64 {
	return math.Floor(y + LineHeight - Descent)
}

// UnderlineY returns the underline row for a cell whose origin is at y: the
// baseline row, which is the last pixel row inside the cell. Anything lower
// belongs to the next row and is painted over by its background.
func UnderlineY(y float64) float64 {
	return min(Baseline(y), y+LineHeight-1)
}

// GridSize converts a pixel box to whole cells. Degenerate boxes
// (zero, negative, NaN) yield zero.
func GridSize(width, height float64) core.Size {
	return core.Size{
		Width:  int(sanitize(width) / CellWidth),
		Height: int(sanitize(height) / LineHeight),
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 || math.IsInf(v, 0) {
		return 0
	}
	return v
}
