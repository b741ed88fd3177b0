package cellatlas

import (
	"fmt"
	"image"
	"math"
)

// CellMetrics is the footprint of one monospace cell in device pixels.
// It is produced by font measurement and compared only for equality.
type CellMetrics struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Valid reports whether both dimensions are strictly positive and finite.
func (m CellMetrics) Valid() bool {
	return m.Width > 0 && m.Height > 0 &&
		!math.IsInf(m.Width, 0) && !math.IsInf(m.Height, 0)
}

// Cell returns the integer pixel rectangle of a single cell anchored at the
// origin. Fractional metrics are rounded up so glyphs are never cropped.
func (m CellMetrics) Cell() image.Rectangle {
	return image.Rect(0, 0, int(math.Ceil(m.Width)), int(math.Ceil(m.Height)))
}

func (m CellMetrics) String() string {
	return fmt.Sprintf("%gx%g", m.Width, m.Height)
}

// cellRect converts a rectangle in grid coordinates into pixels.
func cellRect(cell image.Rectangle, col, row, cols, rows int) image.Rectangle {
	w, h := cell.Dx(), cell.Dy()
	return image.Rect(col*w, row*h, (col+cols)*w, (row+rows)*h)
}
