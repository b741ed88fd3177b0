package cellatlas

import (
	"image"
)

const (
	// AtlasColumns is the number of code points held by an atlas, 0-255.
	AtlasColumns = 256
	// AtlasRows is the default style row plus one row per named color.
	AtlasRows = 1 + NamedColors

	// DefaultRow is the atlas row holding the default (unstyled) glyphs.
	DefaultRow = 0
)

// Atlas is an immutable bitmap of every code point 0-255 in the default
// style and in the 16 named colors, laid out one column per code point and
// one row per style. An *Atlas is never modified after it is published.
type Atlas struct {
	img     *image.RGBA
	cell    image.Rectangle
	metrics CellMetrics
	font    FontDescriptor
}

// Metrics returns the cell metrics the atlas was built for.
func (a *Atlas) Metrics() CellMetrics {
	return a.metrics
}

// Font returns the font the atlas was built with.
func (a *Atlas) Font() FontDescriptor {
	return a.font
}

// Image returns the atlas bitmap. It is shared by every reader and must
// not be drawn into.
func (a *Atlas) Image() image.Image {
	return a.img
}

func (a *Atlas) Bounds() image.Rectangle {
	return a.img.Rect
}

// CellRect returns the source rectangle of code point cp in row.
func (a *Atlas) CellRect(cp rune, row int) image.Rectangle {
	return cellRect(a.cell, int(cp), row, 1, 1)
}

// Glyph returns the cell for cp in row as a sub image of the atlas.
func (a *Atlas) Glyph(cp rune, row int) image.Image {
	return a.img.SubImage(a.CellRect(cp, row))
}

// matches reports whether the atlas can be blitted for a renderer drawing
// fd at m.
func (a *Atlas) matches(fd FontDescriptor, m CellMetrics) bool {
	return a.metrics == m && a.font == fd
}

// AtlasRow reports which atlas row holds cp drawn with fg. ok is false
// when the pair is not covered by the atlas and must be drawn directly:
// code points above 255, and foregrounds other than the default and the
// 16 named colors.
func AtlasRow(cp rune, fg ColorIndex) (row int, ok bool) {
	if cp < 0 || cp >= AtlasColumns {
		return 0, false
	}
	switch {
	case fg == DefaultColor:
		return DefaultRow, true
	case fg >= 0 && fg < NamedColors:
		return int(fg) + 1, true
	}
	return 0, false
}
