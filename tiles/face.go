package tiles

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var _ font.Face = (*Face)(nil)

// Face implements font.Face over a FontTileSet. Each tile is one cell:
// the ascent is the tile height and there is no descent, so a glyph drawn
// with its dot at the cell top plus Ascent fills the cell exactly.
type Face struct {
	Tiles *FontTileSet
	// Fallback, if set, is consulted for runes missing from Tiles.
	Fallback font.Face
}

// NewFace returns a Face drawing from ts.
func NewFace(ts *FontTileSet, fallback font.Face) *Face {
	return &Face{Tiles: ts, Fallback: fallback}
}

func (f *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	tile, ok := f.Tiles.Glyph(r)
	if !ok {
		if f.Fallback != nil {
			return f.Fallback.Glyph(dot, r)
		}
		return
	}
	pt := FixedToImagePoint(dot)
	w, h := f.Tiles.Dx(), f.Tiles.Dy()
	dr = image.Rect(pt.X, pt.Y-h, pt.X+w, pt.Y)
	return dr, tile, image.Point{}, fixed.I(w), true
}

func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if _, ok = f.Tiles.Glyphs[r]; !ok {
		if f.Fallback != nil {
			return f.Fallback.GlyphBounds(r)
		}
		return
	}
	w, h := f.Tiles.Dx(), f.Tiles.Dy()
	return fixed.R(0, -h, w, 0), fixed.I(w), true
}

func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if _, ok = f.Tiles.Glyphs[r]; !ok {
		if f.Fallback != nil {
			return f.Fallback.GlyphAdvance(r)
		}
		return
	}
	return fixed.I(f.Tiles.Dx()), true
}

func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

func (f *Face) Metrics() font.Metrics {
	h := fixed.I(f.Tiles.Dy())
	return font.Metrics{
		Height:     h,
		Ascent:     h,
		Descent:    0,
		XHeight:    h,
		CapHeight:  h,
		CaretSlope: image.Point{0, 1},
	}
}

func (f *Face) Close() error {
	return nil
}

func FixedToImagePoint(fp fixed.Point26_6) image.Point {
	return image.Pt(fp.X.Round(), fp.Y.Round())
}
