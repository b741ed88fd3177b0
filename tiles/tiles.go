// Package tiles provides fixed-size alpha glyph tiles and font.Face
// adapters over them.
package tiles

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"maps"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FontTileSet is a bitmap font where every glyph is an alpha mask of the
// same size.
type FontTileSet struct {
	image.Rectangle
	// Glyphs maps a rune to a slice of alpha pixel data
	Glyphs map[rune][]uint8
}

// NewFontTileSet returns an empty tile set whose tiles are rect sized.
func NewFontTileSet(rect image.Rectangle) *FontTileSet {
	return &FontTileSet{
		Rectangle: image.Rect(0, 0, rect.Dx(), rect.Dy()),
		Glyphs:    make(map[rune][]uint8),
	}
}

// Merge copies code points / glyphs into fts, displacing any overlapping code points.
func (fts *FontTileSet) Merge(src *FontTileSet) {
	maps.Copy(fts.Glyphs, src.Glyphs)
}

// Glyph returns the tile for r as an *image.Alpha sharing the tile set's
// storage.
func (fts *FontTileSet) Glyph(r rune) (*image.Alpha, bool) {
	pix, ok := fts.Glyphs[r]
	if !ok {
		return nil, false
	}
	return &image.Alpha{
		Pix:    pix,
		Stride: fts.Dx(),
		Rect:   fts.Rectangle,
	}, true
}

// SetTile stores the alpha channel of img, anchored at its top left
// corner, as the tile for r. Pixels outside the tile size are dropped.
func (fts *FontTileSet) SetTile(r rune, img image.Image) {
	dst := image.NewAlpha(fts.Rectangle)
	draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
	fts.Glyphs[r] = dst.Pix
}

// LoadTileFromFile decodes an image file and stores it as the tile for r.
func (fts *FontTileSet) LoadTileFromFile(r rune, file string) error {
	fh, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("tiles: %w", err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return fmt.Errorf("tiles: decoding %s: %w", file, err)
	}
	fts.SetTile(r, img)
	return nil
}

// FromFace rasterizes runes from face into a new tile set of the given
// size. Glyphs are top aligned: the baseline sits ascent pixels below the
// top of each tile. Runes the face has no glyph for are skipped.
func FromFace(face font.Face, rect image.Rectangle, runes ...rune) *FontTileSet {
	fts := NewFontTileSet(rect)
	dot := fixed.Point26_6{Y: face.Metrics().Ascent}
	for _, r := range runes {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		dst := image.NewAlpha(fts.Rectangle)
		draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
		fts.Glyphs[r] = dst.Pix
	}
	return fts
}
