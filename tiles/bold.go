package tiles

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Bold wraps a font.Face and fakes a bold weight by compositing each glyph
// mask with itself shifted one pixel to the right. Use it for families that
// ship no bold variant.
type Bold struct {
	font.Face
}

func (b Bold) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	dr, mask, maskp, advance, ok = b.Face.Glyph(dot, r)
	if !ok || dr.Empty() {
		return
	}
	return image.Rect(dr.Min.X, dr.Min.Y, dr.Max.X+1, dr.Max.Y),
		embolden(mask, maskp, dr.Dx(), dr.Dy()), image.Point{}, advance, true
}

func (b Bold) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	bounds, advance, ok = b.Face.GlyphBounds(r)
	if ok {
		bounds.Max.X += fixed.I(1)
	}
	return
}

// embolden returns a (w+1)xh alpha mask where every pixel is the max of the
// source pixel and its left neighbour.
func embolden(mask image.Image, maskp image.Point, w, h int) *image.Alpha {
	out := image.NewAlpha(image.Rect(0, 0, w+1, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := alphaAt(mask, maskp.X+x, maskp.Y+y)
			if a == 0 {
				continue
			}
			for _, dx := range [2]int{0, 1} {
				i := out.PixOffset(x+dx, y)
				out.Pix[i] = max(out.Pix[i], a)
			}
		}
	}
	return out
}

func alphaAt(img image.Image, x, y int) uint8 {
	if a, ok := img.(interface{ AlphaAt(x, y int) color.Alpha }); ok {
		return a.AlphaAt(x, y).A
	}
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}
