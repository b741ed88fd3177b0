package tiles

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func ink(img *image.Alpha) int {
	n := 0
	for _, a := range img.Pix {
		if a != 0 {
			n++
		}
	}
	return n
}

func TestFromFace(t *testing.T) {
	rect := image.Rect(0, 0, 7, 13)
	fts := FromFace(basicfont.Face7x13, rect, 'A', '_', ' ')

	if _, ok := fts.Glyph('B'); ok {
		t.Error("tile set has a glyph that was not requested")
	}
	a, ok := fts.Glyph('A')
	if !ok || ink(a) == 0 {
		t.Fatal("'A' missing or blank")
	}
	if a.Rect != rect {
		t.Fatalf("tile bounds = %v, want %v", a.Rect, rect)
	}
	if sp, _ := fts.Glyph(' '); ink(sp) != 0 {
		t.Error("space has ink")
	}

	// the underscore sits in the bottom half of a top aligned tile
	u, _ := fts.Glyph('_')
	for y := 0; y < rect.Dy()/2; y++ {
		for x := 0; x < rect.Dx(); x++ {
			if u.AlphaAt(x, y).A != 0 {
				t.Fatalf("'_' has ink at (%d,%d)", x, y)
			}
		}
	}
}

func TestMerge(t *testing.T) {
	rect := image.Rect(0, 0, 7, 13)
	a := FromFace(basicfont.Face7x13, rect, 'A', 'B')
	b := FromFace(basicfont.Face7x13, rect, 'B', 'C')
	b.Glyphs['B'] = make([]uint8, 7*13)

	a.Merge(b)
	if len(a.Glyphs) != 3 {
		t.Fatalf("merged set has %d glyphs, want 3", len(a.Glyphs))
	}
	if g, _ := a.Glyph('B'); ink(g) != 0 {
		t.Error("Merge did not replace 'B'")
	}
}

func TestSetTileAndLoadTileFromFile(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(src, image.Rect(2, 3, 4, 5), image.NewUniform(color.NRGBA{255, 0, 0, 255}), image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "tile.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	fts := NewFontTileSet(image.Rect(0, 0, 8, 8))
	if err := fts.LoadTileFromFile('x', path); err != nil {
		t.Fatal(err)
	}
	g, ok := fts.Glyph('x')
	if !ok {
		t.Fatal("tile not stored")
	}
	if ink(g) != 4 || g.AlphaAt(2, 3).A != 255 || g.AlphaAt(3, 4).A != 255 {
		t.Fatalf("tile has %d inked pixels, want the 2x2 square", ink(g))
	}

	if err := fts.LoadTileFromFile('y', filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("LoadTileFromFile succeeded for a missing file")
	}
}

func TestFace(t *testing.T) {
	rect := image.Rect(0, 0, 7, 13)
	fts := FromFace(basicfont.Face7x13, rect, 'A')
	face := NewFace(fts, basicfont.Face7x13)

	m := face.Metrics()
	if m.Ascent != fixed.I(13) || m.Descent != 0 {
		t.Fatalf("Metrics() = %+v", m)
	}
	if adv, ok := face.GlyphAdvance('A'); !ok || adv != fixed.I(7) {
		t.Fatalf("GlyphAdvance('A') = %v, %v", adv, ok)
	}

	dot := fixed.P(10, 20)
	dr, mask, _, _, ok := face.Glyph(dot, 'A')
	if !ok || dr != image.Rect(10, 7, 17, 20) || mask == nil {
		t.Fatalf("Glyph('A') = %v, %v", dr, ok)
	}

	// 'B' comes from the fallback face
	if _, _, _, _, ok := face.Glyph(dot, 'B'); !ok {
		t.Fatal("fallback not consulted")
	}
	if _, _, _, _, ok := NewFace(fts, nil).Glyph(dot, 'B'); ok {
		t.Fatal("Glyph('B') succeeded without a fallback")
	}

	// drawing a tile through font.Drawer reproduces it
	dst := image.NewAlpha(rect)
	d := font.Drawer{Dst: dst, Src: image.Opaque, Face: face, Dot: fixed.P(0, 13)}
	d.DrawString("A")
	want, _ := fts.Glyph('A')
	for i := range dst.Pix {
		if dst.Pix[i] != want.Pix[i] {
			t.Fatalf("drawn tile differs at byte %d", i)
		}
	}
}

func TestBold(t *testing.T) {
	regular := basicfont.Face7x13
	bold := Bold{Face: regular}

	dot := fixed.P(0, 11)
	rdr, rmask, rmp, radv, _ := regular.Glyph(dot, 'l')
	bdr, bmask, bmp, badv, ok := bold.Glyph(dot, 'l')
	if !ok {
		t.Fatal("bold glyph missing")
	}
	if bdr.Dx() != rdr.Dx()+1 || bdr.Dy() != rdr.Dy() || bdr.Min != rdr.Min {
		t.Fatalf("bold bounds %v, regular %v", bdr, rdr)
	}
	if badv != radv {
		t.Fatalf("bold advance %v, regular %v", badv, radv)
	}

	count := func(mask image.Image, mp image.Point, w, h int) int {
		n := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if _, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA(); a != 0 {
					n++
				}
			}
		}
		return n
	}
	if r, b := count(rmask, rmp, rdr.Dx(), rdr.Dy()), count(bmask, bmp, bdr.Dx(), bdr.Dy()); b <= r {
		t.Fatalf("bold has %d inked pixels, regular %d", b, r)
	}

	rb, _, _ := regular.GlyphBounds('l')
	bb, _, _ := bold.GlyphBounds('l')
	if bb.Max.X != rb.Max.X+fixed.I(1) {
		t.Fatalf("GlyphBounds not widened: %v vs %v", bb, rb)
	}
}

func TestEmbolden(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 3, 1))
	mask.Pix = []uint8{0, 200, 50}
	out := embolden(mask, image.Point{}, 3, 1)
	want := []uint8{0, 200, 200, 50}
	for i := range want {
		if out.Pix[i] != want[i] {
			t.Fatalf("embolden = %v, want %v", out.Pix, want)
		}
	}
}
