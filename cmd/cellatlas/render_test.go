package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func withFlags(t *testing.T, cols, rows int, rgb24 bool) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	oldCols, oldRows, oldRGB := flagCols, flagRows, flagRGB24
	flagConfig, flagCols, flagRows, flagRGB24 = "", cols, rows, rgb24
	t.Cleanup(func() {
		flagCols, flagRows, flagRGB24 = oldCols, oldRows, oldRGB
	})
}

func TestRender(t *testing.T) {
	for _, rgb24 := range []bool{false, true} {
		withFlags(t, 30, 10, rgb24)
		out := filepath.Join(t.TempDir(), "screen.png")
		if err := runRender(nil, []string{out}); err != nil {
			t.Fatalf("rgb24=%v: %v", rgb24, err)
		}

		img := decodePNG(t, out)
		if w := img.Bounds().Dx(); w%30 != 0 || w == 0 {
			t.Fatalf("rgb24=%v: width %d is not 30 cells", rgb24, w)
		}
		if h := img.Bounds().Dy(); h%10 != 0 || h == 0 {
			t.Fatalf("rgb24=%v: height %d is not 10 rows", rgb24, h)
		}
		// the 24-bit screen has no alpha channel to lose
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0xffff {
			t.Fatalf("rgb24=%v: background alpha = %#x", rgb24, a)
		}
	}
}

func TestRenderRejectsEmptyScreen(t *testing.T) {
	withFlags(t, 0, 10, false)
	if err := runRender(nil, []string{filepath.Join(t.TempDir(), "x.png")}); err == nil {
		t.Fatal("render accepted a zero width screen")
	}
}

func TestDump(t *testing.T) {
	withFlags(t, 1, 1, false)
	out := filepath.Join(t.TempDir(), "atlas.png")
	if err := runDump(nil, []string{out}); err != nil {
		t.Fatal(err)
	}
	b := decodePNG(t, out).Bounds()
	if b.Dx()%256 != 0 || b.Dy()%17 != 0 || b.Empty() {
		t.Fatalf("atlas is %v, want 256x17 cells", b.Size())
	}
}
