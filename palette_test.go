package cellatlas

import (
	"image/color"
	"testing"
)

func TestPalette_Defaults(t *testing.T) {
	p := DefaultPalette()
	for _, tc := range []struct {
		i    ColorIndex
		want color.RGBA
	}{
		{0, color.RGBA{0, 0, 0, 255}},
		{1, color.RGBA{127, 0, 0, 255}},
		{7, color.RGBA{200, 200, 200, 255}},
		{9, color.RGBA{255, 0, 0, 255}},
		{15, color.RGBA{255, 255, 255, 255}},
		{16, color.RGBA{0, 0, 0, 255}},
		{196, color.RGBA{255, 0, 0, 255}},
		{231, color.RGBA{255, 255, 255, 255}},
		{232, color.RGBA{8, 8, 8, 255}},
		{255, color.RGBA{238, 238, 238, 255}},
	} {
		if got := p.ColorOf(tc.i); got != tc.want {
			t.Errorf("ColorOf(%d) = %v, want %v", tc.i, got, tc.want)
		}
		if got := p.Uniform(tc.i).C; got != tc.want {
			t.Errorf("Uniform(%d) = %v, want %v", tc.i, got, tc.want)
		}
	}
}

func TestPalette_OutOfRangePanics(t *testing.T) {
	p := DefaultPalette()
	for _, i := range []ColorIndex{DefaultColor, -7, PaletteSize, 1000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ColorOf(%d) did not panic", i)
				}
			}()
			p.ColorOf(i)
		}()
	}
}

func TestPalette_Overrides(t *testing.T) {
	p, err := NewPalette(map[int]string{
		1:   "#ff8800",
		200: "#0a0b0c",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ColorOf(1); got != (color.RGBA{0xff, 0x88, 0x00, 255}) {
		t.Errorf("ColorOf(1) = %v", got)
	}
	if got := p.ColorOf(200); got != (color.RGBA{0x0a, 0x0b, 0x0c, 255}) {
		t.Errorf("ColorOf(200) = %v", got)
	}
	if got, want := p.ColorOf(2), DefaultPalette().ColorOf(2); got != want {
		t.Errorf("ColorOf(2) = %v, want the default %v", got, want)
	}
}

func TestPalette_BadOverrides(t *testing.T) {
	for name, overrides := range map[string]map[int]string{
		"index too large": {256: "#000000"},
		"negative index":  {-1: "#000000"},
		"not hex":         {3: "orange"},
		"missing hash":    {3: "ff8800"},
	} {
		if _, err := NewPalette(overrides); err == nil {
			t.Errorf("%s: NewPalette succeeded", name)
		}
	}
}

func TestPalette_Foreground(t *testing.T) {
	p := DefaultPalette()
	if p.foreground(DefaultColor) != defaultFg {
		t.Error("default foreground is not white")
	}
	if p.foreground(300) != defaultFg {
		t.Error("foreground outside the palette is not white")
	}
	if p.foreground(42) != p.Uniform(42) {
		t.Error("foreground(42) is not the palette entry")
	}
}
