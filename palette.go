package cellatlas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorIndex selects a palette entry. DefaultColor means the cell has no
// explicit foreground and is drawn in the default style.
type ColorIndex int

const (
	DefaultColor ColorIndex = -1

	// PaletteSize is the number of indexed colors.
	PaletteSize = 256
	// NamedColors is the number of ANSI named colors at the start of the palette.
	NamedColors = 16
)

// ansiColors are the 16 named colors; 8-15 are the bright variants and
// are drawn bold.
var ansiColors = [NamedColors]color.RGBA{
	{0, 0, 0, 255},
	{127, 0, 0, 255},
	{0, 170, 0, 255},
	{170, 85, 0, 255},
	{0, 0, 170, 255},
	{170, 0, 170, 255},
	{0, 170, 170, 255},
	{200, 200, 200, 255},
	{85, 85, 85, 255},
	{255, 0, 0, 255},
	{85, 255, 85, 255},
	{255, 255, 85, 255},
	{85, 85, 255, 255},
	{255, 85, 255, 255},
	{85, 255, 255, 255},
	{255, 255, 255, 255},
}

// defaultFg is used for the default style row and for foregrounds outside
// the palette.
var defaultFg = image.NewUniform(color.RGBA{255, 255, 255, 255})

// Palette is an immutable mapping from color index to RGB. Build one with
// NewPalette and share it; it is safe for concurrent use.
type Palette struct {
	colors   [PaletteSize]color.RGBA
	uniforms [PaletteSize]*image.Uniform
}

var defaultPalette = mustPalette(nil)

// DefaultPalette returns the process-wide palette with no overrides.
func DefaultPalette() *Palette {
	return defaultPalette
}

// NewPalette returns a palette made of the 16 ANSI colors followed by the
// xterm 6x6x6 cube and grayscale ramp. overrides maps an index to a hex
// color such as "#ff8800".
func NewPalette(overrides map[int]string) (*Palette, error) {
	p := &Palette{}
	copy(p.colors[:NamedColors], ansiColors[:])
	for i := NamedColors; i < PaletteSize; i++ {
		r, g, b := tcell.PaletteColor(i).RGB()
		p.colors[i] = color.RGBA{uint8(r), uint8(g), uint8(b), 255}
	}

	for idx, hex := range overrides {
		if idx < 0 || idx >= PaletteSize {
			return nil, fmt.Errorf("cellatlas: palette index %d out of range", idx)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("cellatlas: palette index %d: %w", idx, err)
		}
		r, g, b := c.RGB255()
		p.colors[idx] = color.RGBA{r, g, b, 255}
	}

	for i := range p.colors {
		p.uniforms[i] = image.NewUniform(p.colors[i])
	}
	return p, nil
}

func mustPalette(overrides map[int]string) *Palette {
	p, err := NewPalette(overrides)
	if err != nil {
		panic(err)
	}
	return p
}

// ColorOf returns the color for index i. i must be in [0, 255]; anything
// else is a caller bug and panics.
func (p *Palette) ColorOf(i ColorIndex) color.RGBA {
	if i < 0 || i >= PaletteSize {
		panic(fmt.Sprintf("cellatlas: color index %d out of range", i))
	}
	return p.colors[i]
}

// Uniform returns a shared image source filled with the color for index i.
// The returned value must not be modified.
func (p *Palette) Uniform(i ColorIndex) *image.Uniform {
	if i < 0 || i >= PaletteSize {
		panic(fmt.Sprintf("cellatlas: color index %d out of range", i))
	}
	return p.uniforms[i]
}

// foreground returns the fill source used for fg: the palette entry when
// fg is an index, white otherwise.
func (p *Palette) foreground(fg ColorIndex) *image.Uniform {
	if fg >= 0 && fg < PaletteSize {
		return p.uniforms[fg]
	}
	return defaultFg
}
