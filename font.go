package cellatlas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sparques/cellatlas/tiles"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
)

// FontDescriptor names a font the way terminal configuration does. It is
// comparable and is used as a map key.
type FontDescriptor struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`   // pixels per em, before Scaled
	Weight string  `yaml:"weight"` // "regular" (default) or "bold"
}

func (fd FontDescriptor) String() string {
	s := fmt.Sprintf("%s %gpx", fd.Family, fd.Size)
	if fd.bold() {
		s += " bold"
	}
	return s
}

// Scaled returns fd with its size multiplied by a device pixel ratio.
func (fd FontDescriptor) Scaled(scale float64) FontDescriptor {
	if scale > 0 {
		fd.Size *= scale
	}
	return fd
}

func (fd FontDescriptor) bold() bool {
	return strings.EqualFold(fd.Weight, "bold")
}

// family holds the sources for one registered font family. Either the
// opentype fonts or the fixed faces are set.
type family struct {
	regular, bold *opentype.Font
	// fixed faces are bitmap fonts that ignore the requested size
	fixedRegular, fixedBold font.Face
}

// FontLibrary resolves FontDescriptors into faces. It is safe for
// concurrent use; the faces it returns are not, so every goroutine that
// draws must ask for its own.
type FontLibrary struct {
	mu       sync.RWMutex
	families map[string]*family
}

// NewFontLibrary returns a library with the built-in families:
//
//	gomono       Go Mono and Go Mono Bold (scalable)
//	inconsolata  Inconsolata 8x16 bitmap, regular and bold
//	basic        7x13 bitmap with a synthesized bold
func NewFontLibrary() *FontLibrary {
	lib := &FontLibrary{families: make(map[string]*family)}
	if err := lib.Register("gomono", gomono.TTF, gomonobold.TTF); err != nil {
		panic(err)
	}
	lib.families["inconsolata"] = &family{
		fixedRegular: inconsolata.Regular8x16,
		fixedBold:    inconsolata.Bold8x16,
	}
	lib.families["basic"] = &family{
		fixedRegular: basicfont.Face7x13,
		fixedBold:    tiles.Bold{Face: basicfont.Face7x13},
	}
	return lib
}

// Register parses TrueType/OpenType data for a family. boldData may be nil,
// in which case bold is synthesized from the regular face.
func (lib *FontLibrary) Register(name string, regularData, boldData []byte) error {
	f := &family{}
	var err error
	if f.regular, err = opentype.Parse(regularData); err != nil {
		return fmt.Errorf("cellatlas: parsing %s: %w", name, err)
	}
	if boldData != nil {
		if f.bold, err = opentype.Parse(boldData); err != nil {
			return fmt.Errorf("cellatlas: parsing %s bold: %w", name, err)
		}
	}
	lib.mu.Lock()
	lib.families[name] = f
	lib.mu.Unlock()
	return nil
}

// RegisterFile is Register reading the font data from files. boldPath may
// be empty.
func (lib *FontLibrary) RegisterFile(name, regularPath, boldPath string) error {
	regular, err := os.ReadFile(regularPath)
	if err != nil {
		return fmt.Errorf("cellatlas: %w", err)
	}
	var bold []byte
	if boldPath != "" {
		if bold, err = os.ReadFile(boldPath); err != nil {
			return fmt.Errorf("cellatlas: %w", err)
		}
	}
	return lib.Register(name, regular, bold)
}

// RegisterTiles registers a bitmap tile font. Bold is synthesized.
func (lib *FontLibrary) RegisterTiles(name string, ts *tiles.FontTileSet) {
	face := tiles.NewFace(ts, nil)
	lib.mu.Lock()
	lib.families[name] = &family{fixedRegular: face, fixedBold: tiles.Bold{Face: face}}
	lib.mu.Unlock()
}

// Face opens a new face for fd. bold selects the bold variant regardless of
// fd.Weight; otherwise fd.Weight decides. The caller owns the face.
func (lib *FontLibrary) Face(fd FontDescriptor, bold bool) (font.Face, error) {
	lib.mu.RLock()
	f, ok := lib.families[fd.Family]
	lib.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, fd.Family)
	}
	bold = bold || fd.bold()

	if f.regular == nil {
		if bold {
			return f.fixedBold, nil
		}
		return f.fixedRegular, nil
	}

	if fd.Size <= 0 {
		return nil, fmt.Errorf("cellatlas: font size %g for %s", fd.Size, fd.Family)
	}
	src, synth := f.regular, false
	if bold {
		if f.bold != nil {
			src = f.bold
		} else {
			synth = true
		}
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    fd.Size,
		DPI:     72, // Size is already in pixels
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("cellatlas: opening %s: %w", fd, err)
	}
	if synth {
		return tiles.Bold{Face: face}, nil
	}
	return face, nil
}

// Measure returns the cell metrics of fd: the advance of 'M' by ascent
// plus descent, so a top aligned glyph is never clipped at the bottom.
// This can exceed the face's line height (Inconsolata 8x16 measures 8x17).
// It is a convenience for callers without their own measurement.
func (lib *FontLibrary) Measure(fd FontDescriptor) (CellMetrics, error) {
	face, err := lib.Face(fd, false)
	if err != nil {
		return CellMetrics{}, err
	}
	defer face.Close()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return CellMetrics{}, fmt.Errorf("cellatlas: %s has no glyph for 'M'", fd)
	}
	m := face.Metrics()
	return CellMetrics{
		Width:  float64(adv.Ceil()),
		Height: float64((m.Ascent + m.Descent).Ceil()),
	}, nil
}
