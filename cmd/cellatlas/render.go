package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparques/cellatlas"
)

var (
	flagCols  int
	flagRows  int
	flagRGB24 bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a sample screen",
	Long: `Renders a sample screen twice, once before the atlas exists and once
after it is published, writes the second frame as a PNG and prints how many
cells were served from the atlas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagCols, "cols", 40, "Screen width in cells")
	renderCmd.Flags().IntVar(&flagRows, "rows", 12, "Screen height in cells")
	renderCmd.Flags().BoolVar(&flagRGB24, "rgb24", false, "Render into a packed 24-bit framebuffer instead of RGBA")
}

func runRender(_ *cobra.Command, args []string) error {
	out := "screen.png"
	if len(args) > 0 {
		out = args[0]
	}
	if flagCols < 1 || flagRows < 1 {
		return fmt.Errorf("screen must be at least 1x1 cells, got %dx%d", flagCols, flagRows)
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	m, err := reg.Fonts.Measure(reg.Config.DeviceFont())
	if err != nil {
		return err
	}
	cell := m.Cell()
	screen := newScreen(image.Rect(0, 0, flagCols*cell.Dx(), flagRows*cell.Dy()))
	bg := color.RGBA{0x18, 0x18, 0x18, 0xff}

	r := reg.NewRenderer(screen)
	defer r.Close()
	r.SetMetrics(m)

	frame := func() {
		draw.Draw(screen, screen.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		drawSample(r)
	}

	frame()
	cold := r.Stats()
	r.Cache().Wait()
	frame()
	warm := r.Stats()

	if err := writePNG(out, func(f *os.File) error { return png.Encode(f, screen) }); err != nil {
		return err
	}

	started, published, discarded, failed := r.Cache().Stats()
	fmt.Printf("%s: %dx%d cells of %s\n", out, flagCols, flagRows, m)
	fmt.Printf("  first frame:  %d blits, %d direct\n", cold.Blits, cold.Fallbacks)
	fmt.Printf("  second frame: %d blits, %d direct\n", warm.Blits-cold.Blits, warm.Fallbacks-cold.Fallbacks)
	fmt.Printf("  hit rate:     %.1f%%\n", warm.HitRate())
	fmt.Printf("  builds:       %d started, %d published, %d discarded, %d failed\n", started, published, discarded, failed)
	return nil
}

func newScreen(r image.Rectangle) draw.Image {
	if flagRGB24 {
		return cellatlas.NewRGBImage(r)
	}
	return image.NewRGBA(r)
}

// drawSample paints a banner, the 16 named colors, a few 256-color cells
// and a cursor.
func drawSample(r *cellatlas.CellRenderer) {
	r.DrawString("cellatlas", cellatlas.DefaultColor, 1, 0)
	r.FillBottomLineAtCell(1, 0, color.White)

	for i := range cellatlas.ColorIndex(cellatlas.NamedColors) {
		r.DrawString(fmt.Sprintf("%2d Aa", i), i, 1+int(i/8)*8, 2+int(i%8))
	}
	for i, fg := range []cellatlas.ColorIndex{33, 71, 160, 208, 244} {
		r.DrawCell('#', fg, 18+i, 2)
	}
	r.DrawString("└─┘ ±½", cellatlas.DefaultColor, 18, 4)

	r.FillLeftLineAtCell(18, 6, color.RGBA{0xff, 0xcc, 0x00, 0xff})
}
