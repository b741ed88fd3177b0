package cellatlas

import (
	"context"
	"image"
	"image/draw"
	"runtime"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

// Builder produces atlases. AtlasBuilder is the real implementation;
// AtlasCache accepts any Builder so tests can control build timing.
type Builder interface {
	Build(ctx context.Context, fd FontDescriptor, m CellMetrics) (*Atlas, error)
}

var _ Builder = (*AtlasBuilder)(nil)

// AtlasBuilder rasterizes atlases from a FontLibrary and Palette.
type AtlasBuilder struct {
	Fonts   *FontLibrary
	Palette *Palette
	// BoldColors draws palette indices 8-15 with the bold face.
	BoldColors bool
	// Workers bounds how many rows are rasterized at once. Zero means
	// GOMAXPROCS.
	Workers int

	scratch sync.Pool
}

// NewAtlasBuilder returns a builder configured from cfg.
func NewAtlasBuilder(fonts *FontLibrary, palette *Palette, cfg Config) *AtlasBuilder {
	return &AtlasBuilder{
		Fonts:      fonts,
		Palette:    palette,
		BoldColors: cfg.BoldColors,
		Workers:    cfg.BuildWorkers,
	}
}

// Build rasterizes a complete atlas for fd at cell size m. It blocks until
// the atlas is done; AtlasCache calls it off the paint path. Any failure,
// including cancellation of ctx, fails the whole build and returns a
// *BuildError; no partial atlas is ever returned.
func (b *AtlasBuilder) Build(ctx context.Context, fd FontDescriptor, m CellMetrics) (*Atlas, error) {
	fail := func(err error) (*Atlas, error) {
		return nil, &BuildError{Font: fd, Metrics: m, Err: err}
	}
	if !m.Valid() {
		return fail(ErrInvalidMetrics)
	}

	cell := m.Cell()
	bounds := image.Rect(0, 0, AtlasColumns*cell.Dx(), AtlasRows*cell.Dy())
	surface := b.surface(bounds)
	defer b.release(surface)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())
	for row := range AtlasRows {
		g.Go(func() error {
			return b.drawRow(gctx, surface, fd, cell, row)
		})
	}
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	// The surface goes back to the pool; the atlas gets its own pixels.
	snapshot := image.NewRGBA(bounds)
	copy(snapshot.Pix, surface.Pix)

	return &Atlas{
		img:     snapshot,
		cell:    cell,
		metrics: m,
		font:    fd,
	}, nil
}

// drawRow fills one atlas row. Rows touch disjoint pixels so they can be
// drawn concurrently, each with its own face.
func (b *AtlasBuilder) drawRow(ctx context.Context, dst *image.RGBA, fd FontDescriptor, cell image.Rectangle, row int) error {
	fg := ColorIndex(row - 1)
	face, err := b.Fonts.Face(fd, row != DefaultRow && b.bold(fg))
	if err != nil {
		return err
	}
	defer face.Close()

	src := defaultFg
	if row != DefaultRow {
		src = b.Palette.Uniform(fg)
	}

	// some faces draw past the cell bottom; start from a clean row
	draw.Draw(dst, cellRect(cell, 0, row, AtlasColumns, 1), image.Transparent, image.Point{}, draw.Src)

	ascent := face.Metrics().Ascent
	for cp := range rune(AtlasColumns) {
		if err := ctx.Err(); err != nil {
			return err
		}
		drawGlyph(dst, cellRect(cell, int(cp), row, 1, 1), face, ascent, cp, src)
	}
	return nil
}

func (b *AtlasBuilder) bold(fg ColorIndex) bool {
	return b.BoldColors && fg >= NamedColors/2 && fg < NamedColors
}

func (b *AtlasBuilder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return min(runtime.GOMAXPROCS(0), AtlasRows)
}

// surface returns a transparent RGBA image of the given bounds, reusing
// pixel memory from earlier builds when it is large enough.
func (b *AtlasBuilder) surface(bounds image.Rectangle) *image.RGBA {
	n := 4 * bounds.Dx() * bounds.Dy()
	if buf, ok := b.scratch.Get().(*[]uint8); ok && cap(*buf) >= n {
		return &image.RGBA{Pix: (*buf)[:n], Stride: 4 * bounds.Dx(), Rect: bounds}
	}
	return image.NewRGBA(bounds)
}

// release clears the surface and returns its memory to the pool.
func (b *AtlasBuilder) release(surface *image.RGBA) {
	clear(surface.Pix)
	b.scratch.Put(&surface.Pix)
}

// drawGlyph draws r with its top at cell.Min.Y and its origin at
// cell.Min.X, clipped to cell. It reports whether face had a glyph for r.
func drawGlyph(dst draw.Image, cell image.Rectangle, face font.Face, ascent fixed.Int26_6, r rune, src image.Image) bool {
	dot := fixed.Point26_6{
		X: fixed.I(cell.Min.X),
		Y: fixed.I(cell.Min.Y) + ascent,
	}
	dr, mask, maskp, _, ok := face.Glyph(dot, r)
	if !ok {
		return false
	}
	draw.DrawMask(clip(dst, cell), dr, src, image.Point{}, mask, maskp, draw.Over)
	return true
}
