package cellatlas

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// CellRenderer paints cells of a fixed character grid into a draw.Image.
// Cells covered by the shared atlas are copied from it; everything else is
// rasterized directly. A CellRenderer belongs to one goroutine (the paint
// loop); the atlas it reads may be rebuilt concurrently.
type CellRenderer struct {
	dst        draw.Image
	reg        *Registry
	cache      *AtlasCache
	font       FontDescriptor // device font
	metrics    CellMetrics
	cell       image.Rectangle
	scale      float64
	boldColors bool

	// fallback faces, regular and bold, opened on first use
	faces   [2]font.Face
	ascents [2]fixed.Int26_6
	faceErr error

	stats RenderStats
}

// RenderStats counts how cells were painted.
type RenderStats struct {
	Blits     uint64
	Fallbacks uint64
}

// HitRate returns the percentage of cells served from the atlas.
func (s RenderStats) HitRate() float64 {
	total := s.Blits + s.Fallbacks
	if total == 0 {
		return 0
	}
	return float64(s.Blits) / float64(total) * 100
}

// NewCellRenderer returns a renderer drawing into dst with cfg's font and
// scale, sharing reg's atlas cache for that font. Bold colors follow the
// registry's config, which is what its atlases are built with. Call
// SetMetrics before drawing.
func NewCellRenderer(dst draw.Image, reg *Registry, cfg Config) *CellRenderer {
	fd := cfg.DeviceFont()
	return &CellRenderer{
		dst:        dst,
		reg:        reg,
		cache:      reg.Cache(fd),
		font:       fd,
		scale:      cfg.Scale,
		boldColors: reg.Config.BoldColors,
	}
}

// NewCellRendererAtResolution is like NewCellRenderer, but instead of
// drawing from the top left corner of buf the grid is centred in a
// width x height area. The grid size follows from the measured cell
// metrics of the configured font, which are applied to the renderer.
func NewCellRendererAtResolution(reg *Registry, cfg Config, width, height int, buf draw.Image) (r *CellRenderer, cols, rows int, err error) {
	r = NewCellRenderer(buf, reg, cfg)
	m, err := r.Measure()
	if err != nil {
		return nil, 0, 0, err
	}
	cell := m.Cell()
	cols = bound(width/cell.Dx(), 1, width)
	rows = bound(height/cell.Dy(), 1, height)
	offset := image.Pt(max(width-cols*cell.Dx(), 0)/2, max(height-rows*cell.Dy(), 0)/2)
	r.dst = NewImageTranslate(offset.Add(buf.Bounds().Min), image.Pt(cols*cell.Dx(), rows*cell.Dy()), buf)
	r.SetMetrics(m)
	return r, cols, rows, nil
}

// Measure returns the cell metrics of the renderer's font as measured by
// the registry's font library.
func (r *CellRenderer) Measure() (CellMetrics, error) {
	return r.reg.Fonts.Measure(r.font)
}

// SetMetrics changes the cell size and tells the atlas cache, which starts
// a rebuild if needed. Until the matching atlas is published, cells are
// drawn directly.
func (r *CellRenderer) SetMetrics(m CellMetrics) {
	r.metrics = m
	r.cell = m.Cell()
	r.cache.OnMetricsChanged(m)
}

// Metrics returns the current cell metrics.
func (r *CellRenderer) Metrics() CellMetrics {
	return r.metrics
}

// SetFont switches to another font (in configuration units; the renderer
// scale is applied) and to the shared cache for it.
func (r *CellRenderer) SetFont(fd FontDescriptor) {
	fd = fd.Scaled(r.scale)
	if fd == r.font {
		return
	}
	r.closeFaces()
	r.font = fd
	r.cache = r.reg.Cache(fd)
	if r.metrics.Valid() {
		r.cache.OnMetricsChanged(r.metrics)
	}
}

// SetTarget changes the image cells are drawn into.
func (r *CellRenderer) SetTarget(dst draw.Image) {
	r.dst = dst
}

// Target returns the image cells are drawn into.
func (r *CellRenderer) Target() draw.Image {
	return r.dst
}

// Cache returns the atlas cache the renderer reads from.
func (r *CellRenderer) Cache() *AtlasCache {
	return r.cache
}

// Stats returns the paint counters.
func (r *CellRenderer) Stats() RenderStats {
	return r.stats
}

// DrawCell paints code point cp with foreground fg at grid position
// col,row. Only that cell's pixels are touched.
func (r *CellRenderer) DrawCell(cp rune, fg ColorIndex, col, row int) {
	dr := cellRect(r.cell, col, row, 1, 1)
	if atlasRow, ok := AtlasRow(cp, fg); ok {
		if a := r.cache.Current(); a != nil && a.matches(r.font, r.metrics) {
			draw.Draw(r.dst, dr, a.img, a.CellRect(cp, atlasRow).Min, draw.Over)
			r.stats.Blits++
			return
		}
	}
	r.drawUncached(cp, fg, dr)
	r.stats.Fallbacks++
}

// DrawString paints s one rune per cell starting at col,row. It does not
// wrap or interpret control characters.
func (r *CellRenderer) DrawString(s string, fg ColorIndex, col, row int) {
	for _, cp := range s {
		r.DrawCell(cp, fg, col, row)
		col++
	}
}

// drawUncached rasterizes cp straight into dr with the face and color the
// atlas would have used for it.
func (r *CellRenderer) drawUncached(cp rune, fg ColorIndex, dr image.Rectangle) {
	variant := 0
	if r.bold(fg) {
		variant = 1
	}
	face, ascent, ok := r.face(variant)
	if !ok {
		return
	}
	drawGlyph(r.dst, dr, face, ascent, cp, r.reg.Palette.foreground(fg))
}

func (r *CellRenderer) bold(fg ColorIndex) bool {
	return r.boldColors && fg >= NamedColors/2 && fg < NamedColors
}

func (r *CellRenderer) face(variant int) (font.Face, fixed.Int26_6, bool) {
	if r.faces[variant] != nil {
		return r.faces[variant], r.ascents[variant], true
	}
	face, err := r.reg.Fonts.Face(r.font, variant == 1)
	if err != nil {
		if r.faceErr == nil {
			logger().Error("cannot open fallback face", "font", r.font.String(), "err", err)
		}
		r.faceErr = err
		return nil, 0, false
	}
	r.faces[variant] = face
	r.ascents[variant] = face.Metrics().Ascent
	return face, r.ascents[variant], true
}

func (r *CellRenderer) closeFaces() {
	for i, f := range r.faces {
		if f != nil {
			f.Close()
			r.faces[i] = nil
		}
	}
	r.faceErr = nil
}

// Close releases the renderer's fallback faces. The shared cache is owned
// by the registry and stays open.
func (r *CellRenderer) Close() error {
	r.closeFaces()
	return nil
}
