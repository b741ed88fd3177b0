package cellatlas

import (
	"image/draw"
	"sync"
)

// Registry owns the atlas caches shared by every renderer in a process,
// one per device font, together with the font library, palette and
// builder they use. Renderers get their cache from a Registry rather than
// from a global so tests can use an isolated one.
type Registry struct {
	Config  Config
	Fonts   *FontLibrary
	Palette *Palette
	Builder Builder

	mu     sync.Mutex
	caches map[FontDescriptor]*AtlasCache
}

// NewRegistry returns a registry for cfg with the built-in fonts.
func NewRegistry(cfg Config) (*Registry, error) {
	palette, err := NewPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	fonts := NewFontLibrary()
	return &Registry{
		Config:  cfg,
		Fonts:   fonts,
		Palette: palette,
		Builder: NewAtlasBuilder(fonts, palette, cfg),
		caches:  make(map[FontDescriptor]*AtlasCache),
	}, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry built from
// ConfigDefault.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry(NewConfig())
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Cache returns the shared cache for fd, creating it on first use.
func (r *Registry) Cache(fd FontDescriptor) *AtlasCache {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.caches[fd]; ok {
		return c
	}
	c := NewAtlasCache(r.Builder, fd)
	r.caches[fd] = c
	return c
}

// NewRenderer returns a renderer drawing into dst with the registry's
// configured font, backed by the shared cache for that font.
func (r *Registry) NewRenderer(dst draw.Image) *CellRenderer {
	return NewCellRenderer(dst, r, r.Config)
}

// Close closes every cache the registry created.
func (r *Registry) Close() {
	r.mu.Lock()
	caches := make([]*AtlasCache, 0, len(r.caches))
	for _, c := range r.caches {
		caches = append(caches, c)
	}
	r.mu.Unlock()
	for _, c := range caches {
		c.Close()
	}
}
