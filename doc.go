/*
Package cellatlas draws the cells of a fixed character grid into any
draw.Image, copying glyphs from a prebuilt atlas instead of rasterizing
them on every paint.

An atlas holds code points 0-255 in the default style and in each of the
16 named colors. It is built in the background by an AtlasCache whenever
the cell metrics change; until the matching atlas is published, a
CellRenderer rasterizes cells directly with the same faces and colors, so
switching between the two paths is not visible.

	reg, _ := cellatlas.NewRegistry(cellatlas.NewConfig())
	r := reg.NewRenderer(img)
	m, _ := r.Measure()
	r.SetMetrics(m)
	r.DrawString("hello", 2, 0, 0)

Logging goes through log/slog by default. Build with the lognone tag to
silence it, or logprintln for plain lines on stdout; SetLogger replaces
it at runtime.
*/
package cellatlas
