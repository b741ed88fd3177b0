package cellatlas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// CellRect converts a rectangle of cols x rows cells starting at col,row
// into pixel coordinates.
func (r *CellRenderer) CellRect(col, row, cols, rows int) image.Rectangle {
	return cellRect(r.cell, col, row, cols, rows)
}

// FillCells paints a block of cells with c.
func (r *CellRenderer) FillCells(col, row, cols, rows int, c color.Color) {
	draw.Draw(r.dst, r.CellRect(col, row, cols, rows), image.NewUniform(c), image.Point{}, draw.Over)
}

// ClearCells makes a block of cells transparent.
func (r *CellRenderer) ClearCells(col, row, cols, rows int) {
	draw.Draw(r.dst, r.CellRect(col, row, cols, rows), image.Transparent, image.Point{}, draw.Src)
}

// ClearAll makes the whole target transparent.
func (r *CellRenderer) ClearAll() {
	draw.Draw(r.dst, r.dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillBottomLineAtCell draws an underline one line width thick, kept one
// pixel above the bottom of the cell.
func (r *CellRenderer) FillBottomLineAtCell(col, row int, c color.Color) {
	lw := r.lineWidth()
	w, h := r.cell.Dx(), r.cell.Dy()
	y := (row+1)*h - lw - 1
	draw.Draw(r.dst, image.Rect(col*w, y, (col+1)*w, y+lw), image.NewUniform(c), image.Point{}, draw.Over)
}

// FillLeftLineAtCell draws a vertical bar one line width wide along the
// left edge of the cell, as used by the beam cursor.
func (r *CellRenderer) FillLeftLineAtCell(col, row int, c color.Color) {
	lw := r.lineWidth()
	w, h := r.cell.Dx(), r.cell.Dy()
	draw.Draw(r.dst, image.Rect(col*w, row*h, col*w+lw, (row+1)*h), image.NewUniform(c), image.Point{}, draw.Over)
}

// lineWidth is the decoration thickness: one device pixel ratio, at least
// one pixel.
func (r *CellRenderer) lineWidth() int {
	return max(1, int(math.Round(r.scale)))
}
