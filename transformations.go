package cellatlas

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/exp/constraints"
)

func bound[N constraints.Integer](x, minimum, maximum N) N {
	return min(max(x, minimum), maximum)
}

// imageTranslate wraps a draw.Image so that the point (0,0) of the wrapper
// lands on offset in the wrapped image. Pixels outside the wrapper's
// bounds are still reachable, so margins can be painted too.
type imageTranslate struct {
	draw.Image
	offset image.Point
	size   image.Point
}

// NewImageTranslate returns a size sized view of img whose origin is at
// offset.
func NewImageTranslate(offset, size image.Point, img draw.Image) draw.Image {
	return &imageTranslate{
		Image:  img,
		offset: offset,
		size:   size,
	}
}

func (it *imageTranslate) Set(x, y int, c color.Color) {
	it.Image.Set(x+it.offset.X, y+it.offset.Y, c)
}

func (it *imageTranslate) At(x, y int) color.Color {
	return it.Image.At(x+it.offset.X, y+it.offset.Y)
}

func (it *imageTranslate) Bounds() image.Rectangle {
	return image.Rectangle{Max: it.size}.Intersect(it.Image.Bounds().Sub(it.offset))
}

// clip restricts drawing into dst to r. It uses the SubImage method of the
// standard image types so image/draw keeps its fast paths; anything else
// is wrapped.
func clip(dst draw.Image, r image.Rectangle) draw.Image {
	if sb, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if d, ok := sb.SubImage(r).(draw.Image); ok {
			return d
		}
	}
	return subimage{
		Image:  dst,
		bounds: r.Intersect(dst.Bounds()),
	}
}

type subimage struct {
	draw.Image
	bounds image.Rectangle
}

func (si subimage) Bounds() image.Rectangle {
	return si.bounds
}
