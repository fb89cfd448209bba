package imagepkg

import (
	"image"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Surface is the drawing target a Renderer paints on. Implementations own
// their pixel buffer; a surface is used by exactly one render.
type Surface interface {
	// FillLinearGradient covers the whole surface with a gradient running
	// from the top-left corner (from) to the bottom-right corner (to).
	FillLinearGradient(from, to Color) error
	// DrawShadow paints the soft shadow cast by a box at r.
	DrawShadow(r Rect, s Shadow) error
	// DrawImage scales img into r, clipped to a rounded rectangle.
	DrawImage(img image.Image, r Rect, cornerRadius float64) error
	// DrawText draws s right-aligned at right with its top edge at top.
	DrawText(s string, right, top, size float64, c Color) error
	// Encode writes the surface in format f.
	Encode(w io.Writer, f Format, quality int) error
}

// SurfaceFactory allocates a surface of w by h pixels.
type SurfaceFactory func(w, h int) (Surface, error)

// Backend names a Surface implementation.
type Backend string

const (
	BackendRaster Backend = "raster"
	BackendGG     Backend = "gg"
)

var backends = map[Backend]SurfaceFactory{
	BackendRaster: func(w, h int) (Surface, error) { return NewRasterSurface(w, h) },
	BackendGG:     func(w, h int) (Surface, error) { return NewGGSurface(w, h) },
}

// SurfaceFor returns the factory registered for b.
func SurfaceFor(b Backend) (SurfaceFactory, error) {
	f, ok := backends[b]
	if !ok {
		return nil, errors.Errorf("unknown backend %q (valid: %v)", b, Backends())
	}
	return f, nil
}

// Backends lists the registered backend names.
func Backends() []Backend {
	out := make([]Backend, 0, len(backends))
	for b := range backends {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
