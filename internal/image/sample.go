package imagepkg

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Sample returns the mean colour of img: each of R, G and B summed over every
// pixel and divided by the pixel count, rounded half up. Channels are read
// un-premultiplied and alpha is ignored, so the result is always opaque.
// Premultiplied sources such as *image.RGBA cannot recover the colour under
// zero alpha, so their fully transparent pixels count as black.
func Sample(img image.Image) (Color, error) {
	if img == nil {
		return Color{}, errors.Wrap(ErrEmptyImage, "nil image")
	}
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if b.Empty() || n == 0 {
		return Color{}, errors.Wrapf(ErrEmptyImage, "%dx%d", b.Dx(), b.Dy())
	}

	var r, g, bl uint64
	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				r += uint64(row[i])
				g += uint64(row[i+1])
				bl += uint64(row[i+2])
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				c := color.NRGBAModel.Convert(color.RGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}).(color.NRGBA)
				r += uint64(c.R)
				g += uint64(c.G)
				bl += uint64(c.B)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				r += uint64(c.R)
				g += uint64(c.G)
				bl += uint64(c.B)
			}
		}
	}

	mean := func(sum uint64) uint8 {
		v := (sum + n/2) / n
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return Opaque(mean(r), mean(g), mean(bl)), nil
}
