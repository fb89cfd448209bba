package imagepkg

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterSurface is a pure software Surface backed by an *image.NRGBA.
type RasterSurface struct {
	canvas *image.NRGBA
}

var _ Surface = (*RasterSurface)(nil)

// NewRasterSurface allocates a transparent w by h canvas.
func NewRasterSurface(w, h int) (*RasterSurface, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidRatio, "surface %dx%d", w, h)
	}
	return &RasterSurface{canvas: image.NewNRGBA(image.Rect(0, 0, w, h))}, nil
}

// Image exposes the canvas. It is only valid until the surface is reused.
func (s *RasterSurface) Image() *image.NRGBA { return s.canvas }

func (s *RasterSurface) FillLinearGradient(from, to Color) error {
	b := s.canvas.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := s.canvas.Pix[y*s.canvas.Stride:]
		for x := 0; x < b.Dx(); x++ {
			c := diagonalGradient(from, to, w, h, float64(x)+0.5, float64(y)+0.5)
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return nil
}

func (s *RasterSurface) DrawShadow(r Rect, sh Shadow) error {
	if sh.Color.A == 0 || r.W <= 0 || r.H <= 0 {
		return nil
	}
	img, origin := shadowImage(r, sh)
	dst := img.Bounds().Add(origin)
	alpha := image.NewUniform(color.Alpha{A: sh.Color.A})
	draw.DrawMask(s.canvas, dst, img, image.Point{}, alpha, image.Point{}, draw.Over)
	return nil
}

func (s *RasterSurface) DrawImage(img image.Image, r Rect, cornerRadius float64) error {
	box := r.Bounds()
	if box.Empty() {
		return nil
	}
	scaled := imaging.Resize(img, box.Dx(), box.Dy(), imaging.Lanczos)
	if cornerRadius <= 0 {
		draw.Draw(s.canvas, box, scaled, image.Point{}, draw.Over)
		return nil
	}
	mask := roundedMask(box.Dx(), box.Dy(), cornerRadius)
	draw.DrawMask(s.canvas, box, scaled, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

func (s *RasterSurface) DrawText(text string, right, top, size float64, c Color) error {
	if text == "" || c.A == 0 {
		return nil
	}
	face, err := watermarkFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	advance := font.MeasureString(face, text)
	d := &font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(right))) - advance,
			Y: fixed.I(int(math.Round(top))) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
	return nil
}

func (s *RasterSurface) Encode(w io.Writer, f Format, quality int) error {
	return imaging.Encode(w, s.canvas, f.imaging(), imaging.JPEGQuality(quality))
}

// roundedMask returns the anti-aliased coverage of a w by h rounded rectangle.
func roundedMask(w, h int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	fw, fh := float32(w), float32(h)
	r := float32(math.Min(radius, math.Min(float64(w), float64(h))/2))
	// Distance of the cubic control points from the corner.
	const kappa = 0.5522847
	c := r * (1 - kappa)

	z := vector.NewRasterizer(w, h)
	z.MoveTo(r, 0)
	z.LineTo(fw-r, 0)
	z.CubeTo(fw-c, 0, fw, c, fw, r)
	z.LineTo(fw, fh-r)
	z.CubeTo(fw, fh-c, fw-c, fh, fw-r, fh)
	z.LineTo(r, fh)
	z.CubeTo(c, fh, 0, fh-c, 0, fh-r)
	z.LineTo(0, r)
	z.CubeTo(0, c, c, 0, r, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
