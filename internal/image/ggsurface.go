package imagepkg

import (
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	ggFontOnce sync.Once
	ggFont     *text.FontSource
	ggFontErr  error
)

// GGSurface draws through a gogpu/gg software context.
type GGSurface struct {
	dc   *gg.Context
	w, h int
}

var _ Surface = (*GGSurface)(nil)

// NewGGSurface allocates a gg context of w by h pixels.
func NewGGSurface(w, h int) (*GGSurface, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidRatio, "surface %dx%d", w, h)
	}
	return &GGSurface{dc: gg.NewContext(w, h), w: w, h: h}, nil
}

// Close releases the gg context.
func (s *GGSurface) Close() error { return s.dc.Close() }

// Image returns a snapshot of the context.
func (s *GGSurface) Image() image.Image { return s.dc.Image() }

func (s *GGSurface) FillLinearGradient(from, to Color) error {
	// gg's gradient brushes mix in linear light; the backdrop is mixed on the
	// 8-bit sRGB values like the raster surface. gg samples at pixel centres.
	w, h := float64(s.w), float64(s.h)
	s.dc.SetFillBrush(gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		return ggColor(diagonalGradient(from, to, w, h, x, y))
	}))
	s.dc.DrawRectangle(0, 0, float64(s.w), float64(s.h))
	return errors.Wrap(s.dc.Fill(), "fill gradient")
}

func (s *GGSurface) DrawShadow(r Rect, sh Shadow) error {
	if sh.Color.A == 0 || r.W <= 0 || r.H <= 0 {
		return nil
	}
	img, origin := shadowImage(r, sh)
	s.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             float64(origin.X),
		Y:             float64(origin.Y),
		Interpolation: gg.InterpBilinear,
		Opacity:       float64(sh.Color.A) / 255,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

// DrawImage fills a rounded-rectangle path with an image pattern. gg samples
// patterns in device space, so the scaled cover is placed on a canvas-sized
// layer first.
func (s *GGSurface) DrawImage(img image.Image, r Rect, cornerRadius float64) error {
	box := r.Bounds()
	if box.Empty() {
		return nil
	}
	scaled := resize.Resize(uint(box.Dx()), uint(box.Dy()), img, resize.Lanczos3)
	layer := imaging.Paste(imaging.New(s.w, s.h, color.NRGBA{}), scaled, box.Min)

	s.dc.SetFillPattern(s.dc.CreateImagePattern(gg.ImageBufFromImage(layer), 0, 0, s.w, s.h))
	radius := math.Min(cornerRadius, math.Min(float64(box.Dx()), float64(box.Dy()))/2)
	if radius > 0 {
		s.dc.DrawRoundedRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()), radius)
	} else {
		s.dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
	}
	return errors.Wrap(s.dc.Fill(), "fill cover")
}

func (s *GGSurface) DrawText(str string, right, top, size float64, c Color) error {
	if str == "" || c.A == 0 {
		return nil
	}
	ggFontOnce.Do(func() {
		ggFont, ggFontErr = text.NewFontSource(gobold.TTF)
	})
	if ggFontErr != nil {
		return errors.Wrap(ggFontErr, "load watermark font")
	}
	s.dc.SetFont(ggFont.Face(size))
	s.dc.SetFillBrush(gg.Solid(ggColor(c)))
	// Anchor (1, 1) puts the right edge at x and the top of the line at y.
	s.dc.DrawStringAnchored(str, math.Round(right), math.Round(top), 1, 1)
	return nil
}

func (s *GGSurface) Encode(w io.Writer, f Format, quality int) error {
	if f == FormatPNG {
		return s.dc.EncodePNG(w)
	}
	return s.dc.EncodeJPEG(w, quality)
}

// ggColor converts without premultiplying; gg.FromColor would go through
// color.Color.RGBA and darken translucent colours.
func ggColor(c Color) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
