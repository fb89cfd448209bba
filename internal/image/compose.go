// Package imagepkg composites book covers onto branded gradient canvases.
package imagepkg

import (
	"bytes"
	"image"
	"io"

	"github.com/pkg/errors"
)

// Options configure a Renderer. They are fixed for its lifetime.
type Options struct {
	// Brand is the first gradient stop, at the top-left corner.
	Brand Color
	// Surface allocates canvases. Nil means the raster backend.
	Surface SurfaceFactory
}

// Renderer composites covers. It holds no per-render state and may be used
// from several goroutines at once.
type Renderer struct {
	brand      Color
	newSurface SurfaceFactory
}

// NewRenderer returns a Renderer for opts.
func NewRenderer(opts Options) *Renderer {
	if opts.Surface == nil {
		opts.Surface = backends[BackendRaster]
	}
	return &Renderer{brand: opts.Brand, newSurface: opts.Surface}
}

// Brand returns the colour of the first gradient stop.
func (r *Renderer) Brand() Color { return r.brand }

// Request is the input of one render.
type Request struct {
	Cover image.Image
	Ratio RatioSpec
	// Background is the second gradient stop, usually Sample(Cover).
	Background Color
	// Watermark is drawn under the cover; empty skips it.
	Watermark string
	Policy    LayoutPolicy
	// Format defaults to JPEG.
	Format Format
	// Quality is the JPEG quality, 1-100; zero means DefaultJPEGQuality.
	Quality int
}

// Result is an encoded composite.
type Result struct {
	Data   []byte
	Format Format
	MIME   string
	Width  int
	Height int
}

// Render draws the gradient, the cover with its shadow, the watermark and
// the optional badge, then encodes the canvas.
func (r *Renderer) Render(req Request) (Result, error) {
	if err := req.Ratio.Validate(); err != nil {
		return Result{}, err
	}
	if req.Cover == nil {
		return Result{}, errors.Wrap(ErrInvalidInput, "nil cover")
	}
	format := req.Format
	if format == "" {
		format = FormatJPEG
	}
	if format != FormatJPEG && format != FormatPNG {
		return Result{}, errors.Wrapf(ErrInvalidInput, "format %q", format)
	}
	quality := req.Quality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return Result{}, errors.Wrapf(ErrInvalidInput, "jpeg quality %d outside 1-100", quality)
	}

	pl, err := Layout(req.Cover.Bounds().Size(), req.Ratio, req.Policy)
	if err != nil {
		return Result{}, err
	}

	s, err := r.newSurface(req.Ratio.W, req.Ratio.H)
	if err != nil {
		return Result{}, errors.Wrap(err, "allocate surface")
	}
	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}

	if err := r.draw(s, req, pl); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, format, quality); err != nil {
		return Result{}, errors.WithStack(&encodeError{format: format, err: err})
	}
	return Result{
		Data:   buf.Bytes(),
		Format: format,
		MIME:   format.MIME(),
		Width:  req.Ratio.W,
		Height: req.Ratio.H,
	}, nil
}

func (r *Renderer) draw(s Surface, req Request, pl Placement) error {
	p := req.Policy
	if err := s.FillLinearGradient(r.brand, req.Background); err != nil {
		return errors.Wrap(err, "draw gradient")
	}
	if err := s.DrawShadow(pl.Cover, p.Shadow); err != nil {
		return errors.Wrap(err, "draw shadow")
	}
	if err := s.DrawImage(req.Cover, pl.Cover, p.CornerRadius); err != nil {
		return errors.Wrap(err, "draw cover")
	}
	if req.Watermark != "" {
		c := p.Watermark.Color.WithAlpha(p.Watermark.Opacity)
		if err := s.DrawText(req.Watermark, pl.MarkRight, pl.MarkTop, pl.MarkSize, c); err != nil {
			return errors.Wrap(err, "draw watermark")
		}
	}
	if p.Badge.Enabled() {
		qr, err := BadgeImage(p.Badge)
		if err != nil {
			return errors.Wrap(ErrInvalidInput, err.Error())
		}
		if err := s.DrawImage(qr, pl.Badge, 0); err != nil {
			return errors.Wrap(err, "draw badge")
		}
	}
	return nil
}
