package imagepkg

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// WatermarkScale selects what the watermark font size is proportional to.
type WatermarkScale int

const (
	// ScaleCoverWidth sizes the text as Factor of two thirds of the cover width.
	ScaleCoverWidth WatermarkScale = iota
	// ScaleCanvasHeight sizes the text as Factor of the canvas height.
	ScaleCanvasHeight
)

func (s WatermarkScale) String() string {
	switch s {
	case ScaleCoverWidth:
		return "cover-width"
	case ScaleCanvasHeight:
		return "canvas-height"
	default:
		return "unknown"
	}
}

func (s WatermarkScale) MarshalText() ([]byte, error) {
	if s != ScaleCoverWidth && s != ScaleCanvasHeight {
		return nil, errors.Errorf("unknown watermark scale %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *WatermarkScale) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cover-width":
		*s = ScaleCoverWidth
	case "canvas-height":
		*s = ScaleCanvasHeight
	default:
		return errors.Errorf("unknown watermark scale %q (valid: cover-width, canvas-height)", text)
	}
	return nil
}

// Shadow is a soft drop shadow cast by the cover. Blur follows the canvas
// shadowBlur convention: the Gaussian sigma is Blur/2.
type Shadow struct {
	Color   Color   `json:"color"`
	Blur    float64 `json:"blur"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// WatermarkStyle controls the attribution text under the cover.
type WatermarkStyle struct {
	Scale   WatermarkScale `json:"scale"`
	Factor  float64        `json:"factor"`
	MinSize float64        `json:"min_size"`
	MaxSize float64        `json:"max_size"`
	Margin  float64        `json:"margin"`
	Opacity float64        `json:"opacity"`
	Color   Color          `json:"color"`
}

// Badge is an optional QR code drawn in the bottom-left corner. It is
// disabled while Content is empty.
type Badge struct {
	Content    string `json:"content,omitempty"`
	Size       int    `json:"size"`
	Margin     int    `json:"margin"`
	Foreground Color  `json:"foreground"`
	Background Color  `json:"background"`
}

// Enabled reports whether the badge should be drawn.
func (b Badge) Enabled() bool { return b.Content != "" }

// LayoutPolicy holds the numeric rules that place the cover and watermark.
type LayoutPolicy struct {
	CoverWidthFraction     float64        `json:"cover_width_fraction"`
	MaxHeightFraction      float64        `json:"max_height_fraction"`
	VerticalOffsetFraction float64        `json:"vertical_offset_fraction"`
	CornerRadius           float64        `json:"corner_radius"`
	Shadow                 Shadow         `json:"shadow"`
	Watermark              WatermarkStyle `json:"watermark"`
	Badge                  Badge          `json:"badge"`
}

// DefaultPolicy returns the house layout with the given cover width fraction.
func DefaultPolicy(coverWidthFraction float64) LayoutPolicy {
	return LayoutPolicy{
		CoverWidthFraction:     coverWidthFraction,
		MaxHeightFraction:      0.9,
		VerticalOffsetFraction: 0.04,
		CornerRadius:           5,
		Shadow: Shadow{
			Color:   Color{A: 26},
			Blur:    32,
			OffsetY: 14,
		},
		Watermark: WatermarkStyle{
			Scale:   ScaleCoverWidth,
			Factor:  0.125,
			MinSize: 16,
			MaxSize: 48,
			Margin:  8,
			Opacity: 0.4,
			Color:   Opaque(0xff, 0xff, 0xff),
		},
		Badge: Badge{
			Size:       160,
			Margin:     48,
			Foreground: Opaque(0, 0, 0),
			Background: Opaque(0xff, 0xff, 0xff),
		},
	}
}

// Validate rejects policies that could push the cover off the canvas.
func (p LayoutPolicy) Validate() error {
	switch {
	case !(p.CoverWidthFraction > 0 && p.CoverWidthFraction <= 1):
		return errors.Errorf("cover width fraction %v outside (0,1]", p.CoverWidthFraction)
	case !(p.MaxHeightFraction > 0 && p.MaxHeightFraction <= 1):
		return errors.Errorf("max height fraction %v outside (0,1]", p.MaxHeightFraction)
	case p.VerticalOffsetFraction < 0 || p.VerticalOffsetFraction > (1-p.MaxHeightFraction)/2:
		return errors.Errorf("vertical offset fraction %v outside [0,%v]", p.VerticalOffsetFraction, (1-p.MaxHeightFraction)/2)
	case p.CornerRadius < 0:
		return errors.Errorf("negative corner radius %v", p.CornerRadius)
	case p.Shadow.Blur < 0:
		return errors.Errorf("negative shadow blur %v", p.Shadow.Blur)
	case p.Watermark.Factor <= 0:
		return errors.Errorf("watermark factor %v must be positive", p.Watermark.Factor)
	case p.Watermark.MinSize <= 0 || p.Watermark.MaxSize < p.Watermark.MinSize:
		return errors.Errorf("watermark size range [%v,%v] is empty", p.Watermark.MinSize, p.Watermark.MaxSize)
	case p.Watermark.Opacity < 0 || p.Watermark.Opacity > 1:
		return errors.Errorf("watermark opacity %v outside [0,1]", p.Watermark.Opacity)
	case p.Badge.Enabled() && (p.Badge.Size <= 0 || p.Badge.Margin < 0):
		return errors.Errorf("badge size %d / margin %d invalid", p.Badge.Size, p.Badge.Margin)
	}
	return nil
}

// Rect is a rectangle in canvas pixels, kept in floating point until drawn.
type Rect struct {
	X, Y, W, H float64
}

// Bounds rounds r to the pixel grid.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

// Placement is the resolved geometry of one render.
type Placement struct {
	Canvas image.Point
	Cover  Rect
	// Clamped is set when the cover hit the max height and was shrunk.
	Clamped bool
	// The watermark is right-aligned to MarkRight with its top at MarkTop.
	MarkRight float64
	MarkTop   float64
	MarkSize  float64
	// Badge is empty when the policy has no badge.
	Badge Rect
}

// Layout positions a cover of size src on the canvas described by ratio.
func Layout(src image.Point, ratio RatioSpec, p LayoutPolicy) (Placement, error) {
	if err := ratio.Validate(); err != nil {
		return Placement{}, err
	}
	if src.X <= 0 || src.Y <= 0 {
		return Placement{}, errors.Wrapf(ErrInvalidInput, "cover is %dx%d", src.X, src.Y)
	}
	if err := p.Validate(); err != nil {
		return Placement{}, errors.Wrap(ErrInvalidInput, err.Error())
	}

	w, h := float64(ratio.W), float64(ratio.H)
	aspect := float64(src.X) / float64(src.Y)

	coverW := w * p.CoverWidthFraction
	coverH := coverW / aspect
	clamped := false
	if maxH := p.MaxHeightFraction * h; coverH > maxH {
		coverH = maxH
		coverW = coverH * aspect
		clamped = true
	}
	x := (w - coverW) / 2
	y := (h-coverH)/2 - p.VerticalOffsetFraction*h

	pl := Placement{
		Canvas:    image.Pt(ratio.W, ratio.H),
		Cover:     Rect{X: x, Y: y, W: coverW, H: coverH},
		Clamped:   clamped,
		MarkRight: x + coverW,
		MarkTop:   y + coverH + p.Watermark.Margin,
		MarkSize:  watermarkSize(p.Watermark, coverW, h),
	}

	if p.Badge.Enabled() {
		size, margin := float64(p.Badge.Size), float64(p.Badge.Margin)
		if size+2*margin > math.Min(w, h) {
			return Placement{}, errors.Wrapf(ErrInvalidInput, "badge of %dpx does not fit %dx%d", p.Badge.Size, ratio.W, ratio.H)
		}
		pl.Badge = Rect{X: margin, Y: h - margin - size, W: size, H: size}
	}
	return pl, nil
}

func watermarkSize(s WatermarkStyle, coverW, canvasH float64) float64 {
	var size float64
	switch s.Scale {
	case ScaleCanvasHeight:
		size = s.Factor * canvasH
	default:
		size = s.Factor * coverW * 2 / 3
	}
	return math.Max(s.MinSize, math.Min(s.MaxSize, math.Floor(size)))
}
