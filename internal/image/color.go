package imagepkg

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is an 8-bit straight-alpha colour. It satisfies color.Color.
type Color struct {
	R, G, B, A uint8
}

// Opaque returns a fully opaque colour.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// NRGBA returns c as a standard library colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// WithAlpha returns c with its alpha replaced by opacity (0..1).
func (c Color) WithAlpha(opacity float64) Color {
	c.A = clampByte(opacity * 255)
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string { return c.Hex() }

// MarshalText encodes c as hex so configs and JSON bodies stay readable.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any form ParseHex does.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses #rgb, #rrggbb and #rrggbbaa; the leading # is optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, errors.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid hex colour %q", s)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// lerp interpolates each channel independently; t is clamped to [0,1].
// diagonalGradient is the colour at (px, py) of a gradient running from
// (0, 0) to (w, h). Channels are interpolated linearly on their 8-bit values.
func diagonalGradient(from, to Color, w, h, px, py float64) Color {
	return lerp(from, to, (px*w+py*h)/(w*w+h*h))
}

func lerp(a, b Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return clampByte(float64(x) + (float64(y)-float64(x))*t)
	}
	return Color{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
