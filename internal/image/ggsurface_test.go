package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGGSurfaceRejectsEmpty(t *testing.T) {
	_, err := NewGGSurface(10, -1)
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestBackendsAgree(t *testing.T) {
	brand, bg := Opaque(0x37, 0xba, 0xc2), Opaque(0xd9, 0x8c, 0x49)
	coverColour := color.NRGBA{R: 20, G: 40, B: 200, A: 255}
	req := Request{
		Cover:      uniformNRGBA(40, 60, coverColour),
		Ratio:      RatioSpec{Label: "1:1", W: 240, H: 240},
		Background: bg,
		Watermark:  "@tinoreading",
		Policy:     DefaultPolicy(1.0 / 3),
		Format:     FormatPNG,
	}

	for _, b := range Backends() {
		t.Run(string(b), func(t *testing.T) {
			factory, err := SurfaceFor(b)
			require.NoError(t, err)
			res, err := NewRenderer(Options{Brand: brand, Surface: factory}).Render(req)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(res.Data))
			require.NoError(t, err)
			assert.Equal(t, image.Pt(240, 240), img.Bounds().Size())

			assertNear(t, brand, img.At(0, 0), 4, "top-left")
			assertNear(t, bg, img.At(239, 239), 4, "bottom-right")
			// Cover spans x 80..160, y 50..170.
			assertNear(t, Color(coverColour), img.At(120, 110), 4, "cover centre")
			// Clear of the cover, its shadow and the watermark.
			for _, p := range []image.Point{{15, 225}, {220, 30}} {
				want := diagonalGradient(brand, bg, 240, 240, float64(p.X)+0.5, float64(p.Y)+0.5)
				assertNear(t, want, img.At(p.X, p.Y), 2, p.String())
			}
		})
	}
}

func TestSurfaceForUnknown(t *testing.T) {
	_, err := SurfaceFor("opengl")
	assert.Error(t, err)
	assert.Equal(t, []Backend{BackendGG, BackendRaster}, Backends())
}

func TestBackendGradientsMixChannelsLinearly(t *testing.T) {
	from, to := Opaque(0x37, 0xba, 0xc2), Opaque(0, 0, 0)
	const size = 600
	points := []image.Point{{300, 300}, {450, 450}, {150, 450}, {50, 500}, {590, 20}}

	for _, b := range Backends() {
		t.Run(string(b), func(t *testing.T) {
			factory, err := SurfaceFor(b)
			require.NoError(t, err)
			s, err := factory(size, size)
			require.NoError(t, err)
			if c, ok := s.(io.Closer); ok {
				defer c.Close()
			}
			require.NoError(t, s.FillLinearGradient(from, to))

			var buf bytes.Buffer
			require.NoError(t, s.Encode(&buf, FormatPNG, 0))
			img, err := png.Decode(&buf)
			require.NoError(t, err)

			for _, p := range points {
				want := diagonalGradient(from, to, size, size, float64(p.X)+0.5, float64(p.Y)+0.5)
				assertNear(t, want, img.At(p.X, p.Y), 2, fmt.Sprintf("%s at %v", b, p))
			}
			// Half way along the diagonal is the 8-bit midpoint, not the linear-light one.
			assertNear(t, Opaque(27, 93, 97), img.At(300, 300), 2, "midpoint")
		})
	}
}
