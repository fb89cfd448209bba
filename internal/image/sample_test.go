package imagepkg

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func noiseNRGBA(seed int64, w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	return img
}

func TestSampleUniformRed(t *testing.T) {
	got, err := Sample(uniformNRGBA(10, 10, color.NRGBA{R: 255, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, Opaque(255, 0, 0), got)
}

func TestSampleUniformColours(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want Color
	}{
		{
			name: "nrgba",
			img:  uniformNRGBA(7, 3, color.NRGBA{R: 12, G: 200, B: 99, A: 255}),
			want: Opaque(12, 200, 99),
		},
		{
			name: "rgba",
			img: func() image.Image {
				img := image.NewRGBA(image.Rect(0, 0, 4, 4))
				for i := 0; i < len(img.Pix); i += 4 {
					img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0x37, 0xba, 0xc2, 0xff
				}
				return img
			}(),
			want: Opaque(0x37, 0xba, 0xc2),
		},
		{
			name: "gray",
			img: func() image.Image {
				img := image.NewGray(image.Rect(0, 0, 5, 5))
				for i := range img.Pix {
					img.Pix[i] = 128
				}
				return img
			}(),
			want: Opaque(128, 128, 128),
		},
		{
			name: "sub image",
			img:  uniformNRGBA(20, 20, color.NRGBA{G: 10, A: 255}).SubImage(image.Rect(5, 5, 9, 12)),
			want: Opaque(0, 10, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sample(tt.img)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSampleIgnoresAlpha(t *testing.T) {
	// A half-transparent pixel still contributes its full straight colour.
	img := uniformNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	got, err := Sample(img)
	require.NoError(t, err)
	assert.Equal(t, Opaque(200, 100, 50), got)
}

func TestSampleRoundsHalfUp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 10, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 13, B: 254, A: 255})
	got, err := Sample(img)
	require.NoError(t, err)
	assert.Equal(t, Opaque(1, 12, 255), got)
}

func TestSampleDeterministicAndBounded(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		img := noiseNRGBA(seed, 33, 17)
		a, err := Sample(img)
		require.NoError(t, err)
		b, err := Sample(img)
		require.NoError(t, err)
		assert.Equal(t, a, b, "seed %d", seed)
		assert.Equal(t, uint8(255), a.A)
	}
}

func TestSampleEmpty(t *testing.T) {
	_, err := Sample(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Sample(image.NewNRGBA(image.Rect(0, 0, 10, 0)))
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Sample(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestSampleTransparentPixels(t *testing.T) {
	straight := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(straight.Pix, []uint8{200, 100, 50, 0, 200, 100, 50, 255})
	got, err := Sample(straight)
	require.NoError(t, err)
	assert.Equal(t, Opaque(200, 100, 50), got)

	// Premultiplied storage keeps nothing under zero alpha.
	premul := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(premul.Pix, []uint8{0, 0, 0, 0, 200, 100, 50, 255})
	got, err = Sample(premul)
	require.NoError(t, err)
	assert.Equal(t, Opaque(100, 50, 25), got)
}
