package imagepkg

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// The watermark is set in Go Bold. The parsed font is read-only and shared.
var (
	watermarkFontOnce sync.Once
	watermarkFont     *opentype.Font
	watermarkFontErr  error
)

func watermarkFace(size float64) (font.Face, error) {
	watermarkFontOnce.Do(func() {
		watermarkFont, watermarkFontErr = opentype.Parse(gobold.TTF)
	})
	if watermarkFontErr != nil {
		return nil, errors.Wrap(watermarkFontErr, "parse watermark font")
	}
	face, err := opentype.NewFace(watermarkFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "watermark face at %vpx", size)
	}
	return face, nil
}
