package imagepkg

import (
	"image"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// MaxQRSize bounds GenerateQRPNG so a request cannot allocate huge images.
const MaxQRSize = 2048

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, errors.Wrap(ErrInvalidInput, "empty qr text")
	}
	if size <= 0 || size > MaxQRSize {
		return nil, errors.Wrapf(ErrInvalidInput, "qr size %d outside 1-%d", size, MaxQRSize)
	}
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr")
	}
	return b, nil
}

// BadgeImage renders the QR code of b at exactly b.Size pixels.
func BadgeImage(b Badge) (image.Image, error) {
	q, err := qrcode.New(b.Content, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "build qr")
	}
	q.ForegroundColor = b.Foreground
	q.BackgroundColor = b.Background
	return q.Image(b.Size), nil
}
