package imagepkg

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	_ "golang.org/x/image/webp" // Register WebP format
)

// SupportedInputExtensions lists the cover file types Decode understands.
func SupportedInputExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

// MaxCoverPixels bounds the decoded size of a cover. Headers declaring more
// are rejected before any pixel buffer is allocated.
const MaxCoverPixels = 40_000_000

// Decode reads a cover image, applying its EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "decode image: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "image header declares %dx%d", cfg.Width, cfg.Height)
	}
	if n := int64(cfg.Width) * int64(cfg.Height); n > MaxCoverPixels {
		return nil, errors.Wrapf(ErrInvalidInput, "image is %dx%d, more than %d pixels", cfg.Width, cfg.Height, MaxCoverPixels)
	}

	img, err := imaging.Decode(io.MultiReader(&head, r), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "decode image: %v", err)
	}
	if img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidInput, "decoded image has no pixels")
	}
	return img, nil
}

// DecodeBytes is Decode over an in-memory buffer, e.g. a pasted clipboard image.
func DecodeBytes(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty image data")
	}
	return Decode(bytes.NewReader(b))
}

// LoadFile decodes the cover stored at path.
func LoadFile(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("image path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("image file not found: %s", path)
		}
		return nil, errors.Wrap(err, "stat image file")
	}
	if info.IsDir() {
		return nil, errors.Errorf("path is a directory, not a file: %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range SupportedInputExtensions() {
		if e == ext {
			supported = true
			break
		}
	}
	if !supported {
		return nil, errors.Errorf("unsupported image extension %q", ext)
	}

	f, err := os.Open(path) // #nosec G304 - user-specified cover path
	if err != nil {
		return nil, errors.Wrap(err, "open image file")
	}
	defer f.Close()
	return Decode(f)
}
