package imagepkg

import (
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// DefaultJPEGQuality is used when a request leaves Quality at zero.
const DefaultJPEGQuality = 100

// ParseFormat accepts jpeg, jpg and png in any case, with or without a dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", errors.Errorf("unsupported output format %q (valid: jpeg, png)", s)
	}
}

// MIME returns the content type of f.
func (f Format) MIME() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Ext returns the file extension of f, including the dot.
func (f Format) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

func (f Format) imaging() imaging.Format {
	if f == FormatPNG {
		return imaging.PNG
	}
	return imaging.JPEG
}
