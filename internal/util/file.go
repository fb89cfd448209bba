package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	imagepkg "github.com/tinoreading/coverpost/internal/image"
)

// ExportPrefix starts every exported file name.
const ExportPrefix = "TINOReading_YourSocialBook_"

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// ExportFileName names an export after the day it was made, e.g.
// TINOReading_YourSocialBook_Oct14.jpg.
func ExportFileName(t time.Time, f imagepkg.Format) string {
	return fmt.Sprintf("%s%s%d%s", ExportPrefix, t.Format("Jan"), t.Day(), f.Ext())
}

// ExportPath joins dir and the export name. A label is appended before the
// extension when several ratios are written on the same day.
func ExportPath(dir string, t time.Time, f imagepkg.Format, label string) string {
	name := ExportFileName(t, f)
	if label != "" {
		ext := filepath.Ext(name)
		name = name[:len(name)-len(ext)] + "_" + SafeLabel(label) + ext
	}
	return filepath.Join(dir, name)
}

// SafeLabel turns a ratio label such as "9:16" into "9x16".
func SafeLabel(label string) string {
	out := make([]byte, 0, len(label))
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-':
			out = append(out, c)
		case c == ':' || c == '/':
			out = append(out, 'x')
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
