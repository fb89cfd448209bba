package imagepkg

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk declaring w by h RGBA
// pixels, with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(chunk)-4))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeRejectsHugeHeader(t *testing.T) {
	_, err := DecodeBytes(pngHeader(60000, 60000))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "more than")
}

func TestDecodeReplaysHeader(t *testing.T) {
	img, err := Decode(bytes.NewReader(pngBytes(t, uniformNRGBA(300, 200, color.NRGBA{R: 9, A: 255}))))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(300, 200), img.Bounds().Size())
}

func TestDecodeBytes(t *testing.T) {
	img, err := DecodeBytes(pngBytes(t, uniformNRGBA(12, 7, color.NRGBA{B: 255, A: 255})))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(12, 7), img.Bounds().Size())

	_, err = DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeBytes([]byte("not an image"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, uniformNRGBA(3, 4, color.NRGBA{A: 255})), 0o600))

	img, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 4), img.Bounds().Size())

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing", filepath.Join(dir, "missing.png")},
		{"directory", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			assert.Error(t, err)
		})
	}

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err = LoadFile(txt)
	assert.ErrorContains(t, err, "unsupported image extension")
}
