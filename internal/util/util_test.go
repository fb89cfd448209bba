package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/tinoreading/coverpost/internal/image"
)

func TestExportFileName(t *testing.T) {
	tests := []struct {
		day    time.Time
		format imagepkg.Format
		want   string
	}{
		{time.Date(2024, time.October, 14, 9, 0, 0, 0, time.UTC), imagepkg.FormatJPEG, "TINOReading_YourSocialBook_Oct14.jpg"},
		{time.Date(2025, time.March, 3, 23, 59, 0, 0, time.UTC), imagepkg.FormatJPEG, "TINOReading_YourSocialBook_Mar3.jpg"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), imagepkg.FormatPNG, "TINOReading_YourSocialBook_Dec31.png"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFileName(tt.day, tt.format))
		})
	}
}

func TestExportPath(t *testing.T) {
	day := time.Date(2024, time.October, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "TINOReading_YourSocialBook_Oct14.jpg"),
		ExportPath("out", day, imagepkg.FormatJPEG, ""))
	assert.Equal(t, filepath.Join("out", "TINOReading_YourSocialBook_Oct14_9x16.png"),
		ExportPath("out", day, imagepkg.FormatPNG, "9:16"))
}

func TestSafeLabel(t *testing.T) {
	assert.Equal(t, "4x5", SafeLabel("4:5"))
	assert.Equal(t, "story_wide", SafeLabel("story wide"))
	assert.Equal(t, "a-b", SafeLabel("a-b"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureDir(dir))
}

func TestAttachmentHeader(t *testing.T) {
	assert.Equal(t, "attachment; filename=TINOReading_YourSocialBook_Oct14.jpg",
		AttachmentHeader("TINOReading_YourSocialBook_Oct14.jpg"))
	assert.Equal(t, `attachment; filename="my cover.png"`, AttachmentHeader("my cover.png"))
}
