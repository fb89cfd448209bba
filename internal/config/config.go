// Package config holds the branding and layout settings shared by the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strings"

	imagepkg "github.com/tinoreading/coverpost/internal/image"
)

// Environment variables read by ApplyEnv.
const (
	EnvBrandColor    = "COVERPOST_BRAND_COLOR"
	EnvFallbackColor = "COVERPOST_FALLBACK_COLOR"
	EnvWatermark     = "COVERPOST_WATERMARK"
	EnvBackend       = "COVERPOST_BACKEND"
	EnvFormat        = "COVERPOST_FORMAT"
)

// Preset pairs an output size with the layout used for it.
type Preset struct {
	Ratio  imagepkg.RatioSpec    `json:"ratio"`
	Policy imagepkg.LayoutPolicy `json:"policy"`
}

// UnmarshalJSON fills policy fields the file leaves out from the house
// layout, so a preset only needs to spell out what it changes.
func (p *Preset) UnmarshalJSON(b []byte) error {
	type plain Preset
	v := plain{Policy: imagepkg.DefaultPolicy(1.0 / 3)}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Preset(v)
	return nil
}

// Config is read once at startup and not modified afterwards.
type Config struct {
	// BrandColor is the first gradient stop.
	BrandColor imagepkg.Color `json:"brand_color"`
	// FallbackColor is the second stop when sampling is turned off.
	FallbackColor imagepkg.Color   `json:"fallback_color"`
	Watermark     string           `json:"watermark"`
	Backend       imagepkg.Backend `json:"backend"`
	Format        imagepkg.Format  `json:"format"`
	Quality       int              `json:"quality"`
	Presets       []Preset         `json:"presets"`
}

// Default returns the built-in TINOReading settings.
func Default() Config {
	return Config{
		BrandColor:    imagepkg.Opaque(0x37, 0xba, 0xc2),
		FallbackColor: imagepkg.Opaque(0xd9, 0x8c, 0x49),
		Watermark:     "@tinoreading",
		Backend:       imagepkg.BackendRaster,
		Format:        imagepkg.FormatJPEG,
		Quality:       imagepkg.DefaultJPEGQuality,
		Presets: []Preset{
			{Ratio: imagepkg.RatioSpec{Label: "1:1", W: 2048, H: 2048}, Policy: imagepkg.DefaultPolicy(1.0 / 3)},
			{Ratio: imagepkg.RatioSpec{Label: "4:5", W: 1638, H: 2048}, Policy: imagepkg.DefaultPolicy(1.0 / 3)},
			{Ratio: imagepkg.RatioSpec{Label: "9:16", W: 1152, H: 2048}, Policy: imagepkg.DefaultPolicy(1.0 / 2)},
		},
	}
}

// Load reads a JSON file over the defaults. Fields missing from the file
// keep their default values; a presets list replaces the default list.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config path
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvBrandColor); ok && v != "" {
		col, err := imagepkg.ParseHex(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvBrandColor, err)
		}
		c.BrandColor = col
	}
	if v, ok := lookup(EnvFallbackColor); ok && v != "" {
		col, err := imagepkg.ParseHex(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvFallbackColor, err)
		}
		c.FallbackColor = col
	}
	if v, ok := lookup(EnvWatermark); ok {
		c.Watermark = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = imagepkg.Backend(strings.ToLower(v))
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		f, err := imagepkg.ParseFormat(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvFormat, err)
		}
		c.Format = f
	}
	return c, c.Validate()
}

// Validate checks every preset and the output settings.
func (c Config) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("config has no ratio presets")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Ratio.Label == "" {
			return fmt.Errorf("preset %dx%d has no label", p.Ratio.W, p.Ratio.H)
		}
		if seen[p.Ratio.Label] {
			return fmt.Errorf("duplicate preset %q", p.Ratio.Label)
		}
		seen[p.Ratio.Label] = true
		if err := p.Ratio.Validate(); err != nil {
			return err
		}
		if err := p.Policy.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", p.Ratio.Label, err)
		}
	}
	if _, err := imagepkg.SurfaceFor(c.Backend); err != nil {
		return err
	}
	if _, err := imagepkg.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality %d outside 1-100", c.Quality)
	}
	return nil
}

// Preset looks up a preset by its label.
func (c Config) Preset(label string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Ratio.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// Labels returns the preset labels in configured order.
func (c Config) Labels() []string {
	out := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, p.Ratio.Label)
	}
	return out
}

// Background modes accepted by ResolveBackground besides a hex colour.
const (
	BackgroundAuto     = "auto"
	BackgroundFallback = "fallback"
)

// ResolveBackground picks the second gradient stop. auto (or empty) samples
// the cover, fallback uses FallbackColor, anything else must be a hex colour.
func (c Config) ResolveBackground(mode string, cover image.Image) (imagepkg.Color, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", BackgroundAuto:
		return imagepkg.Sample(cover)
	case BackgroundFallback:
		return c.FallbackColor, nil
	}
	col, err := imagepkg.ParseHex(mode)
	if err != nil {
		return imagepkg.Color{}, fmt.Errorf("background %q: %w", mode, imagepkg.ErrInvalidInput)
	}
	return col, nil
}

// Renderer builds a renderer for the configured brand and backend.
func (c Config) Renderer() (*imagepkg.Renderer, error) {
	factory, err := imagepkg.SurfaceFor(c.Backend)
	if err != nil {
		return nil, err
	}
	return imagepkg.NewRenderer(imagepkg.Options{Brand: c.BrandColor, Surface: factory}), nil
}
