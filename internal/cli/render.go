package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tinoreading/coverpost/internal/config"
	imagepkg "github.com/tinoreading/coverpost/internal/image"
	"github.com/tinoreading/coverpost/internal/util"
)

// now is replaced in tests.
var now = time.Now

type renderOptions struct {
	ratios     ratioFlag
	all        bool
	format     formatFlag
	quality    int
	background string
	watermark  string
	backend    string
	qr         string
	output     string
	dir        string
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Composite a cover onto a branded canvas",
		Long: `Composite a cover onto a gradient canvas and write it as JPEG or PNG.

The gradient runs from the brand colour in the top-left corner to the
background stop in the bottom-right. By default the background is the mean
colour of the cover.

Files are named after the current day, e.g. TINOReading_YourSocialBook_Oct14.jpg.
When several ratios are written the ratio is appended to the name.

Examples:
  # Square post, colour sampled from the cover
  coverpost render cover.jpg

  # Story format with the fallback background, as PNG
  coverpost render --ratio 9:16 --background fallback --format png cover.jpg

  # Every configured ratio, rendered in parallel
  coverpost render --all --dir out cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, o, args[0])
		},
	}

	f := cmd.Flags()
	f.VarP(&o.ratios, "ratio", "r", "ratio preset label, repeatable (default: first preset)")
	f.BoolVarP(&o.all, "all", "a", false, "render every configured ratio")
	f.VarP(&o.format, "format", "f", "output format (jpeg, png) (default: from config)")
	f.IntVar(&o.quality, "quality", 0, "JPEG quality 1-100 (default: from config)")
	f.StringVarP(&o.background, "background", "b", config.BackgroundAuto, "gradient end colour (auto, fallback, #rrggbb)")
	f.StringVarP(&o.watermark, "watermark", "w", "", "watermark text, empty to disable (default: from config)")
	f.StringVar(&o.backend, "backend", "", "drawing backend (gg, raster) (default: from config)")
	f.StringVar(&o.qr, "qr", "", "encode this text as a QR badge in the bottom-left corner")
	f.StringVarP(&o.output, "output", "o", "", "output file (single ratio only)")
	f.StringVarP(&o.dir, "dir", "d", ".", "output directory for generated file names")
	cmd.MarkFlagsMutuallyExclusive("output", "dir")
	cmd.MarkFlagsMutuallyExclusive("all", "ratio")
	return cmd
}

type renderJob struct {
	preset config.Preset
	path   string
}

func runRender(cmd *cobra.Command, g *globalOptions, o *renderOptions, imagePath string) error {
	log := g.logger(cmd.ErrOrStderr(), "render")

	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.backend != "" {
		cfg.Backend = imagepkg.Backend(o.backend)
	}
	if cmd.Flags().Changed("watermark") {
		cfg.Watermark = o.watermark
	}
	if o.quality != 0 {
		cfg.Quality = o.quality
	}
	format := cfg.Format
	switch {
	case o.format.format != "":
		format = o.format.format
	case o.output != "":
		if f, err := imagepkg.ParseFormat(filepath.Ext(o.output)); err == nil {
			format = f
		}
	}

	presets, err := selectPresets(cfg, o)
	if err != nil {
		return err
	}
	if o.output != "" && len(presets) > 1 {
		return errors.New("--output takes a single ratio; use --dir for several")
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		return fmt.Errorf("invalid backend: %w", err)
	}

	log.Debug("loading image", "path", imagePath)
	cover, err := imagepkg.LoadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bg, err := cfg.ResolveBackground(o.background, cover)
	if err != nil {
		return err
	}
	log.Debug("background resolved", "mode", o.background, "color", bg.Hex())

	jobs := make([]renderJob, len(presets))
	day := now()
	for i, p := range presets {
		path := o.output
		if path == "" {
			label := ""
			if len(presets) > 1 {
				label = p.Ratio.Label
			}
			path = util.ExportPath(o.dir, day, format, label)
		}
		jobs[i] = renderJob{preset: p, path: path}
	}
	if o.output == "" {
		if err := util.EnsureDir(o.dir); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job renderJob) {
			defer wg.Done()
			policy := job.preset.Policy
			if o.qr != "" {
				policy.Badge.Content = o.qr
			}
			res, err := renderer.Render(imagepkg.Request{
				Cover:      cover,
				Ratio:      job.preset.Ratio,
				Background: bg,
				Watermark:  cfg.Watermark,
				Policy:     policy,
				Format:     format,
				Quality:    cfg.Quality,
			})
			if err != nil {
				errs[i] = fmt.Errorf("render %s: %w", job.preset.Ratio.Label, err)
				return
			}
			if err := os.WriteFile(job.path, res.Data, 0o644); err != nil {
				errs[i] = fmt.Errorf("failed to write output file: %w", err)
				return
			}
			log.Info("wrote post", "ratio", job.preset.Ratio.Label, "size", fmt.Sprintf("%dx%d", res.Width, res.Height), "path", job.path)
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if !g.quiet {
		for _, job := range jobs {
			fmt.Fprintln(cmd.OutOrStdout(), job.path)
		}
	}
	return nil
}

// selectPresets resolves --all and --ratio against the config.
func selectPresets(cfg config.Config, o *renderOptions) ([]config.Preset, error) {
	if o.all {
		return cfg.Presets, nil
	}
	if len(o.ratios.labels) == 0 {
		return cfg.Presets[:1], nil
	}
	out := make([]config.Preset, 0, len(o.ratios.labels))
	for _, l := range o.ratios.labels {
		p, ok := cfg.Preset(l)
		if !ok {
			return nil, fmt.Errorf("unknown ratio %q (valid: %v)", l, cfg.Labels())
		}
		out = append(out, p)
	}
	return out, nil
}
