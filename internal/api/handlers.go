package api

import (
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/tinoreading/coverpost/internal/config"
	imagepkg "github.com/tinoreading/coverpost/internal/image"
	"github.com/tinoreading/coverpost/internal/util"
)

// Handler serves the composer endpoints. It is safe for concurrent use.
type Handler struct {
	cfg      config.Config
	renderer *imagepkg.Renderer
	log      hclog.Logger
	now      func() time.Time
}

// NewHandler returns a Handler rendering with r and the presets of cfg.
func NewHandler(cfg config.Config, r *imagepkg.Renderer, log hclog.Logger) *Handler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Handler{cfg: cfg, renderer: r, log: log, now: time.Now}
}

type ratioResponse struct {
	Label              string  `json:"label"`
	W                  int     `json:"w"`
	H                  int     `json:"h"`
	CoverWidthFraction float64 `json:"cover_width_fraction"`
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ratios(c *gin.Context) {
	out := make([]ratioResponse, 0, len(h.cfg.Presets))
	for _, p := range h.cfg.Presets {
		out = append(out, ratioResponse{
			Label:              p.Ratio.Label,
			W:                  p.Ratio.W,
			H:                  p.Ratio.H,
			CoverWidthFraction: p.Policy.CoverWidthFraction,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "ratios": out})
}

// sample returns the mean colour of the uploaded "image" field.
func (h *Handler) sample(c *gin.Context) {
	cover, err := readCover(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	col, err := imagepkg.Sample(cover)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"color": col.Hex()})
}

// render composites the uploaded cover. Form fields ratio, format, quality,
// background, watermark and qr override the configured defaults.
func (h *Handler) render(c *gin.Context) {
	cover, err := readCover(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	label := c.DefaultPostForm("ratio", h.cfg.Presets[0].Ratio.Label)
	preset, ok := h.cfg.Preset(label)
	if !ok {
		h.fail(c, errors.Wrapf(imagepkg.ErrInvalidRatio, "unknown ratio %q", label))
		return
	}

	format := h.cfg.Format
	if v := c.PostForm("format"); v != "" {
		if format, err = imagepkg.ParseFormat(v); err != nil {
			h.fail(c, errors.Wrap(imagepkg.ErrInvalidInput, err.Error()))
			return
		}
	}
	quality := h.cfg.Quality
	if v := c.PostForm("quality"); v != "" {
		if quality, err = strconv.Atoi(v); err != nil {
			h.fail(c, errors.Wrapf(imagepkg.ErrInvalidInput, "quality %q", v))
			return
		}
	}

	bg, err := h.cfg.ResolveBackground(c.PostForm("background"), cover)
	if err != nil {
		h.fail(c, err)
		return
	}
	watermark := h.cfg.Watermark
	if v, ok := c.GetPostForm("watermark"); ok {
		watermark = v
	}
	policy := preset.Policy
	if v := c.PostForm("qr"); v != "" {
		policy.Badge.Content = v
	}

	res, err := h.renderer.Render(imagepkg.Request{
		Cover:      cover,
		Ratio:      preset.Ratio,
		Background: bg,
		Watermark:  watermark,
		Policy:     policy,
		Format:     format,
		Quality:    quality,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Debug("rendered", "ratio", preset.Ratio.Label, "background", bg.Hex(), "bytes", len(res.Data))

	c.Header("Content-Disposition", util.AttachmentHeader(util.ExportFileName(h.now(), res.Format)))
	c.Data(http.StatusOK, res.MIME, res.Data)
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qr(c *gin.Context) {
	size := 400
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.fail(c, errors.Wrapf(imagepkg.ErrInvalidInput, "size %q", v))
			return
		}
		size = n
	}
	b, err := imagepkg.GenerateQRPNG(c.Query("text"), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func readCover(c *gin.Context) (image.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, errors.Wrapf(imagepkg.ErrInvalidInput, "multipart field \"image\": %v", err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer f.Close()
	return imagepkg.Decode(f)
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, imagepkg.ErrEncodeFailure):
		return http.StatusInternalServerError
	case errors.Is(err, imagepkg.ErrInvalidRatio),
		errors.Is(err, imagepkg.ErrInvalidInput),
		errors.Is(err, imagepkg.ErrEmptyImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		h.log.Debug("rejected request", "path", c.Request.URL.Path, "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
