package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// MaxUploadBytes caps the request body of upload endpoints.
const MaxUploadBytes int64 = 20 << 20

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/ratios", h.ratios)
		api.POST("/sample", h.sample)
		api.POST("/render", h.render)
		api.GET("/qr", h.qr)
	}
}

// NewRouter builds a gin engine with recovery, request logging and the upload
// limit installed.
func NewRouter(h *Handler) *gin.Engine {
	return newRouter(h, MaxUploadBytes)
}

func newRouter(h *Handler, limit int64) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = limit
	r.Use(gin.Recovery(), requestLogger(h.log), limitBody(limit))
	RegisterRoutes(r, h)
	return r
}

func requestLogger(log hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
