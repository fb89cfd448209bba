package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tinoreading/coverpost/internal/api"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on --addr.

Endpoints:
  GET  /api/health
  GET  /api/ratios
  POST /api/sample   multipart field "image"
  POST /api/render   multipart field "image", optional ratio, format, quality,
                     background, watermark and qr fields
  GET  /api/qr?text=&size=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := g.logger(cmd.ErrOrStderr(), "server")
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			renderer, err := cfg.Renderer()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(api.NewHandler(cfg, renderer, log))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, addr, router, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr(), "listen address (default from $PORT)")
	return cmd
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
