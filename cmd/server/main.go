package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/tinoreading/coverpost/internal/api"
	"github.com/tinoreading/coverpost/internal/config"
	"github.com/tinoreading/coverpost/internal/logging"
)

func main() {
	log := logging.New("server", os.Getenv("COVERPOST_DEBUG") != "", false)

	cfg := config.Default()
	if path := os.Getenv("COVERPOST_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Error("failed to load config", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg, err := cfg.ApplyEnv(os.LookupEnv)
	if err != nil {
		log.Error("invalid environment", "error", err)
		os.Exit(1)
	}
	renderer, err := cfg.Renderer()
	if err != nil {
		log.Error("failed to build renderer", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(api.NewHandler(cfg, renderer, log))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := api.Serve(ctx, ":"+port, r, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
