package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tubetap/tubetap/pkg/cli/config"
	controller "github.com/tubetap/tubetap/pkg/controller/http"
	"github.com/tubetap/tubetap/pkg/infra/ytdlp"
	"github.com/tubetap/tubetap/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		extractorCfg config.Extractor
	)

	flags := append(serverCfg.Flags(), extractorCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the JSON API server (extraction endpoint disabled)",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, serverCfg, extractorCfg, false)
		},
	}
}

func cmdUI() *cli.Command {
	var (
		serverCfg    config.Server
		extractorCfg config.Extractor
	)

	flags := append(serverCfg.Flags(), extractorCfg.Flags()...)

	return &cli.Command{
		Name:  "ui",
		Usage: "Start the interactive web UI with the full extraction pipeline",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, serverCfg, extractorCfg, true)
		},
	}
}

func newExtractor(cfg config.Extractor) *ytdlp.Client {
	var opts []ytdlp.Option
	if cfg.CookiesPath != "" {
		opts = append(opts, ytdlp.WithCookies(cfg.CookiesPath))
	}
	if cfg.FFmpegPath != "" {
		opts = append(opts, ytdlp.WithFFmpegLocation(cfg.FFmpegPath))
	}
	return ytdlp.New(opts...)
}

func runServer(ctx context.Context, serverCfg config.Server, extractorCfg config.Extractor, uiEnabled bool) error {
	logger := ctxlog.From(ctx)

	logger.Info("Starting tubetap server",
		slog.String("addr", serverCfg.Addr),
		slog.Bool("ui", uiEnabled),
	)

	// Create use cases
	extractor := newExtractor(extractorCfg)
	metadataUC := usecase.NewMetadata(extractor)
	extractionUC := usecase.NewExtraction(extractor)

	// Create HTTP server with options
	server, err := controller.NewServer(
		ctx,
		metadataUC,
		extractionUC,
		controller.WithAddr(serverCfg.Addr),
		controller.WithUI(uiEnabled),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create HTTP server")
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", slog.Any("error", err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	case sig := <-sigChan:
		logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shutdown server gracefully")
	}

	logger.Info("Server shutdown complete")
	return nil
}
