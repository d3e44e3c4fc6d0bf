package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tubetap/tubetap/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr      string
	uiEnabled bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithUI enables the embedded single-page UI and the real extraction
// endpoints. Without it the download endpoint declines every request, which
// is the mode meant for hosts with execution-time and filesystem limits.
func WithUI(enabled bool) Option {
	return func(c *config) {
		c.uiEnabled = enabled
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	metadataUC interfaces.MetadataUseCase,
	extractionUC interfaces.ExtractionUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/api/health", handleHealth)

	// Metadata lookup
	infoHandler := NewInfoHandler(metadataUC)
	router.Post("/api/info", infoHandler.Handle)

	// Extraction: real pipeline in UI mode, fixed refusal otherwise
	if cfg.uiEnabled {
		downloadHandler := NewDownloadHandler(extractionUC)
		router.Post("/api/download", downloadHandler.Handle)
		router.Get("/api/extract", downloadHandler.HandleStream)
		router.Get("/", handleIndex)
	} else {
		router.Post("/api/download", handleDownloadDisabled)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
