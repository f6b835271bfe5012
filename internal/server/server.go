// Package server wires configuration, capabilities, the orchestrator, and
// the HTTP surface into a runnable service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dotpress/dotpress/internal/config"
	"github.com/dotpress/dotpress/internal/flowchart"
	"github.com/dotpress/dotpress/internal/generator"
	apihttp "github.com/dotpress/dotpress/internal/http"
	"github.com/dotpress/dotpress/internal/logging"
	"github.com/dotpress/dotpress/internal/middleware"
	"github.com/dotpress/dotpress/internal/monitoring"
	"github.com/dotpress/dotpress/internal/render"
	"github.com/dotpress/dotpress/internal/session"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg        *config.Config
	logger     *logging.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	// Working directories must exist before the first request.
	for _, dir := range []string{
		cfg.Storage.SessionDir,
		cfg.Storage.OutputDir,
		cfg.Storage.TempDir,
		cfg.Storage.TemplateDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	catalog, err := flowchart.LoadCatalog(cfg.Storage.TemplateDir)
	if err != nil {
		return nil, err
	}
	logger.Info("template catalog loaded", zap.Int("templates", catalog.Len()))

	metrics := monitoring.NewMetrics()

	svc := flowchart.NewService(
		session.NewStore(cfg.Storage.SessionDir),
		generator.New(generator.Config{
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
			Timeout: cfg.Generator.Timeout,
		}, logger),
		render.NewPipeline(logger),
		catalog,
		flowchart.Config{
			TemplatePDF: cfg.Render.TemplatePDF,
			OutputDir:   cfg.Storage.OutputDir,
			TempDir:     cfg.Storage.TempDir,
		},
		logger,
		metrics,
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(svc, cfg.Storage.OutputDir, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/flowchart/templates", handlers.ListTemplates)
	router.POST("/flowchart/create", handlers.Create)
	router.POST("/flowchart/add", handlers.Add)
	router.POST("/flowchart/load_template", handlers.LoadTemplate)

	router.GET("/outputs/:filename", handlers.GetOutputFile)

	return &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
	}, nil
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("starting server", zap.String("addr", addr))

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
