package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	apperrors "github.com/RitAreaSciencePark/ExO/internal/errors"
	"github.com/RitAreaSciencePark/ExO/internal/platform/config"
	"github.com/RitAreaSciencePark/ExO/internal/platform/correlation"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo             *echo.Echo
	config           *config.Config
	app              domain.AppService
	clock            clockwork.Clock
	startTime        time.Time
	indexTemplate    *template.Template
	finishedTemplate *template.Template
	uploadTemplate   *template.Template
}

func NewServer(cfg *config.Config, app domain.AppService, clock clockwork.Clock) (*Server, error) {
	// Parse templates once at startup
	indexTmpl, err := template.ParseFiles(filepath.Join(cfg.TemplatesDir, "index.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	finishedTmpl, err := template.ParseFiles(filepath.Join(cfg.TemplatesDir, "finished.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse finished template: %w", err)
	}
	uploadTmpl, err := template.ParseFiles(filepath.Join(cfg.TemplatesDir, "upload.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(correlation.Middleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:             e,
		config:           cfg,
		app:              app,
		clock:            clock,
		startTime:        clock.Now(),
		indexTemplate:    indexTmpl,
		finishedTemplate: finishedTmpl,
		uploadTemplate:   uploadTmpl,
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
