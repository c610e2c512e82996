package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Comparison flow
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/select", s.handleSelect)
	s.echo.POST("/finish", s.handleFinish)
	s.echo.GET("/archives/latest", s.handleLatestArchive)

	// Image pool management
	s.echo.GET("/upload", s.handleUploadPage)
	s.echo.POST("/images", s.handleUploadImages)
	s.echo.POST("/images/delete", s.handleDeleteAllImages)
	s.echo.GET("/convert/:name", s.handleConvertImage)

	// Static mounts (raw pool files and client assets)
	s.echo.Static("/images", s.config.ImagesDir)
	s.echo.Static("/static", s.config.StaticDir)
}
