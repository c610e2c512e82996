package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/RitAreaSciencePark/ExO/internal/platform/version"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := s.clock.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"images_dir", s.checkImagesDir},
		{"data_dir", s.checkDataDir},
	}

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			return c.JSON(503, map[string]any{
				"status":       "unhealthy",
				"failed_check": check.name,
				"error":        err.Error(),
			})
		}
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

// checkImagesDir verifies the pool directory is listable.
func (s *Server) checkImagesDir(context.Context) error {
	info, err := os.Stat(s.config.ImagesDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.config.ImagesDir)
	}
	return nil
}

// checkDataDir verifies the log directory accepts writes.
func (s *Server) checkDataDir(context.Context) error {
	f, err := os.CreateTemp(s.config.DataDir, ".readiness-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
