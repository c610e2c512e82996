package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	apperrors "github.com/RitAreaSciencePark/ExO/internal/errors"
	"github.com/labstack/echo/v4"
)

// --- Template rendering helper ---

// renderTemplate renders a template to a buffer first to prevent partial HTML
// from being sent if template execution fails.
func renderTemplate(c echo.Context, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "path", c.Request().URL.Path, "error", err)
		return c.String(500, "Failed to render page")
	}
	return c.HTMLBlob(200, buf.Bytes())
}

// displayURL picks the URL the browser loads for an image: TIFFs go through
// the conversion endpoint since browsers will not render them natively.
func displayURL(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tif", ".tiff":
		return "/convert/" + url.PathEscape(name)
	default:
		return "/images/" + url.PathEscape(name)
	}
}

// --- Comparison flow ---

func (s *Server) handleIndex(c echo.Context) error {
	cmp, err := s.app.NextComparison(c.Request().Context())
	if err != nil {
		return err
	}

	if cmp.Finished {
		return renderTemplate(c, s.finishedTemplate, map[string]any{
			"Archive": filepath.Base(cmp.ArchivePath),
		})
	}

	return renderTemplate(c, s.indexTemplate, map[string]any{
		"Img1":    cmp.Pair.Left,
		"Img2":    cmp.Pair.Right,
		"Img1URL": displayURL(cmp.Pair.Left),
		"Img2URL": displayURL(cmp.Pair.Right),
	})
}

func (s *Server) handleSelect(c echo.Context) error {
	selected := c.FormValue("selected")
	other := c.FormValue("other")

	if selected == "" || other == "" {
		return apperrors.ValidationError("selected and other are required")
	}
	if selected == other {
		return apperrors.ValidationError("selected and other must differ")
	}

	if err := s.app.RecordChoice(c.Request().Context(), selected, other); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleFinish(c echo.Context) error {
	archive, err := s.app.ForceFinish(c.Request().Context())
	if err != nil {
		return err
	}
	return renderTemplate(c, s.finishedTemplate, map[string]any{
		"Archive": filepath.Base(archive),
	})
}

func (s *Server) handleLatestArchive(c echo.Context) error {
	path, err := s.app.LatestArchive()
	if err != nil {
		return err
	}
	return c.Attachment(path, filepath.Base(path))
}
