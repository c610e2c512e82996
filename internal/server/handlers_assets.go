package server

import (
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/RitAreaSciencePark/ExO/internal/errors"
	"github.com/RitAreaSciencePark/ExO/internal/imaging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleUploadPage(c echo.Context) error {
	return renderTemplate(c, s.uploadTemplate, nil)
}

// handleUploadImages stores a multipart batch of images. The batch is not
// atomic: files stored before a rejected one stay in the pool.
func (s *Server) handleUploadImages(c echo.Context) error {
	if cl := c.Request().ContentLength; cl > s.config.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "upload exceeds size limit")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.ValidationError("multipart form with an \"images\" field is required")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return apperrors.ValidationError("no files in \"images\" field")
	}

	ctx := c.Request().Context()
	batchID := uuid.NewString()
	logger := slog.With("batch_id", batchID, "files", len(files))

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return apperrors.InternalError("failed to read uploaded file", err).WithContext("file", fh.Filename)
		}
		err = s.app.StoreAsset(fh.Filename, src)
		_ = src.Close()
		if err != nil {
			logger.WarnContext(ctx, "Upload item rejected", "file", fh.Filename, "error", err)
			return apperrors.AsStructuredError(err).WithContext("file", fh.Filename).WithContext("batch_id", batchID)
		}
	}

	logger.InfoContext(ctx, "Upload batch stored")
	return c.Redirect(http.StatusSeeOther, "/upload")
}

func (s *Server) handleDeleteAllImages(c echo.Context) error {
	if err := s.app.DeleteAllAssets(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/upload")
}

// handleConvertImage streams a pool image re-encoded as PNG.
func (s *Server) handleConvertImage(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return apperrors.ValidationError("bad image name")
	}

	r, err := s.app.OpenAsset(name)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	out, err := imaging.ToPNG(r)
	if err != nil {
		return apperrors.InternalError("failed to convert image", err).WithContext("image", name)
	}
	return c.Blob(http.StatusOK, "image/png", out)
}
