package server

import (
	"context"
	"html/template"
	"io"
	"testing"
	"time"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	apperrors "github.com/RitAreaSciencePark/ExO/internal/errors"
	"github.com/RitAreaSciencePark/ExO/internal/platform/config"
	"github.com/RitAreaSciencePark/ExO/internal/platform/correlation"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// --- Mock implementations ---

type mockAppService struct {
	nextComparisonFn  func(ctx context.Context) (domain.Comparison, error)
	recordChoiceFn    func(ctx context.Context, selected, other string) error
	forceFinishFn     func(ctx context.Context) (string, error)
	latestArchiveFn   func() (string, error)
	openAssetFn       func(name string) (io.ReadCloser, error)
	storeAssetFn      func(name string, r io.Reader) error
	deleteAllAssetsFn func(ctx context.Context) error
}

func (m *mockAppService) NextComparison(ctx context.Context) (domain.Comparison, error) {
	if m.nextComparisonFn != nil {
		return m.nextComparisonFn(ctx)
	}
	return domain.Comparison{Pair: domain.Pair{Left: "a.png", Right: "b.png"}}, nil
}

func (m *mockAppService) RecordChoice(ctx context.Context, selected, other string) error {
	if m.recordChoiceFn != nil {
		return m.recordChoiceFn(ctx, selected, other)
	}
	return nil
}

func (m *mockAppService) ForceFinish(ctx context.Context) (string, error) {
	if m.forceFinishFn != nil {
		return m.forceFinishFn(ctx)
	}
	return "selection_2025_03_25_143000.csv", nil
}

func (m *mockAppService) LatestArchive() (string, error) {
	if m.latestArchiveFn != nil {
		return m.latestArchiveFn()
	}
	return "", domain.ErrNoArchive
}

func (m *mockAppService) OpenAsset(name string) (io.ReadCloser, error) {
	if m.openAssetFn != nil {
		return m.openAssetFn(name)
	}
	return nil, domain.ErrAssetNotFound
}

func (m *mockAppService) StoreAsset(name string, r io.Reader) error {
	if m.storeAssetFn != nil {
		return m.storeAssetFn(name, r)
	}
	return nil
}

func (m *mockAppService) DeleteAllAssets(ctx context.Context) error {
	if m.deleteAllAssetsFn != nil {
		return m.deleteAllAssetsFn(ctx)
	}
	return nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app domain.AppService) *Server {
	t.Helper()

	indexTmpl := template.Must(template.New("index.html").Parse(`Compare {{.Img1}} vs {{.Img2}} [{{.Img1URL}}] [{{.Img2URL}}]`))
	finishedTmpl := template.Must(template.New("finished.html").Parse(`Finished {{.Archive}}`))
	uploadTmpl := template.Must(template.New("upload.html").Parse(`Upload page`))

	e := echo.New()
	// Match production middleware so error mapping is exercised
	e.Use(middleware.Recover())
	e.Use(correlation.Middleware())
	e.Use(apperrors.Middleware())

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 25, 14, 30, 0, 0, time.UTC))

	srv := &Server{
		echo: e,
		config: &config.Config{
			ImagesDir:      t.TempDir(),
			DataDir:        t.TempDir(),
			StaticDir:      t.TempDir(),
			MaxUploadBytes: 1 << 20,
		},
		app:              app,
		clock:            clock,
		startTime:        clock.Now(),
		indexTemplate:    indexTmpl,
		finishedTemplate: finishedTmpl,
		uploadTemplate:   uploadTmpl,
	}

	srv.registerRoutes()
	return srv
}
