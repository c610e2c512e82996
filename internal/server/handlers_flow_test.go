package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(srv, req)
}

// --- handleIndex ---

func TestHandleIndex_ServesPair(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Compare a.png vs b.png")
	assert.Contains(t, rec.Body.String(), "[/images/a.png]")
}

func TestHandleIndex_TIFFGoesThroughConversion(t *testing.T) {
	app := &mockAppService{
		nextComparisonFn: func(context.Context) (domain.Comparison, error) {
			return domain.Comparison{Pair: domain.Pair{Left: "scan.tiff", Right: "b.png"}}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[/convert/scan.tiff]")
	assert.Contains(t, rec.Body.String(), "[/images/b.png]")
}

func TestHandleIndex_Finished(t *testing.T) {
	app := &mockAppService{
		nextComparisonFn: func(context.Context) (domain.Comparison, error) {
			return domain.Comparison{Finished: true, ArchivePath: "/data/selection_2025_03_25_143000.csv"}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Finished selection_2025_03_25_143000.csv")
}

func TestHandleIndex_StorageErrorIs500(t *testing.T) {
	app := &mockAppService{
		nextComparisonFn: func(context.Context) (domain.Comparison, error) {
			return domain.Comparison{}, errors.New("disk on fire")
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

// --- handleSelect ---

func TestHandleSelect_RecordsAndRedirects(t *testing.T) {
	var gotSelected, gotOther string
	app := &mockAppService{
		recordChoiceFn: func(_ context.Context, selected, other string) error {
			gotSelected, gotOther = selected, other
			return nil
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{}
	form.Set("selected", "a.png")
	form.Set("other", "b.png")
	rec := postForm(srv, "/select", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "a.png", gotSelected)
	assert.Equal(t, "b.png", gotOther)
}

func TestHandleSelect_MissingFields(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	form := url.Values{}
	form.Set("selected", "a.png")
	rec := postForm(srv, "/select", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "selected and other are required")
}

func TestHandleSelect_IdenticalIdentifiers(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	form := url.Values{}
	form.Set("selected", "a.png")
	form.Set("other", "a.png")
	rec := postForm(srv, "/select", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must differ")
}

func TestHandleSelect_AppendErrorIs500(t *testing.T) {
	app := &mockAppService{
		recordChoiceFn: func(context.Context, string, string) error {
			return errors.New("disk full")
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{}
	form.Set("selected", "a.png")
	form.Set("other", "b.png")
	rec := postForm(srv, "/select", form)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- handleFinish ---

func TestHandleFinish(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := postForm(srv, "/finish", url.Values{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Finished selection_2025_03_25_143000.csv")
}

// --- handleLatestArchive ---

func TestHandleLatestArchive_NoneIs404(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/archives/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLatestArchive_Download(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selection_2025_03_25_143000.csv")
	require.NoError(t, os.WriteFile(path, []byte("selected,other\na.png,b.png\n"), 0o644))

	app := &mockAppService{
		latestArchiveFn: func() (string, error) { return path, nil },
	}
	srv := newTestServer(t, app)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/archives/latest", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "selection_2025_03_25_143000.csv")
	assert.Equal(t, "selected,other\na.png,b.png\n", rec.Body.String())
}
