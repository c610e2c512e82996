package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := ValidationError("bad input")
	assert.Equal(t, "validation: bad input", err.Error())

	cause := stderrors.New("disk full")
	wrapped := InternalError("log append failed", cause)
	assert.Equal(t, "internal: log append failed: disk full", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := InternalError("wrapper", cause)
	assert.ErrorIs(t, err, cause)
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("x"), http.StatusBadRequest},
		{NotFoundError("x"), http.StatusNotFound},
		{InternalError("x", nil), http.StatusInternalServerError},
		{&Error{Type: "unknown"}, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.err.HTTPStatus())
	}
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	orig := NotFoundError("missing")
	got := AsStructuredError(fmt.Errorf("outer: %w", orig))
	assert.Same(t, orig, got)
}

func TestAsStructuredError_DomainSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorType
	}{
		{domain.ErrAssetNotFound, TypeNotFound},
		{domain.ErrNoArchive, TypeNotFound},
		{domain.ErrInvalidUpload, TypeValidation},
		{fmt.Errorf("open image: %w", domain.ErrAssetNotFound), TypeNotFound},
		{fmt.Errorf("%w: unsupported file type", domain.ErrInvalidUpload), TypeValidation},
		{stderrors.New("disk on fire"), TypeInternal},
	}
	for _, tc := range tests {
		got := AsStructuredError(tc.err)
		assert.Equal(t, tc.want, got.Type, "error %v", tc.err)
	}
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}

func TestWithContext(t *testing.T) {
	err := ValidationError("bad").WithContext("field", "selected")
	assert.Equal(t, "selected", err.Context["field"])

	resp := err.ToResponse()
	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "selected", resp.Context["field"])
}
