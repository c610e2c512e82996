package domain

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrNoArchive     = errors.New("no archive available")
)
