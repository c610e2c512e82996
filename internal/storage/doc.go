// Package storage provides the filesystem-backed stores.
//
// CSVChoiceLog implements domain.ChoiceLog on a plain comma-separated file
// with timestamped archives next to it. FilesystemAssetStore implements
// domain.AssetStore on a flat image directory.
package storage
