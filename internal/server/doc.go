// Package server implements the HTTP server using Echo framework.
//
// Routes: comparison flow (index, select, finish, archive download), image
// management (upload, delete-all, TIFF conversion), static mounts for the
// pool and client assets, and observability (health, metrics, version).
// Handlers split by concern: handlers.go (rating flow), handlers_assets.go
// (pool management), handlers_health.go (probes).
package server
