// Package app provides the application service layer.
//
// Orchestrates the comparison session: pair sampling, choice logging, the
// archive-and-reset transition, and the upload/delete flows. Sits between
// HTTP handlers and the storage implementations. Depends on domain
// interfaces, not concrete implementations.
package app
