// Package repository provides MySQL-backed persistence for the time
// tracker's entities. Each repository wraps a *sql.DB and exposes the
// lookups and mutations its handler needs. Sentinel errors defined
// here let higher layers distinguish failure scenarios without
// inspecting driver-specific error values.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete targets a
// row that does not exist. Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")
