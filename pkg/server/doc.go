// Package server exposes the coordinator over HTTP: status, conflict
// scans, candidate matching, reassignment planning, cost estimation, and
// Prometheus metrics. It caches the loaded snapshot and, when enabled,
// watches the data directory so edits to the fleet sheets invalidate the
// cache without a restart.
package server
