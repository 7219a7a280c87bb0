// Package config loads and validates the coordinator's YAML configuration:
// data directory for the CSV-backed fleet sheets, audit database path,
// logging, metrics, and HTTP server settings.
package config
