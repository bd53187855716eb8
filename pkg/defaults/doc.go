// Package defaults provides centralized configuration constants for hostfacts.
//
// This package defines timeout values and probe limits used across the
// codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/hostfacts/hostfacts/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandProbeTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - Command probes: 5s default, respects parent context deadline
//   - SQLite probes: fail fast on a locked database, no retry
//   - Server shutdown: 30s for graceful shutdown
package defaults
