// Package logging provides structured logging utilities for hostfacts components.
//
// # Overview
//
// This package wraps the standard library slog package with hostfacts-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("hostfacts", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("resolving field", "field", "uptime")
//	    slog.Debug("source attempt", "source", "procfs")
//	    slog.Error("resolution failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("hostfactsd", "v2.0.0", "debug")
//	logger.Info("server starting", "port", 8080)
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug hostfacts report
//	LOG_LEVEL=error hostfactsd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "report assembled",
//	    "module": "hostfacts",
//	    "version": "v1.0.0",
//	    "groups": 6
//	}
package logging
