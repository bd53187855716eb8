// Package cli implements the command-line interface for the hostfacts tool.
//
// # Overview
//
// The hostfacts CLI reads machine state from layered sources and renders
// it for terminal or programmatic consumption. Every field resolves
// through an ordered fallback chain of sources; a broken source degrades
// one field, never the whole readout.
//
// # Commands
//
// report - Assemble the full machine report:
//
//	hostfacts report [--output FILE] [--format yaml|json|table]
//
// Assembles all readout groups in parallel: general facts, memory,
// battery, kernel, product identity, init system, and package counts.
// Fields whose sources all fail are reported as omitted with a reason.
//
// field - Resolve a single field:
//
//	hostfacts field general.distribution
//	hostfacts field memory.available
//
// Prints the resolved value, or on failure the attempted sources with
// their failure reasons in chain order.
//
// packages - Count installed packages:
//
//	hostfacts packages [--format table]
//
// Counts packages for every present package manager and reports
// per-manager counts, the total, and any per-manager failures.
//
// # Global Flags
//
//	--log-level    Logging verbosity (debug, info, warn, error)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table:
//   - Flattened field/value representation
//   - Suitable for terminal viewing
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, field resolution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/readout - Platform readout facade
//   - pkg/report - Parallel report assembly
//   - pkg/pkgcount - Package manager counting
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/hostfacts/hostfacts/pkg/cli.version=1.0.0'"
package cli
