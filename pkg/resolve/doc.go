// Package resolve implements the fallback chain resolver at the core of
// hostfacts.
//
// A logical field (uptime, desktop environment, package count) rarely has a
// single authoritative source on a machine. Instead it has an ordered list of
// candidate sources: files, command output, structured databases, library
// calls. Each source can be absent, unreadable, or present-but-malformed,
// independently of the others.
//
// The package models this as:
//
//   - Accessor: fetches raw data from one concrete source, or fails with a
//     classifiable error (unavailable, I/O, permission).
//   - Parser: a pure function normalizing one accessor's raw output into the
//     field's typed value, or failing with a parse error.
//   - Source: one (accessor, parser) pair with a cheap availability check.
//   - Chain: the ordered sources for one field. Resolve walks the chain in
//     priority order and returns the first full success; sources after the
//     first success are never invoked. If every source fails, the result is
//     a Failure carrying the ordered per-source reasons, so callers can tell
//     "nothing present" apart from "present but malformed".
//   - Cached: memoizes a chain's first outcome (including Failure) for the
//     lifetime of the process.
//
// Usage:
//
//	uptime := resolve.NewChain("uptime",
//	    resolve.NewSource("procfs", procUptime, parseUptime),
//	    resolve.NewSource("gopsutil", hostUptime, secondsToDuration),
//	)
//	d, err := uptime.Resolve(ctx)
//	var failure *resolve.Failure
//	if errors.As(err, &failure) {
//	    for _, attempt := range failure.Attempts {
//	        fmt.Println(attempt.Source, attempt.Code)
//	    }
//	}
//
// Resolution is idempotent for fixed machine state and holds no mutable
// state of its own; accessors are read-only probes.
package resolve
