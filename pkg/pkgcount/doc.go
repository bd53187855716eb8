// Package pkgcount counts installed packages across every package manager
// present on the machine.
//
// Unlike field resolution, counting is additive: a machine routinely hosts
// several managers at once (a native manager plus flatpak plus cargo), and
// their counts are independent contributions to one total, not alternatives.
// Every declared manager whose availability predicate passes is counted;
// a failure for one manager is recorded in the summary and contributes zero,
// without suppressing the counts of the rest.
//
// Within a single manager, counting still uses a fallback chain: pacman is
// counted by enumerating its local database directory and only falls back
// to spawning `pacman -Qq` when the directory is missing.
//
// Three strategy families cover the managers:
//
//   - enumeration: count matching directory entries (pacman, flatpak, snap,
//     cargo); walks skip symlink cycles and unreadable subtrees rather than
//     aborting.
//   - structured query: one fixed COUNT query against the manager's SQLite
//     store, read-only (rpm, macports); a locked database is unavailable,
//     never waited on.
//   - manifest parsing: count accepted records in a text manifest, excluding
//     pseudo-entries per manager rules (dpkg status stanzas that are not
//     "install ok installed", apk record headers).
//
// Managers that could observe the same underlying store through two
// front-ends must be declared with mutually exclusive targets (for example
// system and per-user flatpak installations have disjoint roots); there is
// no counting-time deduplication.
package pkgcount
