// Package probe provides the raw source accessors used by resolution
// chains: plain files, key-value files, command output, environment
// variables, SQLite databases, and arbitrary library calls.
//
// Every probe satisfies the resolve.Accessor contract: a cheap Available
// pre-check, a context-aware Fetch, and errors that normalize into the
// unavailable / I/O / permission taxonomy at this boundary. Probes are
// read-only and never mutate machine state.
//
// Usage:
//
//	src := resolve.NewSource("os-release",
//	    probe.NewKeyValueFile("/etc/os-release", probe.WithValueTrimChars(`"'`)),
//	    func(kv map[string]string) (string, error) { ... },
//	)
package probe
