// Copyright (c) 2025, Hostfacts Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pkgcount

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// MatchFunc selects which directory entries count as packages.
type MatchFunc func(entry fs.DirEntry) bool

// MatchDirs counts directory entries only (pacman local database layout).
func MatchDirs(entry fs.DirEntry) bool {
	return entry.IsDir()
}

// MatchFiles counts regular files only.
func MatchFiles(entry fs.DirEntry) bool {
	return entry.Type().IsRegular()
}

// MatchExt counts regular files with the given extension.
func MatchExt(ext string) MatchFunc {
	return func(entry fs.DirEntry) bool {
		return entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ext
	}
}

func countIdentity(n int64) (int64, error) {
	return n, nil
}

// Enumeration counts matching entries directly under root, one level deep.
func Enumeration(name, root string, match MatchFunc) resolve.Source[int64] {
	acc := probe.Func[int64]{
		Check: func() bool { return dirExists(root) },
		Run: func(ctx context.Context) (int64, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			entries, err := os.ReadDir(root)
			if err != nil {
				return 0, fmt.Errorf("failed to enumerate %s: %w", root, err)
			}
			var n int64
			for _, entry := range entries {
				if match(entry) {
					n++
				}
			}
			return n, nil
		},
	}
	return resolve.NewSource(name, acc, countIdentity)
}

// treeEnumeration counts matching entries in a recursive walk under root.
// The walk does not follow symbolic links, so link cycles terminate, and
// unreadable subtrees contribute zero instead of aborting the count.
// No declared manager keeps a nested store today.
func treeEnumeration(name, root string, match MatchFunc) resolve.Source[int64] {
	acc := probe.Func[int64]{
		Check: func() bool { return dirExists(root) },
		Run: func(ctx context.Context) (int64, error) {
			var n int64
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					// Unreadable entry: skip, do not abort the walk.
					slog.Debug("skipping unreadable entry", "path", path, "error", err)
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if path == root {
					return nil
				}
				if match(d) {
					n++
				}
				return nil
			})
			if err != nil {
				return 0, fmt.Errorf("failed to walk %s: %w", root, err)
			}
			return n, nil
		},
	}
	return resolve.NewSource(name, acc, countIdentity)
}

// DistinctEnumeration counts distinct keys among entries directly under
// root. keyFn maps an entry name to its package identity, or reports false
// to exclude the entry. Used where several revisions of one package coexist
// on disk (snap keeps name_revision.snap per retained revision).
func DistinctEnumeration(name, root string, keyFn func(entryName string) (string, bool)) resolve.Source[int64] {
	acc := probe.Func[int64]{
		Check: func() bool { return dirExists(root) },
		Run: func(ctx context.Context) (int64, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			entries, err := os.ReadDir(root)
			if err != nil {
				return 0, fmt.Errorf("failed to enumerate %s: %w", root, err)
			}
			seen := make(map[string]struct{}, len(entries))
			for _, entry := range entries {
				key, ok := keyFn(entry.Name())
				if !ok {
					continue
				}
				seen[key] = struct{}{}
			}
			return int64(len(seen)), nil
		},
	}
	return resolve.NewSource(name, acc, countIdentity)
}

// Manifest counts accepted lines in a text manifest. The accept function
// encodes the manager-specific record rule, excluding headers, comments,
// and pseudo-entries.
func Manifest(name, path string, accept func(line string) bool) resolve.Source[int64] {
	file := probe.NewFile(path, probe.WithMaxSize(64<<20))
	parse := func(content string) (int64, error) {
		var n int64
		for line := range strings.Lines(content) {
			if accept(strings.TrimRight(line, "\n")) {
				n++
			}
		}
		return n, nil
	}
	return resolve.NewSource(name, file, parse)
}

// StructuredQuery counts rows via a fixed query against the manager's
// SQLite store, read-only.
func StructuredQuery(name, path, query string) resolve.Source[int64] {
	return resolve.NewSource(name, probe.NewSQLiteCount(path, query), countIdentity)
}

// CommandLines counts non-empty lines of a command's stdout, the
// `pacman -Qq | wc -l` pattern without the pipeline.
func CommandLines(name, cmd string, args ...string) resolve.Source[int64] {
	parse := func(out string) (int64, error) {
		var n int64
		for line := range strings.Lines(out) {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		return n, nil
	}
	return resolve.NewSource(name, probe.NewCommand(cmd, args...), parse)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
