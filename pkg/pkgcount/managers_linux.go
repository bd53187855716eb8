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

//go:build linux

package pkgcount

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	pacmanLocalDir   = "/var/lib/pacman/local"
	dpkgStatusFile   = "/var/lib/dpkg/status"
	rpmSQLitePrimary = "/var/lib/rpm/rpmdb.sqlite"
	rpmSQLiteUsrLib  = "/usr/lib/sysimage/rpm/rpmdb.sqlite"
	apkInstalledFile = "/lib/apk/db/installed"
	flatpakSystemDir = "/var/lib/flatpak/app"
	snapDir          = "/var/lib/snapd/snaps"

	rpmCountQuery = "SELECT COUNT(*) FROM Packages"
)

// DefaultManagers declares the package managers considered on Linux. Every
// entry whose store (or binary) is present on the running machine is
// counted; coexisting managers are all counted and summed.
func DefaultManagers() []Manager {
	managers := []Manager{
		NewManager("pacman",
			anyOf(dirPresent(pacmanLocalDir), binaryPresent("pacman")),
			Enumeration("pacman-local", pacmanLocalDir, MatchDirs),
			CommandLines("pacman-query", "pacman", "-Qq"),
		),
		NewManager("dpkg",
			filePresent(dpkgStatusFile),
			Manifest("dpkg-status", dpkgStatusFile, dpkgInstalled),
		),
		// Older rpm hosts keep a BerkeleyDB store with no sqlite file on
		// disk, so the binary alone marks the manager present and the
		// rpm-query fallback carries the count.
		NewManager("rpm",
			anyOf(filePresent(rpmSQLitePrimary), filePresent(rpmSQLiteUsrLib), binaryPresent("rpm")),
			StructuredQuery("rpm-sqlite", rpmSQLitePrimary, rpmCountQuery),
			StructuredQuery("rpm-sqlite-usrlib", rpmSQLiteUsrLib, rpmCountQuery),
			CommandLines("rpm-query", "rpm", "-qa"),
		),
		NewManager("apk",
			filePresent(apkInstalledFile),
			Manifest("apk-installed", apkInstalledFile, apkRecord),
		),
		// System and per-user flatpak installations expose the same
		// front-end but have disjoint roots; declaring both with their
		// own root keeps the counts additive without deduplication.
		NewManager("flatpak",
			dirPresent(flatpakSystemDir),
			Enumeration("flatpak-system", flatpakSystemDir, MatchDirs),
		),
		NewManager("snap",
			dirPresent(snapDir),
			DistinctEnumeration("snap-snaps", snapDir, snapName),
		),
	}

	if home, err := os.UserHomeDir(); err == nil {
		flatpakUserDir := filepath.Join(home, ".local/share/flatpak/app")
		cargoBinDir := filepath.Join(home, ".cargo/bin")

		managers = append(managers,
			NewManager("flatpak-user",
				dirPresent(flatpakUserDir),
				Enumeration("flatpak-user", flatpakUserDir, MatchDirs),
			),
			NewManager("cargo",
				dirPresent(cargoBinDir),
				Enumeration("cargo-bin", cargoBinDir, MatchFiles),
			),
		)
	}

	return managers
}

// dpkgInstalled accepts one status line per installed package. Stanzas in
// states like "deinstall ok config-files" are pseudo-entries and excluded.
func dpkgInstalled(line string) bool {
	return line == "Status: install ok installed"
}

// apkRecord accepts the package-name line of each record in the apk
// installed database; all other record fields are metadata.
func apkRecord(line string) bool {
	return strings.HasPrefix(line, "P:")
}

// snapName maps firefox_1234.snap to firefox so retained revisions of one
// snap count once.
func snapName(entryName string) (string, bool) {
	if !strings.HasSuffix(entryName, ".snap") {
		return "", false
	}
	base := strings.TrimSuffix(entryName, ".snap")
	if i := strings.LastIndex(base, "_"); i > 0 {
		base = base[:i]
	}
	return base, true
}

func filePresent(path string) func() bool {
	return func() bool {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
}

func dirPresent(path string) func() bool {
	return func() bool {
		return dirExists(path)
	}
}

func binaryPresent(name string) func() bool {
	return func() bool {
		_, err := exec.LookPath(name)
		return err == nil
	}
}

func anyOf(preds ...func() bool) func() bool {
	return func() bool {
		for _, p := range preds {
			if p() {
				return true
			}
		}
		return false
	}
}
