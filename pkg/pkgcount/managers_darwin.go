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

//go:build darwin

package pkgcount

import (
	"os"
	"path/filepath"
)

var (
	brewCellarIntel  = "/usr/local/Cellar"
	brewCaskIntel    = "/usr/local/Caskroom"
	brewCellarARM    = "/opt/homebrew/Cellar"
	brewCaskARM      = "/opt/homebrew/Caskroom"
	macportsRegistry = "/opt/local/var/macports/registry/registry.db"

	macportsCountQuery = "SELECT COUNT(*) FROM ports WHERE state = 'installed'"
)

// DefaultManagers declares the package managers considered on macOS. The
// Intel and Apple Silicon homebrew prefixes are alternatives for the same
// installation, so each formula/cask pair is one manager with a fallback
// chain rather than two additive declarations.
func DefaultManagers() []Manager {
	managers := []Manager{
		NewManager("homebrew",
			anyOf(dirPresent(brewCellarARM), dirPresent(brewCellarIntel)),
			Enumeration("brew-cellar-arm", brewCellarARM, MatchDirs),
			Enumeration("brew-cellar-intel", brewCellarIntel, MatchDirs),
		),
		NewManager("homebrew-cask",
			anyOf(dirPresent(brewCaskARM), dirPresent(brewCaskIntel)),
			Enumeration("brew-cask-arm", brewCaskARM, MatchDirs),
			Enumeration("brew-cask-intel", brewCaskIntel, MatchDirs),
		),
		NewManager("macports",
			filePresent(macportsRegistry),
			StructuredQuery("macports-registry", macportsRegistry, macportsCountQuery),
		),
	}

	if home, err := os.UserHomeDir(); err == nil {
		cargoBinDir := filepath.Join(home, ".cargo/bin")
		managers = append(managers,
			NewManager("cargo",
				dirPresent(cargoBinDir),
				Enumeration("cargo-bin", cargoBinDir, MatchFiles),
			),
		)
	}

	return managers
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
