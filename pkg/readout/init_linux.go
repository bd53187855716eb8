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

package readout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
	"github.com/hostfacts/hostfacts/pkg/version"
)

type linuxInit struct {
	name           *resolve.Cached[string]
	version        *resolve.Cached[string]
	virtualization *resolve.Chain[string]
}

// isSystemd reports whether pid 1 is systemd, gating the dbus sources.
func isSystemd(rc *Context) func() bool {
	return func() bool {
		raw, err := os.ReadFile(rc.proc("1", "comm"))
		return err == nil && strings.TrimSpace(string(raw)) == "systemd"
	}
}

// managerProperty reads one property of the systemd manager over dbus.
// A host where the bus cannot be reached (containers, non-systemd inits
// that still slipped past the gate) reads as unavailable.
func managerProperty(rc *Context, prop string) probe.Func[string] {
	return probe.Func[string]{
		Check: isSystemd(rc),
		Run: func(ctx context.Context) (string, error) {
			conn, err := dbus.NewWithContext(ctx)
			if err != nil {
				return "", resolve.Unavailable("", fmt.Sprintf("systemd bus unreachable: %v", err))
			}
			defer conn.Close()
			return conn.GetManagerProperty(prop)
		},
	}
}

// dbusVariantString strips the quoting GetManagerProperty leaves on
// string-typed variants.
func dbusVariantString(raw string) (string, error) {
	s := strings.Trim(strings.TrimSpace(raw), `"`)
	if s == "" {
		return "", errors.New("empty property value")
	}
	return s, nil
}

// systemctlVersion extracts the version from `systemctl --version`, whose
// first line reads like "systemd 255 (255.4-1ubuntu8.4)".
func systemctlVersion(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "systemd" {
		return "", fmt.Errorf("unexpected systemctl version line: %s", line)
	}
	if !version.IsVersionShaped(fields[1]) {
		return "", fmt.Errorf("not a version string: %q", fields[1])
	}
	return fields[1], nil
}

func newLinuxInit(rc *Context) *linuxInit {
	return &linuxInit{
		name: resolve.NewCached(resolve.NewChain("init.name",
			resolve.NewSource("proc-1-comm",
				probe.NewFile(rc.proc("1", "comm")), trimmedLine),
		)),
		version: resolve.NewCached(resolve.NewChain("init.version",
			resolve.NewSource("dbus-manager-version",
				managerProperty(rc, "Version"), dbusVariantString),
			resolve.NewSource("systemctl-command",
				probe.NewCommand("systemctl", "--version"), systemctlVersion),
		)),
		virtualization: resolve.NewChain("init.virtualization",
			resolve.NewSource("dbus-manager-virtualization",
				managerProperty(rc, "Virtualization"), virtualizationName),
			resolve.NewSource("systemd-detect-virt-command",
				probe.NewCommand("systemd-detect-virt"), virtualizationName),
		),
	}
}

// virtualizationName normalizes the detected virtualization technology.
// Bare metal reports an empty value on the bus and "none" from the
// detect-virt tool; both read as "none".
func virtualizationName(raw string) (string, error) {
	s := strings.Trim(strings.TrimSpace(raw), `"`)
	if s == "" {
		return "none", nil
	}
	line, err := trimmedLine(s)
	if err != nil {
		return "", err
	}
	return line, nil
}

func (i *linuxInit) Name(ctx context.Context) (string, error) {
	return i.name.Resolve(ctx)
}

func (i *linuxInit) Version(ctx context.Context) (string, error) {
	return i.version.Resolve(ctx)
}

func (i *linuxInit) Virtualization(ctx context.Context) (string, error) {
	return i.virtualization.Resolve(ctx)
}
