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
	"os"
	"strings"
	"time"

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// deProcessNames maps session/compositor process names to desktop
// environment display names, for hosts where the session variables are
// not exported (cron, ssh, display managers that scrub the environment).
var deProcessNames = map[string]string{
	"gnome-shell":    "GNOME",
	"gnome-session":  "GNOME",
	"gnome-session-": "GNOME",
	"plasmashell":    "KDE Plasma",
	"xfce4-session":  "Xfce",
	"cinnamon":       "Cinnamon",
	"mate-session":   "MATE",
	"lxqt-session":   "LXQt",
	"lxsession":      "LXDE",
	"budgie-daemon":  "Budgie",
	"cosmic-session": "COSMIC",
	"sway":           "Sway",
	"hyprland":       "Hyprland",
}

func desktopProcess(comm string) (string, bool) {
	name, ok := deProcessNames[strings.ToLower(strings.TrimSpace(comm))]
	return name, ok
}

type linuxGeneral struct {
	hostname     *resolve.Chain[string]
	username     *resolve.Chain[string]
	distribution *resolve.Cached[string]
	desktop      *resolve.Chain[string]
	wm           *resolve.Chain[string]
	shellPath    *resolve.Chain[string]
	terminal     *resolve.Chain[string]
	uptime       *resolve.Chain[time.Duration]
	cpuModel     *resolve.Cached[string]
	cpuCores     *resolve.Cached[int64]
	cpuThreads   *resolve.Cached[int64]
}

func newLinuxGeneral(rc *Context) *linuxGeneral {
	identity := func(s string) (string, error) { return s, nil }

	scanProcs := func(match func(string) (string, bool)) probe.Func[string] {
		return probe.FromFunc(func(ctx context.Context) (string, error) {
			fs, err := rc.procFS()
			if err != nil {
				return "", err
			}
			return firstKnownComm(fs, match)
		})
	}

	g := &linuxGeneral{}

	g.hostname = resolve.NewChain("general.hostname",
		resolve.NewSource("proc-hostname",
			probe.NewFile(rc.proc("sys", "kernel", "hostname")), trimmedLine),
		resolve.NewSource("os-hostname",
			probe.FromFunc(func(_ context.Context) (string, error) { return os.Hostname() }),
			trimmedLine),
	)

	g.username = resolve.NewChain("general.username",
		resolve.NewSource("env-user", rc.env("USER"), trimmedLine),
		resolve.NewSource("id-command", probe.NewCommand("id", "-un"), trimmedLine),
	)

	g.distribution = resolve.NewCached(resolve.NewChain("general.distribution",
		resolve.NewSource("etc-os-release",
			probe.NewKeyValueFile(rc.etc("os-release"), probe.WithValueTrimChars(`"'`)),
			prettyName),
		resolve.NewSource("usr-lib-os-release",
			probe.NewKeyValueFile(rc.usrLib("os-release"), probe.WithValueTrimChars(`"'`)),
			prettyName),
		resolve.NewSource("lsb-release-command",
			probe.NewCommand("lsb_release", "-sd"), lsbDescription),
	))

	g.desktop = resolve.NewChain("general.desktop-environment",
		resolve.NewSource("env-xdg-current-desktop",
			rc.env("XDG_CURRENT_DESKTOP"), normalizeDesktop),
		resolve.NewSource("env-desktop-session",
			rc.env("DESKTOP_SESSION"), normalizeDesktop),
		resolve.NewSource("proc-scan-session", scanProcs(desktopProcess), identity),
	)

	g.wm = resolve.NewChain("general.window-manager",
		resolve.NewSource("proc-scan-wm", scanProcs(windowManagerName), identity),
	)

	g.shellPath = resolve.NewChain("general.shell",
		resolve.NewSource("env-shell", rc.env("SHELL"), trimmedLine),
		resolve.NewSource("etc-passwd",
			probe.NewFile(rc.etc("passwd")),
			func(raw string) (string, error) { return parsePasswdShell(raw, os.Getuid()) }),
	)

	g.terminal = resolve.NewChain("general.terminal",
		resolve.NewSource("env-term-program", rc.env("TERM_PROGRAM"), trimmedLine),
		resolve.NewSource("proc-ancestry",
			probe.FromFunc(func(ctx context.Context) (string, error) {
				fs, err := rc.procFS()
				if err != nil {
					return "", err
				}
				return walkAncestry(os.Getpid(), procfsLookup(fs), terminalName)
			}),
			identity),
	)

	g.uptime = resolve.NewChain("general.uptime",
		resolve.NewSource("proc-uptime", probe.NewFile(rc.proc("uptime")), parseUptime),
		resolve.NewSource("gopsutil-uptime",
			probe.FromFunc(func(ctx context.Context) (uint64, error) {
				return host.UptimeWithContext(ctx)
			}),
			func(secs uint64) (time.Duration, error) {
				return time.Duration(secs) * time.Second, nil
			}),
	)

	cpuInfo := func() probe.Func[[]procfs.CPUInfo] {
		return probe.FromFunc(func(_ context.Context) ([]procfs.CPUInfo, error) {
			fs, err := rc.procFS()
			if err != nil {
				return nil, err
			}
			return fs.CPUInfo()
		})
	}

	g.cpuModel = resolve.NewCached(resolve.NewChain("general.cpu-model",
		resolve.NewSource("proc-cpuinfo", cpuInfo(), cpuModelName),
		resolve.NewSource("gopsutil-cpu-info",
			probe.FromFunc(func(ctx context.Context) ([]cpu.InfoStat, error) {
				return cpu.InfoWithContext(ctx)
			}),
			func(info []cpu.InfoStat) (string, error) {
				if len(info) == 0 || info[0].ModelName == "" {
					return "", errors.New("no cpu info")
				}
				return info[0].ModelName, nil
			}),
	))

	g.cpuCores = resolve.NewCached(resolve.NewChain("general.cpu-cores",
		resolve.NewSource("proc-cpuinfo", cpuInfo(), cpuPhysicalCores),
		resolve.NewSource("gopsutil-cpu-counts",
			probe.FromFunc(func(ctx context.Context) (int, error) {
				return cpu.CountsWithContext(ctx, false)
			}),
			positiveCount),
	))

	g.cpuThreads = resolve.NewCached(resolve.NewChain("general.cpu-threads",
		resolve.NewSource("proc-cpuinfo", cpuInfo(), cpuLogicalThreads),
		resolve.NewSource("gopsutil-cpu-counts",
			probe.FromFunc(func(ctx context.Context) (int, error) {
				return cpu.CountsWithContext(ctx, true)
			}),
			positiveCount),
	))

	return g
}

// lsbDescription cleans `lsb_release -sd` output, which some distributions
// wrap in double quotes.
func lsbDescription(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	line = strings.Trim(line, `"`)
	if line == "" {
		return "", errors.New("empty distribution description")
	}
	return line, nil
}

func cpuModelName(info []procfs.CPUInfo) (string, error) {
	if len(info) == 0 || info[0].ModelName == "" {
		return "", errors.New("cpuinfo has no model name")
	}
	return info[0].ModelName, nil
}

// cpuPhysicalCores counts distinct (physical id, core id) pairs. Falls back
// to the processor count when the topology fields are absent (common on
// ARM and in containers with masked cpuinfo).
func cpuPhysicalCores(info []procfs.CPUInfo) (int64, error) {
	if len(info) == 0 {
		return 0, errors.New("cpuinfo has no processors")
	}
	cores := make(map[string]bool)
	for _, p := range info {
		if p.PhysicalID == "" && p.CoreID == "" {
			continue
		}
		cores[p.PhysicalID+":"+p.CoreID] = true
	}
	if len(cores) == 0 {
		return int64(len(info)), nil
	}
	return int64(len(cores)), nil
}

func cpuLogicalThreads(info []procfs.CPUInfo) (int64, error) {
	if len(info) == 0 {
		return 0, errors.New("cpuinfo has no processors")
	}
	return int64(len(info)), nil
}

func positiveCount(n int) (int64, error) {
	if n <= 0 {
		return 0, errors.New("no processors reported")
	}
	return int64(n), nil
}

func (g *linuxGeneral) Hostname(ctx context.Context) (string, error) {
	return g.hostname.Resolve(ctx)
}

func (g *linuxGeneral) Username(ctx context.Context) (string, error) {
	return g.username.Resolve(ctx)
}

func (g *linuxGeneral) Distribution(ctx context.Context) (string, error) {
	return g.distribution.Resolve(ctx)
}

func (g *linuxGeneral) DesktopEnvironment(ctx context.Context) (string, error) {
	return g.desktop.Resolve(ctx)
}

func (g *linuxGeneral) WindowManager(ctx context.Context) (string, error) {
	return g.wm.Resolve(ctx)
}

func (g *linuxGeneral) Shell(ctx context.Context, format ShellFormat) (string, error) {
	path, err := g.shellPath.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return formatShell(path, format), nil
}

func (g *linuxGeneral) Terminal(ctx context.Context) (string, error) {
	return g.terminal.Resolve(ctx)
}

func (g *linuxGeneral) Uptime(ctx context.Context) (time.Duration, error) {
	return g.uptime.Resolve(ctx)
}

func (g *linuxGeneral) CPUModel(ctx context.Context) (string, error) {
	return g.cpuModel.Resolve(ctx)
}

func (g *linuxGeneral) CPUCores(ctx context.Context) (int64, error) {
	return g.cpuCores.Resolve(ctx)
}

func (g *linuxGeneral) CPUThreads(ctx context.Context) (int64, error) {
	return g.cpuThreads.Resolve(ctx)
}
