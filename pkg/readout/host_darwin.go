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
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// The darwin port leans on gopsutil and the platform tools (sw_vers,
// sysctl, pmset) instead of procfs and sysfs. The session is always Aqua
// over the Quartz Compositor, so those fields are fixed.

func sysctlValue(key string) probe.Command {
	return probe.NewCommand("sysctl", "-n", key)
}

type darwinGeneral struct {
	hostname     *resolve.Chain[string]
	username     *resolve.Chain[string]
	distribution *resolve.Cached[string]
	shellPath    *resolve.Chain[string]
	terminal     *resolve.Chain[string]
	uptime       *resolve.Chain[time.Duration]
	cpuModel     *resolve.Cached[string]
	cpuCores     *resolve.Cached[int64]
	cpuThreads   *resolve.Cached[int64]
}

// macosName renders sw_vers output ("ProductName:\tmacOS\n...") as
// "macOS 15.1".
func macosName(raw string) (string, error) {
	var name, version string
	for line := range strings.Lines(raw) {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ProductName":
			name = strings.TrimSpace(v)
		case "ProductVersion":
			version = strings.TrimSpace(v)
		}
	}
	if name == "" || version == "" {
		return "", errors.New("sw_vers output has no product name or version")
	}
	return name + " " + version, nil
}

// terminalProgram maps $TERM_PROGRAM values to display names.
func terminalProgram(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	switch line {
	case "Apple_Terminal":
		return "Apple Terminal", nil
	case "iTerm.app":
		return "iTerm2", nil
	}
	if name, ok := terminalName(strings.TrimSuffix(line, ".app")); ok {
		return name, nil
	}
	return line, nil
}

func newDarwinGeneral(rc *Context) *darwinGeneral {
	g := &darwinGeneral{}

	g.hostname = resolve.NewChain("general.hostname",
		resolve.NewSource("os-hostname",
			probe.FromFunc(func(_ context.Context) (string, error) { return os.Hostname() }),
			trimmedLine),
	)

	g.username = resolve.NewChain("general.username",
		resolve.NewSource("env-user", rc.env("USER"), trimmedLine),
		resolve.NewSource("id-command", probe.NewCommand("id", "-un"), trimmedLine),
	)

	g.distribution = resolve.NewCached(resolve.NewChain("general.distribution",
		resolve.NewSource("sw-vers-command", probe.NewCommand("sw_vers"), macosName),
	))

	g.shellPath = resolve.NewChain("general.shell",
		resolve.NewSource("env-shell", rc.env("SHELL"), trimmedLine),
		resolve.NewSource("etc-passwd",
			probe.NewFile(rc.etc("passwd")),
			func(raw string) (string, error) { return parsePasswdShell(raw, os.Getuid()) }),
	)

	g.terminal = resolve.NewChain("general.terminal",
		resolve.NewSource("env-term-program", rc.env("TERM_PROGRAM"), terminalProgram),
	)

	g.uptime = resolve.NewChain("general.uptime",
		resolve.NewSource("gopsutil-uptime",
			probe.FromFunc(func(ctx context.Context) (uint64, error) {
				return host.UptimeWithContext(ctx)
			}),
			func(secs uint64) (time.Duration, error) {
				return time.Duration(secs) * time.Second, nil
			}),
	)

	g.cpuModel = resolve.NewCached(resolve.NewChain("general.cpu-model",
		resolve.NewSource("sysctl-brand-string",
			sysctlValue("machdep.cpu.brand_string"), trimmedLine),
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
		resolve.NewSource("gopsutil-cpu-counts",
			probe.FromFunc(func(ctx context.Context) (int, error) {
				return cpu.CountsWithContext(ctx, false)
			}),
			positiveCount),
	))

	g.cpuThreads = resolve.NewCached(resolve.NewChain("general.cpu-threads",
		resolve.NewSource("gopsutil-cpu-counts",
			probe.FromFunc(func(ctx context.Context) (int, error) {
				return cpu.CountsWithContext(ctx, true)
			}),
			positiveCount),
	))

	return g
}

func positiveCount(n int) (int64, error) {
	if n <= 0 {
		return 0, errors.New("no processors reported")
	}
	return int64(n), nil
}

func (g *darwinGeneral) Hostname(ctx context.Context) (string, error) {
	return g.hostname.Resolve(ctx)
}

func (g *darwinGeneral) Username(ctx context.Context) (string, error) {
	return g.username.Resolve(ctx)
}

func (g *darwinGeneral) Distribution(ctx context.Context) (string, error) {
	return g.distribution.Resolve(ctx)
}

func (g *darwinGeneral) DesktopEnvironment(_ context.Context) (string, error) {
	return "Aqua", nil
}

func (g *darwinGeneral) WindowManager(_ context.Context) (string, error) {
	return "Quartz Compositor", nil
}

func (g *darwinGeneral) Shell(ctx context.Context, format ShellFormat) (string, error) {
	path, err := g.shellPath.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return formatShell(path, format), nil
}

func (g *darwinGeneral) Terminal(ctx context.Context) (string, error) {
	return g.terminal.Resolve(ctx)
}

func (g *darwinGeneral) Uptime(ctx context.Context) (time.Duration, error) {
	return g.uptime.Resolve(ctx)
}

func (g *darwinGeneral) CPUModel(ctx context.Context) (string, error) {
	return g.cpuModel.Resolve(ctx)
}

func (g *darwinGeneral) CPUCores(ctx context.Context) (int64, error) {
	return g.cpuCores.Resolve(ctx)
}

func (g *darwinGeneral) CPUThreads(ctx context.Context) (int64, error) {
	return g.cpuThreads.Resolve(ctx)
}

type darwinMemory struct {
	total     *resolve.Chain[uint64]
	free      *resolve.Chain[uint64]
	available *resolve.Chain[uint64]
	used      *resolve.Chain[uint64]
	swapTotal *resolve.Chain[uint64]
	swapFree  *resolve.Chain[uint64]
}

func newDarwinMemory(_ *Context) *darwinMemory {
	vmStat := probe.FromFunc(func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
		return mem.VirtualMemoryWithContext(ctx)
	})
	swapStat := probe.FromFunc(func(ctx context.Context) (*mem.SwapMemoryStat, error) {
		return mem.SwapMemoryWithContext(ctx)
	})

	field := func(name string, pick func(*mem.VirtualMemoryStat) uint64) *resolve.Chain[uint64] {
		return resolve.NewChain("memory."+name,
			resolve.NewSource("gopsutil-virtual-memory", vmStat,
				func(s *mem.VirtualMemoryStat) (uint64, error) { return pick(s), nil }),
		)
	}

	return &darwinMemory{
		total:     field("total", func(s *mem.VirtualMemoryStat) uint64 { return s.Total }),
		free:      field("free", func(s *mem.VirtualMemoryStat) uint64 { return s.Free }),
		available: field("available", func(s *mem.VirtualMemoryStat) uint64 { return s.Available }),
		used:      field("used", func(s *mem.VirtualMemoryStat) uint64 { return s.Used }),
		swapTotal: resolve.NewChain("memory.swap-total",
			resolve.NewSource("gopsutil-swap-memory", swapStat,
				func(s *mem.SwapMemoryStat) (uint64, error) { return s.Total, nil }),
		),
		swapFree: resolve.NewChain("memory.swap-free",
			resolve.NewSource("gopsutil-swap-memory", swapStat,
				func(s *mem.SwapMemoryStat) (uint64, error) { return s.Free, nil }),
		),
	}
}

func (m *darwinMemory) Total(ctx context.Context) (uint64, error) {
	return m.total.Resolve(ctx)
}

func (m *darwinMemory) Free(ctx context.Context) (uint64, error) {
	return m.free.Resolve(ctx)
}

func (m *darwinMemory) Available(ctx context.Context) (uint64, error) {
	return m.available.Resolve(ctx)
}

func (m *darwinMemory) Used(ctx context.Context) (uint64, error) {
	return m.used.Resolve(ctx)
}

func (m *darwinMemory) SwapTotal(ctx context.Context) (uint64, error) {
	return m.swapTotal.Resolve(ctx)
}

func (m *darwinMemory) SwapFree(ctx context.Context) (uint64, error) {
	return m.swapFree.Resolve(ctx)
}

type darwinBattery struct {
	percentage *resolve.Chain[int64]
	state      *resolve.Chain[BatteryState]
}

// pmsetBatteryLine extracts the battery line from `pmset -g batt`, which reads
// like: " -InternalBattery-0 (id=...)	87%; charging; 0:45 remaining".
func pmsetBatteryLine(raw string) (string, error) {
	for line := range strings.Lines(raw) {
		if strings.Contains(line, "InternalBattery") {
			return strings.TrimSpace(line), nil
		}
	}
	return "", resolve.Unavailable("", "no internal battery reported")
}

func pmsetPercentage(raw string) (int64, error) {
	line, err := pmsetBatteryLine(raw)
	if err != nil {
		return 0, err
	}
	start := strings.Index(line, "\t")
	end := strings.Index(line, "%")
	if start < 0 || end < 0 || end <= start {
		return 0, fmt.Errorf("unexpected pmset battery line: %s", line)
	}
	return parsePercentage(line[start+1 : end])
}

func pmsetState(raw string) (BatteryState, error) {
	line, err := pmsetBatteryLine(raw)
	if err != nil {
		return BatteryUnknown, err
	}
	switch {
	case strings.Contains(line, "discharging"):
		return BatteryDischarging, nil
	case strings.Contains(line, "charged"):
		return BatteryFull, nil
	case strings.Contains(line, "charging"):
		return BatteryCharging, nil
	}
	return BatteryUnknown, nil
}

func newDarwinBattery(_ *Context) *darwinBattery {
	return &darwinBattery{
		percentage: resolve.NewChain("battery.percentage",
			resolve.NewSource("pmset-command",
				probe.NewCommand("pmset", "-g", "batt"), pmsetPercentage),
		),
		state: resolve.NewChain("battery.state",
			resolve.NewSource("pmset-command",
				probe.NewCommand("pmset", "-g", "batt"), pmsetState),
		),
	}
}

func (b *darwinBattery) Percentage(ctx context.Context) (int64, error) {
	return b.percentage.Resolve(ctx)
}

func (b *darwinBattery) State(ctx context.Context) (BatteryState, error) {
	return b.state.Resolve(ctx)
}

type darwinKernel struct {
	release *resolve.Cached[string]
	kind    *resolve.Cached[string]
}

func newDarwinKernel(_ *Context) *darwinKernel {
	return &darwinKernel{
		release: resolve.NewCached(resolve.NewChain("kernel.release",
			resolve.NewSource("sysctl-osrelease", sysctlValue("kern.osrelease"), versionShapedLine),
			resolve.NewSource("gopsutil-kernel-version",
				probe.FromFunc(func(ctx context.Context) (string, error) {
					return host.KernelVersionWithContext(ctx)
				}),
				versionShapedLine),
		)),
		kind: resolve.NewCached(resolve.NewChain("kernel.type",
			resolve.NewSource("sysctl-ostype", sysctlValue("kern.ostype"), trimmedLine),
		)),
	}
}

func (k *darwinKernel) Release(ctx context.Context) (string, error) {
	return k.release.Resolve(ctx)
}

func (k *darwinKernel) Type(ctx context.Context) (string, error) {
	return k.kind.Resolve(ctx)
}

type darwinProduct struct {
	vendor    *resolve.Cached[string]
	family    *resolve.Cached[string]
	name      *resolve.Cached[string]
	version   *resolve.Cached[string]
	machineID *resolve.Cached[string]
	uuid      *resolve.Cached[string]
}

// ioregPlatformValue extracts a quoted IOPlatformExpertDevice property from
// ioreg output, e.g. `"IOPlatformUUID" = "5E2B..."`.
func ioregPlatformValue(key string) probe.Parser[string, string] {
	return func(raw string) (string, error) {
		marker := `"` + key + `" = "`
		for line := range strings.Lines(raw) {
			i := strings.Index(line, marker)
			if i < 0 {
				continue
			}
			rest := line[i+len(marker):]
			if j := strings.Index(rest, `"`); j >= 0 {
				return rest[:j], nil
			}
		}
		return "", fmt.Errorf("ioreg output has no %s", key)
	}
}

func newDarwinProduct(_ *Context) *darwinProduct {
	ioreg := func() probe.Command {
		return probe.NewCommand("ioreg", "-rd1", "-c", "IOPlatformExpertDevice")
	}

	fixed := func(field, value string) *resolve.Cached[string] {
		return resolve.NewCached(resolve.NewChain("product."+field,
			resolve.NewSource("constant",
				probe.FromFunc(func(_ context.Context) (string, error) { return value, nil }),
				trimmedLine),
		))
	}

	return &darwinProduct{
		vendor: fixed("vendor", "Apple Inc."),
		family: fixed("family", "Mac"),
		name: resolve.NewCached(resolve.NewChain("product.name",
			resolve.NewSource("sysctl-hw-model", sysctlValue("hw.model"), trimmedLine),
		)),
		version: resolve.NewCached(resolve.NewChain("product.version",
			resolve.NewSource("sysctl-hw-product", sysctlValue("hw.product"), trimmedLine),
		)),
		machineID: resolve.NewCached(resolve.NewChain("product.machine-id",
			resolve.NewSource("ioreg-platform-serial", ioreg(),
				ioregPlatformValue("IOPlatformSerialNumber")),
		)),
		uuid: resolve.NewCached(resolve.NewChain("product.uuid",
			resolve.NewSource("ioreg-platform-uuid", ioreg(),
				func(raw string) (string, error) {
					v, err := ioregPlatformValue("IOPlatformUUID")(raw)
					if err != nil {
						return "", err
					}
					return parseProductUUID(v)
				}),
		)),
	}
}

func (p *darwinProduct) Vendor(ctx context.Context) (string, error) {
	return p.vendor.Resolve(ctx)
}

func (p *darwinProduct) Family(ctx context.Context) (string, error) {
	return p.family.Resolve(ctx)
}

func (p *darwinProduct) Name(ctx context.Context) (string, error) {
	return p.name.Resolve(ctx)
}

func (p *darwinProduct) Version(ctx context.Context) (string, error) {
	return p.version.Resolve(ctx)
}

func (p *darwinProduct) MachineID(ctx context.Context) (string, error) {
	return p.machineID.Resolve(ctx)
}

func (p *darwinProduct) ProductUUID(ctx context.Context) (string, error) {
	return p.uuid.Resolve(ctx)
}

type darwinInit struct {
	name    *resolve.Cached[string]
	version *resolve.Cached[string]
	virt    *resolve.Chain[string]
}

func newDarwinInit(_ *Context) *darwinInit {
	return &darwinInit{
		name: resolve.NewCached(resolve.NewChain("init.name",
			resolve.NewSource("ps-pid1",
				probe.NewCommand("ps", "-p", "1", "-o", "comm="),
				func(raw string) (string, error) {
					line, err := trimmedLine(raw)
					if err != nil {
						return "", err
					}
					if i := strings.LastIndex(line, "/"); i >= 0 {
						line = line[i+1:]
					}
					return line, nil
				}),
		)),
		version: resolve.NewCached(resolve.NewChain("init.version",
			resolve.NewSource("sysctl-osversion", sysctlValue("kern.osversion"), trimmedLine),
		)),
		virt: resolve.NewChain("init.virtualization",
			resolve.NewSource("sysctl-hv-vmm-present",
				sysctlValue("kern.hv_vmm_present"),
				func(raw string) (string, error) {
					line, err := trimmedLine(raw)
					if err != nil {
						return "", err
					}
					if line == "0" {
						return "none", nil
					}
					return "vmm", nil
				}),
		),
	}
}

func (i *darwinInit) Name(ctx context.Context) (string, error) {
	return i.name.Resolve(ctx)
}

func (i *darwinInit) Version(ctx context.Context) (string, error) {
	return i.version.Resolve(ctx)
}

func (i *darwinInit) Virtualization(ctx context.Context) (string, error) {
	return i.virt.Resolve(ctx)
}

type darwinNetwork struct {
	iface   *resolve.Chain[string]
	localIP *resolve.Chain[string]
}

// routeDefaultInterface extracts the "interface:" line from
// `route -n get default`.
func routeDefaultInterface(raw string) (string, error) {
	for line := range strings.Lines(raw) {
		key, value, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(key) == "interface" {
			return trimmedLine(value)
		}
	}
	return "", errors.New("no interface in route output")
}

func newDarwinNetwork(_ *Context) *darwinNetwork {
	return &darwinNetwork{
		iface: resolve.NewChain("network.interface",
			resolve.NewSource("route-get-default",
				probe.NewCommand("route", "-n", "get", "default"), routeDefaultInterface),
			resolve.NewSource("gopsutil-interfaces",
				listInterfaces(), firstInterfaceName),
		),
		localIP: resolve.NewChain("network.local-ip",
			resolve.NewSource("udp-dial", dialLocalAddr(), trimmedLine),
			resolve.NewSource("gopsutil-interfaces",
				listInterfaces(), firstInterfaceIPv4),
		),
	}
}

func (n *darwinNetwork) Interface(ctx context.Context) (string, error) {
	return n.iface.Resolve(ctx)
}

func (n *darwinNetwork) LocalIP(ctx context.Context) (string, error) {
	return n.localIP.Resolve(ctx)
}

func newHost(rc *Context) *Host {
	return &Host{
		General: newDarwinGeneral(rc),
		Memory:  newDarwinMemory(rc),
		Battery: newDarwinBattery(rc),
		Kernel:  newDarwinKernel(rc),
		Product: newDarwinProduct(rc),
		Network: newDarwinNetwork(rc),
		Init:    newDarwinInit(rc),
	}
}
