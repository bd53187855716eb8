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
	"time"
)

// ShellFormat selects how the resolved shell is reported.
type ShellFormat int

const (
	// ShellName reports the basename of the shell binary (zsh).
	ShellName ShellFormat = iota
	// ShellPath reports the full path of the shell binary (/usr/bin/zsh).
	ShellPath
)

// BatteryState is the charging state of the primary battery.
type BatteryState string

const (
	BatteryCharging    BatteryState = "Charging"
	BatteryDischarging BatteryState = "Discharging"
	BatteryFull        BatteryState = "Full"
	BatteryUnknown     BatteryState = "Unknown"
)

// General resolves identity and session facts about the host.
type General interface {
	Hostname(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	Distribution(ctx context.Context) (string, error)
	DesktopEnvironment(ctx context.Context) (string, error)
	WindowManager(ctx context.Context) (string, error)
	Shell(ctx context.Context, format ShellFormat) (string, error)
	Terminal(ctx context.Context) (string, error)
	Uptime(ctx context.Context) (time.Duration, error)
	CPUModel(ctx context.Context) (string, error)
	CPUCores(ctx context.Context) (int64, error)
	CPUThreads(ctx context.Context) (int64, error)
}

// Memory resolves memory facts, all in bytes.
type Memory interface {
	Total(ctx context.Context) (uint64, error)
	Free(ctx context.Context) (uint64, error)
	Available(ctx context.Context) (uint64, error)
	Used(ctx context.Context) (uint64, error)
	SwapTotal(ctx context.Context) (uint64, error)
	SwapFree(ctx context.Context) (uint64, error)
}

// Battery resolves the primary battery. Hosts without a battery report
// every field as unavailable; treat that as expected, not an error.
type Battery interface {
	Percentage(ctx context.Context) (int64, error)
	State(ctx context.Context) (BatteryState, error)
}

// Kernel resolves kernel identity.
type Kernel interface {
	Release(ctx context.Context) (string, error)
	Type(ctx context.Context) (string, error)
}

// Product resolves machine identity from firmware and OS state.
type Product interface {
	Vendor(ctx context.Context) (string, error)
	Family(ctx context.Context) (string, error)
	Name(ctx context.Context) (string, error)
	Version(ctx context.Context) (string, error)
	MachineID(ctx context.Context) (string, error)
	ProductUUID(ctx context.Context) (string, error)
}

// Network resolves the host's primary network identity: the interface
// carrying the default route and its local address. No traffic is sent.
type Network interface {
	Interface(ctx context.Context) (string, error)
	LocalIP(ctx context.Context) (string, error)
}

// Init resolves the init system and execution environment.
type Init interface {
	Name(ctx context.Context) (string, error)
	Version(ctx context.Context) (string, error)
	Virtualization(ctx context.Context) (string, error)
}

// Host bundles the platform readouts behind one facade.
type Host struct {
	General General
	Memory  Memory
	Battery Battery
	Kernel  Kernel
	Product Product
	Network Network
	Init    Init
}

// New builds the readout facade for the current platform, probing the
// surfaces the given Context points at.
func New(rc *Context) *Host {
	return newHost(rc)
}
