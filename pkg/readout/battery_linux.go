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
	"path/filepath"
	"strings"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

type linuxBattery struct {
	percentage *resolve.Chain[int64]
	state      *resolve.Chain[BatteryState]
}

// batterySupply locates the first battery-class power supply under
// /sys/class/power_supply. Adapters and UPS devices are skipped by their
// type file; entries without one fall back to the BAT name prefix.
func batterySupply(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", resolve.Unavailable("", "no power supply class on this host")
		}
		return "", err
	}
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if kind, err := os.ReadFile(filepath.Join(dir, "type")); err == nil {
			if strings.TrimSpace(string(kind)) == "Battery" {
				return dir, nil
			}
			continue
		}
		if strings.HasPrefix(entry.Name(), "BAT") {
			return dir, nil
		}
	}
	return "", resolve.Unavailable("", "no battery among power supplies")
}

// batteryAttr reads one sysfs attribute of the primary battery.
func batteryAttr(rc *Context, attr string) probe.Func[string] {
	root := rc.sys("class", "power_supply")
	return probe.Func[string]{
		Check: func() bool {
			info, err := os.Stat(root)
			return err == nil && info.IsDir()
		},
		Run: func(_ context.Context) (string, error) {
			dir, err := batterySupply(root)
			if err != nil {
				return "", err
			}
			raw, err := os.ReadFile(filepath.Join(dir, attr))
			if err != nil {
				return "", fmt.Errorf("failed to read battery %s: %w", attr, err)
			}
			return string(raw), nil
		},
	}
}

func newLinuxBattery(rc *Context) *linuxBattery {
	return &linuxBattery{
		percentage: resolve.NewChain("battery.percentage",
			resolve.NewSource("sysfs-capacity", batteryAttr(rc, "capacity"), parsePercentage),
			resolve.NewSource("upower-command",
				probe.NewCommand("upower", "--dump"), upowerPercentage),
		),
		state: resolve.NewChain("battery.state",
			resolve.NewSource("sysfs-status", batteryAttr(rc, "status"), parseBatteryState),
			resolve.NewSource("upower-command",
				probe.NewCommand("upower", "--dump"), upowerState),
		),
	}
}

// upowerField extracts a "key: value" field from `upower --dump` output,
// scoped to battery device blocks.
func upowerField(raw, key string) (string, error) {
	inBattery := false
	for line := range strings.Lines(raw) {
		line = strings.TrimRight(line, "\n")
		if !strings.HasPrefix(line, " ") {
			inBattery = strings.Contains(line, "battery")
			continue
		}
		if !inBattery {
			continue
		}
		k, v, ok := strings.Cut(strings.TrimSpace(line), ":")
		if ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf("upower reports no battery %s", key)
}

func upowerPercentage(raw string) (int64, error) {
	v, err := upowerField(raw, "percentage")
	if err != nil {
		return 0, err
	}
	return parsePercentage(strings.TrimSuffix(v, "%"))
}

func upowerState(raw string) (BatteryState, error) {
	v, err := upowerField(raw, "state")
	if err != nil {
		return BatteryUnknown, err
	}
	switch v {
	case "fully-charged":
		v = "full"
	case "pending-charge", "pending-discharge":
		v = "unknown"
	}
	return parseBatteryState(v)
}

func (b *linuxBattery) Percentage(ctx context.Context) (int64, error) {
	return b.percentage.Resolve(ctx)
}

func (b *linuxBattery) State(ctx context.Context) (BatteryState, error) {
	return b.state.Resolve(ctx)
}
