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
	"testing"
	"time"
)

func TestTrimmedLine(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "helios\n", "helios", false},
		{"no newline", "helios", "helios", false},
		{"padded", "  helios  \n", "helios", false},
		{"multi line keeps first", "one\ntwo\n", "one", false},
		{"empty", "", "", true},
		{"whitespace only", "   \n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := trimmedLine(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("trimmedLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("trimmedLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersionShapedLine(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"kernel release", "6.8.0-51-generic\n", "6.8.0-51-generic", false},
		{"arch release", "6.12.4-arch1-1\n", "6.12.4-arch1-1", false},
		{"bare major", "255\n", "255", false},
		{"garbage", "cannot open /proc/sys/kernel/osrelease\n", "", true},
		{"empty", "\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := versionShapedLine(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("versionShapedLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("versionShapedLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRouteInterface(t *testing.T) {
	routeTable := "Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\t\tMTU\tWindow\tIRTT\n" +
		"wlan0\t00000000\t0101A8C0\t0003\t0\t0\t100\t00000000\t0\t0\t0\n" +
		"wlan0\t0001A8C0\t00000000\t0001\t0\t0\t100\t00FFFFFF\t0\t0\t0\n"
	linkOnly := "Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\t\tMTU\tWindow\tIRTT\n" +
		"eth0\t0001A8C0\t00000000\t0001\t0\t0\t100\t00FFFFFF\t0\t0\t0\n"

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"default route", routeTable, "wlan0", false},
		{"link routes only", linkOnly, "", true},
		{"header only", "Iface\tDestination\tGateway\n", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRouteInterface(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRouteInterface() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseRouteInterface() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUptime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"proc format", "35272.86 132654.02\n", time.Duration(35272.86 * float64(time.Second)), false},
		{"integer", "120 240\n", 2 * time.Minute, false},
		{"garbage", "up for a while\n", 0, true},
		{"negative", "-5 10\n", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUptime(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseUptime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseUptime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDesktop(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"lowercase gnome", "gnome", "GNOME", false},
		{"vendor prefixed", "ubuntu:GNOME", "GNOME", false},
		{"kde", "KDE", "KDE Plasma", false},
		{"plasma session", "plasmawayland", "KDE Plasma", false},
		{"xfce", "xfce4", "Xfce", false},
		{"cinnamon variant", "X-Cinnamon", "Cinnamon", false},
		{"unknown gets title case", "weird-desktop", "Weird-Desktop", false},
		{"trailing colon", "gnome:", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDesktop(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeDesktop() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeDesktop(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestWindowManagerName(t *testing.T) {
	tests := []struct {
		comm   string
		want   string
		wantOk bool
	}{
		{"kwin_wayland", "KWin", true},
		{"gnome-shell", "Mutter", true},
		{"sway", "Sway", true},
		{"bash", "", false},
	}
	for _, tt := range tests {
		got, ok := windowManagerName(tt.comm)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("windowManagerName(%q) = (%q, %v), want (%q, %v)", tt.comm, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestTerminalName(t *testing.T) {
	// gnome-terminal-server truncates to 15 bytes in /proc comm.
	if got, ok := terminalName("gnome-terminal-"); !ok || got != "GNOME Terminal" {
		t.Errorf("terminalName(truncated comm) = (%q, %v)", got, ok)
	}
	if got, ok := terminalName("alacritty"); !ok || got != "Alacritty" {
		t.Errorf("terminalName(alacritty) = (%q, %v)", got, ok)
	}
	if _, ok := terminalName("sshd"); ok {
		t.Error("terminalName(sshd) matched, want no match")
	}
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"plain", "87\n", 87, false},
		{"full", "100\n", 100, false},
		{"topping off clamps", "101\n", 100, false},
		{"zero", "0\n", 0, false},
		{"negative", "-3\n", 0, true},
		{"garbage", "n/a\n", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePercentage(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePercentage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseBatteryState(t *testing.T) {
	tests := []struct {
		raw  string
		want BatteryState
	}{
		{"Charging\n", BatteryCharging},
		{"Discharging\n", BatteryDischarging},
		{"Not charging\n", BatteryDischarging},
		{"Full\n", BatteryFull},
		{"Wound down\n", BatteryUnknown},
	}
	for _, tt := range tests {
		got, err := parseBatteryState(tt.raw)
		if err != nil {
			t.Fatalf("parseBatteryState(%q) error = %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("parseBatteryState(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseMachineID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", "b08dfa6083e7567a1921a715000001fb\n", false},
		{"too short", "b08dfa6083e7\n", true},
		{"non hex", "zzzzfa6083e7567a1921a715000001fb\n", true},
		{"empty", "\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMachineID(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseMachineID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseProductUUID(t *testing.T) {
	got, err := parseProductUUID("4C4C4544-0032-3510-8035-B9C04F503432\n")
	if err != nil {
		t.Fatalf("parseProductUUID() error = %v", err)
	}
	// Canonical form is lowercase.
	if got != "4c4c4544-0032-3510-8035-b9c04f503432" {
		t.Errorf("parseProductUUID() = %q", got)
	}

	if _, err := parseProductUUID("not-a-uuid\n"); err == nil {
		t.Error("parseProductUUID() accepted malformed input")
	}
}

func TestParsePasswdShell(t *testing.T) {
	passwd := "root:x:0:0:root:/root:/bin/bash\n" +
		"daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin\n" +
		"jo:x:1000:1000:Jo:/home/jo:/usr/bin/zsh\n"

	shell, err := parsePasswdShell(passwd, 1000)
	if err != nil {
		t.Fatalf("parsePasswdShell() error = %v", err)
	}
	if shell != "/usr/bin/zsh" {
		t.Errorf("parsePasswdShell() = %q, want /usr/bin/zsh", shell)
	}

	if _, err := parsePasswdShell(passwd, 4242); err == nil {
		t.Error("parsePasswdShell() found a shell for an absent uid")
	}
}

func TestFormatShell(t *testing.T) {
	if got := formatShell("/usr/bin/zsh", ShellName); got != "zsh" {
		t.Errorf("formatShell(ShellName) = %q, want zsh", got)
	}
	if got := formatShell("/usr/bin/zsh", ShellPath); got != "/usr/bin/zsh" {
		t.Errorf("formatShell(ShellPath) = %q, want /usr/bin/zsh", got)
	}
	if got := formatShell("zsh", ShellName); got != "zsh" {
		t.Errorf("formatShell(bare name) = %q, want zsh", got)
	}
}

func TestPrettyName(t *testing.T) {
	got, err := prettyName(map[string]string{"NAME": "Ubuntu", "PRETTY_NAME": "Ubuntu 24.04.1 LTS"})
	if err != nil {
		t.Fatalf("prettyName() error = %v", err)
	}
	if got != "Ubuntu 24.04.1 LTS" {
		t.Errorf("prettyName() = %q", got)
	}

	if _, err := prettyName(map[string]string{"NAME": "Ubuntu"}); err == nil {
		t.Error("prettyName() accepted os-release without PRETTY_NAME")
	}
}
