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
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hostfacts/hostfacts/pkg/version"
)

// trimmedLine returns the first line of raw with surrounding space removed.
// Single-value /proc and /sys files all go through this.
func trimmedLine(raw string) (string, error) {
	line, _, _ := strings.Cut(raw, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("empty value")
	}
	return line, nil
}

// versionShapedLine trims like trimmedLine and additionally rejects
// content that does not parse as a version string. Used on sources whose
// value is always version-shaped, so garbage falls through to the next
// source instead of ending up in a report.
func versionShapedLine(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	if !version.IsVersionShaped(line) {
		return "", fmt.Errorf("not a version string: %q", line)
	}
	return line, nil
}

// parseRouteInterface extracts the default route's interface from the
// kernel routing table (/proc/net/route): the row whose destination and
// mask are both all-zero.
func parseRouteInterface(raw string) (string, error) {
	for line := range strings.Lines(raw) {
		fields := strings.Fields(line)
		if len(fields) < 8 || fields[0] == "Iface" {
			continue
		}
		if fields[1] == "00000000" && fields[7] == "00000000" {
			return fields[0], nil
		}
	}
	return "", errors.New("no default route")
}

// parseUptime parses /proc/uptime, whose first field is the uptime in
// seconds with fractional precision.
func parseUptime(raw string) (time.Duration, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	secs, err := strconv.ParseFloat(first, 64)
	if err != nil {
		return 0, fmt.Errorf("uptime seconds: %w", err)
	}
	if secs < 0 {
		return 0, fmt.Errorf("negative uptime: %s", first)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// prettyName extracts PRETTY_NAME from parsed os-release content.
func prettyName(kv map[string]string) (string, error) {
	name, ok := kv["PRETTY_NAME"]
	if !ok || name == "" {
		return "", errors.New("os-release has no PRETTY_NAME")
	}
	return name, nil
}

// titleCaser is shared; cases.Caser is not safe for concurrent use, so
// normalization constructs transformers per call via this factory.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// desktopNames maps lowercase desktop-session tokens to display names.
var desktopNames = map[string]string{
	"gnome":            "GNOME",
	"gnome-classic":    "GNOME",
	"ubuntu":           "GNOME",
	"kde":              "KDE Plasma",
	"plasma":           "KDE Plasma",
	"plasmax11":        "KDE Plasma",
	"plasmawayland":    "KDE Plasma",
	"xfce":             "Xfce",
	"xfce4":            "Xfce",
	"x-cinnamon":       "Cinnamon",
	"cinnamon":         "Cinnamon",
	"mate":             "MATE",
	"lxqt":             "LXQt",
	"lxde":             "LXDE",
	"budgie":           "Budgie",
	"budgie-desktop":   "Budgie",
	"unity":            "Unity",
	"deepin":           "Deepin",
	"pantheon":         "Pantheon",
	"cosmic":           "COSMIC",
	"hyprland":         "Hyprland",
	"sway":             "Sway",
	"enlightenment":    "Enlightenment",
	"cutefish":         "Cutefish",
}

// normalizeDesktop canonicalizes a desktop-environment token. Values like
// "ubuntu:GNOME" ($XDG_CURRENT_DESKTOP is colon-separated, most specific
// last) reduce to their last component first.
func normalizeDesktop(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "", errors.New("empty desktop name")
	}
	if name, ok := desktopNames[strings.ToLower(s)]; ok {
		return name, nil
	}
	return titleCase(s), nil
}

// wmNames maps window-manager process names (as read from /proc comm, which
// truncates at 15 bytes) to display names.
var wmNames = map[string]string{
	"mutter":          "Mutter",
	"gnome-shell":     "Mutter",
	"kwin_x11":        "KWin",
	"kwin_wayland":    "KWin",
	"sway":            "Sway",
	"i3":              "i3",
	"i3bar":           "i3",
	"hyprland":        "Hyprland",
	"bspwm":           "bspwm",
	"dwm":             "dwm",
	"awesome":         "Awesome",
	"xmonad":          "XMonad",
	"openbox":         "Openbox",
	"fluxbox":         "Fluxbox",
	"river":           "River",
	"wayfire":         "Wayfire",
	"qtile":           "Qtile",
	"herbstluftwm":    "herbstluftwm",
	"xfwm4":           "Xfwm4",
	"marco":           "Marco",
	"cosmic-comp":     "cosmic-comp",
	"weston":          "Weston",
}

// windowManagerName reports the display name for a process comm if it is a
// known window manager.
func windowManagerName(comm string) (string, bool) {
	name, ok := wmNames[strings.ToLower(strings.TrimSpace(comm))]
	return name, ok
}

// terminalNames maps terminal-emulator process names to display names.
// Keys cover the 15-byte comm truncation where it applies.
var terminalNames = map[string]string{
	"gnome-terminal":  "GNOME Terminal",
	"gnome-terminal-": "GNOME Terminal",
	"kgx":             "GNOME Console",
	"konsole":         "Konsole",
	"alacritty":       "Alacritty",
	"kitty":           "kitty",
	"foot":            "foot",
	"footclient":      "foot",
	"wezterm":         "WezTerm",
	"wezterm-gui":     "WezTerm",
	"ghostty":         "Ghostty",
	"xterm":           "XTerm",
	"urxvt":           "urxvt",
	"urxvtd":          "urxvt",
	"st":              "st",
	"tilix":           "Tilix",
	"terminator":      "Terminator",
	"xfce4-terminal":  "Xfce Terminal",
	"mate-terminal":   "MATE Terminal",
	"lxterminal":      "LXTerminal",
	"qterminal":       "QTerminal",
	"rio":             "Rio",
	"zutty":           "Zutty",
	"yakuake":         "Yakuake",
	"terminology":     "Terminology",
	"cosmic-term":     "COSMIC Terminal",
}

// terminalName reports the display name for a process comm if it is a
// known terminal emulator.
func terminalName(comm string) (string, bool) {
	name, ok := terminalNames[strings.ToLower(strings.TrimSpace(comm))]
	return name, ok
}

// parsePercentage parses a sysfs capacity value, clamped to 0..100. Some
// firmware briefly reports 101 while topping off.
func parsePercentage(raw string) (int64, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return 0, err
	}
	pct, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("battery capacity: %w", err)
	}
	if pct < 0 {
		return 0, fmt.Errorf("battery capacity out of range: %d", pct)
	}
	return min(pct, 100), nil
}

// parseBatteryState maps a sysfs status value onto BatteryState.
func parseBatteryState(raw string) (BatteryState, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return BatteryUnknown, err
	}
	switch strings.ToLower(line) {
	case "charging":
		return BatteryCharging, nil
	case "discharging", "not charging":
		return BatteryDischarging, nil
	case "full":
		return BatteryFull, nil
	default:
		return BatteryUnknown, nil
	}
}

// parseMachineID validates a machine-id value: 32 lowercase hex digits.
func parseMachineID(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	if len(line) != 32 {
		return "", fmt.Errorf("machine-id length %d, want 32", len(line))
	}
	if _, err := hex.DecodeString(line); err != nil {
		return "", fmt.Errorf("machine-id: %w", err)
	}
	return line, nil
}

// parseProductUUID validates a DMI product UUID and returns its canonical
// lowercase form.
func parseProductUUID(raw string) (string, error) {
	line, err := trimmedLine(raw)
	if err != nil {
		return "", err
	}
	id, err := uuid.Parse(line)
	if err != nil {
		return "", fmt.Errorf("product uuid: %w", err)
	}
	return id.String(), nil
}

// parsePasswdShell finds the login shell for the given uid in passwd
// content.
func parsePasswdShell(raw string, uid int) (string, error) {
	want := strconv.Itoa(uid)
	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[2] != want {
			continue
		}
		if fields[6] == "" {
			return "", fmt.Errorf("uid %d has no shell", uid)
		}
		return fields[6], nil
	}
	return "", fmt.Errorf("uid %d not found in passwd", uid)
}

// formatShell applies the requested ShellFormat to a shell path.
func formatShell(path string, format ShellFormat) string {
	if format == ShellPath {
		return path
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
