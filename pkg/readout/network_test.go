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

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/hostfacts/hostfacts/pkg/resolve"
)

func TestFirstInterfaceName(t *testing.T) {
	list := psnet.InterfaceStatList{
		{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: []psnet.InterfaceAddr{{Addr: "127.0.0.1/8"}}},
		{Name: "eth0", Flags: []string{"broadcast"}, Addrs: []psnet.InterfaceAddr{{Addr: "10.0.0.2/24"}}},
		{Name: "wlan0", Flags: []string{"up", "broadcast"}, Addrs: []psnet.InterfaceAddr{{Addr: "192.168.1.40/24"}}},
	}

	got, err := firstInterfaceName(list)
	if err != nil {
		t.Fatalf("firstInterfaceName() error = %v", err)
	}
	if got != "wlan0" {
		t.Errorf("firstInterfaceName() = %q, want %q", got, "wlan0")
	}
}

func TestFirstInterfaceNameNoneActive(t *testing.T) {
	list := psnet.InterfaceStatList{
		{Name: "lo", Flags: []string{"up", "loopback"}},
		{Name: "eth0", Flags: []string{"up"}},
	}

	_, err := firstInterfaceName(list)
	if !resolve.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
}

func TestFirstInterfaceIPv4(t *testing.T) {
	tests := []struct {
		name    string
		list    psnet.InterfaceStatList
		want    string
		wantErr bool
	}{
		{
			"skips loopback and link-local",
			psnet.InterfaceStatList{
				{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: []psnet.InterfaceAddr{{Addr: "127.0.0.1/8"}}},
				{Name: "wlan0", Flags: []string{"up"}, Addrs: []psnet.InterfaceAddr{
					{Addr: "169.254.10.1/16"},
					{Addr: "fe80::1/64"},
					{Addr: "192.168.1.40/24"},
				}},
			},
			"192.168.1.40", false,
		},
		{
			"bare address without prefix",
			psnet.InterfaceStatList{
				{Name: "eth0", Flags: []string{"up"}, Addrs: []psnet.InterfaceAddr{{Addr: "10.0.0.2"}}},
			},
			"10.0.0.2", false,
		},
		{
			"ipv6 only",
			psnet.InterfaceStatList{
				{Name: "eth0", Flags: []string{"up"}, Addrs: []psnet.InterfaceAddr{{Addr: "2001:db8::1/64"}}},
			},
			"", true,
		},
		{"empty list", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstInterfaceIPv4(tt.list)
			if (err != nil) != tt.wantErr {
				t.Fatalf("firstInterfaceIPv4() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("firstInterfaceIPv4() = %q, want %q", got, tt.want)
			}
		})
	}
}
