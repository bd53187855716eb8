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
	"fmt"
	"net"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// udpProbeTarget is never contacted; dialing UDP only asks the kernel to
// pick the outbound route and local address.
const udpProbeTarget = "8.8.8.8:80"

func dialLocalAddr() probe.Func[string] {
	return probe.FromFunc(func(ctx context.Context) (string, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "udp", udpProbeTarget)
		if err != nil {
			return "", resolve.Unavailable("", fmt.Sprintf("no route to pick a local address: %v", err))
		}
		defer conn.Close()

		addr, ok := conn.LocalAddr().(*net.UDPAddr)
		if !ok || addr.IP == nil {
			return "", fmt.Errorf("unexpected local address %v", conn.LocalAddr())
		}
		return addr.IP.String(), nil
	})
}

func listInterfaces() probe.Func[psnet.InterfaceStatList] {
	return probe.FromFunc(func(ctx context.Context) (psnet.InterfaceStatList, error) {
		return psnet.InterfacesWithContext(ctx)
	})
}

func interfaceIsUp(st psnet.InterfaceStat) bool {
	up, loopback := false, false
	for _, f := range st.Flags {
		switch f {
		case "up":
			up = true
		case "loopback":
			loopback = true
		}
	}
	return up && !loopback
}

// firstInterfaceName picks the first up, non-loopback interface carrying
// at least one address.
func firstInterfaceName(list psnet.InterfaceStatList) (string, error) {
	for _, st := range list {
		if interfaceIsUp(st) && len(st.Addrs) > 0 {
			return st.Name, nil
		}
	}
	return "", resolve.Unavailable("", "no active network interface")
}

// firstInterfaceIPv4 picks the first global unicast IPv4 carried by an
// up, non-loopback interface. Addresses come CIDR-formed from the
// interface list.
func firstInterfaceIPv4(list psnet.InterfaceStatList) (string, error) {
	for _, st := range list {
		if !interfaceIsUp(st) {
			continue
		}
		for _, a := range st.Addrs {
			ip, _, err := net.ParseCIDR(a.Addr)
			if err != nil {
				ip = net.ParseIP(a.Addr)
			}
			if ip == nil || ip.To4() == nil || !ip.IsGlobalUnicast() {
				continue
			}
			return ip.String(), nil
		}
	}
	return "", resolve.Unavailable("", "no interface with an IPv4 address")
}
