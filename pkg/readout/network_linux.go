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

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

type linuxNetwork struct {
	iface   *resolve.Chain[string]
	localIP *resolve.Chain[string]
}

func newLinuxNetwork(rc *Context) *linuxNetwork {
	return &linuxNetwork{
		iface: resolve.NewChain("network.interface",
			resolve.NewSource("proc-net-route",
				probe.NewFile(rc.proc("net", "route")), parseRouteInterface),
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

func (n *linuxNetwork) Interface(ctx context.Context) (string, error) {
	return n.iface.Resolve(ctx)
}

func (n *linuxNetwork) LocalIP(ctx context.Context) (string, error) {
	return n.localIP.Resolve(ctx)
}
