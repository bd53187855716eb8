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

// Product identity comes from the DMI tables firmware exposes through
// sysfs. Reading product_uuid needs root on most kernels, so expect
// PERMISSION_DENIED there for unprivileged callers.
type linuxProduct struct {
	vendor    *resolve.Cached[string]
	family    *resolve.Cached[string]
	name      *resolve.Cached[string]
	version   *resolve.Cached[string]
	machineID *resolve.Cached[string]
	uuid      *resolve.Cached[string]
}

func newLinuxProduct(rc *Context) *linuxProduct {
	dmi := func(field, attr string) *resolve.Cached[string] {
		return resolve.NewCached(resolve.NewChain("product."+field,
			resolve.NewSource("sysfs-dmi-"+attr,
				probe.NewFile(rc.sys("class", "dmi", "id", attr)), trimmedLine),
		))
	}

	return &linuxProduct{
		vendor:  dmi("vendor", "sys_vendor"),
		family:  dmi("family", "product_family"),
		name:    dmi("name", "product_name"),
		version: dmi("version", "product_version"),
		machineID: resolve.NewCached(resolve.NewChain("product.machine-id",
			resolve.NewSource("etc-machine-id",
				probe.NewFile(rc.etc("machine-id")), parseMachineID),
			resolve.NewSource("dbus-machine-id",
				probe.NewFile(rc.varDir("lib", "dbus", "machine-id")), parseMachineID),
		)),
		uuid: resolve.NewCached(resolve.NewChain("product.uuid",
			resolve.NewSource("sysfs-dmi-product_uuid",
				probe.NewFile(rc.sys("class", "dmi", "id", "product_uuid")), parseProductUUID),
		)),
	}
}

func (p *linuxProduct) Vendor(ctx context.Context) (string, error) {
	return p.vendor.Resolve(ctx)
}

func (p *linuxProduct) Family(ctx context.Context) (string, error) {
	return p.family.Resolve(ctx)
}

func (p *linuxProduct) Name(ctx context.Context) (string, error) {
	return p.name.Resolve(ctx)
}

func (p *linuxProduct) Version(ctx context.Context) (string, error) {
	return p.version.Resolve(ctx)
}

func (p *linuxProduct) MachineID(ctx context.Context) (string, error) {
	return p.machineID.Resolve(ctx)
}

func (p *linuxProduct) ProductUUID(ctx context.Context) (string, error) {
	return p.uuid.Resolve(ctx)
}
