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

	"github.com/shirou/gopsutil/v4/host"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

type linuxKernel struct {
	release *resolve.Cached[string]
	kind    *resolve.Cached[string]
}

func newLinuxKernel(rc *Context) *linuxKernel {
	return &linuxKernel{
		release: resolve.NewCached(resolve.NewChain("kernel.release",
			resolve.NewSource("proc-osrelease",
				probe.NewFile(rc.proc("sys", "kernel", "osrelease")), versionShapedLine),
			resolve.NewSource("gopsutil-kernel-version",
				probe.FromFunc(func(ctx context.Context) (string, error) {
					return host.KernelVersionWithContext(ctx)
				}),
				versionShapedLine),
		)),
		kind: resolve.NewCached(resolve.NewChain("kernel.type",
			resolve.NewSource("proc-ostype",
				probe.NewFile(rc.proc("sys", "kernel", "ostype")), trimmedLine),
		)),
	}
}

func (k *linuxKernel) Release(ctx context.Context) (string, error) {
	return k.release.Resolve(ctx)
}

func (k *linuxKernel) Type(ctx context.Context) (string, error) {
	return k.kind.Resolve(ctx)
}
