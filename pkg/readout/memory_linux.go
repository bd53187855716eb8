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

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

type linuxMemory struct {
	total     *resolve.Chain[uint64]
	free      *resolve.Chain[uint64]
	available *resolve.Chain[uint64]
	used      *resolve.Chain[uint64]
	swapTotal *resolve.Chain[uint64]
	swapFree  *resolve.Chain[uint64]
}

// kibField converts a /proc/meminfo kB field to bytes, rejecting absent
// fields so the chain can fall through.
func kibField(name string, v *uint64) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("meminfo has no %s", name)
	}
	return *v * 1024, nil
}

func newLinuxMemory(rc *Context) *linuxMemory {
	meminfo := func() probe.Func[procfs.Meminfo] {
		return probe.FromFunc(func(_ context.Context) (procfs.Meminfo, error) {
			fs, err := rc.procFS()
			if err != nil {
				return procfs.Meminfo{}, err
			}
			return fs.Meminfo()
		})
	}

	vmStat := probe.FromFunc(func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
		return mem.VirtualMemoryWithContext(ctx)
	})
	swapStat := probe.FromFunc(func(ctx context.Context) (*mem.SwapMemoryStat, error) {
		return mem.SwapMemoryWithContext(ctx)
	})

	field := func(name string, fromMeminfo func(procfs.Meminfo) (uint64, error), fromStat func(*mem.VirtualMemoryStat) uint64) *resolve.Chain[uint64] {
		return resolve.NewChain("memory."+name,
			resolve.NewSource("proc-meminfo", meminfo(), fromMeminfo),
			resolve.NewSource("gopsutil-virtual-memory", vmStat,
				func(s *mem.VirtualMemoryStat) (uint64, error) { return fromStat(s), nil }),
		)
	}

	m := &linuxMemory{}

	m.total = field("total",
		func(mi procfs.Meminfo) (uint64, error) { return kibField("MemTotal", mi.MemTotal) },
		func(s *mem.VirtualMemoryStat) uint64 { return s.Total })

	m.free = field("free",
		func(mi procfs.Meminfo) (uint64, error) { return kibField("MemFree", mi.MemFree) },
		func(s *mem.VirtualMemoryStat) uint64 { return s.Free })

	m.available = field("available",
		func(mi procfs.Meminfo) (uint64, error) { return kibField("MemAvailable", mi.MemAvailable) },
		func(s *mem.VirtualMemoryStat) uint64 { return s.Available })

	m.used = field("used",
		func(mi procfs.Meminfo) (uint64, error) {
			total, err := kibField("MemTotal", mi.MemTotal)
			if err != nil {
				return 0, err
			}
			avail, err := kibField("MemAvailable", mi.MemAvailable)
			if err != nil {
				return 0, err
			}
			if avail > total {
				return 0, fmt.Errorf("meminfo available %d exceeds total %d", avail, total)
			}
			return total - avail, nil
		},
		func(s *mem.VirtualMemoryStat) uint64 { return s.Used })

	m.swapTotal = resolve.NewChain("memory.swap-total",
		resolve.NewSource("proc-meminfo", meminfo(),
			func(mi procfs.Meminfo) (uint64, error) { return kibField("SwapTotal", mi.SwapTotal) }),
		resolve.NewSource("gopsutil-swap-memory", swapStat,
			func(s *mem.SwapMemoryStat) (uint64, error) { return s.Total, nil }),
	)

	m.swapFree = resolve.NewChain("memory.swap-free",
		resolve.NewSource("proc-meminfo", meminfo(),
			func(mi procfs.Meminfo) (uint64, error) { return kibField("SwapFree", mi.SwapFree) }),
		resolve.NewSource("gopsutil-swap-memory", swapStat,
			func(s *mem.SwapMemoryStat) (uint64, error) { return s.Free, nil }),
	)

	return m
}

func (m *linuxMemory) Total(ctx context.Context) (uint64, error) {
	return m.total.Resolve(ctx)
}

func (m *linuxMemory) Free(ctx context.Context) (uint64, error) {
	return m.free.Resolve(ctx)
}

func (m *linuxMemory) Available(ctx context.Context) (uint64, error) {
	return m.available.Resolve(ctx)
}

func (m *linuxMemory) Used(ctx context.Context) (uint64, error) {
	return m.used.Resolve(ctx)
}

func (m *linuxMemory) SwapTotal(ctx context.Context) (uint64, error) {
	return m.swapTotal.Resolve(ctx)
}

func (m *linuxMemory) SwapFree(ctx context.Context) (uint64, error) {
	return m.swapFree.Resolve(ctx)
}
