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

package report

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hostfacts/hostfacts/pkg/header"
	"github.com/hostfacts/hostfacts/pkg/pkgcount"
	"github.com/hostfacts/hostfacts/pkg/reading"
	"github.com/hostfacts/hostfacts/pkg/readout"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// Assembler builds machine reports from the readout facade and the
// package-manager registry. The zero value is not usable; use NewAssembler
// for production wiring or populate the fields directly in tests.
type Assembler struct {
	// Version is the tool version stamped into the report header.
	Version string

	// Host is the platform readout facade.
	Host *readout.Host

	// Managers is the package-manager registry. Nil skips the packages
	// summary entirely.
	Managers *pkgcount.Registry

	// ShellFormat selects how the shell field is reported.
	ShellFormat readout.ShellFormat
}

// NewAssembler wires an Assembler against the live host.
func NewAssembler(version string) *Assembler {
	return &Assembler{
		Version:  version,
		Host:     readout.New(readout.DefaultContext()),
		Managers: pkgcount.NewRegistry(pkgcount.DefaultManagers()...),
	}
}

// Assemble resolves every readout group in parallel and returns the
// report. Field failures become omissions; the only error returned is
// context cancellation.
func (a *Assembler) Assemble(ctx context.Context) (*Report, error) {
	slog.Debug("starting report assembly")

	start := time.Now()
	defer func() {
		reportAssemblyDuration.Observe(time.Since(start).Seconds())
	}()

	rep := NewReport()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		groupStart := time.Now()
		defer func() {
			reportGroupDuration.WithLabelValues("metadata").Observe(time.Since(groupStart).Seconds())
		}()
		host, err := a.Host.General.Hostname(gctx)
		if err != nil {
			slog.Debug("hostname unresolved for report metadata", "error", err)
		}
		mu.Lock()
		rep.Init(header.KindReport, FullAPIVersion, a.Version)
		if host != "" {
			rep.Metadata["source-host"] = host
		}
		mu.Unlock()
		return gctx.Err()
	})

	builders := []struct {
		group reading.Group
		build func(context.Context) reading.Section
	}{
		{reading.GroupGeneral, a.generalSection},
		{reading.GroupMemory, a.memorySection},
		{reading.GroupBattery, a.batterySection},
		{reading.GroupKernel, a.kernelSection},
		{reading.GroupProduct, a.productSection},
		{reading.GroupNetwork, a.networkSection},
		{reading.GroupInit, a.initSection},
	}
	for _, b := range builders {
		g.Go(func() error {
			groupStart := time.Now()
			defer func() {
				reportGroupDuration.WithLabelValues(string(b.group)).Observe(time.Since(groupStart).Seconds())
			}()
			slog.Debug("resolving readout group", "group", b.group)
			section := b.build(gctx)
			mu.Lock()
			rep.Sections = append(rep.Sections, section)
			mu.Unlock()
			return gctx.Err()
		})
	}

	if a.Managers != nil {
		g.Go(func() error {
			groupStart := time.Now()
			defer func() {
				reportGroupDuration.WithLabelValues(string(reading.GroupPackages)).Observe(time.Since(groupStart).Seconds())
			}()
			slog.Debug("counting packages")
			summary := a.Managers.Count(gctx)
			mu.Lock()
			rep.Packages = summary
			mu.Unlock()
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		reportAssemblyTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// Group resolution order is nondeterministic; report order is not.
	order := func(g reading.Group) int {
		return slices.Index(reading.Groups, g)
	}
	slices.SortFunc(rep.Sections, func(x, y reading.Section) int {
		return order(x.Group) - order(y.Group)
	})

	omitted := 0
	for _, s := range rep.Sections {
		omitted += len(s.Omitted)
	}
	reportOmittedFields.Set(float64(omitted))
	reportAssemblyTotal.WithLabelValues("success").Inc()

	slog.Debug("report assembly complete",
		slog.Int("sections", len(rep.Sections)),
		slog.Int("omitted_fields", omitted),
	)

	return rep, nil
}

func (a *Assembler) generalSection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupGeneral)
	gen := a.Host.General

	addString(ctx, b, reading.KeyHostname, gen.Hostname)
	addString(ctx, b, reading.KeyUsername, gen.Username)
	addString(ctx, b, reading.KeyDistribution, gen.Distribution)
	addString(ctx, b, reading.KeyDesktopEnvironment, gen.DesktopEnvironment)
	addString(ctx, b, reading.KeyWindowManager, gen.WindowManager)
	addString(ctx, b, reading.KeyShell, func(ctx context.Context) (string, error) {
		return gen.Shell(ctx, a.ShellFormat)
	})
	addString(ctx, b, reading.KeyTerminal, gen.Terminal)

	if d, err := gen.Uptime(ctx); err != nil {
		omit(b, reading.KeyUptimeSeconds, err)
	} else {
		b.SetUint64(reading.KeyUptimeSeconds, uint64(d.Seconds()))
	}

	addString(ctx, b, reading.KeyCPUModel, gen.CPUModel)
	addInt64(ctx, b, reading.KeyCPUCores, gen.CPUCores)
	addInt64(ctx, b, reading.KeyCPUThreads, gen.CPUThreads)

	return b.Build()
}

func (a *Assembler) memorySection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupMemory)
	m := a.Host.Memory

	addUint64(ctx, b, reading.KeyMemTotal, m.Total)
	addUint64(ctx, b, reading.KeyMemFree, m.Free)
	addUint64(ctx, b, reading.KeyMemAvailable, m.Available)
	addUint64(ctx, b, reading.KeyMemUsed, m.Used)
	addUint64(ctx, b, reading.KeySwapTotal, m.SwapTotal)
	addUint64(ctx, b, reading.KeySwapFree, m.SwapFree)

	return b.Build()
}

func (a *Assembler) batterySection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupBattery)
	bat := a.Host.Battery

	addInt64(ctx, b, reading.KeyBatteryPercentage, bat.Percentage)
	addString(ctx, b, reading.KeyBatteryState, func(ctx context.Context) (string, error) {
		state, err := bat.State(ctx)
		return string(state), err
	})

	return b.Build()
}

func (a *Assembler) kernelSection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupKernel)
	k := a.Host.Kernel

	addString(ctx, b, reading.KeyKernelRelease, k.Release)
	addString(ctx, b, reading.KeyKernelType, k.Type)

	return b.Build()
}

func (a *Assembler) productSection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupProduct)
	p := a.Host.Product

	addString(ctx, b, reading.KeyProductVendor, p.Vendor)
	addString(ctx, b, reading.KeyProductFamily, p.Family)
	addString(ctx, b, reading.KeyProductName, p.Name)
	addString(ctx, b, reading.KeyProductVersion, p.Version)
	addString(ctx, b, reading.KeyMachineID, p.MachineID)
	addString(ctx, b, reading.KeyProductUUID, p.ProductUUID)

	return b.Build()
}

func (a *Assembler) networkSection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupNetwork)
	n := a.Host.Network

	addString(ctx, b, reading.KeyNetInterface, n.Interface)
	addString(ctx, b, reading.KeyLocalIP, n.LocalIP)

	return b.Build()
}

func (a *Assembler) initSection(ctx context.Context) reading.Section {
	b := reading.NewSectionBuilder(reading.GroupInit)
	i := a.Host.Init

	addString(ctx, b, reading.KeyInitName, i.Name)
	addString(ctx, b, reading.KeyInitVersion, i.Version)
	addString(ctx, b, reading.KeyVirtualization, i.Virtualization)

	return b.Build()
}

func addString(ctx context.Context, b *reading.SectionBuilder, key string, fetch func(context.Context) (string, error)) {
	if v, err := fetch(ctx); err != nil {
		omit(b, key, err)
	} else {
		b.SetString(key, v)
	}
}

func addInt64(ctx context.Context, b *reading.SectionBuilder, key string, fetch func(context.Context) (int64, error)) {
	if v, err := fetch(ctx); err != nil {
		omit(b, key, err)
	} else {
		b.SetInt64(key, v)
	}
}

func addUint64(ctx context.Context, b *reading.SectionBuilder, key string, fetch func(context.Context) (uint64, error)) {
	if v, err := fetch(ctx); err != nil {
		omit(b, key, err)
	} else {
		b.SetUint64(key, v)
	}
}

func omit(b *reading.SectionBuilder, key string, err error) {
	b.Omit(key, omissionReason(err))
}

// omissionReason renders a compact reason for a skipped field. Expected
// absences stay terse; real faults keep the last attempt's diagnostics.
func omissionReason(err error) string {
	if resolve.IsUnavailable(err) {
		return "unavailable on this host"
	}
	var f *resolve.Failure
	if errors.As(err, &f) && len(f.Attempts) > 0 {
		return f.Attempts[len(f.Attempts)-1].Error()
	}
	return err.Error()
}
