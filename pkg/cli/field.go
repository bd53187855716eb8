/*
Copyright © 2025 Hostfacts Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hostfacts/hostfacts/pkg/defaults"
	"github.com/hostfacts/hostfacts/pkg/pkgcount"
	"github.com/hostfacts/hostfacts/pkg/readout"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// fieldResolver resolves one named field against the host facade.
type fieldResolver func(ctx context.Context, h *readout.Host) (any, error)

// fieldResolvers maps dotted field names to their resolvers. Names follow
// the report layout: group dot key.
var fieldResolvers = map[string]fieldResolver{
	"general.hostname": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.Hostname(ctx)
	},
	"general.username": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.Username(ctx)
	},
	"general.distribution": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.Distribution(ctx)
	},
	"general.desktop-environment": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.DesktopEnvironment(ctx)
	},
	"general.window-manager": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.WindowManager(ctx)
	},
	"general.shell": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.Shell(ctx, readout.ShellName)
	},
	"general.terminal": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.Terminal(ctx)
	},
	"general.uptime-seconds": func(ctx context.Context, h *readout.Host) (any, error) {
		d, err := h.General.Uptime(ctx)
		if err != nil {
			return nil, err
		}
		return int64(d.Seconds()), nil
	},
	"general.cpu-model": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.CPUModel(ctx)
	},
	"general.cpu-cores": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.CPUCores(ctx)
	},
	"general.cpu-threads": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.General.CPUThreads(ctx)
	},
	"memory.total": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.Total(ctx)
	},
	"memory.free": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.Free(ctx)
	},
	"memory.available": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.Available(ctx)
	},
	"memory.used": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.Used(ctx)
	},
	"memory.swap-total": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.SwapTotal(ctx)
	},
	"memory.swap-free": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Memory.SwapFree(ctx)
	},
	"battery.percentage": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Battery.Percentage(ctx)
	},
	"battery.state": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Battery.State(ctx)
	},
	"kernel.release": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Kernel.Release(ctx)
	},
	"kernel.type": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Kernel.Type(ctx)
	},
	"product.vendor": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.Vendor(ctx)
	},
	"product.family": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.Family(ctx)
	},
	"product.name": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.Name(ctx)
	},
	"product.version": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.Version(ctx)
	},
	"product.machine-id": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.MachineID(ctx)
	},
	"product.product-uuid": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Product.ProductUUID(ctx)
	},
	"network.interface": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Network.Interface(ctx)
	},
	"network.local-ip": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Network.LocalIP(ctx)
	},
	"init.name": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Init.Name(ctx)
	},
	"init.version": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Init.Version(ctx)
	},
	"init.virtualization": func(ctx context.Context, h *readout.Host) (any, error) {
		return h.Init.Virtualization(ctx)
	},
	"packages.total": func(ctx context.Context, _ *readout.Host) (any, error) {
		registry := pkgcount.NewRegistry(pkgcount.DefaultManagers()...)
		return registry.Count(ctx).Total, nil
	},
}

// fieldNames returns the supported field names sorted for display.
func fieldNames() []string {
	names := make([]string, 0, len(fieldResolvers))
	for n := range fieldResolvers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func fieldCmd() *cli.Command {
	return &cli.Command{
		Name:                  "field",
		EnableShellCompletion: true,
		Usage:                 "Resolve a single field and print its value",
		ArgsUsage:             "<name>",
		Description: fmt.Sprintf(`Resolve one field through its fallback chain and print the value.

When every source fails, the command prints the attempted sources with
their failure reasons in chain order and exits non-zero. This is the
fastest way to see why a field comes back empty in a report.

Supported fields:
  %s`, strings.Join(fieldNames(), "\n  ")),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fieldName := cmd.Args().First()
			if fieldName == "" {
				return fmt.Errorf("field name required, supported: %v", fieldNames())
			}

			resolver, ok := fieldResolvers[fieldName]
			if !ok {
				return fmt.Errorf("unknown field: %q, supported: %v", fieldName, fieldNames())
			}

			rctx, cancel := context.WithTimeout(ctx, defaults.ReportTimeout)
			defer cancel()

			value, err := resolver(rctx, readout.New(readout.DefaultContext()))
			if err != nil {
				return fieldError(fieldName, err)
			}

			fmt.Fprintln(os.Stdout, value)
			return nil
		},
	}
}

// fieldError renders a resolution failure with one line per attempted
// source, in chain order.
func fieldError(fieldName string, err error) error {
	var f *resolve.Failure
	if !errors.As(err, &f) {
		return fmt.Errorf("%s: %w", fieldName, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s did not resolve; attempted sources:", fieldName)
	for _, reason := range f.Reasons() {
		sb.WriteString("\n  ")
		sb.WriteString(reason)
	}
	return errors.New(sb.String())
}
