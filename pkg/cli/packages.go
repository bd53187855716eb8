/*
Copyright © 2025 Hostfacts Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hostfacts/hostfacts/pkg/defaults"
	"github.com/hostfacts/hostfacts/pkg/header"
	"github.com/hostfacts/hostfacts/pkg/pkgcount"
	"github.com/hostfacts/hostfacts/pkg/report"
	"github.com/hostfacts/hostfacts/pkg/serializer"
)

func packagesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "packages",
		EnableShellCompletion: true,
		Usage:                 "Count installed packages across package managers",
		Description: `Count installed packages for every package manager present on this
machine. Counting is additive: each manager contributes its own count,
managers that are not installed are skipped, and a manager whose store
cannot be read is listed under failures without suppressing the rest.

The summary can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rctx, cancel := context.WithTimeout(ctx, defaults.ReportTimeout)
			defer cancel()

			registry := pkgcount.NewRegistry(pkgcount.DefaultManagers()...)

			resp := &report.PackageSummary{
				Packages: registry.Count(rctx),
			}
			resp.Init(header.KindPackageSummary, report.FullAPIVersion, version)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, resp)
		},
	}
}
