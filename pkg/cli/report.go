/*
Copyright © 2025 Hostfacts Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hostfacts/hostfacts/pkg/defaults"
	"github.com/hostfacts/hostfacts/pkg/readout"
	"github.com/hostfacts/hostfacts/pkg/report"
	"github.com/hostfacts/hostfacts/pkg/serializer"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "report",
		EnableShellCompletion: true,
		Usage:                 "Assemble the full machine report",
		Description: `Assemble a point-in-time report of the machine: general facts
(hostname, user, distribution, desktop, shell, terminal, CPU, uptime),
memory, battery, kernel, product identity, init system, and package
counts across all present package managers.

Every field resolves through its fallback chain independently. A field
whose sources all fail is reported as omitted with a reason; it never
aborts the rest of the report.

The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "shell-path",
				Usage: "Report the full shell path instead of the binary name",
			},
			&cli.BoolFlag{
				Name:  "no-packages",
				Usage: "Skip package counting",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			a := report.NewAssembler(version)
			if cmd.Bool("shell-path") {
				a.ShellFormat = readout.ShellPath
			}
			if cmd.Bool("no-packages") {
				a.Managers = nil
			}

			rctx, cancel := context.WithTimeout(ctx, defaults.ReportTimeout)
			defer cancel()

			rep, err := a.Assemble(rctx)
			if err != nil {
				return fmt.Errorf("error assembling report: %w", err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, rep)
		},
	}
}
