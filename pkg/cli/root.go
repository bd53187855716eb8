/*
Copyright © 2025 Hostfacts Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hostfacts/hostfacts/pkg/logging"
)

const (
	name           = "hostfacts"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Machine state readout tool",
		Version:               version,
		EnableShellCompletion: true,
		Description: fmt.Sprintf(`hostfacts - machine state readout

Version: %s
Commit:  %s
Built:   %s

Reads host facts from layered sources (procfs, sysfs, environment,
commands) with per-field fallback chains:

report   - assemble the full machine report
field    - resolve a single field and show the value or why it failed
packages - count installed packages across package managers`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(_ context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
			)
			return nil, nil
		},
		Commands: []*cli.Command{
			reportCmd(),
			fieldCmd(),
			packagesCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the root command. It is called by main.main() and handles
// SIGINT/SIGTERM for graceful cancellation of in-flight readouts.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
