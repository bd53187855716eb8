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

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hostfacts/hostfacts/pkg/defaults"
)

// CommandOption configures a command probe.
type CommandOption func(*Command)

// WithTimeout overrides the default subprocess timeout.
func WithTimeout(d time.Duration) CommandOption {
	return func(c *Command) {
		c.timeout = d
	}
}

// Command runs one external command and captures its stdout. Availability
// is an exec.LookPath check, so a missing binary is reported without a
// spawn. A non-zero exit is an I/O failure carrying the exit code and a
// stderr excerpt.
type Command struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewCommand creates a command probe.
func NewCommand(name string, args ...string) Command {
	return Command{
		name:    name,
		args:    args,
		timeout: defaults.CommandProbeTimeout,
	}
}

// WithOptions returns a copy of the probe with the given options applied.
func (c Command) WithOptions(opts ...CommandOption) Command {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Available reports whether the command is on the search path.
func (c Command) Available() bool {
	_, err := exec.LookPath(c.name)
	return err == nil
}

// Fetch runs the command and returns its stdout. The timeout bounds a
// wedged subprocess; output interpretation belongs to the field parser.
func (c Command) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s exited with code %d: %s",
				c.name, exitErr.ExitCode(), firstLine(stderr.String()))
		}
		return "", fmt.Errorf("failed to run %s: %w", c.name, err)
	}

	return stdout.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
