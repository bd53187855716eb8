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
	"os"
	"path/filepath"

	"github.com/hostfacts/hostfacts/pkg/probe"
)

// Context pins the host surfaces the readout chains probe. The zero value
// is not usable; call DefaultContext for production roots, or build one by
// hand in tests to point the chains at fixture directories.
type Context struct {
	// ProcRoot is the procfs mount point, normally /proc.
	ProcRoot string
	// SysRoot is the sysfs mount point, normally /sys.
	SysRoot string
	// EtcRoot is the host configuration root, normally /etc.
	EtcRoot string
	// UsrLibRoot is the vendor configuration root, normally /usr/lib.
	UsrLibRoot string
	// VarRoot is the state root, normally /var.
	VarRoot string
	// Environ looks up process environment variables.
	Environ probe.LookupFunc
}

// DefaultContext returns a Context wired to the live host.
func DefaultContext() *Context {
	return &Context{
		ProcRoot:   "/proc",
		SysRoot:    "/sys",
		EtcRoot:    "/etc",
		UsrLibRoot: "/usr/lib",
		VarRoot:    "/var",
		Environ:    os.LookupEnv,
	}
}

func (c *Context) proc(parts ...string) string {
	return filepath.Join(append([]string{c.ProcRoot}, parts...)...)
}

func (c *Context) sys(parts ...string) string {
	return filepath.Join(append([]string{c.SysRoot}, parts...)...)
}

func (c *Context) etc(parts ...string) string {
	return filepath.Join(append([]string{c.EtcRoot}, parts...)...)
}

func (c *Context) usrLib(parts ...string) string {
	return filepath.Join(append([]string{c.UsrLibRoot}, parts...)...)
}

func (c *Context) varDir(parts ...string) string {
	return filepath.Join(append([]string{c.VarRoot}, parts...)...)
}

func (c *Context) env(key string) probe.EnvVar {
	return probe.NewEnvVarWithLookup(key, c.Environ)
}
