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
	"github.com/prometheus/procfs"

	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// ancestryLimit bounds the parent-chain walk; no sane process tree is
// deeper, and it backstops the visited-set loop protection.
const ancestryLimit = 64

type procEntry struct {
	comm string
	ppid int
}

type procLookup func(pid int) (procEntry, error)

func (c *Context) procFS() (procfs.FS, error) {
	return procfs.NewFS(c.ProcRoot)
}

func procfsLookup(fs procfs.FS) procLookup {
	return func(pid int) (procEntry, error) {
		p, err := fs.Proc(pid)
		if err != nil {
			return procEntry{}, err
		}
		comm, err := p.Comm()
		if err != nil {
			return procEntry{}, err
		}
		stat, err := p.Stat()
		if err != nil {
			return procEntry{}, err
		}
		return procEntry{comm: comm, ppid: stat.PPID}, nil
	}
}

// walkAncestry follows the parent chain from start until match accepts a
// process name, reaching pid 1, or revisiting a pid. A process that exits
// mid-walk reads as unavailable rather than an I/O fault.
func walkAncestry(start int, lookup procLookup, match func(comm string) (string, bool)) (string, error) {
	visited := make(map[int]bool)
	pid := start
	for range ancestryLimit {
		if pid <= 1 || visited[pid] {
			break
		}
		visited[pid] = true
		entry, err := lookup(pid)
		if err != nil {
			return "", resolve.Unavailable("", "process tree changed during walk")
		}
		if name, ok := match(entry.comm); ok {
			return name, nil
		}
		if entry.ppid == pid {
			break
		}
		pid = entry.ppid
	}
	return "", resolve.Unavailable("", "no matching process in ancestry")
}

// firstKnownComm scans the full process table for the first name match
// accepts. Processes that exit between listing and reading are skipped.
func firstKnownComm(fs procfs.FS, match func(comm string) (string, bool)) (string, error) {
	procs, err := fs.AllProcs()
	if err != nil {
		return "", err
	}
	for _, p := range procs {
		comm, err := p.Comm()
		if err != nil {
			continue
		}
		if name, ok := match(comm); ok {
			return name, nil
		}
	}
	return "", resolve.Unavailable("", "no matching process running")
}
