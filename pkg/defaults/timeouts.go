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

package defaults

import "time"

// Probe timeouts for raw source access.
const (
	// CommandProbeTimeout is the default timeout for subprocess-backed
	// probes. Probes should respect parent context deadlines when shorter.
	CommandProbeTimeout = 5 * time.Second

	// SQLiteBusyTimeout bounds how long a read-only database probe waits
	// on a locked database before reporting the source as unavailable.
	// Kept short on purpose: readouts are point-in-time, never retried.
	SQLiteBusyTimeout = 250 * time.Millisecond

	// FileProbeMaxSize is the maximum size of a file read by a file probe.
	FileProbeMaxSize = 1 << 20
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Report timeouts for multi-group assembly.
const (
	// ReportTimeout is the default timeout for assembling a full report.
	ReportTimeout = 30 * time.Second
)
