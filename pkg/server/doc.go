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

// Package server provides the HTTP host for the machine readout API.
//
// The server is a generic HTTP shell: it owns the listener, middleware
// chain, and operational endpoints, while API handlers are injected at
// construction time by the caller.
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - API version negotiation via Accept header
//   - Panic recovery for resilience
//   - Graceful shutdown on SIGINT and SIGTERM
//   - Health and readiness probes
//   - Prometheus RED metrics and the /metrics exposition endpoint
//
// Basic usage:
//
//	s := server.New(
//	    server.WithName("hostfacts-api"),
//	    server.WithVersion("1.0.0"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/report": reportHandler,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    // handle fatal server error
//	}
//
// System endpoints /health, /ready, and /metrics are always registered and
// bypass the rate limiter. Injected handlers get the full middleware chain.
package server
