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

package server

import (
	"net/http"
	"time"

	"github.com/hostfacts/hostfacts/pkg/serializer"
)

// HealthResponse is the body of the /health and /ready probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func writeStatus(w http.ResponseWriter, code int, status, reason string) {
	serializer.RespondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Reason:    reason,
	})
}

// handleHealth reports liveness. The process answering at all is the
// signal; there is no deeper check to run.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeStatus(w, http.StatusOK, "healthy", "")
}

// handleReady reports readiness, which flips once route setup completes
// via SetReady.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		writeStatus(w, http.StatusServiceUnavailable, "not_ready", "service is initializing")
		return
	}
	writeStatus(w, http.StatusOK, "ready", "")
}
