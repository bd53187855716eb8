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

package report

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hostfacts/hostfacts/pkg/defaults"
	"github.com/hostfacts/hostfacts/pkg/header"
	"github.com/hostfacts/hostfacts/pkg/pkgcount"
	"github.com/hostfacts/hostfacts/pkg/serializer"
)

// PackageSummary is the response body for the packages endpoint: the
// package-count summary wrapped in the standard resource envelope.
type PackageSummary struct {
	header.Header `json:",inline" yaml:",inline"`

	Packages *pkgcount.Summary `json:"packages" yaml:"packages"`
}

// HandleReport handles GET requests for a full machine report.
func (a *Assembler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReportTimeout)
	defer cancel()

	rep, err := a.Assemble(ctx)
	if err != nil {
		slog.Error("failed to assemble report", "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			http.Error(w, "Request Timeout", http.StatusRequestTimeout)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, rep)
}

// HandlePackages handles GET requests for the package-count summary alone.
// It counts on demand without assembling the readout sections.
func (a *Assembler) HandlePackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.Managers == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReportTimeout)
	defer cancel()

	resp := &PackageSummary{
		Packages: a.Managers.Count(ctx),
	}
	resp.Init(header.KindPackageSummary, FullAPIVersion, a.Version)

	serializer.RespondJSON(w, http.StatusOK, resp)
}
