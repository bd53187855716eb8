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

	"github.com/hostfacts/hostfacts/pkg/header"
	"github.com/hostfacts/hostfacts/pkg/pkgcount"
	"github.com/hostfacts/hostfacts/pkg/reading"
)

// FullAPIVersion is the schema version stamped on assembled reports.
const FullAPIVersion = "hostfacts.dev/v1"

// Reporter assembles machine reports.
type Reporter interface {
	Assemble(ctx context.Context) (*Report, error)
}

// Report is a point-in-time readout of one machine: resolved sections per
// readout group plus the package-count summary.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Sections contains the resolved groups in canonical group order.
	Sections []reading.Section `json:"sections" yaml:"sections"`

	// Packages summarizes package counts across the declared managers.
	Packages *pkgcount.Summary `json:"packages,omitempty" yaml:"packages,omitempty"`
}

// NewReport creates an empty Report with an initialized Sections slice.
func NewReport() *Report {
	return &Report{
		Sections: make([]reading.Section, 0, len(reading.Groups)),
	}
}

// Section returns the section for the given group, or nil if the report
// does not carry it.
func (r *Report) Section(group reading.Group) *reading.Section {
	for i := range r.Sections {
		if r.Sections[i].Group == group {
			return &r.Sections[i]
		}
	}
	return nil
}
