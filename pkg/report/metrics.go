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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportAssemblyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostfacts_report_assembly_duration_seconds",
			Help:    "Time taken to assemble a complete machine report",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	reportAssemblyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostfacts_report_assembly_total",
			Help: "Total number of report assembly attempts",
		},
		[]string{"status"}, // success or error
	)

	reportGroupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostfacts_report_group_duration_seconds",
			Help:    "Time taken to resolve individual readout groups",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"group"},
	)

	reportOmittedFields = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostfacts_report_omitted_fields",
			Help: "Number of unresolvable fields in the last assembled report",
		},
	)
)
