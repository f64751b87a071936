// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package integration

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanRecipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recycler_scan_recipes_total",
			Help: "Total number of host crafting recipes scanned by pass and outcome",
		},
		[]string{"pass", "outcome"},
	)

	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recycler_scan_duration_seconds",
			Help:    "Duration of the post-init recipe scan in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	tableEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recycler_table_entries",
			Help: "Number of entries per table at freeze time",
		},
		[]string{"table"},
	)
)

// WriteMetricsFile writes every registered metric to path in the text
// exposition format.
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
