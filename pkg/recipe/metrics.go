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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipePutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recycler_recipe_put_total",
			Help: "Total number of recipe registrations by result",
		},
		[]string{"result"},
	)

	recipeLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recycler_recipe_lookup_total",
			Help: "Total number of recipe lookups by match kind (exact, wildcard, miss)",
		},
		[]string{"match"},
	)

	recipeOutputStacks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recycler_recipe_output_stacks",
			Help:    "Number of output stacks per stored recipe after normalization",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		},
	)
)
