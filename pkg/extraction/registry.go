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

package extraction

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// ErrDuplicate is returned when an extraction recipe already matches the
// input.
var ErrDuplicate = errors.New("extraction recipe already registered")

// Recipe is one extraction recipe. Input.Quantity is the number of items
// consumed per extraction.
type Recipe struct {
	Input item.Stack
	Table *scrap.WeightTable
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() *Recipe {
	return &Recipe{Input: r.Input, Table: r.Table.Clone()}
}

// Registry is the freezable extraction recipe table.
type Registry struct {
	table *item.Table[*Recipe]
}

// NewRegistry creates an empty extraction table.
func NewRegistry() *Registry {
	return &Registry{table: item.NewTable[*Recipe]()}
}

// Add registers an extraction recipe for input. An exact input may shadow
// a wildcard recipe; any other existing match is ErrDuplicate.
func (r *Registry) Add(input item.Stack, outputs ...scrap.Weighted) error {
	if err := input.Validate(); err != nil {
		return err
	}
	tbl, err := scrap.NewWeightTable(outputs...)
	if err != nil {
		return fmt.Errorf("extraction %s: %w", input, err)
	}
	if tbl.TotalWeight() == 0 {
		return fmt.Errorf("extraction %s: %w", input, scrap.ErrEmptyTable)
	}

	stored, err := r.table.Insert(input.Key(), func(existing item.Key) bool {
		return existing.Variant.IsWildcard() && !input.IsWildcard()
	}, func() *Recipe {
		return &Recipe{Input: input, Table: tbl}
	})
	if err != nil {
		return err
	}
	if !stored {
		return fmt.Errorf("%w: %s", ErrDuplicate, input)
	}
	return nil
}

// Lookup returns the recipe for s.
func (r *Registry) Lookup(s item.Stack) (*Recipe, bool) {
	rec, ok := r.table.Get(s.Key())
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// MinimumQuantity returns the items consumed per extraction of s, or 1.
func (r *Registry) MinimumQuantity(s item.Stack) int {
	if rec, ok := r.table.Get(s.Key()); ok {
		return rec.Input.Quantity
	}
	return 1
}

// Extract draws one result for s. It returns false when s has no recipe or
// the draw yields nothing.
func (r *Registry) Extract(s item.Stack, rng *rand.Rand) (item.Stack, bool, error) {
	rec, ok := r.table.Get(s.Key())
	if !ok {
		return item.Stack{}, false, nil
	}
	out, ok, err := rec.Table.Pick(rng)
	if err != nil {
		return item.Stack{}, false, fmt.Errorf("extraction %s: %w", rec.Input, err)
	}
	return out, ok, nil
}

// Recipes returns a copy of every recipe in item order.
func (r *Registry) Recipes() []*Recipe {
	out := make([]*Recipe, 0, r.table.Len())
	for _, rec := range r.table.All() {
		out = append(out, rec.Clone())
	}
	return out
}

// Len returns the number of recipes.
func (r *Registry) Len() int {
	return r.table.Len()
}

// Freeze makes the table read-only.
func (r *Registry) Freeze() {
	r.table.Freeze()
}
