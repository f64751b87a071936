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

package scrap

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/blockartistry/recycler/pkg/item"
)

// ErrEmptyTable is returned when picking from a table with no weight.
var ErrEmptyTable = errors.New("weight table is empty")

// Weighted is one weight table entry. A nil Item means "nothing".
type Weighted struct {
	Item   *item.Stack `json:"item,omitempty" yaml:"item,omitempty"`
	Weight int         `json:"weight" yaml:"weight"`
}

// WeightTable picks items with probability proportional to their weight.
type WeightTable struct {
	entries []Weighted
	total   int
}

// NewWeightTable builds a table from entries. Weights must be positive.
func NewWeightTable(entries ...Weighted) (*WeightTable, error) {
	t := &WeightTable{}
	for _, e := range entries {
		if err := t.Add(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends an entry.
func (t *WeightTable) Add(e Weighted) error {
	if e.Weight <= 0 {
		return fmt.Errorf("weight %d must be positive", e.Weight)
	}
	if e.Item != nil {
		if err := e.Item.Validate(); err != nil {
			return err
		}
		s := *e.Item
		e.Item = &s
	}
	t.entries = append(t.entries, e)
	t.total += e.Weight
	return nil
}

// Entries returns a copy of the table's entries.
func (t *WeightTable) Entries() []Weighted {
	out := make([]Weighted, len(t.entries))
	for i, e := range t.entries {
		out[i] = e
		if e.Item != nil {
			s := *e.Item
			out[i].Item = &s
		}
	}
	return out
}

// Clone returns an independent copy of t.
func (t *WeightTable) Clone() *WeightTable {
	return &WeightTable{entries: t.Entries(), total: t.total}
}

// TotalWeight returns the sum of all weights.
func (t *WeightTable) TotalWeight() int {
	return t.total
}

// Pick draws an entry. It returns false when the "nothing" entry is drawn.
func (t *WeightTable) Pick(rng *rand.Rand) (item.Stack, bool, error) {
	if t.total == 0 {
		return item.Stack{}, false, ErrEmptyTable
	}
	n := rng.IntN(t.total)
	for _, e := range t.entries {
		if n < e.Weight {
			if e.Item == nil {
				return item.Stack{}, false, nil
			}
			return *e.Item, true, nil
		}
		n -= e.Weight
	}
	// unreachable while total equals the sum of weights
	return item.Stack{}, false, ErrEmptyTable
}
