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
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/matrix"
)

// Tables holds one weight table per (scrap value, processing core) pair.
type Tables struct {
	mu     sync.RWMutex
	grid   *matrix.Matrix[*WeightTable]
	frozen bool
}

// NewTables creates an empty value×core grid.
func NewTables() *Tables {
	grid, err := matrix.New[*WeightTable](len(Values()), len(Cores()))
	if err != nil {
		panic(err)
	}
	return &Tables{grid: grid}
}

// Set installs t for value v under core c.
func (x *Tables) Set(v Value, c Core, t *WeightTable) error {
	if t == nil {
		return fmt.Errorf("scrap table %s/%s: %w", v, c, ErrEmptyTable)
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.frozen {
		return item.ErrFrozen
	}
	if err := x.grid.Set(int(v), int(c), t); err != nil {
		return fmt.Errorf("scrap table %s/%s: %w", v, c, err)
	}
	return nil
}

// Table returns the table for value v under core c.
func (x *Tables) Table(v Value, c Core) (*WeightTable, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	t, ok, err := x.grid.Get(int(v), int(c))
	if err != nil || !ok {
		return nil, false
	}
	return t, true
}

// Roll draws from the table for v under c. It returns false when no table
// is installed or the "nothing" entry is drawn.
func (x *Tables) Roll(v Value, c Core, rng *rand.Rand) (item.Stack, bool) {
	t, ok := x.Table(v, c)
	if !ok {
		return item.Stack{}, false
	}
	s, ok, err := t.Pick(rng)
	if err != nil {
		return item.Stack{}, false
	}
	return s, ok
}

// Len returns the number of installed tables.
func (x *Tables) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n := 0
	for range x.grid.All() {
		n++
	}
	return n
}

// Freeze makes the tables read-only.
func (x *Tables) Freeze() {
	x.mu.Lock()
	x.frozen = true
	x.mu.Unlock()
}
