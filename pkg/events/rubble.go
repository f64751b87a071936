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

package events

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/blockartistry/recycler/pkg/item"
)

// RubbleDrop is one possible drop from a rubble pile.
type RubbleDrop struct {
	Item   item.Stack `json:"item" yaml:"item"`
	Min    int        `json:"min" yaml:"min"`
	Max    int        `json:"max" yaml:"max"`
	Weight int        `json:"weight" yaml:"weight"`
}

// Validate checks the quantity range and weight.
func (d RubbleDrop) Validate() error {
	if err := d.Item.Validate(); err != nil {
		return err
	}
	if d.Min < 1 || d.Max < d.Min {
		return fmt.Errorf("rubble drop %s: bad quantity range %d..%d", d.Item.Name, d.Min, d.Max)
	}
	if d.Weight <= 0 {
		return fmt.Errorf("rubble drop %s: weight %d must be positive", d.Item.Name, d.Weight)
	}
	return nil
}

// Rubble replaces the drops of a rubble pile block with weighted scrap.
type Rubble struct {
	block item.Stack
	rolls int

	mu    sync.Mutex
	rng   *rand.Rand
	drops []RubbleDrop
	total int
}

// NewRubble creates a rubble pile for block that rolls its drop table
// rolls times per harvest.
func NewRubble(block item.Stack, rolls int, rng *rand.Rand) *Rubble {
	if rolls < 1 {
		rolls = 1
	}
	return &Rubble{block: block, rolls: rolls, rng: rng}
}

// AddDrop adds a possible drop.
func (r *Rubble) AddDrop(d RubbleDrop) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drops = append(r.drops, d)
	r.total += d.Weight
	return nil
}

// Len returns the number of possible drops.
func (r *Rubble) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drops)
}

// Roll draws the drops for one harvest, fortune adding extra rolls.
func (r *Rubble) Roll(fortune int) []item.Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.total == 0 {
		return nil
	}

	out := make([]item.Stack, 0, r.rolls+fortune)
	for range r.rolls + max(fortune, 0) {
		n := r.rng.IntN(r.total)
		for _, d := range r.drops {
			if n < d.Weight {
				qty := d.Min + r.rng.IntN(d.Max-d.Min+1)
				out = append(out, d.Item.WithQuantity(qty))
				break
			}
			n -= d.Weight
		}
	}
	return item.Coalesce(out)
}

// Hook returns the harvest hook for the pile. It ignores other blocks and
// silk-touch harvests.
func (r *Rubble) Hook() Hook {
	return func(ev *HarvestEvent) bool {
		if ev.SilkTouch || !r.block.Matches(ev.Block) {
			return false
		}
		ev.Drops = r.Roll(ev.Fortune)
		return true
	}
}
