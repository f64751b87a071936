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

package decompose

import (
	"errors"
	"fmt"

	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
)

var (
	// ErrNoOutput is returned for recipes that produce nothing.
	ErrNoOutput = errors.New("recipe has no output")

	// ErrNoIngredients is returned for recipes without any input.
	ErrNoIngredients = errors.New("recipe has no ingredients")

	// ErrUnknownSymbol is returned when a shape uses a symbol missing from
	// the recipe keys.
	ErrUnknownSymbol = errors.New("shape symbol has no key")

	// ErrUnresolvedOre is returned when an ore ingredient has no stack in
	// the dictionary.
	ErrUnresolvedOre = errors.New("ore ingredient has no registered stack")
)

// OreResolver maps an ore name to a representative stack.
type OreResolver interface {
	Stack(name string, qty int) (item.Stack, bool)
}

// Decomposer resolves recipe ingredients to stacks.
type Decomposer struct {
	ores OreResolver
}

// New creates a decomposer. A nil resolver fails every ore ingredient.
func New(ores OreResolver) *Decomposer {
	return &Decomposer{ores: ores}
}

// Decompose returns the stacks consumed by one craft of r, coalesced in
// order of first use. Shaped recipes count each symbol in the grid; blank
// cells are skipped.
func (d *Decomposer) Decompose(r host.CraftingRecipe) ([]item.Stack, error) {
	if r.Output == nil || r.Output.Quantity < 1 {
		return nil, fmt.Errorf("%s: %w", r.ID, ErrNoOutput)
	}

	var out []item.Stack
	if r.Shaped() {
		for _, row := range r.Shape {
			for _, sym := range row {
				if sym == ' ' {
					continue
				}
				ing, ok := r.Keys[string(sym)]
				if !ok {
					return nil, fmt.Errorf("%s: %w: %q", r.ID, ErrUnknownSymbol, sym)
				}
				s, err := d.resolve(ing)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", r.ID, err)
				}
				out = append(out, s)
			}
		}
	} else {
		for _, ing := range r.Ingredients {
			s, err := d.resolve(ing)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.ID, err)
			}
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", r.ID, ErrNoIngredients)
	}
	return item.Coalesce(out), nil
}

func (d *Decomposer) resolve(ing host.Ingredient) (item.Stack, error) {
	if !ing.IsOre() {
		return ing.Stack.WithQuantity(1), nil
	}
	if d.ores != nil {
		if s, ok := d.ores.Stack(ing.Ore, 1); ok {
			return s, nil
		}
	}
	return item.Stack{}, fmt.Errorf("%w: %s", ErrUnresolvedOre, ing.Ore)
}
