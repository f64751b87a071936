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

package host

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blockartistry/recycler/pkg/item"
)

// ErrInvalidRecipe is returned when a crafting recipe is malformed.
var ErrInvalidRecipe = errors.New("invalid crafting recipe")

// Ingredient is one crafting input: a concrete stack or an ore name.
type Ingredient struct {
	Stack *item.Stack
	Ore   string
}

// Item returns an ingredient for a concrete stack.
func Item(s item.Stack) Ingredient {
	return Ingredient{Stack: &s}
}

// Ore returns an ingredient for an ore dictionary name.
func Ore(name string) Ingredient {
	return Ingredient{Ore: name}
}

// ParseIngredient parses "modid:path[:meta]" as a stack and anything
// without a colon as an ore name.
func ParseIngredient(text string) (Ingredient, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Ingredient{}, fmt.Errorf("%w: empty ingredient", ErrInvalidRecipe)
	}
	if !strings.Contains(text, ":") {
		return Ore(text), nil
	}
	s, err := item.Parse(text)
	if err != nil {
		return Ingredient{}, err
	}
	return Item(s), nil
}

// IsOre reports whether the ingredient names an ore.
func (i Ingredient) IsOre() bool {
	return i.Stack == nil
}

// String returns the text form accepted by ParseIngredient.
func (i Ingredient) String() string {
	if i.Stack != nil {
		return i.Stack.String()
	}
	return i.Ore
}

// MarshalText implements encoding.TextMarshaler.
func (i Ingredient) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Ingredient) UnmarshalText(text []byte) error {
	v, err := ParseIngredient(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// MarshalYAML encodes the ingredient as a scalar.
func (i Ingredient) MarshalYAML() (any, error) {
	return i.String(), nil
}

// UnmarshalYAML decodes a scalar ingredient.
func (i *Ingredient) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: ingredient must be a string", node.Line, ErrInvalidRecipe)
	}
	return i.UnmarshalText([]byte(node.Value))
}

// CraftingRecipe is a recipe registered with the host crafting manager.
type CraftingRecipe struct {
	ID           string                `json:"id" yaml:"id"`
	Output       *item.Stack           `json:"output,omitempty" yaml:"output,omitempty"`
	Shape        []string              `json:"shape,omitempty" yaml:"shape,omitempty"`
	Keys         map[string]Ingredient `json:"keys,omitempty" yaml:"keys,omitempty"`
	Ingredients  []Ingredient          `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	RequiresOres []string              `json:"requiresOres,omitempty" yaml:"requiresOres,omitempty"`
}

// Shaped reports whether the recipe uses a crafting grid.
func (r CraftingRecipe) Shaped() bool {
	return len(r.Shape) > 0
}

// Validate checks that the recipe is structurally sound. A recipe without
// an output is valid; the host registers such recipes for special crafting.
func (r CraftingRecipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecipe)
	}
	if r.Output != nil {
		if err := r.Output.Validate(); err != nil {
			return fmt.Errorf("recipe %s: %w", r.ID, err)
		}
	}
	if r.Shaped() && len(r.Ingredients) > 0 {
		return fmt.Errorf("%w: recipe %s is both shaped and shapeless", ErrInvalidRecipe, r.ID)
	}
	for sym := range r.Keys {
		if len([]rune(sym)) != 1 || sym == " " {
			return fmt.Errorf("%w: recipe %s has bad key symbol %q", ErrInvalidRecipe, r.ID, sym)
		}
	}
	return nil
}

func sortedSymbols(keys map[string]Ingredient) []string {
	return slices.Sorted(maps.Keys(keys))
}

// Source enumerates the crafting recipes registered with the host.
type Source interface {
	Recipes(ctx context.Context) ([]CraftingRecipe, error)
}

// StaticSource serves a fixed recipe list.
type StaticSource []CraftingRecipe

// Recipes returns the list in order.
func (s StaticSource) Recipes(ctx context.Context) ([]CraftingRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]CraftingRecipe, len(s))
	copy(out, s)
	return out, nil
}

// Concat enumerates every source in order.
func Concat(sources ...Source) Source {
	return multiSource(sources)
}

type multiSource []Source

func (m multiSource) Recipes(ctx context.Context) ([]CraftingRecipe, error) {
	var out []CraftingRecipe
	for _, s := range m {
		rs, err := s.Recipes(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}
