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

package itemdata

import (
	"fmt"
	"strings"

	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// Attributes are the recycler's per-item settings.
type Attributes struct {
	Value                 scrap.Value   `json:"value" yaml:"value"`
	Compost               scrap.Compost `json:"compost" yaml:"compost"`
	RecipeIgnored         bool          `json:"recipeIgnored" yaml:"recipeIgnored"`
	ScrubbedFromOutput    bool          `json:"scrubbedFromOutput" yaml:"scrubbedFromOutput"`
	BlockedFromExtraction bool          `json:"blockedFromExtraction" yaml:"blockedFromExtraction"`
	BlockedFromScrapping  bool          `json:"blockedFromScrapping" yaml:"blockedFromScrapping"`
}

// DefaultAttributes returns the attributes of an item nobody configured.
func DefaultAttributes() Attributes {
	return Attributes{
		Value:                 scrap.ValueStandard,
		Compost:               scrap.CompostNone,
		BlockedFromExtraction: true,
	}
}

// Patch changes selected attributes of one item. Nil fields are left as
// they are.
type Patch struct {
	Item                  item.Stack     `json:"item" yaml:"item"`
	Value                 *scrap.Value   `json:"value,omitempty" yaml:"value,omitempty"`
	Compost               *scrap.Compost `json:"compost,omitempty" yaml:"compost,omitempty"`
	RecipeIgnored         *bool          `json:"recipeIgnored,omitempty" yaml:"recipeIgnored,omitempty"`
	ScrubbedFromOutput    *bool          `json:"scrubbedFromOutput,omitempty" yaml:"scrubbedFromOutput,omitempty"`
	BlockedFromExtraction *bool          `json:"blockedFromExtraction,omitempty" yaml:"blockedFromExtraction,omitempty"`
	BlockedFromScrapping  *bool          `json:"blockedFromScrapping,omitempty" yaml:"blockedFromScrapping,omitempty"`
}

func (p Patch) apply(a Attributes) Attributes {
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.Compost != nil {
		a.Compost = *p.Compost
	}
	if p.RecipeIgnored != nil {
		a.RecipeIgnored = *p.RecipeIgnored
	}
	if p.ScrubbedFromOutput != nil {
		a.ScrubbedFromOutput = *p.ScrubbedFromOutput
	}
	if p.BlockedFromExtraction != nil {
		a.BlockedFromExtraction = *p.BlockedFromExtraction
	}
	if p.BlockedFromScrapping != nil {
		a.BlockedFromScrapping = *p.BlockedFromScrapping
	}
	return a
}

// Registry is the freezable item attribute table.
type Registry struct {
	table *item.Table[Attributes]
}

// NewRegistry creates an empty attribute table.
func NewRegistry() *Registry {
	return &Registry{table: item.NewTable[Attributes]()}
}

// Get returns the attributes for s, inherited from its wildcard entry or
// defaulted when nothing is registered.
func (r *Registry) Get(s item.Stack) Attributes {
	if a, ok := r.table.Get(s.Key()); ok {
		return a
	}
	return DefaultAttributes()
}

// Apply applies p to its item.
func (r *Registry) Apply(p Patch) error {
	if strings.TrimSpace(p.Item.Name) == "" {
		return fmt.Errorf("%w: empty name", item.ErrInvalidStack)
	}
	if p.Value != nil && !p.Value.IsValid() {
		return fmt.Errorf("%w: %s: invalid scrap value %d", item.ErrInvalidStack, p.Item, int(*p.Value))
	}
	return r.table.Update(p.Item.Key(), func(cur Attributes, found bool) Attributes {
		if !found {
			cur = DefaultAttributes()
		}
		return p.apply(cur)
	})
}

// SetValue sets the scrap value of s.
func (r *Registry) SetValue(s item.Stack, v scrap.Value) error {
	return r.Apply(Patch{Item: s, Value: &v})
}

// SetCompost sets the compost ingredient class of s.
func (r *Registry) SetCompost(s item.Stack, c scrap.Compost) error {
	return r.Apply(Patch{Item: s, Compost: &c})
}

// SetRecipeIgnored excludes s from the post-init recipe scan.
func (r *Registry) SetRecipeIgnored(s item.Stack, flag bool) error {
	return r.Apply(Patch{Item: s, RecipeIgnored: &flag})
}

// SetScrubbedFromOutput removes s from recycler output.
func (r *Registry) SetScrubbedFromOutput(s item.Stack, flag bool) error {
	return r.Apply(Patch{Item: s, ScrubbedFromOutput: &flag})
}

// SetBlockedFromExtraction controls whether s may be fed to an extractor.
func (r *Registry) SetBlockedFromExtraction(s item.Stack, flag bool) error {
	return r.Apply(Patch{Item: s, BlockedFromExtraction: &flag})
}

// SetBlockedFromScrapping controls whether s passes through a scrapper
// unchanged.
func (r *Registry) SetBlockedFromScrapping(s item.Stack, flag bool) error {
	return r.Apply(Patch{Item: s, BlockedFromScrapping: &flag})
}

// Value returns the scrap value of s.
func (r *Registry) Value(s item.Stack) scrap.Value { return r.Get(s).Value }

// Compost returns the compost ingredient class of s.
func (r *Registry) Compost(s item.Stack) scrap.Compost { return r.Get(s).Compost }

// IsRecipeIgnored reports whether the recipe scan skips s.
func (r *Registry) IsRecipeIgnored(s item.Stack) bool { return r.Get(s).RecipeIgnored }

// IsScrubbedFromOutput reports whether s is removed from recycler output.
func (r *Registry) IsScrubbedFromOutput(s item.Stack) bool { return r.Get(s).ScrubbedFromOutput }

// IsBlockedFromExtraction reports whether s may not be extracted.
func (r *Registry) IsBlockedFromExtraction(s item.Stack) bool { return r.Get(s).BlockedFromExtraction }

// BlockedFromScrapping reports whether s passes through a scrapper unchanged.
func (r *Registry) BlockedFromScrapping(s item.Stack) bool { return r.Get(s).BlockedFromScrapping }

// Scrub returns stacks without the items scrubbed from output.
func (r *Registry) Scrub(stacks []item.Stack) []item.Stack {
	out := make([]item.Stack, 0, len(stacks))
	for _, s := range stacks {
		if !r.IsScrubbedFromOutput(s) {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of configured entries.
func (r *Registry) Len() int {
	return r.table.Len()
}

// Freeze makes the table read-only.
func (r *Registry) Freeze() {
	r.table.Freeze()
}
