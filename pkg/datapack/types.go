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

package datapack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blockartistry/recycler/pkg/catalog"
	"github.com/blockartistry/recycler/pkg/events"
	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/itemdata"
	"github.com/blockartistry/recycler/pkg/scrap"
	"github.com/blockartistry/recycler/pkg/version"
)

// MetaGameVersion is the header metadata key holding the game version a
// pack targets.
const MetaGameVersion = "gameVersion"

// ErrInvalidPack is returned when a pack fails validation.
var ErrInvalidPack = errors.New("invalid data pack")

// Pack is one data pack document.
type Pack struct {
	header.Header `json:",inline" yaml:",inline"`

	Items      []catalog.Info          `json:"items,omitempty" yaml:"items,omitempty"`
	Ores       map[string][]item.Stack `json:"ores,omitempty" yaml:"ores,omitempty"`
	Preferred  map[string]item.Stack   `json:"preferred,omitempty" yaml:"preferred,omitempty"`
	OreValues  []OreValue              `json:"oreValues,omitempty" yaml:"oreValues,omitempty"`
	WoodDust   *WoodDust               `json:"woodDust,omitempty" yaml:"woodDust,omitempty"`
	ItemData   []itemdata.Patch        `json:"itemData,omitempty" yaml:"itemData,omitempty"`
	Recipes    []Recipe                `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Crafting   []host.CraftingRecipe   `json:"crafting,omitempty" yaml:"crafting,omitempty"`
	Extraction []Extraction            `json:"extraction,omitempty" yaml:"extraction,omitempty"`
	Scrap      []ScrapTable            `json:"scrap,omitempty" yaml:"scrap,omitempty"`
	Rubble     *Rubble                 `json:"rubble,omitempty" yaml:"rubble,omitempty"`

	// Source is the file the pack was read from.
	Source string `json:"-" yaml:"-"`
}

// OreValue assigns a scrap value to every stack registered under the ores.
type OreValue struct {
	Value scrap.Value `json:"value" yaml:"value"`
	Ores  []string    `json:"ores" yaml:"ores"`
}

// WoodDust recycles wood ore stacks into one Output each. Ores maps an ore
// name to the number of items needed per output.
type WoodDust struct {
	Output item.Stack     `json:"output" yaml:"output"`
	Ores   map[string]int `json:"ores" yaml:"ores"`
}

// Recipe is an explicit recycling recipe.
type Recipe struct {
	Input   item.Stack   `json:"input" yaml:"input"`
	Outputs []item.Stack `json:"outputs" yaml:"outputs"`
}

// Weighted is a weighted table entry naming an item, an ore, or nothing.
type Weighted struct {
	Item   *item.Stack `json:"item,omitempty" yaml:"item,omitempty"`
	Ore    string      `json:"ore,omitempty" yaml:"ore,omitempty"`
	Qty    int         `json:"qty,omitempty" yaml:"qty,omitempty"`
	Weight int         `json:"weight" yaml:"weight"`
}

// Extraction maps an input stack to a weighted output table.
type Extraction struct {
	Input   item.Stack `json:"input" yaml:"input"`
	Outputs []Weighted `json:"outputs" yaml:"outputs"`
}

// ScrapTable is the weighted table for one value and core.
type ScrapTable struct {
	Value   scrap.Value `json:"value" yaml:"value"`
	Core    scrap.Core  `json:"core" yaml:"core"`
	Outputs []Weighted  `json:"outputs" yaml:"outputs"`
}

// Rubble configures the rubble pile hook.
type Rubble struct {
	Block item.Stack          `json:"block" yaml:"block"`
	Rolls int                 `json:"rolls,omitempty" yaml:"rolls,omitempty"`
	Drops []events.RubbleDrop `json:"drops" yaml:"drops"`
}

// Name returns the pack name from metadata, falling back to the source.
func (p *Pack) Name() string {
	if n := p.Get("name"); n != "" {
		return n
	}
	return p.Source
}

// GameVersion returns the targeted game version and whether one is set.
func (p *Pack) GameVersion() (version.Version, bool, error) {
	raw := strings.TrimSpace(p.Get(MetaGameVersion))
	if raw == "" {
		return version.Version{}, false, nil
	}
	v, err := version.ParseVersion(raw)
	if err != nil {
		return version.Version{}, false, fmt.Errorf("%w: %s: gameVersion: %w", ErrInvalidPack, p.Name(), err)
	}
	return v, true, nil
}

// Supports reports whether the pack applies to the game version.
func (p *Pack) Supports(game version.Version) (bool, error) {
	v, ok, err := p.GameVersion()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return v.Matches(game), nil
}

// Validate checks the header and every section. All problems are reported.
func (p *Pack) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.Kind != header.KindDataPack {
		add("kind %q, want %s", p.Kind, header.KindDataPack)
	}
	if p.APIVersion != "" && p.APIVersion != header.APIVersion {
		add("apiVersion %q, want %s", p.APIVersion, header.APIVersion)
	}
	if _, _, err := p.GameVersion(); err != nil {
		errs = append(errs, err)
	}

	for i, info := range p.Items {
		if err := info.Item.Validate(); err != nil {
			add("items[%d]: %w", i, err)
		}
	}
	for name, stacks := range p.Ores {
		if name == "" {
			add("ores: empty ore name")
		}
		for _, s := range stacks {
			if err := s.ValidateOutput(); err != nil {
				add("ores[%s]: %w", name, err)
			}
		}
	}
	for name, s := range p.Preferred {
		if s.IsWildcard() {
			add("preferred[%s]: %s is a wildcard", name, s)
		}
	}
	for i, ov := range p.OreValues {
		if !ov.Value.IsValid() {
			add("oreValues[%d]: bad value %d", i, ov.Value)
		}
	}
	if wd := p.WoodDust; wd != nil {
		if err := wd.Output.Validate(); err != nil {
			add("woodDust.output: %w", err)
		}
		for name, n := range wd.Ores {
			if n < 1 {
				add("woodDust.ores[%s]: quantity %d below 1", name, n)
			}
		}
	}
	for i, patch := range p.ItemData {
		if err := patch.Item.ValidateOutput(); err != nil {
			add("itemData[%d]: %w", i, err)
		}
	}
	for i, r := range p.Recipes {
		if err := r.Input.Validate(); err != nil {
			add("recipes[%d].input: %w", i, err)
		}
		for j, o := range r.Outputs {
			if err := o.ValidateOutput(); err != nil {
				add("recipes[%d].outputs[%d]: %w", i, j, err)
			}
		}
	}
	for i, r := range p.Crafting {
		if err := r.Validate(); err != nil {
			add("crafting[%d]: %w", i, err)
		}
	}
	for i, x := range p.Extraction {
		if err := x.Input.Validate(); err != nil {
			add("extraction[%d].input: %w", i, err)
		}
		errs = append(errs, validateWeighted(fmt.Sprintf("extraction[%d]", i), x.Outputs)...)
	}
	for i, t := range p.Scrap {
		if !t.Value.IsValid() {
			add("scrap[%d]: bad value %d", i, t.Value)
		}
		errs = append(errs, validateWeighted(fmt.Sprintf("scrap[%d]", i), t.Outputs)...)
	}
	if r := p.Rubble; r != nil {
		if err := r.Block.Validate(); err != nil {
			add("rubble.block: %w", err)
		}
		for i, d := range r.Drops {
			if err := d.Validate(); err != nil {
				add("rubble.drops[%d]: %w", i, err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidPack, p.Name(), errors.Join(errs...))
}

func validateWeighted(path string, entries []Weighted) []error {
	var errs []error
	if len(entries) == 0 {
		errs = append(errs, fmt.Errorf("%s: %w", path, scrap.ErrEmptyTable))
	}
	for i, w := range entries {
		if w.Weight <= 0 {
			errs = append(errs, fmt.Errorf("%s.outputs[%d]: weight %d must be positive", path, i, w.Weight))
		}
		if w.Item != nil && w.Ore != "" {
			errs = append(errs, fmt.Errorf("%s.outputs[%d]: both item and ore set", path, i))
		}
		if w.Item != nil {
			if err := w.Item.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s.outputs[%d]: %w", path, i, err))
			}
		}
	}
	return errs
}
