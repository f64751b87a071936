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
	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/itemdata"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// ItemReport describes everything the recycler knows about one item.
type ItemReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Item            item.Stack          `json:"item" yaml:"item"`
	DisplayName     string              `json:"displayName" yaml:"displayName"`
	MaxStackSize    int                 `json:"maxStackSize" yaml:"maxStackSize"`
	OreNames        []string            `json:"oreNames,omitempty" yaml:"oreNames,omitempty"`
	Attributes      itemdata.Attributes `json:"attributes" yaml:"attributes"`
	Recipe          *RecipeInfo         `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	MinimumQuantity int                 `json:"minimumQuantity" yaml:"minimumQuantity"`
	Extraction      []scrap.Weighted    `json:"extraction,omitempty" yaml:"extraction,omitempty"`
}

// RecipeInfo is the matched recycling recipe in an ItemReport.
type RecipeInfo struct {
	Input   item.Stack   `json:"input" yaml:"input"`
	Outputs []item.Stack `json:"outputs" yaml:"outputs"`
	Text    string       `json:"text" yaml:"text"`
}

// Describe reports on s.
func (p *Plugin) Describe(s item.Stack) *ItemReport {
	r := &ItemReport{
		Item:            s,
		DisplayName:     p.catalog.DisplayName(s),
		MaxStackSize:    p.maxStackSize(s),
		OreNames:        p.ores.Names(s),
		Attributes:      p.items.Get(s),
		MinimumQuantity: p.recipes.MinimumQuantityToRecycle(s),
	}
	r.Init(header.KindRecipeReport, "")

	if e, ok := p.recipes.Lookup(s); ok {
		r.Recipe = &RecipeInfo{Input: e.Input, Outputs: e.Outputs, Text: e.Format(p.catalog)}
	}
	if x, ok := p.extraction.Lookup(s); ok {
		r.Extraction = x.Table.Entries()
	}
	return r
}
