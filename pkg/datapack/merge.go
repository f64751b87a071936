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
	"maps"
	"strings"

	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/item"
)

// Merge combines packs in order. List sections are concatenated, map
// sections are merged with later packs winning per key, and the last
// rubble block and roll count set wins while drops accumulate.
func Merge(packs ...*Pack) *Pack {
	out := &Pack{
		Header: *header.New(
			header.WithKind(header.KindDataPack),
			header.WithAPIVersion(header.APIVersion),
			header.WithMetadata("name", "merged"),
		),
		Ores:      make(map[string][]item.Stack),
		Preferred: make(map[string]item.Stack),
	}

	var sources []string
	for _, p := range packs {
		if p == nil {
			continue
		}
		sources = append(sources, p.Name())

		out.Items = append(out.Items, p.Items...)
		for name, stacks := range p.Ores {
			out.Ores[name] = append(out.Ores[name], stacks...)
		}
		maps.Copy(out.Preferred, p.Preferred)
		out.OreValues = append(out.OreValues, p.OreValues...)
		out.ItemData = append(out.ItemData, p.ItemData...)
		out.Recipes = append(out.Recipes, p.Recipes...)
		out.Crafting = append(out.Crafting, p.Crafting...)
		out.Extraction = append(out.Extraction, p.Extraction...)
		out.Scrap = append(out.Scrap, p.Scrap...)

		if wd := p.WoodDust; wd != nil {
			if out.WoodDust == nil {
				out.WoodDust = &WoodDust{Ores: make(map[string]int)}
			}
			out.WoodDust.Output = wd.Output
			maps.Copy(out.WoodDust.Ores, wd.Ores)
		}
		if r := p.Rubble; r != nil {
			if out.Rubble == nil {
				out.Rubble = &Rubble{}
			}
			out.Rubble.Block = r.Block
			if r.Rolls > 0 {
				out.Rubble.Rolls = r.Rolls
			}
			out.Rubble.Drops = append(out.Rubble.Drops, r.Drops...)
		}
	}

	out.Metadata["sources"] = strings.Join(sources, ",")
	out.Source = "merged"
	return out
}
