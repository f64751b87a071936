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

/*
Package datapack loads the YAML documents that describe the recycler's data:
item catalog entries, ore dictionary registrations, per-item attributes,
explicit recycling recipes, extra crafting recipes, extraction and scrap
tables, and rubble pile drops.

A pack is a header followed by optional sections:

	kind: DataPack
	apiVersion: recycler.blockartistry.org/v1
	metadata:
	  name: builtin
	  gameVersion: "1.7.10"
	ores:
	  ingotIron: ["minecraft:iron_ingot"]
	recipes:
	  - input: minecraft:anvil:1
	    outputs: ["20x minecraft:iron_ingot"]
	extraction:
	  - input: 6x minecraft:pumpkin
	    outputs:
	      - item: recycler:soylent_yellow
	        weight: 1

Weighted outputs name either an item or an ore; ore references are
resolved against the ore dictionary when the pack is applied. An entry
without either yields nothing when picked.

The built-in pack is embedded in the binary and parsed once. Extra packs
are read from directories, parsed concurrently and returned in a stable
order: built-in first, then by directory and file name. Packs whose
gameVersion does not match the running game are skipped with a warning;
a pack without gameVersion applies to every game version.
*/
package datapack
