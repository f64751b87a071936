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
Package host models the crafting recipes the host game exposes to the
recycler during post-init.

A CraftingRecipe is either shaped (a grid of symbols plus a key that maps
each symbol to an ingredient) or shapeless (a flat ingredient list). An
Ingredient is a concrete item stack or an ore dictionary name; in YAML and
in the SQLite dump both are plain strings, and a string without a colon is
an ore name:

	crafting:
	  - id: minecraft:bucket
	    output: minecraft:bucket
	    shape: ["I I", " I "]
	    keys:
	      I: ingotIron
	  - id: recycler:energetic_redstone
	    output: 3x recycler:energetic_redstone
	    ingredients: [dustUranium, "minecraft:redstone", "minecraft:redstone"]
	    requiresOres: [dustUranium]

Recipes are enumerated through a Source. StaticSource serves an in-memory
list; SQLiteSource reads the dump the host exporter writes, see Schema.
*/
package host
