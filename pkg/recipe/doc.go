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

// Package recipe holds the recycler's recipe registry: for each input item,
// the materials recovered by recycling it and the minimum stack size the
// recycler needs before it will start.
//
// # Storage
//
// Entries are keyed by item identity in two levels. An exact entry matches
// one variant of an item; a wildcard entry matches every variant that has no
// exact entry of its own:
//
//	reg := recipe.NewRegistry(recipe.WithAlternatives(dict), recipe.WithNames(catalog))
//	reg.Put(item.MustParse("minecraft:iron_door"), []item.Stack{item.MustParse("6x minecraft:iron_ingot")})
//	outputs, ok := reg.Outputs(item.MustParse("minecraft:iron_door"))
//
// # Put rules
//
// Put stores an entry when no entry matches the input yet, or when the only
// match is a wildcard and the input is exact. Any other match yields
// ResultDuplicate and leaves the registry unchanged. Before storing, outputs
// are copied, wildcard outputs are replaced with a preferred concrete item,
// equal outputs are merged, and oversized stacks are split at the item's max
// stack size.
//
// # Lifecycle
//
// The registry accepts writes until Freeze. After that Put fails with an
// error matching item.ErrFrozen and every read stays available.
//
// # Diagnostics
//
// WriteDiagnostic dumps every entry in item order:
//
//	Known Recycler Recipes:
//	=================================================================
//	[1x Iron Door] => [6x Iron Ingot]
//	[1x Stone Button] => [none]
//	=================================================================
package recipe
