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
Package integration wires the recycler's tables to the host game.

A Plugin owns every registry and follows the host lifecycle:

  - New builds empty tables from Options.
  - Initialize applies the merged data pack: item catalog, ore dictionary,
    item attributes, ore-based scrap values, wood dust recipes, the
    configured blacklist, explicit recipes, extraction and scrap tables,
    special scrap handlers and the rubble pile hook.
  - PostInit scans the host crafting recipes, decomposes each one into a
    recycling recipe and stores it, then freezes every table.

The scan makes two passes when VanillaFirst is set: the first only accepts
vanilla recipes whose decomposition is entirely vanilla, so base game
recipes win over mod recipes for the same item; the second accepts every
whitelisted recipe. A recipe that fails to decompose, or whose decomposer
panics, is logged, counted and skipped. Warnings are rate limited.

Scripts run through pkg/tweaker between Initialize and PostInit.
*/
package integration
