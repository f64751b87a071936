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

// Package item models item identities as the host registers them: a
// registry name, a variant (an exact metadata value or the wildcard) and a
// quantity.
//
// Identity ignores quantity. Key is the comparable identity used by lookup
// tables, and CompareKeys gives the total order used wherever items are
// listed:
//
//	name ascending, then exact variants by metadata ascending, wildcard last
//
// Text form is "[Nx ]modid:path[:meta|:*]":
//
//	item.MustParse("minecraft:dye:15")       // 1x dye, meta 15
//	item.MustParse("6x minecraft:iron_ingot") // 6x iron ingot, meta 0
//	item.MustParse("minecraft:wool:*")        // any wool
//
// Table is a freezable two-level map (exact keys, then a per-name wildcard
// fallback) shared by the recipe registry and the other item-keyed tables.
package item
