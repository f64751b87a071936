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

// Package oredict models the host's ore dictionary: named groups of
// interchangeable items ("ingotIron", "plankWood") and, for each name, the
// item the recycler prefers to emit when any member will do.
//
// Dictionary.Preferred turns a wildcard stack into a concrete one so the
// recipe registry never stores outputs the player cannot receive:
//
//	dict.Register("plankWood", item.MustParse("minecraft:planks:*"))
//	dict.SetPreferred("plankWood", item.MustParse("minecraft:planks:0"))
//	s, _ := dict.Preferred(item.MustParse("4x minecraft:planks:*")) // 4x minecraft:planks
package oredict
