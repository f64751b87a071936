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

package item

import "github.com/blockartistry/recycler/pkg/defaults"

// StackLimits reports the largest quantity one stack of an item may hold.
type StackLimits interface {
	MaxStackSize(s Stack) int
}

// StackLimitsFunc adapts a function to StackLimits.
type StackLimitsFunc func(s Stack) int

// MaxStackSize calls f.
func (f StackLimitsFunc) MaxStackSize(s Stack) int {
	return f(s)
}

// DefaultLimits caps every stack at defaults.MaxStackSize.
var DefaultLimits StackLimits = StackLimitsFunc(func(Stack) int {
	return defaults.MaxStackSize
})

// Clone returns a copy of stacks. A nil slice yields an empty one.
func Clone(stacks []Stack) []Stack {
	out := make([]Stack, len(stacks))
	copy(out, stacks)
	return out
}

// Coalesce merges stacks with equal keys by summing their quantities.
// The first occurrence of each key fixes its position, and keys whose total
// is not positive are dropped. The input is not modified.
func Coalesce(stacks []Stack) []Stack {
	index := make(map[Key]int, len(stacks))
	merged := make([]Stack, 0, len(stacks))
	for _, s := range stacks {
		if i, ok := index[s.Key()]; ok {
			merged[i].Quantity += s.Quantity
			continue
		}
		index[s.Key()] = len(merged)
		merged = append(merged, s)
	}

	out := merged[:0]
	for _, s := range merged {
		if s.Quantity > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Compress splits any stack larger than its max stack size into full stacks
// followed by the remainder. A nil limits uses DefaultLimits.
func Compress(stacks []Stack, limits StackLimits) []Stack {
	if limits == nil {
		limits = DefaultLimits
	}
	out := make([]Stack, 0, len(stacks))
	for _, s := range stacks {
		limit := limits.MaxStackSize(s)
		if limit < 1 {
			limit = defaults.MaxStackSize
		}
		for s.Quantity > limit {
			out = append(out, s.WithQuantity(limit))
			s.Quantity -= limit
		}
		out = append(out, s)
	}
	return out
}
