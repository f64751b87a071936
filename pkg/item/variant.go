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

import (
	"cmp"
	"strconv"

	"github.com/blockartistry/recycler/pkg/defaults"
)

// Variant selects which variants of an item a stack refers to: one exact
// metadata value, or every variant.
type Variant struct {
	meta     int
	wildcard bool
}

// AnyVariant matches every variant of an item.
var AnyVariant = Variant{wildcard: true}

// Meta returns the exact variant n. The host's wildcard sentinel maps to
// AnyVariant.
func Meta(n int) Variant {
	if n == defaults.WildcardMeta {
		return AnyVariant
	}
	return Variant{meta: n}
}

// IsWildcard reports whether v matches every variant.
func (v Variant) IsWildcard() bool {
	return v.wildcard
}

// Meta returns the exact metadata value and true, or 0 and false for the
// wildcard.
func (v Variant) Meta() (int, bool) {
	if v.wildcard {
		return 0, false
	}
	return v.meta, true
}

// String returns "*" for the wildcard, otherwise the metadata value.
func (v Variant) String() string {
	if v.wildcard {
		return "*"
	}
	return strconv.Itoa(v.meta)
}

// CompareVariants orders exact variants by metadata with the wildcard last.
func CompareVariants(a, b Variant) int {
	switch {
	case a.wildcard && b.wildcard:
		return 0
	case a.wildcard:
		return 1
	case b.wildcard:
		return -1
	default:
		return cmp.Compare(a.meta, b.meta)
	}
}

// ParseVariant parses "*", the host sentinel, or a non-negative integer.
func ParseVariant(s string) (Variant, error) {
	if s == "*" {
		return AnyVariant, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Variant{}, ErrSyntax
	}
	return Meta(n), nil
}
