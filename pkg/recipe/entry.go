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

package recipe

import (
	"fmt"
	"strings"

	"github.com/blockartistry/recycler/pkg/item"
)

// Result is the outcome of Registry.Put. The numeric values are part of the
// script API.
type Result int

const (
	// ResultSuccess means the entry was stored.
	ResultSuccess Result = iota
	// ResultFailure means the entry was invalid or the registry was frozen.
	ResultFailure
	// ResultDuplicate means an entry already matched the input.
	ResultDuplicate
)

// String returns SUCCESS, FAILURE or DUPLICATE.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultFailure:
		return "FAILURE"
	case ResultDuplicate:
		return "DUPLICATE"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Entry maps an input item to the items recovered from it.
// Input.Quantity is the minimum stack size needed to recycle.
type Entry struct {
	Input   item.Stack   `json:"input" yaml:"input"`
	Outputs []item.Stack `json:"outputs" yaml:"outputs"`
}

// NewEntry validates input and outputs and returns an entry owning a copy
// of outputs. A nil outputs slice means the input yields nothing.
func NewEntry(input item.Stack, outputs []item.Stack) (*Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	for i, o := range outputs {
		if err := o.ValidateOutput(); err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
	}
	return &Entry{Input: input, Outputs: item.Clone(outputs)}, nil
}

// MinimumQuantity returns the stack size required before the input can be
// recycled.
func (e *Entry) MinimumQuantity() int {
	return e.Input.Quantity
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	return &Entry{Input: e.Input, Outputs: item.Clone(e.Outputs)}
}

// Format renders e as "[Nx Input] => [N1x Out1, ...]" or "[Nx Input] => [none]",
// naming items with names.
func (e *Entry) Format(names NameResolver) string {
	if names == nil {
		names = textNames{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%dx %s] => [", e.Input.Quantity, names.DisplayName(e.Input))
	if len(e.Outputs) == 0 {
		b.WriteString("none")
	}
	for i, o := range e.Outputs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%dx %s", o.Quantity, names.DisplayName(o))
	}
	b.WriteByte(']')
	return b.String()
}

// String formats e with item text forms as names.
func (e *Entry) String() string {
	return e.Format(nil)
}
