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

package scrap

import (
	"fmt"
	"strings"
)

// Value grades how much material scrapping an item recovers.
type Value int

// Scrap values. The numeric values are part of the script API.
const (
	ValueNone Value = iota
	ValuePoor
	ValueStandard
	ValueSuperior
)

var valueNames = [...]string{"NONE", "POOR", "STANDARD", "SUPERIOR"}

// Values lists every scrap value in ascending order.
func Values() []Value {
	return []Value{ValueNone, ValuePoor, ValueStandard, ValueSuperior}
}

// String returns the upper-case name of v.
func (v Value) String() string {
	if v < 0 || int(v) >= len(valueNames) {
		return fmt.Sprintf("Value(%d)", int(v))
	}
	return valueNames[v]
}

// IsValid reports whether v is a known scrap value.
func (v Value) IsValid() bool {
	return v >= ValueNone && v <= ValueSuperior
}

// ParseValue parses a scrap value name, case-insensitively.
func ParseValue(s string) (Value, error) {
	for i, n := range valueNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Value(i), nil
		}
	}
	return ValueNone, fmt.Errorf("unknown scrap value %q", s)
}

// MarshalText encodes v by name.
func (v Value) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("invalid scrap value %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a scrap value name.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := ParseValue(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Compost classifies an item as a composting ingredient.
type Compost int

// Compost ingredients.
const (
	CompostNone Compost = iota
	CompostGreen
	CompostBrown
)

var compostNames = [...]string{"NONE", "GREEN", "BROWN"}

// String returns the upper-case name of c.
func (c Compost) String() string {
	if c < 0 || int(c) >= len(compostNames) {
		return fmt.Sprintf("Compost(%d)", int(c))
	}
	return compostNames[c]
}

// Label returns the player-facing label, or "" for CompostNone.
func (c Compost) Label() string {
	switch c {
	case CompostGreen:
		return "Green"
	case CompostBrown:
		return "Brown"
	default:
		return ""
	}
}

// ParseCompost parses a compost ingredient name, case-insensitively.
func ParseCompost(s string) (Compost, error) {
	for i, n := range compostNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Compost(i), nil
		}
	}
	return CompostNone, fmt.Errorf("unknown compost ingredient %q", s)
}

// MarshalText encodes c by name.
func (c Compost) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a compost ingredient name.
func (c *Compost) UnmarshalText(text []byte) error {
	parsed, err := ParseCompost(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Core is the processing core installed in a scrap machine.
type Core int

// Processing cores.
const (
	CoreNone Core = iota
	CoreDecomposition
	CoreExtraction
)

var coreNames = [...]string{"NONE", "DECOMPOSITION", "EXTRACTION"}

// Cores lists every processing core.
func Cores() []Core {
	return []Core{CoreNone, CoreDecomposition, CoreExtraction}
}

// String returns the upper-case name of c.
func (c Core) String() string {
	if c < 0 || int(c) >= len(coreNames) {
		return fmt.Sprintf("Core(%d)", int(c))
	}
	return coreNames[c]
}

// ParseCore parses a processing core name, case-insensitively.
func ParseCore(s string) (Core, error) {
	for i, n := range coreNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Core(i), nil
		}
	}
	return CoreNone, fmt.Errorf("unknown processing core %q", s)
}

// MarshalText encodes c by name.
func (c Core) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a processing core name.
func (c *Core) UnmarshalText(text []byte) error {
	parsed, err := ParseCore(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
