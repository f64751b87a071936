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
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes an exact variant as a number and the wildcard as "*".
func (v Variant) MarshalJSON() ([]byte, error) {
	if v.wildcard {
		return []byte(`"*"`), nil
	}
	return []byte(strconv.Itoa(v.meta)), nil
}

// UnmarshalJSON accepts a number or the string "*".
func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return fmt.Errorf("variant %s: %w", data, err)
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes an exact variant as an int and the wildcard as "*".
func (v Variant) MarshalYAML() (any, error) {
	if v.wildcard {
		return "*", nil
	}
	return v.meta, nil
}

// UnmarshalYAML accepts an int or "*".
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: variant must be a scalar", node.Line)
	}
	parsed, err := ParseVariant(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: variant %q: %w", node.Line, node.Value, err)
	}
	*v = parsed
	return nil
}

// MarshalText encodes the stack in its text form.
func (s Stack) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the stack's text form.
func (s *Stack) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the stack in its text form.
func (s Stack) MarshalYAML() (any, error) {
	return s.String(), nil
}

type stackFields struct {
	Name     string   `yaml:"name"`
	Meta     *Variant `yaml:"meta"`
	Quantity *int     `yaml:"qty"`
}

// UnmarshalYAML accepts the text form or a mapping with name, meta and qty.
func (s *Stack) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := Parse(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = parsed
		return nil
	case yaml.MappingNode:
		var f stackFields
		if err := node.Decode(&f); err != nil {
			return err
		}
		if f.Name == "" {
			return fmt.Errorf("line %d: %w: missing name", node.Line, ErrSyntax)
		}
		out := Stack{Name: f.Name, Quantity: 1}
		if f.Meta != nil {
			out.Variant = *f.Meta
		}
		if f.Quantity != nil {
			out.Quantity = *f.Quantity
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: %w: stack must be a string or mapping", node.Line, ErrSyntax)
	}
}
