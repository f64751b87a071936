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
	"fmt"
	"strconv"
	"strings"

	"github.com/blockartistry/recycler/pkg/defaults"
)

// Key is the identity of an item: quantity does not take part.
type Key struct {
	Name    string
	Variant Variant
}

// String returns "modid:path:meta" or "modid:path:*".
func (k Key) String() string {
	return k.Name + ":" + k.Variant.String()
}

// CompareKeys orders keys by name, then by variant with the wildcard last.
func CompareKeys(a, b Key) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return CompareVariants(a.Variant, b.Variant)
}

// Stack is an item identity with a quantity.
type Stack struct {
	Name     string
	Variant  Variant
	Quantity int
}

// New returns a stack of qty items with the given metadata. The host's
// wildcard sentinel yields a wildcard stack.
func New(name string, meta, qty int) Stack {
	return Stack{Name: name, Variant: Meta(meta), Quantity: qty}
}

// Wildcard returns a stack of qty items matching any variant of name.
func Wildcard(name string, qty int) Stack {
	return Stack{Name: name, Variant: AnyVariant, Quantity: qty}
}

// Key returns the stack's identity.
func (s Stack) Key() Key {
	return Key{Name: s.Name, Variant: s.Variant}
}

// IsWildcard reports whether the stack matches every variant.
func (s Stack) IsWildcard() bool {
	return s.Variant.IsWildcard()
}

// WithQuantity returns a copy of s holding n items.
func (s Stack) WithQuantity(n int) Stack {
	s.Quantity = n
	return s
}

// Mod returns the owning mod id, the part of the name before the first colon.
func (s Stack) Mod() string {
	mod, _, _ := strings.Cut(s.Name, ":")
	return mod
}

// Path returns the part of the name after the mod id.
func (s Stack) Path() string {
	if _, path, ok := strings.Cut(s.Name, ":"); ok {
		return path
	}
	return s.Name
}

// Matches reports whether s identifies other, treating a wildcard s as
// matching every variant of its name.
func (s Stack) Matches(other Stack) bool {
	if s.Name != other.Name {
		return false
	}
	return s.Variant.IsWildcard() || s.Variant == other.Variant
}

// String returns the text form accepted by Parse. Quantity 1 and meta 0 are
// omitted.
func (s Stack) String() string {
	var b strings.Builder
	if s.Quantity != 1 {
		b.WriteString(strconv.Itoa(s.Quantity))
		b.WriteString("x ")
	}
	b.WriteString(s.Name)
	if m, ok := s.Variant.Meta(); !ok || m != 0 {
		b.WriteByte(':')
		b.WriteString(s.Variant.String())
	}
	return b.String()
}

// Validate checks that s is usable as a recipe input: a name, a
// non-negative metadata value and at least one item.
func (s Stack) Validate() error {
	return s.validate(1)
}

// ValidateOutput checks that s is usable as a recipe output. Zero
// quantities are accepted and dropped later by Coalesce.
func (s Stack) ValidateOutput() error {
	return s.validate(0)
}

func (s Stack) validate(minQty int) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStack)
	}
	if m, ok := s.Variant.Meta(); ok && (m < 0 || m > defaults.WildcardMeta) {
		return fmt.Errorf("%w: %s: metadata %d out of range", ErrInvalidStack, s.Name, m)
	}
	if s.Quantity < minQty {
		return fmt.Errorf("%w: %s: quantity %d below %d", ErrInvalidStack, s.Name, s.Quantity, minQty)
	}
	return nil
}

// Compare orders stacks by key, then by quantity.
func Compare(a, b Stack) int {
	if c := CompareKeys(a.Key(), b.Key()); c != 0 {
		return c
	}
	return cmp.Compare(a.Quantity, b.Quantity)
}

// Parse reads the text form "[Nx ]modid:path[:meta|:*]". A missing
// quantity is 1 and a missing meta is 0.
func Parse(text string) (Stack, error) {
	s := strings.TrimSpace(text)
	qty := 1
	if head, rest, ok := strings.Cut(s, " "); ok {
		n, found := strings.CutSuffix(head, "x")
		if !found {
			return Stack{}, fmt.Errorf("%w: %q: expected quantity prefix like \"6x\"", ErrSyntax, text)
		}
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			return Stack{}, fmt.Errorf("%w: %q: bad quantity", ErrSyntax, text)
		}
		qty, s = v, strings.TrimSpace(rest)
	}

	parts := strings.Split(s, ":")
	switch {
	case len(parts) < 2 || len(parts) > 3:
		return Stack{}, fmt.Errorf("%w: %q: expected modid:path[:meta]", ErrSyntax, text)
	case parts[0] == "" || parts[1] == "":
		return Stack{}, fmt.Errorf("%w: %q: empty mod id or path", ErrSyntax, text)
	}

	out := Stack{Name: parts[0] + ":" + parts[1], Quantity: qty}
	if len(parts) == 3 {
		v, err := ParseVariant(parts[2])
		if err != nil {
			return Stack{}, fmt.Errorf("%w: %q: bad metadata %q", ErrSyntax, text, parts[2])
		}
		out.Variant = v
	}
	return out, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(text string) Stack {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseAll parses every element of texts.
func ParseAll(texts []string) ([]Stack, error) {
	out := make([]Stack, 0, len(texts))
	for _, t := range texts {
		s, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
