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

package oredict

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/blockartistry/recycler/pkg/item"
)

// Dictionary maps ore names to item stacks and back. It accepts writes until
// Freeze and is safe for concurrent use.
type Dictionary struct {
	mu        sync.RWMutex
	ores      map[string][]item.Stack
	names     map[item.Key][]string
	preferred map[string]item.Stack
	frozen    bool
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		ores:      make(map[string][]item.Stack),
		names:     make(map[item.Key][]string),
		preferred: make(map[string]item.Stack),
	}
}

// Register adds s to the ore group name. Registering the same key twice
// under one name is a no-op.
func (d *Dictionary) Register(name string, s item.Stack) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty ore name", item.ErrInvalidStack)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: ore %s: empty item name", item.ErrInvalidStack, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frozen {
		return item.ErrFrozen
	}

	k := s.Key()
	if slices.Contains(d.names[k], name) {
		return nil
	}
	d.ores[name] = append(d.ores[name], s.WithQuantity(1))
	d.names[k] = append(d.names[k], name)
	return nil
}

// SetPreferred sets the stack emitted for ore name. The stack does not need
// to be registered under name.
func (d *Dictionary) SetPreferred(name string, s item.Stack) error {
	if s.IsWildcard() {
		return fmt.Errorf("%w: preferred %s for %s must be a concrete variant", item.ErrInvalidStack, s, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frozen {
		return item.ErrFrozen
	}
	d.preferred[name] = s.WithQuantity(1)
	return nil
}

// Ores returns the stacks registered under name in registration order.
func (d *Dictionary) Ores(name string) []item.Stack {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return item.Clone(d.ores[name])
}

// Has reports whether any stack is registered under name.
func (d *Dictionary) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.ores[name]) > 0
}

// Names returns the ore names s belongs to. An exact stack also belongs to
// the names its wildcard was registered under.
func (d *Dictionary) Names(s item.Stack) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := slices.Clone(d.names[s.Key()])
	if !s.IsWildcard() {
		for _, n := range d.names[item.Key{Name: s.Name, Variant: item.AnyVariant}] {
			if !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// OreName returns the first ore name s belongs to.
func (d *Dictionary) OreName(s item.Stack) (string, bool) {
	names := d.Names(s)
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Stack returns qty of the item to emit for ore name: the preferred stack,
// else the first concrete registration, else the first registration.
func (d *Dictionary) Stack(name string, qty int) (item.Stack, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if p, ok := d.preferred[name]; ok {
		return p.WithQuantity(qty), true
	}
	ores := d.ores[name]
	if len(ores) == 0 {
		return item.Stack{}, false
	}
	for _, s := range ores {
		if !s.IsWildcard() {
			return s.WithQuantity(qty), true
		}
	}
	return ores[0].WithQuantity(qty), true
}

// Preferred returns a concrete replacement for a wildcard stack, keeping its
// quantity. Exact stacks and stacks without a usable ore name are not
// replaced.
func (d *Dictionary) Preferred(s item.Stack) (item.Stack, bool) {
	if !s.IsWildcard() {
		return item.Stack{}, false
	}
	name, ok := d.OreName(s)
	if !ok {
		return item.Stack{}, false
	}
	alt, ok := d.Stack(name, s.Quantity)
	if !ok || alt.IsWildcard() {
		return item.Stack{}, false
	}
	return alt, true
}

// OreNames returns every ore name in sorted order.
func (d *Dictionary) OreNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.ores))
	for n := range d.ores {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Freeze makes the dictionary read-only.
func (d *Dictionary) Freeze() {
	d.mu.Lock()
	d.frozen = true
	d.mu.Unlock()
}
