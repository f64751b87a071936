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

package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blockartistry/recycler/pkg/defaults"
	"github.com/blockartistry/recycler/pkg/item"
)

// Info describes one item, or every variant of it when Item is a wildcard.
type Info struct {
	Item         item.Stack `json:"item" yaml:"item"`
	DisplayName  string     `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	MaxStackSize int        `json:"maxStackSize,omitempty" yaml:"maxStackSize,omitempty"`
}

// Catalog is a freezable table of item information.
type Catalog struct {
	items *item.Table[Info]
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		items: item.NewTable[Info](),
	}
}

// Register adds or replaces the information for info.Item.
func (c *Catalog) Register(info Info) error {
	if strings.TrimSpace(info.Item.Name) == "" {
		return fmt.Errorf("%w: empty name", item.ErrInvalidStack)
	}
	if info.MaxStackSize < 0 {
		return fmt.Errorf("%w: %s: negative max stack size", item.ErrInvalidStack, info.Item.Name)
	}
	info.Item = info.Item.WithQuantity(1)
	return c.items.Set(info.Item.Key(), info)
}

// Lookup returns the information for s, falling back to its wildcard entry.
func (c *Catalog) Lookup(s item.Stack) (Info, bool) {
	return c.items.Get(s.Key())
}

// Known reports whether the catalog has information for s.
func (c *Catalog) Known(s item.Stack) bool {
	_, ok := c.Lookup(s)
	return ok
}

// MaxStackSize returns the registered max stack size for s, or
// defaults.MaxStackSize.
func (c *Catalog) MaxStackSize(s item.Stack) int {
	if info, ok := c.Lookup(s); ok && info.MaxStackSize > 0 {
		return info.MaxStackSize
	}
	return defaults.MaxStackSize
}

// DisplayName returns the registered display name for s. Unknown items get a
// title-cased form of their path, e.g. "minecraft:iron_door" => "Iron Door".
func (c *Catalog) DisplayName(s item.Stack) string {
	if info, ok := c.Lookup(s); ok && info.DisplayName != "" {
		return info.DisplayName
	}

	// Casers carry state and are not shared between goroutines.
	name := cases.Title(language.English).String(strings.NewReplacer("_", " ", ".", " ").Replace(s.Path()))
	if s.IsWildcard() {
		return name + " (any)"
	}
	if m, _ := s.Variant.Meta(); m != 0 {
		return fmt.Sprintf("%s #%d", name, m)
	}
	return name
}

// Items returns every registered entry in item order.
func (c *Catalog) Items() []Info {
	out := make([]Info, 0, c.items.Len())
	for _, info := range c.items.All() {
		out = append(out, info)
	}
	return out
}

// Len returns the number of registered entries.
func (c *Catalog) Len() int {
	return c.items.Len()
}

// Freeze makes the catalog read-only.
func (c *Catalog) Freeze() {
	c.items.Freeze()
}

// IsVanilla reports whether s ships with the base game.
func IsVanilla(s item.Stack) bool {
	return s.Mod() == defaults.VanillaMod
}

// AllVanilla reports whether every stack ships with the base game.
func AllVanilla(stacks []item.Stack) bool {
	for _, s := range stacks {
		if !IsVanilla(s) {
			return false
		}
	}
	return true
}
