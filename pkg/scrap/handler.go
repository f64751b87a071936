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
	"math/rand/v2"

	"github.com/blockartistry/recycler/pkg/item"
)

// Handler produces the result of scrapping s under core. Returning false
// defers to the scrap tables.
type Handler interface {
	Scrap(core Core, s item.Stack, rng *rand.Rand) ([]item.Stack, bool)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(core Core, s item.Stack, rng *rand.Rand) ([]item.Stack, bool)

// Scrap calls f.
func (f HandlerFunc) Scrap(core Core, s item.Stack, rng *rand.Rand) ([]item.Stack, bool) {
	return f(core, s, rng)
}

// Handlers maps items to special handlers with wildcard fallback.
type Handlers struct {
	table *item.Table[Handler]
}

// NewHandlers creates an empty handler table.
func NewHandlers() *Handlers {
	return &Handlers{table: item.NewTable[Handler]()}
}

// Register installs h for s, replacing any handler stored under s's key.
func (h *Handlers) Register(s item.Stack, handler Handler) error {
	return h.table.Set(s.Key(), handler)
}

// Lookup returns the handler for s.
func (h *Handlers) Lookup(s item.Stack) (Handler, bool) {
	return h.table.Get(s.Key())
}

// Len returns the number of registered handlers.
func (h *Handlers) Len() int {
	return h.table.Len()
}

// Freeze makes the handler table read-only.
func (h *Handlers) Freeze() {
	h.table.Freeze()
}

// ValueSource reports per-item scrap attributes.
type ValueSource interface {
	Value(s item.Stack) Value
	BlockedFromScrapping(s item.Stack) bool
}

// Scrapper decides what scrapping an item yields.
type Scrapper struct {
	Tables   *Tables
	Handlers *Handlers
	Values   ValueSource
}

// Scrap returns the items recovered from one unit of s under core.
// Blocked items come back unchanged. A special handler for s wins over the
// tables. An empty result means the item was destroyed.
func (x *Scrapper) Scrap(core Core, s item.Stack, rng *rand.Rand) []item.Stack {
	one := s.WithQuantity(1)
	if x.Values != nil && x.Values.BlockedFromScrapping(one) {
		return []item.Stack{one}
	}
	if x.Handlers != nil {
		if h, ok := x.Handlers.Lookup(one); ok {
			if out, ok := h.Scrap(core, one, rng); ok {
				return out
			}
		}
	}

	value := ValueStandard
	if x.Values != nil {
		value = x.Values.Value(one)
	}
	if x.Tables == nil {
		return nil
	}
	if out, ok := x.Tables.Roll(value, core, rng); ok {
		return []item.Stack{out}
	}
	return nil
}
