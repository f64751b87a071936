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
	"iter"
	"maps"
	"slices"
	"sync"
)

// Table maps item keys to values with a per-name wildcard fallback.
// Exact and wildcard entries for the same name coexist; lookups prefer the
// exact entry. A Table accepts writes until Freeze and is safe for
// concurrent use.
type Table[V any] struct {
	mu     sync.RWMutex
	exact  map[Key]V
	wild   map[string]V
	frozen bool
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		exact: make(map[Key]V),
		wild:  make(map[string]V),
	}
}

// lookup must be called with mu held.
func (t *Table[V]) lookup(k Key) (V, Key, bool) {
	if !k.Variant.IsWildcard() {
		if v, ok := t.exact[k]; ok {
			return v, k, true
		}
	}
	v, ok := t.wild[k.Name]
	return v, Key{Name: k.Name, Variant: AnyVariant}, ok
}

// Get returns the value for k, falling back to the wildcard entry for k's
// name.
func (t *Table[V]) Get(k Key) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, _, ok := t.lookup(k)
	return v, ok
}

// Match is Get that also returns the key of the entry that matched.
func (t *Table[V]) Match(k Key) (V, Key, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookup(k)
}

// GetExact returns the entry stored under exactly k, without fallback.
func (t *Table[V]) GetExact(k Key) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if k.Variant.IsWildcard() {
		v, ok := t.wild[k.Name]
		return v, ok
	}
	v, ok := t.exact[k]
	return v, ok
}

// Set stores v under k, replacing any entry stored under exactly k.
func (t *Table[V]) Set(k Key, v V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return ErrFrozen
	}
	t.store(k, v)
	return nil
}

func (t *Table[V]) store(k Key, v V) {
	if k.Variant.IsWildcard() {
		t.wild[k.Name] = v
		return
	}
	t.exact[k] = v
}

// Insert stores the value returned by build unless allow rejects the entry that
// k currently matches. allow is called only when a match exists and
// receives the matching key. Both callbacks run under the write lock.
func (t *Table[V]) Insert(k Key, allow func(existing Key) bool, build func() V) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return false, ErrFrozen
	}
	if _, match, ok := t.lookup(k); ok && (allow == nil || !allow(match)) {
		return false, nil
	}
	t.store(k, build())
	return true, nil
}

// Update replaces the entry stored under exactly k with fn's result. fn
// receives the current match for k, if any, so exact entries can start
// from their wildcard's value.
func (t *Table[V]) Update(k Key, fn func(cur V, found bool) V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return ErrFrozen
	}
	cur, _, ok := t.lookup(k)
	t.store(k, fn(cur, ok))
	return nil
}

// Freeze rejects all later writes. It is idempotent.
func (t *Table[V]) Freeze() {
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (t *Table[V]) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}

// Len returns the number of stored entries, exact and wildcard.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.exact) + len(t.wild)
}

// Keys returns every stored key in CompareKeys order.
func (t *Table[V]) Keys() []Key {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := slices.Collect(maps.Keys(t.exact))
	for name := range t.wild {
		keys = append(keys, Key{Name: name, Variant: AnyVariant})
	}
	slices.SortFunc(keys, CompareKeys)
	return keys
}

// All iterates over a snapshot of the table in CompareKeys order.
func (t *Table[V]) All() iter.Seq2[Key, V] {
	keys := t.Keys()
	return func(yield func(Key, V) bool) {
		for _, k := range keys {
			v, ok := t.GetExact(k)
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
