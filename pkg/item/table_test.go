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
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWildcardFallback(t *testing.T) {
	tbl := NewTable[string]()
	require.NoError(t, tbl.Set(Wildcard("minecraft:wool", 1).Key(), "any wool"))
	require.NoError(t, tbl.Set(New("minecraft:wool", 14, 1).Key(), "red wool"))

	v, ok := tbl.Get(New("minecraft:wool", 14, 1).Key())
	require.True(t, ok)
	assert.Equal(t, "red wool", v)

	v, match, ok := tbl.Match(New("minecraft:wool", 3, 1).Key())
	require.True(t, ok)
	assert.Equal(t, "any wool", v)
	assert.True(t, match.Variant.IsWildcard())

	_, ok = tbl.Get(New("minecraft:dye", 0, 1).Key())
	assert.False(t, ok)

	_, ok = tbl.GetExact(New("minecraft:wool", 3, 1).Key())
	assert.False(t, ok)
	assert.Equal(t, 2, tbl.Len())
}

func TestTableInsert(t *testing.T) {
	tbl := NewTable[int]()
	exactWins := func(incoming Key) func(Key) bool {
		return func(existing Key) bool {
			return existing.Variant.IsWildcard() && !incoming.Variant.IsWildcard()
		}
	}
	wild := Wildcard("minecraft:log", 1).Key()
	exact := New("minecraft:log", 2, 1).Key()

	ok, err := tbl.Insert(wild, exactWins(wild), func() int { return 1 })
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tbl.Insert(exact, exactWins(exact), func() int { return 2 })
	require.NoError(t, err)
	assert.True(t, ok, "exact entry may shadow a wildcard")

	ok, err = tbl.Insert(exact, exactWins(exact), func() int { return 3 })
	require.NoError(t, err)
	assert.False(t, ok, "exact entry already present")

	ok, err = tbl.Insert(wild, exactWins(wild), func() int { return 4 })
	require.NoError(t, err)
	assert.False(t, ok, "wildcard entry already present")

	v, _ := tbl.GetExact(wild)
	assert.Equal(t, 1, v)
	v, _ = tbl.Get(New("minecraft:log", 5, 1).Key())
	assert.Equal(t, 1, v)
	v, _ = tbl.Get(exact)
	assert.Equal(t, 2, v)
}

func TestTableUpdateInheritsWildcard(t *testing.T) {
	tbl := NewTable[[]string]()
	require.NoError(t, tbl.Set(Wildcard("minecraft:planks", 1).Key(), []string{"wood"}))

	require.NoError(t, tbl.Update(New("minecraft:planks", 1, 1).Key(), func(cur []string, found bool) []string {
		require.True(t, found)
		return append(slices.Clone(cur), "spruce")
	}))

	v, _ := tbl.GetExact(New("minecraft:planks", 1, 1).Key())
	assert.Equal(t, []string{"wood", "spruce"}, v)
	w, _ := tbl.GetExact(Wildcard("minecraft:planks", 1).Key())
	assert.Equal(t, []string{"wood"}, w)
}

func TestTableFreeze(t *testing.T) {
	tbl := NewTable[int]()
	require.NoError(t, tbl.Set(MustParse("minecraft:stone").Key(), 1))
	tbl.Freeze()
	tbl.Freeze()
	assert.True(t, tbl.Frozen())

	require.ErrorIs(t, tbl.Set(MustParse("minecraft:dirt").Key(), 2), ErrFrozen)
	_, err := tbl.Insert(MustParse("minecraft:dirt").Key(), nil, func() int { return 2 })
	require.ErrorIs(t, err, ErrFrozen)
	require.ErrorIs(t, tbl.Update(MustParse("minecraft:dirt").Key(), func(int, bool) int { return 2 }), ErrFrozen)

	v, ok := tbl.Get(MustParse("minecraft:stone").Key())
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestTableAllSorted(t *testing.T) {
	tbl := NewTable[int]()
	for i, s := range []string{"minecraft:wool:*", "minecraft:wool:3", "minecraft:anvil"} {
		require.NoError(t, tbl.Set(MustParse(s).Key(), i))
	}

	var keys []string
	for k := range tbl.All() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{"minecraft:anvil:0", "minecraft:wool:3", "minecraft:wool:*"}, keys)
}

func TestTableConcurrentReaders(t *testing.T) {
	tbl := NewTable[int]()
	key := MustParse("minecraft:stone").Key()
	require.NoError(t, tbl.Set(key, 7))
	tbl.Freeze()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				v, ok := tbl.Get(key)
				assert.True(t, ok)
				assert.Equal(t, 7, v)
			}
		}()
	}
	wg.Wait()
}
