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

package events

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockartistry/recycler/pkg/item"
)

func TestBusDispatchOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.AddHook(func(*HarvestEvent) bool { order = append(order, "a"); return false })
	bus.AddHook(nil)
	bus.AddHook(func(ev *HarvestEvent) bool {
		order = append(order, "b")
		ev.Drops = nil
		return true
	})
	bus.AddHook(func(*HarvestEvent) bool { order = append(order, "c"); return true })
	assert.Equal(t, 3, bus.Len())

	ev := &HarvestEvent{Block: item.MustParse("minecraft:stone"), Drops: []item.Stack{item.MustParse("minecraft:cobblestone")}}
	assert.Equal(t, 2, bus.Dispatch(ev))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Empty(t, ev.Drops)
}

func newPile(t *testing.T) *Rubble {
	t.Helper()
	r := NewRubble(item.MustParse("recycler:rubble:*"), 2, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, r.AddDrop(RubbleDrop{Item: item.MustParse("recycler:scrap:0"), Min: 1, Max: 2, Weight: 5}))
	require.NoError(t, r.AddDrop(RubbleDrop{Item: item.MustParse("recycler:material:3"), Min: 2, Max: 4, Weight: 4}))
	return r
}

func TestRubbleHook(t *testing.T) {
	pile := newPile(t)
	hook := pile.Hook()

	ev := &HarvestEvent{Block: item.MustParse("recycler:rubble:1")}
	require.True(t, hook(ev))
	require.NotEmpty(t, ev.Drops)

	total := 0
	for _, d := range ev.Drops {
		assert.Contains(t, []string{"recycler:scrap", "recycler:material"}, d.Name)
		total += d.Quantity
	}
	assert.GreaterOrEqual(t, total, 2)
	assert.LessOrEqual(t, total, 8)

	stone := &HarvestEvent{Block: item.MustParse("minecraft:stone"), Drops: []item.Stack{item.MustParse("minecraft:cobblestone")}}
	assert.False(t, hook(stone))
	assert.Len(t, stone.Drops, 1)

	silk := &HarvestEvent{Block: item.MustParse("recycler:rubble:0"), SilkTouch: true}
	assert.False(t, hook(silk))
}

func TestRubbleFortuneAddsRolls(t *testing.T) {
	pile := NewRubble(item.MustParse("recycler:rubble"), 1, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, pile.AddDrop(RubbleDrop{Item: item.MustParse("recycler:scrap"), Min: 1, Max: 1, Weight: 1}))

	assert.Equal(t, []item.Stack{item.MustParse("recycler:scrap")}, pile.Roll(0))
	assert.Equal(t, []item.Stack{item.MustParse("4x recycler:scrap")}, pile.Roll(3))
}

func TestRubbleDropValidate(t *testing.T) {
	pile := NewRubble(item.MustParse("recycler:rubble"), 0, rand.New(rand.NewPCG(1, 1)))
	assert.Empty(t, pile.Roll(0))

	require.Error(t, pile.AddDrop(RubbleDrop{Item: item.MustParse("recycler:scrap"), Min: 0, Max: 1, Weight: 1}))
	require.Error(t, pile.AddDrop(RubbleDrop{Item: item.MustParse("recycler:scrap"), Min: 3, Max: 2, Weight: 1}))
	require.Error(t, pile.AddDrop(RubbleDrop{Item: item.MustParse("recycler:scrap"), Min: 1, Max: 1, Weight: 0}))
	require.ErrorIs(t, pile.AddDrop(RubbleDrop{Min: 1, Max: 1, Weight: 1}), item.ErrInvalidStack)
	assert.Zero(t, pile.Len())
}
