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

package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockartistry/recycler/pkg/datapack"
	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/events"
	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/recipe"
	"github.com/blockartistry/recycler/pkg/scrap"
)

func stack(text string) *item.Stack {
	s := item.MustParse(text)
	return &s
}

func ingredients(texts ...string) []host.Ingredient {
	out := make([]host.Ingredient, 0, len(texts))
	for _, t := range texts {
		ing, err := host.ParseIngredient(t)
		if err != nil {
			panic(err)
		}
		out = append(out, ing)
	}
	return out
}

// hostRecipes exercises each scan branch; see TestPostInitScan for the
// expected outcome per pass.
func hostRecipes() host.StaticSource {
	return host.StaticSource{
		{ID: "bucket", Output: stack("minecraft:bucket"), Shape: []string{"I I", " I "},
			Keys: map[string]host.Ingredient{"I": host.Ore("ingotIron")}},
		{ID: "bucket_alt", Output: stack("minecraft:bucket"), Ingredients: ingredients("minecraft:iron_ingot", "minecraft:iron_ingot")},
		{ID: "torch", Output: stack("4x minecraft:torch"), Ingredients: ingredients("minecraft:coal:*", "minecraft:stick")},
		{ID: "widget", Output: stack("othermod:widget"), Ingredients: ingredients("minecraft:stick")},
		{ID: "housing", Output: stack("recycler:material:3"), Ingredients: ingredients("minecraft:iron_ingot", "minecraft:iron_ingot", "recycler:material:2")},
		{ID: "piston", Output: stack("minecraft:piston"), Ingredients: ingredients("ingotUnobtainium")},
		{ID: "chest", Output: stack("minecraft:chest"), Ingredients: ingredients("ThermalFoundation:material:0", "plankWood")},
		{ID: "map_cloning"},
	}
}

func newPlugin(t *testing.T, mutate func(*Options)) *Plugin {
	t.Helper()
	pack, err := datapack.Builtin()
	require.NoError(t, err)
	opts := Options{
		Pack:         datapack.Merge(pack),
		Whitelist:    []string{"minecraft", "recycler"},
		Blacklist:    []string{"minecraft:diamond_sword"},
		OreScan:      true,
		VanillaFirst: true,
		Seed:         42,
	}
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts)
	require.NoError(t, err)
	return p
}

func TestNewRequiresPack(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, nil)

	_, err := p.PostInit(ctx, nil)
	require.ErrorIs(t, err, ErrLifecycle)
	assert.Equal(t, cnserrors.ErrCodeConflict, cnserrors.CodeOf(err))

	require.NoError(t, p.Initialize(ctx))
	require.ErrorIs(t, p.Initialize(ctx), ErrLifecycle)
	assert.False(t, p.Frozen())

	_, err = p.PostInit(ctx, nil)
	require.NoError(t, err)
	assert.True(t, p.Frozen())

	_, err = p.PostInit(ctx, nil)
	require.ErrorIs(t, err, ErrLifecycle)

	res, err := p.Recipes().Put(item.MustParse("minecraft:stone"), nil)
	assert.Equal(t, recipe.ResultFailure, res)
	require.ErrorIs(t, err, item.ErrFrozen)
	require.ErrorIs(t, p.Items().SetValue(item.MustParse("minecraft:stone"), scrap.ValuePoor), item.ErrFrozen)
	require.ErrorIs(t, p.Extraction().Add(item.MustParse("minecraft:stone"), scrap.Weighted{Weight: 1}), item.ErrFrozen)
}

func TestInitializeAppliesPack(t *testing.T) {
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	// ore-based scrap values
	assert.Equal(t, scrap.ValueSuperior, p.Items().Value(item.MustParse("minecraft:diamond")))
	assert.Equal(t, scrap.ValuePoor, p.Items().Value(item.MustParse("minecraft:gold_nugget")))

	// item data patches, exact entries inheriting from the wildcard
	assert.True(t, p.Items().IsRecipeIgnored(item.MustParse("recycler:material:2")))
	assert.True(t, p.Items().IsScrubbedFromOutput(item.MustParse("recycler:material:2")))
	assert.False(t, p.Items().IsRecipeIgnored(item.MustParse("recycler:material:3")))
	assert.Equal(t, scrap.CompostGreen, p.Items().Compost(item.MustParse("minecraft:tallgrass:1")))

	// wood dust
	out, ok := p.Recipes().Outputs(item.MustParse("minecraft:log2:1"))
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.MustParse("recycler:material:5")}, out)
	assert.Equal(t, 8, p.Recipes().MinimumQuantityToRecycle(item.MustParse("minecraft:sapling:3")))
	assert.True(t, p.Items().IsRecipeIgnored(item.MustParse("minecraft:planks:4")))

	// blacklist blocks every variant
	assert.True(t, p.Items().BlockedFromScrapping(item.MustParse("minecraft:diamond_sword:17")))

	// explicit recipes
	out, ok = p.Recipes().Outputs(item.MustParse("minecraft:anvil:2"))
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.MustParse("10x minecraft:iron_ingot")}, out)

	// extraction with ore outputs resolved to dictionary stacks
	x, ok := p.Extraction().Lookup(item.MustParse("recycler:recycling_scrap:2"))
	require.True(t, ok)
	for _, w := range x.Table.Entries() {
		require.NotNil(t, w.Item)
		assert.Equal(t, "ThermalFoundation:material", w.Item.Name)
	}
	assert.Equal(t, 6, p.Extraction().MinimumQuantity(item.MustParse("minecraft:pumpkin")))

	// uranium ores are absent so energetic redstone recipes stay disabled
	assert.Empty(t, p.Crafting())
	require.NotNil(t, p.Rubble())
}

func TestInitializeEnablesCraftingWithOres(t *testing.T) {
	extra, err := datapack.Parse([]byte("kind: DataPack\nores:\n  dustUranium: [\"ic2:dust:4\"]\n"), "uranium")
	require.NoError(t, err)
	builtin, err := datapack.Builtin()
	require.NoError(t, err)

	p := newPlugin(t, func(o *Options) { o.Pack = datapack.Merge(builtin, extra) })
	require.NoError(t, p.Initialize(context.Background()))

	crafting := p.Crafting()
	require.Len(t, crafting, 1)
	assert.Equal(t, "recycler:energetic_redstone_dust_uranium", crafting[0].ID)
}

func TestInitializeBadBlacklist(t *testing.T) {
	p := newPlugin(t, func(o *Options) { o.Blacklist = []string{"not an item"} })
	err := p.Initialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))

	err = p.Initialize(context.Background())
	require.ErrorIs(t, err, ErrLifecycle)
	assert.Equal(t, cnserrors.ErrCodeConflict, cnserrors.CodeOf(err))

	_, err = p.PostInit(context.Background(), nil)
	require.ErrorIs(t, err, ErrLifecycle)
	assert.False(t, p.Frozen())
}

func TestInitializeWithoutOreScan(t *testing.T) {
	p := newPlugin(t, func(o *Options) { o.OreScan = false })
	require.NoError(t, p.Initialize(context.Background()))
	assert.Equal(t, scrap.ValueStandard, p.Items().Value(item.MustParse("minecraft:diamond")))
}

func TestPostInitScan(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(ctx))

	report, err := p.PostInit(ctx, hostRecipes())
	require.NoError(t, err)

	assert.Equal(t, header.KindScanReport, report.Kind)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, report.RunID, report.Get("runId"))
	assert.Equal(t, 8, report.Scanned)
	assert.Equal(t, []PassReport{
		{Name: PassVanilla, Registered: 2, Duplicates: 1, Skipped: 4, Failed: 1},
		{Name: PassAll, Registered: 2, Duplicates: 3, Skipped: 2, Failed: 1},
	}, report.Passes)
	assert.Equal(t, 4, report.Registered)
	assert.Equal(t, 4, report.Duplicates)
	assert.Equal(t, 6, report.Skipped)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, p.Recipes().Len(), report.Recipes)

	recipes := p.Recipes()
	out, ok := recipes.Outputs(item.MustParse("minecraft:bucket"))
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.MustParse("3x minecraft:iron_ingot")}, out)

	assert.Equal(t, 4, recipes.MinimumQuantityToRecycle(item.MustParse("minecraft:torch")))

	out, ok = recipes.Outputs(item.MustParse("recycler:material:3"))
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.MustParse("2x minecraft:iron_ingot")}, out, "fuel cell is scrubbed")

	out, ok = recipes.Outputs(item.MustParse("minecraft:chest"))
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.MustParse("ThermalFoundation:material:0"), item.MustParse("minecraft:planks")}, out)

	_, ok = recipes.Lookup(item.MustParse("othermod:widget"))
	assert.False(t, ok)
	_, ok = recipes.Lookup(item.MustParse("minecraft:piston"))
	assert.False(t, ok)
}

func TestPostInitAllPassOnly(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, func(o *Options) { o.VanillaFirst = false })
	require.NoError(t, p.Initialize(ctx))

	report, err := p.PostInit(ctx, hostRecipes())
	require.NoError(t, err)
	require.Len(t, report.Passes, 1)
	assert.Equal(t, PassReport{Name: PassAll, Registered: 4, Duplicates: 1, Skipped: 2, Failed: 1}, report.Passes[0])
}

type panicky struct{}

func (panicky) Decompose(host.CraftingRecipe) ([]item.Stack, error) {
	panic("boom")
}

func TestPostInitRecoversPanics(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, func(o *Options) {
		o.Decomposer = panicky{}
		o.VanillaFirst = false
	})
	require.NoError(t, p.Initialize(ctx))

	report, err := p.PostInit(ctx, host.StaticSource{
		{ID: "a", Output: stack("minecraft:bucket"), Ingredients: ingredients("minecraft:iron_ingot")},
		{ID: "b", Output: stack("minecraft:torch"), Ingredients: ingredients("minecraft:stick")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	assert.True(t, p.Frozen())
}

type failingSource struct{}

func (failingSource) Recipes(context.Context) ([]host.CraftingRecipe, error) {
	return nil, errors.New("host unavailable")
}

func TestPostInitSourceErrorStillFreezes(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(ctx))

	_, err := p.PostInit(ctx, failingSource{})
	require.Error(t, err)
	assert.True(t, p.Frozen())
}

func TestPostInitCancelled(t *testing.T) {
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.PostInit(ctx, hostRecipes())
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, p.Frozen())
}

func TestScrapAndHarvest(t *testing.T) {
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	sword := item.MustParse("minecraft:diamond_sword:3")
	assert.Equal(t, []item.Stack{sword}, p.Scrap(scrap.CoreNone, sword))

	core := item.MustParse("5x recycler:processing_core:2")
	assert.Equal(t, []item.Stack{core.WithQuantity(1)}, p.Scrap(scrap.CoreDecomposition, core))

	for range 20 {
		out := p.Scrap(scrap.CoreNone, item.MustParse("recycler:material:1"))
		if len(out) == 0 {
			continue
		}
		assert.Equal(t, []item.Stack{item.MustParse("recycler:recycling_scrap:0")}, out)
	}

	ev := &events.HarvestEvent{Block: item.MustParse("recycler:rubble:0")}
	assert.Equal(t, 1, p.Harvest(ev))
	assert.NotEmpty(t, ev.Drops)

	stone := &events.HarvestEvent{Block: item.MustParse("minecraft:stone")}
	assert.Zero(t, p.Harvest(stone))

	got, ok, err := p.Extract(item.MustParse("16x minecraft:rotten_flesh"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item.MustParse("recycler:soylent_green"), got)
	_, ok, err = p.Extract(item.MustParse("minecraft:stone"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(ctx))
	_, err := p.PostInit(ctx, hostRecipes())
	require.NoError(t, err)

	r := p.Describe(item.MustParse("minecraft:bucket"))
	assert.Equal(t, header.KindRecipeReport, r.Kind)
	assert.Equal(t, "Bucket", r.DisplayName)
	assert.Equal(t, 16, r.MaxStackSize)
	require.NotNil(t, r.Recipe)
	assert.Equal(t, "[1x Bucket] => [3x Iron Ingot]", r.Recipe.Text)

	r = p.Describe(item.MustParse("minecraft:log:2"))
	assert.Equal(t, []string{"logWood"}, r.OreNames)
	require.NotNil(t, r.Recipe)
	assert.True(t, r.Recipe.Input.IsWildcard())

	r = p.Describe(item.MustParse("minecraft:pumpkin"))
	assert.Nil(t, r.Recipe)
	assert.Equal(t, 1, r.MinimumQuantity)
	assert.Len(t, r.Extraction, 1)

	var buf bytes.Buffer
	require.NoError(t, p.WriteDiagnostic(&buf))
	assert.Contains(t, buf.String(), "Known Recycler Recipes:")
	assert.Contains(t, buf.String(), "[1x Bucket] => [3x Iron Ingot]")
}

func TestParseBlacklistEntry(t *testing.T) {
	tests := []struct {
		in      string
		want    item.Stack
		wantErr bool
	}{
		{in: "minecraft:diamond_sword", want: item.Wildcard("minecraft:diamond_sword", 1)},
		{in: "minecraft:wool:3", want: item.New("minecraft:wool", 3, 1)},
		{in: "minecraft:wool:*", want: item.Wildcard("minecraft:wool", 1)},
		{in: "4x minecraft:stone:1", want: item.New("minecraft:stone", 1, 1)},
		{in: "stone", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBlacklistEntry(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteMetricsFile(t *testing.T) {
	ctx := context.Background()
	p := newPlugin(t, nil)
	require.NoError(t, p.Initialize(ctx))
	_, err := p.PostInit(ctx, hostRecipes())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "recycler.prom")
	require.NoError(t, WriteMetricsFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "recycler_scan_recipes_total")
	assert.Contains(t, string(data), "recycler_table_entries")
}
