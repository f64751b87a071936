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

package datapack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/scrap"
	"github.com/blockartistry/recycler/pkg/version"
)

const extraPack = `kind: DataPack
metadata:
  name: extra
  gameVersion: "1.7.10"
ores:
  ingotCopper: ["ThermalFoundation:material:64"]
preferred:
  dustIron: "ThermalFoundation:material:0"
recipes:
  - input: "minecraft:anvil:*"
    outputs: ["31x minecraft:iron_ingot"]
rubble:
  block: "recycler:rubble:*"
  drops:
    - {item: "minecraft:gravel", min: 1, max: 3, weight: 2}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuiltin(t *testing.T) {
	p, err := Builtin()
	require.NoError(t, err)
	again, err := Builtin()
	require.NoError(t, err)
	assert.Same(t, p, again)

	assert.Equal(t, header.KindDataPack, p.Kind)
	assert.Equal(t, "builtin", p.Name())
	assert.Equal(t, BuiltinSource, p.Source)

	ok, err := p.Supports(version.MustParseVersion("1.7.10"))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NotEmpty(t, p.Items)
	assert.Contains(t, p.Ores, "logWood")
	require.NotNil(t, p.WoodDust)
	assert.Equal(t, 8, p.WoodDust.Ores["treeSapling"])
	require.NotNil(t, p.Rubble)
	assert.Len(t, p.Rubble.Drops, 8)
	assert.Len(t, p.Scrap, 9)

	require.NotEmpty(t, p.Extraction)
	first := p.Extraction[0]
	assert.Equal(t, item.MustParse("recycler:recycling_scrap:0"), first.Input)
	assert.Nil(t, first.Outputs[0].Item)
	assert.Equal(t, 120, first.Outputs[0].Weight)
	assert.Equal(t, "dustCoal", first.Outputs[3].Ore)

	var superior int
	for _, ov := range p.OreValues {
		if ov.Value == scrap.ValueSuperior {
			superior += len(ov.Ores)
		}
	}
	assert.Equal(t, 6, superior)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "kind: [\n"},
		{"wrong kind", "kind: ScanReport\n"},
		{"wrong api", "kind: DataPack\napiVersion: other/v9\n"},
		{"bad game version", "kind: DataPack\nmetadata:\n  gameVersion: one\n"},
		{"bad recipe input", "kind: DataPack\nrecipes:\n  - input: \"0x minecraft:stone\"\n"},
		{"wildcard preferred", "kind: DataPack\npreferred:\n  logWood: \"minecraft:log:*\"\n"},
		{"empty extraction", "kind: DataPack\nextraction:\n  - input: \"minecraft:stone\"\n"},
		{"bad weight", "kind: DataPack\nscrap:\n  - {value: POOR, core: NONE, outputs: [{weight: 0}]}\n"},
		{"item and ore", "kind: DataPack\nscrap:\n  - {value: POOR, core: NONE, outputs: [{item: \"a:b\", ore: c, weight: 1}]}\n"},
		{"bad rubble", "kind: DataPack\nrubble:\n  block: \"recycler:rubble\"\n  drops: [{item: \"a:b\", min: 2, max: 1, weight: 1}]\n"},
		{"bad wood dust", "kind: DataPack\nwoodDust:\n  output: \"a:b\"\n  ores: {logWood: 0}\n"},
		{"bad crafting", "kind: DataPack\ncrafting:\n  - output: \"a:b\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body), tt.name)
			require.ErrorIs(t, err, ErrInvalidPack)
		})
	}
}

func TestSupports(t *testing.T) {
	game := version.MustParseVersion("1.7.10")
	tests := []struct {
		meta string
		want bool
	}{
		{"", true},
		{"1", true},
		{"1.7", true},
		{"1.7.10", true},
		{"1.7.2", false},
		{"1.8", false},
	}
	for _, tt := range tests {
		t.Run(tt.meta, func(t *testing.T) {
			p := &Pack{Header: *header.New(header.WithKind(header.KindDataPack))}
			if tt.meta != "" {
				p.Metadata[MetaGameVersion] = tt.meta
			}
			got, err := p.Supports(game)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-extra.yaml", extraPack)
	writeFile(t, dir, "a-old.yml", "kind: DataPack\nmetadata:\n  name: old\n  gameVersion: \"1.6\"\n")
	writeFile(t, dir, "c.json", `{"kind":"DataPack","metadata":{"name":"json"},"recipes":[{"input":"minecraft:stone","outputs":["minecraft:cobblestone"]}]}`)
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	packs, err := Load(context.Background(), []string{dir}, version.MustParseVersion("1.7.10"))
	require.NoError(t, err)

	var names []string
	for _, p := range packs {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"builtin", "extra", "json"}, names)
	assert.Equal(t, item.MustParse("minecraft:cobblestone"), packs[2].Recipes[0].Outputs[0])
}

func TestLoadErrors(t *testing.T) {
	game := version.MustParseVersion("1.7.10")

	_, err := Load(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, game)
	require.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "kind: Nope\n")
	_, err = Load(context.Background(), []string{dir}, game)
	require.ErrorIs(t, err, ErrInvalidPack)
}

func TestMerge(t *testing.T) {
	builtin, err := Builtin()
	require.NoError(t, err)
	extra, err := Parse([]byte(extraPack), "extra.yaml")
	require.NoError(t, err)

	m := Merge(builtin, nil, extra)
	require.NoError(t, m.Validate())
	assert.Equal(t, "builtin,extra", m.Get("sources"))

	assert.Len(t, m.Recipes, len(builtin.Recipes)+1)
	assert.Contains(t, m.Ores, "ingotCopper")
	assert.Equal(t, builtin.Ores["logWood"], m.Ores["logWood"])
	assert.Equal(t, item.MustParse("ThermalFoundation:material:0"), m.Preferred["dustIron"])
	assert.Equal(t, builtin.Preferred["logWood"], m.Preferred["logWood"])

	require.NotNil(t, m.Rubble)
	assert.Equal(t, 2, m.Rubble.Rolls)
	assert.Len(t, m.Rubble.Drops, len(builtin.Rubble.Drops)+1)

	// the shared built-in pack is untouched
	assert.Len(t, builtin.Rubble.Drops, 8)
	assert.NotContains(t, builtin.Ores, "ingotCopper")
}
