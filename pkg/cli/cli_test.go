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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/serializer"
)

// isolate keeps config discovery away from the developer's home directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

// bucketDump writes a host recipe dump holding the vanilla bucket recipe.
func bucketDump(t *testing.T, dir string) string {
	t.Helper()
	out := item.MustParse("minecraft:bucket")
	iron := host.Item(item.MustParse("minecraft:iron_ingot"))
	path := filepath.Join(dir, "recipes.db")
	require.NoError(t, host.ExportSQLite(context.Background(), path, []host.CraftingRecipe{{
		ID:     "minecraft:bucket",
		Output: &out,
		Shape:  []string{"# #", " # "},
		Keys:   map[string]host.Ingredient{"#": iron},
	}}))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	wantFlags := []string{"config", "log-level", "data", "script", "recipes", "metrics-file", "seed"}
	for _, name := range wantFlags {
		found := false
		for _, f := range cmd.Flags {
			for _, n := range f.Names() {
				if n == name {
					found = true
				}
			}
		}
		assert.True(t, found, "flag %q", name)
	}

	wantCommands := []string{"diag", "lookup", "scan", "scrap", "harvest", "export", "version"}
	for _, name := range wantCommands {
		sub := cmd.Command(name)
		if assert.NotNil(t, sub, "command %q", name) {
			assert.NotNil(t, sub.Action, "command %q action", name)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "xml", format: "xml", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "recycler dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestDiagCommand(t *testing.T) {
	dir := isolate(t)

	out, err := runCLI(t, "diag")
	require.NoError(t, err)
	assert.Contains(t, out, "Known Recycler Recipes:")
	assert.Contains(t, out, "[1x Anvil] => [20x Iron Ingot]")

	path := filepath.Join(dir, "diag.txt")
	_, err = runCLI(t, "diag", "--output", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[1x Anvil] => [10x Iron Ingot]")
}

func TestLookupCommand(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "anvil.json")

	_, err := runCLI(t, "lookup", "--item", "minecraft:anvil:1", "--format", "json", "--output", path)
	require.NoError(t, err)

	report := readJSON(t, path)
	assert.Equal(t, "RecipeReport", report["kind"])
	assert.Equal(t, "Anvil", report["displayName"])
	assert.EqualValues(t, 1, report["minimumQuantity"])
	metadata, ok := report["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dev", metadata["version"])

	recipe, ok := report["recipe"].(map[string]any)
	require.True(t, ok, "recipe missing from report")
	assert.Equal(t, "minecraft:anvil:1", recipe["input"])
	assert.Equal(t, []any{"20x minecraft:iron_ingot"}, recipe["outputs"])
}

func TestLookupCommandErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing item", args: []string{"lookup"}},
		{name: "bad item", args: []string{"lookup", "--item", "anvil"}},
		{name: "bad format", args: []string{"lookup", "--item", "minecraft:anvil", "--format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestScanCommandWithRecipeDump(t *testing.T) {
	dir := isolate(t)
	db := bucketDump(t, dir)
	path := filepath.Join(dir, "scan.json")
	metrics := filepath.Join(dir, "recycler.prom")

	_, err := runCLI(t, "--recipes", db, "--metrics-file", metrics,
		"scan", "--format", "json", "--output", path)
	require.NoError(t, err)

	report := readJSON(t, path)
	assert.Equal(t, "ScanReport", report["kind"])
	assert.EqualValues(t, 1, report["scanned"])
	assert.EqualValues(t, 1, report["registered"])
	assert.EqualValues(t, 1, report["duplicates"])
	assert.NotEmpty(t, report["runId"])

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "recycler_scan_recipes_total")

	lookup := filepath.Join(dir, "bucket.json")
	_, err = runCLI(t, "--recipes", db, "lookup", "--item", "minecraft:bucket", "--format", "json", "--output", lookup)
	require.NoError(t, err)
	recipe, ok := readJSON(t, lookup)["recipe"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"3x minecraft:iron_ingot"}, recipe["outputs"])
}

func TestScanCommandMissingDump(t *testing.T) {
	dir := isolate(t)

	_, err := runCLI(t, "--recipes", filepath.Join(dir, "missing.db"), "scan")
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
}

func TestScanCommandWithScript(t *testing.T) {
	dir := isolate(t)
	script := filepath.Join(dir, "pearl.js")
	require.NoError(t, os.WriteFile(script,
		[]byte(`recipes.add("minecraft:ender_pearl", ["4x minecraft:gold_ingot"]);`), 0o600))

	out, err := runCLI(t, "--script", script, "diag")
	require.NoError(t, err)
	assert.Contains(t, out, "[1x Ender Pearl] => [4x Gold Ingot]")
}

func TestScrapCommand(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "scrap.json")

	_, err := runCLI(t, "--seed", "42", "scrap", "--item", "recycler:processing_core",
		"--count", "2", "--format", "json", "--output", path)
	require.NoError(t, err)

	report := readJSON(t, path)
	assert.Equal(t, "DECOMPOSITION", report["core"])
	assert.Equal(t, []any{
		[]any{"recycler:processing_core"},
		[]any{"recycler:processing_core"},
	}, report["rolls"])
}

func TestScrapCommandErrors(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "scrap", "--item", "minecraft:stone", "--core", "melting")
	assert.Error(t, err)

	_, err = runCLI(t, "scrap", "--item", "minecraft:stone", "--count", "0")
	assert.Error(t, err)
}

func TestHarvestCommand(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name        string
		args        []string
		wantHandled float64
	}{
		{name: "rubble", args: []string{"--block", "recycler:rubble"}, wantHandled: 3},
		{name: "rubble with silk touch", args: []string{"--block", "recycler:rubble", "--silk-touch"}},
		{name: "other block", args: []string{"--block", "minecraft:stone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			args := append([]string{"--seed", "7", "harvest", "--count", "3", "--format", "json", "--output", path}, tt.args...)
			_, err := runCLI(t, args...)
			require.NoError(t, err)

			report := readJSON(t, path)
			handled, _ := report["handled"].(float64)
			assert.InDelta(t, tt.wantHandled, handled, 0)
			rolls, ok := report["rolls"].([]any)
			require.True(t, ok)
			assert.Len(t, rolls, 3)
			if tt.wantHandled == 0 {
				assert.Equal(t, []any{report["item"]}, rolls[0])
			}
		})
	}
}

func TestExportCommand(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "export.db")

	_, err := runCLI(t, "export", "--db", path)
	require.NoError(t, err)

	src, err := host.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer src.Close()

	recipes, err := src.Recipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "recycler:energetic_redstone_dust_uranium", recipes[0].ID)
}

func TestInvalidConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".recycler.yaml"), []byte("max_stack_size: 0\n"), 0o600))

	_, err := runCLI(t, "scan")
	assert.Error(t, err)
}
