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
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/blockartistry/recycler/pkg/serializer"
	"github.com/blockartistry/recycler/pkg/version"
)

// BuiltinSource is the Source of the embedded pack.
const BuiltinSource = "builtin"

// maxParallelParse caps concurrent pack parsing.
const maxParallelParse = 8

var (
	//go:embed data/builtin.yaml
	builtinData []byte

	builtinOnce sync.Once
	builtinPack *Pack
	builtinErr  error
)

// Builtin returns the embedded pack. It is parsed once and shared; callers
// must not modify it.
func Builtin() (*Pack, error) {
	builtinOnce.Do(func() {
		builtinPack, builtinErr = Parse(builtinData, BuiltinSource)
	})
	return builtinPack, builtinErr
}

// Parse decodes and validates a YAML pack.
func Parse(data []byte, source string) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPack, source, err)
	}
	p.Source = source
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseFile reads and validates the pack at path. JSON and YAML are
// accepted, by extension.
func ParseFile(path string) (*Pack, error) {
	p, err := serializer.FromFile[Pack](path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPack, err)
	}
	p.Source = path
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Files lists the pack files in dirs, sorted by directory order then name.
// Missing directories are an error.
func Files(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading pack directory %s: %w", dir, err)
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".yaml", ".yml", ".json":
				names = append(names, filepath.Join(dir, e.Name()))
			}
		}
		slices.Sort(names)
		files = append(files, names...)
	}
	return files, nil
}

// Load returns the built-in pack followed by every pack found in dirs that
// supports game. Files are parsed concurrently; the first parse error
// cancels the rest.
func Load(ctx context.Context, dirs []string, game version.Version) ([]*Pack, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}

	files, err := Files(dirs)
	if err != nil {
		return nil, err
	}

	parsed := make([]*Pack, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelParse)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := ParseFile(f)
			if err != nil {
				return err
			}
			parsed[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	packs := make([]*Pack, 0, len(parsed)+1)
	for _, p := range append([]*Pack{builtin}, parsed...) {
		ok, err := p.Supports(game)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Warn("skipping data pack for another game version",
				"pack", p.Name(), "source", p.Source,
				"packVersion", p.Get(MetaGameVersion), "gameVersion", game.String())
			continue
		}
		slog.Debug("data pack loaded", "pack", p.Name(), "source", p.Source)
		packs = append(packs, p)
	}
	return packs, nil
}
