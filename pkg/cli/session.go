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
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/blockartistry/recycler/pkg/config"
	"github.com/blockartistry/recycler/pkg/datapack"
	"github.com/blockartistry/recycler/pkg/defaults"
	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/integration"
	"github.com/blockartistry/recycler/pkg/logging"
	"github.com/blockartistry/recycler/pkg/tweaker"
)

// session carries one run of the load, initialize, script and scan pipeline.
type session struct {
	cfg     *config.Config
	scripts []string
	seed    uint64

	pack   *datapack.Pack
	plugin *integration.Plugin
	report *integration.ScanReport
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	cfg.DataDirs = append(cfg.DataDirs, cmd.StringSlice("data")...)
	if v := cmd.String("recipes"); v != "" {
		cfg.RecipesDB = v
	}
	if v := cmd.String("metrics-file"); v != "" {
		cfg.MetricsFile = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession loads the configuration, installs the logger and merges every
// data pack that supports the configured game version.
func newSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	if cfg.File != "" {
		slog.Debug("using config file", "path", cfg.File)
	}

	game, err := cfg.Game()
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, defaults.PackLoadTimeout)
	defer cancel()

	packs, err := datapack.Load(loadCtx, cfg.DataDirs, game)
	if err != nil {
		return nil, fmt.Errorf("loading data packs: %w", err)
	}

	return &session{
		cfg:     cfg,
		scripts: cmd.StringSlice("script"),
		seed:    cmd.Uint64("seed"),
		pack:    datapack.Merge(packs...),
	}, nil
}

// start builds and initializes the plugin, runs the tweaker scripts, scans
// the host recipes and writes the metrics file.
func (s *session) start(ctx context.Context) error {
	p, err := integration.New(integration.Options{
		Pack:         s.pack,
		Whitelist:    s.cfg.ModWhitelist,
		Blacklist:    s.cfg.Blacklist,
		OreScan:      s.cfg.OreScan,
		VanillaFirst: s.cfg.VanillaFirst,
		MaxStackSize: s.cfg.MaxStackSize,
		Seed:         s.seed,
	})
	if err != nil {
		return err
	}
	if err := p.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing recycler: %w", err)
	}

	scripts, err := tweaker.ScriptFiles(s.cfg.ScriptsDir)
	if err != nil {
		return err
	}
	scripts = append(scripts, s.scripts...)
	if err := tweaker.New(p).RunFiles(ctx, scripts); err != nil {
		return err
	}

	src, closeSource, err := s.recipeSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	report, err := p.PostInit(ctx, src)
	if err != nil {
		return fmt.Errorf("scanning crafting recipes: %w", err)
	}
	s.plugin, s.report = p, report

	if s.cfg.MetricsFile != "" {
		if err := integration.WriteMetricsFile(s.cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics file %s: %w", s.cfg.MetricsFile, err)
		}
	}
	return nil
}

// recipeSource opens the configured host recipe dump. Without one the scan
// only sees the data pack crafting recipes.
func (s *session) recipeSource(ctx context.Context) (host.Source, func(), error) {
	if s.cfg.RecipesDB == "" {
		return host.StaticSource(nil), func() {}, nil
	}
	if _, err := os.Stat(s.cfg.RecipesDB); err != nil {
		return nil, nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "recipe dump", err,
			map[string]any{"path": s.cfg.RecipesDB})
	}
	db, err := host.OpenSQLite(ctx, s.cfg.RecipesDB)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close recipe database", "error", err)
		}
	}, nil
}

// run loads a session and starts it.
func run(ctx context.Context, cmd *cli.Command) (*session, error) {
	s, err := newSession(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := s.start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
