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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/blockartistry/recycler/pkg/catalog"
	"github.com/blockartistry/recycler/pkg/decompose"
	"github.com/blockartistry/recycler/pkg/defaults"
	"github.com/blockartistry/recycler/pkg/header"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/recipe"
)

// Scan pass names.
const (
	PassVanilla = "vanilla"
	PassAll     = "all"
)

// outcome is the result of scanning one crafting recipe.
type outcome string

const (
	outcomeRegistered outcome = "registered"
	outcomeDuplicate  outcome = "duplicate"
	outcomeSkipped    outcome = "skipped"
	outcomeFailed     outcome = "failed"
)

// PassReport counts the outcomes of one scan pass.
type PassReport struct {
	Name       string `json:"name" yaml:"name"`
	Registered int    `json:"registered" yaml:"registered"`
	Duplicates int    `json:"duplicates" yaml:"duplicates"`
	Skipped    int    `json:"skipped" yaml:"skipped"`
	Failed     int    `json:"failed" yaml:"failed"`
}

func (r *PassReport) count(o outcome) {
	switch o {
	case outcomeRegistered:
		r.Registered++
	case outcomeDuplicate:
		r.Duplicates++
	case outcomeSkipped:
		r.Skipped++
	case outcomeFailed:
		r.Failed++
	}
}

// ScanReport summarizes a post-init scan.
type ScanReport struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID      string       `json:"runId" yaml:"runId"`
	Scanned    int          `json:"scanned" yaml:"scanned"`
	Registered int          `json:"registered" yaml:"registered"`
	Duplicates int          `json:"duplicates" yaml:"duplicates"`
	Skipped    int          `json:"skipped" yaml:"skipped"`
	Failed     int          `json:"failed" yaml:"failed"`
	Recipes    int          `json:"recipes" yaml:"recipes"`
	Passes     []PassReport `json:"passes" yaml:"passes"`
}

func (r *ScanReport) add(pass PassReport) {
	r.Passes = append(r.Passes, pass)
	r.Registered += pass.Registered
	r.Duplicates += pass.Duplicates
	r.Skipped += pass.Skipped
	r.Failed += pass.Failed
}

// PostInit scans the host crafting recipes plus the enabled pack crafting
// recipes into the recipe registry and freezes every table. Per-recipe
// failures are logged and counted, never returned.
func (p *Plugin) PostInit(ctx context.Context, src host.Source) (*ScanReport, error) {
	if err := p.advance(phaseInitialized, phaseFrozen, "PostInit"); err != nil {
		return nil, err
	}
	// Tables are frozen even when the scan is cut short.
	defer p.freeze()

	start := time.Now()
	report := &ScanReport{RunID: uuid.New().String()}
	report.Init(header.KindScanReport, "")
	report.Metadata["runId"] = report.RunID
	log := slog.Default().With("runId", report.RunID)

	var recipes []host.CraftingRecipe
	if src != nil {
		rs, err := src.Recipes(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing host recipes: %w", err)
		}
		recipes = rs
	}
	recipes = append(recipes, p.crafting...)
	report.Scanned = len(recipes)

	passes := []string{PassAll}
	if p.opts.VanillaFirst {
		passes = []string{PassVanilla, PassAll}
	}

	warn := &rate.Sometimes{
		First:    defaults.ScanWarnBurst,
		Every:    defaults.ScanWarnEvery,
		Interval: defaults.ScanWarnInterval,
	}
	for _, name := range passes {
		pass, err := p.scanPass(ctx, log, warn, name, recipes)
		report.add(pass)
		if err != nil {
			return report, err
		}
	}

	report.Recipes = p.recipes.Len()
	scanDuration.Observe(time.Since(start).Seconds())
	log.Info("recipe scan complete",
		"scanned", report.Scanned,
		"registered", report.Registered,
		"duplicates", report.Duplicates,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"recipes", report.Recipes,
		"duration", time.Since(start).String())
	return report, nil
}

func (p *Plugin) scanPass(ctx context.Context, log *slog.Logger, warn *rate.Sometimes, name string, recipes []host.CraftingRecipe) (PassReport, error) {
	pass := PassReport{Name: name}
	vanillaOnly := name == PassVanilla
	for _, r := range recipes {
		if err := ctx.Err(); err != nil {
			return pass, err
		}
		o, err := p.scanRecipe(r, vanillaOnly)
		pass.count(o)
		scanRecipesTotal.WithLabelValues(name, string(o)).Inc()
		if err != nil {
			warn.Do(func() {
				log.Warn("unable to register recipe", "pass", name, "id", r.ID, "error", err)
			})
		}
	}
	log.Debug("scan pass complete", "pass", name,
		"registered", pass.Registered, "duplicates", pass.Duplicates,
		"skipped", pass.Skipped, "failed", pass.Failed)
	return pass, nil
}

// scanRecipe decomposes r and stores it. A panic in any step is recovered
// and reported as a failure.
func (p *Plugin) scanRecipe(r host.CraftingRecipe, vanillaOnly bool) (o outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			o, err = outcomeFailed, fmt.Errorf("recipe %s: panic: %v", r.ID, rec)
		}
	}()

	if r.Output == nil {
		return outcomeSkipped, nil
	}
	out := *r.Output
	if vanillaOnly && !catalog.IsVanilla(out) {
		return outcomeSkipped, nil
	}
	if p.items.IsRecipeIgnored(out) || !p.whitelisted(out) {
		return outcomeSkipped, nil
	}

	stacks, err := p.decomposer.Decompose(r)
	switch {
	case errors.Is(err, decompose.ErrNoIngredients), errors.Is(err, decompose.ErrNoOutput):
		return outcomeSkipped, nil
	case err != nil:
		return outcomeFailed, err
	}

	stacks = p.items.Scrub(stacks)
	if len(stacks) == 0 {
		return outcomeSkipped, nil
	}
	if vanillaOnly && !catalog.AllVanilla(stacks) {
		return outcomeSkipped, nil
	}

	res, err := p.recipes.Put(out, stacks)
	switch {
	case err != nil:
		return outcomeFailed, err
	case res == recipe.ResultDuplicate:
		return outcomeDuplicate, nil
	}
	return outcomeRegistered, nil
}

func (p *Plugin) whitelisted(s item.Stack) bool {
	return slices.Contains(p.opts.Whitelist, s.Mod())
}
