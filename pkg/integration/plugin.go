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
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/blockartistry/recycler/pkg/catalog"
	"github.com/blockartistry/recycler/pkg/datapack"
	"github.com/blockartistry/recycler/pkg/decompose"
	"github.com/blockartistry/recycler/pkg/defaults"
	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/events"
	"github.com/blockartistry/recycler/pkg/extraction"
	"github.com/blockartistry/recycler/pkg/host"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/itemdata"
	"github.com/blockartistry/recycler/pkg/oredict"
	"github.com/blockartistry/recycler/pkg/recipe"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// ErrLifecycle is returned when a lifecycle step runs out of order.
var ErrLifecycle = errors.New("plugin lifecycle step out of order")

// ProcessingCore is the item that gets a pass-through scrap handler so its
// contents stay visible while scrapping.
var ProcessingCore = item.Wildcard("recycler:processing_core", 1)

// Decomposer turns a crafting recipe into the stacks recovered by
// recycling its output.
type Decomposer interface {
	Decompose(r host.CraftingRecipe) ([]item.Stack, error)
}

type phase int

const (
	phaseNew phase = iota
	phaseInitialized
	phaseFrozen
	phaseFailed
)

// Options configures a Plugin.
type Options struct {
	// Pack is the merged data pack applied by Initialize.
	Pack *datapack.Pack

	// Whitelist holds the mod ids whose crafting recipes are scanned.
	Whitelist []string

	// Blacklist holds items blocked from scrapping. Entries without a
	// metadata value block every variant.
	Blacklist []string

	// OreScan assigns scrap values through the ore dictionary.
	OreScan bool

	// VanillaFirst scans vanilla-only recipes before everything else.
	VanillaFirst bool

	// MaxStackSize caps output stacks for items the catalog does not size.
	MaxStackSize int

	// Seed seeds scrap and rubble rolls. Zero picks a random seed.
	Seed uint64

	// Decomposer overrides the ore dictionary decomposer.
	Decomposer Decomposer
}

// Plugin owns the recycler tables for one game session.
type Plugin struct {
	opts Options

	catalog    *catalog.Catalog
	ores       *oredict.Dictionary
	items      *itemdata.Registry
	recipes    *recipe.Registry
	extraction *extraction.Registry
	tables     *scrap.Tables
	handlers   *scrap.Handlers
	bus        *events.Bus
	rubble     *events.Rubble
	decomposer Decomposer

	// crafting holds pack crafting recipes whose required ores exist.
	crafting []host.CraftingRecipe

	mu    sync.Mutex
	phase phase
	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a plugin with empty tables.
func New(opts Options) (*Plugin, error) {
	if opts.Pack == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "data pack is required")
	}
	if opts.MaxStackSize <= 0 {
		opts.MaxStackSize = defaults.MaxStackSize
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	p := &Plugin{
		opts:       opts,
		catalog:    catalog.New(),
		ores:       oredict.New(),
		items:      itemdata.NewRegistry(),
		extraction: extraction.NewRegistry(),
		tables:     scrap.NewTables(),
		handlers:   scrap.NewHandlers(),
		bus:        events.NewBus(),
		rng:        rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	p.recipes = recipe.NewRegistry(
		recipe.WithAlternatives(p.ores),
		recipe.WithStackLimits(item.StackLimitsFunc(p.maxStackSize)),
		recipe.WithNames(p.catalog),
	)
	p.decomposer = opts.Decomposer
	if p.decomposer == nil {
		p.decomposer = decompose.New(p.ores)
	}
	return p, nil
}

func (p *Plugin) maxStackSize(s item.Stack) int {
	if info, ok := p.catalog.Lookup(s); ok && info.MaxStackSize > 0 {
		return info.MaxStackSize
	}
	return p.opts.MaxStackSize
}

// Catalog returns the item catalog.
func (p *Plugin) Catalog() *catalog.Catalog { return p.catalog }

// Ores returns the ore dictionary.
func (p *Plugin) Ores() *oredict.Dictionary { return p.ores }

// Items returns the item attribute registry.
func (p *Plugin) Items() *itemdata.Registry { return p.items }

// Recipes returns the recycling recipe registry.
func (p *Plugin) Recipes() *recipe.Registry { return p.recipes }

// Extraction returns the extraction registry.
func (p *Plugin) Extraction() *extraction.Registry { return p.extraction }

// Rubble returns the rubble pile, or nil when no pack configures one.
func (p *Plugin) Rubble() *events.Rubble { return p.rubble }

// Frozen reports whether PostInit has completed.
func (p *Plugin) Frozen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase == phaseFrozen
}

func (p *Plugin) advance(from, to phase, step string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.phase != from {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeConflict, step+" called out of order", ErrLifecycle,
			map[string]any{"step": step, "phase": int(p.phase)})
	}
	p.phase = to
	return nil
}

// Initialize applies the data pack. It runs once, before PostInit. A failed
// Initialize may leave the registries partly filled, so the plugin cannot be
// initialized again and must be discarded.
func (p *Plugin) Initialize(ctx context.Context) (err error) {
	if err = p.advance(phaseNew, phaseInitialized, "Initialize"); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			p.mu.Lock()
			p.phase = phaseFailed
			p.mu.Unlock()
		}
	}()
	pack := p.opts.Pack

	steps := []struct {
		name string
		fn   func(*datapack.Pack) error
	}{
		{"items", p.applyItems},
		{"ores", p.applyOres},
		{"itemData", p.applyItemData},
		{"oreValues", p.applyOreValues},
		{"woodDust", p.applyWoodDust},
		{"blacklist", p.applyBlacklist},
		{"recipes", p.applyRecipes},
		{"extraction", p.applyExtraction},
		{"scrap", p.applyScrap},
		{"rubble", p.applyRubble},
		{"crafting", p.applyCrafting},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.fn(pack); err != nil {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "failed to apply data pack", err,
				map[string]any{"section": step.name, "pack": pack.Name()})
		}
	}

	if err := p.handlers.Register(ProcessingCore, scrap.HandlerFunc(passThrough)); err != nil {
		return err
	}

	slog.Info("recycler initialized",
		"pack", pack.Name(),
		"recipes", p.recipes.Len(),
		"extraction", p.extraction.Len(),
		"itemData", p.items.Len(),
		"oreNames", len(p.ores.OreNames()))
	return nil
}

func passThrough(_ scrap.Core, s item.Stack, _ *rand.Rand) ([]item.Stack, bool) {
	return []item.Stack{s}, true
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func (p *Plugin) applyItems(pack *datapack.Pack) error {
	for _, info := range pack.Items {
		if err := p.catalog.Register(info); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) applyOres(pack *datapack.Pack) error {
	for _, name := range sortedKeys(pack.Ores) {
		for _, s := range pack.Ores[name] {
			if err := p.ores.Register(name, s); err != nil {
				return err
			}
		}
	}
	for _, name := range sortedKeys(pack.Preferred) {
		if err := p.ores.SetPreferred(name, pack.Preferred[name]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) applyItemData(pack *datapack.Pack) error {
	for _, patch := range pack.ItemData {
		if err := p.items.Apply(patch); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) applyOreValues(pack *datapack.Pack) error {
	if !p.opts.OreScan {
		return nil
	}
	for _, ov := range pack.OreValues {
		for _, name := range ov.Ores {
			for _, s := range p.ores.Ores(name) {
				if err := p.items.SetValue(s, ov.Value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// applyWoodDust recycles every wood ore stack into wood dust and keeps
// their crafting recipes out of the scan.
func (p *Plugin) applyWoodDust(pack *datapack.Pack) error {
	wd := pack.WoodDust
	if wd == nil {
		return nil
	}
	for _, name := range sortedKeys(wd.Ores) {
		for _, s := range p.ores.Ores(name) {
			res, err := p.recipes.Put(s.WithQuantity(wd.Ores[name]), []item.Stack{wd.Output})
			if err != nil {
				return err
			}
			if res == recipe.ResultDuplicate {
				slog.Debug("wood dust recipe already registered", "item", s.String(), "ore", name)
			}
			if err := p.items.SetRecipeIgnored(s, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseBlacklistEntry parses a blacklist entry. A name without metadata
// matches every variant.
func ParseBlacklistEntry(text string) (item.Stack, error) {
	s, err := item.Parse(text)
	if err != nil {
		return item.Stack{}, err
	}
	if strings.Count(strings.TrimSpace(text), ":") == 1 {
		s = item.Wildcard(s.Name, 1)
	}
	return s.WithQuantity(1), nil
}

func (p *Plugin) applyBlacklist(_ *datapack.Pack) error {
	for _, entry := range p.opts.Blacklist {
		s, err := ParseBlacklistEntry(entry)
		if err != nil {
			return fmt.Errorf("blacklist entry %q: %w", entry, err)
		}
		if err := p.items.SetBlockedFromScrapping(s, true); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) applyRecipes(pack *datapack.Pack) error {
	for _, r := range pack.Recipes {
		res, err := p.recipes.Put(r.Input, r.Outputs)
		if err != nil {
			return err
		}
		if res == recipe.ResultDuplicate {
			slog.Warn("duplicate recipe in data pack", "input", r.Input.String())
		}
	}
	return nil
}

// resolveWeighted turns pack entries into table entries. Ore entries with
// no registered stack are dropped.
func (p *Plugin) resolveWeighted(entries []datapack.Weighted) []scrap.Weighted {
	out := make([]scrap.Weighted, 0, len(entries))
	for _, w := range entries {
		qty := max(w.Qty, 1)
		switch {
		case w.Ore != "":
			s, ok := p.ores.Stack(w.Ore, qty)
			if !ok {
				slog.Debug("dropping weighted entry for unknown ore", "ore", w.Ore)
				continue
			}
			out = append(out, scrap.Weighted{Item: &s, Weight: w.Weight})
		case w.Item != nil:
			s := *w.Item
			if w.Qty > 0 {
				s = s.WithQuantity(w.Qty)
			}
			out = append(out, scrap.Weighted{Item: &s, Weight: w.Weight})
		default:
			out = append(out, scrap.Weighted{Weight: w.Weight})
		}
	}
	return out
}

// AddExtraction registers an extraction recipe, resolving ore outputs.
func (p *Plugin) AddExtraction(input item.Stack, outputs []datapack.Weighted) error {
	resolved := p.resolveWeighted(outputs)
	if len(resolved) == 0 {
		return fmt.Errorf("extraction %s: %w", input, scrap.ErrEmptyTable)
	}
	return p.extraction.Add(input, resolved...)
}

func (p *Plugin) applyExtraction(pack *datapack.Pack) error {
	for _, x := range pack.Extraction {
		err := p.AddExtraction(x.Input, x.Outputs)
		switch {
		case errors.Is(err, extraction.ErrDuplicate):
			slog.Warn("duplicate extraction recipe in data pack", "input", x.Input.String())
		case errors.Is(err, scrap.ErrEmptyTable):
			slog.Warn("extraction recipe has no resolvable outputs", "input", x.Input.String())
		case err != nil:
			return err
		}
	}
	return nil
}

func (p *Plugin) applyScrap(pack *datapack.Pack) error {
	for _, t := range pack.Scrap {
		tbl, err := scrap.NewWeightTable(p.resolveWeighted(t.Outputs)...)
		if err != nil {
			return err
		}
		if err := p.tables.Set(t.Value, t.Core, tbl); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) applyRubble(pack *datapack.Pack) error {
	r := pack.Rubble
	if r == nil {
		return nil
	}
	p.rubble = events.NewRubble(r.Block, r.Rolls, p.rng)
	for _, d := range r.Drops {
		if err := p.rubble.AddDrop(d); err != nil {
			return err
		}
	}
	p.bus.AddHook(p.rubble.Hook())
	return nil
}

// applyCrafting keeps the pack crafting recipes whose required ores are
// registered; PostInit scans them with the host recipes.
func (p *Plugin) applyCrafting(pack *datapack.Pack) error {
	for _, r := range pack.Crafting {
		missing := slices.DeleteFunc(slices.Clone(r.RequiresOres), p.ores.Has)
		if len(missing) > 0 {
			slog.Debug("skipping crafting recipe with missing ores", "id", r.ID, "missing", missing)
			continue
		}
		p.crafting = append(p.crafting, r)
	}
	return nil
}

// Crafting returns the pack crafting recipes enabled by Initialize.
func (p *Plugin) Crafting() []host.CraftingRecipe {
	return slices.Clone(p.crafting)
}

// Scrap scraps one unit of s under core.
func (p *Plugin) Scrap(core scrap.Core, s item.Stack) []item.Stack {
	x := scrap.Scrapper{Tables: p.tables, Handlers: p.handlers, Values: p.items}
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	return x.Scrap(core, s, p.rng)
}

// Extract runs one extraction of s. The zero stack and false mean s has no
// extraction recipe or the roll produced nothing.
func (p *Plugin) Extract(s item.Stack) (item.Stack, bool, error) {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	return p.extraction.Extract(s, p.rng)
}

// Harvest dispatches a block harvest to the registered hooks.
func (p *Plugin) Harvest(ev *events.HarvestEvent) int {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	return p.bus.Dispatch(ev)
}

// WriteDiagnostic writes the recipe dump.
func (p *Plugin) WriteDiagnostic(w io.Writer) error {
	return p.recipes.WriteDiagnostic(w)
}

func (p *Plugin) freeze() {
	p.items.Freeze()
	p.recipes.Freeze()
	p.handlers.Freeze()
	p.extraction.Freeze()
	p.tables.Freeze()
	p.ores.Freeze()
	p.catalog.Freeze()

	tableEntries.WithLabelValues("recipes").Set(float64(p.recipes.Len()))
	tableEntries.WithLabelValues("itemData").Set(float64(p.items.Len()))
	tableEntries.WithLabelValues("extraction").Set(float64(p.extraction.Len()))
	tableEntries.WithLabelValues("scrapTables").Set(float64(p.tables.Len()))
	tableEntries.WithLabelValues("scrapHandlers").Set(float64(p.handlers.Len()))
	tableEntries.WithLabelValues("catalog").Set(float64(p.catalog.Len()))
}
