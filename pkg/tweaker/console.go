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

package tweaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/blockartistry/recycler/pkg/datapack"
	"github.com/blockartistry/recycler/pkg/defaults"
	"github.com/blockartistry/recycler/pkg/events"
	"github.com/blockartistry/recycler/pkg/integration"
	"github.com/blockartistry/recycler/pkg/item"
	"github.com/blockartistry/recycler/pkg/recipe"
	"github.com/blockartistry/recycler/pkg/scrap"
)

// ErrTimeout is returned when a script runs past its timeout.
var ErrTimeout = errors.New("script timed out")

const interruptMessage = "script timeout"

// Option configures a Console.
type Option func(*Console)

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) Option {
	return func(c *Console) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Console runs scripts against a plugin.
type Console struct {
	plugin  *integration.Plugin
	timeout time.Duration
}

// New creates a console for p.
func New(p *integration.Plugin, opts ...Option) *Console {
	c := &Console{plugin: p, timeout: defaults.ScriptTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunFiles runs each script file in order, stopping at the first error.
func (c *Console) RunFiles(ctx context.Context, paths []string) error {
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading script %s: %w", path, err)
		}
		if err := c.Run(ctx, path, string(src)); err != nil {
			return err
		}
	}
	return nil
}

// ScriptFiles lists the .js files in dir sorted by name. A missing
// directory yields no files.
func ScriptFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scripts directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".js") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// Run executes src in a fresh runtime.
func (c *Console) Run(ctx context.Context, name, src string) error {
	prog, err := goja.Compile(name, src, true)
	if err != nil {
		return fmt.Errorf("compiling script %s: %w", name, err)
	}

	vm := goja.New()
	b := &bindings{vm: vm, plugin: c.plugin, log: slog.Default().With("script", name)}
	if err := b.install(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	go func() {
		<-ctx.Done()
		vm.Interrupt(interruptMessage)
	}()

	start := time.Now()
	_, err = vm.RunProgram(prog)
	var interrupted *goja.InterruptedError
	switch {
	case errors.As(err, &interrupted):
		return fmt.Errorf("%w: %s after %s", ErrTimeout, name, c.timeout)
	case err != nil:
		return fmt.Errorf("running script %s: %w", name, err)
	}
	b.log.Debug("script complete", "duration", time.Since(start).String())
	return nil
}

// bindings holds the objects exposed to one runtime.
type bindings struct {
	vm     *goja.Runtime
	plugin *integration.Plugin
	log    *slog.Logger
}

func (b *bindings) install() error {
	scrapValues := make(map[string]any)
	for _, v := range scrap.Values() {
		scrapValues[v.String()] = int(v)
	}
	results := map[string]any{
		"SUCCESS":   int(recipe.ResultSuccess),
		"FAILURE":   int(recipe.ResultFailure),
		"DUPLICATE": int(recipe.ResultDuplicate),
	}

	globals := map[string]any{
		"Scrap":  scrapValues,
		"Result": results,
		"log":    b.logMessage,
		"recipes": map[string]any{
			"add":    b.addRecipe,
			"lookup": b.lookupRecipe,
		},
		"items": map[string]any{
			"setValue":    b.setValue,
			"setIgnored":  b.setIgnored,
			"setScrubbed": b.setScrubbed,
		},
		"extraction": map[string]any{
			"add": b.addExtraction,
		},
		"rubble": map[string]any{
			"add": b.addRubble,
		},
	}
	for name, v := range globals {
		if err := b.vm.Set(name, v); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	return nil
}

// throw raises err as a script exception.
func (b *bindings) throw(err error) {
	panic(b.vm.NewGoError(err))
}

func (b *bindings) stack(text string) item.Stack {
	s, err := item.Parse(text)
	if err != nil {
		b.throw(err)
	}
	return s
}

func (b *bindings) logMessage(call goja.FunctionCall) goja.Value {
	parts := make([]string, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		parts = append(parts, a.String())
	}
	b.log.Info(strings.Join(parts, " "))
	return goja.Undefined()
}

func (b *bindings) addRecipe(input string, outputs []string) int {
	in := b.stack(input)
	outs := make([]item.Stack, 0, len(outputs))
	for _, o := range outputs {
		outs = append(outs, b.stack(o))
	}
	res, err := b.plugin.Recipes().Put(in, outs)
	if errors.Is(err, item.ErrFrozen) {
		b.throw(err)
	}
	if err != nil {
		b.log.Warn("recipe rejected", "input", input, "error", err)
	}
	return int(res)
}

func (b *bindings) lookupRecipe(text string) any {
	e, ok := b.plugin.Recipes().Lookup(b.stack(text))
	if !ok {
		return nil
	}
	outputs := make([]string, 0, len(e.Outputs))
	for _, o := range e.Outputs {
		outputs = append(outputs, o.String())
	}
	return map[string]any{
		"input":   e.Input.String(),
		"outputs": outputs,
	}
}

func (b *bindings) setValue(text string, value int) {
	v := scrap.Value(value)
	if !v.IsValid() {
		b.throw(fmt.Errorf("invalid scrap value %d", value))
	}
	if err := b.plugin.Items().SetValue(b.stack(text), v); err != nil {
		b.throw(err)
	}
}

func (b *bindings) setIgnored(text string, flag bool) {
	if err := b.plugin.Items().SetRecipeIgnored(b.stack(text), flag); err != nil {
		b.throw(err)
	}
}

func (b *bindings) setScrubbed(text string, flag bool) {
	if err := b.plugin.Items().SetScrubbedFromOutput(b.stack(text), flag); err != nil {
		b.throw(err)
	}
}

func (b *bindings) addExtraction(input string, table [][]any) {
	in := b.stack(input)
	entries := make([]datapack.Weighted, 0, len(table))
	for i, row := range table {
		if len(row) != 2 {
			b.throw(fmt.Errorf("extraction %s: entry %d: want [item, weight]", input, i))
		}
		w := datapack.Weighted{Weight: toInt(row[1])}
		if w.Weight <= 0 {
			b.throw(fmt.Errorf("extraction %s: entry %d: weight must be positive", input, i))
		}
		switch v := row[0].(type) {
		case nil:
		case string:
			if strings.Contains(v, ":") {
				s := b.stack(v)
				w.Item = &s
			} else {
				w.Ore = v
			}
		default:
			b.throw(fmt.Errorf("extraction %s: entry %d: item must be a string or null", input, i))
		}
		entries = append(entries, w)
	}
	if err := b.plugin.AddExtraction(in, entries); err != nil {
		b.throw(err)
	}
}

func (b *bindings) addRubble(text string, lo, hi, weight int) {
	r := b.plugin.Rubble()
	if r == nil {
		b.throw(errors.New("no rubble pile is configured"))
	}
	if b.plugin.Frozen() {
		b.throw(item.ErrFrozen)
	}
	if err := r.AddDrop(events.RubbleDrop{Item: b.stack(text), Min: lo, Max: hi, Weight: weight}); err != nil {
		b.throw(err)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
