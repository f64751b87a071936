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

package recipe

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"

	cnserrors "github.com/blockartistry/recycler/pkg/errors"
	"github.com/blockartistry/recycler/pkg/item"
)

// Alternatives supplies a concrete item for a wildcard output, typically the
// preferred ore dictionary equivalent. Quantity must be preserved.
type Alternatives interface {
	Preferred(s item.Stack) (item.Stack, bool)
}

// NameResolver returns an item's display name.
type NameResolver interface {
	DisplayName(s item.Stack) string
}

type textNames struct{}

func (textNames) DisplayName(s item.Stack) string {
	return s.WithQuantity(1).String()
}

// Option configures a Registry.
type Option func(*Registry)

// WithAlternatives sets the provider used to replace wildcard outputs.
func WithAlternatives(a Alternatives) Option {
	return func(r *Registry) {
		r.alternatives = a
	}
}

// WithStackLimits sets the provider of per-item max stack sizes used to
// split outputs.
func WithStackLimits(l item.StackLimits) Option {
	return func(r *Registry) {
		r.limits = l
	}
}

// WithNames sets the resolver used for display names in diagnostics.
func WithNames(n NameResolver) Option {
	return func(r *Registry) {
		r.names = n
	}
}

// Registry is the recycler's recipe table. It is safe for concurrent use.
type Registry struct {
	table        *item.Table[*Entry]
	alternatives Alternatives
	limits       item.StackLimits
	names        NameResolver
}

// NewRegistry creates an empty, writable registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		table:  item.NewTable[*Entry](),
		limits: item.DefaultLimits,
		names:  textNames{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// exactOverWildcard allows an exact input to shadow a wildcard entry.
func exactOverWildcard(input item.Stack) func(item.Key) bool {
	return func(existing item.Key) bool {
		return existing.Variant.IsWildcard() && !input.IsWildcard()
	}
}

// Put registers the recipe input => outputs. The caller's outputs slice is
// never modified. Invalid stacks and writes after Freeze return
// ResultFailure with an error; an existing match returns ResultDuplicate.
func (r *Registry) Put(input item.Stack, outputs []item.Stack) (Result, error) {
	entry, err := NewEntry(input, outputs)
	if err != nil {
		recipePutTotal.WithLabelValues(ResultFailure.String()).Inc()
		return ResultFailure, cnserrors.WrapWithContext(
			cnserrors.ErrCodeInvalidRequest, "invalid recipe", err,
			map[string]any{"input": input.String()},
		)
	}

	stored, err := r.table.Insert(input.Key(), exactOverWildcard(input), func() *Entry {
		entry.Outputs = r.normalize(entry.Outputs)
		return entry
	})
	switch {
	case errors.Is(err, item.ErrFrozen):
		recipePutTotal.WithLabelValues(ResultFailure.String()).Inc()
		return ResultFailure, cnserrors.WrapWithContext(
			cnserrors.ErrCodeConflict, "recipe registry is frozen", err,
			map[string]any{"input": input.String()},
		)
	case err != nil:
		recipePutTotal.WithLabelValues(ResultFailure.String()).Inc()
		return ResultFailure, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to store recipe", err)
	case !stored:
		recipePutTotal.WithLabelValues(ResultDuplicate.String()).Inc()
		slog.Debug("duplicate recipe", "input", input.String())
		return ResultDuplicate, nil
	}

	recipePutTotal.WithLabelValues(ResultSuccess.String()).Inc()
	recipeOutputStacks.Observe(float64(len(entry.Outputs)))
	slog.Debug("recipe stored", "input", input.String(), "outputs", len(entry.Outputs))
	return ResultSuccess, nil
}

// normalize resolves wildcard outputs, merges equal outputs and splits
// oversized stacks.
func (r *Registry) normalize(outputs []item.Stack) []item.Stack {
	if r.alternatives != nil {
		for i, o := range outputs {
			if !o.IsWildcard() {
				continue
			}
			if alt, ok := r.alternatives.Preferred(o); ok {
				outputs[i] = alt.WithQuantity(o.Quantity)
			}
		}
	}
	return item.Compress(item.Coalesce(outputs), r.limits)
}

// Lookup returns a copy of the entry for s: the exact entry if present,
// else the wildcard entry for s's name.
func (r *Registry) Lookup(s item.Stack) (*Entry, bool) {
	e, match, ok := r.table.Match(s.Key())
	switch {
	case !ok:
		recipeLookupTotal.WithLabelValues("miss").Inc()
		return nil, false
	case match.Variant.IsWildcard():
		recipeLookupTotal.WithLabelValues("wildcard").Inc()
	default:
		recipeLookupTotal.WithLabelValues("exact").Inc()
	}
	return e.Clone(), true
}

// Outputs returns a copy of the outputs recorded for s.
func (r *Registry) Outputs(s item.Stack) ([]item.Stack, bool) {
	e, ok := r.Lookup(s)
	if !ok {
		return nil, false
	}
	return e.Outputs, true
}

// MinimumQuantityToRecycle returns the stack size needed to recycle s,
// or 1 when s has no recipe.
func (r *Registry) MinimumQuantityToRecycle(s item.Stack) int {
	if e, ok := r.Lookup(s); ok {
		return e.MinimumQuantity()
	}
	return 1
}

// Freeze makes the registry read-only. It is idempotent.
func (r *Registry) Freeze() {
	if !r.table.Frozen() {
		slog.Debug("recipe registry frozen", "entries", r.table.Len())
	}
	r.table.Freeze()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.table.Frozen()
}

// Len returns the number of stored entries.
func (r *Registry) Len() int {
	return r.table.Len()
}

// Entries returns copies of all entries in item order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, r.table.Len())
	for _, e := range r.table.All() {
		out = append(out, e.Clone())
	}
	return out
}

const diagnosticRule = "================================================================="

// WriteDiagnostic writes a human-readable listing of every entry in item
// order.
func (r *Registry) WriteDiagnostic(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\nKnown Recycler Recipes:\n")
	bw.WriteString(diagnosticRule + "\n")
	for _, e := range r.table.All() {
		bw.WriteString(e.Format(r.names))
		bw.WriteByte('\n')
	}
	bw.WriteString(diagnosticRule + "\n")
	return bw.Flush()
}

// Diagnostic returns the WriteDiagnostic text.
func (r *Registry) Diagnostic() string {
	var b strings.Builder
	_ = r.WriteDiagnostic(&b)
	return b.String()
}
