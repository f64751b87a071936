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
	"sync"

	"github.com/blockartistry/recycler/pkg/item"
)

// HarvestEvent describes a block being broken. Hooks may rewrite Drops.
type HarvestEvent struct {
	Block     item.Stack
	Drops     []item.Stack
	Fortune   int
	SilkTouch bool
}

// Hook handles a harvest event and reports whether it acted on it.
type Hook func(ev *HarvestEvent) bool

// Bus runs hooks in registration order.
type Bus struct {
	mu    sync.RWMutex
	hooks []Hook
}

// NewBus creates a bus with no hooks.
func NewBus() *Bus {
	return &Bus{}
}

// AddHook appends h.
func (b *Bus) AddHook(h Hook) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.hooks = append(b.hooks, h)
	b.mu.Unlock()
}

// Len returns the number of registered hooks.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.hooks)
}

// Dispatch runs every hook on ev and returns how many acted on it. A hook
// acting on the event does not stop later hooks.
func (b *Bus) Dispatch(ev *HarvestEvent) int {
	b.mu.RLock()
	hooks := append([]Hook(nil), b.hooks...)
	b.mu.RUnlock()

	handled := 0
	for _, h := range hooks {
		if h(ev) {
			handled++
		}
	}
	return handled
}
