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

package defaults

import "time"

// Item limits.
const (
	// MaxStackSize is the stack size assumed for items the catalog does not know.
	MaxStackSize = 64

	// WildcardMeta is the metadata value the host uses to mean "any variant".
	// It is only accepted on input and never stored as an exact variant.
	WildcardMeta = 32767

	// VanillaMod is the mod id of items shipped with the base game.
	VanillaMod = "minecraft"
)

// Scan budgets for the post-init recipe scan.
const (
	// ScanWarnBurst is the number of per-recipe warnings logged before
	// throttling starts.
	ScanWarnBurst = 20

	// ScanWarnEvery logs one out of every N per-recipe warnings once the
	// burst is spent.
	ScanWarnEvery = 50

	// ScanWarnInterval is the minimum spacing between throttled warnings.
	ScanWarnInterval = 2 * time.Second
)

// Timeouts.
const (
	// ScriptTimeout bounds a single script run in the tweaker console.
	ScriptTimeout = 5 * time.Second

	// PackLoadTimeout bounds loading and parsing every data pack.
	PackLoadTimeout = 30 * time.Second
)
