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

// Package cli implements the recycler command-line interface.
//
// # Overview
//
// Every command except version and export runs the same pipeline: load the
// configuration, merge the built-in data pack with any packs found in the
// data directories, initialize the recycler tables, run the tweaker
// scripts, scan the host crafting recipes and freeze. The command then
// reports on the frozen tables.
//
// # Commands
//
// diag - Write the recipe diagnostic:
//
//	recycler diag [--output FILE]
//
// lookup - Describe one item:
//
//	recycler lookup --item minecraft:anvil:1 [--format yaml|json|table]
//
// scan - Report the crafting recipe scan:
//
//	recycler --recipes recipes.db scan --format json
//
// scrap - Roll the scrap tables:
//
//	recycler --seed 42 scrap --item minecraft:iron_ingot --core extraction --count 10
//
// harvest - Dispatch a block harvest through the hooks:
//
//	recycler harvest --block recycler:rubble --fortune 2
//
// export - Write the data pack crafting recipes to a SQLite dump:
//
//	recycler export --db recipes.db
//
// # Global Flags
//
//	--config         Config file (default: .recycler.yaml in $HOME or the working directory)
//	--log-level      Log level: debug, info, warn, error
//	--data           Extra data pack directory (repeatable)
//	--script         Tweaker script run before the scan (repeatable)
//	--recipes        SQLite dump of the host crafting recipes
//	--metrics-file   Prometheus text file written after the scan
//	--seed           Seed for scrap and rubble rolls
//
// # Environment Variables
//
//	RECYCLER_*   Any config key, e.g. RECYCLER_MOD_WHITELIST=minecraft,recycler
//	LOG_LEVEL    Log level when neither the flag nor the config sets one
//
// # Exit Codes
//
//	0  Success
//	1  Any error (invalid arguments, bad data pack, script failure)
package cli
