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

// Package config loads recycler settings.
//
// Settings come from an optional YAML file and RECYCLER_* environment
// variables, layered over built-in defaults:
//
//	game_version: 1.7.10
//	data_dirs: [./packs]
//	scripts_dir: ./scripts
//	mod_whitelist: [minecraft, recycler]
//	recycler_blacklist: ["minecraft:bedrock"]
//	enable_ore_dictionary_scan: true
//	vanilla_first: true
//	log_level: info # empty falls back to LOG_LEVEL
//	metrics_file: ""
//	max_stack_size: 64
//	recipes_db: ./recipes.db
//
// Without an explicit path, Load looks for .recycler.yaml in the home
// directory and then the working directory. A missing file is not an error.
// List values set through the environment are comma separated:
//
//	RECYCLER_MOD_WHITELIST=minecraft,recycler,thermalfoundation
package config
