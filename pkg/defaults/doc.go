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

// Package defaults provides centralized tuning constants for the recycler.
//
// This package defines stack limits, host sentinels, log budgets and timeout
// values used across the codebase. Keeping them in one place lets the
// registry, the post-init scan and the CLI agree on the same numbers.
//
// # Categories
//
//   - Item limits: stack sizes and the host's wildcard metadata sentinel
//   - Scan budgets: how much the post-init recipe scan may log
//   - Timeouts: script execution and data pack loading
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/blockartistry/recycler/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.PackLoadTimeout)
//	defer cancel()
package defaults
