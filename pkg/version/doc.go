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

// Package version parses and compares dotted version strings such as the
// host game version ("1.7.10") and the game version a data pack targets.
//
// A version keeps the precision it was written with, so a pack declaring
// "1.7" matches every 1.7.x game release:
//
//	game := version.MustParseVersion("1.7.10")
//	pack, err := version.ParseVersion("1.7")
//	if err == nil && pack.Matches(game) {
//	    // load the pack
//	}
package version
