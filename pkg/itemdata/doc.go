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

// Package itemdata stores per-item attributes consulted by the recycler:
// scrap value, compost ingredient, and the flags that exclude an item from
// recipe scanning, recycler output, extraction or scrapping.
//
// Attributes follow the same exact-then-wildcard lookup as recipes. Setting
// an attribute on an exact variant starts from what that variant inherits
// from its wildcard entry, so only the changed attribute diverges.
package itemdata
