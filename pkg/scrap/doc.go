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

// Package scrap defines scrap values, compost ingredients and processing
// cores, and the weighted tables that decide what an item breaks down into
// when it is scrapped.
//
// Tables are indexed by scrap value and processing core. Special per-item
// Handlers take precedence over the tables; a Scrapper combines both with a
// source of per-item values.
package scrap
