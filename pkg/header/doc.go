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

// Package header provides the common header carried by recycler documents.
//
// Data packs, recipe reports and scan reports all start with the same three
// fields so a reader can tell what a file holds before decoding the rest:
//
//	kind: DataPack
//	apiVersion: recycler.blockartistry.org/v1
//	metadata:
//	  gameVersion: "1.7.10"
//	  name: builtin
//
// Build a header with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindScanReport),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("runId", id),
//	)
package header
