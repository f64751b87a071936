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

// Package matrix provides a fixed-size, sparsely populated two-dimensional
// grid.
//
// A Matrix is created with its final dimensions and never resizes. Each cell
// is either empty or holds a value; Get and IsPresent tell the two apart, so
// a stored zero value is distinct from an empty cell. Out-of-range indexes
// return an error wrapping ErrOutOfRange that names the method and the
// coordinates:
//
//	m, _ := matrix.New[string](2, 3)
//	_ = m.Set(1, 2, "x")
//	_, _, err := m.Get(2, 0) // Matrix.Get(2,0): index out of range
package matrix
