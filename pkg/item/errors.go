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

package item

import "errors"

var (
	// ErrFrozen is returned when a table is written after Freeze.
	ErrFrozen = errors.New("table is frozen")

	// ErrInvalidStack is returned for stacks with an empty name, a negative
	// metadata value or an unacceptable quantity.
	ErrInvalidStack = errors.New("invalid item stack")

	// ErrSyntax is returned when a stack's text form cannot be parsed.
	ErrSyntax = errors.New("invalid item syntax")
)
