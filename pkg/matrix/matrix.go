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

package matrix

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrInvalidDimensions is returned by New for non-positive sizes.
	ErrInvalidDimensions = errors.New("matrix dimensions must be positive")

	// ErrOutOfRange is returned for a row or column outside the matrix.
	ErrOutOfRange = errors.New("index out of range")
)

const (
	ctxGet       = "Get"
	ctxSet       = "Set"
	ctxIsPresent = "IsPresent"
	ctxClear     = "Clear"
)

func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

type cell[T any] struct {
	value   T
	present bool
}

// Matrix is a rows×cols grid of optional values stored row-major.
// It is not safe for concurrent mutation.
type Matrix[T any] struct {
	rows, cols int
	cells      []cell[T]
}

// New creates an empty rows×cols matrix.
func New[T any](rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix.New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Matrix[T]{
		rows:  rows,
		cols:  cols,
		cells: make([]cell[T], rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

func (m *Matrix[T]) index(method string, row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, matrixErrorf(method, row, col, ErrOutOfRange)
	}
	return row*m.cols + col, nil
}

// Set stores v at (row, col), replacing any previous value.
func (m *Matrix[T]) Set(row, col int, v T) error {
	i, err := m.index(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.cells[i] = cell[T]{value: v, present: true}
	return nil
}

// Get returns the value at (row, col) and whether the cell holds one.
// An empty cell yields the zero value and false.
func (m *Matrix[T]) Get(row, col int) (T, bool, error) {
	i, err := m.index(ctxGet, row, col)
	if err != nil {
		var zero T
		return zero, false, err
	}
	c := m.cells[i]
	return c.value, c.present, nil
}

// IsPresent reports whether (row, col) holds a value.
func (m *Matrix[T]) IsPresent(row, col int) (bool, error) {
	i, err := m.index(ctxIsPresent, row, col)
	if err != nil {
		return false, err
	}
	return m.cells[i].present, nil
}

// Clear empties (row, col).
func (m *Matrix[T]) Clear(row, col int) error {
	i, err := m.index(ctxClear, row, col)
	if err != nil {
		return err
	}
	m.cells[i] = cell[T]{}
	return nil
}

// Cell is a populated matrix position.
type Cell[T any] struct {
	Row, Col int
	Value    T
}

// All iterates over populated cells in row-major order.
func (m *Matrix[T]) All() iter.Seq[Cell[T]] {
	return func(yield func(Cell[T]) bool) {
		for i, c := range m.cells {
			if !c.present {
				continue
			}
			if !yield(Cell[T]{Row: i / m.cols, Col: i % m.cols, Value: c.value}) {
				return
			}
		}
	}
}
