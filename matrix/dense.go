// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Convert between caller-facing [][]float64 grids and Dense in one place.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); NewFromRows/ToRows: O(r*c).

package matrix

import (
	"fmt"
	"math"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"          // method tag used in error wrappers
	ctxSet      = "Set"         // method tag used in error wrappers
	ctxFromRows = "NewFromRows" // ctor tag for NewFromRows
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface conformance.
var (
	_ Matrix = (*Dense)(nil) // *Dense implements our public Matrix interface
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and default numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate a contiguous flat buffer; make() zero-fills it deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewFromRows ingests a caller-supplied grid into a fresh Dense.
// MAIN DESCRIPTION:
//   - The single ingestion point for request matrices (seq<seq<f64>>).
//
// Implementation:
//   - Stage 1: reject empty grid, empty first row and ragged rows (ErrBadShape).
//   - Stage 2: copy values row by row, rejecting NaN/±Inf (ErrNaNInf).
//
// Behavior highlights:
//   - The input slices are never retained; mutations to rows after the call
//     do not affect the result.
//
// Errors:
//   - ErrBadShape, ErrNaNInf (wrapped with coordinates).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	d, err := NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, err)
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d: %w", ctxFromRows, i, len(rows[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			v = rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
			}
			d.data[i*c+j] = v
		}
	}

	return d, nil
}

// Identity returns the n×n identity matrix.
// Complexity: O(n²).
func Identity(n int) (*Dense, error) {
	d, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}

	return d, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// MAIN DESCRIPTION:
//   - Safe element read at coordinates.
//
// Behavior highlights:
//   - Never panics on out-of-range; returns sentinel error.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	// Numeric policy: optional finite-only enforcement.
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix { return m.clone() }

// clone is the typed variant used by kernels that need *Dense back.
func (m *Dense) clone() *Dense {
	cp := make([]float64, len(m.data)) // allocate same length
	copy(cp, m.data)                   // deep copy

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// ToRows exports the matrix as a freshly allocated [][]float64 grid.
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// AllFinite reports whether every element is finite.
// Complexity: O(r*c).
func (m *Dense) AllFinite() bool {
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// maxAbs returns max|a_ij| (0 for an all-zero matrix).
func (m *Dense) maxAbs() float64 {
	var best float64
	for _, v := range m.data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// asDense returns m itself when it is a *Dense, otherwise a materialized copy.
// Kernels never mutate the returned value without cloning first.
func asDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}
