// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with fmt.Errorf("Op: %w", ErrX);
// callers still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> NaN/Inf input -> dimension mismatch -> numeric (singular,
// rank, convergence).

var (
	// ErrBadShape is returned when a shape is invalid: empty input or ragged rows.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., vector lengths differ, or MatVec where m.Cols != len(x).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	// It wraps ErrDimensionMismatch so callers matching the broader class still succeed.
	ErrNonSquare = fmt.Errorf("matrix: matrix is not square: %w", ErrDimensionMismatch)

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, results).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when the best available pivot falls below the
	// numeric tolerance during solve, inversion or least squares.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInsufficientData indicates a fit was requested with fewer than 2 points.
	ErrInsufficientData = errors.New("matrix: insufficient data")

	// ErrInvalidRank indicates a truncation rank k outside [1, min(rows, cols)].
	ErrInvalidRank = errors.New("matrix: invalid rank")

	// ErrNonConvergence marks an iteration cap hit in the eigen or SVD solver.
	// Eigen reports it alongside a partial result; it is never fatal there.
	ErrNonConvergence = errors.New("matrix: iteration did not converge")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)
