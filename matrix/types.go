// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense kernels.
// This file intentionally contains ONLY domain-facing types. Errors and
// options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Kernels accept any Matrix and materialize a *Dense working copy when the
// concrete type differs, so custom layouts stay usable without fast-paths.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// Point is a 2-D sample (X, Y) used by line fitting.
type Point struct {
	X float64 // abscissa
	Y float64 // ordinate
}

// EigenPair couples a real eigenvalue with its unit-length eigenvector.
// Only eigenvalues with a numerically zero imaginary part are ever emitted.
type EigenPair struct {
	Value  float64   // real eigenvalue λ
	Vector []float64 // unit 2-norm eigenvector, largest-magnitude component positive
}

// Line is a best-fit line y = Slope*x + Intercept.
type Line struct {
	Slope     float64 // m
	Intercept float64 // c
}
