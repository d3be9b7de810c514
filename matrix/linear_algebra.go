// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling and the matrix-vector transform. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the factorizations.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Non-Dense operands are materialized once via asDense; the arithmetic
//     then runs on flat row-major slices in fixed loop orders.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opMatVec      = "MatVec"
	opFrobenius   = "FrobeniusNorm"
	opSolve       = "Solve"
	opDeterminant = "Determinant"
	opInverse     = "Inverse"
	opLU          = "LU"
	opQR          = "QR"
	opLeastSq     = "LeastSquares"
	opFitLine     = "FitLine"
	opEigen       = "Eigen"
	opSVD         = "SVD"
	opLowRank     = "LowRankApprox"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Materialize Dense operands.
//   - Stage 2: single flat loop 0..n-1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j with row-major strides and zero-skip on A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return mulDense(da, db), nil
}

// mulDense is the unchecked i→k→j product kernel.
func mulDense(da, db *Dense) *Dense {
	aRows, aCols, bCols := da.r, da.c, db.c
	res := &Dense{r: aRows, c: bCols, data: make([]float64, aRows*bCols), validateNaNInf: DefaultValidateNaNInf}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (*Dense, error) {
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return transposeDense(dm), nil
}

// transposeDense maps data[i*cols + j] → res.data[j*rows + i].
func transposeDense(dm *Dense) *Dense {
	rows, cols := dm.r, dm.c
	res := &Dense{r: cols, c: rows, data: make([]float64, rows*cols), validateNaNInf: dm.validateNaNInf}
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
//
// Notes:
//   - alpha = 0 yields an explicit zero matrix with the same shape.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := dm.clone()
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// MatVec computes y = M·x (the matrix-vector transform).
// MAIN DESCRIPTION:
//   - y_i = Σ_j M[i,j]·x_j; the result is a linear combination of M's columns.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m), ValidateVecLen(x, m.Cols()).
//   - Stage 2: row-wise dot products over the flat buffer.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape (empty x), ErrNaNInf, ErrDimensionMismatch (m.Cols != len(x)).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err = ValidateVecLen(x, dm.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	return matVecDense(dm, x), nil
}

// matVecDense is the unchecked y = M·x kernel.
func matVecDense(dm *Dense, x []float64) []float64 {
	y := make([]float64, dm.r)
	var i, j, base int
	var sum float64
	for i = 0; i < dm.r; i++ {
		base = i * dm.c
		sum = ZeroSum
		for j = 0; j < dm.c; j++ {
			sum += dm.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y
}

// FrobeniusNorm returns sqrt(Σ a_ij²) computed with scaled accumulation.
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	dm, err := asDense(m)
	if err != nil {
		return NormZero, matrixErrorf(opFrobenius, err)
	}

	return norm2(dm.data), nil
}

// normInf returns the maximum absolute row sum ‖A‖∞.
func (m *Dense) normInf() float64 {
	var best, s float64
	var i, j int
	for i = 0; i < m.r; i++ {
		s = NormZero
		for j = 0; j < m.c; j++ {
			s += math.Abs(m.data[i*m.c+j])
		}
		if s > best {
			best = s
		}
	}

	return best
}
