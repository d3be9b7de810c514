// SPDX-License-Identifier: MIT
// Package matrix: LU factorization with partial pivoting (PA = LU).
//
// Purpose:
//   - One elimination routine shared by Solve and Determinant so that both
//     observe the same pivot sequence and the same singularity test.
//
// Numeric policy:
//   - tol = PivotScale · n · ε · max|a_ij|. A best pivot with |p| <= tol marks
//     the factorization singular; Solve then refuses with ErrSingular while
//     Determinant still reports the (near-)zero pivot product.

package matrix

import "math"

// LUFactors holds a packed partial-pivot factorization PA = LU.
// L is unit lower triangular (stored strictly below the diagonal),
// U is upper triangular (stored on and above the diagonal).
type LUFactors struct {
	lu       *Dense  // packed L\U
	piv      []int   // piv[i] = original row index placed at position i
	sign     float64 // (-1)^(row swaps)
	singular bool    // some best pivot fell below tol
	tol      float64 // pivot threshold used
}

// LU factorizes a square matrix with partial pivoting.
// MAIN DESCRIPTION:
//   - Gaussian elimination selecting, per column, the remaining row with the
//     largest |a_ik|, swapping it into place and eliminating below.
//
// Implementation:
//   - Stage 1: ValidateSquare(m); copy into a working Dense.
//   - Stage 2: for k=0..n-1: argmax pivot → swap (sign flip) → eliminate.
//   - Stage 3: an exactly-zero pivot column is skipped (nothing to eliminate);
//     a pivot within tol marks the factors singular but elimination proceeds.
//
// Behavior highlights:
//   - Never returns an error for singular input: callers decide (see Solve).
//   - Input m is read-only.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Determinism:
//   - Ties in |a_ik| resolve to the lowest row index.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	a := src.clone()
	n := a.r
	f := &LUFactors{
		lu:   a,
		piv:  make([]int, n),
		sign: 1,
		tol:  o.pivotTolerance(n, a.maxAbs()),
	}
	for i := range f.piv {
		f.piv[i] = i
	}

	var (
		i, j, k, p int
		best, v    float64
		l, pivot   float64
		rowK, rowI int
	)
	for k = 0; k < n; k++ {
		// Pivot search on column k among rows k..n-1.
		p, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= f.tol {
			f.singular = true
		}
		if best == 0 {
			continue // column already zero below the diagonal
		}
		if p != k {
			swapRows(a, p, k)
			f.piv[p], f.piv[k] = f.piv[k], f.piv[p]
			f.sign = -f.sign
		}

		// Eliminate below the pivot.
		rowK = k * n
		pivot = a.data[rowK+k]
		for i = k + 1; i < n; i++ {
			rowI = i * n
			l = a.data[rowI+k] / pivot
			a.data[rowI+k] = l
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a.data[rowI+j] -= l * a.data[rowK+j]
			}
		}
	}

	return f, nil
}

// swapRows exchanges rows p and k of a in place.
func swapRows(a *Dense, p, k int) {
	c := a.c
	rp, rk := a.data[p*c:(p+1)*c], a.data[k*c:(k+1)*c]
	for j := 0; j < c; j++ {
		rp[j], rk[j] = rk[j], rp[j]
	}
}

// Singular reports whether a pivot fell within the singularity tolerance.
func (f *LUFactors) Singular() bool { return f.singular }

// Det returns sign · Π u_ii.
// Complexity: O(n).
func (f *LUFactors) Det() float64 {
	n := f.lu.r
	det := f.sign
	for i := 0; i < n; i++ {
		det *= f.lu.data[i*n+i]
	}

	return det
}

// Solve returns x with Ax = b using the stored factors.
//
// Errors:
//   - ErrSingular when the factorization is singular.
//   - ErrBadShape, ErrNaNInf, ErrDimensionMismatch for b.
//
// Complexity: O(n²).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	n := f.lu.r
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if f.singular {
		return nil, matrixErrorf(opSolve, ErrSingular)
	}

	x := make([]float64, n)
	var i, j int
	var sum float64
	// Forward: L y = P b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		for j = 0; j < i; j++ {
			sum -= f.lu.data[i*n+j] * x[j]
		}
		x[i] = sum
	}
	// Backward: U x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= f.lu.data[i*n+j] * x[j]
		}
		x[i] = sum / f.lu.data[i*n+i]
	}
	if !finiteSlice(x) {
		return nil, matrixErrorf(opSolve, ErrNaNInf)
	}

	return x, nil
}

// Solve solves the square system Ax = b by Gaussian elimination with
// partial pivoting.
// MAIN DESCRIPTION:
//   - Unique solution or ErrSingular; NaN/Inf are never propagated.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (A not square), ErrDimensionMismatch (len(b) != n),
//     ErrSingular (pivot within tolerance), ErrNaNInf.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Solve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	f, err := LU(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return f.Solve(b)
}

// Determinant returns det(A) as the signed product of the LU pivots.
// MAIN DESCRIPTION:
//   - A zero or near-zero determinant is a valid result, never an error.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Determinant(a Matrix, opts ...Option) (float64, error) {
	f, err := LU(a, opts...)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	det := f.Det()
	if det == 0 {
		det = 0 // normalize -0
	}

	return det, nil
}

// solveClamped solves LUx = Pb with every pivot clamped to at least floor in
// magnitude. Inverse iteration factors A − σI with σ next to an eigenvalue,
// so an exactly singular U is expected there and must not abort the solve.
func (f *LUFactors) solveClamped(b []float64, floor float64) []float64 {
	n := f.lu.r
	x := make([]float64, n)
	var i, j int
	var sum, piv float64
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		for j = 0; j < i; j++ {
			sum -= f.lu.data[i*n+j] * x[j]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= f.lu.data[i*n+j] * x[j]
		}
		piv = f.lu.data[i*n+i]
		if math.Abs(piv) < floor {
			piv = math.Copysign(floor, piv)
		}
		x[i] = sum / piv
	}

	return x
}
