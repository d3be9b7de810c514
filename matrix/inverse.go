// SPDX-License-Identifier: MIT
// Package matrix: Gauss-Jordan inversion with partial pivoting.

package matrix

import "math"

// Inverse computes A⁻¹ by Gauss-Jordan elimination on the augmented [A | I].
// MAIN DESCRIPTION:
//   - Reduce the left half to I with partial pivoting; the right half becomes A⁻¹.
//
// Implementation:
//   - Stage 1: ValidateSquare(m). Build the n×2n augmented working buffer.
//   - Stage 2: for each column k: pick the largest |a_ik| among rows k..n-1,
//     fail with ErrSingular when it is within tol, swap, scale the pivot row
//     to 1 and eliminate column k from every other row.
//   - Stage 3: copy the right half into a fresh Dense.
//
// Behavior highlights:
//   - Same singularity threshold as LU/Solve: PivotScale·n·ε·max|a_ij|.
//   - Input m is read-only.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular, ErrNaNInf (overflowed result).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)

	n := src.r
	w := 2 * n
	aug := &Dense{r: n, c: w, data: make([]float64, n*w)}
	var i, j, k, p int
	for i = 0; i < n; i++ {
		copy(aug.data[i*w:i*w+n], src.data[i*n:(i+1)*n])
		aug.data[i*w+n+i] = 1
	}
	tol := o.pivotTolerance(n, src.maxAbs())

	var best, v, pivot, factor float64
	var rowK, rowI int
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(aug.data[k*w+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(aug.data[i*w+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
		if p != k {
			swapRows(aug, p, k)
		}

		// Normalize the pivot row.
		rowK = k * w
		pivot = aug.data[rowK+k]
		for j = k; j < w; j++ {
			aug.data[rowK+j] /= pivot
		}

		// Clear column k in every other row.
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			rowI = i * w
			factor = aug.data[rowI+k]
			if factor == 0 {
				continue
			}
			for j = k; j < w; j++ {
				aug.data[rowI+j] -= factor * aug.data[rowK+j]
			}
		}
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i = 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug.data[i*w+n:(i+1)*w])
	}
	if !inv.AllFinite() {
		return nil, matrixErrorf(opInverse, ErrNaNInf)
	}

	return inv, nil
}
