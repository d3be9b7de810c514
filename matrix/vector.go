// SPDX-License-Identifier: MIT
// Package matrix: elementary vector kernels.
//
// Purpose:
//   - Componentwise sum, dot product, Euclidean norm and cosine similarity.
//   - Shared by the solve/eigen/SVD kernels for their vector arithmetic.
//
// Notes:
//   - Every public kernel validates shape first and returns freshly allocated
//     slices; inputs are never mutated.

package matrix

import "math"

// Operation tags for vector kernels.
const (
	opVecAdd = "VecAdd"
	opDot    = "Dot"
	opNorm   = "Norm"
	opCosine = "CosineSimilarity"
)

// VecAdd returns the componentwise sum a + b.
//
// Errors:
//   - ErrBadShape (empty), ErrNaNInf, ErrDimensionMismatch (len(a) != len(b)).
//
// Complexity: O(n).
func VecAdd(a, b []float64) ([]float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return nil, matrixErrorf(opVecAdd, err)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return out, nil
}

// Dot returns Σ a_i·b_i.
//
// Errors:
//   - ErrBadShape, ErrNaNInf, ErrDimensionMismatch.
//
// Complexity: O(n).
func Dot(a, b []float64) (float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return 0, matrixErrorf(opDot, err)
	}

	return dot(a, b), nil
}

// Norm returns the Euclidean length ‖x‖₂.
// Scaled accumulation avoids overflow for large components.
// Complexity: O(n).
func Norm(x []float64) (float64, error) {
	if err := ValidateVector(x); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}

	return norm2(x), nil
}

// CosineSimilarity returns a·b / (‖a‖‖b‖).
//
// Behavior highlights:
//   - Returns exactly 0 (not an error) when either norm is exactly zero.
//   - The ratio is clamped to [-1, 1] against roundoff.
//
// Errors:
//   - ErrBadShape, ErrNaNInf, ErrDimensionMismatch.
//
// Complexity: O(n).
func CosineSimilarity(a, b []float64) (float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return 0, matrixErrorf(opCosine, err)
	}
	na, nb := norm2(a), norm2(b)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	c := dot(a, b) / (na * nb)

	return math.Max(-1, math.Min(1, c)), nil
}

// dot is the unchecked inner product; callers guarantee len(a) == len(b).
func dot(a, b []float64) float64 {
	s := ZeroSum
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

// norm2 is the unchecked, overflow-safe Euclidean norm (LAPACK dnrm2 scheme).
func norm2(x []float64) float64 {
	scale, ssq := 0.0, 1.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		a := math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}

	return scale * math.Sqrt(ssq)
}

// normalize scales x to unit length in place and returns the previous norm.
// A zero vector is left untouched.
func normalize(x []float64) float64 {
	n := norm2(x)
	if n == 0 {
		return 0
	}
	for i := range x {
		x[i] /= n
	}

	return n
}

// finiteSlice reports whether every entry of x is finite.
func finiteSlice(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
