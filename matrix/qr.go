// SPDX-License-Identifier: MIT
// Package matrix: Householder QR for tall (m ≥ n) matrices and the
// least-squares solves built on it.
//
// Purpose:
//   - QR returns thin factors Q (m×n, orthonormal columns) and R (n×n, upper).
//   - LeastSquares minimizes ‖Ax − b‖₂ through R x = Qᵀb, avoiding the squared
//     condition number of the normal equations.
//   - FitLine specializes LeastSquares to y = m·x + c over 2-D points.

package matrix

import "math"

// householder is a packed sequence of reflectors H_k = I − beta_k v_k v_kᵀ
// together with the resulting upper-triangular R stored in r.
type householder struct {
	m, n int
	r    *Dense      // m×n working copy; R lives in the upper n×n block
	v    [][]float64 // v[k] has length m-k
	beta []float64   // 0 when column k was already zero
}

// factorHouseholder reduces a (m ≥ n) column by column.
// Complexity: O(m·n²).
func factorHouseholder(a *Dense) *householder {
	m, n := a.r, a.c
	h := &householder{m: m, n: n, r: a.clone(), v: make([][]float64, n), beta: make([]float64, n)}
	d := h.r.data

	var i, j, k int
	var normx, alpha, vv, s, f float64
	for k = 0; k < n; k++ {
		v := make([]float64, m-k)
		for i = k; i < m; i++ {
			v[i-k] = d[i*n+k]
		}
		normx = norm2(v)
		h.v[k] = v
		if normx == 0 {
			continue // nothing to annihilate; beta stays 0
		}
		alpha = -math.Copysign(normx, v[0])
		v[0] -= alpha
		vv = dot(v, v)
		h.beta[k] = 2 / vv

		// Column k becomes (alpha, 0, ..., 0).
		d[k*n+k] = alpha
		for i = k + 1; i < m; i++ {
			d[i*n+k] = 0
		}
		// Reflect the trailing columns.
		for j = k + 1; j < n; j++ {
			s = ZeroSum
			for i = k; i < m; i++ {
				s += v[i-k] * d[i*n+j]
			}
			f = h.beta[k] * s
			for i = k; i < m; i++ {
				d[i*n+j] -= f * v[i-k]
			}
		}
	}

	return h
}

// applyQT overwrites b with Qᵀb (H_{n-1}…H_0 b).
func (h *householder) applyQT(b []float64) {
	var i, k int
	var s, f float64
	for k = 0; k < h.n; k++ {
		if h.beta[k] == 0 {
			continue
		}
		v := h.v[k]
		s = ZeroSum
		for i = k; i < h.m; i++ {
			s += v[i-k] * b[i]
		}
		f = h.beta[k] * s
		for i = k; i < h.m; i++ {
			b[i] -= f * v[i-k]
		}
	}
}

// thinQ forms Q(:, 0:n) = H_0…H_{n-1} [I_n; 0].
func (h *householder) thinQ() *Dense {
	m, n := h.m, h.n
	q := &Dense{r: m, c: n, data: make([]float64, m*n), validateNaNInf: DefaultValidateNaNInf}
	for j := 0; j < n; j++ {
		q.data[j*n+j] = 1
	}
	var i, j, k int
	var s, f float64
	for k = n - 1; k >= 0; k-- {
		if h.beta[k] == 0 {
			continue
		}
		v := h.v[k]
		for j = 0; j < n; j++ {
			s = ZeroSum
			for i = k; i < m; i++ {
				s += v[i-k] * q.data[i*n+j]
			}
			f = h.beta[k] * s
			for i = k; i < m; i++ {
				q.data[i*n+j] -= f * v[i-k]
			}
		}
	}

	return q
}

// upperR extracts the n×n upper-triangular R.
func (h *householder) upperR() *Dense {
	n := h.n
	r := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < n; i++ {
		copy(r.data[i*n+i:(i+1)*n], h.r.data[i*n+i:(i+1)*n])
	}

	return r
}

// QR computes the thin decomposition A = Q·R for an m×n matrix with m ≥ n.
// MAIN DESCRIPTION:
//   - Householder reflections; Q has orthonormal columns, R is upper triangular.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (m < n).
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
func QR(m Matrix) (q *Dense, r *Dense, err error) {
	a, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	if a.r < a.c {
		return nil, nil, matrixErrorf(opQR, ErrDimensionMismatch)
	}
	h := factorHouseholder(a)

	return h.thinQ(), h.upperR(), nil
}

// LeastSquares returns x minimizing ‖Ax − b‖₂ for a tall full-column-rank A.
// MAIN DESCRIPTION:
//   - Householder QR, then back substitution on R x = (Qᵀb)[0:n].
//
// Implementation:
//   - Stage 1: validate shapes (m ≥ n, len(b) == m).
//   - Stage 2: factor; rank test |r_kk| <= PivotScale·max(m,n)·ε·max|r_ij|.
//   - Stage 3: apply Qᵀ to b and back-substitute.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrBadShape, ErrNaNInf,
//     ErrSingular (rank-deficient columns).
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
func LeastSquares(m Matrix, b []float64, opts ...Option) ([]float64, error) {
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLeastSq, err)
	}
	if a.r < a.c {
		return nil, matrixErrorf(opLeastSq, ErrDimensionMismatch)
	}
	if err = ValidateVecLen(b, a.r); err != nil {
		return nil, matrixErrorf(opLeastSq, err)
	}
	o := gatherOptions(opts...)

	h := factorHouseholder(a)
	n := a.c
	rd := h.r.data
	var maxR float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			maxR = math.Max(maxR, math.Abs(rd[i*n+j]))
		}
	}
	tol := o.pivotTolerance(max(a.r, a.c), maxR)
	for i = 0; i < n; i++ {
		if math.Abs(rd[i*n+i]) <= tol {
			return nil, matrixErrorf(opLeastSq, ErrSingular)
		}
	}

	qtb := make([]float64, len(b))
	copy(qtb, b)
	h.applyQT(qtb)

	x := make([]float64, n)
	var sum float64
	for i = n - 1; i >= 0; i-- {
		sum = qtb[i]
		for j = i + 1; j < n; j++ {
			sum -= rd[i*n+j] * x[j]
		}
		x[i] = sum / rd[i*n+i]
	}
	if !finiteSlice(x) {
		return nil, matrixErrorf(opLeastSq, ErrNaNInf)
	}

	return x, nil
}

// FitLine returns the least-squares line y = m·x + c through points.
// MAIN DESCRIPTION:
//   - Design matrix A = [X | 1], target Y; solved via LeastSquares.
//
// Errors:
//   - ErrInsufficientData (fewer than 2 points), ErrNaNInf,
//     ErrSingular (all x identical: vertical scatter).
//
// Complexity:
//   - Time O(n), Space O(n).
func FitLine(points []Point, opts ...Option) (Line, error) {
	if len(points) < 2 {
		return Line{}, matrixErrorf(opFitLine, ErrInsufficientData)
	}
	n := len(points)
	a := &Dense{r: n, c: 2, data: make([]float64, 2*n), validateNaNInf: DefaultValidateNaNInf}
	y := make([]float64, n)
	for i, p := range points {
		if !finiteSlice([]float64{p.X, p.Y}) {
			return Line{}, matrixErrorf(opFitLine, ErrNaNInf)
		}
		a.data[2*i] = p.X
		a.data[2*i+1] = 1
		y[i] = p.Y
	}

	x, err := LeastSquares(a, y, opts...)
	if err != nil {
		return Line{}, matrixErrorf(opFitLine, err)
	}

	return Line{Slope: x[0], Intercept: x[1]}, nil
}
