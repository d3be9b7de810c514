// SPDX-License-Identifier: MIT
// Package matrix: singular value decomposition (one-sided Jacobi) and
// rank-k reconstruction.
//
// Purpose:
//   - SVD factors A = U·Σ·Vᵀ with singular values in descending order.
//   - LowRankApprox keeps the k largest singular triplets and rebuilds
//     A_k = U_k·Σ_k·V_kᵀ, the best rank-k approximation in Frobenius norm.
//
// Implementation notes:
//   - Hestenes one-sided Jacobi: plane rotations orthogonalize the columns
//     of a working copy of A (of Aᵀ when A is wide); column norms become the
//     singular values. Simple, accurate for small dense inputs and free of
//     bidiagonalization bookkeeping.
//   - A pair (p,q) is rotated while |⟨a_p,a_q⟩| > n·ε·‖a_p‖‖a_q‖ and the
//     rotation angle is above roundoff.
//   - The sweeps run on A scaled to max|a_ij| = 1, so column inner products
//     neither overflow nor underflow for any finite input; σ is rescaled.
//   - At most SVDMaxSweeps sweeps; the factors are still returned when the
//     cap is hit, with Converged=false.

package matrix

import (
	"math"
	"sort"
)

// SVDFactors is a thin decomposition A = U·diag(Sigma)·Vᵀ with
// r = min(rows, cols) singular triplets.
type SVDFactors struct {
	U         *Dense    // rows×r, orthonormal columns (for σ > 0)
	Sigma     []float64 // length r, descending, non-negative
	V         *Dense    // cols×r, orthonormal columns
	Converged bool      // false when the sweep cap was reached
	Sweeps    int       // sweeps performed
}

// Rank returns the number of singular values above the pivot-style threshold
// PivotScale·max(rows,cols)·ε·σ_max.
func (f *SVDFactors) Rank(opts ...Option) int {
	if len(f.Sigma) == 0 || f.Sigma[0] == 0 {
		return 0
	}
	o := gatherOptions(opts...)
	tol := o.pivotTolerance(max(f.U.r, f.V.r), f.Sigma[0])
	r := 0
	for _, s := range f.Sigma {
		if s > tol {
			r++
		}
	}

	return r
}

// Reconstruct returns Σ_{i<k} σ_i·u_i·v_iᵀ with the original shape.
//
// Errors:
//   - ErrInvalidRank if k < 1 or k > len(Sigma).
//
// Complexity: O(rows·cols·k).
func (f *SVDFactors) Reconstruct(k int) (*Dense, error) {
	if k < 1 || k > len(f.Sigma) {
		return nil, matrixErrorf(opLowRank, ErrInvalidRank)
	}
	rows, cols, r := f.U.r, f.V.r, len(f.Sigma)
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opLowRank, err)
	}
	var i, j, t, base int
	var us float64
	for t = 0; t < k; t++ {
		if f.Sigma[t] == 0 {
			continue
		}
		for i = 0; i < rows; i++ {
			us = f.U.data[i*r+t] * f.Sigma[t]
			if us == 0 {
				continue
			}
			base = i * cols
			for j = 0; j < cols; j++ {
				out.data[base+j] += us * f.V.data[j*r+t]
			}
		}
	}
	if !out.AllFinite() {
		return nil, matrixErrorf(opLowRank, ErrNaNInf)
	}

	return out, nil
}

// SVD computes the thin singular value decomposition of any rows×cols matrix.
// MAIN DESCRIPTION:
//   - One-sided Jacobi on the taller orientation; singular values sorted
//     descending with U and V columns permuted alongside.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (a singular value beyond MaxFloat64).
//
// Complexity:
//   - Time O(sweeps·min(m,n)²·max(m,n)), Space O(m·n).
func SVD(m Matrix, opts ...Option) (*SVDFactors, error) {
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	o := gatherOptions(opts...)

	wide := a.r < a.c
	work := a
	if wide {
		work = transposeDense(a)
	}
	// Column dot products overflow near 1e154 and underflow near 1e-162;
	// sweep on A/max|a_ij| and scale σ back.
	scale := work.maxAbs()
	if scale != 0 && scale != 1 {
		if work == a {
			work = a.clone()
		}
		for i := range work.data {
			work.data[i] /= scale
		}
	}
	u, sigma, v, sweeps, converged := jacobiSVD(work, o.svdMaxSweeps)
	if scale != 0 {
		for i := range sigma {
			sigma[i] *= scale
		}
	}
	if wide {
		u, v = v, u
	}
	f := &SVDFactors{U: u, Sigma: sigma, V: v, Converged: converged, Sweeps: sweeps}
	if !u.AllFinite() || !v.AllFinite() || !finiteSlice(sigma) {
		return nil, matrixErrorf(opSVD, ErrNaNInf)
	}

	return f, nil
}

// jacobiSVD factors a tall (m ≥ n) matrix. Columns are held as separate
// slices so each rotation touches two contiguous vectors.
func jacobiSVD(a *Dense, maxSweeps int) (u *Dense, sigma []float64, v *Dense, sweeps int, converged bool) {
	m, n := a.r, a.c
	cols := make([][]float64, n)
	vcols := make([][]float64, n)
	var i, j, p, q int
	for j = 0; j < n; j++ {
		cols[j] = make([]float64, m)
		for i = 0; i < m; i++ {
			cols[j][i] = a.data[i*n+j]
		}
		vcols[j] = make([]float64, n)
		vcols[j][j] = 1
	}

	thresh := float64(n) * MachineEpsilon
	var alpha, beta, gamma, zeta, t, c, s float64
	var rotated bool
	for sweeps = 0; sweeps < maxSweeps; {
		rotated = false
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				alpha = dot(cols[p], cols[p])
				beta = dot(cols[q], cols[q])
				gamma = dot(cols[p], cols[q])
				if alpha == 0 || beta == 0 || math.Abs(gamma) <= thresh*math.Sqrt(alpha)*math.Sqrt(beta) {
					continue
				}
				zeta = (beta - alpha) / (2 * gamma)
				t = 1 / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				if zeta < 0 {
					t = -t
				}
				if math.Abs(t) <= MachineEpsilon {
					continue // rotation below roundoff would leave the columns unchanged
				}
				rotated = true
				c = 1 / math.Sqrt(1+t*t)
				s = c * t
				rotate(cols[p], cols[q], c, s)
				rotate(vcols[p], vcols[q], c, s)
			}
		}
		sweeps++
		if !rotated {
			converged = true
			break
		}
	}

	// Column norms are the singular values; sort descending (stable on ties).
	sigma = make([]float64, n)
	order := make([]int, n)
	for j = 0; j < n; j++ {
		sigma[j] = norm2(cols[j])
		order[j] = j
	}
	sort.SliceStable(order, func(x, y int) bool { return sigma[order[x]] > sigma[order[y]] })

	u = &Dense{r: m, c: n, data: make([]float64, m*n), validateNaNInf: DefaultValidateNaNInf}
	v = &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: DefaultValidateNaNInf}
	sorted := make([]float64, n)
	var src int
	for j = 0; j < n; j++ {
		src = order[j]
		sorted[j] = sigma[src]
		for i = 0; i < m; i++ {
			if sorted[j] > 0 {
				u.data[i*n+j] = cols[src][i] / sorted[j]
			}
		}
		for i = 0; i < n; i++ {
			v.data[i*n+j] = vcols[src][i]
		}
	}

	return u, sorted, v, sweeps, converged
}

// rotate applies the plane rotation [c s; −s c] to the column pair (x, y):
// x ← c·x − s·y, y ← s·x + c·y.
func rotate(x, y []float64, c, s float64) {
	var xi, yi float64
	for i := range x {
		xi, yi = x[i], y[i]
		x[i] = c*xi - s*yi
		y[i] = s*xi + c*yi
	}
}

// LowRankApprox returns the rank-k reconstruction of m and the factors it
// was built from.
// MAIN DESCRIPTION:
//   - Valid for every 1 ≤ k ≤ min(rows, cols); k = min(rows, cols)
//     reproduces m up to roundoff, k = 1 is the strongest compression.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidRank, ErrNaNInf.
//
// Complexity:
//   - Dominated by SVD.
func LowRankApprox(m Matrix, k int, opts ...Option) (*Dense, *SVDFactors, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLowRank, err)
	}
	if k < 1 || k > min(m.Rows(), m.Cols()) {
		return nil, nil, matrixErrorf(opLowRank, ErrInvalidRank)
	}
	f, err := SVD(m, opts...)
	if err != nil {
		return nil, nil, matrixErrorf(opLowRank, err)
	}
	approx, err := f.Reconstruct(k)
	if err != nil {
		return nil, nil, err
	}

	return approx, f, nil
}
