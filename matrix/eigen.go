// SPDX-License-Identifier: MIT
// Package matrix: real eigendecomposition of general square matrices.
//
// Purpose:
//   - Eigenvalues via Householder reduction to upper Hessenberg form followed
//     by the Francis double-shift QR iteration (A_{k+1} = R_k Q_k).
//   - Eigenvectors via inverse iteration on A − σI for every real eigenvalue.
//
// Policy:
//   - Eigenvalues with a non-negligible imaginary part are dropped together
//     with their conjugate, never approximated by their real part.
//   - Running out of QR budget is not fatal: eigenvalues deflated before the
//     cap are still returned and the decomposition reports Converged=false.
//
// Numeric policy:
//   - Deflation: |h_{k,k-1}| <= ε·(|h_{k-1,k-1}| + |h_{k,k}|).
//   - Complex test: imaginary part > ImagTol·max(1, |re|).
//   - Inverse iteration shift: λ + 1e-10·max(1, ‖A‖∞).

package matrix

import (
	"math"
	"sort"
)

const (
	// inverseShiftScale offsets σ from λ so that A − σI stays factorable.
	inverseShiftScale = 1e-10

	// exceptional shifts break cycles on matrices like rotations.
	exceptionalShiftFirst  = 10
	exceptionalShiftSecond = 20

	// startKeep is the share of a unit start vector that must survive
	// projection against the cluster basis.
	startKeep = 1e-3
)

// EigenDecomposition is the real part of a spectrum together with its
// eigenvectors.
type EigenDecomposition struct {
	// Pairs are ordered by ascending eigenvalue.
	Pairs []EigenPair

	// Dropped counts eigenvalues discarded for a non-negligible imaginary part.
	Dropped int

	// Converged is false when the shifted-QR budget ran out before every
	// eigenvalue deflated; Pairs then holds only the stabilized ones.
	Converged bool
}

// Err returns ErrNonConvergence (wrapped) when the QR iteration was cut short.
func (d *EigenDecomposition) Err() error {
	if d == nil || d.Converged {
		return nil
	}

	return matrixErrorf(opEigen, ErrNonConvergence)
}

// spectrum is the raw output of the Hessenberg QR iteration.
type spectrum struct {
	re, im    []float64
	known     []bool // eigenvalue i deflated before the budget ran out
	converged bool
}

// Eigen computes the real eigenpairs of a square matrix.
// MAIN DESCRIPTION:
//   - Reduce a working copy to Hessenberg form, run the double-shift QR
//     iteration, then recover a unit eigenvector per real eigenvalue.
//
// Implementation:
//   - Stage 1: ValidateSquare(m); clone into a working buffer.
//   - Stage 2: Householder similarity reduction to upper Hessenberg H.
//   - Stage 3: Francis QR with exceptional shifts at iterations 10 and 20,
//     capped at MaxQRIter·n steps per deflation window.
//   - Stage 4: inverse iteration per real eigenvalue; vectors of a cluster of
//     equal eigenvalues are kept orthogonal while that still yields a valid
//     eigenvector (defective matrices fall back to the plain iteration).
//
// Behavior highlights:
//   - Eigenvectors have unit 2-norm; their largest-magnitude component is positive.
//   - The input matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare. Non-convergence is reported via Converged.
//
// Complexity:
//   - Time O(n³) typical, Space O(n²).
func Eigen(m Matrix, opts ...Option) (*EigenDecomposition, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	o := gatherOptions(opts...)

	n := src.r
	h := src.clone()
	reduceHessenberg(h.data, n)
	sp := hqr(h.data, n, o)

	out := &EigenDecomposition{Converged: sp.converged}
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !sp.known[i] {
			continue
		}
		if sp.im[i] != 0 {
			out.Dropped++
			continue
		}
		values = append(values, sp.re[i])
	}
	sort.Float64s(values)

	iv := newInverseIterator(src, o)
	clusterTol := o.eps * iv.scale
	var cluster [][]float64
	for i, lambda := range values {
		if i == 0 || math.Abs(lambda-values[i-1]) > clusterTol {
			cluster = cluster[:0]
		}
		v := iv.vectorFor(lambda, cluster)
		if v == nil {
			continue
		}
		cluster = append(cluster, v)
		out.Pairs = append(out.Pairs, EigenPair{Value: lambda, Vector: v})
	}

	return out, nil
}

// reduceHessenberg overwrites the n×n row-major h with an orthogonally
// similar upper Hessenberg matrix (Householder reflections, EISPACK orthes).
func reduceHessenberg(h []float64, n int) {
	ort := make([]float64, n)
	high := n - 1
	var i, j, m int
	var scale, hh, g, f float64
	for m = 1; m <= high-1; m++ {
		scale = 0
		for i = m; i <= high; i++ {
			scale += math.Abs(h[i*n+m-1])
		}
		if scale == 0 {
			continue
		}

		hh = 0
		for i = high; i >= m; i-- {
			ort[i] = h[i*n+m-1] / scale
			hh += ort[i] * ort[i]
		}
		g = math.Sqrt(hh)
		if ort[m] > 0 {
			g = -g
		}
		hh -= ort[m] * g
		ort[m] -= g

		// H = (I − u·uᵀ/hh)·H·(I − u·uᵀ/hh)
		for j = m; j < n; j++ {
			f = 0
			for i = high; i >= m; i-- {
				f += ort[i] * h[i*n+j]
			}
			f /= hh
			for i = m; i <= high; i++ {
				h[i*n+j] -= f * ort[i]
			}
		}
		for i = 0; i <= high; i++ {
			f = 0
			for j = high; j >= m; j-- {
				f += ort[j] * h[i*n+j]
			}
			f /= hh
			for j = m; j <= high; j++ {
				h[i*n+j] -= f * ort[j]
			}
		}

		h[m*n+m-1] = scale * g
		for i = m + 1; i <= high; i++ {
			h[i*n+m-1] = 0
		}
	}
}

// hqr runs the Francis double-shift QR iteration on the nn×nn Hessenberg h
// (destroyed) and returns its eigenvalues.
func hqr(h []float64, nn int, o Options) spectrum {
	sp := spectrum{
		re:        make([]float64, nn),
		im:        make([]float64, nn),
		known:     make([]bool, nn),
		converged: true,
	}

	var norm float64
	var i, j int
	for i = 0; i < nn; i++ {
		for j = max(i-1, 0); j < nn; j++ {
			norm += math.Abs(h[i*nn+j])
		}
	}
	if norm == 0 {
		for i = range sp.known {
			sp.known[i] = true
		}

		return sp
	}

	const low = 0
	budget := o.qrIterPerEigen * nn
	n := nn - 1
	var (
		iter, l, m, k                      int
		p, q, r, s, w, x, y, z, exshift, t float64
		notlast                            bool
	)
	for n >= low {
		// Find the lowest negligible sub-diagonal element.
		for l = n; l > low; l-- {
			s = math.Abs(h[(l-1)*nn+l-1]) + math.Abs(h[l*nn+l])
			if s == 0 {
				s = norm
			}
			if math.Abs(h[l*nn+l-1]) <= MachineEpsilon*s {
				break
			}
		}

		switch {
		case l == n: // one root
			sp.re[n] = h[n*nn+n] + exshift
			sp.known[n] = true
			n--
			iter = 0

		case l == n-1: // a 2×2 block: real pair or complex conjugates
			w = h[n*nn+n-1] * h[(n-1)*nn+n]
			p = (h[(n-1)*nn+n-1] - h[n*nn+n]) / 2
			q = p*p + w
			z = math.Sqrt(math.Abs(q))
			x = h[n*nn+n] + exshift
			switch {
			case q >= 0:
				if p >= 0 {
					z = p + z
				} else {
					z = p - z
				}
				sp.re[n-1] = x + z
				sp.re[n] = sp.re[n-1]
				if z != 0 {
					sp.re[n] = x - w/z
				}
			case z <= o.imagTol*math.Max(1, math.Abs(x+p)):
				// Imaginary part is roundoff: a double real root.
				sp.re[n-1] = x + p
				sp.re[n] = x + p
			default:
				sp.re[n-1], sp.re[n] = x+p, x+p
				sp.im[n-1], sp.im[n] = z, -z
			}
			sp.known[n-1], sp.known[n] = true, true
			n -= 2
			iter = 0

		default:
			if iter >= budget {
				sp.converged = false

				return sp
			}

			x = h[n*nn+n]
			y = h[(n-1)*nn+n-1]
			w = h[n*nn+n-1] * h[(n-1)*nn+n]

			if iter == exceptionalShiftFirst {
				exshift += x
				for i = low; i <= n; i++ {
					h[i*nn+i] -= x
				}
				s = math.Abs(h[n*nn+n-1]) + math.Abs(h[(n-1)*nn+n-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			if iter == exceptionalShiftSecond {
				s = (y - x) / 2
				s = s*s + w
				if s > 0 {
					s = math.Sqrt(s)
					if y < x {
						s = -s
					}
					s = x - w/((y-x)/2+s)
					for i = low; i <= n; i++ {
						h[i*nn+i] -= s
					}
					exshift += s
					x, y, w = 0.964, 0.964, 0.964
				}
			}
			iter++

			// Look for two consecutive small sub-diagonal elements.
			for m = n - 2; m >= l; m-- {
				z = h[m*nn+m]
				r = x - z
				s = y - z
				p = (r*s-w)/h[(m+1)*nn+m] + h[m*nn+m+1]
				q = h[(m+1)*nn+m+1] - z - r - s
				r = h[(m+2)*nn+m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				t = math.Abs(p) * (math.Abs(h[(m-1)*nn+m-1]) + math.Abs(z) + math.Abs(h[(m+1)*nn+m+1]))
				if math.Abs(h[m*nn+m-1])*(math.Abs(q)+math.Abs(r)) < MachineEpsilon*t {
					break
				}
			}
			for i = m + 2; i <= n; i++ {
				h[i*nn+i-2] = 0
				if i > m+2 {
					h[i*nn+i-3] = 0
				}
			}

			// Double QR step on rows l..n, columns m..n.
			for k = m; k <= n-1; k++ {
				notlast = k != n-1
				if k != m {
					p = h[k*nn+k-1]
					q = h[(k+1)*nn+k-1]
					r = 0
					if notlast {
						r = h[(k+2)*nn+k-1]
					}
					x = math.Abs(p) + math.Abs(q) + math.Abs(r)
					if x == 0 {
						continue
					}
					p /= x
					q /= x
					r /= x
				}
				s = math.Sqrt(p*p + q*q + r*r)
				if p < 0 {
					s = -s
				}
				if s == 0 {
					continue
				}
				if k != m {
					h[k*nn+k-1] = -s * x
				} else if l != m {
					h[k*nn+k-1] = -h[k*nn+k-1]
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p

				// Row modification.
				for j = k; j < nn; j++ {
					p = h[k*nn+j] + q*h[(k+1)*nn+j]
					if notlast {
						p += r * h[(k+2)*nn+j]
						h[(k+2)*nn+j] -= p * z
					}
					h[k*nn+j] -= p * x
					h[(k+1)*nn+j] -= p * y
				}
				// Column modification.
				for i = 0; i <= min(n, k+3); i++ {
					p = x*h[i*nn+k] + y*h[i*nn+k+1]
					if notlast {
						p += z * h[i*nn+k+2]
						h[i*nn+k+2] -= p * r
					}
					h[i*nn+k] -= p
					h[i*nn+k+1] -= p * q
				}
			}
		}
	}

	return sp
}

// inverseIterator recovers eigenvectors of a fixed matrix.
type inverseIterator struct {
	a      *Dense
	n      int
	scale  float64 // max(1, ‖A‖∞)
	resTol float64 // accepted ‖Av − λv‖₂
	steps  int
}

func newInverseIterator(a *Dense, o Options) *inverseIterator {
	scale := math.Max(1, a.normInf())

	return &inverseIterator{
		a:      a,
		n:      a.r,
		scale:  scale,
		resTol: o.eps * scale * float64(a.r),
		steps:  o.invIterSteps,
	}
}

// vectorFor returns a unit eigenvector for lambda, orthogonal to cluster when
// possible. The candidate with the smallest residual wins if none reaches
// resTol. Returns nil only when every start vector collapsed to zero.
func (iv *inverseIterator) vectorFor(lambda float64, cluster [][]float64) []float64 {
	sigma := lambda + inverseShiftScale*iv.scale
	shifted := iv.a.clone()
	for i := 0; i < iv.n; i++ {
		shifted.data[i*iv.n+i] -= sigma
	}
	f, err := LU(shifted)
	if err != nil {
		return nil
	}
	floor := MachineEpsilon * iv.scale

	var best []float64
	bestRes := math.Inf(1)
	for pass := 0; pass < 2; pass++ {
		var against [][]float64
		if pass == 0 {
			against = cluster
		} else if len(cluster) == 0 {
			break // the first pass already ran unconstrained
		}
		for c := 0; c <= iv.n; c++ {
			v := iv.iterate(f, floor, startVector(iv.n, c), against)
			if v == nil {
				continue
			}
			res := iv.residual(lambda, v)
			if res < bestRes {
				best, bestRes = v, res
			}
			if bestRes <= iv.resTol {
				return best
			}
		}
	}

	return best
}

// iterate runs inverse iteration from start, projecting out against after
// every solve. Returns nil if the iterate vanishes.
func (iv *inverseIterator) iterate(f *LUFactors, floor float64, start []float64, against [][]float64) []float64 {
	v := start
	normalize(v)
	orthogonalize(v, against)
	if normalize(v) < startKeep {
		return nil // start lies (almost) inside span(against)
	}
	for step := 0; step < iv.steps; step++ {
		x := f.solveClamped(v, floor)
		orthogonalize(x, against)
		if normalize(x) == 0 || !finiteSlice(x) {
			return nil
		}
		done := 1-math.Abs(dot(x, v)) <= MachineEpsilon*float64(iv.n)
		v = x
		if done {
			break
		}
	}
	orientVector(v)

	return v
}

// residual returns ‖Av − λv‖₂.
func (iv *inverseIterator) residual(lambda float64, v []float64) float64 {
	av := matVecDense(iv.a, v)
	for i := range av {
		av[i] -= lambda * v[i]
	}

	return norm2(av)
}

// startVector returns the c-th deterministic start: c == 0 is a graded
// vector (1, 1/2, 1/3, …) that is rarely orthogonal to an eigenvector; c > 0
// is the unit vector e_{c-1}.
func startVector(n, c int) []float64 {
	v := make([]float64, n)
	if c == 0 {
		for i := range v {
			v[i] = 1 / float64(i+1)
		}

		return v
	}
	v[c-1] = 1

	return v
}

// orthogonalize removes from x its components along the orthonormal basis
// (modified Gram-Schmidt).
func orthogonalize(x []float64, basis [][]float64) {
	for _, b := range basis {
		d := dot(x, b)
		for i := range x {
			x[i] -= d * b[i]
		}
	}
}

// orientVector flips v so that its largest-magnitude component is positive.
func orientVector(v []float64) {
	k := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[k]) {
			k = i
		}
	}
	if v[k] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	for i := range v {
		if v[i] == 0 {
			v[i] = 0 // drop -0
		}
	}
}
