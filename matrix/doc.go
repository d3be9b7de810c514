// Package matrix is the numerical core of linstory: dense row-major storage
// plus the linear-algebra kernels behind every engine operation.
//
// 🚀 What is inside?
//
//   - Dense: row-major float64 storage with safe At/Set and grid ingestion
//     (NewFromRows / ToRows).
//   - Elementary kernels: VecAdd, MatVec, Dot, Norm, CosineSimilarity,
//     Add, Sub, Mul, Transpose, Scale, FrobeniusNorm.
//   - Elimination: LU with partial pivoting (Solve, Determinant) and
//     Gauss-Jordan Inverse, sharing one relative singularity threshold.
//   - Orthogonal factorizations: Householder QR, LeastSquares, FitLine.
//   - Spectra: Eigen (Hessenberg + Francis double-shift QR + inverse
//     iteration, real eigenvalues only) and SVD (one-sided Jacobi) with
//     LowRankApprox.
//
// ✨ Guarantees:
//
//   - Pure functions: no package state, inputs never mutated, safe for
//     concurrent use without locks.
//   - Errors are sentinels (ErrDimensionMismatch, ErrSingular, …) wrapped
//     with an operation tag; match them with errors.Is.
//   - NaN/±Inf never leak out of a successful call.
//   - Every iterative kernel is bounded (MaxQRIter, InverseIterSteps,
//     SVDMaxSweeps).
//
// ⚙️ Usage:
//
//	a, _ := matrix.NewFromRows([][]float64{{2, 1}, {1, 3}})
//	x, err := matrix.Solve(a, []float64{3, 5})
//	if errors.Is(err, matrix.ErrSingular) {
//		// no unique solution
//	}
//
// Numeric policy:
//
//	pivot tolerance  PivotScale · n · ε · max|a_ij|   (default scale 10)
//	QR deflation     |h_{k,k-1}| <= ε · (|h_{k-1,k-1}| + |h_{k,k}|)
//	complex test     |im λ| > ImagTol · max(1, |re λ|) (default 1e-9)
package matrix
