// Package linstory is a linear-algebra engine that explains itself: every
// result comes with a short note on its geometric meaning.
//
// 🚀 What is linstory?
//
//	A pure-Go numeric core with a thin host around it:
//		• Elementary ops: vector add, M·v, dot product, cosine similarity
//		• Systems: partial-pivot LU solve and determinant, Gauss–Jordan inverse
//		• Fits: Householder QR least squares and best-fit lines
//		• Spectra: Hessenberg + Francis QR eigenvalues, inverse-iteration vectors
//		• Compression: one-sided Jacobi SVD with rank-k reconstruction
//
// ✨ Why linstory?
//
//   - Typed failures – DimensionMismatch, SingularMatrix, InsufficientData,
//     InvalidRank; never a NaN dressed up as an answer
//   - Explicit numeric policy – tolerances scale with the operand and every
//     iteration has a cap
//   - Stateless – one engine serves any number of goroutines
//
// Layout:
//
//	matrix/          — Dense storage, validators and the numeric kernels
//	engine/          — operation dispatch, explanations, JSON contract, batches
//	render/          — PNG/SVG charts of fits and singular-value spectra
//	internal/config  — YAML + environment configuration
//	internal/logging — leveled slog logger for the host
//	cmd/linstory/    — cobra CLI: compute, batch, plot, config, version
//
// Quick example:
//
//	e := engine.New()
//	r, _ := e.SolveSystem([][]float64{{2, 1}, {1, 3}}, []float64{3, 5})
//	fmt.Println(r.Solution, r.Explanation) // [0.8 1.4] Found the unique intersection point.
//
//	go install github.com/katalvlaran/linstory/cmd/linstory@latest
package linstory
