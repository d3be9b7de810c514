// SPDX-License-Identifier: MIT

// Package engine dispatches linear-algebra operation requests onto the
// matrix kernels and packages the outcome for a host.
//
// 🚀 What is engine?
//
//	A stateless layer between a caller holding plain slices and the numeric
//	core. Every operation:
//	  • ingests [][]float64 / []float64 input (validated, never retained),
//	  • runs exactly one matrix kernel,
//	  • returns a typed result with a short explanation string, or a typed
//	    *Failure carrying a Kind and a message.
//
// ✨ Operations
//
//	vector-add        v1 + v2
//	matrix-transform  M·v
//	dot-product       v1·v2 and cosine similarity
//	solve-system      x with A·x = b
//	determinant       det(A), zero included
//	matrix-inverse    A⁻¹
//	eigen             real eigenpairs (complex ones are dropped)
//	least-squares     best-fit line y = m·x + c
//	svd-compression   rank-k reconstruction A_k
//
// ⚙️ Guarantees
//
//   - No NaN or ±Inf ever leaves a successful result: such values become a
//     NonFiniteResult failure.
//   - Eigen never fails on slow convergence; the result reports Converged.
//   - An Engine holds only immutable options, so one value may serve any
//     number of goroutines. Batch evaluates independent requests in
//     parallel and keeps their order.
//   - The package never logs. Hosts decide what to record.
package engine
