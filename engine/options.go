// SPDX-License-Identifier: MIT
// Package engine: functional options.
//
// Each option forwards to the matching matrix option, so validation (and the
// panic on a nonsensical value) happens exactly once, in the matrix package.

package engine

import "github.com/katalvlaran/linstory/matrix"

// Option configures an Engine.
type Option func(*Engine)

// WithPivotScale sets the multiplier of the relative singularity threshold
// PivotScale·n·ε·max|a_ij| used by solve, determinant, inverse and fits.
// Panics if scale is not finite or below 1.
func WithPivotScale(scale float64) Option {
	mo := matrix.WithPivotScale(scale)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}

// WithImagTol sets the relative threshold above which an eigenvalue counts as
// complex and is dropped.
func WithImagTol(tol float64) Option {
	mo := matrix.WithImagTol(tol)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}

// WithMaxEigenIter sets the shifted-QR step budget per eigenvalue.
func WithMaxEigenIter(perEigen int) Option {
	mo := matrix.WithMaxQRIter(perEigen)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}

// WithInverseIterSteps caps inverse-iteration refinement per eigenvector.
func WithInverseIterSteps(steps int) Option {
	mo := matrix.WithInverseIterSteps(steps)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}

// WithSVDMaxSweeps caps one-sided Jacobi sweeps.
func WithSVDMaxSweeps(sweeps int) Option {
	mo := matrix.WithSVDMaxSweeps(sweeps)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}

// WithEpsilon sets the structural tolerance of the kernels.
func WithEpsilon(eps float64) Option {
	mo := matrix.WithEpsilon(eps)

	return func(e *Engine) { e.opts = append(e.opts, mo) }
}
