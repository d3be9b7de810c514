// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each knob impacts a kernel and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Tolerances scale with the operand: pivot tests use
//     PivotScale · n · MachineEpsilon · max|a_ij|, never an absolute constant.
//   - Iteration caps bound CPU for pathological inputs (defective or
//     extremely ill-conditioned matrices); hitting a cap is reported, not hidden.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// MachineEpsilon is the float64 unit roundoff (2^-52).
const MachineEpsilon = 2.220446049250313e-16

// Numeric policy.
const (
	// DefaultEpsilon is the general-purpose tolerance used by structural checks
	// (symmetry probes, eigenvalue clustering).
	DefaultEpsilon = 1e-9

	// DefaultPivotScale multiplies n·ε·max|a_ij| to form the singularity threshold.
	DefaultPivotScale = 10.0

	// DefaultImagTol is the relative threshold above which the imaginary part of
	// an eigenvalue counts as non-negligible (the pair is then dropped).
	DefaultImagTol = 1e-9

	// DefaultQRIterPerEigen caps shifted-QR steps per deflated eigenvalue,
	// multiplied by the matrix order (LAPACK uses the same 30·n budget).
	DefaultQRIterPerEigen = 30

	// DefaultInverseIterSteps caps inverse-iteration refinement per eigenvector.
	DefaultInverseIterSteps = 20

	// DefaultSVDMaxSweeps caps one-sided Jacobi sweeps.
	DefaultSVDMaxSweeps = 60

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid    = "matrix: WithEpsilon: eps must be finite, positive"
	panicPivotScaleInvalid = "matrix: WithPivotScale: scale must be finite, >= 1"
	panicImagTolInvalid    = "matrix: WithImagTol: tol must be finite, non-negative"
	panicIterInvalid       = "matrix: iteration cap must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options holds the resolved numeric policy. Fields are unexported; build it
// with NewOptions (or pass ...Option directly to kernels).
type Options struct {
	eps            float64 // structural tolerance
	pivotScale     float64 // multiplier of n·ε·max|a_ij|
	imagTol        float64 // relative imaginary-part threshold
	qrIterPerEigen int     // shifted-QR steps per eigenvalue
	invIterSteps   int     // inverse-iteration steps per eigenvector
	svdMaxSweeps   int     // Jacobi sweep cap
}

// WithEpsilon sets the structural tolerance (eigenvalue clustering, probes).
// Panics if eps is not finite or not positive.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithPivotScale sets the multiplier of the relative pivot threshold.
// Panics if scale is not finite or below 1.
func WithPivotScale(scale float64) Option {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 1 {
		panic(panicPivotScaleInvalid)
	}

	return func(o *Options) { o.pivotScale = scale }
}

// WithImagTol sets the relative threshold for complex-eigenvalue detection.
func WithImagTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicImagTolInvalid)
	}

	return func(o *Options) { o.imagTol = tol }
}

// WithMaxQRIter sets the shifted-QR step budget per eigenvalue.
func WithMaxQRIter(perEigen int) Option {
	if perEigen <= 0 {
		panic(panicIterInvalid)
	}

	return func(o *Options) { o.qrIterPerEigen = perEigen }
}

// WithInverseIterSteps sets the inverse-iteration refinement cap.
func WithInverseIterSteps(steps int) Option {
	if steps <= 0 {
		panic(panicIterInvalid)
	}

	return func(o *Options) { o.invIterSteps = steps }
}

// WithSVDMaxSweeps sets the one-sided Jacobi sweep cap.
func WithSVDMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicIterInvalid)
	}

	return func(o *Options) { o.svdMaxSweeps = sweeps }
}

// NewOptions resolves opts on top of the defaults.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// Epsilon returns the structural tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// PivotScale returns the pivot threshold multiplier.
func (o Options) PivotScale() float64 { return o.pivotScale }

// ImagTol returns the complex-detection threshold.
func (o Options) ImagTol() float64 { return o.imagTol }

// MaxQRIter returns the shifted-QR budget per eigenvalue.
func (o Options) MaxQRIter() int { return o.qrIterPerEigen }

// InverseIterSteps returns the inverse-iteration cap.
func (o Options) InverseIterSteps() int { return o.invIterSteps }

// SVDMaxSweeps returns the Jacobi sweep cap.
func (o Options) SVDMaxSweeps() int { return o.svdMaxSweeps }

// defaultOptions mirrors the Default* constants exactly.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		pivotScale:     DefaultPivotScale,
		imagTol:        DefaultImagTol,
		qrIterPerEigen: DefaultQRIterPerEigen,
		invIterSteps:   DefaultInverseIterSteps,
		svdMaxSweeps:   DefaultSVDMaxSweeps,
	}
}

// gatherOptions applies user options in order; nil entries are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// pivotTolerance is the singularity threshold for an n×n operand whose
// largest absolute entry is maxAbs.
func (o Options) pivotTolerance(n int, maxAbs float64) float64 {
	return o.pivotScale * float64(n) * MachineEpsilon * maxAbs
}
