// SPDX-License-Identifier: MIT
// Package engine: failure taxonomy.
//
// Every error leaving this package is a *Failure. Its Kind is derived from
// the wrapped matrix sentinel by classify, in a single place, so hosts can
// branch on Kind without importing the matrix package.

package engine

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linstory/matrix"
)

// Kind names a failure class of the host contract.
type Kind string

const (
	// DimensionMismatch: operand shapes are incompatible (including non-square
	// input where a square matrix is required).
	DimensionMismatch Kind = "DimensionMismatch"

	// SingularMatrix: solve, inverse or least squares on a rank-deficient system.
	SingularMatrix Kind = "SingularMatrix"

	// InsufficientData: fewer than 2 points for a line fit.
	InsufficientData Kind = "InsufficientData"

	// InvalidRank: truncation rank outside [1, min(rows, cols)].
	InvalidRank Kind = "InvalidRank"

	// NumericalNonConvergence: an iteration cap was reached. Never fatal for
	// eigen; reported through EigenResult.Converged instead.
	NumericalNonConvergence Kind = "NumericalNonConvergence"

	// InvalidInput: empty or ragged input, malformed points, unknown operation.
	InvalidInput Kind = "InvalidInput"

	// NonFiniteResult: NaN or ±Inf in the input or in a computed result.
	NonFiniteResult Kind = "NonFiniteResult"
)

// Host-facing messages kept identical to the original service.
const (
	msgVectorDims      = "Vectors must have the same dimension"
	msgSolveSingular   = "System has no unique solution (Singular matrix)"
	msgInverseSingular = "Matrix is singular (cannot be inverted)"
	msgNeedTwoPoints   = "Need at least 2 points"
	msgNonFinite       = "Result contains NaN or Inf"
	msgSquareRequired  = "Matrix must be square"
)

// ErrUnknownOp is wrapped by the failure returned for an unrecognised Op.
var ErrUnknownOp = errors.New("engine: unknown operation")

// Failure is the value-level error of every operation.
type Failure struct {
	Op      Op     // operation that failed
	Kind    Kind   // failure class
	Message string // human-readable message
	err     error  // underlying cause (a matrix sentinel, wrapped)
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %s", f.Op, f.Kind, f.Message)
}

// Unwrap exposes the cause so errors.Is(err, matrix.ErrSingular) keeps working.
func (f *Failure) Unwrap() error { return f.err }

// KindOf returns the Kind of err when it is (or wraps) a *Failure, and
// classifies any other error directly.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}

	return classify(err)
}

// classify maps a kernel error onto the failure taxonomy.
func classify(err error) Kind {
	switch {
	case errors.Is(err, matrix.ErrDimensionMismatch):
		return DimensionMismatch
	case errors.Is(err, matrix.ErrSingular):
		return SingularMatrix
	case errors.Is(err, matrix.ErrInsufficientData):
		return InsufficientData
	case errors.Is(err, matrix.ErrInvalidRank):
		return InvalidRank
	case errors.Is(err, matrix.ErrNonConvergence):
		return NumericalNonConvergence
	case errors.Is(err, matrix.ErrNaNInf):
		return NonFiniteResult
	default:
		return InvalidInput
	}
}

// fail builds the *Failure for op from a kernel error, choosing the message
// the original service used where one exists.
func fail(op Op, err error) *Failure {
	kind := classify(err)

	return &Failure{Op: op, Kind: kind, Message: message(op, kind, err), err: err}
}

// failNonFinite reports a NaN/Inf that slipped into a computed result.
func failNonFinite(op Op) *Failure {
	return &Failure{Op: op, Kind: NonFiniteResult, Message: msgNonFinite, err: matrix.ErrNaNInf}
}

func message(op Op, kind Kind, err error) string {
	switch {
	case kind == DimensionMismatch && (op == OpVectorAdd || op == OpDotProduct):
		return msgVectorDims
	case kind == DimensionMismatch && errors.Is(err, matrix.ErrNonSquare):
		return msgSquareRequired
	case kind == SingularMatrix && op == OpMatrixInverse:
		return msgInverseSingular
	case kind == SingularMatrix:
		return msgSolveSingular
	case kind == InsufficientData:
		return msgNeedTwoPoints
	case kind == NonFiniteResult:
		return msgNonFinite
	}

	return err.Error()
}
