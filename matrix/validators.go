// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/finiteness checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly with their operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Inputs: Matrix interface value (typed nil *Dense counts as nil).
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape: NotNil(a) → NotNil(b) → SameShape(a,b).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare (matches ErrDimensionMismatch) otherwise.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows for C = A×B.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVector ensures x is non-empty and finite.
// Errors: ErrBadShape (empty), ErrNaNInf.
// Time: O(n).
func ValidateVector(x []float64) error {
	if len(x) == 0 {
		return validatorErrorf("ValidateVector", ErrBadShape)
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateVector", ErrNaNInf)
		}
	}

	return nil
}

// ValidateVecLen ensures the vector is valid and its length matches n.
// Time: O(n).
func ValidateVecLen(x []float64, n int) error {
	if err := ValidateVector(x); err != nil {
		return err
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameLen ensures both vectors are valid and equally long.
func ValidateSameLen(a, b []float64) error {
	if err := ValidateVector(a); err != nil {
		return err
	}
	if err := ValidateVector(b); err != nil {
		return err
	}
	if len(a) != len(b) {
		return validatorErrorf("ValidateSameLen", ErrDimensionMismatch)
	}

	return nil
}
