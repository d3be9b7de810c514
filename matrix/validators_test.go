// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

func TestValidateNotNil(t *testing.T) {
	var typedNil *matrix.Dense
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	assert.NoError(t, matrix.ValidateNotNil(mustRows(t, [][]float64{{1}})))
}

func TestValidateSquare(t *testing.T) {
	err := matrix.ValidateSquare(mustRows(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch, "non-square is a dimension mismatch")
	assert.NoError(t, matrix.ValidateSquare(mustRows(t, [][]float64{{1, 2}, {3, 4}})))
}

func TestValidateShapes(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, matrix.ValidateBinarySameShape(a, b), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateBinarySameShape(a, nil), matrix.ErrNilMatrix)
	assert.NoError(t, matrix.ValidateBinarySameShape(a, a))
	assert.ErrorIs(t, matrix.ValidateMulCompatible(a, b), matrix.ErrDimensionMismatch)
	assert.NoError(t, matrix.ValidateMulCompatible(b, mustRows(t, [][]float64{{1}, {2}, {3}})))
}

func TestValidateVectors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"empty", matrix.ValidateVector(nil), matrix.ErrBadShape},
		{"nan", matrix.ValidateVector([]float64{1, math.NaN()}), matrix.ErrNaNInf},
		{"ok", matrix.ValidateVector([]float64{1}), nil},
		{"len mismatch", matrix.ValidateVecLen([]float64{1, 2}, 3), matrix.ErrDimensionMismatch},
		{"len ok", matrix.ValidateVecLen([]float64{1, 2, 3}, 3), nil},
		{"pair mismatch", matrix.ValidateSameLen([]float64{1}, []float64{1, 2}), matrix.ErrDimensionMismatch},
		{"pair inf", matrix.ValidateSameLen([]float64{1}, []float64{math.Inf(-1)}), matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == nil {
				assert.NoError(t, tc.err)
				return
			}
			assert.ErrorIs(t, tc.err, tc.want)
		})
	}
}
