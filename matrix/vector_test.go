package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

func TestVecAdd(t *testing.T) {
	got, err := matrix.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, got)
}

func TestVecAdd_DoesNotAlias(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3, 4}
	got, err := matrix.VecAdd(a, b)
	require.NoError(t, err)
	got[0] = 100
	assert.Equal(t, []float64{1, 2}, a, "input must stay untouched")
}

// TestElementary_ShapeValidation checks that every elementary kernel refuses
// every mismatched pair of lengths and never returns a partial result.
func TestElementary_ShapeValidation(t *testing.T) {
	for la := 1; la <= 4; la++ {
		for lb := 1; lb <= 4; lb++ {
			if la == lb {
				continue
			}
			a := make([]float64, la)
			b := make([]float64, lb)
			for i := range a {
				a[i] = float64(i + 1)
			}
			for i := range b {
				b[i] = float64(i + 2)
			}

			sum, err := matrix.VecAdd(a, b)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			require.Nil(t, sum)

			_, err = matrix.Dot(a, b)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

			_, err = matrix.CosineSimilarity(a, b)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

			m := mustRows(t, [][]float64{a})
			y, err := matrix.MatVec(m, b)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			require.Nil(t, y)
		}
	}
}

func TestVector_EmptyAndNonFinite(t *testing.T) {
	_, err := matrix.VecAdd(nil, nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.Dot([]float64{1, math.NaN()}, []float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.Norm([]float64{math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDot(t *testing.T) {
	d, err := matrix.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 32.0, d)
}

func TestNorm(t *testing.T) {
	n, err := matrix.Norm([]float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, n, 1e-15)

	// Scaled accumulation must not overflow where a naive Σx² would.
	n, err = matrix.Norm([]float64{1e200, 1e200})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt2*1e200, n, 1e-15)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"parallel", []float64{1, 2}, []float64{2, 4}, 1},
		{"opposite", []float64{1, 0}, []float64{-3, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 5}, 0},
		{"zero left", []float64{0, 0}, []float64{1, 1}, 0},
		{"zero right", []float64{1, 1}, []float64{0, 0}, 0},
		{"both zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := matrix.CosineSimilarity(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-15)
		})
	}
}

func TestMatVec(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y, err := matrix.MatVec(m, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7, 11}, y)

	// The interface fallback path yields the same result.
	y2, err := matrix.MatVec(hide{m}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, y, y2)
}
