package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

func TestQR_Factors(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := mustRows(t, randomRows(rng, 6, 3))
	q, r, err := matrix.QR(a)
	require.NoError(t, err)
	require.Equal(t, 6, q.Rows())
	require.Equal(t, 3, q.Cols())

	// A = Q·R
	qr, err := matrix.Mul(q, r)
	require.NoError(t, err)
	require.Less(t, frobeniusDiff(t, a, qr), 1e-13)

	// QᵀQ = I
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	qtq, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, _ := matrix.Identity(3)
	require.Less(t, frobeniusDiff(t, qtq, id), 1e-13)

	// R is upper triangular.
	rows := r.ToRows()
	for i := range rows {
		for j := 0; j < i; j++ {
			assert.Zero(t, rows[i][j])
		}
	}
}

func TestQR_Wide(t *testing.T) {
	_, _, err := matrix.QR(mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLeastSquares_Overdetermined(t *testing.T) {
	// Exact system padded with a consistent extra equation.
	a := mustRows(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})
	x, err := matrix.LeastSquares(a, []float64{2, 3, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3}, x, 1e-14)
}

func TestFitLine(t *testing.T) {
	tests := []struct {
		name             string
		points           []matrix.Point
		slope, intercept float64
	}{
		{"exact line", []matrix.Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}, 2, 1},
		{"two points", []matrix.Point{{X: -1, Y: 4}, {X: 1, Y: 0}}, -2, 2},
		{"noisy", []matrix.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 3}}, 0.9, -0.1},
		{"horizontal", []matrix.Point{{X: 1, Y: 7}, {X: 2, Y: 7}, {X: 9, Y: 7}}, 0, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line, err := matrix.FitLine(tc.points)
			require.NoError(t, err)
			assert.InDelta(t, tc.slope, line.Slope, 1e-12)
			assert.InDelta(t, tc.intercept, line.Intercept, 1e-12)
		})
	}
}

func TestFitLine_Failures(t *testing.T) {
	_, err := matrix.FitLine(nil)
	require.ErrorIs(t, err, matrix.ErrInsufficientData)

	_, err = matrix.FitLine([]matrix.Point{{X: 1, Y: 1}})
	require.ErrorIs(t, err, matrix.ErrInsufficientData)

	// Vertical scatter: every x identical.
	_, err = matrix.FitLine([]matrix.Point{{X: 1, Y: 1}, {X: 1, Y: 5}})
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.FitLine([]matrix.Point{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: -4}})
	require.ErrorIs(t, err, matrix.ErrSingular)
}
