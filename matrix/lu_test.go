package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

func TestSolve_Known2x2(t *testing.T) {
	a := mustRows(t, [][]float64{{2, 1}, {1, 3}})
	x, err := matrix.Solve(a, []float64{3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, x[0], 1e-14)
	assert.InDelta(t, 1.4, x[1], 1e-14)
}

func TestSolve_NeedsPivoting(t *testing.T) {
	// A zero in the leading position defeats elimination without row swaps.
	a := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	x, err := matrix.Solve(a, []float64{2, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 2}, x, 1e-15)
}

// TestSolve_ResidualRandom checks ‖Ax − b‖ < ε on random non-singular systems.
func TestSolve_ResidualRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		a := mustRows(t, diagonallyDominant(rng, n))
		b := randomRows(rng, 1, n)[0]
		x, err := matrix.Solve(a, b)
		require.NoError(t, err, "n=%d", n)
		require.Less(t, residual(t, a, x, b), 1e-10, "n=%d", n)
	}
}

func TestSolve_Singular(t *testing.T) {
	tests := map[string][][]float64{
		"rank one":        {{1, 2}, {2, 4}},
		"all ones":        {{1, 1}, {1, 1}},
		"zero matrix":     {{0, 0}, {0, 0}},
		"dependent 3x3":   {{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		"zero column 3x3": {{1, 0, 2}, {3, 0, 4}, {5, 0, 6}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			x, err := matrix.Solve(mustRows(t, rows), make([]float64, len(rows)))
			require.ErrorIs(t, err, matrix.ErrSingular)
			require.Nil(t, x)
		})
	}
}

// TestSolve_TinyButWellScaled guards against absolute tolerances: a small but
// perfectly conditioned system must still solve.
func TestSolve_TinyButWellScaled(t *testing.T) {
	a := mustRows(t, [][]float64{{1e-20, 0}, {0, 2e-20}})
	x, err := matrix.Solve(a, []float64{1e-20, 2e-20})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)
}

func TestSolve_ShapeErrors(t *testing.T) {
	_, err := matrix.Solve(mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch, "non-square is a dimension mismatch")

	_, err = matrix.Solve(mustRows(t, [][]float64{{1, 0}, {0, 1}}), []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Solve(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLU_FactorsReused solves several right-hand sides with one
// factorization and checks A·x = b for each.
func TestLU_FactorsReused(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := mustRows(t, randomRows(rng, 5, 5))
	f, err := matrix.LU(a)
	require.NoError(t, err)
	require.False(t, f.Singular())

	for k := 0; k < 3; k++ {
		b := randomRows(rng, 1, 5)[0]
		x, err := f.Solve(b)
		require.NoError(t, err)
		ax, err := matrix.MatVec(a, x)
		require.NoError(t, err)
		assert.InDeltaSlice(t, b, ax, 1e-12, "rhs %d", k)
	}
	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.Equal(t, det, f.Det())
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
		want float64
	}{
		{"1x1", [][]float64{{-7}}, -7},
		{"2x2", [][]float64{{1, 2}, {3, 4}}, -2},
		{"identity", [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, 1},
		{"swap", [][]float64{{0, 1}, {1, 0}}, -1},
		{"scale area", [][]float64{{2, 0}, {0, 3}}, 6},
		{"upper triangular", [][]float64{{2, 5, 7}, {0, 3, 1}, {0, 0, 4}}, 24},
		{"singular is valid", [][]float64{{1, 2}, {2, 4}}, 0},
		{"zero matrix", [][]float64{{0, 0}, {0, 0}}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			det, err := matrix.Determinant(mustRows(t, tc.rows))
			require.NoError(t, err)
			assert.InDelta(t, tc.want, det, 1e-12)
		})
	}
}

func TestDeterminant_NonSquare(t *testing.T) {
	_, err := matrix.Determinant(mustRows(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDeterminant_Multiplicative checks det(AB) ≈ det(A)·det(B).
func TestDeterminant_Multiplicative(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{2, 3, 4, 6} {
		a := mustRows(t, randomRows(rng, n, n))
		b := mustRows(t, randomRows(rng, n, n))
		ab, err := matrix.Mul(a, b)
		require.NoError(t, err)

		detA, err := matrix.Determinant(a)
		require.NoError(t, err)
		detB, err := matrix.Determinant(b)
		require.NoError(t, err)
		detAB, err := matrix.Determinant(ab)
		require.NoError(t, err)

		want := detA * detB
		assert.InDelta(t, want, detAB, 1e-10*math.Max(1, math.Abs(want)), "n=%d", n)
	}
}

func TestPivotScaleOption(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 0}, {0, 1e-14}})

	_, err := matrix.Solve(a, []float64{1, 1})
	require.NoError(t, err, "default threshold ≈ 4.4e-15 keeps 1e-14 as a pivot")

	_, err = matrix.Solve(a, []float64{1, 1}, matrix.WithPivotScale(1e3))
	require.ErrorIs(t, err, matrix.ErrSingular)
}
