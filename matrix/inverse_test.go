package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

func TestInverse_Known2x2(t *testing.T) {
	inv, err := matrix.Inverse(mustRows(t, [][]float64{{4, 7}, {2, 6}}))
	require.NoError(t, err)
	requireGridClose(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}, inv, 1e-14)
}

// TestInverse_RoundTrip checks A·A⁻¹ ≈ I on random non-singular inputs, for
// both the *Dense path and the interface fallback.
func TestInverse_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for _, n := range []int{1, 2, 4, 7} {
		a := mustRows(t, diagonallyDominant(rng, n))
		id, err := matrix.Identity(n)
		require.NoError(t, err)

		for _, in := range []matrix.Matrix{a, hide{a}} {
			inv, err := matrix.Inverse(in)
			require.NoError(t, err, "n=%d", n)
			prod, err := matrix.Mul(a, inv)
			require.NoError(t, err)
			require.Less(t, frobeniusDiff(t, prod, id), 1e-12, "n=%d", n)
		}
	}
}

func TestInverse_Singular(t *testing.T) {
	inv, err := matrix.Inverse(mustRows(t, [][]float64{{1, 1}, {1, 1}}))
	require.ErrorIs(t, err, matrix.ErrSingular)
	require.Nil(t, inv)

	_, err = matrix.Inverse(mustRows(t, [][]float64{{0, 0}, {0, 0}}))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverse_NonSquare(t *testing.T) {
	_, err := matrix.Inverse(mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverse_InputUntouched(t *testing.T) {
	rows := [][]float64{{4, 7}, {2, 6}}
	a := mustRows(t, rows)
	_, err := matrix.Inverse(a)
	require.NoError(t, err)
	requireGridClose(t, rows, a, 0)
}
