// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures (seeded rand) for the kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing the asDense
// materialization path inside kernels.
type hide struct{ matrix.Matrix }

// mustRows builds a *Dense from a literal grid or fails the test.
func mustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return d
}

// randomRows returns an r×c grid with entries in [-1, 1).
func randomRows(rng *rand.Rand, r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = 2*rng.Float64() - 1
		}
	}

	return out
}

// diagonallyDominant returns a random n×n grid whose diagonal dominates each
// row, which guarantees non-singularity.
func diagonallyDominant(rng *rand.Rand, n int) [][]float64 {
	g := randomRows(rng, n, n)
	for i := 0; i < n; i++ {
		g[i][i] = float64(n) + 1
	}

	return g
}

// symmetricRows returns a random symmetric n×n grid.
func symmetricRows(rng *rand.Rand, n int) [][]float64 {
	g := randomRows(rng, n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			g[i][j] = g[j][i]
		}
	}

	return g
}

// requireGridClose asserts |want[i][j] − got(i,j)| <= tol everywhere.
func requireGridClose(t testing.TB, want [][]float64, got *matrix.Dense, tol float64) {
	t.Helper()
	require.Equal(t, len(want), got.Rows(), "rows")
	require.Equal(t, len(want[0]), got.Cols(), "cols")
	rows := got.ToRows()
	for i := range want {
		for j := range want[i] {
			require.InDeltaf(t, want[i][j], rows[i][j], tol, "element [%d,%d]", i, j)
		}
	}
}

// residual returns ‖Ax − b‖₂.
func residual(t testing.TB, a *matrix.Dense, x, b []float64) float64 {
	t.Helper()
	ax, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	var s float64
	for i := range ax {
		s += (ax[i] - b[i]) * (ax[i] - b[i])
	}

	return math.Sqrt(s)
}

// frobeniusDiff returns ‖A − B‖_F.
func frobeniusDiff(t testing.TB, a, b matrix.Matrix) float64 {
	t.Helper()
	d, err := matrix.Sub(a, b)
	require.NoError(t, err)
	f, err := matrix.FrobeniusNorm(d)
	require.NoError(t, err)

	return f
}
