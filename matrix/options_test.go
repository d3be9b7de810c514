// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/linstory/matrix"
)

// TestDefaultOptions_Documented verifies that NewOptions() equals the documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewOptions()
	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultPivotScale, o.PivotScale())
	assert.Equal(t, matrix.DefaultImagTol, o.ImagTol())
	assert.Equal(t, matrix.DefaultQRIterPerEigen, o.MaxQRIter())
	assert.Equal(t, matrix.DefaultInverseIterSteps, o.InverseIterSteps())
	assert.Equal(t, matrix.DefaultSVDMaxSweeps, o.SVDMaxSweeps())
}

func TestOptions_AppliedInOrder(t *testing.T) {
	o := matrix.NewOptions(
		matrix.WithPivotScale(4),
		matrix.WithPivotScale(8),
		nil,
		matrix.WithImagTol(0),
		matrix.WithMaxQRIter(5),
		matrix.WithInverseIterSteps(3),
		matrix.WithSVDMaxSweeps(7),
		matrix.WithEpsilon(1e-6),
	)
	assert.Equal(t, 8.0, o.PivotScale(), "last option wins")
	assert.Equal(t, 0.0, o.ImagTol())
	assert.Equal(t, 5, o.MaxQRIter())
	assert.Equal(t, 3, o.InverseIterSteps())
	assert.Equal(t, 7, o.SVDMaxSweeps())
	assert.Equal(t, 1e-6, o.Epsilon())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	cases := map[string]func(){
		"eps zero":        func() { matrix.WithEpsilon(0) },
		"eps nan":         func() { matrix.WithEpsilon(math.NaN()) },
		"pivot below one": func() { matrix.WithPivotScale(0.5) },
		"pivot inf":       func() { matrix.WithPivotScale(math.Inf(1)) },
		"imag negative":   func() { matrix.WithImagTol(-1) },
		"qr zero":         func() { matrix.WithMaxQRIter(0) },
		"inverse zero":    func() { matrix.WithInverseIterSteps(0) },
		"sweeps negative": func() { matrix.WithSVDMaxSweeps(-3) },
	}
	for name, fn := range cases {
		assert.Panics(t, fn, name)
	}
}

func TestOptions_SVDSweepCapReported(t *testing.T) {
	a := mustRows(t, [][]float64{{4, 1, 2}, {1, 3, 0}, {2, 0, 5}})
	f, err := matrix.SVD(a, matrix.WithSVDMaxSweeps(1))
	if assert.NoError(t, err) {
		assert.Equal(t, 1, f.Sweeps)
		assert.False(t, f.Converged, "one sweep cannot orthogonalize a coupled 3x3")
	}
}
