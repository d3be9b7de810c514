// SPDX-License-Identifier: MIT
package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/engine"
)

func TestBatch_PreservesOrder(t *testing.T) {
	reqs := make([]engine.Request, 64)
	for i := range reqs {
		if i%5 == 0 {
			reqs[i] = engine.Request{Op: engine.OpMatrixInverse, Matrix: [][]float64{{1, 1}, {1, 1}}}
			continue
		}
		reqs[i] = engine.Request{Op: engine.OpDeterminant, Matrix: [][]float64{{float64(i), 0}, {0, 2}}}
	}

	out, err := engine.New().Batch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))
	for i, resp := range out {
		if i%5 == 0 {
			assert.False(t, resp.OK, "request %d", i)
			assert.Equal(t, engine.SingularMatrix, resp.Error.Kind)
			continue
		}
		require.True(t, resp.OK, "request %d", i)
		det := resp.Result.(*engine.DeterminantResult).Determinant
		assert.Equal(t, float64(2*i), det, fmt.Sprintf("request %d", i))
	}
}

func TestBatch_Empty(t *testing.T) {
	out, err := engine.New().Batch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reqs := []engine.Request{{Op: engine.OpDeterminant, Matrix: [][]float64{{1}}}}

	out, err := engine.New().Batch(ctx, reqs)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 1)
	assert.False(t, out[0].OK, "nothing is evaluated after cancellation")
}
