// SPDX-License-Identifier: MIT
// Package engine: concurrent evaluation of independent requests.

package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batch evaluates reqs concurrently, at most GOMAXPROCS at a time, and
// returns one Response per request in the same order.
//
// Operation failures are Responses, not errors. The only error is ctx's:
// once ctx is done no further request is started, and Batch returns the
// responses computed so far (zero values for the rest) with ctx.Err().
func (e *Engine) Batch(ctx context.Context, reqs []Request) ([]Response, error) {
	out := make([]Response, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range reqs {
		i := i // per-iteration copy (go directive < 1.22)
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Do(reqs[i])

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, ctx.Err()
}
