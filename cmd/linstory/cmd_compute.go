package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linstory/engine"
	"github.com/katalvlaran/linstory/internal/logging"
)

func newComputeCmd() *cobra.Command {
	ops := make([]string, len(engine.Ops))
	for i, op := range engine.Ops {
		ops[i] = string(op)
	}

	cmd := &cobra.Command{
		Use:   "compute <operation>",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation on a JSON request read from --input or stdin.

Operations: ` + strings.Join(ops, ", ") + `

The request holds the fields the operation reads:
  v1, v2        vector-add, dot-product
  matrix        matrix-transform (with vector), solve-system (with target),
                determinant, matrix-inverse, eigen, svd-compression (with k)
  points        least-squares, as [[x, y], ...]

Examples:
  echo '{"v1":[1,2],"v2":[3,4]}' | linstory compute vector-add
  linstory compute solve-system --input system.json --json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: ops,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			input, _ := cmd.Flags().GetString("input")

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			req, err := engine.DecodeRequest(data)
			if err != nil {
				return err
			}
			req.Op = engine.Op(args[0])

			start := time.Now()
			resp := rt.engine.Do(req)
			kind := ""
			if resp.Error != nil {
				kind = string(resp.Error.Kind)
			}
			logging.Outcome(rt.log, string(req.Op), resp.OK, kind, time.Since(start))
			logging.Bodies(cmd.Context(), rt.log, string(req.Op), req, resp)

			out := cmd.OutOrStdout()
			if jsonOut {
				if err := json.NewEncoder(out).Encode(resp); err != nil {
					return err
				}
			} else if resp.OK {
				printResult(out, resp.Result)
			}
			return resp.Err()
		},
	}

	cmd.Flags().StringP("input", "i", "", "Request file (default stdin)")

	return cmd
}

// printResult writes a human-readable rendering of a successful result.
func printResult(w io.Writer, res any) {
	switch r := res.(type) {
	case *engine.VectorAddResult:
		fmt.Fprintf(w, "result: %v\n", r.Result)
		fmt.Fprintln(w, r.Explanation)
	case *engine.TransformResult:
		fmt.Fprintf(w, "result: %v\n", r.Result)
		fmt.Fprintln(w, r.Explanation)
	case *engine.DotResult:
		fmt.Fprintf(w, "dot product:       %g\n", r.DotProduct)
		fmt.Fprintf(w, "cosine similarity: %g\n", r.CosineSimilarity)
		fmt.Fprintln(w, r.Explanation)
	case *engine.SolveResult:
		fmt.Fprintf(w, "solution: %v\n", r.Solution)
		fmt.Fprintln(w, r.Explanation)
	case *engine.DeterminantResult:
		fmt.Fprintf(w, "determinant: %g\n", r.Determinant)
		fmt.Fprintln(w, r.Explanation)
	case *engine.InverseResult:
		fmt.Fprintln(w, "inverse:")
		printGrid(w, r.Inverse)
		fmt.Fprintln(w, r.Explanation)
	case *engine.EigenResult:
		for _, p := range r.Results {
			fmt.Fprintf(w, "λ = %g  v = %v\n", p.Eigenvalue, p.Eigenvector)
		}
		if r.Dropped > 0 {
			fmt.Fprintf(w, "(%d complex eigenvalues omitted)\n", r.Dropped)
		}
		if !r.Converged {
			fmt.Fprintln(w, "(iteration cap reached; only stabilized eigenvalues shown)")
		}
		fmt.Fprintln(w, r.Explanation)
	case *engine.LineFitResult:
		fmt.Fprintln(w, r.Equation)
		fmt.Fprintln(w, r.Explanation)
	case *engine.SVDResult:
		fmt.Fprintf(w, "singular values: %v (numerical rank %d)\n", r.SingularValues, r.Rank)
		fmt.Fprintf(w, "rank-%d reconstruction (relative error %.4g):\n", r.K, r.RelativeError)
		printGrid(w, r.Reconstructed)
		fmt.Fprintln(w, r.Explanation)
	default:
		fmt.Fprintf(w, "%v\n", res)
	}
}

func printGrid(w io.Writer, rows [][]float64) {
	for _, row := range rows {
		fmt.Fprintf(w, "  %v\n", row)
	}
}
