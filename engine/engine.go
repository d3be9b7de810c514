// SPDX-License-Identifier: MIT
// Package engine: typed operations.
//
// Purpose:
//   - One method per operation; each ingests plain slices, runs a matrix
//     kernel and returns a result struct (with explanation) or a *Failure.
//
// Behavior highlights:
//   - Inputs are copied on ingestion; results never alias caller memory.
//   - Successful results are finite; otherwise Kind is NonFiniteResult.

package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/linstory/matrix"
)

// Op identifies an operation of the host contract.
type Op string

const (
	OpVectorAdd       Op = "vector-add"
	OpMatrixTransform Op = "matrix-transform"
	OpDotProduct      Op = "dot-product"
	OpSolveSystem     Op = "solve-system"
	OpDeterminant     Op = "determinant"
	OpMatrixInverse   Op = "matrix-inverse"
	OpEigen           Op = "eigen"
	OpLeastSquares    Op = "least-squares"
	OpSVDCompression  Op = "svd-compression"
)

// Ops lists every supported operation in contract order.
var Ops = []Op{
	OpVectorAdd, OpMatrixTransform, OpDotProduct, OpSolveSystem, OpDeterminant,
	OpMatrixInverse, OpEigen, OpLeastSquares, OpSVDCompression,
}

// Explanation strings.
const (
	explainVectorAdd   = "Adding corresponding components: %s + %s = %s"
	explainTransform   = "Result is a linear combination of the matrix columns."
	explainDot         = "Dot Product: %.2f. Agreement (Cosine): %.2f"
	explainSolve       = "Found the unique intersection point."
	explainDeterminant = "The area scaling factor is %.2f"
	explainInverse     = "This matrix undoes the transformation."
	explainEigen       = "Eigenvectors are directions that do not rotate, only stretch."
	explainFit         = "Calculated the line that minimizes the sum of squared errors."
	explainSVD         = "Compressed image using the top %d singular values."
	equationFormat     = "y = %.2fx + %.2f"
)

// Engine evaluates operations under a fixed numeric policy.
// The zero value is not usable; build one with New.
type Engine struct {
	opts []matrix.Option
}

// New returns an Engine with the given options applied over the matrix defaults.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, fn := range opts {
		if fn != nil {
			fn(e)
		}
	}

	return e
}

// Options returns the resolved numeric policy.
func (e *Engine) Options() matrix.Options { return matrix.NewOptions(e.opts...) }

// VectorAddResult is the payload of vector-add.
type VectorAddResult struct {
	V1          []float64 `json:"v1"`
	V2          []float64 `json:"v2"`
	Result      []float64 `json:"result"`
	Explanation string    `json:"explanation"`
}

// VectorAdd returns v1 + v2.
func (e *Engine) VectorAdd(v1, v2 []float64) (*VectorAddResult, error) {
	sum, err := matrix.VecAdd(v1, v2)
	if err != nil {
		return nil, fail(OpVectorAdd, err)
	}
	if !finite(sum...) {
		return nil, failNonFinite(OpVectorAdd)
	}
	a, b := cloneVec(v1), cloneVec(v2)

	return &VectorAddResult{
		V1:          a,
		V2:          b,
		Result:      sum,
		Explanation: fmt.Sprintf(explainVectorAdd, formatVec(a), formatVec(b), formatVec(sum)),
	}, nil
}

// TransformResult is the payload of matrix-transform.
type TransformResult struct {
	Matrix      [][]float64 `json:"matrix"`
	Vector      []float64   `json:"vector"`
	Result      []float64   `json:"result"`
	Explanation string      `json:"explanation"`
}

// Transform returns M·v.
func (e *Engine) Transform(m [][]float64, v []float64) (*TransformResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpMatrixTransform, err)
	}
	if a.Cols() != len(v) {
		return nil, &Failure{
			Op:      OpMatrixTransform,
			Kind:    DimensionMismatch,
			Message: fmt.Sprintf("Dimension mismatch: Matrix is (%d, %d), Vector is (%d,)", a.Rows(), a.Cols(), len(v)),
			err:     matrix.ErrDimensionMismatch,
		}
	}
	out, err := matrix.MatVec(a, v)
	if err != nil {
		return nil, fail(OpMatrixTransform, err)
	}
	if !finite(out...) {
		return nil, failNonFinite(OpMatrixTransform)
	}

	return &TransformResult{
		Matrix:      a.ToRows(),
		Vector:      cloneVec(v),
		Result:      out,
		Explanation: explainTransform,
	}, nil
}

// DotResult is the payload of dot-product.
type DotResult struct {
	V1               []float64 `json:"v1"`
	V2               []float64 `json:"v2"`
	DotProduct       float64   `json:"dot_product"`
	CosineSimilarity float64   `json:"cosine_similarity"`
	Explanation      string    `json:"explanation"`
}

// DotProduct returns v1·v2 and the cosine similarity (0 when either vector
// has zero length).
func (e *Engine) DotProduct(v1, v2 []float64) (*DotResult, error) {
	d, err := matrix.Dot(v1, v2)
	if err != nil {
		return nil, fail(OpDotProduct, err)
	}
	c, err := matrix.CosineSimilarity(v1, v2)
	if err != nil {
		return nil, fail(OpDotProduct, err)
	}
	if !finite(d, c) {
		return nil, failNonFinite(OpDotProduct)
	}

	return &DotResult{
		V1:               cloneVec(v1),
		V2:               cloneVec(v2),
		DotProduct:       d,
		CosineSimilarity: c,
		Explanation:      fmt.Sprintf(explainDot, d, c),
	}, nil
}

// SolveResult is the payload of solve-system.
type SolveResult struct {
	Solution    []float64 `json:"solution"`
	Explanation string    `json:"explanation"`
}

// SolveSystem returns the unique x with A·x = target.
func (e *Engine) SolveSystem(m [][]float64, target []float64) (*SolveResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpSolveSystem, err)
	}
	x, err := matrix.Solve(a, target, e.opts...)
	if err != nil {
		return nil, fail(OpSolveSystem, err)
	}
	if !finite(x...) {
		return nil, failNonFinite(OpSolveSystem)
	}

	return &SolveResult{Solution: x, Explanation: explainSolve}, nil
}

// DeterminantResult is the payload of determinant.
type DeterminantResult struct {
	Determinant float64 `json:"determinant"`
	Explanation string  `json:"explanation"`
}

// Determinant returns det(A). A singular matrix yields 0, not a failure.
func (e *Engine) Determinant(m [][]float64) (*DeterminantResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpDeterminant, err)
	}
	d, err := matrix.Determinant(a, e.opts...)
	if err != nil {
		return nil, fail(OpDeterminant, err)
	}
	if !finite(d) {
		return nil, failNonFinite(OpDeterminant)
	}

	return &DeterminantResult{Determinant: d, Explanation: fmt.Sprintf(explainDeterminant, d)}, nil
}

// InverseResult is the payload of matrix-inverse.
type InverseResult struct {
	Inverse     [][]float64 `json:"inverse"`
	Explanation string      `json:"explanation"`
}

// Inverse returns A⁻¹.
func (e *Engine) Inverse(m [][]float64) (*InverseResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpMatrixInverse, err)
	}
	inv, err := matrix.Inverse(a, e.opts...)
	if err != nil {
		return nil, fail(OpMatrixInverse, err)
	}

	return &InverseResult{Inverse: inv.ToRows(), Explanation: explainInverse}, nil
}

// EigenPair is one real eigenvalue with its unit eigenvector.
type EigenPair struct {
	Eigenvalue  float64   `json:"eigenvalue"`
	Eigenvector []float64 `json:"eigenvector"`
}

// EigenResult is the payload of eigen.
type EigenResult struct {
	Results     []EigenPair `json:"results"`
	Dropped     int         `json:"dropped"`   // complex eigenvalues left out
	Converged   bool        `json:"converged"` // false when the QR budget ran out
	Explanation string      `json:"explanation"`
}

// Eigen returns the real eigenpairs of a square matrix, ascending by value.
// Hitting the iteration cap is not a failure: Converged is false and
// Results holds the eigenvalues that stabilized.
func (e *Engine) Eigen(m [][]float64) (*EigenResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpEigen, err)
	}
	d, err := matrix.Eigen(a, e.opts...)
	if err != nil {
		return nil, fail(OpEigen, err)
	}
	pairs := make([]EigenPair, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		if !finite(p.Value) || !finite(p.Vector...) {
			return nil, failNonFinite(OpEigen)
		}
		pairs = append(pairs, EigenPair{Eigenvalue: p.Value, Eigenvector: p.Vector})
	}

	return &EigenResult{
		Results:     pairs,
		Dropped:     d.Dropped,
		Converged:   d.Converged,
		Explanation: explainEigen,
	}, nil
}

// LineFitResult is the payload of least-squares.
type LineFitResult struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	Equation    string  `json:"equation"`
	Explanation string  `json:"explanation"`
}

// LeastSquares fits y = slope·x + intercept through points given as [x, y]
// pairs.
func (e *Engine) LeastSquares(points [][]float64) (*LineFitResult, error) {
	pts, ferr := toPoints(points)
	if ferr != nil {
		return nil, ferr
	}
	line, err := matrix.FitLine(pts, e.opts...)
	if err != nil {
		return nil, fail(OpLeastSquares, err)
	}
	if !finite(line.Slope, line.Intercept) {
		return nil, failNonFinite(OpLeastSquares)
	}

	return &LineFitResult{
		Slope:       line.Slope,
		Intercept:   line.Intercept,
		Equation:    fmt.Sprintf(equationFormat, line.Slope, line.Intercept),
		Explanation: explainFit,
	}, nil
}

// SVDResult is the payload of svd-compression.
type SVDResult struct {
	OriginalShape  [2]int      `json:"original_shape"`
	K              int         `json:"k"`
	Reconstructed  [][]float64 `json:"reconstructed"`
	SingularValues []float64   `json:"singular_values"` // descending
	Rank           int         `json:"rank"`            // singular values above the pivot tolerance
	RelativeError  float64     `json:"relative_error"`  // ‖A − A_k‖_F / ‖A‖_F
	Converged      bool        `json:"converged"`
	Explanation    string      `json:"explanation"`
}

// SVDCompression returns the rank-k reconstruction of m.
func (e *Engine) SVDCompression(m [][]float64, k int) (*SVDResult, error) {
	a, err := matrix.NewFromRows(m)
	if err != nil {
		return nil, fail(OpSVDCompression, err)
	}
	approx, f, err := matrix.LowRankApprox(a, k, e.opts...)
	if err != nil {
		return nil, fail(OpSVDCompression, err)
	}
	rel, err := relativeError(a, approx)
	if err != nil {
		return nil, fail(OpSVDCompression, err)
	}

	return &SVDResult{
		OriginalShape:  [2]int{a.Rows(), a.Cols()},
		K:              k,
		Reconstructed:  approx.ToRows(),
		SingularValues: f.Sigma,
		Rank:           f.Rank(e.opts...),
		RelativeError:  rel,
		Converged:      f.Converged,
		Explanation:    fmt.Sprintf(explainSVD, k),
	}, nil
}

// relativeError returns ‖a − approx‖_F / ‖a‖_F, or 0 for a zero matrix.
func relativeError(a, approx *matrix.Dense) (float64, error) {
	diff, err := matrix.Sub(a, approx)
	if err != nil {
		return 0, err
	}
	num, err := matrix.FrobeniusNorm(diff)
	if err != nil {
		return 0, err
	}
	den, err := matrix.FrobeniusNorm(a)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, nil
	}

	return num / den, nil
}

// toPoints converts [x, y] rows into points. Too few points is left to the
// kernel so the InsufficientData check lives in one place.
func toPoints(rows [][]float64) ([]matrix.Point, *Failure) {
	pts := make([]matrix.Point, len(rows))
	for i, r := range rows {
		if len(r) != 2 {
			return nil, &Failure{
				Op:      OpLeastSquares,
				Kind:    InvalidInput,
				Message: fmt.Sprintf("point %d must have exactly 2 coordinates, got %d", i, len(r)),
				err:     matrix.ErrBadShape,
			}
		}
		pts[i] = matrix.Point{X: r[0], Y: r[1]}
	}

	return pts, nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}

// formatVec renders v as "[1, 2.5, -3]".
func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
