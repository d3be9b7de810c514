// SPDX-License-Identifier: MIT
// Package engine: JSON host contract.
//
// A Request names one Op and carries the fields that Op reads; the others are
// ignored. Do never returns a Go error: every outcome, including an unknown
// operation, is a Response.

package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Request is one operation call as a host receives it.
type Request struct {
	Op     Op          `json:"op"`
	V1     []float64   `json:"v1,omitempty"`
	V2     []float64   `json:"v2,omitempty"`
	Matrix [][]float64 `json:"matrix,omitempty"`
	Vector []float64   `json:"vector,omitempty"`
	Target []float64   `json:"target,omitempty"`
	Points [][]float64 `json:"points,omitempty"`
	K      int         `json:"k,omitempty"`
}

// ErrorBody is the failure half of a Response.
type ErrorBody struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Response is the tagged outcome of a Request: OK with Result, or not OK
// with Error. A failed solve, inverse or eigen still carries its null result
// field (solution, inverse, results) for hosts expecting that shape.
type Response struct {
	Operation Op         `json:"operation"`
	OK        bool       `json:"ok"`
	Result    any        `json:"result,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
}

// Err returns the failure as an error, or nil for a successful response.
func (r Response) Err() error {
	if r.OK || r.Error == nil {
		return nil
	}

	return &Failure{Op: r.Operation, Kind: r.Error.Kind, Message: r.Error.Message}
}

// DecodeRequest parses a single JSON request.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decoding request: %w", err)
	}

	return req, nil
}

// Do evaluates req.
func (e *Engine) Do(req Request) Response {
	var (
		res any
		err error
	)
	switch req.Op {
	case OpVectorAdd:
		res, err = e.VectorAdd(req.V1, req.V2)
	case OpMatrixTransform:
		res, err = e.Transform(req.Matrix, req.Vector)
	case OpDotProduct:
		res, err = e.DotProduct(req.V1, req.V2)
	case OpSolveSystem:
		res, err = e.SolveSystem(req.Matrix, req.Target)
	case OpDeterminant:
		res, err = e.Determinant(req.Matrix)
	case OpMatrixInverse:
		res, err = e.Inverse(req.Matrix)
	case OpEigen:
		res, err = e.Eigen(req.Matrix)
	case OpLeastSquares:
		res, err = e.LeastSquares(req.Points)
	case OpSVDCompression:
		res, err = e.SVDCompression(req.Matrix, req.K)
	default:
		err = &Failure{
			Op:      req.Op,
			Kind:    InvalidInput,
			Message: fmt.Sprintf("unknown operation %q", req.Op),
			err:     ErrUnknownOp,
		}
	}

	if err != nil {
		return failureResponse(req.Op, err)
	}

	return Response{Operation: req.Op, OK: true, Result: res}
}

func failureResponse(op Op, err error) Response {
	resp := Response{
		Operation: op,
		Error:     &ErrorBody{Kind: KindOf(err), Message: err.Error()},
	}
	var f *Failure
	if errors.As(err, &f) {
		resp.Error.Message = f.Message
	}
	switch op {
	case OpSolveSystem:
		resp.Result = map[string]any{"solution": nil}
	case OpMatrixInverse:
		resp.Result = map[string]any{"inverse": nil}
	case OpEigen:
		resp.Result = map[string]any{"results": []EigenPair{}}
	}

	return resp
}
