package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linstory/engine"
	"github.com/katalvlaran/linstory/internal/logging"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many requests concurrently",
		Long: `Evaluate a list of requests, each carrying its own "op" field.

Input is either a JSON array of requests or JSON Lines (one request per
line). Responses are written as a JSON array in request order.

Example:
  linstory batch --input requests.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			reqs, err := decodeRequests(data)
			if err != nil {
				return err
			}

			start := time.Now()
			resps, err := rt.engine.Batch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			failed := 0
			for i, r := range resps {
				if !r.OK {
					failed++
				}
				logging.Bodies(cmd.Context(), rt.log, string(reqs[i].Op), reqs[i], r)
			}
			rt.log.Info("batch evaluated", "requests", len(reqs), "failed", failed, "elapsed", time.Since(start))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resps)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Requests file (default stdin)")

	return cmd
}

// decodeRequests accepts a JSON array or JSON Lines. Blank lines are skipped.
func decodeRequests(data []byte) ([]engine.Request, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var reqs []engine.Request
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, fmt.Errorf("decoding request array: %w", err)
		}
		return reqs, nil
	}

	var reqs []engine.Request
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		req, err := engine.DecodeRequest(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}
