package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linstory/engine"
	"github.com/katalvlaran/linstory/internal/config"
	"github.com/katalvlaran/linstory/matrix"
	"github.com/katalvlaran/linstory/render"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw charts of least-squares fits and singular-value spectra",
		Long: `Draw a chart as PNG or SVG. The format follows the --out extension,
falling back to render.format from the config.

Examples:
  linstory plot fit --input points.json --out fit.png
  linstory plot spectrum --input matrix.json -k 2 --out spectrum.svg`,
	}

	cmd.PersistentFlags().StringP("input", "i", "", "Request file (default stdin)")
	cmd.PersistentFlags().StringP("out", "o", "", "Output image path (required)")

	cmd.AddCommand(newPlotFitCmd(), newPlotSpectrumCmd())

	return cmd
}

func newPlotFitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit",
		Short: "Scatter the points of a least-squares request with its fitted line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, req, err := plotSetup(cmd)
			if err != nil {
				return err
			}
			fit, err := rt.engine.LeastSquares(req.Points)
			if err != nil {
				return err
			}
			pts := make([]matrix.Point, len(req.Points))
			for i, p := range req.Points {
				pts[i] = matrix.Point{X: p[0], Y: p[1]}
			}
			line := matrix.Line{Slope: fit.Slope, Intercept: fit.Intercept}

			return writeChart(cmd, rt.cfg, func(f *os.File, c render.Canvas) error {
				return render.FitChart(f, pts, line, c)
			})
		},
	}
}

func newPlotSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Bar chart of singular values, highlighting the top k",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, req, err := plotSetup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("k") {
				req.K, _ = cmd.Flags().GetInt("k")
			}
			if req.K == 0 {
				req.K = 1
			}
			res, err := rt.engine.SVDCompression(req.Matrix, req.K)
			if err != nil {
				return err
			}

			return writeChart(cmd, rt.cfg, func(f *os.File, c render.Canvas) error {
				return render.SpectrumChart(f, res.SingularValues, res.K, c)
			})
		},
	}

	cmd.Flags().Int("k", 0, "Rank to highlight (default: request k, else 1)")

	return cmd
}

func plotSetup(cmd *cobra.Command) (*host, engine.Request, error) {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil, engine.Request{}, fmt.Errorf("--out is required")
	}
	rt, err := loadRuntime(cmd)
	if err != nil {
		return nil, engine.Request{}, err
	}
	input, _ := cmd.Flags().GetString("input")
	data, err := readInput(cmd, input)
	if err != nil {
		return nil, engine.Request{}, err
	}
	req, err := engine.DecodeRequest(data)
	if err != nil {
		return nil, engine.Request{}, err
	}
	return rt, req, nil
}

// writeChart creates the --out file and draws into it. A partially written
// file is removed on failure.
func writeChart(cmd *cobra.Command, cfg *config.Config, draw func(*os.File, render.Canvas) error) error {
	out, _ := cmd.Flags().GetString("out")
	canvas := render.Canvas{
		WidthCm:  cfg.Render.WidthCm,
		HeightCm: cfg.Render.HeightCm,
		Format:   cfg.Render.Format,
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), "."); ext != "" {
		canvas.Format = ext
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := draw(f, canvas); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"written": out, "format": canvas.Format})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
