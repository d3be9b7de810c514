// SPDX-License-Identifier: MIT
package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linstory/matrix"
	"github.com/katalvlaran/linstory/render"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestFitChart_PNG(t *testing.T) {
	pts := []matrix.Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}
	line, err := matrix.FitLine(pts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.FitChart(&buf, pts, line, render.DefaultCanvas()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestFitChart_SVG(t *testing.T) {
	pts := []matrix.Point{{X: -1, Y: 4}, {X: 1, Y: 0}}
	c := render.Canvas{WidthCm: 8, HeightCm: 6, Format: render.FormatSVG}

	var buf bytes.Buffer
	require.NoError(t, render.FitChart(&buf, pts, matrix.Line{Slope: -2, Intercept: 2}, c))
	assert.Contains(t, buf.String(), "<svg")
}

func TestSpectrumChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.SpectrumChart(&buf, []float64{5, 3, 0.5}, 2, render.DefaultCanvas()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestCharts_Errors(t *testing.T) {
	var buf bytes.Buffer
	c := render.DefaultCanvas()

	assert.ErrorIs(t, render.FitChart(&buf, nil, matrix.Line{}, c), render.ErrNoData)
	assert.ErrorIs(t, render.SpectrumChart(&buf, nil, 0, c), render.ErrNoData)
	assert.ErrorIs(t, render.SpectrumChart(&buf, []float64{1}, 2, c), matrix.ErrInvalidRank)

	pts := []matrix.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	bad := render.Canvas{WidthCm: 10, HeightCm: 10, Format: "gif"}
	assert.ErrorIs(t, render.FitChart(&buf, pts, matrix.Line{Slope: 1}, bad), render.ErrFormat)
	tiny := render.Canvas{WidthCm: 0, HeightCm: 10, Format: render.FormatPNG}
	assert.ErrorIs(t, render.FitChart(&buf, pts, matrix.Line{Slope: 1}, tiny), render.ErrSize)
	assert.Zero(t, buf.Len(), "nothing is written on error")
}
