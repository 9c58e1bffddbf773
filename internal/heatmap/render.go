package heatmap

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rickgao/stockboard/internal/analytics"
)

// Options controls heatmap rendering.
type Options struct {
	Title     string
	WidthPts  float64 // Plot width in typographic points
	HeightPts float64 // Plot height in typographic points
	Divisions int     // Color palette divisions
}

// grid adapts a correlation matrix to plotter.GridXYZ. Row 0 is drawn at
// the bottom of the plot.
type grid struct {
	m *analytics.Matrix
}

func (g grid) Dims() (c, r int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g grid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// Render draws the correlation matrix as a color-coded grid and returns
// the PNG bytes. The color scale is fixed to [-1, 1] so images for
// different partitions are directly comparable. Rendering is
// deterministic for a given matrix and options.
func Render(m *analytics.Matrix, opts Options) ([]byte, error) {
	if m == nil || len(m.Columns) < 2 {
		return nil, errors.New("heatmap: matrix needs at least two columns")
	}
	if opts.WidthPts <= 0 || opts.HeightPts <= 0 {
		return nil, fmt.Errorf("heatmap: invalid dimensions %gx%g", opts.WidthPts, opts.HeightPts)
	}
	if opts.Divisions < 2 {
		return nil, fmt.Errorf("heatmap: divisions must be >= 2, got %d", opts.Divisions)
	}

	pal := moreland.SmoothBlueRed().Palette(opts.Divisions)
	h := plotter.NewHeatMap(grid{m}, pal)
	h.Min = -1
	h.Max = 1

	p := plot.New()
	p.Title.Text = opts.Title
	p.Add(h)
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)
	p.X.Tick.Label.Rotation = math.Pi / 5
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	wt, err := p.WriterTo(vg.Points(opts.WidthPts), vg.Points(opts.HeightPts), "png")
	if err != nil {
		return nil, fmt.Errorf("render heatmap: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode heatmap png: %w", err)
	}
	return buf.Bytes(), nil
}
