package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rickgao/stockboard/internal/dataset"
)

// Matrix is a pairwise Pearson correlation matrix over a table's numeric
// columns. Values is square with len(Columns) rows; Values[i][j] is the
// correlation between Columns[i] and Columns[j], NaN when a pair has no
// defined correlation (fewer than two usable rows, or zero variance).
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// minPairRows is the smallest sample for which a correlation is defined.
const minPairRows = 2

// Correlations computes the correlation matrix over t's numeric columns.
//
// Cells that fail to parse are dropped pairwise: a row contributes to the
// (i, j) entry only when both cells parse. ok is false when the table has
// fewer than two numeric columns or fewer than two rows, in which case the
// caller omits the corresponding heatmap.
func Correlations(t *dataset.Table) (m *Matrix, ok bool) {
	cols := t.NumericColumns()
	if len(cols) < 2 || t.NumRows() < minPairRows {
		return nil, false
	}

	// Parse each numeric column once.
	n := t.NumRows()
	values := make([][]float64, len(cols))
	valid := make([][]bool, len(cols))
	for i, col := range cols {
		values[i] = make([]float64, n)
		valid[i] = make([]bool, n)
		for row := 0; row < n; row++ {
			values[i][row], valid[i][row] = t.Float(row, col)
		}
	}

	m = &Matrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]float64, len(cols)),
	}
	for i, col := range cols {
		m.Columns[i] = t.Columns[col].Name
		m.Values[i] = make([]float64, len(cols))
	}

	for i := range cols {
		m.Values[i][i] = 1
		for j := i + 1; j < len(cols); j++ {
			r := pairCorrelation(values[i], valid[i], values[j], valid[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}

	return m, true
}

// pairCorrelation computes Pearson correlation over the rows where both
// columns have a usable value.
func pairCorrelation(xs []float64, xok []bool, ys []float64, yok []bool) float64 {
	px := make([]float64, 0, len(xs))
	py := make([]float64, 0, len(ys))
	for row := range xs {
		if xok[row] && yok[row] {
			px = append(px, xs[row])
			py = append(py, ys[row])
		}
	}
	if len(px) < minPairRows {
		return math.NaN()
	}
	return stat.Correlation(px, py, nil)
}
