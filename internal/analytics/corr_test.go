package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/rickgao/stockboard/internal/dataset"
)

func mustRead(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return tbl
}

func TestCorrelationsPerfectlyCorrelated(t *testing.T) {
	tbl := mustRead(t, `Date,Open,Close
2000-01-03,1.0,2.0
2000-01-04,2.0,4.0
2000-01-05,3.0,6.0
`)

	m, ok := Correlations(tbl)
	if !ok {
		t.Fatal("Correlations ok = false, want true")
	}

	if len(m.Columns) != 2 {
		t.Fatalf("Columns = %v, want [Open Close]", m.Columns)
	}
	if m.Columns[0] != "Open" || m.Columns[1] != "Close" {
		t.Errorf("Columns = %v, want [Open Close]", m.Columns)
	}

	if got := m.Values[0][1]; math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(Open, Close) = %v, want 1", got)
	}
	if m.Values[0][1] != m.Values[1][0] {
		t.Error("matrix is not symmetric")
	}
	for i := range m.Values {
		if m.Values[i][i] != 1 {
			t.Errorf("diagonal[%d] = %v, want 1", i, m.Values[i][i])
		}
	}
}

func TestCorrelationsAnticorrelated(t *testing.T) {
	tbl := mustRead(t, `Up,Down
1.0,3.0
2.0,2.0
3.0,1.0
`)

	m, ok := Correlations(tbl)
	if !ok {
		t.Fatal("Correlations ok = false, want true")
	}
	if got := m.Values[0][1]; math.Abs(got+1) > 1e-12 {
		t.Errorf("corr(Up, Down) = %v, want -1", got)
	}
}

func TestCorrelationsTooFewNumericColumns(t *testing.T) {
	tbl := mustRead(t, `Date,Close
2000-01-03,1.0
2000-01-04,2.0
`)

	if _, ok := Correlations(tbl); ok {
		t.Error("Correlations ok = true with one numeric column, want false")
	}
}

func TestCorrelationsTooFewRows(t *testing.T) {
	tbl := mustRead(t, `Open,Close
1.0,2.0
`)

	if _, ok := Correlations(tbl); ok {
		t.Error("Correlations ok = true with one row, want false")
	}
}

func TestCorrelationsEmptyTable(t *testing.T) {
	tbl := mustRead(t, "Open,Close\n")

	if _, ok := Correlations(tbl); ok {
		t.Error("Correlations ok = true for empty table, want false")
	}
}

func TestCorrelationsZeroVarianceIsNaN(t *testing.T) {
	tbl := mustRead(t, `Flat,Close
5.0,1.0
5.0,2.0
5.0,3.0
`)

	m, ok := Correlations(tbl)
	if !ok {
		t.Fatal("Correlations ok = false, want true")
	}
	if !math.IsNaN(m.Values[0][1]) {
		t.Errorf("corr(Flat, Close) = %v, want NaN", m.Values[0][1])
	}
}

func TestCorrelationsDropsUnparseableCellsPairwise(t *testing.T) {
	// Open has one blank cell; blanks do not demote the column to text,
	// they are dropped pairwise instead.
	tbl := mustRead(t, `Open,High,Close
1.0,1.0,2.0
,9.9,0.0
2.0,2.0,4.0
3.0,3.0,6.0
`)

	m, ok := Correlations(tbl)
	if !ok {
		t.Fatal("Correlations ok = false, want true")
	}

	// Row 2 has an empty Open cell, so the (Open, Close) pair sees only
	// the perfectly-correlated rows.
	i := indexOf(t, m.Columns, "Open")
	j := indexOf(t, m.Columns, "Close")
	if got := m.Values[i][j]; math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(Open, Close) = %v, want 1 after pairwise drop", got)
	}
}

func indexOf(t *testing.T, names []string, name string) int {
	t.Helper()
	for i, n := range names {
		if n == name {
			return i
		}
	}
	t.Fatalf("column %s not in %v", name, names)
	return -1
}
