package partition

import (
	"strings"
	"testing"
	"time"

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

func TestSplitClassifiesByRange(t *testing.T) {
	tbl := mustRead(t, `Date,Close
1962-01-02,1.0
1975-06-30,2.0
1995-03-15,3.0
2010-09-01,4.0
2017-11-10,5.0
`)

	s := Split(tbl)

	if got := s.Early.NumRows(); got != 2 {
		t.Errorf("Early rows = %d, want 2", got)
	}
	if got := s.Mid.NumRows(); got != 1 {
		t.Errorf("Mid rows = %d, want 1", got)
	}
	if got := s.Recent.NumRows(); got != 2 {
		t.Errorf("Recent rows = %d, want 2", got)
	}
	if got := s.Master.NumRows(); got != 5 {
		t.Errorf("Master rows = %d, want 5", got)
	}
}

func TestSplitBoundaries(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"1962-01-02", "early"},
		{"1989-12-31", "early"}, // last day of early, not mid
		{"1990-01-01", "mid"},   // first day of mid, not early
		{"2004-12-31", "mid"},
		{"2005-01-01", "recent"},
		{"2017-11-10", "recent"},
		{"1962-01-01", "none"}, // one day before early opens
		{"2017-11-11", "none"}, // one day after recent closes
	}

	for _, tt := range tests {
		tbl := mustRead(t, "Date,Close\n"+tt.date+",1.0\n")
		s := Split(tbl)

		got := "none"
		switch {
		case s.Early.NumRows() == 1:
			got = "early"
		case s.Mid.NumRows() == 1:
			got = "mid"
		case s.Recent.NumRows() == 1:
			got = "recent"
		}
		if got != tt.want {
			t.Errorf("Split(%s) classified as %s, want %s", tt.date, got, tt.want)
		}
		if s.Master.NumRows() != 1 {
			t.Errorf("Split(%s) master rows = %d, want 1", tt.date, s.Master.NumRows())
		}
	}
}

func TestSplitPartitionsAreDisjointSubsets(t *testing.T) {
	tbl := mustRead(t, `Date,Close
1980-01-07,1.0
1990-01-01,2.0
1999-12-31,3.0
2005-01-01,4.0
2016-02-29,5.0
2017-11-11,6.0
`)

	s := Split(tbl)

	for _, sub := range []*dataset.Table{s.Early, s.Mid, s.Recent} {
		for _, rec := range sub.Records {
			if !containsDate(s.Master, rec.Date.Time) {
				t.Errorf("sub-partition row %v missing from master", rec.Date.Time)
			}
		}
	}

	seen := map[time.Time]int{}
	for _, sub := range []*dataset.Table{s.Early, s.Mid, s.Recent} {
		for _, rec := range sub.Records {
			seen[rec.Date.Time]++
		}
	}
	for ts, n := range seen {
		if n > 1 {
			t.Errorf("date %v appears in %d partitions, want 1", ts, n)
		}
	}

	sum := s.Early.NumRows() + s.Mid.NumRows() + s.Recent.NumRows()
	if sum > s.Master.NumRows() {
		t.Errorf("sum of sub-partition rows = %d, exceeds master %d", sum, s.Master.NumRows())
	}
	// One row (2017-11-11) is outside every range, so the sum is strict.
	if sum != s.Master.NumRows()-1 {
		t.Errorf("sum of sub-partition rows = %d, want %d", sum, s.Master.NumRows()-1)
	}
}

func TestSplitSkipsInvalidDates(t *testing.T) {
	tbl := mustRead(t, `Date,Close
garbage,1.0
1995-03-15,2.0
`)

	s := Split(tbl)

	if s.Master.NumRows() != 2 {
		t.Errorf("Master rows = %d, want 2 (invalid dates stay in master)", s.Master.NumRows())
	}
	sum := s.Early.NumRows() + s.Mid.NumRows() + s.Recent.NumRows()
	if sum != 1 {
		t.Errorf("sub-partition rows = %d, want 1", sum)
	}
}

func TestSplitWithoutDateColumn(t *testing.T) {
	tbl := mustRead(t, `Open,Close
1.0,2.0
3.0,4.0
`)

	s := Split(tbl)

	for name, sub := range map[string]*dataset.Table{"early": s.Early, "mid": s.Mid, "recent": s.Recent} {
		if sub.NumRows() != tbl.NumRows() {
			t.Errorf("%s rows = %d, want %d (full copy when no Date column)", name, sub.NumRows(), tbl.NumRows())
		}
		if sub == tbl {
			t.Errorf("%s aliases master, want independent copy", name)
		}
		for i, rec := range sub.Records {
			for j, f := range rec.Fields {
				if f != tbl.Records[i].Fields[j] {
					t.Errorf("%s record %d field %d = %q, want %q", name, i, j, f, tbl.Records[i].Fields[j])
				}
			}
		}
	}
}

func TestSplitPreservesRowOrder(t *testing.T) {
	tbl := mustRead(t, `Date,Close
1970-01-05,1.0
1965-04-12,2.0
1980-07-21,3.0
`)

	s := Split(tbl)

	want := []string{"1970-01-05", "1965-04-12", "1980-07-21"}
	if s.Early.NumRows() != len(want) {
		t.Fatalf("Early rows = %d, want %d", s.Early.NumRows(), len(want))
	}
	for i, rec := range s.Early.Records {
		if rec.Fields[0] != want[i] {
			t.Errorf("Early[%d] = %q, want %q (source order preserved)", i, rec.Fields[0], want[i])
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	tbl := mustRead(t, `Date,Close
1980-01-07,1.0
1995-03-15,2.0
2010-09-01,3.0
`)

	a := Split(tbl)
	b := Split(tbl)

	if a.Early.NumRows() != b.Early.NumRows() ||
		a.Mid.NumRows() != b.Mid.NumRows() ||
		a.Recent.NumRows() != b.Recent.NumRows() {
		t.Error("two Split calls on the same table disagree")
	}
	if tbl.NumRows() != 3 {
		t.Errorf("Split mutated its input: master rows = %d, want 3", tbl.NumRows())
	}
}

func TestCounts(t *testing.T) {
	tbl := mustRead(t, `Date,Close
1980-01-07,1.0
1995-03-15,2.0
2010-09-01,3.0
2020-01-02,4.0
`)

	got := Split(tbl).Counts()
	want := Counts{Master: 4, Early: 1, Mid: 1, Recent: 1}
	if got != want {
		t.Errorf("Counts = %+v, want %+v", got, want)
	}
}

func containsDate(t *dataset.Table, ts time.Time) bool {
	for _, rec := range t.Records {
		if rec.Date.Valid && rec.Date.Time.Equal(ts) {
			return true
		}
	}
	return false
}
