package partition

import (
	"time"

	"github.com/rickgao/stockboard/internal/dataset"
)

// Range is a closed date interval: both endpoints are members.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the interval, inclusive on
// both ends. A boundary date belongs to its own interval, never the
// adjacent one.
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// Fixed reporting periods. These define the meaning of the early/mid/
// recent views and are deliberately not configurable.
var (
	EarlyRange  = Range{day(1962, 1, 2), day(1989, 12, 31)}
	MidRange    = Range{day(1990, 1, 1), day(2004, 12, 31)}
	RecentRange = Range{day(2005, 1, 1), day(2017, 11, 10)}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Set holds the four partitions served for the lifetime of the process.
// It is computed once at startup and never mutated; handlers read it
// concurrently without synchronization.
type Set struct {
	Master *dataset.Table
	Early  *dataset.Table
	Mid    *dataset.Table
	Recent *dataset.Table
}

// Counts holds per-partition row counts for the timeframes view.
type Counts struct {
	Master int
	Early  int
	Mid    int
	Recent int
}

// Split partitions master into the three fixed date ranges.
//
// Rows whose Date is missing, invalid, or outside every range stay only
// in Master. When the table has no Date column the three sub-partitions
// are independent copies of Master. Split is pure: it never modifies its
// input, and the same input always yields the same output.
func Split(master *dataset.Table) *Set {
	if !master.HasDate() {
		return &Set{
			Master: master,
			Early:  master.Clone(),
			Mid:    master.Clone(),
			Recent: master.Clone(),
		}
	}

	s := &Set{
		Master: master,
		Early:  master.EmptyLike(),
		Mid:    master.EmptyLike(),
		Recent: master.EmptyLike(),
	}

	for _, rec := range master.Records {
		if !rec.Date.Valid {
			continue
		}
		switch {
		case EarlyRange.Contains(rec.Date.Time):
			s.Early.Records = append(s.Early.Records, rec)
		case MidRange.Contains(rec.Date.Time):
			s.Mid.Records = append(s.Mid.Records, rec)
		case RecentRange.Contains(rec.Date.Time):
			s.Recent.Records = append(s.Recent.Records, rec)
		}
	}

	return s
}

// Counts returns the row count of each partition.
func (s *Set) Counts() Counts {
	return Counts{
		Master: s.Master.NumRows(),
		Early:  s.Early.NumRows(),
		Mid:    s.Mid.NumRows(),
		Recent: s.Recent.NumRows(),
	}
}
