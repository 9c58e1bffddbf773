package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred content type of a column.
type Kind int

const (
	// KindText is the fallback for columns with non-numeric content.
	KindText Kind = iota

	// KindNumber marks columns whose every non-empty cell parses as a float.
	KindNumber

	// KindDate marks the parsed Date column.
	KindDate
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Column is a named, typed column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Date is an optional calendar date. Valid is false when the source cell
// was empty or failed to parse.
type Date struct {
	Time  time.Time
	Valid bool
}

// Record is one row: raw cell text aligned with the table's columns, plus
// the parsed Date when the table has a Date column.
type Record struct {
	Fields []string
	Date   Date
}

// Table is an ordered collection of Records sharing a schema. Row order
// from the source file is preserved. Tables are never mutated after Load;
// they are safe for concurrent reads.
type Table struct {
	Columns []Column
	Records []Record

	dateIdx int // index of the Date column, -1 if absent
}

// HasDate reports whether the table has a Date column.
func (t *Table) HasDate() bool { return t.dateIdx >= 0 }

// DateIndex returns the index of the Date column, or -1 if absent.
func (t *Table) DateIndex() int { return t.dateIdx }

// NumRows returns the number of records.
func (t *Table) NumRows() int { return len(t.Records) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// NumericColumns returns the indexes of all KindNumber columns in order.
func (t *Table) NumericColumns() []int {
	var idx []int
	for i, c := range t.Columns {
		if c.Kind == KindNumber {
			idx = append(idx, i)
		}
	}
	return idx
}

// Float parses the cell at (row, col) as a float64. ok is false for empty
// or non-numeric cells.
func (t *Table) Float(row, col int) (v float64, ok bool) {
	s := strings.TrimSpace(t.Records[row].Fields[col])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// EmptyLike returns a zero-row table sharing this table's schema.
func (t *Table) EmptyLike() *Table {
	return &Table{
		Columns: t.Columns,
		dateIdx: t.dateIdx,
	}
}

// Clone returns an independent copy of the table. Records are value types
// over immutable cell text, so copying the record slice is sufficient.
func (t *Table) Clone() *Table {
	c := t.EmptyLike()
	c.Records = make([]Record, len(t.Records))
	copy(c.Records, t.Records)
	return c
}
