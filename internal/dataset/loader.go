package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names with special handling in the source file.
const (
	dateColumn    = "Date"
	openIntColumn = "OpenInt"
)

// DefaultDateLayout is the layout tried first when parsing Date cells.
const DefaultDateLayout = "2006-01-02"

type loader struct {
	layouts []string
	logger  *slog.Logger
}

// Option configures a Load or Read call.
type Option func(*loader)

// WithDateLayouts adds extra time layouts tried, in order, after the
// default layout when parsing Date cells.
func WithDateLayouts(layouts ...string) Option {
	return func(l *loader) {
		l.layouts = append(l.layouts, layouts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// Load reads the delimited price file at path into a Table.
//
// A missing file is a hard error wrapping fs.ErrNotExist; callers treat it
// as fatal at startup. The Date column, when present in the header, is
// parsed best-effort per cell (unparseable cells become an invalid Date,
// never an error). A legacy OpenInt column is dropped when present. Any
// other malformed-file condition propagates as an error.
func Load(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	t, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Read parses a delimited stream with a header row into a Table.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	l := &loader{
		layouts: []string{DefaultDateLayout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Header-only detection of the special columns.
	dateIdx := -1
	openIntIdx := -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case dateColumn:
			dateIdx = i
		case openIntColumn:
			openIntIdx = i
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	if openIntIdx >= 0 {
		header = dropField(header, openIntIdx)
		for i := range rows {
			rows[i] = dropField(rows[i], openIntIdx)
		}
		if dateIdx > openIntIdx {
			dateIdx--
		}
		l.logger.Debug("dropped legacy column", "column", openIntColumn)
	}

	t := &Table{
		Columns: make([]Column, len(header)),
		Records: make([]Record, 0, len(rows)),
		dateIdx: dateIdx,
	}
	for i, name := range header {
		t.Columns[i] = Column{Name: strings.TrimSpace(name)}
	}

	invalidDates := 0
	for _, fields := range rows {
		rec := Record{Fields: fields}
		if dateIdx >= 0 {
			rec.Date = l.parseDate(fields[dateIdx])
			if !rec.Date.Valid {
				invalidDates++
			}
		}
		t.Records = append(t.Records, rec)
	}

	inferKinds(t)

	if invalidDates > 0 {
		l.logger.Warn("unparseable dates treated as missing", "count", invalidDates)
	}

	return t, nil
}

// parseDate tries each configured layout in order. Empty and unparseable
// cells yield an invalid Date rather than an error.
func (l *loader) parseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range l.layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return Date{Time: ts, Valid: true}
		}
	}
	return Date{}
}

// inferKinds assigns a Kind to every column from its content: the Date
// column is KindDate, a column whose every non-empty cell parses as a
// float is KindNumber, anything else is KindText.
func inferKinds(t *Table) {
	for i := range t.Columns {
		if i == t.dateIdx {
			t.Columns[i].Kind = KindDate
			continue
		}
		t.Columns[i].Kind = inferKind(t, i)
	}
}

func inferKind(t *Table, col int) Kind {
	seen := false
	for _, rec := range t.Records {
		s := strings.TrimSpace(rec.Fields[col])
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return KindText
		}
		seen = true
	}
	if !seen {
		return KindText
	}
	return KindNumber
}

func dropField(fields []string, idx int) []string {
	if idx >= len(fields) {
		return fields
	}
	out := make([]string, 0, len(fields)-1)
	out = append(out, fields[:idx]...)
	return append(out, fields[idx+1:]...)
}
