package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/stockboard/internal/dataset"
)

// Config holds batch settings for the archive writer.
type Config struct {
	BatchSize int
	Table     string
}

// Metrics counts what a WriteTable run did.
type Metrics struct {
	Inserts   int64 // Rows newly inserted
	Conflicts int64 // Rows already present (ON CONFLICT DO NOTHING)
	Skipped   int64 // Rows without a valid date, never sent
	Flushes   int64 // Batches executed
}

// priceRow is one archived row. Nil pointers become SQL NULLs for cells
// that are absent or fail to parse.
type priceRow struct {
	Day    time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}

// Writer bulk-loads a price table into Postgres. Unlike a streaming
// writer there is no flush ticker: the input is a finite file, so
// WriteTable batches synchronously and returns when every row is flushed.
type Writer struct {
	cfg    Config
	db     *pgxpool.Pool
	logger *slog.Logger

	insertSQL string
}

// NewWriter creates a Writer for the configured table.
func NewWriter(cfg Config, db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		cfg:    cfg,
		db:     db,
		logger: logger,
		insertSQL: fmt.Sprintf(`
			INSERT INTO %s (day, open, high, low, close, volume)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (day) DO NOTHING
		`, cfg.Table),
	}
}

// WriteTable archives every dated row of t. Rows without a valid date are
// skipped and counted; re-running over the same file is idempotent.
func (w *Writer) WriteTable(ctx context.Context, t *dataset.Table) (Metrics, error) {
	var m Metrics

	if !t.HasDate() {
		return m, fmt.Errorf("table has no Date column, nothing to archive")
	}

	cols := resolveColumns(t)
	start := time.Now()

	batch := make([]priceRow, 0, w.cfg.BatchSize)
	for _, rec := range t.Records {
		row, ok := transform(rec, cols)
		if !ok {
			m.Skipped++
			continue
		}
		batch = append(batch, row)

		if len(batch) >= w.cfg.BatchSize {
			if err := w.flush(ctx, batch, &m); err != nil {
				return m, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := w.flush(ctx, batch, &m); err != nil {
			return m, err
		}
	}

	w.logger.Info("archive complete",
		"table", w.cfg.Table,
		"inserts", m.Inserts,
		"conflicts", m.Conflicts,
		"skipped", m.Skipped,
		"flushes", m.Flushes,
		"duration", time.Since(start),
	)
	return m, nil
}

// columnIndexes locates the price columns in the table, -1 when absent.
type columnIndexes struct {
	open, high, low, close, volume int
}

func resolveColumns(t *dataset.Table) columnIndexes {
	return columnIndexes{
		open:   t.ColumnIndex("Open"),
		high:   t.ColumnIndex("High"),
		low:    t.ColumnIndex("Low"),
		close:  t.ColumnIndex("Close"),
		volume: t.ColumnIndex("Volume"),
	}
}

// transform converts a record to a priceRow. ok is false for rows without
// a valid date.
func transform(rec dataset.Record, cols columnIndexes) (priceRow, bool) {
	if !rec.Date.Valid {
		return priceRow{}, false
	}
	return priceRow{
		Day:    rec.Date.Time,
		Open:   floatField(rec, cols.open),
		High:   floatField(rec, cols.high),
		Low:    floatField(rec, cols.low),
		Close:  floatField(rec, cols.close),
		Volume: intField(rec, cols.volume),
	}, true
}

func floatField(rec dataset.Record, idx int) *float64 {
	if idx < 0 {
		return nil
	}
	s := strings.TrimSpace(rec.Fields[idx])
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intField(rec dataset.Record, idx int) *int64 {
	if idx < 0 {
		return nil
	}
	s := strings.TrimSpace(rec.Fields[idx])
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	// Some exports write volume as a float.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}

// flush inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *Writer) flush(ctx context.Context, rows []priceRow, m *Metrics) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(w.insertSQL, r.Day, r.Open, r.High, r.Low, r.Close, r.Volume)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	conflicts := 0
	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return fmt.Errorf("batch insert: %w", err)
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	m.Inserts += int64(len(rows) - conflicts)
	m.Conflicts += int64(conflicts)
	m.Flushes++

	w.logger.Debug("flushed rows",
		"count", len(rows),
		"conflicts", conflicts,
	)
	return nil
}
