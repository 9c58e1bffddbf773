// Package server exposes the partitioned price data over HTTP.
//
// Routes:
//   - /             index page, first N rows of master
//   - /all          full master table (HTML fragment, unbounded)
//   - /timeframes   per-partition row counts (HTML fragment)
//   - /correlations heatmap page, one image per usable sub-partition
//   - /download     raw source file as an attachment
//   - /health       JSON health document
//   - /ws/rows      websocket stream of master rows
//
// All handlers read the immutable partition set injected at construction;
// nothing is mutated after startup, so no locking is involved.
package server
