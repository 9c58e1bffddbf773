// Package dataset loads the delimited historical price file into an
// in-memory Table.
//
// Conventions:
//   - Cells are kept as raw text; numeric values are parsed on demand.
//   - The Date column is parsed eagerly, best-effort, into a typed
//     optional Date (invalid cells are marked missing, never fatal).
//   - The legacy OpenInt column is dropped at load time. This is fixed
//     behavior, not configurable.
//   - Tables are immutable after Load and safe for concurrent reads.
package dataset
