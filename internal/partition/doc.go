// Package partition splits the loaded price table into the fixed
// early/mid/recent reporting periods.
//
// The split runs exactly once at startup; the resulting Set is immutable
// shared state for every request handler.
package partition
