// Package database provides the PostgreSQL connection pool used by the
// archiver. The HTTP server keeps all state in memory and never connects.
package database
