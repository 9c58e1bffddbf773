// Package archive bulk-loads the price table into Postgres.
//
// Target schema (one row per trading day):
//
//	CREATE TABLE prices (
//	    day    date PRIMARY KEY,
//	    open   double precision,
//	    high   double precision,
//	    low    double precision,
//	    close  double precision,
//	    volume bigint
//	);
//
// Writes are append-only with ON CONFLICT (day) DO NOTHING, so re-running
// the archiver over the same file is idempotent.
package archive
