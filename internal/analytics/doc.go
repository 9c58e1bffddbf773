// Package analytics computes pairwise correlation matrices over the
// numeric columns of a price table.
package analytics
