// Package heatmap renders correlation matrices as PNG color grids.
package heatmap
