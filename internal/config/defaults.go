package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDataPath        = "data/ge.us.txt"
	DefaultAddr            = ":8080"
	DefaultPreviewRows     = 100
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultBatchSize       = 1000
	DefaultArchiveTable    = "prices"
	DefaultHeatmapWidth    = 432 // 6in
	DefaultHeatmapHeight   = 432
	DefaultHeatmapDivs     = 255
)

func (c *Config) applyDefaults() {
	// Data defaults
	if c.Data.Path == "" {
		c.Data.Path = DefaultDataPath
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.PreviewRows == 0 {
		c.Server.PreviewRows = DefaultPreviewRows
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Archiver defaults
	if c.Archiver.BatchSize == 0 {
		c.Archiver.BatchSize = DefaultBatchSize
	}
	if c.Archiver.Table == "" {
		c.Archiver.Table = DefaultArchiveTable
	}

	// Heatmap defaults
	if c.Heatmap.WidthPts == 0 {
		c.Heatmap.WidthPts = DefaultHeatmapWidth
	}
	if c.Heatmap.HeightPts == 0 {
		c.Heatmap.HeightPts = DefaultHeatmapHeight
	}
	if c.Heatmap.Divisions == 0 {
		c.Heatmap.Divisions = DefaultHeatmapDivs
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
