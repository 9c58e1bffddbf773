package config

import (
	"errors"
	"fmt"
)

// Validate checks the sections every binary needs: instance, data, server,
// and heatmap. Database settings are checked separately by ValidateArchiver.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}
	if c.Data.Path == "" {
		return errors.New("data.path is required")
	}

	if c.Server.PreviewRows < 1 {
		return errors.New("server.preview_rows must be >= 1")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("server timeouts must be >= 0")
	}

	if c.Heatmap.WidthPts <= 0 || c.Heatmap.HeightPts <= 0 {
		return fmt.Errorf("heatmap dimensions must be > 0, got %gx%g", c.Heatmap.WidthPts, c.Heatmap.HeightPts)
	}
	if c.Heatmap.Divisions < 2 {
		return fmt.Errorf("heatmap.divisions must be >= 2, got %d", c.Heatmap.Divisions)
	}

	return nil
}

// ValidateArchiver runs Validate plus the database and batch checks the
// archiver binary requires.
func (c *Config) ValidateArchiver() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := c.Database.Postgres.validate("database.postgres"); err != nil {
		return err
	}

	if c.Archiver.BatchSize < 1 {
		return errors.New("archiver.batch_size must be >= 1")
	}
	if c.Archiver.Table == "" {
		return errors.New("archiver.table is required")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
