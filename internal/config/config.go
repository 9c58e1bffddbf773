package config

import "time"

// Config is the root configuration shared by the server and archiver binaries.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Data     DataConfig     `yaml:"data"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Archiver ArchiverConfig `yaml:"archiver"`
	Heatmap  HeatmapConfig  `yaml:"heatmap"`
}

// InstanceConfig identifies this deployment.
type InstanceConfig struct {
	ID string `yaml:"id"`
	AZ string `yaml:"az"`
}

// DataConfig locates and describes the source price file.
type DataConfig struct {
	Path string `yaml:"path"` // Path to the delimited price file (e.g., data/ge.us.txt)

	// DateFormats are extra Go time layouts tried, in order, after the
	// default 2006-01-02 when parsing the Date column.
	DateFormats []string `yaml:"date_formats"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	PreviewRows     int           `yaml:"preview_rows"` // Rows shown on the index page
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds the Postgres connection used by the archiver.
// The server never opens a database connection; all of its state is in-memory.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ArchiverConfig holds batch settings for the archiver binary.
type ArchiverConfig struct {
	BatchSize int    `yaml:"batch_size"`
	Table     string `yaml:"table"`
}

// HeatmapConfig holds correlation heatmap rendering settings.
type HeatmapConfig struct {
	WidthPts  float64 `yaml:"width_pts"`  // Plot width in typographic points
	HeightPts float64 `yaml:"height_pts"` // Plot height in typographic points
	Divisions int     `yaml:"divisions"`  // Color palette divisions
}
