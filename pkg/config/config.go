package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/telemetry"
)

// Config is the top-level coordinator configuration.
type Config struct {
	// DataDir is the directory holding the fleet sheets:
	// pilot_roster.csv, drone_fleet.csv, missions.csv.
	DataDir string `yaml:"data_dir" validate:"required"`

	// AuditDB is the path of the SQLite audit database. Empty disables
	// audit logging.
	AuditDB string `yaml:"audit_db"`

	// Logging configures structured logging.
	Logging telemetry.LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics telemetry.MetricsConfig `yaml:"metrics"`

	// Server configures the HTTP API.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the HTTP API served by the serve command.
type ServerConfig struct {
	// ListenAddress is the host:port the API binds to.
	ListenAddress string `yaml:"listen_address" validate:"required"`

	// WatchData reloads the cached snapshot when files in DataDir change.
	WatchData bool `yaml:"watch_data"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		DataDir: "data",
		AuditDB: "skyops.db",
		Logging: telemetry.DefaultLoggingConfig(),
		Metrics: telemetry.DefaultMetricsConfig(),
		Server: ServerConfig{
			ListenAddress: "127.0.0.1:8080",
			WatchData:     true,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and enum values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	return nil
}
