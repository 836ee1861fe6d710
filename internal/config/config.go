package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage backends selectable via SHIFTTRACKER_STORAGE.
const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	// DataDir is the root directory for the persisted tables.
	DataDir string `env:"SHIFTTRACKER_DATA_DIR" envDefault:"data"`

	// Storage selects the storage engine: csv (default, the flat-file contract) or
	// sqlite (embedded database behind the same repository port).
	Storage string `env:"SHIFTTRACKER_STORAGE" envDefault:"csv"`

	// AuditLog is the path of the change-trail file. Empty disables the trail.
	AuditLog string `env:"SHIFTTRACKER_AUDIT_LOG"`

	// LogLevel is the logrus level: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration from environment: %w", err)
	}

	if cfg.Storage != StorageCSV && cfg.Storage != StorageSQLite {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return &cfg, nil
}
