package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	envProjectDir = "STEPLOG_PROJECT_DIR"
	envBackupDir  = "STEPLOG_BACKUP_DIR"
	envCatalog    = "STEPLOG_CATALOG"
)

// Load reads the config file at path, then applies STEPLOG_* environment
// overrides and defaults. An empty path skips the file and resolves the
// config from the environment alone.
func Load(path string) (*Config, error) {
	cfg := Config{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	if v, ok := os.LookupEnv(envProjectDir); ok {
		cfg.ProjectDir = v
	}
	if v, ok := os.LookupEnv(envBackupDir); ok {
		cfg.BackupDir = v
	}
	if v, ok := os.LookupEnv(envCatalog); ok {
		cfg.CatalogPath = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
