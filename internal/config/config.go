// Package config provides configuration loading for coderagd.
package config

import (
	"fmt"

	"github.com/fyrsmithlabs/coderagd/internal/logging"
)

// Config is the root configuration for the daemon.
type Config struct {
	Server  ServerConfig   `koanf:"server"`
	Logging logging.Config `koanf:"logging"`

	// TargetRepoPath is the single configured root used to synthesize
	// the default project entry when no explicit mappings are given.
	// Env: TARGET_REPO_PATH.
	TargetRepoPath string `koanf:"target_repo_path"`

	// Projects maps project namespaces to filesystem roots. When set,
	// the path registry is built from exactly these entries.
	Projects map[string]string `koanf:"projects"`
}

// ServerConfig holds the HTTP admin API configuration.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// GetProjectMappings returns the configured namespace to path mappings.
// It satisfies pathres.MappingSource.
func (c *Config) GetProjectMappings() map[string]string {
	return c.Projects
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if len(c.Projects) == 0 && c.TargetRepoPath == "" {
		return fmt.Errorf("either projects or target_repo_path must be set")
	}
	return nil
}

// applyDefaults fills in defaults for missing values.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9090
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
