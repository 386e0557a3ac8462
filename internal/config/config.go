package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

type Config struct {
	// MaxRecords caps the record count of a single request. This is
	// the engine's only backpressure mechanism.
	MaxRecords int `json:"max_records" mapstructure:"max_records"`

	// DefaultFormat is used when a request carries no format tag.
	DefaultFormat string `json:"default_format" mapstructure:"default_format"`

	// SchemaDir optionally points at a directory of custom YAML schema
	// definitions registered at startup.
	SchemaDir string `json:"schema_dir" mapstructure:"schema_dir"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.MaxRecords == 0 {
		cfg.MaxRecords = 1000
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = string(types.FormatSQL)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxRecords <= 0 {
		return fmt.Errorf("max_records must be positive, got %d", c.MaxRecords)
	}
	if _, ok := types.ParseFormat(c.DefaultFormat); !ok {
		return fmt.Errorf("unsupported default_format: %s", c.DefaultFormat)
	}
	return nil
}

func (c *Config) Format() types.Format {
	f, _ := types.ParseFormat(c.DefaultFormat)
	return f
}
