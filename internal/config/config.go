package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zilvh/Vesta-Sries/internal/errors"
)

// Config represents the complete vesta configuration
type Config struct {
	// Scanning configuration
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanningConfig holds scanning-related settings
type ScanningConfig struct {
	// Number of concurrent probe workers
	WorkerPoolSize int `yaml:"worker_pool_size" json:"worker_pool_size"`

	// Timeout for a single TCP connect attempt
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`

	// Timeout for a single banner read
	BannerTimeout time.Duration `yaml:"banner_timeout" json:"banner_timeout"`

	// Default ports to scan when none are given
	DefaultPorts string `yaml:"default_ports" json:"default_ports"`

	// Capture banners from open ports
	GrabBanners bool `yaml:"grab_banners" json:"grab_banners"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			WorkerPoolSize: 100,
			ConnectTimeout: 500 * time.Millisecond,
			BannerTimeout:  2 * time.Second,
			DefaultPorts:   "1-1024",
			GrabBanners:    false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load loads configuration from a file. Defaults are returned when the
// file does not exist; a broken or invalid file is an error.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Scanning.WorkerPoolSize < 1 {
		return errors.NewConfigFieldError(errors.CodeValidation,
			"worker pool size must be positive", "scanning.worker_pool_size", c.Scanning.WorkerPoolSize)
	}
	if c.Scanning.ConnectTimeout <= 0 {
		return errors.NewConfigFieldError(errors.CodeValidation,
			"connect timeout must be positive", "scanning.connect_timeout", c.Scanning.ConnectTimeout)
	}
	if c.Scanning.BannerTimeout <= 0 {
		return errors.NewConfigFieldError(errors.CodeValidation,
			"banner timeout must be positive", "scanning.banner_timeout", c.Scanning.BannerTimeout)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewConfigFieldError(errors.CodeValidation,
			"unknown log level", "logging.level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.NewConfigFieldError(errors.CodeValidation,
			"unknown log format", "logging.format", c.Logging.Format)
	}

	return nil
}
