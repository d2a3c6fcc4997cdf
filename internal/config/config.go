// Package config loads runtime settings from MEDREPORT_* environment variables
// and an optional config file, with defaults that need no setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MEDREPORT"

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	DataDir  string `mapstructure:"DATA_DIR"`
	DBPath   string `mapstructure:"DB_PATH"`

	// TaxonomyDir overrides the embedded taxonomy when set, and is watched for changes.
	TaxonomyDir    string `mapstructure:"TAXONOMY_DIR"`
	StrictTaxonomy bool   `mapstructure:"STRICT_TAXONOMY"`

	ProviderMaxRetries int           `mapstructure:"PROVIDER_MAX_RETRIES"`
	ProviderBackoff    time.Duration `mapstructure:"PROVIDER_BACKOFF"`
	MaxUploadBytes     int           `mapstructure:"MAX_UPLOAD_BYTES"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "HTTP_ADDR", "DATA_DIR", "DB_PATH",
	"TAXONOMY_DIR", "STRICT_TAXONOMY",
	"PROVIDER_MAX_RETRIES", "PROVIDER_BACKOFF", "MAX_UPLOAD_BYTES",
}

// Load reads configuration. configFile may be empty; a missing file is not an
// error unless it was named explicitly.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", "127.0.0.1:8787")
	v.SetDefault("DATA_DIR", defaultDataDir())
	v.SetDefault("DB_PATH", "")
	v.SetDefault("TAXONOMY_DIR", "")
	v.SetDefault("STRICT_TAXONOMY", false)
	v.SetDefault("PROVIDER_MAX_RETRIES", 3)
	v.SetDefault("PROVIDER_BACKOFF", "500ms")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		v.BindEnv(k)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "reports.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with.
func (c *Config) Validate() error {
	if c.ProviderMaxRetries < 0 {
		return fmt.Errorf("PROVIDER_MAX_RETRIES must be >= 0, got %d", c.ProviderMaxRetries)
	}
	if c.ProviderBackoff < 0 {
		return fmt.Errorf("PROVIDER_BACKOFF must be >= 0, got %s", c.ProviderBackoff)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0, got %d", c.MaxUploadBytes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// IsDev returns true in the development environment.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// defaultDataDir is ~/.medreport, or .medreport in the working directory when
// the home directory is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".medreport"
	}
	return filepath.Join(home, ".medreport")
}
