// Package config resolves the dashboard settings from an optional YAML file,
// a .env file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingDatabaseURL is returned when no store URL was configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")

// envFile is the local development override file.
const envFile = ".env"

// Config holds every runtime setting of the dashboard.
type Config struct {
	DatabaseURL  string        `yaml:"database_url"`
	DatabaseName string        `yaml:"database_name"`
	Collection   string        `yaml:"collection"`
	Port         string        `yaml:"port"`
	StoreTimeout time.Duration `yaml:"store_timeout"`
	AssetsDir    string        `yaml:"assets_dir"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	AdminEnabled bool          `yaml:"admin_enabled"`
	Migrate      bool          `yaml:"migrate"`

	// EnvFile is the .env file that was applied, empty when there was none.
	EnvFile string `yaml:"-"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		DatabaseName: "SDG",
		Collection:   "Apple",
		Port:         "8080",
		StoreTimeout: 30 * time.Second,
		AssetsDir:    "assets",
		LogLevel:     "info",
		LogFormat:    "json",
		AdminEnabled: true,
		Migrate:      true,
	}
}

// Load builds the configuration. The YAML file named by SDG_CONFIG is read
// first, then .env (if present) and the environment override it.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("SDG_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	// Load .env file if it exists (local dev)
	if err := godotenv.Load(envFile); err == nil {
		cfg.EnvFile = envFile
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Collection == "" {
		return errors.New("collection must not be empty")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("DATABASE_NAME", &cfg.DatabaseName)
	str("COLLECTION", &cfg.Collection)
	str("PORT", &cfg.Port)
	str("ASSETS_DIR", &cfg.AssetsDir)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	if v, ok := lookup("STORE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = d
	}
	for key, dst := range map[string]*bool{
		"ADMIN_ENABLED": &cfg.AdminEnabled,
		"MIGRATE":       &cfg.Migrate,
	} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}
