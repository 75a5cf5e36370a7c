package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
	"github.com/idilsaglam/jottings/internal/store"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "jottings.yaml"

// Config holds all jottings configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Location LocationConfig `yaml:"location"`
	Logging  LoggingConfig  `yaml:"logging"`
	UI       UIConfig       `yaml:"ui"`
}

// StoreConfig configures the local database.
type StoreConfig struct {
	Path    string `yaml:"path"`
	Variant string `yaml:"variant"` // notes, list
}

// LocationConfig configures where geo-tagged notes get their coordinate.
type LocationConfig struct {
	Provider  string  `yaml:"provider"` // static, none
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timeout   string  `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:    store.DefaultFileName,
			Variant: string(model.VariantNotes),
		},
		Location: LocationConfig{
			Provider:  "static",
			Latitude:  60.1699,
			Longitude: 24.9384,
			Timeout:   "10s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "jottings.log",
		},
		UI: UIConfig{
			Theme: "classic",
		},
	}
}

// Load reads a YAML config file on top of the defaults, then applies a
// .env file (if present) and environment overrides.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("JOTTINGS_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("JOTTINGS_VARIANT"); v != "" {
		c.Store.Variant = v
	}
	if v := os.Getenv("JOTTINGS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("JOTTINGS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("JOTTINGS_LOCATION_PROVIDER"); v != "" {
		c.Location.Provider = v
	}
	if v := os.Getenv("JOTTINGS_THEME"); v != "" {
		c.UI.Theme = v
	}
	for name, dst := range map[string]*float64{
		"JOTTINGS_LAT": &c.Location.Latitude,
		"JOTTINGS_LON": &c.Location.Longitude,
	} {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = f
	}
	return nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path is empty")
	}
	if _, err := model.ParseVariant(c.Store.Variant); err != nil {
		return fmt.Errorf("store.variant: %w", err)
	}
	if _, err := c.FixTimeout(); err != nil {
		return err
	}
	if _, err := c.LocationProvider(); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	return nil
}

// Variant returns the parsed store variant.
func (c *Config) Variant() model.Variant {
	v, err := model.ParseVariant(c.Store.Variant)
	if err != nil {
		return model.VariantNotes
	}
	return v
}

// FixTimeout parses Location.Timeout. Empty means no limit.
func (c *Config) FixTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Location.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Location.Timeout)
	if err != nil {
		return 0, fmt.Errorf("location.timeout: %w", err)
	}
	return d, nil
}

// LocationProvider builds the configured provider.
func (c *Config) LocationProvider() (location.Provider, error) {
	return location.New(c.Location.Provider, model.Coordinate{
		Latitude:  c.Location.Latitude,
		Longitude: c.Location.Longitude,
	})
}
