package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read once at startup
const (
	EnvMode         = "FRAMEKIT_ENV"
	EnvDevServerURL = "FRAMEKIT_DEV_SERVER_URL"
	EnvLogLevel     = "FRAMEKIT_LOG_LEVEL"
	EnvLogJSON      = "FRAMEKIT_LOG_JSON"
	EnvConfigFile   = "FRAMEKIT_CONFIG"
)

// ProductionLiteral is the exact EnvMode value that selects the packaged build
const ProductionLiteral = "production"

// DefaultDevServerURL is where the UI dev server listens unless overridden
const DefaultDevServerURL = "http://localhost:8080"

// Mode selects where the window loads its content from
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ParseMode maps the raw environment value to a Mode.
// Only the exact production literal selects production; anything else, including empty, is development.
func ParseMode(value string) Mode {
	if value == ProductionLiteral {
		return ModeProduction
	}
	return ModeDevelopment
}

// Getenv is the environment lookup used by Load, usually os.Getenv
type Getenv func(key string) string

// parseBoolEnv reads an environment variable and parses it as a boolean.
// Returns the parsed value and a boolean indicating if the variable was present and valid.
func parseBoolEnv(getenv Getenv, key string) (bool, bool) {
	value := getenv(key)
	if value == "" {
		return false, false
	}

	// strconv.ParseBool handles: true/false, 1/0, t/f (case-insensitive)
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, true
	}

	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// Config holds the host process configuration
type Config struct {
	Mode Mode `yaml:"-"` // only ever set from EnvMode

	// Window settings
	Title            string `yaml:"title"`
	SingleInstanceID string `yaml:"singleInstanceID"` // Wails single-instance lock id

	// Development content source
	DevServerURL   string        `yaml:"devServerURL"`
	ProbeDevServer bool          `yaml:"probeDevServer"` // check the dev server answers at startup
	ProbeTimeout   time.Duration `yaml:"probeTimeout"`

	// Logging
	LogLevel string `yaml:"logLevel"`
	LogJSON  bool   `yaml:"logJSON"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:             ModeDevelopment,
		Title:            "framekit",
		SingleInstanceID: "io.framekit.desktop",
		DevServerURL:     DefaultDevServerURL,
		ProbeDevServer:   true,
		ProbeTimeout:     3 * time.Second,
		LogLevel:         "info",
		LogJSON:          true,
	}
}

// DevelopmentConfig returns a configuration for running against the UI dev server
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Mode = ModeDevelopment
	config.LogLevel = "debug"
	return config
}

// ProductionConfig returns a configuration for the packaged build
func ProductionConfig() *Config {
	config := DefaultConfig()
	config.Mode = ModeProduction
	config.ProbeDevServer = false
	return config
}

// ConfigForMode returns the preset for the given mode
func ConfigForMode(mode Mode) *Config {
	if mode == ModeProduction {
		return ProductionConfig()
	}
	return DevelopmentConfig()
}

// Load builds the configuration from the environment: mode preset, then the
// optional YAML file named by EnvConfigFile, then individual variables.
func Load(getenv Getenv) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	config := ConfigForMode(ParseMode(getenv(EnvMode)))

	if path := getenv(EnvConfigFile); path != "" {
		if err := config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	config.LoadFromEnvironment(getenv)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadFile overlays the fields present in a YAML file onto the configuration
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	mode := c.Mode
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.Mode = mode
	return nil
}

// LoadFromEnvironment overlays individual environment variables onto the configuration
func (c *Config) LoadFromEnvironment(getenv Getenv) {
	if devURL := getenv(EnvDevServerURL); devURL != "" {
		c.DevServerURL = devURL
	}

	if level := getenv(EnvLogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}

	if logJSON, present := parseBoolEnv(getenv, EnvLogJSON); present {
		c.LogJSON = logJSON
	}
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if strings.TrimSpace(c.SingleInstanceID) == "" {
		return fmt.Errorf("singleInstanceID cannot be empty")
	}

	// The dev server URL only matters when it is actually used
	if c.IsDevelopment() {
		u, err := url.Parse(c.DevServerURL)
		if err != nil {
			return fmt.Errorf("invalid devServerURL %q: %w", c.DevServerURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("devServerURL must use http or https, got %q", c.DevServerURL)
		}
		if u.Host == "" {
			return fmt.Errorf("devServerURL must include a host, got %q", c.DevServerURL)
		}
	}

	if c.ProbeTimeout < 0 {
		return fmt.Errorf("probeTimeout cannot be negative, got %v", c.ProbeTimeout)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q, must be one of debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// IsDevelopment returns true if content is loaded from the dev server
func (c *Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// IsProduction returns true if content is loaded from the packaged build
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}
