// Package config provides configuration management for the pins CLI.
//
// Values are layered from defaults, a YAML file, PINS_ environment
// variables and explicitly set flags, in increasing order of precedence.
package config

import (
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/state"
)

// Default configuration values.
const (
	DefaultConfigFile = "pins.yaml"
	DefaultDriver     = state.DriverSQLite
	DefaultStateFile  = ".pins/pins.db"
	DefaultPort       = 8765
	DefaultBasePath   = "/-/pins"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultOutput     = "auto" // TTY=text, otherwise json
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nested keys: PINS_SERVER__PORT sets server.port.
const EnvPrefix = "PINS_"

// DatabaseConfig selects the pin store backend.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	DSN    string `koanf:"dsn"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	BasePath      string `koanf:"base_path"`
	SessionSecret string `koanf:"session_secret"`
	JWTSecret     string `koanf:"jwt_secret"`
}

// MetadataConfig holds static titles and descriptions for pinned resources.
type MetadataConfig struct {
	Databases map[string]metadata.Database `koanf:"databases"`
}

// Config holds all CLI configuration options.
type Config struct {
	LogLevel     string              `koanf:"log_level"`
	LogFormat    string              `koanf:"log_format"`
	OutputFormat string              `koanf:"output"`
	Database     DatabaseConfig      `koanf:"database"`
	Server       ServerConfig        `koanf:"server"`
	Permissions  map[string][]string `koanf:"permissions"`
	Metadata     MetadataConfig      `koanf:"metadata"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		OutputFormat: DefaultOutput,
		Database: DatabaseConfig{
			Driver: DefaultDriver,
			Path:   DefaultStateFile,
		},
		Server: ServerConfig{
			Port:     DefaultPort,
			BasePath: DefaultBasePath,
		},
	}
}

// StateConfig converts the database section into a store configuration.
func (c *Config) StateConfig() state.Config {
	return state.Config{
		Driver: c.Database.Driver,
		Path:   c.Database.Path,
		DSN:    c.Database.DSN,
	}
}
