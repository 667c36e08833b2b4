package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Schema   SchemaConfig   `toml:"schema"`

	Debug bool `toml:"-"` // Set by CLI/env, not loaded from file
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// SchemaConfig controls where schema/template files are cached and fetched.
type SchemaConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ApplyDefaults fills in every unset value with its default.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Database.Path == "" {
		c.Database.Path = "config/quickstart.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Schema.Dir == "" {
		c.Schema.Dir = "json-schema"
	}
	if c.Schema.BaseURL == "" {
		c.Schema.BaseURL = "https://raw.githubusercontent.com/Kometa-Team/Kometa"
	}
}
