// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotandev/solseq/internal/errors"
)

// Config represents the general configuration for solseq
type Config struct {
	// LightColors selects the lighter diagram palette.
	LightColors bool `json:"light_colors,omitempty"`
	// OutputFile is the default output destination; empty means stdout.
	OutputFile string `json:"output_file,omitempty"`
	// SolcPath overrides compiler binary discovery.
	SolcPath string `json:"solc_path,omitempty"`
	// CachePath is the diagram cache directory.
	CachePath string `json:"cache_path,omitempty"`
	LogLevel  string `json:"log_level,omitempty"`
	// NoCache disables the diagram cache entirely.
	NoCache bool `json:"no_cache,omitempty"`
	// TelemetryEnabled turns on OTLP trace export.
	// Set via telemetry_enabled in config or SOLSEQ_TELEMETRY=true.
	TelemetryEnabled bool `json:"telemetry_enabled,omitempty"`
	// TelemetryEndpoint is the OTLP HTTP endpoint traces are sent to.
	TelemetryEndpoint string `json:"telemetry_endpoint,omitempty"`
}

var defaultConfig = &Config{
	LogLevel:  "info",
	CachePath: filepath.Join(os.ExpandEnv("$HOME"), ".solseq", "cache"),
}

// GetConfigPath returns the solseq configuration directory.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.WrapConfigError("failed to locate config directory", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "solseq"), nil
}

// GetGeneralConfigPath returns the path to the general configuration file
func GetGeneralConfigPath() (string, error) {
	configDir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the general configuration from disk (JSON format),
// falling back to defaults when no file exists.
func LoadConfig() (*Config, error) {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapConfigError("failed to read config file", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError("failed to parse config file", err)
	}

	return config, nil
}

// Load loads the configuration from the config file and then applies
// SOLSEQ_* environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	cfg.SolcPath = getEnv("SOLSEQ_SOLC_PATH", cfg.SolcPath)
	cfg.CachePath = getEnv("SOLSEQ_CACHE_PATH", cfg.CachePath)
	cfg.LogLevel = getEnv("SOLSEQ_LOG_LEVEL", cfg.LogLevel)
	cfg.TelemetryEndpoint = getEnv("SOLSEQ_TELEMETRY_ENDPOINT", cfg.TelemetryEndpoint)

	switch strings.ToLower(os.Getenv("SOLSEQ_TELEMETRY")) {
	case "1", "true", "yes":
		cfg.TelemetryEnabled = true
	}
	switch strings.ToLower(os.Getenv("SOLSEQ_LIGHT_COLORS")) {
	case "1", "true", "yes":
		cfg.LightColors = true
	}
	switch strings.ToLower(os.Getenv("SOLSEQ_NO_CACHE")) {
	case "1", "true", "yes":
		cfg.NoCache = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk (JSON format)
func SaveConfig(config *Config) error {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return errors.WrapConfigError("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.WrapConfigError("failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.WrapConfigError("failed to write config file", err)
	}

	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.WrapValidationError("log_level must be one of: debug, info, warn, error")
	}

	if c.TelemetryEnabled && c.TelemetryEndpoint == "" {
		return errors.WrapValidationError("telemetry_endpoint is required when telemetry is enabled")
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LightColors: %t, Output: %s, LogLevel: %s, CachePath: %s}",
		c.LightColors, c.OutputFile, c.LogLevel, c.CachePath,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  defaultConfig.LogLevel,
		CachePath: defaultConfig.CachePath,
	}
}

func (c *Config) WithSolcPath(path string) *Config {
	c.SolcPath = path
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

func (c *Config) WithCachePath(path string) *Config {
	c.CachePath = path
	return c
}
