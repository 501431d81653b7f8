package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pumpterm/errors"
	"pumpterm/logging"
)

// Config represents the application configuration
type Config struct {
	REPL     REPLConfig     `json:"repl" yaml:"repl"`
	Defaults DefaultsConfig `json:"defaults" yaml:"defaults"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// REPLConfig contains interactive terminal configuration
type REPLConfig struct {
	Prompt      string `json:"prompt" yaml:"prompt"`
	HistoryFile string `json:"history_file" yaml:"history_file"`
	HistorySize int    `json:"history_size" yaml:"history_size"`
	ShowWelcome bool   `json:"show_welcome" yaml:"show_welcome"`
	Colors      bool   `json:"colors" yaml:"colors"`
}

// DefaultsConfig contains the field values a fresh or reset form starts with
type DefaultsConfig struct {
	PumpingLength string `json:"pumping_length" yaml:"pumping_length"`
	Language      string `json:"language" yaml:"language"`
}

// OutputConfig selects the renderer
type OutputConfig struct {
	Format string `json:"format" yaml:"format"`
}

// BatchConfig controls batch file evaluation
type BatchConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file" yaml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:      "pump> ",
			HistoryFile: "",
			HistorySize: 500,
			ShowWelcome: true,
			Colors:      false,
		},
		Defaults: DefaultsConfig{
			PumpingLength: "5",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "warning",
			Format: "text",
		},
	}
}

// LoggerSettings converts the logging section for the logging package
func (c *Config) LoggerSettings() logging.Settings {
	return logging.Settings{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   expandHome(c.Logging.File),
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults; an unreadable or malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.WrapError(err, errors.CodeConfigLoad, "failed to read config file").
			WithContext("path", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.WrapError(err, errors.CodeConfigLoad, "failed to parse JSON config").
				WithContext("path", path)
		}
	default:
		// YAML for .yaml, .yml and anything unrecognized
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.WrapError(err, errors.CodeConfigLoad, "failed to parse YAML config").
				WithContext("path", path)
		}
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	path = expandHome(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapError(err, errors.CodeConfigSave, "failed to create config directory").
			WithContext("path", dir)
	}

	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return errors.WrapError(err, errors.CodeConfigSave, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapError(err, errors.CodeConfigSave, "failed to write config file").
			WithContext("path", path)
	}

	return nil
}

// ResolveConfigPath picks the config file to load: the flag value, then the
// PUMPTERM_CONFIG environment variable, then the first default location that
// exists. It returns "" when nothing applies.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("PUMPTERM_CONFIG"); env != "" {
		return env
	}

	var defaultPaths []string
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".pumpterm", "config.yaml"))
	}
	defaultPaths = append(defaultPaths, "./config.yaml")

	for _, path := range defaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (c *Config) String() string {
	return fmt.Sprintf("prompt=%q output=%s log_level=%s default_p=%s",
		c.REPL.Prompt, c.Output.Format, c.Logging.Level, c.Defaults.PumpingLength)
}
