/*
 * config.go, part of trajio.
 *
 * Copyright 2024 The trajio Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config holds the settings of the dcdtool program, stored as YAML.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"gopkg.in/yaml.v3"
)

// Config represents the dcdtool configuration
type Config struct {
	Format      string      `yaml:"format"` //axis order of extracted timeseries
	Skip        int         `yaml:"skip"`
	Writer      Writer      `yaml:"writer"`
	Compression Compression `yaml:"compression"`
	Logging     Logging     `yaml:"logging"`
}

// Writer contains the header values given to new trajectories
type Writer struct {
	Remarks  string  `yaml:"remarks"`
	Delta    float64 `yaml:"delta"`
	Step     int32   `yaml:"step"`
	UnitCell bool    `yaml:"unit_cell"`
}

// Compression contains the defaults for compressing trajectories
type Compression struct {
	Codec string `yaml:"codec"`
	Level int    `yaml:"level"`
}

// Logging contains logging configuration
type Logging struct {
	Prefix  string `yaml:"prefix"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Format: "fac",
		Skip:   1,
		Writer: Writer{
			Remarks:  dcd.DefaultRemarks,
			Delta:    1,
			Step:     1,
			UnitCell: true,
		},
		Compression: Compression{
			Codec: "zst",
			Level: 3,
		},
		Logging: Logging{
			Prefix: "dcdtool: ",
		},
	}
}

// Validate checks that the values in the configuration can be used.
func (c *Config) Validate() error {
	if err := trajio.CheckFormat(c.Format); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Skip < 1 {
		return fmt.Errorf("invalid config: skip must be at least 1, got %d: %w", c.Skip, trajio.ErrInvalidArgument)
	}
	if c.Writer.Step < 1 {
		return fmt.Errorf("invalid config: writer step must be at least 1, got %d: %w", c.Writer.Step, trajio.ErrInvalidArgument)
	}
	switch c.Compression.Codec {
	case "zst":
		if c.Compression.Level < 1 || c.Compression.Level > 22 {
			return fmt.Errorf("invalid config: zstd level %d not in [1,22]: %w", c.Compression.Level, trajio.ErrInvalidArgument)
		}
	case "gz":
		if c.Compression.Level < -2 || c.Compression.Level > 9 {
			return fmt.Errorf("invalid config: gzip level %d not in [-2,9]: %w", c.Compression.Level, trajio.ErrInvalidArgument)
		}
	case "lzw":
	default:
		return fmt.Errorf("invalid config: unknown compression codec %q: %w", c.Compression.Codec, trajio.ErrInvalidArgument)
	}
	return nil
}

// WriterOptions returns the options for dcd.NewWriter given by the configuration.
func (c *Config) WriterOptions() []dcd.Option {
	return []dcd.Option{
		dcd.WithRemarks(c.Writer.Remarks),
		dcd.WithDelta(c.Writer.Delta),
		dcd.WithStep(c.Writer.Step),
		dcd.WithUnitCell(c.Writer.UnitCell),
	}
}

// Logger returns a logger writing to w with the configured prefix. Unless logging is
// verbose, the logger discards everything.
func (c *Config) Logger(w io.Writer) *log.Logger {
	if !c.Logging.Verbose {
		w = io.Discard
	}
	return log.New(w, c.Logging.Prefix, log.LstdFlags)
}

// LoadConfig loads configuration from the specified path. Values missing from the file
// keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dcdtool.yaml"
	}

	// For Linux/macOS, use ~/.config/dcdtool/config.yaml
	return filepath.Join(homeDir, ".config", "dcdtool", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
