/*
 * config_test.go, part of trajio.
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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "fac", config.Format)
	assert.Equal(t, 1, config.Skip)
	assert.Equal(t, dcd.DefaultRemarks, config.Writer.Remarks)
	assert.True(t, config.Writer.UnitCell)
	assert.Equal(t, "zst", config.Compression.Codec)
	assert.Equal(t, 3, config.Compression.Level)
	assert.False(t, config.Logging.Verbose)
	assert.NoError(t, config.Validate())
	assert.Len(t, config.WriterOptions(), 4)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
		expected := DefaultConfig()
		expected.Format = "afc"
		expected.Skip = 5
		expected.Writer.Delta = 0.002
		expected.Compression = Compression{Codec: "gz", Level: 9}
		expected.Logging.Verbose = true

		require.NoError(t, SaveConfig(expected, configPath))
		assert.True(t, ConfigExists(configPath))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expected, loaded)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("skip: 10\ncompression:\n  codec: lzw\n"), 0644))
		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 10, loaded.Skip)
		assert.Equal(t, "lzw", loaded.Compression.Codec)
		assert.Equal(t, "fac", loaded.Format)
		assert.Equal(t, dcd.DefaultRemarks, loaded.Writer.Remarks)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.False(t, ConfigExists(filepath.Join(t.TempDir(), "nope.yaml")))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("skip: [1, 2\n"), 0644))
		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: xyz\n"), 0644))
		_, err := LoadConfig(configPath)
		assert.ErrorIs(t, err, trajio.ErrInvalidFormat)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"skip", func(c *Config) { c.Skip = 0 }},
		{"step", func(c *Config) { c.Writer.Step = 0 }},
		{"codec", func(c *Config) { c.Compression.Codec = "bz2" }},
		{"zstd level", func(c *Config) { c.Compression.Level = 30 }},
		{"gzip level", func(c *Config) { c.Compression = Compression{Codec: "gz", Level: 12} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.modify(c)
			assert.ErrorIs(t, c.Validate(), trajio.ErrInvalidArgument)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Logger(&buf).Print("quiet")
	assert.Empty(t, buf.String())

	c.Logging.Verbose = true
	c.Logger(&buf).Print("loud")
	assert.Contains(t, buf.String(), "dcdtool: ")
	assert.Contains(t, buf.String(), "loud")
}
