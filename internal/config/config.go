/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package config holds the lz4stream tool configuration.

CONFIGURATION SOURCES (in order of precedence):
===============================================
1. Command-line switches (highest priority)
2. Environment variables (LZ4STREAM_* prefix)
3. Default values (lowest priority)

ENVIRONMENT VARIABLES:
======================

	LZ4STREAM_LEVEL            compression level (>=3 is high compression)
	LZ4STREAM_MODE             "parallel" or "sequential"
	LZ4STREAM_CONCURRENCY      worker count, 0 = number of CPUs
	LZ4STREAM_BLOCK_SIZE_ID    4..7 (64 KiB .. 4 MiB)
	LZ4STREAM_BLOCK_CHECKSUM   per-block checksums ("true"/"false")
	LZ4STREAM_STREAM_CHECKSUM  whole-content checksum ("true"/"false")
	LZ4STREAM_BLOCK_DEPENDENT  linked blocks ("true"/"false")
	LZ4STREAM_MMAP             mmap file input ("true"/"false")
	LZ4STREAM_LOG_LEVEL        debug, info, warn, error
	LZ4STREAM_LOG_JSON         JSON log output ("true"/"false")
*/
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvLevel          = "LZ4STREAM_LEVEL"
	EnvMode           = "LZ4STREAM_MODE"
	EnvConcurrency    = "LZ4STREAM_CONCURRENCY"
	EnvBlockSizeID    = "LZ4STREAM_BLOCK_SIZE_ID"
	EnvBlockChecksum  = "LZ4STREAM_BLOCK_CHECKSUM"
	EnvStreamChecksum = "LZ4STREAM_STREAM_CHECKSUM"
	EnvBlockDependent = "LZ4STREAM_BLOCK_DEPENDENT"
	EnvMmap           = "LZ4STREAM_MMAP"
	EnvLogLevel       = "LZ4STREAM_LOG_LEVEL"
	EnvLogJSON        = "LZ4STREAM_LOG_JSON"
)

// Config is the full tool configuration.
type Config struct {
	Level          int    `json:"level"`
	Mode           string `json:"mode"`
	Concurrency    int    `json:"concurrency"`
	BlockSizeID    int    `json:"block_size_id"`
	BlockChecksum  bool   `json:"block_checksum"`
	StreamChecksum bool   `json:"stream_checksum"`
	BlockDependent bool   `json:"block_dependent"`
	Mmap           bool   `json:"mmap"`
	LogLevel       string `json:"log_level"`
	LogJSON        bool   `json:"log_json"`
}

// DefaultConfig returns the format defaults: fast compression, parallel
// execution, 4 MiB independent blocks, stream checksum on.
func DefaultConfig() *Config {
	return &Config{
		Level:          0,
		Mode:           "parallel",
		Concurrency:    0,
		BlockSizeID:    7,
		BlockChecksum:  false,
		StreamChecksum: true,
		BlockDependent: false,
		Mmap:           false,
		LogLevel:       "info",
		LogJSON:        false,
	}
}

// LoadFromEnv overlays LZ4STREAM_* environment variables on the defaults.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvLevel); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Level = n
		}
	}
	if v := os.Getenv(EnvMode); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv(EnvBlockSizeID); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BlockSizeID = n
		}
	}
	if v := os.Getenv(EnvBlockChecksum); v != "" {
		cfg.BlockChecksum = parseBool(v, cfg.BlockChecksum)
	}
	if v := os.Getenv(EnvStreamChecksum); v != "" {
		cfg.StreamChecksum = parseBool(v, cfg.StreamChecksum)
	}
	if v := os.Getenv(EnvBlockDependent); v != "" {
		cfg.BlockDependent = parseBool(v, cfg.BlockDependent)
	}
	if v := os.Getenv(EnvMmap); v != "" {
		cfg.Mmap = parseBool(v, cfg.Mmap)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		cfg.LogJSON = parseBool(v, cfg.LogJSON)
	}

	return cfg
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.BlockSizeID < 4 || c.BlockSizeID > 7 {
		return fmt.Errorf("invalid block size id %d: must be 4..7", c.BlockSizeID)
	}
	if c.Mode != "parallel" && c.Mode != "sequential" {
		return fmt.Errorf("invalid mode %q: must be parallel or sequential", c.Mode)
	}
	if c.Level < 0 {
		return fmt.Errorf("invalid compression level %d", c.Level)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d", c.Concurrency)
	}
	return nil
}
