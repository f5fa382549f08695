/*
 * Copyright 2025 saboten-dev.
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

package database

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes how to open the embedded database file and tune the
// engine. An empty Path opens an in-memory database.
type Config struct {
	Path         string        `yaml:"path" json:"path"`
	JournalMode  string        `yaml:"journal_mode" json:"journal_mode"`
	BusyTimeout  time.Duration `yaml:"busy_timeout" json:"busy_timeout"`
	ForeignKeys  bool          `yaml:"foreign_keys" json:"foreign_keys"`
	MaxOpenConns int           `yaml:"max_open_conns" json:"max_open_conns"`
	LogLevel     string        `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns a config with sensible defaults: WAL journaling,
// a five second busy timeout, and foreign keys enforced by the engine.
func DefaultConfig() *Config {
	return &Config{
		JournalMode:  "WAL",
		BusyTimeout:  time.Second * 5,
		ForeignKeys:  true,
		MaxOpenConns: 1,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent keys.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) pragmas() []string {
	var out []string
	if c.JournalMode != "" {
		out = append(out, "PRAGMA journal_mode="+c.JournalMode)
	}
	if c.BusyTimeout > 0 {
		out = append(out, fmt.Sprintf("PRAGMA busy_timeout=%d", c.BusyTimeout.Milliseconds()))
	}
	if c.ForeignKeys {
		out = append(out, "PRAGMA foreign_keys=ON")
	}
	return out
}
