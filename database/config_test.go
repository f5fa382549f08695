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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
path: /tmp/app.db
journal_mode: DELETE
busy_timeout: 2s
log_level: debug
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/app.db", cfg.Path)
	assert.Equal(t, "DELETE", cfg.JournalMode)
	assert.Equal(t, 2*time.Second, cfg.BusyTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Absent keys keep their defaults.
	assert.True(t, cfg.ForeignKeys)
	assert.Equal(t, 1, cfg.MaxOpenConns)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/no/such/config.yaml")
	assert.Error(t, err)
}

func TestPragmas(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}, cfg.pragmas())

	assert.Empty(t, (&Config{}).pragmas())
}
