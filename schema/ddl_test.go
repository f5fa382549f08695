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

package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableIdentity(t *testing.T) {
	d, err := Describe(Record{})
	require.NoError(t, err)

	want := "CREATE TABLE RECORD(ID INTEGER PRIMARY KEY AUTOINCREMENT,NAME TEXT,CREATED_AT INTEGER)"
	assert.Equal(t, want, CreateTableSQL(d))

	// Deterministic: repeated calls yield byte-identical text.
	assert.Equal(t, CreateTableSQL(d), CreateTableSQL(d))
}

func TestCreateTableCompositeKey(t *testing.T) {
	d, err := Describe(GameResult{})
	require.NoError(t, err)

	want := "CREATE TABLE GAME_RESULT(" +
		"USER_ID INTEGER NOT NULL," +
		"GAME_ID INTEGER NOT NULL," +
		"POINT INTEGER NOT NULL," +
		"PRIMARY KEY (USER_ID,GAME_ID))"
	assert.Equal(t, want, CreateTableSQL(d))
}

func TestCreateTableAffinities(t *testing.T) {
	type Ledger struct {
		Id      int64
		Active  bool
		Amount  decimal.Decimal
		Ratio   float64
		Grade   *float64
		Stamp   time.Time
		Payload []byte
	}
	d, err := Describe(Ledger{})
	require.NoError(t, err)

	want := "CREATE TABLE LEDGER(" +
		"ID INTEGER PRIMARY KEY AUTOINCREMENT," +
		"ACTIVE TEXT NOT NULL," +
		"AMOUNT TEXT," +
		"RATIO REAL NOT NULL," +
		"GRADE REAL," +
		"STAMP INTEGER," +
		"PAYLOAD BLOB)"
	assert.Equal(t, want, CreateTableSQL(d))
}

func TestCreateTableIgnoresMarkedFields(t *testing.T) {
	d, err := Describe(withIgnored{})
	require.NoError(t, err)

	sql := CreateTableSQL(d)
	assert.NotContains(t, sql, "SCRATCH")
	assert.NotContains(t, sql, "SKIPPED")
}
