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

package repository

import (
	"testing"
	"time"

	"github.com/saboten-dev/litetable/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRow struct {
	UserId int32
	GameId int32
	Point  int32
}

func (scoreRow) PrimaryKeyColumns() []string { return []string{"USER_ID", "GAME_ID"} }

func TestSelectSQL(t *testing.T) {
	d, err := schema.Describe(scoreRow{})
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM SCORE_ROW", SelectSQL(d, "", ""))
	assert.Equal(t, "SELECT * FROM SCORE_ROW WHERE POINT>?", SelectSQL(d, "POINT>?", ""))
	assert.Equal(t, "SELECT * FROM SCORE_ROW WHERE POINT>? ORDER BY POINT DESC",
		SelectSQL(d, "POINT>?", "ORDER BY POINT DESC"))
	assert.Equal(t, "SELECT * FROM SCORE_ROW ORDER BY POINT DESC",
		SelectSQL(d, "", "ORDER BY POINT DESC"))
}

func TestWhereForKeys(t *testing.T) {
	d, err := schema.Describe(scoreRow{})
	require.NoError(t, err)

	where, cols := WhereForKeys(d)
	assert.Equal(t, "USER_ID=? AND GAME_ID=?", where)
	assert.Equal(t, []string{"USER_ID", "GAME_ID"}, cols)
}

func TestFormatParam(t *testing.T) {
	stamp := time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "20210101000000000", FormatParam(stamp))
	assert.Equal(t, "true", FormatParam(true))
	assert.Equal(t, "12.5", FormatParam(decimal.RequireFromString("12.5")))
	assert.Equal(t, "42", FormatParam(int64(42)))
	assert.Equal(t, "x", FormatParam("x"))

	n := int64(7)
	assert.Equal(t, "7", FormatParam(&n))
	assert.Equal(t, "", FormatParam((*int64)(nil)))
	assert.Equal(t, "", FormatParam(nil))
}
