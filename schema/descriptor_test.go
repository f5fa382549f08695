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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Record struct {
	Id        int64
	Name      string
	CreatedAt time.Time
}

type GameResult struct {
	UserId int32
	GameId int32
	Point  int32
}

func (GameResult) PrimaryKeyColumns() []string {
	return []string{"USER_ID", "GAME_ID"}
}

type renamed struct {
	Id    int64
	Alias string `lite:"NICKNAME"`
}

func (renamed) TableName() string { return "USER_ALIAS" }

type withIgnored struct {
	Id       int64
	Name     string
	Scratch_ int32
	Skipped  int32 `lite:"-"`
	hidden   int32
}

type badIdentity struct {
	Id   string
	Name string
}

type noKey struct {
	Name string
}

type unsupportedField struct {
	Id   int64
	Meta map[string]string
}

type badKeyColumn struct {
	Name string
}

func (badKeyColumn) PrimaryKeyColumns() []string { return []string{"NO_SUCH"} }

func TestDescriptorIdentity(t *testing.T) {
	d, err := Describe(Record{})
	require.NoError(t, err)

	assert.Equal(t, "RECORD", d.TableName)
	require.Len(t, d.Columns, 3)
	assert.Equal(t, []string{"ID"}, d.PrimaryKey)

	id := d.Identity()
	require.NotNil(t, id)
	assert.Equal(t, "ID", id.Name)
	assert.True(t, id.Identity)
	assert.Equal(t, TypeInt64, id.Type)
}

func TestDescriptorCacheReturnsSameInstance(t *testing.T) {
	a, err := Describe(Record{})
	require.NoError(t, err)
	b, err := Describe(&Record{})
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestDescriptorCompositeKey(t *testing.T) {
	d, err := Describe(GameResult{})
	require.NoError(t, err)

	assert.Equal(t, "GAME_RESULT", d.TableName)
	assert.Nil(t, d.Identity())
	assert.Equal(t, []string{"USER_ID", "GAME_ID"}, d.PrimaryKey)
}

func TestDescriptorOverrides(t *testing.T) {
	d, err := Describe(renamed{})
	require.NoError(t, err)

	assert.Equal(t, "USER_ALIAS", d.TableName)
	require.NotNil(t, d.ColumnByName("NICKNAME"))
	assert.Nil(t, d.ColumnByName("ALIAS"))
}

func TestDescriptorIgnoredFields(t *testing.T) {
	d, err := Describe(withIgnored{})
	require.NoError(t, err)

	require.Len(t, d.Columns, 2)
	assert.Nil(t, d.ColumnByName("SCRATCH_"))
	assert.Nil(t, d.ColumnByName("SKIPPED"))
	assert.Nil(t, d.ColumnByName("HIDDEN"))
}

func TestDescriptorConfigurationErrors(t *testing.T) {
	for name, record := range map[string]interface{}{
		"identity must be int64": badIdentity{},
		"missing primary key":    noKey{},
		"unsupported field type": unsupportedField{},
		"unknown key column":     badKeyColumn{},
		"not a struct":           42,
	} {
		_, err := Describe(record)
		require.Error(t, err, name)
		var cfg *ConfigurationError
		assert.ErrorAs(t, err, &cfg, name)
	}
}

func TestResolveSemanticTypeNullability(t *testing.T) {
	type nullable struct {
		Id    int64
		Num   *int32
		Big   *int64
		Ratio *float64
		Note  *string
		Stamp *time.Time
	}
	d, err := Describe(nullable{})
	require.NoError(t, err)
	for _, col := range d.Columns {
		if col.Identity {
			continue
		}
		assert.True(t, col.Nullable, "column %s", col.Name)
	}

	type required struct {
		Id    int64
		Num   int32
		Ratio float64
		Flag  bool
	}
	d, err = Describe(required{})
	require.NoError(t, err)
	for _, col := range d.Columns {
		if col.Identity {
			continue
		}
		assert.False(t, col.Nullable, "column %s", col.Name)
	}
}
