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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/saboten-dev/litetable/database"
	"github.com/saboten-dev/litetable/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := database.Open(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUserRepo(t *testing.T, db database.DB) Repository[userMaster] {
	t.Helper()
	repo, err := NewRepository[userMaster](db)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTable(context.Background()))
	return repo
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := newUserRepo(t, db)

	// Empty table: non-nil empty list, zero count.
	records, err := repo.All(ctx)
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Len(t, records, 0)

	n, err := repo.Count(ctx, "SELECT COUNT(*) FROM USER_MASTER")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stamp := time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local)
	id, err := repo.Insert(ctx, &userMaster{
		Name:      "taro",
		Active:    true,
		Balance:   decimal.RequireFromString("100.25"),
		CreatedAt: stamp,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = repo.Insert(ctx, &userMaster{Name: "hana", CreatedAt: stamp})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "taro", got.Name)
	assert.True(t, got.Active)
	assert.True(t, decimal.RequireFromString("100.25").Equal(got.Balance))
	assert.True(t, got.CreatedAt.Equal(stamp))

	missing, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.Name = "jiro"
	affected, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "jiro", got.Name)

	listed, err := repo.List(ctx, "NAME=?", "", "hana")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(2), listed[0].Id)

	affected, err = repo.Delete(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	n, err = repo.Count(ctx, "SELECT COUNT(*) FROM USER_MASTER")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := newUserRepo(t, db)

	note := "first deposit"
	in := &userMaster{
		Name:      "taro",
		Active:    true,
		Balance:   decimal.RequireFromString("-3.1400"),
		CreatedAt: time.Date(2023, 7, 15, 9, 30, 45, int(123*time.Millisecond), time.Local),
		Note:      &note,
	}
	id, err := repo.Insert(ctx, in)
	require.NoError(t, err)

	out, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Active, out.Active)
	assert.True(t, in.Balance.Equal(out.Balance))
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	require.NotNil(t, out.Note)
	assert.Equal(t, note, *out.Note)
}

func TestRepositoryCompositeKey(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo, err := NewRepository[scoreRow](db)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTable(ctx))

	_, err = repo.Insert(ctx, &scoreRow{UserId: 1, GameId: 1, Point: 10})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &scoreRow{UserId: 1, GameId: 2, Point: 20})
	require.NoError(t, err)

	affected, err := repo.Update(ctx, &scoreRow{UserId: 1, GameId: 2, Point: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := repo.List(ctx, "USER_ID=?", "ORDER BY GAME_ID", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(10), rows[0].Point)
	assert.Equal(t, int32(25), rows[1].Point)

	affected, err = repo.Delete(ctx, rows[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	n, err := repo.Count(ctx, "SELECT COUNT(*) FROM SCORE_ROW")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepositoryPage(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := newUserRepo(t, db)

	for i := 0; i < 25; i++ {
		_, err := repo.Insert(ctx, &userMaster{Name: fmt.Sprintf("user%02d", i)})
		require.NoError(t, err)
	}

	page, err := repo.Page(ctx, types.NewPageRequestWithOrders(2, 10, []string{"ID ASC"}))
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "user10", page.Items[0].Name)

	filtered, err := repo.Page(ctx, types.NewPageRequestWithFilter(1, 10, types.NewQueryFilter("NAME=?", "user03")))
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Total)
	require.Len(t, filtered.Items, 1)

	empty, err := repo.Page(ctx, types.NewPageRequestWithFilter(1, 10, types.NewQueryFilter("NAME=?", "nobody")))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Items)
	assert.Len(t, empty.Items, 0)
}

func TestInTransactionCommit(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := newUserRepo(t, db)

	id, ok := database.InTransaction(ctx, db, func(tx database.DB) (int64, error) {
		return repo.Insert(ctx, &userMaster{Name: "committed"})
	})
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	n, err := repo.Count(ctx, "SELECT COUNT(*) FROM USER_MASTER")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInTransactionRollback(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := newUserRepo(t, db)

	_, err := repo.Insert(ctx, &userMaster{Name: "before"})
	require.NoError(t, err)

	_, ok := database.InTransaction(ctx, db, func(tx database.DB) (int64, error) {
		if _, err := repo.Insert(ctx, &userMaster{Name: "doomed"}); err != nil {
			return 0, err
		}
		// A driver failure inside the body: the insert above must be
		// rolled back and the failure converted to an absent result.
		return 0, db.Execute(ctx, "INSERT INTO NO_SUCH_TABLE VALUES(1)")
	})
	assert.False(t, ok)

	n, err := repo.Count(ctx, "SELECT COUNT(*) FROM USER_MASTER")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
