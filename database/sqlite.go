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
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/uptrace/bun/driver/sqliteshim"
)

type sqliteDB struct {
	db     *sql.DB
	logger Logger

	// Single active transaction per handle; statements route through it
	// until EndTransaction.
	tx   *sql.Tx
	txOK bool
}

// Open opens (or creates) the SQLite database described by the config and
// applies its pragmas. The returned DB is not safe for use from multiple
// goroutines within a transaction.
func Open(cfg *Config) (DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	sdb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, wrapDriverErr("open", path, err)
	}
	if strings.Contains(path, ":memory:") {
		// An in-memory database exists per connection; keep exactly one.
		sdb.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sdb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	d := &sqliteDB{db: sdb, logger: GetLogger()}
	ctx := context.Background()
	for _, pragma := range cfg.pragmas() {
		if err := d.Execute(ctx, pragma); err != nil {
			_ = sdb.Close()
			return nil, err
		}
	}
	return d, nil
}

// Wrap adapts an already opened database/sql handle. The caller keeps
// ownership of pool configuration.
func Wrap(sdb *sql.DB) DB {
	return &sqliteDB{db: sdb, logger: GetLogger()}
}

// executor is satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (d *sqliteDB) executor() executor {
	if d.tx != nil {
		return d.tx
	}
	return d.db
}

func (d *sqliteDB) Execute(ctx context.Context, stmt string) error {
	d.logger.Debug("execute", "sql", stmt)
	if _, err := d.executor().ExecContext(ctx, stmt); err != nil {
		return wrapDriverErr("execute", "", err)
	}
	return nil
}

func (d *sqliteDB) Insert(ctx context.Context, table string, values map[string]interface{}) (int64, error) {
	cols := sortedColumns(values)
	args := make([]interface{}, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		args[i] = values[c]
		marks[i] = "?"
	}
	stmt := fmt.Sprintf("INSERT INTO %s(%s) VALUES(%s)",
		table, strings.Join(cols, ","), strings.Join(marks, ","))
	d.logger.Debug("insert", "table", table, "sql", stmt)
	res, err := d.executor().ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrapDriverErr("insert", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapDriverErr("insert", table, err)
	}
	d.logger.Debug("insert return", "table", table, "id", id)
	return id, nil
}

func (d *sqliteDB) Update(ctx context.Context, table string, values map[string]interface{}, where string, params []string) (int64, error) {
	cols := sortedColumns(values)
	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+len(params))
	for i, c := range cols {
		sets[i] = c + "=?"
		args = append(args, values[c])
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(sets, ","))
	if where != "" {
		stmt += " WHERE " + where
	}
	for _, p := range params {
		args = append(args, p)
	}
	d.logger.Debug("update", "table", table, "sql", stmt)
	res, err := d.executor().ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrapDriverErr("update", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapDriverErr("update", table, err)
	}
	d.logger.Debug("update return", "table", table, "rows", n)
	return n, nil
}

func (d *sqliteDB) Delete(ctx context.Context, table string, where string, params []string) (int64, error) {
	stmt := "DELETE FROM " + table
	if where != "" {
		stmt += " WHERE " + where
	}
	args := make([]interface{}, len(params))
	for i, p := range params {
		args[i] = p
	}
	d.logger.Debug("delete", "table", table, "sql", stmt)
	res, err := d.executor().ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrapDriverErr("delete", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapDriverErr("delete", table, err)
	}
	d.logger.Debug("delete return", "table", table, "rows", n)
	return n, nil
}

func (d *sqliteDB) Query(ctx context.Context, query string, params []string) ([]Row, error) {
	args := make([]interface{}, len(params))
	for i, p := range params {
		args[i] = p
	}
	d.logger.Debug("query", "sql", query, "params", strings.Join(params, ","))
	rows, err := d.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDriverErr("query", "", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, wrapDriverErr("query", "", err)
	}
	out := make([]Row, 0)
	for rows.Next() {
		holders := make([]interface{}, len(cols))
		for i := range holders {
			holders[i] = new(interface{})
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, wrapDriverErr("query", "", err)
		}
		values := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			values[c] = *(holders[i].(*interface{}))
		}
		out = append(out, &resultRow{columns: cols, values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDriverErr("query", "", err)
	}
	return out, nil
}

func (d *sqliteDB) BeginTransaction(ctx context.Context) error {
	if d.tx != nil {
		return wrapDriverErr("begin", "", fmt.Errorf("transaction already active"))
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDriverErr("begin", "", err)
	}
	d.tx = tx
	d.txOK = false
	return nil
}

func (d *sqliteDB) MarkSuccessful() {
	if d.tx != nil {
		d.txOK = true
	}
}

func (d *sqliteDB) EndTransaction() error {
	if d.tx == nil {
		return wrapDriverErr("end", "", fmt.Errorf("no active transaction"))
	}
	tx := d.tx
	ok := d.txOK
	d.tx = nil
	d.txOK = false
	if ok {
		if err := tx.Commit(); err != nil {
			return wrapDriverErr("commit", "", err)
		}
		return nil
	}
	if err := tx.Rollback(); err != nil {
		return wrapDriverErr("rollback", "", err)
	}
	return nil
}

func (d *sqliteDB) Close() error {
	if d.tx != nil {
		_ = d.EndTransaction()
	}
	return d.db.Close()
}

// sortedColumns keeps generated write statements deterministic.
func sortedColumns(values map[string]interface{}) []string {
	cols := make([]string, 0, len(values))
	for c := range values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

type resultRow struct {
	columns []string
	values  map[string]interface{}
}

func (r *resultRow) Columns() []string { return r.columns }

func (r *resultRow) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r *resultRow) IsNull(name string) bool {
	v, ok := r.values[name]
	return ok && v == nil
}

func (r *resultRow) Value(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *resultRow) Int64(name string) int64 {
	switch v := r.values[name].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func (r *resultRow) Float64(name string) float64 {
	switch v := r.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (r *resultRow) Text(name string) string {
	switch v := r.values[name].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (r *resultRow) Bytes(name string) []byte {
	switch v := r.values[name].(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}
