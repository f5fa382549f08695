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
	"errors"
	"fmt"
	"sync"

	"github.com/saboten-dev/litetable/schema"
	"github.com/saboten-dev/litetable/utils"
)

var (
	globalMu sync.Mutex
	globalDB DB
)

// Init opens the global database from the configuration, applies the
// configured log level, and creates the tables of all registered record
// types.
func Init(cfg *Config) (DB, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalDB != nil {
		return nil, fmt.Errorf("database already initialized")
	}
	if cfg != nil && cfg.LogLevel != "" {
		utils.NewLogger(loggerName).SetLevel(utils.ParseLogLevel(cfg.LogLevel))
	}
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	// Tables that already exist in a reopened file are left alone; schema
	// migration is out of scope.
	ctx := context.Background()
	for _, model := range RegisteredRecords() {
		desc, derr := schema.Describe(model.Instance())
		if derr != nil {
			_ = db.Close()
			return nil, derr
		}
		if eerr := db.Execute(ctx, schema.CreateTableSQL(desc)); eerr != nil {
			var de *DriverError
			if errors.As(eerr, &de) && de.Kind == ExistTableErr {
				continue
			}
			_ = db.Close()
			return nil, eerr
		}
	}
	globalDB = db
	return db, nil
}

// Get returns the global database handle, or nil before Init.
func Get() DB {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalDB
}

// Close closes and clears the global database handle.
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalDB == nil {
		return nil
	}
	err := globalDB.Close()
	globalDB = nil
	return err
}
