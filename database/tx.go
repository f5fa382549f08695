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

import "context"

// InTransaction runs body inside a transaction on db. On success the
// transaction is marked successful, committed, and the body's result is
// returned with ok=true. On any failure the transaction is rolled back, the
// error is logged, and the zero value is returned with ok=false; the failure
// is never re-raised, so callers detect it through ok.
//
// EndTransaction runs on every exit path, including a panicking body.
// InTransaction must not be called reentrant within its own body against the
// same handle.
func InTransaction[T any](ctx context.Context, db DB, body func(DB) (T, error)) (result T, ok bool) {
	logger := GetLogger()
	if err := db.BeginTransaction(ctx); err != nil {
		logger.Error("begin transaction failed", "error", err)
		return result, false
	}
	defer func() {
		if err := db.EndTransaction(); err != nil {
			logger.Error("end transaction failed", "error", err)
			ok = false
		}
	}()

	v, err := body(db)
	if err != nil {
		logger.Error("transaction rolled back", "error", err)
		return result, false
	}
	db.MarkSuccessful()
	return v, true
}
