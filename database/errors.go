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
	"strings"
)

// SQLError classifies an engine rejection by cause. The embedded engine
// reports failures as text, so classification matches on its messages.
type SQLError int

const (
	UnknownErr SQLError = iota
	NoTableErr
	ExistTableErr
	NoColumnErr
	NoIndexErr
	ExistIndexErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	InvalidTypeCastErr
	BusyErr
)

func (e SQLError) String() string {
	switch e {
	case NoTableErr:
		return "no such table"
	case ExistTableErr:
		return "table already exists"
	case NoColumnErr:
		return "no such column"
	case NoIndexErr:
		return "no such index"
	case ExistIndexErr:
		return "index already exists"
	case DuplicateKeyErr:
		return "duplicate key"
	case NotNullViolationErr:
		return "not null violation"
	case ForeignKeyViolationErr:
		return "foreign key violation"
	case CheckConstraintViolationErr:
		return "check constraint violation"
	case InvalidTypeCastErr:
		return "datatype mismatch"
	case BusyErr:
		return "database busy"
	default:
		return "unknown"
	}
}

// ClassifySQLError inspects an engine error message and returns its kind.
func ClassifySQLError(err error) SQLError {
	if err == nil {
		return UnknownErr
	}
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "no such table"):
		return NoTableErr
	case strings.Contains(s, "already exists") && strings.Contains(s, "table"):
		return ExistTableErr
	case strings.Contains(s, "no such column"):
		return NoColumnErr
	case strings.Contains(s, "no such index"):
		return NoIndexErr
	case strings.Contains(s, "already exists") && strings.Contains(s, "index"):
		return ExistIndexErr
	case strings.Contains(s, "unique constraint failed"),
		strings.Contains(s, "primary key constraint failed"):
		return DuplicateKeyErr
	case strings.Contains(s, "not null constraint failed"):
		return NotNullViolationErr
	case strings.Contains(s, "foreign key constraint failed"):
		return ForeignKeyViolationErr
	case strings.Contains(s, "check constraint failed"):
		return CheckConstraintViolationErr
	case strings.Contains(s, "datatype mismatch"):
		return InvalidTypeCastErr
	case strings.Contains(s, "database is locked"),
		strings.Contains(s, "database table is locked"):
		return BusyErr
	default:
		return UnknownErr
	}
}

// DriverError wraps an engine rejection with the operation it failed, the
// table involved when known, and the classified kind.
type DriverError struct {
	Op    string
	Table string
	Kind  SQLError
	Err   error
}

func (e *DriverError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("database: %s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

func wrapDriverErr(op, table string, err error) error {
	return &DriverError{Op: op, Table: table, Kind: ClassifySQLError(err), Err: err}
}
