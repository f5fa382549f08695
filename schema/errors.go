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

import "fmt"

// ConfigurationError reports an invalid record type definition: an
// unsupported field type, a missing or malformed primary key declaration,
// or a misused identity field. It is raised at descriptor build time and
// is never retried.
type ConfigurationError struct {
	Record string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("schema: invalid record type %s: %s", e.Record, e.Detail)
}

func configErr(record string, format string, args ...interface{}) error {
	return &ConfigurationError{Record: record, Detail: fmt.Sprintf(format, args...)}
}

// TypeMismatchError reports a record value whose runtime type does not match
// the descriptor it is being mapped with. The record type contract is static
// and must hold at every call, so this is a programmer error.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schema: type mismatch on %s: want %s, got %s", e.Field, e.Want, e.Got)
}

// ConversionError reports a stored value that cannot be decoded back into its
// semantic type, e.g. a malformed timestamp or decimal string.
type ConversionError struct {
	Column string
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("schema: cannot decode column %s value %q: %v", e.Column, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
