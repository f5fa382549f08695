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

// Package database provides the embedded SQLite driver surface the mapping
// layer runs against: statement execution, parameterized write primitives,
// row materialization, the three-step transaction protocol with a scoped
// runner, configuration, error classification, and logging.
package database
