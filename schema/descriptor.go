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
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// IdentityFieldName is the reserved field name for the engine-assigned
	// auto-increment primary key. It must be of the Int64 semantic type.
	IdentityFieldName = "Id"

	// TagName is the struct tag recognized on record fields:
	// `lite:"-"` excludes the field, `lite:"NAME"` overrides its column name.
	TagName = "lite"

	// ignoreSuffix excludes a field from mapping entirely: it participates
	// in neither schema, read, nor write.
	ignoreSuffix = "_"
)

// Tabler lets a record type override the table name derived from its
// type name.
type Tabler interface {
	TableName() string
}

// Keyed lets a record type without an identity field declare its primary key
// column names. The list is validated against the mapped column set.
type Keyed interface {
	PrimaryKeyColumns() []string
}

// Column describes one mapped struct field.
type Column struct {
	FieldName string
	Name      string
	Type      SemanticType
	Nullable  bool
	Identity  bool

	fieldIndex int
	ptr        bool
}

// Ptr reports whether the underlying struct field is a pointer.
func (c *Column) Ptr() bool { return c.ptr }

// FieldIndex is the struct field index for reflective access.
func (c *Column) FieldIndex() int { return c.fieldIndex }

// Descriptor is the derived table metadata for one record type. It is built
// once per type and cached for the process lifetime; all fields are
// immutable after construction.
type Descriptor struct {
	TableName  string
	Columns    []Column
	PrimaryKey []string // column names, in declared order

	goType   reflect.Type
	identity int // index into Columns, -1 if absent
	byName   map[string]int
}

// GoType returns the record struct type the descriptor was built from.
func (d *Descriptor) GoType() reflect.Type { return d.goType }

// Identity returns the identity column, or nil if the type has none.
func (d *Descriptor) Identity() *Column {
	if d.identity < 0 {
		return nil
	}
	return &d.Columns[d.identity]
}

// ColumnByName returns the column with the given storage name.
func (d *Descriptor) ColumnByName(name string) *Column {
	if i, ok := d.byName[name]; ok {
		return &d.Columns[i]
	}
	return nil
}

var (
	descriptorMu    sync.Mutex
	descriptorCache = map[reflect.Type]*Descriptor{}
)

// Describe returns the cached descriptor for the record's type, building it
// on first use. The populate-on-miss step is serialized: at most one
// goroutine builds a given type's descriptor.
func Describe(record interface{}) (*Descriptor, error) {
	return DescriptorOf(reflect.TypeOf(record))
}

// DescriptorOf returns the cached descriptor for a record struct type
// (pointer types are dereferenced).
func DescriptorOf(t reflect.Type) (*Descriptor, error) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, configErr(typeName(t), "record type must be a struct")
	}
	descriptorMu.Lock()
	defer descriptorMu.Unlock()
	if d, ok := descriptorCache[t]; ok {
		return d, nil
	}
	d, err := buildDescriptor(t)
	if err != nil {
		return nil, err
	}
	descriptorCache[t] = d
	return d, nil
}

func buildDescriptor(t reflect.Type) (*Descriptor, error) {
	d := &Descriptor{
		goType:   t,
		identity: -1,
		byName:   map[string]int{},
	}

	probe := reflect.New(t).Interface()
	if tn, ok := probe.(Tabler); ok {
		d.TableName = tn.TableName()
	} else {
		d.TableName = ToColumnName(t.Name())
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" || f.Anonymous {
			continue
		}
		tag := f.Tag.Get(TagName)
		if tag == "-" || strings.HasSuffix(f.Name, ignoreSuffix) {
			continue
		}

		st, nullable, ptr, err := resolveSemanticType(f.Type)
		if err != nil {
			return nil, configErr(t.Name(), "field %s: %v", f.Name, err)
		}
		if _, ok := ConversionFor(st); !ok {
			return nil, configErr(t.Name(), "field %s: no conversion registered for %s", f.Name, st)
		}

		col := Column{
			FieldName:  f.Name,
			Name:       ToColumnName(f.Name),
			Type:       st,
			Nullable:   nullable,
			fieldIndex: i,
			ptr:        ptr,
		}
		if tag != "" {
			col.Name = tag
		}
		if f.Name == IdentityFieldName {
			if st != TypeInt64 {
				return nil, configErr(t.Name(), "identity field %s must be int64, got %s", IdentityFieldName, f.Type)
			}
			col.Identity = true
			d.identity = len(d.Columns)
		}
		if _, dup := d.byName[col.Name]; dup {
			return nil, configErr(t.Name(), "duplicate column name %s", col.Name)
		}
		d.byName[col.Name] = len(d.Columns)
		d.Columns = append(d.Columns, col)
	}

	if len(d.Columns) == 0 {
		return nil, configErr(t.Name(), "no mapped fields")
	}
	if err := resolvePrimaryKey(d, probe); err != nil {
		return nil, err
	}
	return d, nil
}

// resolvePrimaryKey fills d.PrimaryKey: an explicit declaration wins,
// otherwise the identity column is the single key. A type with neither is a
// configuration error, surfaced here rather than at use time.
func resolvePrimaryKey(d *Descriptor, probe interface{}) error {
	name := d.goType.Name()
	if k, ok := probe.(Keyed); ok {
		declared := k.PrimaryKeyColumns()
		if identityOnly(d, declared) {
			declared = nil
		}
		if len(declared) > 0 {
			for _, col := range declared {
				c := d.ColumnByName(col)
				if c == nil {
					return configErr(name, "primary key column %s is not a mapped column", col)
				}
			}
			d.PrimaryKey = declared
			return nil
		}
	}
	if id := d.Identity(); id != nil {
		d.PrimaryKey = []string{id.Name}
		return nil
	}
	return configErr(name, "no identity field %q and no explicit primary key declaration", IdentityFieldName)
}

// identityOnly reports whether a declared key list is empty or names only
// the identity column, i.e. adds nothing over the default.
func identityOnly(d *Descriptor, declared []string) bool {
	if len(declared) == 0 {
		return true
	}
	id := d.Identity()
	return len(declared) == 1 && id != nil && declared[0] == id.Name
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	bytesType   = reflect.TypeOf([]byte(nil))
)

// resolveSemanticType maps a struct field type to its semantic type.
// Non-pointer numeric and boolean fields are implicitly non-null; pointers,
// strings, timestamps, decimals, and byte slices admit NULL storage.
func resolveSemanticType(t reflect.Type) (st SemanticType, nullable, ptr bool, err error) {
	if t.Kind() == reflect.Ptr {
		ptr = true
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.Int32:
		st, nullable = TypeInt32, ptr
	case t.Kind() == reflect.Int64:
		st, nullable = TypeInt64, ptr
	case t.Kind() == reflect.Float64:
		st, nullable = TypeFloat64, ptr
	case t.Kind() == reflect.String:
		st, nullable = TypeText, true
	case t.Kind() == reflect.Bool:
		if ptr {
			return 0, false, false, errForType(reflect.PtrTo(t))
		}
		st, nullable = TypeBoolean, false
	case t == timeType:
		st, nullable = TypeTimestamp, true
	case t == decimalType:
		st, nullable = TypeDecimal, true
	case t == bytesType:
		if ptr {
			return 0, false, false, errForType(reflect.PtrTo(t))
		}
		st, nullable = TypeBytes, true
	default:
		if ptr {
			t = reflect.PtrTo(t)
		}
		return 0, false, false, errForType(t)
	}
	return st, nullable, ptr, nil
}

func errForType(t reflect.Type) error {
	return &unsupportedType{t}
}

type unsupportedType struct{ t reflect.Type }

func (e *unsupportedType) Error() string {
	return "unsupported field type " + e.t.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
