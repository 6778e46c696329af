// Package sqlite implements the partsbin persistence layer: an embedded
// SQLite engine serialized into the key-value store after every mutation,
// a generic column-mapping repository over it, seven entity repositories,
// and the one-time migration from the legacy flat store.
package sqlite

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Record is an ordered attribute map: program-side (camelCase) keys to
// values, preserving insertion order so generated statements list columns
// deterministically.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key, appending the key on first insertion.
// Returns the Record for chaining.
func (r *Record) Set(key string, value any) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key if present.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of attributes.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the attribute names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// ToStorageName converts a camelCase program identifier to its snake_case
// storage form: every uppercase letter becomes an underscore plus the
// lowercase letter. Names with consecutive capitals do not round-trip
// ("vendorURL" becomes "vendor_u_r_l"); column descriptors avoid them.
func ToStorageName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToProgramName converts a snake_case storage identifier to camelCase:
// every underscore-letter pair becomes the uppercase letter.
func ToProgramName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RowToEntity converts a storage-name keyed row into a program-name keyed
// attribute map. String values of keys listed in jsonFields (program
// names) are parsed as JSON; on parse failure the raw string is kept.
// This function never fails.
func RowToEntity(row map[string]any, jsonFields []string) map[string]any {
	entity := make(map[string]any, len(row))
	for k, v := range row {
		pk := ToProgramName(k)
		if s, ok := v.(string); ok && containsField(jsonFields, pk) {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				entity[pk] = parsed
				continue
			}
		}
		entity[pk] = v
	}
	return entity
}

// EntityToRow converts a program-name keyed Record into a storage-name
// keyed Record. Non-nil, non-string values of keys listed in jsonFields
// are serialized to JSON strings; values that fail to marshal pass
// through unchanged. This function never fails.
func EntityToRow(entity *Record, jsonFields []string) *Record {
	row := NewRecord()
	for _, k := range entity.keys {
		v := entity.values[k]
		if containsField(jsonFields, k) && v != nil {
			if _, isStr := v.(string); !isStr {
				if data, err := json.Marshal(v); err == nil {
					row.Set(ToStorageName(k), string(data))
					continue
				}
			}
		}
		row.Set(ToStorageName(k), v)
	}
	return row
}

// BuildInsert produces a parameterized INSERT for the entity's own
// attributes, columns in insertion order.
func BuildInsert(table string, entity *Record, jsonFields []string) (string, []any) {
	return buildInsert("INSERT", table, entity, jsonFields)
}

// BuildInsertOrIgnore is BuildInsert with conflict rows silently skipped.
// The migration engine uses it so re-running a transfer cannot duplicate
// rows with preserved primary keys.
func BuildInsertOrIgnore(table string, entity *Record, jsonFields []string) (string, []any) {
	return buildInsert("INSERT OR IGNORE", table, entity, jsonFields)
}

func buildInsert(verb, table string, entity *Record, jsonFields []string) (string, []any) {
	row := EntityToRow(entity, jsonFields)
	cols := make([]string, 0, row.Len())
	marks := make([]string, 0, row.Len())
	args := make([]any, 0, row.Len())
	for _, k := range row.keys {
		cols = append(cols, k)
		marks = append(marks, "?")
		args = append(args, row.values[k])
	}
	stmt := verb + " INTO " + table +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return stmt, args
}

// BuildUpdate produces a parameterized UPDATE for the entity's own
// attributes followed by the given WHERE clause, positional parameters in
// SET-then-WHERE order.
func BuildUpdate(table string, entity *Record, where string, whereArgs []any, jsonFields []string) (string, []any) {
	row := EntityToRow(entity, jsonFields)
	sets := make([]string, 0, row.Len())
	args := make([]any, 0, row.Len()+len(whereArgs))
	for _, k := range row.keys {
		sets = append(sets, k+" = ?")
		args = append(args, row.values[k])
	}
	stmt := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE " + where
	return stmt, append(args, whereArgs...)
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
