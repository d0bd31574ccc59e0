/*
A tool to derive type declarations from a set of example JSON values.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package typegen

import (
	"encoding/json"
	"iter"
	"reflect"
	"slices"
	"time"

	"git.fractalqb.de/fractalqb/eloc"
)

type ValueType int

const (
	ValueRecord ValueType = iota + 1
	ValueList
	ValueString
	ValueNumber
	ValueBoolean

	valueInvalid
)

func (vt ValueType) Scalar() bool {
	return vt >= ValueString && vt <= ValueBoolean
}

// ValueTypeOf detects: nil, string, number, bool, record, list. Values of
// any other Go type are reported as invalid.
func ValueTypeOf(v any) ValueType {
	switch v := v.(type) {
	case nil:
		return 0
	case string:
		return ValueString
	case int, uint, int64, uint64, int32, uint32, int16, uint16, int8, uint8:
		return ValueNumber
	case float32, float64, json.Number:
		return ValueNumber
	case bool:
		return ValueBoolean
	case time.Time:
		return ValueString
	case *Record:
		if v == nil {
			return 0
		}
		return ValueRecord
	case Record, map[string]any:
		return ValueRecord
	case []any:
		return ValueList
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return ValueString
	case reflect.Bool:
		return ValueBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ValueNumber
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ValueRecord
		}
	case reflect.Slice, reflect.Array:
		return ValueList
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0
		}
		return ValueTypeOf(rv.Elem().Interface())
	}
	return valueInvalid
}

// Record is a string keyed mapping that keeps the order in which keys were
// first set.
type Record struct {
	keys []string
	vals map[string]any
}

func NewRecord() *Record {
	return &Record{vals: make(map[string]any)}
}

// Set sets the value of key k. If k already exists its value is replaced
// and k keeps its position.
func (r *Record) Set(k string, v any) *Record {
	if r.vals == nil {
		r.vals = make(map[string]any)
	}
	if _, ok := r.vals[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.vals[k] = v
	return r
}

func (r *Record) Get(k string) (v any, ok bool) {
	if r == nil {
		return nil, false
	}
	v, ok = r.vals[k]
	return v, ok
}

func (r *Record) Has(k string) bool {
	_, ok := r.Get(k)
	return ok
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.vals[k]) {
				return
			}
		}
	}
}

// normalize converts v into the value shapes the inference works on: nil,
// bool, float64, string, []any and *Record. Maps are converted into records
// with keys in sorted order.
func normalize(v any, depth, maxDepth int) (any, error) {
	if depth > maxDepth {
		return nil, eloc.Errorf("example value nested deeper than %d", maxDepth)
	}
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string, bool, float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, eloc.Errorf("example number %q: %w", v, err)
		}
		return f, nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case *Record:
		if v == nil {
			return nil, nil
		}
		return normRecord(v, depth, maxDepth)
	case Record:
		return normRecord(&v, depth, maxDepth)
	case []any:
		res := make([]any, len(v))
		for i, e := range v {
			ne, err := normalize(e, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			res[i] = ne
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		res := &Record{keys: keys, vals: make(map[string]any, len(keys))}
		for _, k := range keys {
			nv, err := normalize(v[k], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			res.vals[k] = nv
		}
		return res, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface(), depth, maxDepth)
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return normReflectMap(rv, depth, maxDepth)
		}
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			ne, err := normalize(rv.Index(i).Interface(), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			res[i] = ne
		}
		return res, nil
	}
	if ValueTypeOf(v) == ValueNumber {
		return asNumber(v), nil
	}
	return nil, eloc.Errorf("unsupported example value: %T", v)
}

func normRecord(r *Record, depth, maxDepth int) (*Record, error) {
	res := &Record{
		keys: slices.Clone(r.keys),
		vals: make(map[string]any, len(r.keys)),
	}
	for _, k := range r.keys {
		nv, err := normalize(r.vals[k], depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		res.vals[k] = nv
	}
	return res, nil
}

func normReflectMap(m reflect.Value, depth, maxDepth int) (*Record, error) {
	keys := make([]string, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	res := &Record{keys: keys, vals: make(map[string]any, len(keys))}
	kt := m.Type().Key()
	for _, k := range keys {
		mv := m.MapIndex(reflect.ValueOf(k).Convert(kt))
		nv, err := normalize(mv.Interface(), depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		res.vals[k] = nv
	}
	return res, nil
}

func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case uint:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case int32:
		return float64(n)
	case uint32:
		return float64(n)
	case int16:
		return float64(n)
	case uint16:
		return float64(n)
	case int8:
		return float64(n)
	case uint8:
		return float64(n)
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanFloat():
		return rv.Float()
	case rv.CanInt():
		return float64(rv.Int())
	case rv.CanUint():
		return float64(rv.Uint())
	}
	return 0
}
