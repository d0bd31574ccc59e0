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

// Property is one member of a deep schema.
type Property struct {
	Name     string
	Type     Type
	Optional bool
	// Children is the deep schema of record values, nil otherwise.
	Children Schema
}

// Schema is the deep schema of an example value: the properties of a
// record, or the merged properties of a list of records.
type Schema []Property

func (s Schema) Get(name string) (Property, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Schema computes the deep schema of data.
func (g *Generator) Schema(data any) (Schema, error) {
	data, err := normalize(data, 0, g.maxDepth)
	if err != nil {
		return nil, err
	}
	return g.start().deep(data), nil
}

func (inf *inference) deep(v any) Schema {
	switch v := v.(type) {
	case []any:
		if len(v) == 0 {
			return Schema{}
		}
		fields := inf.mergeFields(v)
		res := make(Schema, len(fields))
		for i, f := range fields {
			res[i] = Property{Name: f.Name, Type: f.Type, Optional: f.Optional}
			if !firstIsRecord(v, f.Name) {
				continue
			}
			res[i].Children = inf.deep(collect(v, f.Name))
		}
		return res
	case *Record:
		res := make(Schema, 0, v.Len())
		for k, fv := range v.All() {
			p := Property{Name: k, Type: inf.classify(fv, k)}
			if r, ok := fv.(*Record); ok {
				p.Children = inf.deep(r)
			}
			res = append(res, p)
		}
		return res
	}
	return Schema{}
}

// firstIsRecord reports whether field name of the first element of list is
// a record.
func firstIsRecord(list []any, name string) bool {
	r, ok := list[0].(*Record)
	if !ok {
		return false
	}
	v, _ := r.Get(name)
	_, ok = v.(*Record)
	return ok
}

// collect returns the values of field name of all records in list that
// have that field.
func collect(list []any, name string) []any {
	res := make([]any, 0, len(list))
	for _, e := range list {
		if r, ok := e.(*Record); ok {
			if v, ok := r.Get(name); ok {
				res = append(res, v)
			}
		}
	}
	return res
}
