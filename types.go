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

type Kind int

const (
	AnyKind Kind = iota
	StringKind
	NumberKind
	BooleanKind
	RefKind
	ListKind
	UnionKind
)

// Type describes the inferred type of an example value at one position.
// The zero Type is Any.
type Type struct {
	kind Kind
	ref  string
	elem *Type
	alts []Type
}

var (
	Any     = Type{kind: AnyKind}
	String  = Type{kind: StringKind}
	Number  = Type{kind: NumberKind}
	Boolean = Type{kind: BooleanKind}
)

// Ref returns a reference to the record type with the given name.
func Ref(name string) Type { return Type{kind: RefKind, ref: name} }

func ListOf(elem Type) Type { return Type{kind: ListKind, elem: &elem} }

// UnionOf returns the union of ts in first-seen order with duplicates
// dropped. Nested unions are flattened. If only one distinct type remains,
// that type is returned.
func UnionOf(ts ...Type) Type {
	var alts []Type
	for _, t := range ts {
		if t.kind == UnionKind {
			for _, a := range t.alts {
				alts = addDistinct(alts, a)
			}
		} else {
			alts = addDistinct(alts, t)
		}
	}
	switch len(alts) {
	case 0:
		return Any
	case 1:
		return alts[0]
	}
	return Type{kind: UnionKind, alts: alts}
}

func (t Type) Kind() Kind { return t.kind }

func (t Type) Primitive() bool { return t.kind <= BooleanKind }

// Name is the referenced record type name of a RefKind type.
func (t Type) Name() string { return t.ref }

// Elem is the element type of a ListKind type.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Any
	}
	return *t.elem
}

func (t Type) Variants() []Type { return t.alts }

// Depth counts the list levels wrapped around the innermost element type.
func (t Type) Depth() (n int) {
	for t.kind == ListKind {
		n++
		t = t.Elem()
	}
	return n
}

func (t Type) Equal(u Type) bool {
	if t.kind != u.kind {
		return false
	}
	switch t.kind {
	case RefKind:
		return t.ref == u.ref
	case ListKind:
		return t.Elem().Equal(u.Elem())
	case UnionKind:
		if len(t.alts) != len(u.alts) {
			return false
		}
		for i := range t.alts {
			if !t.alts[i].Equal(u.alts[i]) {
				return false
			}
		}
	}
	return true
}

func addDistinct(ts []Type, t Type) []Type {
	for _, e := range ts {
		if e.Equal(t) {
			return ts
		}
	}
	return append(ts, t)
}

type Field struct {
	Name     string
	Type     Type
	Optional bool
}

type RecordType struct {
	Name   string
	Fields []Field
}

// registry keeps the record types named during one inference call in the
// order they were first registered.
type registry struct {
	names []string
	defs  map[string]RecordType
}

func (r *registry) register(rt RecordType) {
	if r.defs == nil {
		r.defs = make(map[string]RecordType)
	}
	if _, ok := r.defs[rt.Name]; !ok {
		r.names = append(r.names, rt.Name)
	}
	r.defs[rt.Name] = rt
}

func (r *registry) types() []RecordType {
	res := make([]RecordType, len(r.names))
	for i, n := range r.names {
		res[i] = r.defs[n]
	}
	return res
}
