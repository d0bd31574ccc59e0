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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_String(t *testing.T) {
	for _, c := range []struct {
		t    Type
		want string
	}{
		{Type{}, "any"},
		{Any, "any"},
		{String, "string"},
		{Number, "number"},
		{Boolean, "boolean"},
		{Ref("UserType"), "UserType"},
		{ListOf(Any), "any[]"},
		{ListOf(ListOf(Ref("X"))), "X[][]"},
		{UnionOf(Number, String, ListOf(Number)), "number | string | number[]"},
	} {
		assert.Equal(t, c.want, c.t.String())
	}
}

func TestUnionOf(t *testing.T) {
	assert.Equal(t, Any, UnionOf())
	assert.Equal(t, String, UnionOf(String, String))
	u := UnionOf(Number, UnionOf(String, Number), Ref("A"), Ref("A"), Any)
	assert.Equal(t, UnionKind, u.Kind())
	assert.Equal(t, []Type{Number, String, Ref("A"), Any}, u.Variants())
	assert.True(t, u.Equal(UnionOf(Number, String, Ref("A"), Any)))
	assert.False(t, u.Equal(UnionOf(String, Number, Ref("A"), Any)))
}

func TestType_Equal(t *testing.T) {
	assert.True(t, ListOf(Ref("A")).Equal(ListOf(Ref("A"))))
	assert.False(t, ListOf(Ref("A")).Equal(ListOf(Ref("B"))))
	assert.False(t, ListOf(Number).Equal(ListOf(ListOf(Number))))
	assert.False(t, Ref("string").Equal(String))
	assert.Equal(t, 3, ListOf(ListOf(ListOf(String))).Depth())
	assert.Equal(t, 0, Number.Depth())
	assert.True(t, Boolean.Primitive())
	assert.False(t, ListOf(Boolean).Primitive())
	assert.Equal(t, "A", Ref("A").Name())
	assert.Equal(t, Any, Number.Elem())
}

func TestRegistry(t *testing.T) {
	var reg registry
	reg.register(RecordType{Name: "A", Fields: []Field{{Name: "x", Type: Number}}})
	reg.register(RecordType{Name: "B"})
	reg.register(RecordType{Name: "A", Fields: []Field{{Name: "y", Type: String}}})
	ts := reg.types()
	assert.Len(t, ts, 2)
	assert.Equal(t, "A", ts[0].Name)
	assert.Equal(t, []Field{{Name: "y", Type: String}}, ts[0].Fields)
	assert.Equal(t, "B", ts[1].Name)
}

func TestTypeName(t *testing.T) {
	for hint, want := range map[string]string{
		"user":       "UserType",
		"User":       "UserType",
		"level1":     "Level1Type",
		"user-name":  "User-nameType",
		"123number":  "123numberType",
		"ärger":      "ÄrgerType",
		"🎯target":    "🎯targetType",
		"\xffbroken": "\xffbrokenType",
	} {
		assert.Equal(t, want, typeName(hint), "hint %q", hint)
	}
}

func TestGenerator_Render(t *testing.T) {
	g := defaultGen(t)
	assert.Equal(t, "type X = {\n  a?: number | string;\n  b: Y[];\n};", g.Render(RecordType{
		Name: "X",
		Fields: []Field{
			{Name: "a", Type: UnionOf(Number, String), Optional: true},
			{Name: "b", Type: ListOf(Ref("Y"))},
		},
	}))
}
