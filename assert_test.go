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
	"errors"
	"fmt"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseExpectYAML(t testing.TB, src string) (exp Expect) {
	t.Helper()
	testerr.Shall(yaml.Unmarshal([]byte(src), &exp)).BeNil(t)
	return exp
}

func TestAssertDeep_pass(t *testing.T) {
	g := defaultGen(t)
	for _, c := range []struct {
		name, data, expect string
	}{
		{"scalars",
			`{"integer": 42, "float": 3.14, "empty": "", "truthy": true, "nothing": null, "list": []}`,
			`{integer: number, float: number, empty: string, truthy: boolean, nothing: any, list: "any[]"}`,
		},
		{"lists",
			`{"numbers": [1, 2], "mixed": [1, "a", true, null], "matrix": [[1, 2], [3]], "deep": [[[[[1]]]]]}`,
			`{numbers: "number[]", mixed: "any[]", matrix: "number[][]", deep: "number[][][][][]"}`,
		},
		{"nested records", `{"user": {"name": "John", "age": 30}, "profile": {"bio": "Engineer"}}`, `
user:
  type: UserType
  children: {name: string, age: number}
profile:
  type: ProfileType
  children: {bio: string}
`},
		{"deep nesting", `{"level1": {"level2": {"level3": {"value": "deep"}}}}`, `
level1:
  type: Level1Type
  children:
    level2:
      type: Level2Type
      children:
        level3:
          type: Level3Type
          children:
            value: string
`},
		{"empty record", `{}`, `{}`},
		{"empty list", `[]`, `{}`},
		{"optional", `[
			{"id": 1, "name": "John", "email": "john@example.com"},
			{"id": 2, "name": "Jane", "phone": "123-456-7890"}
		]`, `
id: number
name: string
email: {type: string, optional: true}
phone: {type: string, optional: true}
`},
		{"union", `[{"id": 1, "value": 100, "tags": ["a"]}, {"id": 2, "value": "premium", "tags": [1, 2]}]`,
			`{id: number, value: number | string, tags: "string[] | number[]"}`,
		},
		{"record and primitive", `[{"value": {"nested": "object"}}, {"value": 42}]`,
			`{value: ValueType | number}`,
		},
		{"list children", `[
			{"user": {"profile": {"scores": [85, 90], "status": "active"}, "level": 1}},
			{"user": {"profile": {"scores": ["A", "B"], "status": 2}, "isPremium": true}}
		]`, `
user:
  type: UserType
  children:
    profile:
      type: ProfileType
      children:
        scores: "number[] | string[]"
        status: string | number
    level: {type: number, optional: true}
    isPremium: {type: boolean, optional: true}
`},
		{"element name", `{"items": [{"id": 1}, {"id": 2}]}`, `{items: "ContentType[]"}`},
		{"unchecked extra properties", `{"a": 1, "b": "x", "c": {"d": true}}`, `{b: string}`},
	} {
		t.Run(c.name, func(t *testing.T) {
			testerr.Shall(g.AssertDeep(exampleJSON(t, c.data), parseExpectYAML(t, c.expect))).BeNil(t)
		})
	}
}

func TestAssertDeep_elementTypeName(t *testing.T) {
	g := testerr.Shall1(New(ArrayElementTypeName("ItemType"))).BeNil(t)
	data := exampleJSON(t, `{"items": [{"id": 1, "name": "item1"}, {"id": 2, "name": "item2"}]}`)
	testerr.Shall(g.AssertDeep(data, Expect{{Name: "items", Type: "ItemType[]"}})).BeNil(t)

	g = testerr.Shall1(g.WithOptions(ArrayElementTypeName("ElementType"))).BeNil(t)
	err := g.AssertDeep(data, Expect{{Name: "items", Type: "ItemType[]"}})
	var mm *MismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, "ElementType[]", mm.ActualType)
}

func TestAssertDeep_manyProperties(t *testing.T) {
	data := NewRecord()
	var exp Expect
	for i := range 20 {
		name := fmt.Sprintf("prop%d", i)
		data.Set(name, i)
		exp = append(exp, Expected{Name: name, Type: "number"})
	}
	testerr.Shall(defaultGen(t).AssertDeep(data, exp)).BeNil(t)

	list := make([]any, 50)
	for i := range list {
		list[i] = NewRecord().
			Set("id", i).
			Set("value", fmt.Sprintf("item_%d", i)).
			Set("active", i%2 == 0)
	}
	testerr.Shall(defaultGen(t).AssertDeep(list, Expect{
		{Name: "id", Type: "number"},
		{Name: "value", Type: "string"},
		{Name: "active", Type: "boolean"},
	})).BeNil(t)
}

func TestAssertDeep_missing(t *testing.T) {
	g := defaultGen(t)
	err := g.AssertDeep(
		exampleJSON(t, `{"user": {"name": "John"}}`),
		parseExpectYAML(t, `{user: {type: UserType, children: {age: number}}}`),
	)
	var me *MissingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "user.age", me.Path)
	assert.EqualError(t, err, "missing property at user.age")

	err = g.AssertDeep(exampleJSON(t, `{"id": 1}`), Expect{{Name: "name", Type: "string"}})
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "name", me.Path)
}

func TestAssertDeep_mismatch(t *testing.T) {
	g := defaultGen(t)
	t.Run("type", func(t *testing.T) {
		err := g.AssertDeep(exampleJSON(t, `{"id": 1}`), Expect{{Name: "id", Type: "string"}})
		var mm *MismatchError
		require.ErrorAs(t, err, &mm)
		assert.Equal(t, MismatchError{
			Path:         "id",
			ExpectedType: "string",
			ActualType:   "number",
		}, *mm)
		assert.EqualError(t, err,
			"type mismatch at id: expected {type: string, optional: false}, got {type: number, optional: false}",
		)
	})
	t.Run("optional", func(t *testing.T) {
		err := g.AssertDeep(
			exampleJSON(t, `[{"id": 1, "email": "a@x"}, {"id": 2}]`),
			Expect{{Name: "email", Type: "string"}},
		)
		assert.EqualError(t, err,
			"type mismatch at email: expected {type: string, optional: false}, got {type: string, optional: true}",
		)
	})
	t.Run("nested", func(t *testing.T) {
		err := g.AssertDeep(
			exampleJSON(t, `{"a": {"b": {"c": [1, "x"]}}}`),
			parseExpectYAML(t, `
a:
  type: AType
  children:
    b:
      type: BType
      children: {c: "number[]"}
`),
		)
		var mm *MismatchError
		require.ErrorAs(t, err, &mm)
		assert.Equal(t, "a.b.c", mm.Path)
		assert.Equal(t, "any[]", mm.ActualType)
	})
	t.Run("first deviation", func(t *testing.T) {
		err := g.AssertDeep(
			exampleJSON(t, `{"a": 1, "b": 2}`),
			Expect{{Name: "a", Type: "string"}, {Name: "c", Type: "number"}},
		)
		var mm *MismatchError
		assert.True(t, errors.As(err, &mm), "error: %v", err)
	})
}

func TestAssertDeepAt(t *testing.T) {
	err := defaultGen(t).AssertDeepAt(
		exampleJSON(t, `{"x": true}`),
		Expect{{Name: "y", Type: "boolean"}},
		"response.",
	)
	assert.EqualError(t, err, "missing property at response.y")
}

func TestAssertDeep_childrenOfNonRecord(t *testing.T) {
	err := defaultGen(t).AssertDeep(
		exampleJSON(t, `{"n": 1}`),
		Expect{{Name: "n", Type: "number", Children: Expect{{Name: "x", Type: "any"}}}},
	)
	var me *MissingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "n.x", me.Path)
}

func TestAssertDeep_selfCheck(t *testing.T) {
	samples := testerr.Shall1(DecodeJSON(strings.NewReader(`
		{"meta": {"code": 200}, "data": {"users": [{"id": 1, "tags": ["x"]}, {"id": 2, "bio": {"text": "t"}}]}}
		[{"a": {"b": 1}}, {"a": {"c": "x"}}, {"d": null}]
	`))).BeNil(t)
	g := defaultGen(t)
	for i, s := range samples {
		scm := testerr.Shall1(g.Schema(s)).BeNil(t)
		if err := g.AssertDeep(s, scm.Expect()); err != nil {
			t.Errorf("sample %d: %s", i, err)
		}
	}
}
