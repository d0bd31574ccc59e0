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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"b": 1, "a": [true, null, "s", 2.5e3], "c": {"z": {}, "a": false}}`))
	require.NoError(t, err)
	r, ok := v.(*Record)
	require.True(t, ok, "parsed %T", v)
	assert.Equal(t, []string{"b", "a", "c"}, r.Keys())

	a, _ := r.Get("a")
	assert.Equal(t, []any{true, nil, "s", 2500.0}, a)

	c, _ := r.Get("c")
	assert.Equal(t, []string{"z", "a"}, c.(*Record).Keys())
}

func TestParseJSON_duplicateKeys(t *testing.T) {
	v, err := ParseJSON([]byte(`{"a": 1, "b": 2, "a": "x"}`))
	require.NoError(t, err)
	r := v.(*Record)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	a, _ := r.Get("a")
	assert.Equal(t, "x", a)
}

func TestParseJSON_errors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a": }`, `[1, 2`, `nul`} {
		_, err := ParseJSON([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestDecodeJSON(t *testing.T) {
	samples, err := DecodeJSON(strings.NewReader(`
		{"id": 1}
		{"id": 2, "name": "n"}
		[1, 2]
		"just a string"
	`))
	require.NoError(t, err)
	require.Len(t, samples, 4)
	assert.Equal(t, []string{"id", "name"}, samples[1].(*Record).Keys())
	assert.Equal(t, []any{1.0, 2.0}, samples[2])
	assert.Equal(t, "just a string", samples[3])

	samples, err = DecodeJSON(strings.NewReader(`{"ok": true} {"broken": `))
	assert.Error(t, err)
	assert.Len(t, samples, 1)
}

func TestDecodeYAML(t *testing.T) {
	samples, err := DecodeYAML(strings.NewReader(`
base: &base
  host: localhost
  port: 8080
server:
  <<: *base
  port: 9090
  tls: true
created: 2024-01-01
ratio: 0.5
tags: [a, b]
nothing: ~
---
- id: 1
- id: 2
`))
	require.NoError(t, err)
	require.Len(t, samples, 2)

	doc := samples[0].(*Record)
	assert.Equal(t, []string{"base", "server", "created", "ratio", "tags", "nothing"}, doc.Keys())

	srv, _ := doc.Get("server")
	assert.Equal(t, []string{"host", "port", "tls"}, srv.(*Record).Keys())
	port, _ := srv.(*Record).Get("port")
	assert.Equal(t, 9090.0, port)

	created, _ := doc.Get("created")
	assert.Equal(t, "2024-01-01", created)
	ratio, _ := doc.Get("ratio")
	assert.Equal(t, 0.5, ratio)
	nothing, ok := doc.Get("nothing")
	assert.True(t, ok)
	assert.Nil(t, nothing)

	list, ok := samples[1].([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestDecodeYAML_timestamps(t *testing.T) {
	samples, err := DecodeYAML(strings.NewReader(`
date: 2024-01-01
stamp: 2001-12-14t21:59:43.10-05:00
tagged: !!timestamp 2002-12-14
quoted: "2024-01-01"
`))
	require.NoError(t, err)
	doc := samples[0].(*Record)
	for k, want := range map[string]string{
		"date":   "2024-01-01",
		"stamp":  "2001-12-14t21:59:43.10-05:00",
		"tagged": "2002-12-14",
		"quoted": "2024-01-01",
	} {
		v, _ := doc.Get(k)
		assert.Equal(t, want, v, k)
	}
}

func TestDecodeYAML_aliases(t *testing.T) {
	samples, err := DecodeYAML(strings.NewReader(`
base: &b {host: localhost}
copy: *b
`))
	require.NoError(t, err)
	cp, _ := samples[0].(*Record).Get("copy")
	assert.Equal(t, []string{"host"}, cp.(*Record).Keys())

	for name, src := range map[string]string{
		"self":     "a: &x\n  b: *x\n",
		"sequence": "- &x\n  - *x\n",
		"mutual":   "a: &x\n  b: &y\n    c: *x\n  d: *y\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(src))
			assert.ErrorContains(t, err, "nested deeper than")
		})
	}
}

func TestDecodeYAML_generate(t *testing.T) {
	samples, err := DecodeYAML(strings.NewReader(`
users:
  - name: a
    age: 3
  - name: b
`))
	require.NoError(t, err)
	out, err := defaultGen(t).Generate(samples[0])
	require.NoError(t, err)
	assert.Equal(t, decl(
		"type RootType = {",
		"  users: ContentType[];",
		"};",
		"",
		"type ContentType = {",
		"  name: string;",
		"  age?: number;",
		"};",
	), out)
}
