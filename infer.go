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

// Package typegen derives TypeScript-like type declarations and deep
// schemas from example values.
package typegen

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator derives type declarations from example values. A Generator is
// immutable and may be used concurrently.
type Generator struct {
	rootName string
	indent   int
	elemName string
	maxDepth int
}

func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rootName: DefaultRootTypeName,
		indent:   DefaultIndentSize,
		elemName: DefaultArrayElementTypeName,
		maxDepth: DefaultMaxDepth,
	}
	return g.WithOptions(opts...)
}

// WithOptions returns a new Generator that has the options of g except for
// those set by opts.
func (g *Generator) WithOptions(opts ...Option) (*Generator, error) {
	res := *g
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (g *Generator) RootTypeName() string         { return g.rootName }
func (g *Generator) IndentSize() int              { return g.indent }
func (g *Generator) ArrayElementTypeName() string { return g.elemName }
func (g *Generator) MaxDepth() int                { return g.maxDepth }

// inference is the state of one top-level call.
type inference struct {
	elemName string
	reg      registry
}

func (g *Generator) start() *inference {
	return &inference{elemName: g.elemName}
}

// classify infers the type of the normalized value v. Records can only be
// named if hint is not empty. Otherwise they are typed as Any.
func (inf *inference) classify(v any, hint string) Type {
	switch v := v.(type) {
	case nil:
		return Any
	case []any:
		if len(v) == 0 {
			return ListOf(Any)
		}
		if hint != "" && allRecords(v) {
			fields := inf.mergeFields(v)
			inf.reg.register(RecordType{Name: inf.elemName, Fields: fields})
			return ListOf(Ref(inf.elemName))
		}
		var ets []Type
		for _, e := range v {
			ets = addDistinct(ets, inf.classify(e, ""))
		}
		if len(ets) == 1 {
			return ListOf(ets[0])
		}
		return ListOf(Any)
	case *Record:
		if hint == "" {
			return Any
		}
		name := typeName(hint)
		inf.reg.register(RecordType{Name: name, Fields: inf.fields(v)})
		return Ref(name)
	case string:
		return String
	case bool:
		return Boolean
	case float64:
		return Number
	}
	return Any
}

// fields classifies the members of r. All fields are required.
func (inf *inference) fields(r *Record) []Field {
	res := make([]Field, 0, r.Len())
	for k, v := range r.All() {
		res = append(res, Field{Name: k, Type: inf.classify(v, k)})
	}
	return res
}

// mergeFields computes the common fields of the records in list. Elements
// that are not records are skipped but count as lacking every field.
func (inf *inference) mergeFields(list []any) []Field {
	type member struct {
		types     []Type
		occurence int
	}
	var (
		names []string
		mbrs  = make(map[string]*member)
	)
	for _, e := range list {
		r, ok := e.(*Record)
		if !ok {
			continue
		}
		for k, v := range r.All() {
			m := mbrs[k]
			if m == nil {
				m = new(member)
				mbrs[k] = m
				names = append(names, k)
			}
			m.types = addDistinct(m.types, inf.classify(v, k))
			m.occurence++
		}
	}
	res := make([]Field, len(names))
	for i, n := range names {
		m := mbrs[n]
		res[i] = Field{
			Name:     n,
			Type:     UnionOf(m.types...),
			Optional: m.occurence < len(list),
		}
	}
	return res
}

func allRecords(list []any) bool {
	for _, e := range list {
		if _, ok := e.(*Record); !ok {
			return false
		}
	}
	return true
}

// typeName derives a record type name from a field name.
func typeName(hint string) string {
	r, n := utf8.DecodeRuneInString(hint)
	var sb strings.Builder
	if r == utf8.RuneError {
		sb.WriteString(hint[:n])
	} else {
		sb.WriteString(cases.Upper(language.Und).String(hint[:n]))
	}
	sb.WriteString(hint[n:])
	sb.WriteString("Type")
	return sb.String()
}
