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
)

func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	switch t.kind {
	case StringKind:
		sb.WriteString("string")
	case NumberKind:
		sb.WriteString("number")
	case BooleanKind:
		sb.WriteString("boolean")
	case RefKind:
		sb.WriteString(t.ref)
	case ListKind:
		t.Elem().writeTo(sb)
		sb.WriteString("[]")
	case UnionKind:
		for i, a := range t.alts {
			if i > 0 {
				sb.WriteString(" | ")
			}
			a.writeTo(sb)
		}
	default:
		sb.WriteString("any")
	}
}

type renderer struct {
	indent string
	export bool
	sb     strings.Builder
	blocks int
}

func (g *Generator) renderer() *renderer {
	return &renderer{indent: strings.Repeat(" ", g.indent)}
}

func (r *renderer) startDecl(name string) {
	if r.blocks > 0 {
		r.sb.WriteString("\n\n")
	}
	r.blocks++
	if r.export {
		r.sb.WriteString("export ")
	}
	r.sb.WriteString("type ")
	r.sb.WriteString(name)
	r.sb.WriteString(" = ")
}

func (r *renderer) record(rt RecordType) {
	r.startDecl(rt.Name)
	r.sb.WriteString("{\n")
	if len(rt.Fields) == 0 {
		r.sb.WriteByte('\n')
	}
	for _, f := range rt.Fields {
		r.sb.WriteString(r.indent)
		r.sb.WriteString(f.Name)
		if f.Optional {
			r.sb.WriteByte('?')
		}
		r.sb.WriteString(": ")
		f.Type.writeTo(&r.sb)
		r.sb.WriteString(";\n")
	}
	r.sb.WriteString("};")
}

func (r *renderer) alias(name string, t Type) {
	r.startDecl(name)
	t.writeTo(&r.sb)
	r.sb.WriteByte(';')
}

func (r *renderer) String() string { return r.sb.String() }

// Render renders the declaration of a single record type.
func (g *Generator) Render(rt RecordType) string {
	r := g.renderer()
	r.record(rt)
	return r.String()
}
