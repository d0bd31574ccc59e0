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
	"git.fractalqb.de/fractalqb/eloc"
)

// Declarations is the result of inferring the types of one example value.
// Types holds the named record types in the order they are rendered.
type Declarations struct {
	Root  string
	Types []RecordType
	// Alias is set if the root declaration is a list of the element type.
	Alias *Type
}

// Generate renders the type declarations for data, which must be a record
// or a list of records.
func (g *Generator) Generate(data any) (string, error) {
	decls, err := g.Infer(data)
	if err != nil {
		return "", err
	}
	return g.render(decls, false), nil
}

// Infer computes the declarations Generate renders.
func (g *Generator) Infer(data any) (*Declarations, error) {
	data, err := normalize(data, 0, g.maxDepth)
	if err != nil {
		return nil, err
	}
	inf := g.start()
	res := &Declarations{Root: g.rootName}
	switch data := data.(type) {
	case []any:
		if len(data) == 0 {
			t := ListOf(Any)
			res.Alias = &t
			return res, nil
		}
		fields := inf.mergeFields(data)
		res.Types = append(res.Types, RecordType{Name: g.elemName, Fields: fields})
		res.Types = append(res.Types, inf.reg.types()...)
		t := ListOf(Ref(g.elemName))
		res.Alias = &t
	case *Record:
		root := RecordType{Name: g.rootName, Fields: inf.fields(data)}
		res.Types = append(res.Types, root)
		res.Types = append(res.Types, inf.reg.types()...)
	case nil:
		return nil, eloc.New("cannot generate types from null, need record or list")
	default:
		if ValueTypeOf(data).Scalar() {
			return nil, eloc.Errorf("cannot generate types from scalar %v, need record or list", data)
		}
		return nil, eloc.Errorf("cannot generate types from %T, need record or list", data)
	}
	return res, nil
}

func (g *Generator) render(decls *Declarations, export bool) string {
	r := g.renderer()
	r.export = export
	for _, rt := range decls.Types {
		r.record(rt)
	}
	if decls.Alias != nil {
		r.alias(decls.Root, *decls.Alias)
	}
	return r.String()
}
