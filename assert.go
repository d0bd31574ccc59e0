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
	"fmt"
)

// Expected is the expected type of one property in a deep assertion.
type Expected struct {
	Name string
	// Type is the expected type in the rendered type-expression syntax.
	Type     string
	Optional bool
	// Children, if not nil, are checked against the property's value.
	Children Expect
}

// Expect is a hand-written expected schema tree.
type Expect []Expected

type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return "missing property at " + e.Path
}

type MismatchError struct {
	Path                             string
	ExpectedType, ActualType         string
	ExpectedOptional, ActualOptional bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %s: expected {type: %s, optional: %t}, got {type: %s, optional: %t}",
		e.Path,
		e.ExpectedType, e.ExpectedOptional,
		e.ActualType, e.ActualOptional,
	)
}

var (
	_ error = (*MissingError)(nil)
	_ error = (*MismatchError)(nil)
)

// AssertDeep checks that every property in expected is present in the deep
// schema of data with the expected type and optionality. Properties of data
// that are not expected are not checked. The first deviation is returned
// as *MissingError or *MismatchError.
func (g *Generator) AssertDeep(data any, expected Expect) error {
	return g.AssertDeepAt(data, expected, "")
}

// AssertDeepAt is AssertDeep with error paths prefixed by path.
func (g *Generator) AssertDeepAt(data any, expected Expect, path string) error {
	data, err := normalize(data, 0, g.maxDepth)
	if err != nil {
		return err
	}
	return g.start().assertDeep(data, expected, path)
}

func (inf *inference) assertDeep(data any, expected Expect, path string) error {
	actual := inf.deep(data)
	for _, exp := range expected {
		act, ok := actual.Get(exp.Name)
		if !ok {
			return &MissingError{Path: path + exp.Name}
		}
		if at := act.Type.String(); at != exp.Type || act.Optional != exp.Optional {
			return &MismatchError{
				Path:             path + exp.Name,
				ExpectedType:     exp.Type,
				ExpectedOptional: exp.Optional,
				ActualType:       at,
				ActualOptional:   act.Optional,
			}
		}
		if exp.Children == nil {
			continue
		}
		var nested any
		switch data := data.(type) {
		case []any:
			nested = collect(data, exp.Name)
		case *Record:
			nested, _ = data.Get(exp.Name)
		}
		if err := inf.assertDeep(nested, exp.Children, path+exp.Name+"."); err != nil {
			return err
		}
	}
	return nil
}
