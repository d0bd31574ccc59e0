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
	"unicode/utf8"

	"git.fractalqb.de/fractalqb/eloc"
)

const (
	DefaultRootTypeName         = "RootType"
	DefaultIndentSize           = 2
	DefaultArrayElementTypeName = "ContentType"
	DefaultMaxDepth             = 512
)

// Option configures a Generator. Options that are not given keep the value
// of the Generator they are applied to.
type Option func(*Generator) error

// RootTypeName sets the name of the top-level type declaration.
func RootTypeName(name string) Option {
	return func(g *Generator) error {
		if err := checkTypeName(name); err != nil {
			return eloc.Errorf("root type name: %w", err)
		}
		g.rootName = name
		return nil
	}
}

// IndentSize sets the number of spaces fields are indented with.
func IndentSize(n int) Option {
	return func(g *Generator) error {
		if n < 0 {
			return eloc.Errorf("negative indent size %d", n)
		}
		g.indent = n
		return nil
	}
}

// ArrayElementTypeName sets the name of the record type that describes the
// elements of a list of records.
func ArrayElementTypeName(name string) Option {
	return func(g *Generator) error {
		if err := checkTypeName(name); err != nil {
			return eloc.Errorf("array element type name: %w", err)
		}
		g.elemName = name
		return nil
	}
}

// MaxDepth limits how deep example values may be nested.
func MaxDepth(n int) Option {
	return func(g *Generator) error {
		if n <= 0 {
			return eloc.Errorf("max depth %d not positive", n)
		}
		g.maxDepth = n
		return nil
	}
}

func checkTypeName(name string) error {
	switch {
	case name == "":
		return eloc.New("empty type name")
	case !utf8.ValidString(name):
		return eloc.Errorf("type name %q is not valid UTF-8", name)
	}
	return nil
}
