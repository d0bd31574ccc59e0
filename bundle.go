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
	"context"
	"io"

	"git.fractalqb.de/fractalqb/eloc"
	"github.com/gertd/go-pluralize"
	"golang.org/x/sync/errgroup"
)

// Source is one named example data set of a bundle.
type Source struct {
	Name string
	Data any
}

// BundleNames returns the root and element type names Bundle uses for
// source name.
func BundleNames(name string) (root, elem string) {
	p := pluralize.NewClient()
	return name + "Type", p.Singular(name) + "Type"
}

// Bundle writes the declarations of all sources to w. Each source gets a
// section headed by a comment with its name. Declarations are exported.
func (g *Generator) Bundle(ctx context.Context, w io.Writer, srcs []Source) error {
	sects := make([]string, len(srcs))
	grp, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, elem := BundleNames(src.Name)
			sg, err := g.WithOptions(RootTypeName(root), ArrayElementTypeName(elem))
			if err != nil {
				return eloc.Errorf("source '%s': %w", src.Name, err)
			}
			decls, err := sg.Infer(src.Data)
			if err != nil {
				return eloc.Errorf("source '%s': %w", src.Name, err)
			}
			sects[i] = sg.render(decls, true)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for i, src := range srcs {
		if _, err := io.WriteString(w, "\n// "+src.Name+"\n"+sects[i]+"\n"); err != nil {
			return eloc.At(err)
		}
	}
	return nil
}
