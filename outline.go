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
	"io"

	"git.fractalqb.de/fractalqb/tetrta"
)

type OutlineConfig struct {
	TreeStyle *tetrta.TreeStyle
	// Root is printed as the first line if not empty.
	Root string
}

// Outline prints deep schemas as a tree with one line per property.
type Outline struct {
	w    io.Writer
	tree tetrta.Tree
	OutlineConfig
}

func NewOutline(w io.Writer, cfg *OutlineConfig) *Outline {
	res := &Outline{w: w}
	if cfg != nil {
		res.OutlineConfig = *cfg
		res.tree.Style = cfg.TreeStyle
	}
	return res
}

func (o *Outline) Print(s Schema) error {
	if o.Root != "" {
		if _, err := fmt.Fprintln(o.w, o.Root); err != nil {
			return err
		}
		o.tree.Descend()
		defer o.tree.Ascend(1)
	}
	return o.props(s)
}

func (o *Outline) props(s Schema) error {
	for i, p := range s {
		var pf string
		if i == len(s)-1 {
			pf = o.tree.Last(nil)
		} else {
			pf = o.tree.Next(nil)
		}
		if _, err := fmt.Fprintf(o.w, "%s%s\n", pf, PropertyLabel(p)); err != nil {
			return err
		}
		if len(p.Children) > 0 {
			o.tree.Descend()
			if err := o.props(p.Children); err != nil {
				return err
			}
			o.tree.Ascend(1)
		}
	}
	return nil
}

func PropertyLabel(p Property) string {
	opt := ""
	if p.Optional {
		opt = "?"
	}
	return fmt.Sprintf("%q%s %s", p.Name, opt, p.Type)
}
