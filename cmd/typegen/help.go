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

package main

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"

	"git.fractalqb.de/fractalqb/eloc/must"
	"github.com/rivo/tview"
)

//go:embed help
var help embed.FS

type helpView struct {
	*tview.TextView
	name             string
	txtRows, txtCols int
}

// helpViews loads one view per text file in help/. Files are ordered by
// name and titled by the name without its numeric prefix.
func helpViews() (res []*helpView) {
	hfs := must.RetCtx(fs.ReadDir(help, "help")).Msg("list help texts")
	for _, hf := range hfs {
		res = append(res, newHelpView(path.Join("help", hf.Name())))
	}
	for i, h := range res {
		title := strings.TrimSuffix(path.Base(h.name), path.Ext(h.name))
		if _, t, ok := strings.Cut(title, "-"); ok {
			title = t
		}
		h.SetBorder(true).SetTitle(fmt.Sprintf(" %s %d/%d (🠈 🠊 ESC) ", title, i+1, len(res)))
	}
	return res
}

func newHelpView(name string) *helpView {
	txt := must.RetCtx(fs.ReadFile(help, name)).Msg("help file")
	res := &helpView{
		TextView: tview.NewTextView().SetDynamicColors(false),
		txtRows:  2,
	}
	scn := bufio.NewScanner(bytes.NewReader(txt))
	for scn.Scan() {
		res.txtRows++
		res.txtCols = max(res.txtCols, utf8.RuneCount(scn.Bytes()))
	}
	res.txtCols += 2
	res.SetText(strings.TrimRight(string(txt), "\n"))
	res.name = name
	return res
}
