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
	"fmt"
	"strconv"
	"strings"

	"git.fractalqb.de/fractalqb/typegen"
	"github.com/rivo/tview"
)

// searchBuild collects the tree nodes of properties by name
type searchBuild = map[string][]*tview.TreeNode

func browseTree(scm typegen.Schema, root string, srb searchBuild) *tview.TreeNode {
	fldRoot := stdFolder(fmt.Sprintf("[::b]%s[::-] (%d properties)", tview.Escape(root), len(scm)))
	res := tview.NewTreeNode(fldRoot.label(true))
	initRef(res, &fldRoot, nil)
	for _, p := range scm {
		res.AddChild(browseProperty(p, srb))
	}
	fldRoot.fold(res)
	return res
}

func browseProperty(p typegen.Property, srb searchBuild) (res *tview.TreeNode) {
	var sb strings.Builder
	name := tview.Escape(strconv.Quote(p.Name))
	if p.Optional {
		fmt.Fprintf(&sb, "[::b]%s[::-] [blue::]optional[-::]", name)
	} else {
		fmt.Fprintf(&sb, "[::bu]%s[::-] [orange::]mandatory[-::]", name)
	}
	fmt.Fprintf(&sb, ": %s", tview.Escape(p.Type.String()))
	text := sb.String()
	defer func() { srb[p.Name] = append(srb[p.Name], res) }()
	if len(p.Children) == 0 {
		res = tview.NewTreeNode("  " + text)
		initRef(res, nil, p)
		return res
	}
	fldProp := folder{
		text:  fmt.Sprintf("%s (%d properties)", text, len(p.Children)),
		open:  "┯ ",
		close: "━ ",
	}
	res = tview.NewTreeNode(fldProp.label(true))
	initRef(res, &fldProp, p)
	for _, c := range p.Children {
		res.AddChild(browseProperty(c, srb))
	}
	fldProp.fold(res)
	return res
}

type folder struct {
	open, close, text string
}

func stdFolder(text string) folder {
	return folder{
		open:  "▼ ",
		close: "▶ ",
		text:  text,
	}
}

func (f *folder) label(open bool) string {
	if open {
		return f.open + f.text
	}
	return f.close + f.text
}

func (f *folder) fold(n *tview.TreeNode) {
	n.SetSelectable(true)
	n.SetSelectedFunc(func() {
		n.SetExpanded(!n.IsExpanded())
		n.SetText(f.label(n.IsExpanded()))
	})
}

func nodePath(p []*tview.TreeNode) string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, n := range p {
		prop, ok := getInfo(n).(typegen.Property)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, ".%s", prop.Name)
		for range prop.Type.Depth() {
			sb.WriteString("[*]")
		}
	}
	return sb.String()
}

type ref struct {
	fld  *folder
	info any
}

func initRef(n *tview.TreeNode, f *folder, info any) {
	n.SetReference(ref{f, info})
}

func getFolder(n *tview.TreeNode) *folder {
	tmp := n.GetReference()
	if tmp == nil {
		return nil
	}
	r, ok := tmp.(ref)
	if ok {
		return r.fld
	}
	return nil
}

func getInfo(n *tview.TreeNode) any {
	tmp := n.GetReference()
	if tmp == nil {
		return nil
	}
	r, ok := tmp.(ref)
	if ok {
		return r.info
	}
	return nil
}

func treeSetExpand(n *tview.TreeNode, exp bool) {
	if f := getFolder(n); f != nil {
		n.SetExpanded(exp)
		n.SetText(f.label(exp))
	}
	for _, c := range n.GetChildren() {
		treeSetExpand(c, exp)
	}
}

func pathSetExpand(path []*tview.TreeNode) {
	for _, n := range path {
		if f := getFolder(n); f != nil && !n.IsExpanded() {
			n.SetExpanded(true)
			n.SetText(f.label(true))
		}
	}
}

func siblSetExpand(b *tview.TreeView, exp bool) {
	path := b.GetPath(b.GetCurrentNode())
	if len(path) < 2 {
		return
	}
	parent := path[len(path)-2]
	for _, c := range parent.GetChildren() {
		if f := getFolder(c); f != nil {
			c.SetExpanded(exp)
			c.SetText(f.label(exp))
		}
	}
}
