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
	"log"
	"maps"
	"slices"

	"git.fractalqb.de/fractalqb/typegen"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sahilm/fuzzy"
)

const (
	pgTree   = "tree"
	pgHelp   = "help"
	pgStat   = "stat"
	pgSearch = "search"
)

type browser struct {
	app    *tview.Application
	tree   *tview.TreeView
	helps  []*helpView
	pags   *tview.Pages
	path   *tview.TextView
	bottom *tview.Pages
	stat   *tview.TextView
	search *tview.InputField

	index searchBuild
	names []string
	hits  []*tview.TreeNode
	hit   int
}

func newBrowser(scm typegen.Schema, root string) *browser {
	b := &browser{
		app:    tview.NewApplication(),
		helps:  helpViews(),
		pags:   tview.NewPages(),
		path:   tview.NewTextView(),
		bottom: tview.NewPages(),
		stat:   tview.NewTextView().SetText("Press ? for help, / to search"),
		search: tview.NewInputField().SetLabel("/"),
		index:  make(searchBuild),
	}
	data := browseTree(scm, root, b.index)
	b.names = slices.Sorted(maps.Keys(b.index))
	b.tree = tview.NewTreeView().SetRoot(data).SetCurrentNode(data)

	b.tree.SetInputCapture(b.treeInput)
	b.tree.SetChangedFunc(func(node *tview.TreeNode) {
		b.path.SetText(nodePath(b.tree.GetPath(node)))
	})

	b.path.SetTextStyle(tcell.StyleDefault.Reverse(true).Bold(true))
	b.stat.SetTextStyle(tcell.StyleDefault.Reverse(true))
	b.search.SetDoneFunc(b.searchDone)
	b.bottom.AddPage(pgSearch, b.search, true, false).
		AddPage(pgStat, b.stat, true, true)

	for i, h := range b.helps {
		h.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch event.Key() {
			case tcell.KeyLeft:
				b.showHelp(i - 1)
			case tcell.KeyRight:
				b.showHelp(i + 1)
			default:
				b.pags.SendToFront(pgTree)
			}
			return nil
		})
		b.pags.AddPage(helpPage(i), modal(h, h.txtCols, h.txtRows), true, true)
	}
	b.pags.AddPage(pgTree, b.tree, true, true)
	return b
}

func (b *browser) run() {
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.path, 1, 0, false).
		AddItem(b.pags, 0, 1, true).
		AddItem(b.bottom, 1, 0, false)
	err := b.app.
		SetRoot(flex, true).
		SetFocus(b.tree).
		Run()
	if err != nil {
		log.Fatal(err)
	}
}

func (b *browser) treeInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'r':
		siblSetExpand(b.tree, true)
		return nil
	case 'm':
		siblSetExpand(b.tree, false)
		return nil
	case 'R':
		treeSetExpand(b.tree.GetCurrentNode(), true)
		return nil
	case 'M':
		treeSetExpand(b.tree.GetCurrentNode(), false)
		return nil
	case '/':
		b.search.SetText("")
		b.bottom.SwitchToPage(pgSearch)
		b.app.SetFocus(b.search)
		return nil
	case 'n':
		b.nextHit()
		return nil
	case '?':
		b.showHelp(0)
		return nil
	}
	return event
}

func (b *browser) showHelp(i int) {
	if len(b.helps) == 0 {
		return
	}
	i = (i + len(b.helps)) % len(b.helps)
	b.pags.SendToFront(helpPage(i))
}

func helpPage(i int) string { return fmt.Sprintf("%s%d", pgHelp, i) }

func (b *browser) searchDone(key tcell.Key) {
	b.bottom.SwitchToPage(pgStat)
	b.app.SetFocus(b.tree)
	if key != tcell.KeyEnter {
		return
	}
	b.hits = b.hits[:0]
	for _, m := range fuzzy.Find(b.search.GetText(), b.names) {
		b.hits = append(b.hits, b.index[m.Str]...)
	}
	b.hit = -1
	b.nextHit()
}

func (b *browser) nextHit() {
	if len(b.hits) == 0 {
		b.stat.SetText("No matching property")
		return
	}
	b.hit = (b.hit + 1) % len(b.hits)
	n := b.hits[b.hit]
	path := b.tree.GetPath(n)
	if len(path) > 0 {
		pathSetExpand(path[:len(path)-1])
	}
	b.tree.SetCurrentNode(n)
	b.path.SetText(nodePath(path))
	b.stat.SetText(fmt.Sprintf("Match %d/%d, press n for next", b.hit+1, len(b.hits)))
}

func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
