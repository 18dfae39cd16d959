package server

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	tm "github.com/nsf/termbox-go"

	"weavelab.xyz/nettest/ui"
)

// drawRunes writes text starting at x. Double width runes take two cells.
func drawRunes(x, y int, text string, fg, bg tm.Attribute) {
	for _, r := range text {
		tm.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
}

func fillCells(x, y, w int, r rune, fg, bg tm.Attribute) {
	for i := 0; i < w; i++ {
		tm.SetCell(x+i, y, r, fg, bg)
	}
}

// titledRule draws a horizontal line of width w with text centred on it.
func titledRule(x, y, w int, text string) {
	fillCells(x, y, w, ui.Symbols[ui.SymbolHorizontal], tm.ColorWhite, tm.ColorDefault)
	drawRunes(x+(w-runewidth.StringWidth(text))/2, y, text, tm.ColorWhite, tm.ColorDefault)
}

func verticalRule(x, y, h int) {
	tm.SetCell(x, y, ui.Symbols[ui.SymbolMiddleTop], tm.ColorWhite, tm.ColorDefault)
	for i := 1; i < h; i++ {
		tm.SetCell(x, y+i, ui.Symbols[ui.SymbolVertical], tm.ColorWhite, tm.ColorDefault)
	}
}

// textField clears w cells and writes text from the left edge.
func textField(x, y, w int, text string, fg, bg tm.Attribute) {
	fillCells(x, y, w, ' ', fg, bg)
	drawRunes(x, y, text, fg, bg)
}

func centeredField(x, y, w int, text string, fg, bg tm.Attribute) {
	fillCells(x, y, w, ' ', fg, bg)
	drawRunes(x+(w-runewidth.StringWidth(text))/2, y, text, fg, bg)
}

// grid lays out fixed width columns a row at a time from (x, y).
type grid struct {
	widths     []int
	x, y       int
	row        int
	alignRight bool
}

func (g *grid) reset() {
	g.row = 0
}

func (g *grid) width() int {
	w := len(g.widths) + 1
	for _, cw := range g.widths {
		w += cw
	}
	return w
}

// rule fills the next row with fill and puts sep between columns.
func (g *grid) rule(fill, sep rune) {
	y := g.y + g.row
	fillCells(g.x, y, g.width(), fill, tm.ColorDefault, tm.ColorDefault)
	off := 0
	for _, cw := range g.widths[:len(g.widths)-1] {
		off += cw + 1
		tm.SetCell(g.x+off, y, sep, tm.ColorDefault, tm.ColorDefault)
	}
	g.row++
}

func (g *grid) top() {
	g.rule(ui.Symbols[ui.SymbolHorizontal], ui.Symbols[ui.SymbolMiddleTop])
}

func (g *grid) divider() {
	g.rule(ui.Symbols[ui.SymbolHorizontal], ui.Symbols[ui.SymbolMiddleMiddle])
}

func (g *grid) line(cells []string) {
	g.rule(ui.Symbols[ui.SymbolSpace], ui.Symbols[ui.SymbolVertical])
	y := g.y + g.row - 1
	off := 1
	for i, cw := range g.widths {
		if i >= len(cells) {
			break
		}
		x := g.x + off
		var s string
		if g.alignRight {
			s = fmt.Sprintf("%*s", cw, cells[i])
		} else {
			s = fmt.Sprintf("%-*s", cw, cells[i])
			if i == 0 {
				x--
			}
		}
		textField(x, y, cw, s, tm.ColorDefault, tm.ColorDefault)
		off += cw + 1
	}
}
