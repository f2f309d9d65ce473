// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/painter.go
// Summary: Rasterizes the element tree onto a cell grid and a tcell screen.
// Notes: Element boxes are in document pixels; one cell covers CellW x CellH.

package termui

import (
	"strings"

	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/wm"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws a document. Busy reports whether a drag or resize is in
// progress so the frame can be highlighted.
type Painter struct {
	Theme        Theme
	CellW, CellH int
	Busy         func() bool
}

// NewPainter returns a painter for the given cell size.
func NewPainter(theme Theme, cellW, cellH int) *Painter {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	return &Painter{Theme: theme, CellW: cellW, CellH: cellH}
}

type cellRect struct {
	x, y, w, h int
}

func (p *Painter) cells(r dom.Rect) cellRect {
	return cellRect{x: r.X / p.CellW, y: r.Y / p.CellH, w: r.W / p.CellW, h: r.H / p.CellH}
}

// Render paints the visible tree onto a cols x rows grid.
func (p *Painter) Render(doc *dom.Document, cols, rows int) *dom.Canvas {
	frame := dom.NewCanvas(cols, rows, p.Theme.Desktop)
	doc.Walk(func(e *dom.Element) {
		p.paint(frame, e)
	})
	return frame
}

// Paint renders doc and copies it to screen. The caller calls Show.
func (p *Painter) Paint(screen tcell.Screen, doc *dom.Document) {
	cols, rows := screen.Size()
	frame := p.Render(doc, cols, rows)
	for y := 0; y < frame.H; y++ {
		for x := 0; x < frame.W; x++ {
			cell := frame.Cells[y][x]
			if cell.Ch == 0 {
				// Trailing half of a wide rune.
				continue
			}
			screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
}

func (p *Painter) paint(c *dom.Canvas, e *dom.Element) {
	r := p.cells(e.Box)
	if r.w <= 0 || r.h <= 0 {
		return
	}
	switch {
	case e.HasClass(wm.ClassContainer):
		fill(c, r, p.Theme.Surface)
		style := p.Theme.Frame
		if p.Busy != nil && p.Busy() {
			style = p.Theme.FrameBusy
		}
		border(c, r, style)
	case e.HasClass(wm.ClassHeader):
		fill(c, r, p.Theme.Header)
	case e.HasClass(wm.ClassTitle):
		text(c, r, 1, e.Text, p.Theme.Header)
	case e.HasClass(wm.ClassTab):
		fill(c, r, p.tabStyle(e))
	case e.HasClass(wm.ClassTabLabel), e.HasClass(wm.ClassTabClose):
		text(c, r, 0, e.Text, p.tabStyle(e.Parent()))
	case e.HasClass(wm.ClassControl):
		fill(c, r, p.Theme.Control)
		text(c, r, (r.w-runewidth.StringWidth(e.Text))/2, e.Text, p.Theme.Control)
	case e.HasClass(wm.ClassBody):
		fill(c, r, p.Theme.Surface)
	case e.HasClass(wm.ClassContent):
		p.paintContent(c, r, e)
	case e.HasClass(wm.ClassResize):
		// The border already covers the handles.
	case e.HasClass(wm.ClassDock):
		fill(c, r, p.Theme.Dock)
	case e.HasClass(wm.ClassDockChip):
		fill(c, r, p.Theme.Chip)
		text(c, r, 1, e.Text, p.Theme.Chip)
	case e.HasClass(wm.ClassNotice):
		fill(c, r, p.Theme.Notice)
		text(c, r, 1, e.Text, p.Theme.Notice)
	default:
		if e.Text != "" {
			lines(c, r, e.Text, p.Theme.Surface)
		}
	}
}

func (p *Painter) tabStyle(tab *dom.Element) tcell.Style {
	if tab != nil && tab.HasClass("active") {
		return p.Theme.TabActive
	}
	return p.Theme.Tab
}

func (p *Painter) paintContent(c *dom.Canvas, r cellRect, e *dom.Element) {
	fill(c, r, p.Theme.Surface)
	if e.Drawer == nil {
		lines(c, r, e.Text, p.Theme.Surface)
		return
	}
	sub := dom.NewCanvas(r.w, r.h, p.Theme.Surface)
	e.Drawer.Draw(sub)
	for y := 0; y < sub.H; y++ {
		for x := 0; x < sub.W; x++ {
			cell := sub.Cells[y][x]
			c.Set(r.x+x, r.y+y, cell.Ch, cell.Style)
		}
	}
}

func fill(c *dom.Canvas, r cellRect, style tcell.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.Set(x, y, ' ', style)
		}
	}
}

func border(c *dom.Canvas, r cellRect, style tcell.Style) {
	if r.w < 2 || r.h < 2 {
		return
	}
	right, bottom := r.x+r.w-1, r.y+r.h-1
	for x := r.x; x <= right; x++ {
		c.Set(x, r.y, tcell.RuneHLine, style)
		c.Set(x, bottom, tcell.RuneHLine, style)
	}
	for y := r.y; y <= bottom; y++ {
		c.Set(r.x, y, tcell.RuneVLine, style)
		c.Set(right, y, tcell.RuneVLine, style)
	}
	c.Set(r.x, r.y, tcell.RuneULCorner, style)
	c.Set(right, r.y, tcell.RuneURCorner, style)
	c.Set(r.x, bottom, tcell.RuneLLCorner, style)
	c.Set(right, bottom, tcell.RuneLRCorner, style)
}

// text writes one line clipped to the rect, starting off cells in.
func text(c *dom.Canvas, r cellRect, off int, s string, style tcell.Style) {
	if off < 0 {
		off = 0
	}
	avail := r.w - off
	if avail <= 0 || s == "" {
		return
	}
	s = runewidth.Truncate(s, avail, "")
	c.Text(r.x+off, r.y, s, style)
}

func lines(c *dom.Canvas, r cellRect, s string, style tcell.Style) {
	for i, line := range strings.Split(s, "\n") {
		if i >= r.h {
			return
		}
		text(c, cellRect{x: r.x, y: r.y + i, w: r.w, h: 1}, 0, line, style)
	}
}
