// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/canvas.go
// Summary: Cell grid that element drawers paint into.

package dom

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is a single character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	W, H  int
	Cells [][]Cell
	Base  tcell.Style
}

// NewCanvas allocates a canvas filled with spaces in base style.
func NewCanvas(w, h int, base tcell.Style) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{W: w, H: h, Base: base}
	c.Cells = make([][]Cell, h)
	for y := range c.Cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: base}
		}
		c.Cells[y] = row
	}
	return c
}

// Set writes one cell, ignoring coordinates outside the grid.
func (c *Canvas) Set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.Cells[y][x] = Cell{Ch: ch, Style: style}
}

// Get returns the cell at x, y or a blank cell outside the grid.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Cell{Ch: ' ', Style: c.Base}
	}
	return c.Cells[y][x]
}

// Text writes s starting at x, y and returns the column after the last rune.
// Wide runes occupy two cells; text past the right edge is clipped.
func (c *Canvas) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.W {
			break
		}
		c.Set(x, y, r, style)
		for i := 1; i < w; i++ {
			c.Set(x+i, y, 0, style)
		}
		x += w
	}
	return x
}

// Fill paints the whole canvas with ch in style.
func (c *Canvas) Fill(ch rune, style tcell.Style) {
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			c.Cells[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}
