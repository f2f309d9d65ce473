// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/html.go
// Summary: Serializes an element subtree into a static HTML snapshot.
// Usage: Used by the popup host to show a window outside the terminal.

package dom

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HTMLOptions controls how drawers are rasterized into the snapshot.
type HTMLOptions struct {
	CellWidth, CellHeight int

	// Width and Height override the root box size in pixels when non-zero.
	Width, Height int
}

func (o HTMLOptions) cells(box Rect, root bool) (int, int) {
	cw, ch := o.CellWidth, o.CellHeight
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	w, h := box.W, box.H
	if root && o.Width > 0 {
		w = o.Width
	}
	if root && o.Height > 0 {
		h = o.Height
	}
	return w / cw, h / ch
}

// WriteHTML writes el and its subtree as HTML.
func WriteHTML(w io.Writer, el *Element, opts HTMLOptions) error {
	bw := bufio.NewWriter(w)
	writeElement(bw, el, opts, true)
	return bw.Flush()
}

func writeElement(w *bufio.Writer, el *Element, opts HTMLOptions, root bool) {
	tag := el.Tag
	if tag == "" {
		tag = "div"
	}
	w.WriteString("<" + tag)
	if el.ID != "" {
		fmt.Fprintf(w, ` id="%s"`, html.EscapeString(el.ID))
	}
	if len(el.classes) > 0 {
		fmt.Fprintf(w, ` class="%s"`, html.EscapeString(strings.Join(el.classes, " ")))
	}
	keys := make([]string, 0, len(el.attrs))
	for k := range el.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, ` %s="%s"`, html.EscapeString(k), html.EscapeString(el.attrs[k]))
	}
	if el.hidden && !root {
		w.WriteString(" hidden")
	}
	w.WriteString(">")
	if el.Text != "" {
		w.WriteString(html.EscapeString(el.Text))
	}
	if el.Drawer != nil {
		cols, rows := opts.cells(el.Box, root)
		c := NewCanvas(cols, rows, tcell.StyleDefault)
		el.Drawer.Draw(c)
		writeCanvas(w, c)
	}
	for _, child := range el.children {
		writeElement(w, child, opts, false)
	}
	w.WriteString("</" + tag + ">")
}

// writeCanvas emits the grid as a <pre> block, one span per style run.
func writeCanvas(w *bufio.Writer, c *Canvas) {
	w.WriteString("<pre>")
	for y := 0; y < c.H; y++ {
		var run strings.Builder
		var runStyle tcell.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if css := StyleCSS(runStyle); css != "" {
				fmt.Fprintf(w, `<span style="%s">%s</span>`, css, html.EscapeString(run.String()))
			} else {
				w.WriteString(html.EscapeString(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.W; x++ {
			cell := c.Cells[y][x]
			if cell.Ch == 0 {
				continue
			}
			if cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			run.WriteRune(cell.Ch)
		}
		flush()
		if y < c.H-1 {
			w.WriteString("\n")
		}
	}
	w.WriteString("</pre>")
}

// StyleCSS converts a cell style into inline CSS declarations.
func StyleCSS(style tcell.Style) string {
	fg, bg, attrs := style.Decompose()
	var parts []string
	if hex, ok := ColorHex(fg); ok {
		parts = append(parts, "color:"+hex)
	}
	if hex, ok := ColorHex(bg); ok {
		parts = append(parts, "background:"+hex)
	}
	if attrs&tcell.AttrBold != 0 {
		parts = append(parts, "font-weight:bold")
	}
	if attrs&tcell.AttrItalic != 0 {
		parts = append(parts, "font-style:italic")
	}
	if attrs&tcell.AttrUnderline != 0 {
		parts = append(parts, "text-decoration:underline")
	}
	return strings.Join(parts, ";")
}

// ColorHex returns the #rrggbb form of c, or false for default colors.
func ColorHex(c tcell.Color) (string, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return "", false
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return "", false
	}
	cc := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return cc.Hex(), true
}
