// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/text.go
// Summary: Scrollable plain-text window content.

package content

import (
	"strings"

	"github.com/framegrace/texeltabs/dom"
	"github.com/gdamore/tcell/v2"
)

const tabWidth = 4

// span is a run of text in one style.
type span struct {
	text  string
	style tcell.Style
}

// Text draws lines of text and scrolls with the arrow and page keys.
type Text struct {
	lines  [][]span
	offset int
	height int
	// Style overrides the canvas base style when set.
	Style tcell.Style
}

// NewText returns plain text content.
func NewText(s string) *Text {
	t := &Text{}
	t.SetText(s)
	return t
}

// SetText replaces the content and scrolls back to the top.
func (t *Text) SetText(s string) {
	raw := strings.Split(expandTabs(s), "\n")
	t.lines = make([][]span, len(raw))
	for i, line := range raw {
		t.lines[i] = []span{{text: line}}
	}
	t.offset = 0
}

// Lines returns the number of lines held.
func (t *Text) Lines() int {
	return len(t.lines)
}

// Offset returns the first visible line.
func (t *Text) Offset() int {
	return t.offset
}

// Draw paints the visible lines.
func (t *Text) Draw(c *dom.Canvas) {
	t.height = c.H
	t.clamp()
	base := c.Base
	if t.Style != tcell.StyleDefault {
		base = t.Style
		c.Fill(' ', base)
	}
	for y := 0; y < c.H; y++ {
		i := t.offset + y
		if i >= len(t.lines) {
			break
		}
		x := 0
		for _, sp := range t.lines[i] {
			style := sp.style
			if style == tcell.StyleDefault {
				style = base
			}
			x = c.Text(x, y, sp.text, style)
			if x >= c.W {
				break
			}
		}
	}
}

// HandleKey scrolls. It reports whether the key was used.
func (t *Text) HandleKey(ev *tcell.EventKey) bool {
	page := t.height - 1
	if page < 1 {
		page = 1
	}
	switch ev.Key() {
	case tcell.KeyUp:
		t.offset--
	case tcell.KeyDown:
		t.offset++
	case tcell.KeyPgUp:
		t.offset -= page
	case tcell.KeyPgDn:
		t.offset += page
	case tcell.KeyHome:
		t.offset = 0
	case tcell.KeyEnd:
		t.offset = len(t.lines)
	default:
		return false
	}
	t.clamp()
	return true
}

func (t *Text) clamp() {
	last := len(t.lines) - t.height
	if t.height <= 0 {
		last = len(t.lines) - 1
	}
	if t.offset > last {
		t.offset = last
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
