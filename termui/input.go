// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termui/input.go
// Summary: Turns terminal mouse reports into document pointer events.
// Notes: Terminals report button state, not transitions, so presses and
// releases are derived from the previous button mask.

package termui

import (
	"github.com/framegrace/texeltabs/dom"
	"github.com/gdamore/tcell/v2"
)

// Input converts mouse reports in cell coordinates into dispatched events.
type Input struct {
	doc          *dom.Document
	cellW, cellH int

	lastButtons tcell.ButtonMask
	pressTarget *dom.Element
}

// NewInput returns an input translator for doc.
func NewInput(doc *dom.Document, cellW, cellH int) *Input {
	return &Input{doc: doc, cellW: cellW, cellH: cellH}
}

// HandleMouse processes one tcell mouse event.
func (in *Input) HandleMouse(ev *tcell.EventMouse) {
	if ev == nil {
		return
	}
	x, y := ev.Position()
	in.Mouse(x, y, ev.Buttons())
}

// Mouse processes a report at cell col,row with the given buttons held.
func (in *Input) Mouse(col, row int, buttons tcell.ButtonMask) {
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		// Wheel reports do not carry held buttons reliably.
		return
	}
	prev := in.lastButtons
	in.lastButtons = buttons
	x, y := col*in.cellW, row*in.cellH

	down := buttons&tcell.Button1 != 0
	wasDown := prev&tcell.Button1 != 0
	switch {
	case down && !wasDown:
		in.pressTarget = in.doc.Dispatch(&dom.Event{Type: dom.PointerDown, X: x, Y: y, Buttons: buttons})
	case !down && wasDown:
		target := in.doc.Dispatch(&dom.Event{Type: dom.PointerUp, X: x, Y: y, Buttons: buttons})
		pressed := in.pressTarget
		in.pressTarget = nil
		if pressed != nil && pressed == target && in.doc.Contains(target) {
			in.doc.Dispatch(&dom.Event{Type: dom.Click, X: x, Y: y, Buttons: buttons, Target: target})
		}
	default:
		in.doc.Dispatch(&dom.Event{Type: dom.PointerMove, X: x, Y: y, Buttons: buttons})
	}
}
