// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/window.go
// Summary: Window records and the descriptor callers create them from.

package wm

import (
	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/gdamore/tcell/v2"
)

// KeyHandler is implemented by content that accepts keyboard input.
type KeyHandler interface {
	HandleKey(ev *tcell.EventKey) bool
}

// Descriptor describes a window to create.
type Descriptor struct {
	ID    string
	Title string

	// Content is the payload painted inside the window. The manager never
	// inspects it beyond drawing.
	Content dom.Drawer

	// Width and Height size the shared container when this window causes it
	// to be created. Zero means the configured default.
	Width, Height int

	// OnInit runs once, on a later loop turn, after the content root is
	// attached to the document.
	OnInit func(root *dom.Element)

	// OnClose runs when the window is closed.
	OnClose func()
}

// Window is the record kept for each live window.
type Window struct {
	ID      string
	Title   string
	Content dom.Drawer

	// Element is the content root; TabElement is the tab strip entry. Both
	// live as long as the record.
	Element    *dom.Element
	TabElement *dom.Element

	// Popup is non-nil only while IsInPopup is true.
	Popup       Popup
	IsMinimized bool
	IsInPopup   bool

	onInit    func(root *dom.Element)
	onClose   func()
	pollTimer eventloop.Timer
	label     *dom.Element
}
