// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/container.go
// Summary: The shared tabbed container: element construction and layout.

package wm

import (
	"github.com/framegrace/texeltabs/dom"
	"github.com/mattn/go-runewidth"
)

// Element ids and classes used by the manager. Front ends style by class.
const (
	ContainerID = "wm-container"
	DockID      = "wm-dock"
	NoticeID    = "wm-notice"
	MinimizeID  = "wm-minimize"
	PopoutID    = "wm-popout"
	CloseID     = "wm-close"

	ClassContainer = "wm-container"
	ClassHeader    = "wm-header"
	ClassTitle     = "wm-title"
	ClassTabs      = "wm-tabs"
	ClassTab       = "wm-tab"
	ClassTabLabel  = "wm-tab-label"
	ClassTabClose  = "wm-tab-close"
	ClassControls  = "wm-controls"
	ClassControl   = "wm-control"
	ClassBody      = "wm-body"
	ClassContent   = "wm-window-content"
	ClassResize    = "wm-resize"
	ClassDock      = "wm-dock"
	ClassDockChip  = "wm-dock-chip"
	ClassNotice    = "wm-notice"

	classActive = "active"

	attrWindowID  = "data-window-id"
	attrDirection = "data-direction"

	maxTabLabel = 24
	// Header cells that stay on screen while the container is dragged.
	headerGripCells = 8
)

type container struct {
	root     *dom.Element
	header   *dom.Element
	title    *dom.Element
	tabs     *dom.Element
	controls *dom.Element
	body     *dom.Element
	buttons  []*dom.Element
	handles  map[Direction]*dom.Element
	rect     dom.Rect
}

func (m *Manager) ensureContainer(width, height int) {
	if m.container != nil {
		return
	}
	if width <= 0 {
		width = m.settings.DefaultWidth
	}
	if height <= 0 {
		height = m.settings.DefaultHeight
	}
	if width < m.settings.MinWidth {
		width = m.settings.MinWidth
	}
	if height < m.settings.MinHeight {
		height = m.settings.MinHeight
	}

	c := &container{handles: make(map[Direction]*dom.Element)}
	c.root = m.el("div", ContainerID, ClassContainer)
	c.header = m.el("div", "", ClassHeader)
	c.title = m.el("span", "", ClassTitle)
	c.tabs = m.el("div", "", ClassTabs)
	c.controls = m.el("div", "", ClassControls)
	c.body = m.el("div", "", ClassBody)

	for _, b := range []struct {
		id, glyph string
		action    func()
	}{
		{MinimizeID, "_", m.Minimize},
		{PopoutID, "↗", func() { _ = m.OpenActiveInPopup() }},
		{CloseID, "×", m.CloseActiveWindow},
	} {
		btn := m.el("button", b.id, ClassControl)
		btn.SetText(b.glyph)
		action := b.action
		btn.On(dom.Click, func(ev *dom.Event) {
			ev.StopPropagation()
			action()
		})
		c.controls.AppendChild(btn)
		c.buttons = append(c.buttons, btn)
	}

	c.header.AppendChild(c.title)
	c.header.AppendChild(c.tabs)
	c.header.AppendChild(c.controls)
	c.root.AppendChild(c.header)
	c.root.AppendChild(c.body)
	for _, dir := range Directions {
		h := m.el("div", "", ClassResize)
		h.SetAttr(attrDirection, dir.String())
		c.handles[dir] = h
		c.root.AppendChild(h)
	}

	c.rect = m.centered(width, height)
	m.container = c
	// The container goes below the dock and notice so they paint on top.
	m.doc.Body.AppendChild(c.root)
	if m.dock != nil {
		m.doc.Body.AppendChild(m.dock)
	}
	if m.notice != nil {
		m.doc.Body.AppendChild(m.notice)
	}
	m.interaction.Attach(m.doc, c.header, c.handles)
}

func (m *Manager) destroyContainer() {
	if m.container == nil {
		return
	}
	m.interaction.Detach()
	m.container.root.Remove()
	m.container = nil
	m.activeID = ""
}

func (m *Manager) el(tag, id, class string) *dom.Element {
	e := m.doc.CreateElement(tag)
	e.ID = id
	e.AddClass(class)
	return e
}

func (m *Manager) centered(width, height int) dom.Rect {
	cw, ch := m.settings.CellWidth, m.settings.CellHeight
	x := (m.doc.Width - width) / 2
	y := (m.doc.Height - height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return dom.Rect{X: x / cw * cw, Y: y / ch * ch, W: width, H: height}
}

func (m *Manager) newTab(win *Window) *dom.Element {
	tab := m.el("div", "", ClassTab)
	tab.SetAttr(attrWindowID, win.ID)
	label := m.el("span", "", ClassTabLabel)
	label.SetText(win.Title)
	closer := m.el("span", "", ClassTabClose)
	closer.SetText("×")
	tab.AppendChild(label)
	tab.AppendChild(closer)
	win.label = label

	id := win.ID
	tab.On(dom.Click, func(ev *dom.Event) {
		m.FocusWindow(id)
	})
	closer.On(dom.Click, func(ev *dom.Event) {
		ev.StopPropagation()
		m.CloseWindow(id)
	})
	return tab
}

func (m *Manager) newContentRoot(win *Window) *dom.Element {
	root := m.el("div", "wm-window-"+win.ID, ClassContent)
	root.SetAttr(attrWindowID, win.ID)
	root.Drawer = win.Content
	return root
}

// updateTabVisibility hides the tab strip when exactly one tab exists; the
// header then shows the window title instead.
func (m *Manager) updateTabVisibility() {
	if m.container == nil {
		return
	}
	single := len(m.windows) == 1
	m.container.tabs.SetHidden(single)
	m.container.title.SetHidden(!single)
	m.layout()
}

// ContainerRect returns the container geometry in pixels.
func (m *Manager) ContainerRect() dom.Rect {
	if m.container == nil {
		return dom.Rect{}
	}
	return m.container.rect
}

// SetContainerRect moves and sizes the container. Sizes are not clamped here;
// the interaction controller applies the minimum. The origin is kept where
// the header can still be grabbed.
func (m *Manager) SetContainerRect(r dom.Rect) {
	if m.container == nil {
		return
	}
	m.container.rect = m.keepHeaderVisible(r)
	m.layout()
}

// SetViewport updates the document size, pulls the container back inside
// it and re-lays out the dock.
func (m *Manager) SetViewport(width, height int) {
	m.doc.Resize(width, height)
	if m.container != nil {
		m.container.rect = m.keepHeaderVisible(m.container.rect)
	}
	m.layout()
}

// keepHeaderVisible clamps the origin of r so the top border and header row
// are inside the viewport and a grip of the header stays on screen.
func (m *Manager) keepHeaderVisible(r dom.Rect) dom.Rect {
	vw, vh := m.doc.Width, m.doc.Height
	if vw <= 0 || vh <= 0 {
		return r
	}
	cw, ch := m.settings.CellWidth, m.settings.CellHeight
	grip := min(r.W, headerGripCells*cw)
	r.X = max(grip-r.W, min(r.X, vw-grip))
	r.Y = max(0, min(r.Y, vh-2*ch))
	return r
}

// layout assigns boxes to every managed element.
func (m *Manager) layout() {
	m.layoutDock()
	c := m.container
	if c == nil {
		return
	}
	cw, ch := m.settings.CellWidth, m.settings.CellHeight
	r := c.rect
	c.root.Box = r
	c.header.Box = dom.Rect{X: r.X + cw, Y: r.Y + ch, W: r.W - 2*cw, H: ch}
	c.body.Box = dom.Rect{X: r.X + cw, Y: r.Y + 2*ch, W: r.W - 2*cw, H: r.H - 3*ch}

	ctrlW := 3 * cw
	c.controls.Box = dom.Rect{X: c.header.Box.X + c.header.Box.W - len(c.buttons)*ctrlW, Y: c.header.Box.Y, W: len(c.buttons) * ctrlW, H: ch}
	for i, b := range c.buttons {
		b.Box = dom.Rect{X: c.controls.Box.X + i*ctrlW, Y: c.header.Box.Y, W: ctrlW, H: ch}
	}
	avail := dom.Rect{X: c.header.Box.X, Y: c.header.Box.Y, W: c.controls.Box.X - c.header.Box.X, H: ch}
	c.tabs.Box = avail
	c.title.Box = avail
	if win, ok := m.windows[m.activeID]; ok {
		c.title.SetText(win.Title)
	} else {
		c.title.SetText("")
	}

	x := avail.X
	right := avail.X + avail.W
	for _, id := range m.order {
		win := m.windows[id]
		tab := win.TabElement
		tab.SetHidden(win.IsInPopup)
		if win.IsInPopup {
			continue
		}
		label := runewidth.Truncate(win.Title, maxTabLabel, "…")
		cells := runewidth.StringWidth(label) + 4
		w := cells * cw
		if x+w > right {
			w = 0
		}
		tab.Box = dom.Rect{X: x, Y: avail.Y, W: w, H: ch}
		win.label.Box = dom.Rect{X: x + cw, Y: avail.Y, W: w - 4*cw, H: ch}
		win.label.SetText(label)
		closeBox := dom.Rect{X: x + (cells-2)*cw, Y: avail.Y, W: cw, H: ch}
		if w == 0 {
			win.label.Box = dom.Rect{}
			closeBox = dom.Rect{}
		}
		for _, child := range tab.Children() {
			if child.HasClass(ClassTabClose) {
				child.Box = closeBox
			}
		}
		x += w
	}
	for _, id := range m.order {
		m.windows[id].Element.Box = c.body.Box
	}

	for dir, h := range c.handles {
		h.Box = handleBox(dir, r, cw, ch)
	}
}

func handleBox(dir Direction, r dom.Rect, cw, ch int) dom.Rect {
	switch dir {
	case North:
		return dom.Rect{X: r.X + cw, Y: r.Y, W: r.W - 2*cw, H: ch}
	case South:
		return dom.Rect{X: r.X + cw, Y: r.Y + r.H - ch, W: r.W - 2*cw, H: ch}
	case West:
		return dom.Rect{X: r.X, Y: r.Y + ch, W: cw, H: r.H - 2*ch}
	case East:
		return dom.Rect{X: r.X + r.W - cw, Y: r.Y + ch, W: cw, H: r.H - 2*ch}
	case NorthWest:
		return dom.Rect{X: r.X, Y: r.Y, W: cw, H: ch}
	case NorthEast:
		return dom.Rect{X: r.X + r.W - cw, Y: r.Y, W: cw, H: ch}
	case SouthWest:
		return dom.Rect{X: r.X, Y: r.Y + r.H - ch, W: cw, H: ch}
	case SouthEast:
		return dom.Rect{X: r.X + r.W - cw, Y: r.Y + r.H - ch, W: cw, H: ch}
	}
	return dom.Rect{}
}
