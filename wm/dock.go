// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/dock.go
// Summary: Minimized dock and the notice bar.

package wm

import (
	"log"

	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/mattn/go-runewidth"
)

func (m *Manager) ensureDock() {
	if m.dock != nil {
		return
	}
	m.dock = m.el("div", DockID, ClassDock)
	m.dock.SetHidden(true)
	m.doc.Body.AppendChild(m.dock)

	m.notice = m.el("div", NoticeID, ClassNotice)
	m.notice.SetHidden(true)
	m.notice.On(dom.Click, func(ev *dom.Event) {
		m.dismissNotice()
	})
	m.doc.Body.AppendChild(m.notice)
}

// Dock returns the dock element, or nil before the first window.
func (m *Manager) Dock() *dom.Element {
	return m.dock
}

// rebuildDock recreates one chip per minimized window that is not popped out.
func (m *Manager) rebuildDock() {
	if m.dock == nil {
		return
	}
	for _, chip := range m.dock.Children() {
		chip.Remove()
	}
	for _, id := range m.order {
		win := m.windows[id]
		if !win.IsMinimized || win.IsInPopup {
			continue
		}
		chip := m.el("div", "", ClassDockChip)
		chip.SetAttr(attrWindowID, id)
		chip.SetText(win.Title)
		target := id
		chip.On(dom.Click, func(ev *dom.Event) {
			ev.StopPropagation()
			m.RestoreWindow(target)
		})
		m.dock.AppendChild(chip)
	}
	m.dock.SetHidden(len(m.dock.Children()) == 0)
	m.layoutDock()
}

func (m *Manager) layoutDock() {
	if m.dock == nil {
		return
	}
	cw, ch := m.settings.CellWidth, m.settings.CellHeight
	m.dock.Box = dom.Rect{X: 0, Y: m.doc.Height - ch, W: m.doc.Width, H: ch}
	x := 0
	for _, chip := range m.dock.Children() {
		w := (runewidth.StringWidth(runewidth.Truncate(chip.Text, maxTabLabel, "…")) + 2) * cw
		chip.Box = dom.Rect{X: x, Y: m.dock.Box.Y, W: w, H: ch}
		x += w + cw
	}
	if m.notice != nil {
		m.notice.Box = dom.Rect{X: 0, Y: m.doc.Height - 2*ch, W: m.doc.Width, H: ch}
	}
}

// notify shows msg in the notice bar until it is clicked or times out.
func (m *Manager) notify(msg string) {
	log.Printf("WM: Notice: %s", msg)
	if m.notifier != nil {
		m.notifier(msg)
	}
	if m.notice == nil {
		return
	}
	m.notice.SetText(msg)
	m.notice.SetHidden(false)
	m.layoutDock()
	if m.noticeTimer != nil {
		m.noticeTimer.Stop()
	}
	var timer eventloop.Timer
	timer = m.sched.Every(m.settings.NoticeDuration, func() {
		timer.Stop()
		if m.noticeTimer == timer {
			m.dismissNotice()
		}
	})
	m.noticeTimer = timer
}

// Notice returns the text of the visible notice, or "".
func (m *Manager) Notice() string {
	if m.notice == nil || m.notice.Hidden() {
		return ""
	}
	return m.notice.Text
}

func (m *Manager) dismissNotice() {
	if m.noticeTimer != nil {
		m.noticeTimer.Stop()
		m.noticeTimer = nil
	}
	if m.notice != nil {
		m.notice.SetHidden(true)
		m.notice.SetText("")
	}
}
