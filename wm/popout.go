// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/popout.go
// Summary: Moves a window's content into an external popup and back.
// Notes: The popup shows a snapshot clone of the content root. Input inside
// the popup never flows back into the in-page element.

package wm

import (
	"fmt"
	"log"

	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
)

// PopupRequest describes the window a host should open.
type PopupRequest struct {
	WindowID string
	Title    string

	// Root is a detached clone of the window's content root.
	Root *dom.Element

	Width, Height         int
	CellWidth, CellHeight int
}

// Popup is an independently opened top-level window.
type Popup interface {
	ID() string
	// Closed reports whether the user or the host closed the window.
	Closed() bool
	Close() error
	SetTitle(title string) error
	Focus() error
}

// PopupHost opens popups. An error means the popup could not be shown.
type PopupHost interface {
	Open(req PopupRequest) (Popup, error)
}

// OpenActiveInPopup moves the focused window into a popup. It is a no-op
// without a focused window or when that window is already popped out. When
// the host fails, nothing changes and a notice is shown.
func (m *Manager) OpenActiveInPopup() error {
	win, ok := m.windows[m.activeID]
	if !ok || win.IsInPopup {
		return nil
	}
	if m.host == nil {
		m.notify("Popout unavailable: no popup host")
		return ErrNoPopupHost
	}

	clone := win.Element.Clone()
	clone.SetHidden(false)
	popup, err := m.host.Open(PopupRequest{
		WindowID:   win.ID,
		Title:      win.Title,
		Root:       clone,
		Width:      m.settings.PopupWidth,
		Height:     m.settings.PopupHeight,
		CellWidth:  m.settings.CellWidth,
		CellHeight: m.settings.CellHeight,
	})
	if err != nil || popup == nil {
		if err == nil {
			err = fmt.Errorf("host returned no popup")
		}
		m.notify(fmt.Sprintf("Popup blocked: %v", err))
		return fmt.Errorf("%w: %v", ErrPopupBlocked, err)
	}

	m.interaction.End()
	win.Popup = popup
	win.IsInPopup = true
	win.TabElement.SetHidden(true)
	win.Element.SetHidden(true)

	if next := m.nextInPage(win.ID); next != "" {
		m.FocusWindow(next)
	} else {
		m.container.root.SetHidden(true)
		m.layout()
	}
	m.rebuildDock()

	id := win.ID
	var timer eventloop.Timer
	timer = m.sched.Every(m.settings.PollInterval, func() {
		if win.pollTimer != timer || !popup.Closed() {
			return
		}
		m.stopPolling(win)
		m.ReturnFromPopup(id)
	})
	win.pollTimer = timer
	log.Printf("WM: Window %q popped out (popup %s)", id, popup.ID())
	return nil
}

// ReturnFromPopup brings a popped-out window back into the container and
// focuses it. A popup that is still open is closed.
func (m *Manager) ReturnFromPopup(id string) {
	win, ok := m.windows[id]
	if !ok || !win.IsInPopup {
		return
	}
	m.stopPolling(win)
	if win.Popup != nil && !win.Popup.Closed() {
		if err := win.Popup.Close(); err != nil {
			log.Printf("WM: Failed to close popup for %q: %v", id, err)
		}
	}
	win.Popup = nil
	win.IsInPopup = false
	win.TabElement.SetHidden(false)

	m.clearMinimized()
	m.container.root.SetHidden(false)
	m.FocusWindow(id)
	m.rebuildDock()
	log.Printf("WM: Window %q returned from popup", id)
}

// PollingActive reports whether a closed-detection timer runs for id.
func (m *Manager) PollingActive(id string) bool {
	win, ok := m.windows[id]
	return ok && win.pollTimer != nil
}

func (m *Manager) stopPolling(win *Window) {
	if win.pollTimer == nil {
		return
	}
	win.pollTimer.Stop()
	win.pollTimer = nil
}

func (m *Manager) nextInPage(exclude string) string {
	for _, id := range m.order {
		win := m.windows[id]
		if id != exclude && !win.IsInPopup && !win.IsMinimized {
			return id
		}
	}
	return ""
}
