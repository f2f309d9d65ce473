// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/manager.go
// Summary: Window registry: identity, focus, minimize/restore and close.
// Usage: One Manager per document, driven from the event-loop goroutine.

package wm

import (
	"fmt"
	"log"

	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/gdamore/tcell/v2"
)

// Manager owns every window record, the shared tabbed container and the
// minimized dock. It is not safe for concurrent use.
type Manager struct {
	doc      *dom.Document
	sched    eventloop.Scheduler
	host     PopupHost
	settings Settings
	notifier func(string)

	windows  map[string]*Window
	order    []string
	activeID string

	container   *container
	dock        *dom.Element
	notice      *dom.Element
	noticeTimer eventloop.Timer
	interaction *Interaction
}

// Option configures a Manager.
type Option func(*Manager)

// WithSettings replaces the default geometry and timing settings.
func WithSettings(s Settings) Option {
	return func(m *Manager) {
		m.settings = s.normalized()
	}
}

// WithPopupHost sets the host used to open popout windows.
func WithPopupHost(h PopupHost) Option {
	return func(m *Manager) {
		m.host = h
	}
}

// WithNotifier registers a callback receiving user-visible notices in
// addition to the in-document notice bar.
func WithNotifier(fn func(string)) Option {
	return func(m *Manager) {
		m.notifier = fn
	}
}

// NewManager returns a manager mutating doc. Deferred work and popup polling
// run through sched.
func NewManager(doc *dom.Document, sched eventloop.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		doc:      doc,
		sched:    sched,
		settings: DefaultSettings(),
		windows:  make(map[string]*Window),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.interaction = NewInteraction(m, m.settings.MinWidth, m.settings.MinHeight)
	return m
}

// Document returns the document the manager renders into.
func (m *Manager) Document() *dom.Document {
	return m.doc
}

// Settings returns the effective settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Interaction returns the drag/resize controller of the container.
func (m *Manager) Interaction() *Interaction {
	return m.interaction
}

// CreateWindow registers a window, adds its tab and content root and focuses
// it. Duplicate ids are rejected without touching the existing window.
func (m *Manager) CreateWindow(d Descriptor) (*Window, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	}
	if _, exists := m.windows[d.ID]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWindow, d.ID)
	}

	m.ensureDock()
	m.ensureContainer(d.Width, d.Height)

	win := &Window{
		ID:      d.ID,
		Title:   d.Title,
		Content: d.Content,
		onInit:  d.OnInit,
		onClose: d.OnClose,
	}
	win.TabElement = m.newTab(win)
	win.Element = m.newContentRoot(win)
	m.container.tabs.AppendChild(win.TabElement)
	m.container.body.AppendChild(win.Element)

	m.windows[win.ID] = win
	m.order = append(m.order, win.ID)

	// A new window is shown in-page, which undoes a container-level minimize.
	m.clearMinimized()
	m.container.root.SetHidden(false)

	m.FocusWindow(win.ID)
	m.updateTabVisibility()
	m.rebuildDock()

	m.sched.Defer(func() {
		if m.windows[win.ID] != win || win.onInit == nil {
			return
		}
		if !m.doc.Contains(win.Element) {
			return
		}
		win.onInit(win.Element)
	})

	log.Printf("WM: Created window %q (%d open)", win.ID, len(m.windows))
	return win, nil
}

// GetWindow returns the live record for id, or nil.
func (m *Manager) GetWindow(id string) *Window {
	return m.windows[id]
}

// Windows returns live records in creation order.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id])
	}
	return out
}

// ActiveWindowID returns the focused window id, or "" when none exist.
func (m *Manager) ActiveWindowID() string {
	return m.activeID
}

// ContainerVisible reports whether the shared container exists and is shown.
func (m *Manager) ContainerVisible() bool {
	return m.container != nil && m.doc.Contains(m.container.root) && !m.container.root.Hidden()
}

// FocusWindow makes id the only active tab and the only visible content
// root. A popped-out window has its popup raised instead; the container
// keeps showing its current window unless no window is left in-page.
// Unknown ids are ignored.
func (m *Manager) FocusWindow(id string) {
	win, ok := m.windows[id]
	if !ok {
		return
	}
	if win.IsInPopup {
		if win.Popup != nil {
			if err := win.Popup.Focus(); err != nil {
				log.Printf("WM: Failed to raise popup for %q: %v", id, err)
			}
		}
		if m.hasInPageWindow() {
			m.applyFocus()
			return
		}
	}
	m.activeID = id
	m.applyFocus()
}

// applyFocus shows the focused window in-page. The focus moves to the first
// in-page window when the focused one is popped out and another is shown.
func (m *Manager) applyFocus() {
	if win, ok := m.windows[m.activeID]; !ok || win.IsInPopup {
		if next := m.fallbackID(); next != "" && !m.windows[next].IsInPopup {
			m.activeID = next
		}
	}
	for _, id := range m.order {
		win := m.windows[id]
		active := id == m.activeID && !win.IsInPopup
		win.TabElement.ToggleClass(classActive, active)
		win.Element.SetHidden(!active)
	}
	m.layout()
}

// FocusNext cycles focus to the next window shown in-page.
func (m *Manager) FocusNext() {
	n := len(m.order)
	if n == 0 {
		return
	}
	start := 0
	for i, id := range m.order {
		if id == m.activeID {
			start = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		win := m.windows[m.order[(start+step)%n]]
		if !win.IsInPopup {
			m.FocusWindow(win.ID)
			return
		}
	}
}

// RestoreWindow undoes a container-level minimize and focuses id. Every
// record is un-minimized because minimizing acts on the shared container.
func (m *Manager) RestoreWindow(id string) {
	if _, ok := m.windows[id]; !ok {
		return
	}
	m.clearMinimized()
	if m.container != nil && m.hasInPageWindow() {
		m.container.root.SetHidden(false)
	}
	m.FocusWindow(id)
	m.rebuildDock()
}

// Minimize hides the shared container and marks every record minimized.
func (m *Manager) Minimize() {
	if m.container == nil {
		return
	}
	m.interaction.End()
	m.container.root.SetHidden(true)
	for _, win := range m.windows {
		win.IsMinimized = true
	}
	m.rebuildDock()
}

// CloseWindow destroys the record, its tab, its content root and any open
// popup. Unknown ids are ignored.
func (m *Manager) CloseWindow(id string) {
	win, ok := m.windows[id]
	if !ok {
		return
	}

	m.stopPolling(win)
	if win.Popup != nil {
		if err := win.Popup.Close(); err != nil {
			log.Printf("WM: Failed to close popup for %q: %v", id, err)
		}
	}
	win.Popup = nil
	win.IsInPopup = false

	win.TabElement.Remove()
	win.Element.Remove()
	delete(m.windows, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if win.onClose != nil {
		win.onClose()
	}

	if m.activeID == id {
		m.activeID = m.fallbackID()
	}

	if len(m.windows) == 0 {
		m.destroyContainer()
	} else {
		m.updateTabVisibility()
		m.applyFocus()
		if !m.hasInPageWindow() {
			m.container.root.SetHidden(true)
		}
	}
	m.rebuildDock()
	log.Printf("WM: Closed window %q (%d open)", id, len(m.windows))
}

// CloseActiveWindow closes the focused window, if any.
func (m *Manager) CloseActiveWindow() {
	if m.activeID != "" {
		m.CloseWindow(m.activeID)
	}
}

// UpdateWindowTitle renames a window everywhere it is displayed, including
// its popup.
func (m *Manager) UpdateWindowTitle(id, title string) {
	win, ok := m.windows[id]
	if !ok {
		return
	}
	win.Title = title
	win.label.SetText(title)
	if win.IsInPopup && win.Popup != nil {
		if err := win.Popup.SetTitle(title); err != nil {
			log.Printf("WM: Failed to update popup title for %q: %v", id, err)
		}
	}
	m.updateTabVisibility()
	m.rebuildDock()
	m.layout()
}

// HandleKey forwards a key to the focused window's content when it is shown
// in-page and accepts keys.
func (m *Manager) HandleKey(ev *tcell.EventKey) bool {
	win, ok := m.windows[m.activeID]
	if !ok || win.IsInPopup || win.IsMinimized {
		return false
	}
	if kh, ok := win.Content.(KeyHandler); ok {
		return kh.HandleKey(ev)
	}
	return false
}

// fallbackID picks the first remaining window shown in-page, else the first
// remaining window, else "".
func (m *Manager) fallbackID() string {
	for _, id := range m.order {
		if !m.windows[id].IsInPopup {
			return id
		}
	}
	if len(m.order) > 0 {
		return m.order[0]
	}
	return ""
}

func (m *Manager) hasInPageWindow() bool {
	for _, win := range m.windows {
		if !win.IsInPopup {
			return true
		}
	}
	return false
}

func (m *Manager) clearMinimized() {
	for _, win := range m.windows {
		win.IsMinimized = false
	}
}
