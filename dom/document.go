// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/document.go
// Summary: Document root, hit testing and event dispatch.

package dom

import "github.com/gdamore/tcell/v2"

// EventType names a kind of document event.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	PointerMove EventType = "pointermove"
	PointerUp   EventType = "pointerup"
	Click       EventType = "click"
	Key         EventType = "key"
)

// IsPointer reports whether events of this type carry coordinates.
func (t EventType) IsPointer() bool {
	switch t {
	case PointerDown, PointerMove, PointerUp, Click:
		return true
	}
	return false
}

// Event is delivered to listeners during dispatch.
type Event struct {
	Type    EventType
	X, Y    int
	Buttons tcell.ButtonMask
	KeyEv   *tcell.EventKey

	// Target is the element the event was dispatched at. Nil targets are
	// resolved by hit testing for pointer events.
	Target        *Element
	CurrentTarget *Element

	stopped bool
}

// StopPropagation prevents the event from reaching further listeners.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (ev *Event) Stopped() bool {
	return ev.stopped
}

// Listener handles a dispatched event.
type Listener func(*Event)

// Document owns the live element tree.
type Document struct {
	Body  *Element
	Title string

	// Width and Height describe the viewport in pixels.
	Width, Height int

	listeners *Element
}

// NewDocument returns an empty document with a body element.
func NewDocument(width, height int) *Document {
	d := &Document{Width: width, Height: height}
	d.Body = &Element{Tag: "body", doc: d}
	d.listeners = &Element{Tag: "#document"}
	return d
}

// CreateElement returns a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Resize updates the viewport size.
func (d *Document) Resize(width, height int) {
	d.Width, d.Height = width, height
}

// Contains reports whether el is attached to the live tree.
func (d *Document) Contains(el *Element) bool {
	return el != nil && d.Body.Contains(el)
}

// GetElementByID searches the live tree.
func (d *Document) GetElementByID(id string) *Element {
	return d.Body.Find(id)
}

// On registers a document-level listener. Document listeners run after every
// element on the bubbling path.
func (d *Document) On(t EventType, fn Listener) func() {
	return d.listeners.On(t, fn)
}

// ListenerCount returns the number of document-level listeners for t.
func (d *Document) ListenerCount(t EventType) int {
	return d.listeners.ListenerCount(t)
}

// HitTest returns the deepest visible element whose box contains the point.
// Later siblings are considered on top of earlier ones.
func (d *Document) HitTest(x, y int) *Element {
	return hitTest(d.Body, x, y)
}

func hitTest(e *Element, x, y int) *Element {
	if e.hidden {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := hitTest(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	if e.Box.Contains(x, y) {
		return e
	}
	return nil
}

// Dispatch delivers ev along the bubbling path and then to document
// listeners. It returns the resolved target.
func (d *Document) Dispatch(ev *Event) *Element {
	if ev == nil {
		return nil
	}
	if ev.Target == nil && ev.Type.IsPointer() {
		ev.Target = d.HitTest(ev.X, ev.Y)
	}
	for n := ev.Target; n != nil && !ev.stopped; n = n.parent {
		n.fire(ev)
	}
	if !ev.stopped {
		d.listeners.fire(ev)
	}
	ev.CurrentTarget = nil
	return ev.Target
}

// Walk visits every visible element of the live tree in paint order.
func (d *Document) Walk(fn func(*Element)) {
	d.Body.walk(func(e *Element) bool {
		if e.hidden {
			return true
		}
		if e.Visible() {
			fn(e)
		}
		return true
	})
}
