// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/interaction_test.go
// Summary: Exercises container drag and resize sessions.

package wm

import (
	"testing"

	"github.com/framegrace/texeltabs/dom"
)

type fakeFrame struct {
	rect dom.Rect
}

func (f *fakeFrame) ContainerRect() dom.Rect     { return f.rect }
func (f *fakeFrame) SetContainerRect(r dom.Rect) { f.rect = r }

func pointer(doc *dom.Document, t dom.EventType, x, y int) *dom.Element {
	return doc.Dispatch(&dom.Event{Type: t, X: x, Y: y})
}

func TestDragMovesContainerByDelta(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	doc := m.Document()
	start := m.ContainerRect()
	header := m.container.header.Box

	// Grab the header area between the title and the controls.
	x, y := m.container.controls.Box.X-1, header.Y
	if hit := pointer(doc, dom.PointerDown, x, y); hit == nil || hit.Closest(ClassHeader) == nil {
		t.Fatalf("pointerdown at %d,%d hit %+v", x, y, hit)
	}
	if m.Interaction().State() != Dragging {
		t.Fatalf("state = %v, want dragging", m.Interaction().State())
	}
	pointer(doc, dom.PointerMove, x+40, y+32)
	pointer(doc, dom.PointerMove, x-80, y-16)
	got := m.ContainerRect()
	if got.X != start.X-80 || got.Y != start.Y-16 || got.W != start.W || got.H != start.H {
		t.Fatalf("rect = %+v, start %+v", got, start)
	}
	if m.container.header.Box.Y != got.Y+m.Settings().CellHeight {
		t.Fatalf("layout not refreshed after move")
	}

	// Release far outside the container still ends the session.
	pointer(doc, dom.PointerUp, 1, 1)
	if m.Interaction().State() != Idle {
		t.Fatalf("session survived pointerup")
	}
	pointer(doc, dom.PointerMove, 500, 500)
	if m.ContainerRect() != got {
		t.Fatalf("moved after pointerup")
	}
}

func TestDragKeepsHeaderOnScreen(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	doc := m.Document()
	cw, ch := m.Settings().CellWidth, m.Settings().CellHeight
	start := m.ContainerRect()
	x, y := m.container.controls.Box.X-1, m.container.header.Box.Y

	pointer(doc, dom.PointerDown, x, y)
	pointer(doc, dom.PointerMove, x-5000, y-5000)
	got := m.ContainerRect()
	if got.Y != 0 || got.X != headerGripCells*cw-start.W {
		t.Fatalf("dragged past top-left: %+v", got)
	}
	pointer(doc, dom.PointerMove, x+5000, y+5000)
	got = m.ContainerRect()
	if got.X != doc.Width-headerGripCells*cw || got.Y != doc.Height-2*ch {
		t.Fatalf("dragged past bottom-right: %+v", got)
	}
	if got.W != start.W || got.H != start.H {
		t.Fatalf("drag changed the size: %+v", got)
	}
	pointer(doc, dom.PointerUp, 0, 0)

	m.SetViewport(800, 480)
	got = m.ContainerRect()
	if got.X != 800-headerGripCells*cw || got.Y != 480-2*ch {
		t.Fatalf("viewport shrink left the header off screen: %+v", got)
	}
}

func TestDragIgnoresTabsAndControls(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	mustCreate(t, m, "b")
	doc := m.Document()

	tab := m.GetWindow("a").TabElement
	pointer(doc, dom.PointerDown, tab.Box.X, tab.Box.Y)
	if m.Interaction().State() != Idle {
		t.Fatalf("drag started from a tab")
	}
	btn := doc.GetElementByID(CloseID)
	pointer(doc, dom.PointerDown, btn.Box.X, btn.Box.Y)
	if m.Interaction().State() != Idle {
		t.Fatalf("drag started from a control")
	}
}

func TestResizeExcludesDrag(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	doc := m.Document()

	se := m.container.handles[SouthEast]
	pointer(doc, dom.PointerDown, se.Box.X, se.Box.Y)
	if dir, ok := m.Interaction().ResizeDirection(); !ok || dir != SouthEast {
		t.Fatalf("resize not started: %v %v", dir, ok)
	}
	if m.Interaction().BeginDrag(0, 0) {
		t.Fatalf("drag started during resize")
	}
	m.Interaction().End()

	// The north handle overlaps nothing in the header, so pressing the
	// header starts only a drag.
	header := m.container.header.Box
	pointer(doc, dom.PointerDown, m.container.controls.Box.X-1, header.Y)
	if m.Interaction().State() != Dragging {
		t.Fatalf("state = %v", m.Interaction().State())
	}
	if m.Interaction().BeginResize(East, 0, 0) {
		t.Fatalf("resize started during drag")
	}
	pointer(doc, dom.PointerUp, 0, 0)
}

func TestResizeAllDirectionsClampsAndAnchors(t *testing.T) {
	start := dom.Rect{X: 400, Y: 300, W: 600, H: 500}
	cases := []struct {
		dir    Direction
		dx, dy int
		want   dom.Rect
	}{
		{East, 50, 99, dom.Rect{X: 400, Y: 300, W: 650, H: 500}},
		{South, 99, 40, dom.Rect{X: 400, Y: 300, W: 600, H: 540}},
		{West, -30, 0, dom.Rect{X: 370, Y: 300, W: 630, H: 500}},
		{North, 0, -20, dom.Rect{X: 400, Y: 280, W: 600, H: 520}},
		{NorthEast, 10, 10, dom.Rect{X: 400, Y: 310, W: 610, H: 490}},
		{NorthWest, 10, 10, dom.Rect{X: 410, Y: 310, W: 590, H: 490}},
		{SouthEast, -10, -10, dom.Rect{X: 400, Y: 300, W: 590, H: 490}},
		{SouthWest, 10, 10, dom.Rect{X: 410, Y: 300, W: 590, H: 510}},

		// Clamped: the opposite edge stays where it was.
		{West, 1000, 0, dom.Rect{X: 700, Y: 300, W: 300, H: 500}},
		{North, 0, 1000, dom.Rect{X: 400, Y: 600, W: 600, H: 200}},
		{NorthWest, 1000, 1000, dom.Rect{X: 700, Y: 600, W: 300, H: 200}},
		{SouthEast, -1000, -1000, dom.Rect{X: 400, Y: 300, W: 300, H: 200}},
	}
	for _, tc := range cases {
		f := &fakeFrame{rect: start}
		c := NewInteraction(f, 300, 200)
		if !c.BeginResize(tc.dir, 100, 100) {
			t.Fatalf("%v: resize did not start", tc.dir)
		}
		c.Move(100+tc.dx, 100+tc.dy)
		if f.rect != tc.want {
			t.Errorf("%v by (%d,%d): got %+v want %+v", tc.dir, tc.dx, tc.dy, f.rect, tc.want)
		}
		if f.rect.W < 300 || f.rect.H < 200 {
			t.Errorf("%v: size below minimum: %+v", tc.dir, f.rect)
		}
		if tc.dir.west() && f.rect.X+f.rect.W != start.X+start.W {
			t.Errorf("%v: right edge moved", tc.dir)
		}
		if tc.dir.north() && f.rect.Y+f.rect.H != start.Y+start.H {
			t.Errorf("%v: bottom edge moved", tc.dir)
		}
		c.End()
	}
}

func TestResizeThroughHandles(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	doc := m.Document()
	for _, dir := range Directions {
		h := m.container.handles[dir]
		if h.Box.Empty() {
			t.Fatalf("handle %v has no box", dir)
		}
		hit := doc.HitTest(h.Box.X, h.Box.Y)
		if hit != h {
			t.Fatalf("handle %v not hit at its own origin: %+v", dir, hit)
		}
		if v, _ := h.Attr(attrDirection); v != dir.String() {
			t.Fatalf("handle attr %q, want %q", v, dir.String())
		}
	}

	start := m.ContainerRect()
	w := m.container.handles[West]
	pointer(doc, dom.PointerDown, w.Box.X, w.Box.Y)
	pointer(doc, dom.PointerMove, w.Box.X+5000, w.Box.Y)
	pointer(doc, dom.PointerUp, 0, 0)
	got := m.ContainerRect()
	if got.W != 300 || got.X+got.W != start.X+start.W {
		t.Fatalf("west clamp: got %+v from %+v", got, start)
	}
}

func TestMinimizeEndsDrag(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "a")
	if !m.Interaction().BeginDrag(10, 10) {
		t.Fatalf("drag did not start")
	}
	m.Minimize()
	if m.Interaction().State() != Idle {
		t.Fatalf("minimize left the session open")
	}
}
