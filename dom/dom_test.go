// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/dom_test.go
// Summary: Exercises element tree mutation, hit testing and dispatch.
// Usage: Executed during `go test` to guard against regressions.

package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type textDrawer string

func (t textDrawer) Draw(c *Canvas) {
	c.Text(0, 0, string(t), tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)))
}

func TestAppendChildMovesBetweenParents(t *testing.T) {
	doc := NewDocument(800, 600)
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")
	doc.Body.AppendChild(a)
	doc.Body.AppendChild(b)

	a.AppendChild(child)
	b.AppendChild(child)

	if len(a.Children()) != 0 {
		t.Fatalf("expected child to leave its first parent")
	}
	if child.Parent() != b || len(b.Children()) != 1 {
		t.Fatalf("expected child under b")
	}
	if !doc.Contains(child) {
		t.Fatalf("expected child attached to the document")
	}

	b.Remove()
	if doc.Contains(child) {
		t.Fatalf("expected subtree detached after Remove")
	}
	b.Remove()
}

func TestAppendChildRejectsCycles(t *testing.T) {
	doc := NewDocument(10, 10)
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("div")
	outer.AppendChild(inner)
	inner.AppendChild(outer)
	if outer.Parent() != nil {
		t.Fatalf("cycle was created")
	}
}

func TestVisibleFollowsAncestors(t *testing.T) {
	doc := NewDocument(10, 10)
	parent := doc.CreateElement("div")
	child := doc.CreateElement("div")
	parent.AppendChild(child)
	doc.Body.AppendChild(parent)

	parent.SetHidden(true)
	if child.Visible() {
		t.Fatalf("child of hidden parent reported visible")
	}
	if child.Hidden() {
		t.Fatalf("child's own flag should be untouched")
	}
	parent.SetHidden(false)
	if !child.Visible() {
		t.Fatalf("expected child visible")
	}
}

func TestClassesKeepOrder(t *testing.T) {
	el := &Element{}
	el.AddClass("tab")
	el.AddClass("active")
	el.AddClass("tab")
	if got := strings.Join(el.Classes(), " "); got != "tab active" {
		t.Fatalf("classes = %q", got)
	}
	el.ToggleClass("active", false)
	if el.HasClass("active") {
		t.Fatalf("active should be removed")
	}
}

func TestHitTestPrefersDeepestAndTopmost(t *testing.T) {
	doc := NewDocument(100, 100)
	under := doc.CreateElement("div")
	under.Box = Rect{0, 0, 50, 50}
	over := doc.CreateElement("div")
	over.Box = Rect{10, 10, 50, 50}
	leaf := doc.CreateElement("span")
	leaf.Box = Rect{20, 20, 5, 5}
	over.AppendChild(leaf)
	doc.Body.AppendChild(under)
	doc.Body.AppendChild(over)

	if got := doc.HitTest(21, 21); got != leaf {
		t.Fatalf("expected leaf, got %+v", got)
	}
	if got := doc.HitTest(15, 15); got != over {
		t.Fatalf("expected later sibling on top")
	}
	if got := doc.HitTest(5, 5); got != under {
		t.Fatalf("expected under")
	}
	over.SetHidden(true)
	if got := doc.HitTest(21, 21); got != under {
		t.Fatalf("hidden subtree must not be hit")
	}
	if got := doc.HitTest(99, 99); got != nil {
		t.Fatalf("expected no hit, got %+v", got)
	}
}

func TestDispatchBubblesToDocument(t *testing.T) {
	doc := NewDocument(100, 100)
	parent := doc.CreateElement("div")
	parent.Box = Rect{0, 0, 100, 100}
	child := doc.CreateElement("div")
	child.Box = Rect{0, 0, 10, 10}
	parent.AppendChild(child)
	doc.Body.AppendChild(parent)

	var order []string
	child.On(PointerDown, func(ev *Event) { order = append(order, "child") })
	parent.On(PointerDown, func(ev *Event) {
		if ev.Target != child || ev.CurrentTarget != parent {
			t.Errorf("unexpected targets %p %p", ev.Target, ev.CurrentTarget)
		}
		order = append(order, "parent")
	})
	doc.On(PointerDown, func(ev *Event) { order = append(order, "document") })

	doc.Dispatch(&Event{Type: PointerDown, X: 1, Y: 1})
	if got := strings.Join(order, ","); got != "child,parent,document" {
		t.Fatalf("order = %s", got)
	}
}

func TestStopPropagation(t *testing.T) {
	doc := NewDocument(100, 100)
	el := doc.CreateElement("div")
	el.Box = Rect{0, 0, 10, 10}
	doc.Body.AppendChild(el)
	reached := false
	el.On(PointerDown, func(ev *Event) { ev.StopPropagation() })
	doc.On(PointerDown, func(ev *Event) { reached = true })
	doc.Dispatch(&Event{Type: PointerDown, X: 1, Y: 1})
	if reached {
		t.Fatalf("document listener ran after StopPropagation")
	}
}

func TestOffRemovesListener(t *testing.T) {
	el := &Element{}
	calls := 0
	off := el.On(Click, func(*Event) { calls++ })
	el.fire(&Event{Type: Click})
	off()
	off()
	el.fire(&Event{Type: Click})
	if calls != 1 || el.ListenerCount(Click) != 0 {
		t.Fatalf("calls=%d listeners=%d", calls, el.ListenerCount(Click))
	}
}

func TestCloneCopiesStructureNotListeners(t *testing.T) {
	doc := NewDocument(100, 100)
	root := doc.CreateElement("div")
	root.ID = "root"
	root.AddClass("window-content")
	root.SetAttr("data-window-id", "a")
	child := doc.CreateElement("span")
	child.ID = "label"
	child.Text = "hello"
	root.AppendChild(child)
	root.On(Click, func(*Event) {})
	doc.Body.AppendChild(root)

	clone := root.Clone()
	if clone.Parent() != nil || doc.Contains(clone) {
		t.Fatalf("clone must be detached")
	}
	if clone.ListenerCount(Click) != 0 {
		t.Fatalf("listeners copied")
	}
	if got := clone.Find("label"); got == nil || got == child || got.Text != "hello" {
		t.Fatalf("child not deep copied")
	}
	clone.AddClass("changed")
	if root.HasClass("changed") {
		t.Fatalf("clone shares class list with original")
	}
}

func TestWriteHTMLEscapesAndRendersDrawer(t *testing.T) {
	root := &Element{Tag: "div", ID: "w", Box: Rect{0, 0, 80, 32}}
	root.AddClass("window-content")
	root.Drawer = textDrawer("a<b")
	label := &Element{Tag: "span", Text: "x & y"}
	root.AppendChild(label)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, root, HTMLOptions{CellWidth: 8, CellHeight: 16}); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`<div id="w" class="window-content">`, "a&lt;b", "x &amp; y", "color:#ff0000", "<pre>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestCanvasTextClipsWideRunes(t *testing.T) {
	c := NewCanvas(3, 1, tcell.StyleDefault)
	next := c.Text(0, 0, "a世b", tcell.StyleDefault)
	if next != 3 {
		t.Fatalf("next = %d", next)
	}
	if c.Get(1, 0).Ch != '世' || c.Get(2, 0).Ch != 0 {
		t.Fatalf("wide rune not laid out: %+v", c.Cells[0])
	}
}
