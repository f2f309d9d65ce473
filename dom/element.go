// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/element.go
// Summary: Retained element tree mutated by the window manager.
// Usage: Elements are created through a Document and painted by a front end.

package dom

// Rect is an axis-aligned box in document pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Drawer is an opaque renderable payload attached to an element.
type Drawer interface {
	Draw(c *Canvas)
}

type listenerEntry struct {
	id int
	fn Listener
}

// Element is a node of the document tree.
type Element struct {
	Tag  string
	ID   string
	Text string
	Box  Rect

	// Drawer paints the element body when set. It is shared, not copied, by Clone.
	Drawer Drawer

	classes   []string
	attrs     map[string]string
	hidden    bool
	parent    *Element
	children  []*Element
	doc       *Document
	listeners map[EventType][]listenerEntry
	nextID    int
}

// Parent returns the parent element, or nil for a detached or root element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild moves child under e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e || child.Contains(e) {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	child.adopt(e.doc)
	e.children = append(e.children, child)
}

// Remove detaches e from its parent. It is safe to call on detached elements.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.parent.removeChild(e)
	e.parent = nil
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func (e *Element) adopt(doc *Document) {
	e.doc = doc
	for _, c := range e.children {
		c.adopt(doc)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// SetHidden toggles the hidden flag of the element itself.
func (e *Element) SetHidden(hidden bool) {
	e.hidden = hidden
}

// Hidden reports the element's own hidden flag.
func (e *Element) Hidden() bool {
	return e.hidden
}

// Visible reports whether neither e nor any ancestor is hidden.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
	}
	return true
}

// Classes returns the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// AddClass adds name to the class list if absent.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// ToggleClass adds or removes name depending on on.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

// Attr returns an attribute value and whether it was set.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// SetText replaces the element's text.
func (e *Element) SetText(text string) {
	e.Text = text
}

// On registers fn for events of type t reaching e and returns a function
// that unregisters it.
func (e *Element) On(t EventType, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	if e.listeners == nil {
		e.listeners = make(map[EventType][]listenerEntry)
	}
	e.nextID++
	id := e.nextID
	e.listeners[t] = append(e.listeners[t], listenerEntry{id: id, fn: fn})
	return func() {
		entries := e.listeners[t]
		for i, entry := range entries {
			if entry.id == id {
				e.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for t.
func (e *Element) ListenerCount(t EventType) int {
	return len(e.listeners[t])
}

func (e *Element) fire(ev *Event) {
	entries := e.listeners[ev.Type]
	if len(entries) == 0 {
		return
	}
	// Listeners may unregister themselves while running.
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	ev.CurrentTarget = e
	for _, entry := range snapshot {
		entry.fn(ev)
		if ev.stopped {
			return
		}
	}
}

// Closest returns the nearest element, starting at e, carrying class.
func (e *Element) Closest(class string) *Element {
	for n := e; n != nil; n = n.parent {
		if n.HasClass(class) {
			return n
		}
	}
	return nil
}

// Find returns the first descendant (or e itself) with the given id.
func (e *Element) Find(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	e.walk(func(n *Element) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByClass returns every element in the subtree carrying class, in tree order.
func (e *Element) FindByClass(class string) []*Element {
	var out []*Element
	e.walk(func(n *Element) bool {
		if n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits the subtree depth first, parents before children. Returning
// false from fn stops the walk.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Clone returns a detached deep copy of the subtree. Listeners are not copied.
func (e *Element) Clone() *Element {
	c := &Element{
		Tag:    e.Tag,
		ID:     e.ID,
		Text:   e.Text,
		Box:    e.Box,
		Drawer: e.Drawer,
		hidden: e.hidden,
	}
	c.classes = append([]string(nil), e.classes...)
	if len(e.attrs) > 0 {
		c.attrs = make(map[string]string, len(e.attrs))
		for k, v := range e.attrs {
			c.attrs[k] = v
		}
	}
	for _, child := range e.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}
