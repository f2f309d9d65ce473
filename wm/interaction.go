// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/interaction.go
// Summary: Pointer-driven drag and eight-direction resize of the container.

package wm

import "github.com/framegrace/texeltabs/dom"

// Direction identifies a resize handle.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions lists every resize handle in creation order.
var Directions = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

func (d Direction) String() string {
	switch d {
	case North:
		return "n"
	case South:
		return "s"
	case East:
		return "e"
	case West:
		return "w"
	case NorthEast:
		return "ne"
	case NorthWest:
		return "nw"
	case SouthEast:
		return "se"
	case SouthWest:
		return "sw"
	}
	return "?"
}

func (d Direction) north() bool { return d == North || d == NorthEast || d == NorthWest }
func (d Direction) south() bool { return d == South || d == SouthEast || d == SouthWest }
func (d Direction) east() bool  { return d == East || d == NorthEast || d == SouthEast }
func (d Direction) west() bool  { return d == West || d == NorthWest || d == SouthWest }

// InteractionState is the pointer session state of the container.
type InteractionState int

const (
	Idle InteractionState = iota
	Dragging
	Resizing
)

func (s InteractionState) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// Frame is the geometry the controller moves and sizes.
type Frame interface {
	ContainerRect() dom.Rect
	SetContainerRect(dom.Rect)
}

// Interaction tracks one pointer session at a time. A drag and a resize can
// only start from Idle, so the two never overlap.
type Interaction struct {
	frame      Frame
	minW, minH int

	state  InteractionState
	dir    Direction
	startX int
	startY int
	start  dom.Rect

	detach []func()
}

// NewInteraction returns an idle controller for frame.
func NewInteraction(frame Frame, minWidth, minHeight int) *Interaction {
	return &Interaction{frame: frame, minW: minWidth, minH: minHeight}
}

// State returns the current session state.
func (c *Interaction) State() InteractionState {
	return c.state
}

// ResizeDirection returns the active handle while resizing.
func (c *Interaction) ResizeDirection() (Direction, bool) {
	return c.dir, c.state == Resizing
}

// Attach wires the header and handles of a container. Move and release are
// observed on the document so a pointer released outside the container
// still ends the session.
func (c *Interaction) Attach(doc *dom.Document, header *dom.Element, handles map[Direction]*dom.Element) {
	c.Detach()
	c.detach = append(c.detach, header.On(dom.PointerDown, func(ev *dom.Event) {
		if t := ev.Target; t != nil && (t.Closest(ClassTab) != nil || t.Closest(ClassControl) != nil) {
			return
		}
		c.BeginDrag(ev.X, ev.Y)
	}))
	for dir, h := range handles {
		dir := dir
		c.detach = append(c.detach, h.On(dom.PointerDown, func(ev *dom.Event) {
			ev.StopPropagation()
			c.BeginResize(dir, ev.X, ev.Y)
		}))
	}
	c.detach = append(c.detach,
		doc.On(dom.PointerMove, func(ev *dom.Event) { c.Move(ev.X, ev.Y) }),
		doc.On(dom.PointerUp, func(ev *dom.Event) { c.End() }),
	)
}

// Detach removes every listener installed by Attach and ends any session.
func (c *Interaction) Detach() {
	for _, off := range c.detach {
		off()
	}
	c.detach = nil
	c.End()
}

// BeginDrag starts a drag at the pointer position. It fails unless idle.
func (c *Interaction) BeginDrag(x, y int) bool {
	if c.state != Idle {
		return false
	}
	c.state = Dragging
	c.capture(x, y)
	return true
}

// BeginResize starts resizing from handle dir. It fails unless idle.
func (c *Interaction) BeginResize(dir Direction, x, y int) bool {
	if c.state != Idle {
		return false
	}
	c.state = Resizing
	c.dir = dir
	c.capture(x, y)
	return true
}

func (c *Interaction) capture(x, y int) {
	c.startX, c.startY = x, y
	c.start = c.frame.ContainerRect()
}

// Move applies the total pointer delta since the session started.
func (c *Interaction) Move(x, y int) {
	switch c.state {
	case Dragging:
		r := c.start
		r.X = c.start.X + (x - c.startX)
		r.Y = c.start.Y + (y - c.startY)
		c.frame.SetContainerRect(r)
	case Resizing:
		c.frame.SetContainerRect(c.resized(x-c.startX, y-c.startY))
	}
}

// resized computes the new rect for a pointer delta. Left and top edges shift
// the origin by the clamped size change so the opposite edge stays put.
func (c *Interaction) resized(dx, dy int) dom.Rect {
	r := c.start
	if c.dir.east() {
		r.W = max(c.minW, c.start.W+dx)
	}
	if c.dir.west() {
		r.W = max(c.minW, c.start.W-dx)
		r.X = c.start.X + (c.start.W - r.W)
	}
	if c.dir.south() {
		r.H = max(c.minH, c.start.H+dy)
	}
	if c.dir.north() {
		r.H = max(c.minH, c.start.H-dy)
		r.Y = c.start.Y + (c.start.H - r.H)
	}
	return r
}

// End finishes the current session.
func (c *Interaction) End() {
	c.state = Idle
}
