// Package render holds the drawing surface the simulation marks entities on.
package render

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Segment is a straight line between two points. A point mark is a segment of length zero.
type Segment struct {
	From, To geometry.Vector2D
}

// IsPoint reports whether the segment collapses to a single point.
func (s Segment) IsPoint() bool {
	return s.From == s.To
}

// Surface is what entities draw themselves on.
// Removal is last-in first-out: RemoveLastMark undoes the most recently added mark.
type Surface interface {
	DrawMark(p geometry.Vector2D)
	DrawBox(edges [4]Segment)
	RemoveLastMark()
	Repaint()
}

// Frame is an immutable copy of the marks present at a Repaint.
type Frame struct {
	Segments []Segment
	Seq      uint64 // incremented on every Repaint
}

// Canvas is an in-memory Surface. The simulation goroutine mutates the mark stack,
// front-ends read published frames from their own goroutine.
type Canvas struct {
	mu    sync.Mutex
	marks []Segment
	frame Frame
}

var _ Surface = (*Canvas)(nil)

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{marks: make([]Segment, 0, 256)}
}

// DrawMark pushes a single point.
func (c *Canvas) DrawMark(p geometry.Vector2D) {
	c.mu.Lock()
	c.marks = append(c.marks, Segment{From: p, To: p})
	c.mu.Unlock()
}

// DrawBox pushes the four edges in order, each one being its own mark.
func (c *Canvas) DrawBox(edges [4]Segment) {
	c.mu.Lock()
	c.marks = append(c.marks, edges[:]...)
	c.mu.Unlock()
}

// RemoveLastMark pops the most recent mark; it does nothing on an empty canvas.
func (c *Canvas) RemoveLastMark() {
	c.mu.Lock()
	if n := len(c.marks); n > 0 {
		c.marks = c.marks[:n-1]
	}
	c.mu.Unlock()
}

// Repaint publishes the current marks as the latest frame.
func (c *Canvas) Repaint() {
	c.mu.Lock()
	segments := make([]Segment, len(c.marks))
	copy(segments, c.marks)
	c.frame = Frame{Segments: segments, Seq: c.frame.Seq + 1}
	c.mu.Unlock()
}

// Len is the number of marks currently on the canvas.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.marks)
}

// Frame returns the last published frame. The slice must not be modified.
func (c *Canvas) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}
