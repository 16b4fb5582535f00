package render

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_MarksAreLastInFirstOut(t *testing.T) {
	c := NewCanvas()
	a := geometry.Vector2D{X: 1, Y: 1}
	b := geometry.Vector2D{X: 2, Y: 2}

	c.DrawMark(a)
	c.DrawMark(b)
	require.Equal(t, 2, c.Len())

	c.RemoveLastMark()
	c.Repaint()
	frame := c.Frame()
	require.Len(t, frame.Segments, 1)
	assert.Equal(t, a, frame.Segments[0].From, "the most recent mark must go first")
	assert.True(t, frame.Segments[0].IsPoint())
}

func TestCanvas_BoxCountsAsFourMarks(t *testing.T) {
	c := NewCanvas()
	p := func(x, y float64) geometry.Vector2D { return geometry.Vector2D{X: x, Y: y} }
	c.DrawBox([4]Segment{
		{p(0, 0), p(1, 0)},
		{p(1, 0), p(1, 1)},
		{p(1, 1), p(0, 1)},
		{p(0, 1), p(0, 0)},
	})
	assert.Equal(t, 4, c.Len())

	for i := 0; i < 4; i++ {
		c.RemoveLastMark()
	}
	assert.Equal(t, 0, c.Len())
}

func TestCanvas_RemoveOnEmptyIsNoop(t *testing.T) {
	c := NewCanvas()
	c.RemoveLastMark()
	assert.Equal(t, 0, c.Len())
}

func TestCanvas_FrameIsACopy(t *testing.T) {
	c := NewCanvas()
	c.DrawMark(geometry.Vector2D{X: 5, Y: 5})
	c.Repaint()
	first := c.Frame()

	c.RemoveLastMark()
	c.Repaint()
	second := c.Frame()

	assert.Len(t, first.Segments, 1, "published frames must not change after the fact")
	assert.Empty(t, second.Segments)
	assert.Equal(t, first.Seq+1, second.Seq)
}
