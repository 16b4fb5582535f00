package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

// headingDiff is the smallest angle between two headings, so 359.9999999 and 0 compare equal.
func headingDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), geometry.FullTurn)
	return math.Min(d, geometry.FullTurn-d)
}

func plainAt(x, y, heading float64) *Entity {
	return NewEntity(KindPlain, geometry.Vector2D{X: x, Y: y}, heading)
}

func predatorAt(x, y, heading float64) *Entity {
	return NewEntity(KindPredator, geometry.Vector2D{X: x, Y: y}, heading)
}

func TestNewEntity(t *testing.T) {
	e := NewEntity(KindPlain, geometry.Vector2D{X: 10, Y: 20}, -90)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 270.0, e.Heading)
	assert.Equal(t, e.Position, e.PreviousPosition)
	assert.Equal(t, DefaultNeighborhoodSize, e.NeighborhoodSize)
	assert.False(t, e.IsPredator())
	assert.NotEqual(t, e.ID, plainAt(10, 20, 0).ID)
}

func TestEntity_Turn(t *testing.T) {
	headings := []float64{0, 45, 180, 270, 359.5}
	deltas := []float64{-359, -180, -90, -0.5, 0, 10, 90, 270, 359}

	for _, h := range headings {
		for _, d := range deltas {
			e := plainAt(0, 0, h)
			e.Turn(d)
			require.GreaterOrEqual(t, e.Heading, 0.0, "turn(%v) from %v", d, h)
			require.Less(t, e.Heading, geometry.FullTurn, "turn(%v) from %v", d, h)

			e.Turn(-d)
			assert.InDelta(t, 0, headingDiff(e.Heading, h), tolerance, "turn(%v) then turn(%v) from %v", d, -d, h)
		}
	}

	t.Run("zero is identity", func(t *testing.T) {
		e := plainAt(0, 0, 123.4)
		e.Turn(0)
		assert.Equal(t, 123.4, e.Heading)
	})
}

func TestEntity_Move(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		speed   float64
		want    geometry.Vector2D
	}{
		{"up", 0, 5, geometry.Vector2D{X: 100, Y: 95}},
		{"right", 90, 5, geometry.Vector2D{X: 105, Y: 100}},
		{"down", 180, 5, geometry.Vector2D{X: 100, Y: 105}},
		{"left", 270, 5, geometry.Vector2D{X: 95, Y: 100}},
		{"zero speed", 33, 0, geometry.Vector2D{X: 100, Y: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := plainAt(100, 100, tt.heading)
			e.Move(tt.speed)
			assert.True(t, e.Position.EqWithin(tt.want, tolerance), "got %v, want %v", e.Position, tt.want)
			assert.Equal(t, geometry.Vector2D{X: 100, Y: 100}, e.PreviousPosition)
		})
	}
}

func TestEntity_MoveZeroIsIdentity(t *testing.T) {
	for h := 0.0; h < geometry.FullTurn; h += 7.5 {
		e := plainAt(42, 24, h)
		e.Move(0)
		assert.Equal(t, geometry.Vector2D{X: 42, Y: 24}, e.Position, "heading %v", h)
	}
}

func TestEntity_SquarePathReturnsHome(t *testing.T) {
	start := geometry.Vector2D{X: 200, Y: 200}
	e := NewEntity(KindPlain, start, 0)

	for i := 0; i < 4; i++ {
		e.Move(10)
		e.Turn(90)
	}

	assert.True(t, e.Position.EqWithin(start, tolerance), "ended at %v", e.Position)
	assert.InDelta(t, 0, headingDiff(e.Heading, 0), tolerance)
}

func TestEntity_WrapPosition(t *testing.T) {
	tests := []struct {
		name string
		in   geometry.Vector2D
		want geometry.Vector2D
	}{
		{"inside", geometry.Vector2D{X: 350, Y: 250}, geometry.Vector2D{X: 350, Y: 250}},
		{"near edges", geometry.Vector2D{X: 0.5, Y: 498.5}, geometry.Vector2D{X: 0.5, Y: 498.5}},
		{"left edge", geometry.Vector2D{X: 0, Y: 10}, geometry.Vector2D{X: WrapX, Y: 10}},
		{"past left edge", geometry.Vector2D{X: -3, Y: 10}, geometry.Vector2D{X: WrapX, Y: 10}},
		{"right edge", geometry.Vector2D{X: 699, Y: 10}, geometry.Vector2D{X: 0, Y: 10}},
		{"past right edge", geometry.Vector2D{X: 700, Y: 10}, geometry.Vector2D{X: 0, Y: 10}},
		{"top edge", geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{X: 10, Y: WrapY}},
		{"bottom edge", geometry.Vector2D{X: 10, Y: 500}, geometry.Vector2D{X: 10, Y: 0}},
		{"corner", geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{X: WrapX, Y: WrapY}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntity(KindPlain, tt.in, 0)
			e.WrapPosition()
			assert.Equal(t, tt.want, e.Position)
		})
	}
}

func TestEntity_ComputeFlockStatistics(t *testing.T) {
	a := plainAt(0, 0, 0)
	b := plainAt(10, 0, 30)
	c := plainAt(5, 5, 60)
	population := []*Entity{a, b, c}

	a.ComputeFlockStatistics(population)

	assert.Equal(t, 3, a.NeighborCount)
	assert.InDelta(t, 5, a.FlockCenter.X, 0.01)
	assert.InDelta(t, 1.67, a.FlockCenter.Y, 0.01)
	assert.InDelta(t, 30, a.FlockHeading, tolerance)
	assert.Empty(t, a.PredatorsInView())
}

func TestEntity_ComputeFlockStatisticsWithoutNeighbors(t *testing.T) {
	e := plainAt(10, 10, 0)
	e.FlockCenter = geometry.Vector2D{X: 1, Y: 2}
	e.FlockHeading = 45

	far := plainAt(400, 400, 90)
	e.ComputeFlockStatistics([]*Entity{far})

	assert.Equal(t, 0, e.NeighborCount)
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 2}, e.FlockCenter)
	assert.Equal(t, 45.0, e.FlockHeading)
	assert.True(t, e.FlockCenter.IsFinite())

	e.ComputeFlockStatistics(nil)
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 2}, e.FlockCenter)
}

func TestEntity_ComputeFlockStatisticsUsesTheOtherBox(t *testing.T) {
	e := plainAt(0, 0, 0)
	wide := plainAt(40, 0, 0)
	wide.NeighborhoodSize = 100
	narrow := plainAt(-40, 0, 0)
	narrow.NeighborhoodSize = 10

	e.ComputeFlockStatistics([]*Entity{e, wide, narrow})

	assert.Equal(t, 2, e.NeighborCount, "self and the wide entity only")
	assert.InDelta(t, 20, e.FlockCenter.X, tolerance)
}

func TestEntity_ComputeFlockStatisticsCollectsPredators(t *testing.T) {
	e := plainAt(100, 100, 0)
	p1 := predatorAt(110, 110, 0)
	p2 := predatorAt(300, 300, 0)
	population := []*Entity{e, p1, p2}

	e.ComputeFlockStatistics(population)
	require.Len(t, e.PredatorsInView(), 1)
	assert.Same(t, p1, e.PredatorsInView()[0])

	// the list is rebuilt on each scan, never accumulated
	e.ComputeFlockStatistics(population)
	assert.Len(t, e.PredatorsInView(), 1)

	p1.ComputeFlockStatistics(population)
	assert.Empty(t, p1.PredatorsInView(), "a predator never sees itself")
}

func TestEntity_SteeringRules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(e *Entity)
		want  float64
	}{
		{"cohesion", func(e *Entity) { e.ApplyCohesion(0.2) }, 9},
		{"separation", func(e *Entity) { e.ApplySeparation(0.2) }, 351},
		{"alignment", func(e *Entity) { e.ApplyAlignment(0.5) }, 30},
		{"nest", func(e *Entity) { e.ApplyNestAttraction(geometry.Vector2D{X: 100, Y: 100}, 0.5) }, 22.5},
		{"zero weight", func(e *Entity) { e.ApplyCohesion(0) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := plainAt(0, 0, 0)
			e.FlockCenter = geometry.Vector2D{X: 10, Y: 10}
			e.FlockHeading = 60
			tt.apply(e)
			assert.InDelta(t, 0, headingDiff(e.Heading, tt.want), tolerance, "heading %v, want %v", e.Heading, tt.want)
		})
	}
}

func TestEntity_ObstacleAvoidance(t *testing.T) {
	o := DefaultObstacle()

	t.Run("bounce at the center", func(t *testing.T) {
		for _, h := range []float64{0, 10, 90, 200, 359} {
			e := NewEntity(KindPlain, o.Center, h)
			e.ApplyObstacleAvoidance(o)
			want := geometry.NormalizeHeading(h + 180)
			assert.InDelta(t, 0, headingDiff(e.Heading, want), tolerance, "from %v", h)
		}
	})

	t.Run("slight turn outside", func(t *testing.T) {
		// obstacle lies straight below-right at 45 degrees
		e := NewEntity(KindPlain, o.Center.Sub(geometry.Vector2D{X: 100, Y: 100}), 0)
		e.ApplyObstacleAvoidance(o)
		assert.InDelta(t, 0, headingDiff(e.Heading, -ObstacleAvoidanceWeight*45), tolerance)
	})

	t.Run("predators bounce too", func(t *testing.T) {
		e := NewEntity(KindPredator, o.Center, 0)
		e.ApplyObstacleAvoidance(o)
		assert.InDelta(t, 180, e.Heading, tolerance)
	})
}

func TestEntity_Collisions(t *testing.T) {
	t.Run("close pair", func(t *testing.T) {
		a := plainAt(10, 10, 0)
		b := plainAt(11, 10, 0)
		population := []*Entity{a, b}

		a.ApplyCollisions(population, true, DefaultCollisionRadius)
		assert.Equal(t, 90.0, a.Heading)
		assert.Equal(t, 270.0, b.Heading)
	})

	t.Run("both visits cancel out", func(t *testing.T) {
		a := plainAt(10, 10, 0)
		b := plainAt(11, 10, 0)
		population := []*Entity{a, b}

		a.ApplyCollisions(population, true, DefaultCollisionRadius)
		b.ApplyCollisions(population, true, DefaultCollisionRadius)
		assert.Equal(t, 0.0, a.Heading)
		assert.Equal(t, 0.0, b.Heading)
	})

	t.Run("disabled", func(t *testing.T) {
		a := plainAt(10, 10, 0)
		b := plainAt(10, 10, 0)
		a.ApplyCollisions([]*Entity{a, b}, false, DefaultCollisionRadius)
		assert.Equal(t, 0.0, a.Heading)
		assert.Equal(t, 0.0, b.Heading)
	})

	t.Run("out of radius", func(t *testing.T) {
		a := plainAt(10, 10, 0)
		b := plainAt(20, 10, 0)
		a.ApplyCollisions([]*Entity{a, b}, true, DefaultCollisionRadius)
		assert.Equal(t, 0.0, a.Heading)
		assert.Equal(t, 0.0, b.Heading)
	})

	t.Run("alone", func(t *testing.T) {
		a := plainAt(10, 10, 0)
		a.ApplyCollisions([]*Entity{a}, true, DefaultCollisionRadius)
		assert.Equal(t, 0.0, a.Heading)
	})
}

func TestEntity_PredatorEvasion(t *testing.T) {
	e := plainAt(0, 0, 0)
	p := predatorAt(10, 10, 0)
	e.ComputeFlockStatistics([]*Entity{e, p})
	require.Len(t, e.PredatorsInView(), 1)

	e.ApplyPredatorEvasion()
	assert.InDelta(t, 0, headingDiff(e.Heading, -22.5), tolerance)
	assert.Empty(t, e.PredatorsInView())

	before := e.Heading
	e.ApplyPredatorEvasion()
	assert.Equal(t, before, e.Heading, "evasion is spent once applied")
}

func TestPredator_IgnoresFlockRules(t *testing.T) {
	for _, h := range []float64{0, 90, 181, 359} {
		p := predatorAt(0, 0, h)
		prey := predatorAt(5, 5, 0)
		p.predatorsInView = []*Entity{prey}
		p.FlockCenter = geometry.Vector2D{X: 10, Y: 10}
		p.FlockHeading = 300

		p.ApplySeparation(1)
		p.ApplyAlignment(1)
		p.ApplyNestAttraction(geometry.Vector2D{X: 100, Y: 300}, 1)
		p.ApplyPredatorEvasion()

		assert.Equal(t, h, p.Heading)
	}
}

func TestPredator_FixedCohesionWeight(t *testing.T) {
	for _, w := range []float64{0, 0.2, 1} {
		p := predatorAt(0, 0, 0)
		p.FlockCenter = geometry.Vector2D{X: 10, Y: 10}
		p.ApplyCohesion(w)
		assert.InDelta(t, PredatorCohesionWeight*45, p.Heading, tolerance, "requested weight %v", w)
	}
}

func TestEntity_DrawUndrawBalance(t *testing.T) {
	tests := []struct {
		name  string
		e     *Entity
		marks int
	}{
		{"plain", plainAt(50, 50, 0), 1},
		{"predator", predatorAt(50, 50, 0), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := render.NewCanvas()
			tt.e.Draw(c)
			assert.Equal(t, tt.marks, c.Len())
			assert.Equal(t, tt.marks, tt.e.Shape().Marks())

			tt.e.Undraw(c)
			assert.Equal(t, 0, c.Len())
			assert.Equal(t, uint64(1), c.Frame().Seq, "undraw repaints")
		})
	}
}

func TestPredator_BoxOutline(t *testing.T) {
	c := render.NewCanvas()
	predatorAt(50, 50, 0).Draw(c)
	c.Repaint()

	segments := c.Frame().Segments
	require.Len(t, segments, 4)
	for i, s := range segments {
		assert.False(t, s.IsPoint())
		assert.Equal(t, s.To, segments[(i+1)%4].From, "edges form a closed loop")
		assert.InDelta(t, 2*PredatorHalfExtent, s.From.DistanceTo(s.To), tolerance)
	}
}
