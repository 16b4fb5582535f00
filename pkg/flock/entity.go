package flock

import (
	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
)

// Entity is one boid. Its heading is in degrees, 0 pointing up and growing clockwise,
// and always stays in [0, 360).
//
// An Entity is not safe for concurrent use: only the simulation loop mutates it,
// while holding the population's live lock.
type Entity struct {
	ID               string
	Kind             Kind
	Position         geometry.Vector2D
	PreviousPosition geometry.Vector2D
	Heading          float64
	NeighborhoodSize float64

	// Per-tick statistics, rebuilt by ComputeFlockStatistics.
	FlockCenter     geometry.Vector2D
	FlockHeading    float64
	NeighborCount   int
	predatorsInView []*Entity

	staged bool // guarded by the population's pending lock
}

// NewEntity returns an entity of the given kind at pos, heading normalized.
func NewEntity(kind Kind, pos geometry.Vector2D, heading float64) *Entity {
	return &Entity{
		ID:               uuid.NewString(),
		Kind:             kind,
		Position:         pos,
		PreviousPosition: pos,
		Heading:          geometry.NormalizeHeading(heading),
		NeighborhoodSize: DefaultNeighborhoodSize,
	}
}

// IsPredator is true for the predator variant.
func (e *Entity) IsPredator() bool {
	return e.Kind == KindPredator
}

// PredatorsInView returns the predators found by the last ComputeFlockStatistics call.
func (e *Entity) PredatorsInView() []*Entity {
	return e.predatorsInView
}

// ============================================================================
// Motion
// ============================================================================

// Move advances the entity by speed units along its heading.
func (e *Entity) Move(speed float64) {
	e.PreviousPosition = e.Position
	e.Position = e.PreviousPosition.Add(geometry.NewVectorHeading(speed, e.Heading))
}

// Turn rotates the heading by delta degrees. |delta| must stay below a full revolution.
func (e *Entity) Turn(delta float64) {
	e.Heading = geometry.NormalizeHeading(e.Heading + delta)
}

// WrapPosition makes the world a torus: leaving one edge re-enters from the opposite one.
func (e *Entity) WrapPosition() {
	if e.Position.X <= 0 {
		e.Position.X = WrapX
	} else if e.Position.X >= WorldMaxX {
		e.Position.X = 0
	}
	if e.Position.Y <= 0 {
		e.Position.Y = WrapY
	} else if e.Position.Y >= WorldMaxY {
		e.Position.Y = 0
	}
}

// ============================================================================
// Perception
// ============================================================================

// ComputeFlockStatistics scans the whole population. The entity counts another one as a neighbor
// when it lies inside that other entity's flock box, so the entity itself is always counted when
// it belongs to population. With no neighbor at all the previous statistics are kept.
func (e *Entity) ComputeFlockStatistics(population []*Entity) {
	var (
		count      int
		sumPos     geometry.Vector2D
		sumHeading float64
	)
	e.predatorsInView = e.predatorsInView[:0]

	for _, other := range population {
		if !e.Position.WithinBox(other.Position, other.NeighborhoodSize/2) {
			continue
		}
		count++
		sumPos = sumPos.Add(other.Position)
		sumHeading += other.Heading
		if other.IsPredator() && other != e {
			e.predatorsInView = append(e.predatorsInView, other)
		}
	}

	e.NeighborCount = count
	if center, ok := sumPos.Div(float64(count)); ok {
		e.FlockCenter = center
		e.FlockHeading = sumHeading / float64(count)
	}
}

// ============================================================================
// Steering rules
// ============================================================================

// ApplyCohesion steers toward the flock center. Predators use their own fixed weight.
func (e *Entity) ApplyCohesion(weight float64) {
	w := e.Kind.traits().cohesionWeight(weight)
	e.Turn(w * geometry.SteeringAngle(e.FlockCenter.Sub(e.Position)))
}

// ApplySeparation steers away from the flock center.
func (e *Entity) ApplySeparation(weight float64) {
	if !e.Kind.traits().separates {
		return
	}
	e.Turn(-weight * geometry.SteeringAngle(e.FlockCenter.Sub(e.Position)))
}

// ApplyAlignment steers toward the average heading of the neighbors.
func (e *Entity) ApplyAlignment(weight float64) {
	if !e.Kind.traits().aligns {
		return
	}
	e.Turn(weight * (e.FlockHeading - e.Heading))
}

// ApplyNestAttraction steers toward the nest.
func (e *Entity) ApplyNestAttraction(nest geometry.Vector2D, weight float64) {
	if !e.Kind.traits().seeksNest {
		return
	}
	e.Turn(weight * geometry.SteeringAngle(nest.Sub(e.Position)))
}

// ApplyObstacleAvoidance turns slightly away from the obstacle and bounces back
// when the entity is inside it.
func (e *Entity) ApplyObstacleAvoidance(o Obstacle) {
	toCenter := o.Center.Sub(e.Position)
	e.Turn(-ObstacleAvoidanceWeight * geometry.SteeringAngle(toCenter))
	if toCenter.Len() <= o.Radius {
		e.Turn(ObstacleBounceTurn)
	}
}

// ApplyCollisions nudges apart every pair made of this entity and another one closer than radius.
// The cost is linear per entity, quadratic per tick.
// Both members of a close pair visit it in the same tick, so their ±90 turns cancel out
// unless the second one has moved out of range before its own visit.
func (e *Entity) ApplyCollisions(population []*Entity, enabled bool, radius float64) {
	if !enabled {
		return
	}
	radiusSq := radius * radius
	for _, other := range population {
		if other == e {
			continue
		}
		if e.Position.DistanceSquaredTo(other.Position) <= radiusSq {
			e.Turn(CollisionTurn)
			other.Turn(-CollisionTurn)
		}
	}
}

// ApplyPredatorEvasion turns away from every predator in view, then forgets them.
func (e *Entity) ApplyPredatorEvasion() {
	if !e.Kind.traits().evades {
		return
	}
	for _, predator := range e.predatorsInView {
		e.Turn(-PredatorEvasionWeight * geometry.SteeringAngle(predator.Position.Sub(e.Position)))
	}
	e.predatorsInView = e.predatorsInView[:0]
}

// ============================================================================
// Rendering
// ============================================================================

// Shape is the render footprint of the entity.
func (e *Entity) Shape() Shape {
	return e.Kind.traits().shape
}

// Draw marks the entity on s. Every Draw must be matched by one Undraw before the entity moves.
func (e *Entity) Draw(s render.Surface) {
	if e.Shape() == ShapeBox {
		s.DrawBox(boxAround(e.Position, PredatorHalfExtent))
		return
	}
	s.DrawMark(e.Position)
}

// Undraw removes the marks added by Draw and repaints.
func (e *Entity) Undraw(s render.Surface) {
	for i := 0; i < e.Shape().Marks(); i++ {
		s.RemoveLastMark()
	}
	s.Repaint()
}

func boxAround(p geometry.Vector2D, half float64) [4]render.Segment {
	topLeft := geometry.Vector2D{X: p.X - half, Y: p.Y + half}
	topRight := geometry.Vector2D{X: p.X + half, Y: p.Y + half}
	bottomRight := geometry.Vector2D{X: p.X + half, Y: p.Y - half}
	bottomLeft := geometry.Vector2D{X: p.X - half, Y: p.Y - half}
	return [4]render.Segment{
		{From: topLeft, To: topRight},
		{From: topRight, To: bottomRight},
		{From: bottomRight, To: bottomLeft},
		{From: bottomLeft, To: topLeft},
	}
}
