package flock

import (
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/random"
)

// Spawner creates new entities on behalf of the control surface.
// It is meant to be owned by a single goroutine.
type Spawner struct {
	obstacle         Obstacle
	neighborhoodSize float64

	x, y, heading *random.UniformSampler
}

// NewSpawner returns a spawner using the global random source.
func NewSpawner(obstacle Obstacle, neighborhoodSize float64) *Spawner {
	return &Spawner{
		obstacle:         obstacle,
		neighborhoodSize: neighborhoodSize,
		x:                random.NewUniformSampler(0, SpawnWidth),
		y:                random.NewUniformSampler(0, SpawnHeight),
		heading:          random.NewUniformSampler(0, DefaultSpawnHeadingRange),
	}
}

// NewSeededSpawner is NewSpawner with repeatable draws, for tests and benchmarks.
func NewSeededSpawner(obstacle Obstacle, neighborhoodSize float64, seed uint64) *Spawner {
	return &Spawner{
		obstacle:         obstacle,
		neighborhoodSize: neighborhoodSize,
		x:                random.NewSeededSampler(0, SpawnWidth, seed),
		y:                random.NewSeededSampler(0, SpawnHeight, seed+1),
		heading:          random.NewSeededSampler(0, DefaultSpawnHeadingRange, seed+2),
	}
}

// Random places a plain entity anywhere in the world with a random heading.
func (s *Spawner) Random() *Entity {
	return s.spawn(KindPlain, geometry.Vector2D{X: s.x.Sample(), Y: s.y.Sample()}, s.heading.Sample())
}

// Predator places a predator anywhere in the world with a random heading.
func (s *Spawner) Predator() *Entity {
	return s.spawn(KindPredator, geometry.Vector2D{X: s.x.Sample(), Y: s.y.Sample()}, s.heading.Sample())
}

// Flock creates size plain entities sharing heading, packed in a small box whose
// lower right corner is picked at random away from the world edges.
func (s *Spawner) Flock(size int, heading float64) []*Entity {
	cornerX := s.x.Between(DefaultFlockBoxMargin, SpawnWidth-DefaultFlockBoxMargin)
	cornerY := s.y.Between(DefaultFlockBoxMargin, SpawnHeight-DefaultFlockBoxMargin)

	members := make([]*Entity, 0, size)
	for i := 0; i < size; i++ {
		pos := geometry.Vector2D{
			X: s.x.Between(cornerX, cornerX-DefaultFlockBoxSize),
			Y: s.y.Between(cornerY, cornerY-DefaultFlockBoxSize),
		}
		members = append(members, s.spawn(KindPlain, pos, heading))
	}
	return members
}

func (s *Spawner) spawn(kind Kind, pos geometry.Vector2D, heading float64) *Entity {
	e := NewEntity(kind, s.clearOfObstacle(pos), heading)
	e.NeighborhoodSize = s.neighborhoodSize
	return e
}

// clearOfObstacle shifts a position that fell inside the obstacle by a fixed offset
// instead of drawing again, so spawning always terminates.
func (s *Spawner) clearOfObstacle(pos geometry.Vector2D) geometry.Vector2D {
	if s.obstacle.Contains(pos) {
		return pos.Sub(geometry.Vector2D{X: SpawnObstacleOffset, Y: SpawnObstacleOffset})
	}
	return pos
}
