// Package flock implements the entities of the simulation and the steering rules they follow.
package flock

import "github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"

// World dimensions and wrap targets. Positions stay in [0, WorldMaxX] x [0, WorldMaxY].
const (
	WorldMaxX = 699.0
	WorldMaxY = 499.0
	WrapX     = 698.0 // where an entity leaving through the left edge reappears
	WrapY     = 498.0 // where an entity leaving through the top edge reappears

	// SpawnWidth and SpawnHeight bound random spawns, the canvas is 700x500.
	SpawnWidth  = 700.0
	SpawnHeight = 500.0
)

// Rule constants.
const (
	DefaultNeighborhoodSize  = 50.0
	DefaultCollisionRadius   = 2.0
	ObstacleAvoidanceWeight  = 0.03
	PredatorCohesionWeight   = 0.01
	PredatorEvasionWeight    = 0.5
	ObstacleBounceTurn       = -180.0
	CollisionTurn            = 90.0
	PredatorHalfExtent       = 2.0
	SpawnObstacleOffset      = 100.0
	DefaultFlockBoxSize      = 20.0
	DefaultFlockBoxMargin    = 20.0
	DefaultNestX             = 100.0
	DefaultNestY             = 100.0
	DefaultObstacleX         = 350.0
	DefaultObstacleY         = 250.0
	DefaultObstacleRadius    = 80.0
	DefaultSpawnHeadingRange = 360.0
)

// DefaultNest is where entities are attracted when the nest weight is not zero.
var DefaultNest = geometry.Vector2D{X: DefaultNestX, Y: DefaultNestY}
