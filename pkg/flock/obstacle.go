package flock

import "github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"

// Obstacle is the static circle entities steer around and bounce off.
type Obstacle struct {
	Center geometry.Vector2D `json:"center" toml:"center" yaml:"center"`
	Radius float64           `json:"radius" toml:"radius" yaml:"radius"`
}

// DefaultObstacle is the circle in the middle of the world.
func DefaultObstacle() Obstacle {
	return Obstacle{
		Center: geometry.Vector2D{X: DefaultObstacleX, Y: DefaultObstacleY},
		Radius: DefaultObstacleRadius,
	}
}

// Contains reports whether p is on or inside the circle.
func (o Obstacle) Contains(p geometry.Vector2D) bool {
	return p.DistanceTo(o.Center) <= o.Radius
}
