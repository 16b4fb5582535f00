package simulation

import (
	"fmt"
	"sync"
)

// Names of the live-adjustable parameters, as used by the set command.
const (
	ParamSpeed          = "speed"
	ParamCohesion       = "cohesion"
	ParamSeparation     = "separation"
	ParamAlignment      = "alignment"
	ParamNestAttraction = "nest"
	ParamFlockSize      = "flockSize"
	ParamFlockAngle     = "flockAngle"
)

// Params is an immutable snapshot of the controls, taken once per tick.
type Params struct {
	Speed          float64
	Cohesion       float64
	Separation     float64
	Alignment      float64
	NestAttraction float64
	Collisions     bool

	// used by the add-flock command only
	FlockSize  int
	FlockAngle float64
}

// ParamSource is read by the loop at the start of every tick.
type ParamSource interface {
	Params() Params
}

type paramRange struct{ min, max float64 }

var paramRanges = map[string]paramRange{
	ParamSpeed:          {0, 5},
	ParamCohesion:       {0, 1},
	ParamSeparation:     {0, 1},
	ParamAlignment:      {0, 1},
	ParamNestAttraction: {0, 1},
	ParamFlockSize:      {1, 5},
	ParamFlockAngle:     {0, 360},
}

// Controls is the ParamSource written by the control surface and read by the loop.
type Controls struct {
	mu sync.RWMutex
	p  Params
}

var _ ParamSource = (*Controls)(nil)

func NewControls(initial Params) *Controls {
	return &Controls{p: initial}
}

func (c *Controls) Params() Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.p
}

// Set changes one named parameter. Unknown names, NaN and out of range values are rejected.
func (c *Controls) Set(name string, value float64) error {
	r, ok := paramRanges[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidCommand, name)
	}
	// written so that NaN fails too
	if !(value >= r.min && value <= r.max) {
		return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidCommand, name, value, r.min, r.max)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case ParamSpeed:
		c.p.Speed = value
	case ParamCohesion:
		c.p.Cohesion = value
	case ParamSeparation:
		c.p.Separation = value
	case ParamAlignment:
		c.p.Alignment = value
	case ParamNestAttraction:
		c.p.NestAttraction = value
	case ParamFlockSize:
		c.p.FlockSize = int(value)
	case ParamFlockAngle:
		c.p.FlockAngle = value
	}
	return nil
}

// ToggleCollisions flips the collision switch and returns its new state.
func (c *Controls) ToggleCollisions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.p.Collisions = !c.p.Collisions
	return c.p.Collisions
}
