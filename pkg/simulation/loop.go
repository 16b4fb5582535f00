package simulation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
	golog "github.com/tochemey/goakt/v3/log"
)

// Loop owns the tick: draw, pause, apply the rules to every live entity, merge the newcomers.
// Step and Run must be called from a single goroutine.
type Loop struct {
	population *flock.Population
	surface    render.Surface
	params     ParamSource

	nest            geometry.Vector2D
	obstacle        flock.Obstacle
	collisionRadius float64
	tickDelay       time.Duration

	pause   func(time.Duration)
	logger  golog.Logger
	metrics *Metrics

	ticks       atomic.Uint64
	lastLogTime time.Time
}

type Option func(*Loop)

// WithLogger sets the loop logger. Defaults to golog.DiscardLogger.
func WithLogger(logger golog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithMetrics records every tick on m.
func WithMetrics(m *Metrics) Option {
	return func(l *Loop) { l.metrics = m }
}

// WithPause replaces time.Sleep between the draw and the rule phases.
func WithPause(pause func(time.Duration)) Option {
	return func(l *Loop) { l.pause = pause }
}

func NewLoop(cfg *Config, population *flock.Population, surface render.Surface, params ParamSource, opts ...Option) *Loop {
	l := &Loop{
		population:      population,
		surface:         surface,
		params:          params,
		nest:            cfg.Nest,
		obstacle:        cfg.Obstacle,
		collisionRadius: cfg.CollisionRadius,
		tickDelay:       cfg.TickDelay(),
		pause:           time.Sleep,
		logger:          golog.DiscardLogger,
		lastLogTime:     time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ticks is the number of completed ticks. Safe to call from any goroutine.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Step runs one full tick.
func (l *Loop) Step() {
	// 1. Draw
	l.population.WithLive(func(live []*flock.Entity) {
		for _, e := range live {
			e.Draw(l.surface)
		}
	})
	l.surface.Repaint()

	// 2. Pause
	l.pause(l.tickDelay)

	// 3. Rules, with parameters frozen for the whole pass
	p := l.params.Params()
	start := time.Now()
	l.population.WithLive(func(live []*flock.Entity) {
		for _, e := range live {
			l.applyRules(e, live, p)
		}
	})
	rules := time.Since(start)

	// 4. Merge
	merged := l.population.Drain()
	tick := l.ticks.Add(1)

	plain, predators := l.population.Census()
	if merged > 0 {
		l.logger.Infof("tick %d: merged %d entities, population %d plain + %d predators",
			tick, merged, plain, predators)
	}
	l.metrics.observeTick(rules, merged, l.population.PendingLen(), plain, predators)
	l.logStats(tick, rules, plain+predators)
}

func (l *Loop) applyRules(e *flock.Entity, live []*flock.Entity, p Params) {
	e.ComputeFlockStatistics(live)
	e.Move(p.Speed)
	e.ApplyCohesion(p.Cohesion)
	e.ApplySeparation(p.Separation)
	e.ApplyAlignment(p.Alignment)
	e.ApplyNestAttraction(l.nest, p.NestAttraction)
	e.ApplyObstacleAvoidance(l.obstacle)
	e.ApplyCollisions(live, p.Collisions, l.collisionRadius)
	e.ApplyPredatorEvasion()
	e.WrapPosition()
	e.Undraw(l.surface)
}

func (l *Loop) logStats(tick uint64, rules time.Duration, population int) {
	if time.Since(l.lastLogTime) < time.Second {
		return
	}
	l.logger.Debugf("📊 tick %d | population %d | rules %.2fms", tick, population,
		float64(rules.Microseconds())/1000.0)
	l.lastLogTime = time.Now()
}

// Run ticks until ctx is done, checking it once per tick, and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("simulation loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Infof("simulation loop stopped after %d ticks", l.Ticks())
			return ctx.Err()
		default:
		}
		l.Step()
	}
}

// RunTicks runs at most n ticks and returns how many ran. The error is ctx.Err() when
// the context ended first.
func (l *Loop) RunTicks(ctx context.Context, n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		l.Step()
	}
	return n, nil
}

// StageInitialPopulation queues the entities the configuration asks for, to be merged on the first tick.
func StageInitialPopulation(cfg *Config, population *flock.Population, spawner *flock.Spawner) int {
	staged := 0
	for i := 0; i < cfg.InitialEntities; i++ {
		staged += population.Stage(spawner.Random())
	}
	for i := 0; i < cfg.InitialFlocks; i++ {
		staged += population.Stage(spawner.Flock(cfg.FlockSize, cfg.FlockAngle)...)
	}
	for i := 0; i < cfg.InitialPredators; i++ {
		staged += population.Stage(spawner.Predator())
	}
	return staged
}
