// Package window is the ebiten front-end: it paints the published canvas frames and
// turns panel interactions into control commands.
package window

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/ui"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	worldWidth  = int(flock.SpawnWidth)
	worldHeight = int(flock.SpawnHeight)
	panelWidth  = 240

	// Width and Height are the logical window size: the world plus the control panel on its right.
	Width  = worldWidth + panelWidth
	Height = worldHeight
)

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	entityColor     = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	obstacleColor   = color.RGBA{R: 255, G: 140, B: 60, A: 255}
	nestColor       = color.RGBA{R: 80, G: 220, B: 120, A: 255}
)

type Game struct {
	ctx       context.Context
	commander simulation.Commander
	canvas    *render.Canvas
	ticks     func() uint64
	logger    golog.Logger
	cfg       *simulation.Config

	// UI Controls
	panel *ui.Panel

	// Timing instrumentation
	lastDrawDuration time.Duration
	drawAvg          float64 // Rolling average in ms
}

// NewGame builds the window and its control panel. ticks reports the loop progress.
func NewGame(ctx context.Context, cfg *simulation.Config, canvas *render.Canvas, commander simulation.Commander,
	ticks func() uint64, logger golog.Logger) *Game {
	g := &Game{
		ctx:       ctx,
		commander: commander,
		canvas:    canvas,
		ticks:     ticks,
		logger:    logger,
		cfg:       cfg,
	}

	panel := ui.NewPanel(float64(worldWidth)+5, 5, panelWidth-10, float64(worldHeight)-10)

	panel.AddSection("Steering")
	g.addSlider(panel, "Speed", simulation.ParamSpeed, 0, 5, 0.5, cfg.Speed)
	g.addSlider(panel, "Cohesion", simulation.ParamCohesion, 0, 1, 0.1, cfg.Cohesion)
	g.addSlider(panel, "Separation", simulation.ParamSeparation, 0, 1, 0.1, cfg.Separation)
	g.addSlider(panel, "Alignment", simulation.ParamAlignment, 0, 1, 0.1, cfg.Alignment)
	g.addSlider(panel, "Nest", simulation.ParamNestAttraction, 0, 1, 0.1, cfg.NestAttraction)
	collisions := panel.AddCheckbox("Collisions", cfg.Collisions)
	collisions.OnChange = func(bool) { g.send(simulation.ToggleCollisions()) }

	panel.AddSection("Population")
	g.addSlider(panel, "Flock size", simulation.ParamFlockSize, 1, 5, 1, float64(cfg.FlockSize))
	g.addSlider(panel, "Flock angle", simulation.ParamFlockAngle, 0, 360, 10, cfg.FlockAngle)
	panel.AddButton("Add entity", func() { g.send(simulation.AddEntity()) })
	panel.AddButton("Add flock", func() { g.send(simulation.AddFlockFromControls()) })
	panel.AddButton("Add predator", func() { g.send(simulation.AddPredator()) })

	g.panel = panel
	return g
}

func (g *Game) addSlider(panel *ui.Panel, label, param string, min, max, step, value float64) {
	s := panel.AddSlider(label, min, max, value)
	s.Step = step
	s.OnChange = func(v float64) { g.send(simulation.Set(param, v)) }
}

func (g *Game) send(cmd simulation.Command) {
	if err := g.commander.Send(g.ctx, cmd); err != nil {
		g.logger.Errorf("ui: %v", err)
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.panel.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	vector.FillRect(screen, 0, 0, float32(worldWidth), float32(worldHeight), backgroundColor, false)

	// 1. Static scenery
	o := g.cfg.Obstacle
	vector.StrokeCircle(screen, float32(o.Center.X), float32(o.Center.Y), float32(o.Radius), 2, obstacleColor, true)
	vector.FillCircle(screen, float32(g.cfg.Nest.X), float32(g.cfg.Nest.Y), 4, nestColor, true)

	// 2. Entities from the last published frame
	frame := g.canvas.Frame()
	for _, s := range frame.Segments {
		if s.IsPoint() {
			vector.FillRect(screen, float32(s.From.X)-1, float32(s.From.Y)-1, 3, 3, entityColor, false)
			continue
		}
		vector.StrokeLine(screen,
			float32(s.From.X), float32(s.From.Y),
			float32(s.To.X), float32(s.To.Y),
			1, color.White, true)
	}

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTick: %d\nMarks: %d\nDraw: %.2fms",
		ebiten.ActualFPS(), g.ticks(), len(frame.Segments), g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return Width, Height }
