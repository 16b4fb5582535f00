// Package terminal renders the simulation in a text terminal with tcell.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	refreshInterval = 33 * time.Millisecond
	speedStep       = 0.5
	maxSpeed        = 5.0
)

var (
	entityStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	predatorStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	nestStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

const helpLine = "e:entity f:flock p:predator c:collisions +/-:speed q:quit"

// Terminal draws the canvas scaled down to the terminal size. The last row is a status line.
type Terminal struct {
	screen    tcell.Screen
	canvas    *render.Canvas
	commander simulation.Commander
	params    simulation.ParamSource
	ticks     func() uint64
	logger    golog.Logger

	obstacle flock.Obstacle
	nest     geometry.Vector2D
}

// New initializes screen, which may be a tcell simulation screen in tests.
func New(screen tcell.Screen, cfg *simulation.Config, canvas *render.Canvas, commander simulation.Commander,
	params simulation.ParamSource, ticks func() uint64, logger golog.Logger) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init terminal: %w", err)
	}
	return &Terminal{
		screen:    screen,
		canvas:    canvas,
		commander: commander,
		params:    params,
		ticks:     ticks,
		logger:    logger,
		obstacle:  cfg.Obstacle,
		nest:      cfg.Nest,
	}, nil
}

// Run redraws until ctx is done or the user quits, then restores the terminal.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			t.draw()
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (t *Terminal) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if cmd, ok := keyCommand(ev, t.params.Params()); ok {
			if err := t.commander.Send(ctx, cmd); err != nil {
				t.logger.Errorf("terminal: %v", err)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// keyCommand maps a key press to a control command.
func keyCommand(ev *tcell.EventKey, p simulation.Params) (simulation.Command, bool) {
	if ev.Key() != tcell.KeyRune {
		return simulation.Command{}, false
	}
	switch ev.Rune() {
	case 'e':
		return simulation.AddEntity(), true
	case 'f':
		return simulation.AddFlockFromControls(), true
	case 'p':
		return simulation.AddPredator(), true
	case 'c':
		return simulation.ToggleCollisions(), true
	case '+', '=':
		return simulation.Set(simulation.ParamSpeed, math.Min(maxSpeed, p.Speed+speedStep)), true
	case '-':
		return simulation.Set(simulation.ParamSpeed, math.Max(0, p.Speed-speedStep)), true
	}
	return simulation.Command{}, false
}

func (t *Terminal) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()
	if w <= 0 || h <= 1 {
		t.screen.Show()
		return
	}
	rows := h - 1

	// obstacle outline, one cell per few degrees
	for deg := 0.0; deg < geometry.FullTurn; deg += 5 {
		x, y := cellFor(t.obstacle.Center.Add(geometry.NewVectorHeading(t.obstacle.Radius, deg)), w, rows)
		t.screen.SetContent(x, y, '·', nil, obstacleStyle)
	}
	x, y := cellFor(t.nest, w, rows)
	t.screen.SetContent(x, y, 'N', nil, nestStyle)

	frame := t.canvas.Frame()
	for _, s := range frame.Segments {
		x, y := cellFor(s.From, w, rows)
		if s.IsPoint() {
			t.screen.SetContent(x, y, '•', nil, entityStyle)
		} else {
			t.screen.SetContent(x, y, '#', nil, predatorStyle)
		}
	}

	p := t.params.Params()
	status := fmt.Sprintf(" tick %d | speed %.1f | collisions %t | %s ", t.ticks(), p.Speed, p.Collisions, helpLine)
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		t.screen.SetContent(i, rows, r, nil, statusStyle)
	}
	t.screen.Show()
}

// cellFor maps a world position to a cell of a cols x rows grid, clamped to the grid.
func cellFor(p geometry.Vector2D, cols, rows int) (int, int) {
	x := int(p.X / flock.SpawnWidth * float64(cols))
	y := int(p.Y / flock.SpawnHeight * float64(rows))
	return clamp(x, 0, cols-1), clamp(y, 0, rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
