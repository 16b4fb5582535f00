package simulation

import (
	"context"
	"fmt"
	"strings"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	actorSystemName  = "FlockingSimulation"
	controlActorName = "control"
)

// Commander is what front-ends talk to.
type Commander interface {
	Send(ctx context.Context, cmd Command) error
}

// ControlActor applies control commands one at a time: its mailbox is the only writer
// of the controls and the only producer of new entities while the simulation runs.
type ControlActor struct {
	controls   *Controls
	population *flock.Population
	spawner    *flock.Spawner
}

var _ actor.Actor = (*ControlActor)(nil)

func NewControlActor(controls *Controls, population *flock.Population, spawner *flock.Spawner) *ControlActor {
	return &ControlActor{
		controls:   controls,
		population: population,
		spawner:    spawner,
	}
}

// ============================================================================
// Actor Lifecycle Hooks
// ============================================================================

func (a *ControlActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("control surface ready, initial controls %+v", a.controls.Params())
	return nil
}

func (a *ControlActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("control surface stopped")
	return nil
}

// ============================================================================
// Message Routing
// ============================================================================

func (a *ControlActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Debugf("%s started", ctx.Self().Name())

	case *structpb.Struct:
		cmd, err := DecodeCommand(msg)
		if err != nil {
			ctx.Logger().Warnf("dropping command: %v", err)
			return
		}
		outcome, err := a.apply(cmd)
		if err != nil {
			ctx.Logger().Warnf("%s rejected: %v", cmd, err)
			return
		}
		ctx.Logger().Infof("%s: %s", cmd, outcome)

	default:
		ctx.Unhandled()
	}
}

func (a *ControlActor) apply(cmd Command) (string, error) {
	switch cmd.Kind {
	case CmdAddEntity:
		return a.stage(a.spawner.Random()), nil

	case CmdAddPredator:
		return a.stage(a.spawner.Predator()), nil

	case CmdAddFlock:
		size, angle := cmd.Size, cmd.Angle
		if size == 0 {
			p := a.controls.Params()
			size, angle = p.FlockSize, p.FlockAngle
		}
		return a.stage(a.spawner.Flock(size, angle)...), nil

	case CmdSet:
		if err := a.controls.Set(cmd.Param, cmd.Value); err != nil {
			return "", err
		}
		return "applied", nil

	case CmdToggleCollisions:
		return fmt.Sprintf("collisions %t", a.controls.ToggleCollisions()), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
}

// stage queues entities and describes them by ID, so the log line can be matched
// with the entities merged on the next tick.
func (a *ControlActor) stage(entities ...*flock.Entity) string {
	n := a.population.Stage(entities...)
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}
	return fmt.Sprintf("staged %d [%s]", n, strings.Join(ids, " "))
}

// ============================================================================
// Control surface
// ============================================================================

// ControlSurface runs the actor system hosting the ControlActor.
type ControlSurface struct {
	system actor.ActorSystem
	pid    *actor.PID
}

var _ Commander = (*ControlSurface)(nil)

// StartControlSurface starts a local actor system and spawns ctl in it.
func StartControlSurface(ctx context.Context, logger golog.Logger, ctl *ControlActor) (*ControlSurface, error) {
	system, err := actor.NewActorSystem(actorSystemName,
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	pid, err := system.Spawn(ctx, controlActorName, ctl)
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn control actor: %w", err)
	}
	return &ControlSurface{system: system, pid: pid}, nil
}

// Send delivers cmd asynchronously. It returns once the command is queued, not applied.
func (s *ControlSurface) Send(ctx context.Context, cmd Command) error {
	msg, err := cmd.Proto()
	if err != nil {
		return err
	}
	if err := actor.Tell(ctx, s.pid, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}
	return nil
}

func (s *ControlSurface) Stop(ctx context.Context) error {
	return s.system.Stop(ctx)
}
