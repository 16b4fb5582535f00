package simulation

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidCommand = errors.New("invalid command")
)

type CommandKind string

const (
	CmdAddEntity        CommandKind = "add-entity"
	CmdAddFlock         CommandKind = "add-flock"
	CmdAddPredator      CommandKind = "add-predator"
	CmdSet              CommandKind = "set"
	CmdToggleCollisions CommandKind = "toggle-collisions"
)

// wire field names
const (
	fieldKind  = "kind"
	fieldSize  = "size"
	fieldAngle = "angle"
	fieldParam = "param"
	fieldValue = "value"
)

// Command is one request of the control surface.
type Command struct {
	Kind CommandKind

	// add-flock: a zero Size means "use the current flock size and angle controls"
	Size  int
	Angle float64

	// set
	Param string
	Value float64
}

func AddEntity() Command   { return Command{Kind: CmdAddEntity} }
func AddPredator() Command { return Command{Kind: CmdAddPredator} }

// AddFlock asks for size members heading at angle.
func AddFlock(size int, angle float64) Command {
	return Command{Kind: CmdAddFlock, Size: size, Angle: angle}
}

// AddFlockFromControls asks for a flock shaped by the current controls.
func AddFlockFromControls() Command { return Command{Kind: CmdAddFlock} }

func Set(param string, value float64) Command {
	return Command{Kind: CmdSet, Param: param, Value: value}
}

func ToggleCollisions() Command { return Command{Kind: CmdToggleCollisions} }

func (c Command) String() string {
	switch c.Kind {
	case CmdAddFlock:
		if c.Size == 0 {
			return string(c.Kind)
		}
		return fmt.Sprintf("%s{size=%d angle=%.0f}", c.Kind, c.Size, c.Angle)
	case CmdSet:
		return fmt.Sprintf("%s{%s=%v}", c.Kind, c.Param, c.Value)
	default:
		return string(c.Kind)
	}
}

// Proto encodes the command as the message delivered to the control actor.
func (c Command) Proto() (*structpb.Struct, error) {
	fields := map[string]any{fieldKind: string(c.Kind)}
	switch c.Kind {
	case CmdAddFlock:
		if c.Size != 0 {
			fields[fieldSize] = c.Size
			fields[fieldAngle] = c.Angle
		}
	case CmdSet:
		fields[fieldParam] = c.Param
		fields[fieldValue] = c.Value
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c, err)
	}
	return s, nil
}

// DecodeCommand is the inverse of Command.Proto.
func DecodeCommand(s *structpb.Struct) (Command, error) {
	fields := s.GetFields()
	kind := CommandKind(fields[fieldKind].GetStringValue())

	switch kind {
	case CmdAddEntity, CmdAddPredator, CmdToggleCollisions:
		return Command{Kind: kind}, nil

	case CmdAddFlock:
		sizeValue, hasSize := fields[fieldSize]
		if !hasSize {
			return AddFlockFromControls(), nil
		}
		size, err := intField(sizeValue)
		if err != nil || size < 1 {
			return Command{}, fmt.Errorf("%w: %s needs a positive integer size", ErrInvalidCommand, kind)
		}
		angle := fields[fieldAngle].GetNumberValue()
		if !isFinite(angle) {
			return Command{}, fmt.Errorf("%w: %s needs a finite angle", ErrInvalidCommand, kind)
		}
		return AddFlock(size, angle), nil

	case CmdSet:
		param := fields[fieldParam].GetStringValue()
		value, ok := fields[fieldValue].GetKind().(*structpb.Value_NumberValue)
		if param == "" || !ok || !isFinite(value.NumberValue) {
			return Command{}, fmt.Errorf("%w: %s needs a param and a finite numeric value", ErrInvalidCommand, kind)
		}
		return Set(param, value.NumberValue), nil

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func intField(v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, ErrInvalidCommand
	}
	return int(n.NumberValue), nil
}
